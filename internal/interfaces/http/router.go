package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-sync/internal/application/estoque"
	"github.com/jhoicas/Estoque-sync/internal/application/report"
	"github.com/jhoicas/Estoque-sync/internal/application/session"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Service   *estoque.Service
	Reports   *report.UseCase
	Session   *session.Store
	PortalURL string
	AutoSync  bool
	OnToken   func() // ej: Monitor.Trigger, para probar en cuanto llega un token
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Estado y sesión (público)
	syncHandler := NewSyncHandler(deps.Service, deps.Session, deps.AutoSync, deps.OnToken)
	api.Get("/status", syncHandler.Status)
	api.Post("/session", syncHandler.OpenSession)
	api.Delete("/session", syncHandler.CloseSession)

	// Rutas protegidas (requieren token de sesión)
	protected := api.Group("/", SessionMiddleware(deps.Session, deps.PortalURL, deps.OnToken))

	productHandler := NewProductHandler(deps.Service)
	movementHandler := NewMovementHandler(deps.Service)

	produtos := protected.Group("/produtos")
	produtos.Get("/", productHandler.List)
	produtos.Post("/", productHandler.Create)
	produtos.Get("/:id", productHandler.GetByID)
	produtos.Put("/:id", productHandler.Update)
	produtos.Delete("/:id", productHandler.Delete)
	produtos.Post("/:id/entrada", movementHandler.Entrada)
	produtos.Post("/:id/saida", movementHandler.Saida)
	produtos.Post("/:id/movimentar", movementHandler.Movimentar)

	protected.Get("/marcas", productHandler.Brands)
	protected.Get("/movimentos", movementHandler.History)
	protected.Post("/sync", syncHandler.Sync)

	// Relatórios
	reportHandler := NewReportHandler(deps.Reports)
	relatorios := protected.Group("/relatorios")
	relatorios.Get("/estoque", reportHandler.Stock)
	relatorios.Get("/entradas", reportHandler.Entradas)
	relatorios.Get("/saidas", reportHandler.Saidas)
}
