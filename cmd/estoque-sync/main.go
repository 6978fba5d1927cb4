package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Estoque-sync/internal/application/estoque"
	"github.com/jhoicas/Estoque-sync/internal/application/report"
	"github.com/jhoicas/Estoque-sync/internal/application/session"
	"github.com/jhoicas/Estoque-sync/internal/infrastructure/remote"
	"github.com/jhoicas/Estoque-sync/internal/infrastructure/sessionfile"
	httpRouter "github.com/jhoicas/Estoque-sync/internal/interfaces/http"
	"github.com/jhoicas/Estoque-sync/pkg/config"
	"github.com/jhoicas/Estoque-sync/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api_url", cfg.Estoque.APIURL).
		Msg("estoque iniciado")

	// Sesión: token persistido > ESTOQUE_SESSION_TOKEN > ?sessionToken= en la primera petición.
	persister := sessionfile.New(cfg.Estoque.SessionFile)
	creds := session.NewStore(persister, log.Named("sessao"))
	if !creds.Load() && cfg.Estoque.SessionToken != "" {
		creds.Set(cfg.Estoque.SessionToken)
	}
	if _, ok := creds.Token(); !ok {
		log.Warn().Str("portal", cfg.Portal.URL).Msg("sem token de sessão: aguardando autenticação pelo portal")
	}

	client := remote.NewClient(remote.Config{
		BaseURL:        cfg.Estoque.APIURL,
		ProbeTimeout:   cfg.Estoque.ProbeTimeout,
		RequestTimeout: cfg.Estoque.RequestTimeout,
		MovementMode:   cfg.Estoque.MovementMode,
	}, creds, log)

	notifier := estoque.NewLogNotifier(log)
	conn := estoque.NewConnectivity()
	svc := estoque.NewService(client, estoque.NewCache(), creds, conn, notifier, log)
	monitor := estoque.NewMonitor(client, conn, svc, estoque.SystemClock{}, estoque.MonitorConfig{
		ProbeInterval: cfg.Estoque.ProbeInterval,
		ProbeTimeout:  cfg.Estoque.ProbeTimeout,
		SyncInterval:  cfg.Estoque.SyncInterval,
		AutoSync:      cfg.Estoque.AutoSync,
	}, notifier, log)
	reportUC := report.NewUseCase(svc, time.Local)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Estoque.RequestTimeout + 10*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs, solo si el archivo existe.
	if _, err := os.Stat(cfg.Swagger.FilePath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Swagger.FilePath,
			Path:     "docs",
			Title:    "Estoque API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "estoque": conn.State().Label()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Service:   svc,
		Reports:   reportUC,
		Session:   creds,
		PortalURL: cfg.Portal.URL,
		AutoSync:  cfg.Estoque.AutoSync,
		OnToken:   monitor.Trigger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		monitor.Run(ctx)
	}()

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	monitor.Stop()
	cancel()
	wg.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
