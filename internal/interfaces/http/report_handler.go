package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-sync/internal/application/report"
)

// ReportHandler relatórios en JSON; la UI decide el maquetado.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Stock godoc
// @Summary      Relatório de estoque
// @Tags         relatorios
// @Produce      json
// @Param        marca  query  string  false  "Marca o TODAS"
// @Success      200    {object}  dto.StockReportDTO
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/relatorios/estoque [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	out, err := h.uc.Stock(c.Query("marca", report.AllBrands))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Entradas godoc
// @Summary      Relatório de entradas por mês
// @Tags         relatorios
// @Produce      json
// @Param        marca  query  string  false  "Marca o TODAS"
// @Success      200    {object}  dto.MovementReportDTO
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/relatorios/entradas [get]
func (h *ReportHandler) Entradas(c *fiber.Ctx) error {
	out, err := h.uc.Entradas(c.Query("marca", report.AllBrands))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Saidas godoc
// @Summary      Relatório de saídas por mês
// @Tags         relatorios
// @Produce      json
// @Param        marca  query  string  false  "Marca o TODAS"
// @Success      200    {object}  dto.MovementReportDTO
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/relatorios/saidas [get]
func (h *ReportHandler) Saidas(c *fiber.Ctx) error {
	out, err := h.uc.Saidas(c.Query("marca", report.AllBrands))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
