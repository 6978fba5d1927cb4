package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-sync/internal/application/dto"
	"github.com/jhoicas/Estoque-sync/internal/application/estoque"
	"github.com/jhoicas/Estoque-sync/internal/domain/entity"
)

// MovementHandler entradas y saídas de estoque.
type MovementHandler struct {
	svc *estoque.Service
}

// NewMovementHandler construye el handler.
func NewMovementHandler(svc *estoque.Service) *MovementHandler {
	return &MovementHandler{svc: svc}
}

// Entrada godoc
// @Summary      Registrar entrada
// @Tags         movimentos
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do produto"
// @Param        body  body  dto.MovementRequest  true  "Quantidade"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/produtos/{id}/entrada [post]
func (h *MovementHandler) Entrada(c *fiber.Ctx) error {
	return h.record(c, entity.MovementEntrada)
}

// Saida godoc
// @Summary      Registrar saída
// @Tags         movimentos
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do produto"
// @Param        body  body  dto.MovementRequest  true  "Quantidade"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/produtos/{id}/saida [post]
func (h *MovementHandler) Saida(c *fiber.Ctx) error {
	return h.record(c, entity.MovementSaida)
}

// Movimentar godoc
// @Summary      Registrar movimento (tipo + quantidade)
// @Tags         movimentos
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do produto"
// @Param        body  body  dto.MovementRequest  true  "Tipo e quantidade"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/produtos/{id}/movimentar [post]
func (h *MovementHandler) Movimentar(c *fiber.Ctx) error {
	return h.record(c, "")
}

// record tipo vacío: se toma del cuerpo.
func (h *MovementHandler) record(c *fiber.Ctx, tipo entity.MovementType) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if tipo == "" {
		tipo = entity.MovementType(in.Tipo)
	}
	id := c.Params("id")
	p, err := h.svc.Movimentar(c.UserContext(), id, tipo, in.Quantidade)
	if err != nil {
		return respondError(c, err)
	}
	if p == nil {
		cached, ok := h.svc.FindByID(id)
		if !ok {
			return c.SendStatus(fiber.StatusNoContent)
		}
		p = &cached
	}
	return c.JSON(dto.MovementResponse{
		Produto:    dto.FromProduct(*p),
		Tipo:       string(tipo),
		Quantidade: in.Quantidade,
		Message:    movementMessage(tipo, in.Quantidade, p.Codigo.String()),
	})
}

func movementMessage(tipo entity.MovementType, q int, codigo string) string {
	if tipo == entity.MovementSaida {
		return fmt.Sprintf("Saída de %d para o item %s", q, codigo)
	}
	return fmt.Sprintf("Entrada de %d para o item %s", q, codigo)
}

// History godoc
// @Summary      Histórico de entradas e saídas
// @Tags         movimentos
// @Produce      json
// @Success      200  {object}  dto.MovementHistoryResponse
// @Router       /api/movimentos [get]
func (h *MovementHandler) History(c *fiber.Ctx) error {
	return c.JSON(dto.FromHistory(h.svc.Movements()))
}
