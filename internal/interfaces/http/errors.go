package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-sync/internal/application/dto"
	"github.com/jhoicas/Estoque-sync/internal/domain"
)

// respondError traduce errores de dominio a status HTTP. El mensaje del servidor
// remoto se devuelve tal cual (la UI lo muestra sin reescribir).
func respondError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrOffline):
		status, code = fiber.StatusServiceUnavailable, "OFFLINE"
	case errors.Is(err, domain.ErrUnreachable):
		status, code = fiber.StatusServiceUnavailable, "UNREACHABLE"
	case errors.Is(err, domain.ErrNoSession):
		status, code = fiber.StatusUnauthorized, "ACCESS_DENIED"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "SESSION_EXPIRED"
	case errors.Is(err, domain.ErrInvalidQuantity):
		status, code = fiber.StatusBadRequest, "INVALID_QUANTITY"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code = fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrRequestFailed):
		status, code = fiber.StatusBadGateway, "REQUEST_FAILED"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
}
