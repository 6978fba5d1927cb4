package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-sync/internal/application/dto"
	"github.com/jhoicas/Estoque-sync/internal/application/estoque"
	"github.com/jhoicas/Estoque-sync/internal/application/session"
)

// SyncHandler estado de conexión, sesión y sincronización manual.
type SyncHandler struct {
	svc      *estoque.Service
	store    *session.Store
	autoSync bool
	onToken  func()
}

// NewSyncHandler construye el handler.
func NewSyncHandler(svc *estoque.Service, store *session.Store, autoSync bool, onToken func()) *SyncHandler {
	return &SyncHandler{svc: svc, store: store, autoSync: autoSync, onToken: onToken}
}

// Status godoc
// @Summary      Estado de conexão e da cache
// @Tags         sync
// @Produce      json
// @Success      200  {object}  dto.StatusResponse
// @Router       /api/status [get]
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	st := h.svc.Connectivity()
	return c.JSON(dto.StatusResponse{
		Online:      st.Online,
		Estado:      st.Label(),
		Desde:       st.Since,
		UltimoProbe: st.LastProbeAt,
		HasSession:  h.svc.HasSession(),
		Fingerprint: h.svc.Fingerprint(),
		Produtos:    len(h.svc.Products()),
		AutoSync:    h.autoSync,
	})
}

// OpenSession godoc
// @Summary      Informar token de sessão
// @Tags         sync
// @Accept       json
// @Param        body  body  dto.SessionRequest  true  "Token"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/session [post]
func (h *SyncHandler) OpenSession(c *fiber.Ctx) error {
	var in dto.SessionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "token é obrigatório"})
	}
	h.store.Set(in.Token)
	if h.onToken != nil {
		h.onToken()
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CloseSession godoc
// @Summary      Encerrar sessão
// @Tags         sync
// @Success      204
// @Router       /api/session [delete]
func (h *SyncHandler) CloseSession(c *fiber.Ctx) error {
	h.store.Clear()
	return c.SendStatus(fiber.StatusNoContent)
}

// Sync godoc
// @Summary      Sincronizar agora (produtos + movimentos)
// @Tags         sync
// @Produce      json
// @Success      200  {object}  dto.SyncResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/sync [post]
func (h *SyncHandler) Sync(c *fiber.Ctx) error {
	res, err := h.svc.SyncNow(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SyncResponse{Outcome: res.Outcome.String(), Produtos: res.Products, Message: "Dados atualizados"})
}
