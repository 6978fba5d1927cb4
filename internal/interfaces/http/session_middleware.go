package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-sync/internal/application/dto"
	"github.com/jhoicas/Estoque-sync/internal/application/session"
)

// SessionMiddleware toma el token de ?sessionToken= (entregado por el portal) y lo
// guarda en el Credential Store; sin token vigente responde 401 ACCESS_DENIED con
// la URL del portal. onToken (opcional) se llama cuando llegó un token nuevo.
func SessionMiddleware(store *session.Store, portalURL string, onToken func()) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uri := c.Request().URI()
		if query, err := url.ParseQuery(string(uri.QueryString())); err == nil {
			// el token no sigue hacia los handlers
			if rest, ok := store.ConsumeURLToken(query); ok {
				uri.SetQueryString(rest.Encode())
				if onToken != nil {
					onToken()
				}
			}
		}
		if _, ok := store.Token(); !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.AccessDeniedResponse{
				Code:      "ACCESS_DENIED",
				Message:   "Somente usuários autenticados podem acessar esta área",
				PortalURL: portalURL,
			})
		}
		return c.Next()
	}
}
