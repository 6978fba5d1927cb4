package remote

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jhoicas/Estoque-sync/internal/domain"
)

// APIError respuesta no exitosa del backend. Error() devuelve el mensaje del servidor
// tal cual, para mostrarlo al usuario; Unwrap expone la clase de dominio.
type APIError struct {
	Kind       error
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return e.Kind }

// errorBody formatos de error que devuelve el backend ({error}, {code, message}).
type errorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// classify traduce status + body a un APIError. fallback es el mensaje cuando el
// body no trae texto utilizable.
func classify(status int, body []byte, fallback string) *APIError {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	msg := eb.Error
	if msg == "" {
		msg = eb.Message
	}
	if msg == "" {
		msg = fallback
	}

	kind := domain.ErrRequestFailed
	switch {
	case status == http.StatusUnauthorized:
		kind = domain.ErrUnauthorized
		if eb.Error == "" && eb.Message == "" {
			msg = "Sua sessão expirou"
		}
	case status == http.StatusConflict,
		strings.EqualFold(eb.Code, "INSUFFICIENT_STOCK"),
		strings.Contains(strings.ToLower(msg), "insuficiente"):
		kind = domain.ErrInsufficientStock
	case status == http.StatusNotFound:
		kind = domain.ErrNotFound
	}
	return &APIError{Kind: kind, StatusCode: status, Message: msg}
}

// unreachable envuelve un fallo de transporte o timeout.
func unreachable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrUnreachable, op, err)
}
