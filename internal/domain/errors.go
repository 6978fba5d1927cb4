package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso não encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("não autorizado")
	ErrInsufficientStock = errors.New("quantidade insuficiente em estoque")
	ErrInvalidQuantity   = errors.New("quantidade inválida")
	ErrRequestFailed     = errors.New("falha na requisição")
	ErrUnreachable       = errors.New("servidor inacessível")
)

// Variantes derivadas: errors.Is sigue respondiendo por la clase base.
var (
	// ErrNoSession no hay token; ninguna llamada autenticada se intenta.
	ErrNoSession = fmt.Errorf("%w: sessão ausente", ErrUnauthorized)
	// ErrOffline el monitor marca el sistema como offline; la lectura no se intenta.
	ErrOffline = fmt.Errorf("%w: sistema offline", ErrUnreachable)
)
