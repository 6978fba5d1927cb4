// Package stock contiene las decisiones puras del ledger de estoque: guardas de
// movimiento, fingerprint de la colección y validación de campos de produto.
// No hace I/O; la autoridad final sobre el saldo es siempre el servidor.
package stock

import (
	"fmt"

	"github.com/jhoicas/Estoque-sync/internal/domain"
	"github.com/jhoicas/Estoque-sync/internal/domain/entity"
)

// PrepareEntrada valida una entrada: la cantidad debe ser un entero positivo.
func PrepareEntrada(quantidade int) error {
	if quantidade <= 0 {
		return fmt.Errorf("%w: a quantidade deve ser maior que zero", domain.ErrInvalidQuantity)
	}
	return nil
}

// PrepareSaida valida una saída contra el saldo conocido localmente.
// Es advisory: evita un round trip evitable, pero el servidor vuelve a validar.
func PrepareSaida(product entity.Product, quantidade int) error {
	if quantidade <= 0 {
		return fmt.Errorf("%w: a quantidade deve ser maior que zero", domain.ErrInvalidQuantity)
	}
	if quantidade > product.Quantidade {
		return fmt.Errorf("%w: solicitado %d, disponível %d",
			domain.ErrInsufficientStock, quantidade, product.Quantidade)
	}
	return nil
}

// Prepare despacha a PrepareEntrada o PrepareSaida según el tipo.
func Prepare(product entity.Product, tipo entity.MovementType, quantidade int) error {
	switch tipo {
	case entity.MovementEntrada:
		return PrepareEntrada(quantidade)
	case entity.MovementSaida:
		return PrepareSaida(product, quantidade)
	default:
		return fmt.Errorf("%w: tipo de movimento %q", domain.ErrInvalidInput, tipo)
	}
}
