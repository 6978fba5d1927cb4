package stock

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-sync/internal/domain"
	"github.com/jhoicas/Estoque-sync/internal/domain/entity"
)

// NormalizeFields recorta espacios y aplica la unidad por defecto.
func NormalizeFields(in entity.ProductFields) entity.ProductFields {
	in.CodigoFornecedor = strings.TrimSpace(in.CodigoFornecedor)
	in.NCM = strings.TrimSpace(in.NCM)
	in.Marca = strings.TrimSpace(in.Marca)
	in.Descricao = strings.TrimSpace(in.Descricao)
	in.Unidade = strings.TrimSpace(in.Unidade)
	if in.Unidade == "" {
		in.Unidade = entity.DefaultUnidade
	}
	return in
}

// ValidateFields exige codigo_fornecedor, marca y descricao, quantidade >= 0 y
// valor_unitario >= 0. Devuelve todos los problemas juntos envueltos en ErrInvalidInput.
func ValidateFields(in entity.ProductFields) error {
	var errs []error
	if in.CodigoFornecedor == "" {
		errs = append(errs, errors.New("codigo_fornecedor é obrigatório"))
	}
	if in.Marca == "" {
		errs = append(errs, errors.New("marca é obrigatória"))
	}
	if in.Descricao == "" {
		errs = append(errs, errors.New("descricao é obrigatória"))
	}
	if in.Quantidade < 0 {
		errs = append(errs, errors.New("quantidade não pode ser negativa"))
	}
	if in.ValorUnitario.LessThan(decimal.Zero) {
		errs = append(errs, errors.New("valor_unitario não pode ser negativo"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}
	return nil
}
