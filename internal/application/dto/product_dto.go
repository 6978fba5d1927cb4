package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-sync/internal/domain/entity"
	"github.com/jhoicas/Estoque-sync/pkg/money"
)

// ProductRequest entrada para crear o actualizar un produto.
// valor_unitario acepta número o texto pt-BR ("1.234,56").
type ProductRequest struct {
	CodigoFornecedor string    `json:"codigo_fornecedor"`
	NCM              string    `json:"ncm"`
	Marca            string    `json:"marca"`
	Descricao        string    `json:"descricao"`
	Unidade          string    `json:"unidade"`
	Quantidade       int       `json:"quantidade"`
	ValorUnitario    money.BRL `json:"valor_unitario"`
}

// Fields convierte a campos de dominio.
func (r ProductRequest) Fields() entity.ProductFields {
	return entity.ProductFields{
		CodigoFornecedor: r.CodigoFornecedor,
		NCM:              r.NCM,
		Marca:            r.Marca,
		Descricao:        r.Descricao,
		Unidade:          r.Unidade,
		Quantidade:       r.Quantidade,
		ValorUnitario:    r.ValorUnitario.Decimal,
	}
}

// ProductResponse salida de un produto, con valores ya formateados para la UI.
type ProductResponse struct {
	ID               string          `json:"id"`
	Codigo           string          `json:"codigo"`
	CodigoFornecedor string          `json:"codigo_fornecedor"`
	NCM              string          `json:"ncm"`
	Marca            string          `json:"marca"`
	Descricao        string          `json:"descricao"`
	Unidade          string          `json:"unidade"`
	Quantidade       int             `json:"quantidade"`
	ValorUnitario    decimal.Decimal `json:"valor_unitario"`
	ValorTotal       decimal.Decimal `json:"valor_total"`
	ValorUnitarioFmt string          `json:"valor_unitario_fmt"`
	ValorTotalFmt    string          `json:"valor_total_fmt"`
}

// FromProduct mapea la entidad.
func FromProduct(p entity.Product) ProductResponse {
	vt := p.ValorTotal()
	return ProductResponse{
		ID:               p.ID,
		Codigo:           p.Codigo.String(),
		CodigoFornecedor: p.CodigoFornecedor,
		NCM:              p.NCM,
		Marca:            p.Marca,
		Descricao:        p.Descricao,
		Unidade:          p.UnidadeOrDefault(),
		Quantidade:       p.Quantidade,
		ValorUnitario:    p.ValorUnitario,
		ValorTotal:       vt,
		ValorUnitarioFmt: money.Format(p.ValorUnitario),
		ValorTotalFmt:    money.Format(vt),
	}
}

// FromProducts mapea una lista.
func FromProducts(list []entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromProduct(p))
	}
	return out
}

// ProductListResponse lista filtrada de produtos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Marca string            `json:"marca"`
	Busca string            `json:"busca,omitempty"`
	Total int               `json:"total"`
}

// BrandListResponse marcas distintas para el filtro.
type BrandListResponse struct {
	Marcas []string `json:"marcas"`
}
