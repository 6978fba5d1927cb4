package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-sync/internal/domain"
	"github.com/jhoicas/Estoque-sync/internal/domain/entity"
)

type staticSource struct {
	products []entity.Product
	history  entity.MovementHistory
}

func (s staticSource) Products() []entity.Product {
	return append([]entity.Product(nil), s.products...)
}

func (s staticSource) Movements() entity.MovementHistory { return s.history }

func newTestUseCase(src staticSource) *UseCase {
	uc := NewUseCase(src, time.UTC)
	uc.now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }
	return uc
}

func sampleProducts() []entity.Product {
	return []entity.Product{
		{ID: "a", Codigo: "10", CodigoFornecedor: "Z-10", Marca: "ZETA", Descricao: "Porca", Quantidade: 2, ValorUnitario: decimal.RequireFromString("1.50")},
		{ID: "b", Codigo: "9", CodigoFornecedor: "A-9", Marca: "ACME", Descricao: "Parafuso", Quantidade: 10, ValorUnitario: decimal.RequireFromString("0.25"), NCM: "7318"},
		{ID: "c", Codigo: "100", CodigoFornecedor: "A-100", Marca: "ACME", Descricao: "Arruela", Quantidade: 4, ValorUnitario: decimal.RequireFromString("1000")},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Relatório de estoque
// ──────────────────────────────────────────────────────────────────────────────

func TestStock_TodasAgrupaPorMarcaEOrdenaCodigoNumerico(t *testing.T) {
	uc := newTestUseCase(staticSource{products: sampleProducts()})

	r, err := uc.Stock("")
	require.NoError(t, err)
	assert.Equal(t, AllBrands, r.Marca)
	require.Len(t, r.Grupos, 2)

	assert.Equal(t, "ACME", r.Grupos[0].Marca)
	assert.Equal(t, "9", r.Grupos[0].Itens[0].Codigo, "9 antes de 100")
	assert.Equal(t, "100", r.Grupos[0].Itens[1].Codigo)
	assert.Equal(t, "ZETA", r.Grupos[1].Marca)

	row := r.Grupos[0].Itens[0]
	assert.Equal(t, "7318", row.NCM)
	assert.Equal(t, entity.DefaultUnidade, row.Unidade)
	assert.Equal(t, "R$ 2,50", row.ValorTotalFmt)
	assert.Equal(t, "-", r.Grupos[0].Itens[1].NCM)

	assert.Equal(t, 3, r.Totais.Produtos)
	assert.Equal(t, 16, r.Totais.Quantidade)
	assert.True(t, decimal.RequireFromString("4005.50").Equal(r.Totais.Valor))
	assert.Equal(t, "R$ 4.005,50", r.Totais.ValorFmt)
}

func TestStock_FiltraMarca(t *testing.T) {
	uc := newTestUseCase(staticSource{products: sampleProducts()})

	r, err := uc.Stock("ZETA")
	require.NoError(t, err)
	require.Len(t, r.Grupos, 1)
	assert.Len(t, r.Grupos[0].Itens, 1)
	assert.Equal(t, 1, r.Totais.Produtos)

	_, err = uc.Stock("INEXISTENTE")
	assert.ErrorIs(t, err, ErrNoProducts)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSortByCodigo_NaoNumericosNoFim(t *testing.T) {
	items := []entity.Product{{Codigo: "B"}, {Codigo: "20"}, {Codigo: "A"}, {Codigo: "3"}}
	sortByCodigo(items)
	var got []string
	for _, p := range items {
		got = append(got, p.Codigo.String())
	}
	assert.Equal(t, []string{"3", "20", "A", "B"}, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Relatórios de movimentos
// ──────────────────────────────────────────────────────────────────────────────

func TestEntradas_AgrupaPorMesMaisRecentePrimeiro(t *testing.T) {
	src := staticSource{
		products: sampleProducts(),
		history: entity.MovementHistory{Entradas: []entity.Movement{
			{ProdutoID: "b", Quantidade: 5, Data: time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC)},
			{ProdutoID: "a", Quantidade: 2, Data: time.Date(2026, 10, 1, 8, 30, 0, 0, time.UTC)},
			{ProdutoID: "sumiu", Quantidade: 50, Data: time.Date(2026, 10, 2, 8, 0, 0, 0, time.UTC)},
			{ProdutoID: "c", Quantidade: 1, Data: time.Date(2025, 12, 24, 18, 0, 0, 0, time.UTC)},
		}},
	}
	uc := newTestUseCase(src)

	r, err := uc.Entradas(AllBrands)
	require.NoError(t, err)
	assert.Equal(t, "entrada", r.Tipo)
	require.Len(t, r.Meses, 3)
	assert.Equal(t, "Outubro de 2026", r.Meses[0].Mes)
	assert.Equal(t, "Setembro de 2026", r.Meses[1].Mes)
	assert.Equal(t, "Dezembro de 2025", r.Meses[2].Mes)
	assert.Equal(t, 8, r.Total, "movimento de produto desconhecido ignorado")
	assert.Equal(t, "01/10/2026 08:30:00", r.Meses[0].Itens[0].DataFmt)

	r, err = uc.Entradas("ACME")
	require.NoError(t, err)
	assert.Len(t, r.Meses, 2)
	assert.Equal(t, 6, r.Total)
}

func TestSaidas_Vazio(t *testing.T) {
	uc := newTestUseCase(staticSource{products: sampleProducts()})
	_, err := uc.Saidas(AllBrands)
	assert.ErrorIs(t, err, ErrNoSaidas)
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Março de 2026", monthLabel(2026, time.March))
	assert.Equal(t, "Janeiro de 2027", monthLabel(2027, time.January))
}
