package estoque

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-sync/internal/domain"
	"github.com/jhoicas/Estoque-sync/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Reload
// ──────────────────────────────────────────────────────────────────────────────

func TestService_ReloadOfflineNaoChamaRede(t *testing.T) {
	f := newFixture(prod("p1", "ACME", 10))

	_, err := f.svc.Reload(context.Background(), false)
	assert.ErrorIs(t, err, domain.ErrOffline)
	assert.ErrorIs(t, err, domain.ErrUnreachable)

	_, lists, _, _ := f.gw.counts()
	assert.Zero(t, lists)
}

func TestService_ReloadAplicaENotificaSoQuandoMuda(t *testing.T) {
	f := newFixture(prod("p1", "ACME", 10)).online()
	ctx := context.Background()

	res, err := f.svc.Reload(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, Changed, res.Outcome)
	assert.Equal(t, 1, res.Products)

	res, err = f.svc.Reload(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, Unchanged, res.Outcome)

	f.gw.setQuantidade("p1", 7)
	res, err = f.svc.Reload(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, Changed, res.Outcome)

	changed, _, _ := f.notifier.snapshot()
	assert.Equal(t, 2, changed)
}

func TestService_ApplyDescartaRespostaAntiga(t *testing.T) {
	f := newFixture()

	novo := f.svc.apply(fetchResult{seq: 2, products: []entity.Product{prod("p1", "ACME", 6)}}, true, false)
	assert.Equal(t, Changed, novo.Outcome)

	velho := f.svc.apply(fetchResult{seq: 1, products: []entity.Product{prod("p1", "ACME", 10)}}, true, false)
	assert.True(t, velho.Stale)

	p, _ := f.svc.FindByID("p1")
	assert.Equal(t, 6, p.Quantidade, "leitura iniciada depois vence")
}

func TestService_UnauthorizedLimpaCredencial(t *testing.T) {
	f := newFixture().online()
	f.gw.listErr = domain.ErrUnauthorized

	_, err := f.svc.Reload(context.Background(), true)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.False(t, f.svc.HasSession())

	_, _, expired := f.notifier.snapshot()
	assert.Equal(t, 1, expired)

	// segunda falha já sem token não repete o sinal
	_, _ = f.svc.Reload(context.Background(), true)
	_, _, expired = f.notifier.snapshot()
	assert.Equal(t, 1, expired)
}

func TestService_SyncNowCarregaMovimentos(t *testing.T) {
	f := newFixture(prod("p1", "ACME", 10)).online()
	f.gw.history = entity.MovementHistory{
		Entradas: []entity.Movement{{ID: "m1", ProdutoID: "p1", Tipo: entity.MovementEntrada, Quantidade: 3}},
	}

	_, err := f.svc.SyncNow(context.Background())
	require.NoError(t, err)
	assert.Len(t, f.svc.Movements().Entradas, 1)
	assert.Empty(t, f.svc.Movements().Saidas)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimentos
// ──────────────────────────────────────────────────────────────────────────────

func TestService_SaidaReconciliaComSaldoDoServidor(t *testing.T) {
	f := newFixture(prod("p1", "ACME", 10)).online()
	ctx := context.Background()
	_, err := f.svc.Reload(ctx, false)
	require.NoError(t, err)

	p, err := f.svc.Saida(ctx, "p1", 4)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 6, p.Quantidade)

	cached, _ := f.svc.FindByID("p1")
	assert.Equal(t, 6, cached.Quantidade)

	_, lists, movLists, records := f.gw.counts()
	assert.Equal(t, 1, records)
	assert.Equal(t, 2, lists, "reload forçado após o movimento")
	assert.Equal(t, 1, movLists)
}

func TestService_SaidaAcimaDoSaldoNaoChamaRede(t *testing.T) {
	f := newFixture(prod("p1", "ACME", 3)).online()
	ctx := context.Background()
	_, err := f.svc.Reload(ctx, false)
	require.NoError(t, err)

	_, err = f.svc.Saida(ctx, "p1", 5)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, lists, _, records := f.gw.counts()
	assert.Zero(t, records)
	assert.Equal(t, 1, lists)
	cached, _ := f.svc.FindByID("p1")
	assert.Equal(t, 3, cached.Quantidade)
}

func TestService_MovimentoQuantidadeInvalida(t *testing.T) {
	f := newFixture(prod("p1", "ACME", 3)).online()
	_, _ = f.svc.Reload(context.Background(), false)

	_, err := f.svc.Entrada(context.Background(), "p1", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = f.svc.Movimentar(context.Background(), "p1", entity.MovementType("ajuste"), 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestService_MovimentoProdutoDesconhecido(t *testing.T) {
	f := newFixture().online()
	_, err := f.svc.Entrada(context.Background(), "nao-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_EntradaSemProdutoNaRespostaUsaReload(t *testing.T) {
	f := newFixture(prod("p1", "ACME", 3)).online()
	f.gw.noProduct = true
	ctx := context.Background()
	_, _ = f.svc.Reload(ctx, false)

	p, err := f.svc.Entrada(ctx, "p1", 2)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 5, p.Quantidade)
}

func TestService_MovimentoInvalidaLeituraEmVoo(t *testing.T) {
	f := newFixture(prod("p1", "ACME", 10)).online()
	ctx := context.Background()
	_, _ = f.svc.Reload(ctx, false)

	// leitura que começou antes do movimento e termina depois dele
	inFlight := f.svc.seq.Add(1)

	_, err := f.svc.Saida(ctx, "p1", 4)
	require.NoError(t, err)

	res := f.svc.apply(fetchResult{seq: inFlight, products: []entity.Product{prod("p1", "ACME", 10)}}, true, false)
	assert.True(t, res.Stale)
	cached, _ := f.svc.FindByID("p1")
	assert.Equal(t, 6, cached.Quantidade)
}

func TestService_MovimentoRespostaParcialPreservaCadastro(t *testing.T) {
	f := newFixture(prod("p1", "ACME", 10)).online()
	f.gw.partial = true
	ctx := context.Background()
	_, err := f.svc.Reload(ctx, false)
	require.NoError(t, err)

	// sem reload posterior: só o saldo da resposta entra na cache
	f.gw.listErr = domain.ErrUnreachable
	p, err := f.svc.Saida(ctx, "p1", 4)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 6, p.Quantidade)
	assert.Equal(t, "ACME", p.Marca)

	f.gw.listErr = nil
	_, err = f.svc.Reload(ctx, true)
	require.NoError(t, err)

	cached, ok := f.svc.FindByID("p1")
	require.True(t, ok)
	assert.Equal(t, 6, cached.Quantidade)
	assert.Equal(t, "ACME", cached.Marca)
	assert.Equal(t, "item p1", cached.Descricao)
	assert.Equal(t, entity.Codigo("p1"), cached.Codigo)
	assert.Equal(t, []string{"ACME"}, f.svc.Brands())
}

func TestService_ErroDoServidorRepassado(t *testing.T) {
	f := newFixture(prod("p1", "ACME", 10)).online()
	ctx := context.Background()
	_, _ = f.svc.Reload(ctx, false)
	f.gw.recordErr = domain.ErrInsufficientStock

	_, err := f.svc.Saida(ctx, "p1", 2)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	cached, _ := f.svc.FindByID("p1")
	assert.Equal(t, 10, cached.Quantidade, "cache intacta após rejeição")
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD
// ──────────────────────────────────────────────────────────────────────────────

func validFields() entity.ProductFields {
	return entity.ProductFields{
		CodigoFornecedor: "CF-1",
		Marca:            "ACME",
		Descricao:        "Parafuso",
		Quantidade:       5,
		ValorUnitario:    decimal.RequireFromString("2.50"),
	}
}

func TestService_CreateValidaAntesDaRede(t *testing.T) {
	f := newFixture().online()
	in := validFields()
	in.Marca = "  "

	_, err := f.svc.CreateProduct(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.gw.creates)
}

func TestService_CreateAplicaUnidadePadraoERecarrega(t *testing.T) {
	f := newFixture().online()

	p, err := f.svc.CreateProduct(context.Background(), validFields())
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultUnidade, p.Unidade)
	assert.NotEmpty(t, p.Codigo)

	_, ok := f.svc.FindByID(p.ID)
	assert.True(t, ok, "produto visível após o reload")
}

func TestService_UpdateEDelete(t *testing.T) {
	f := newFixture(prod("p1", "ACME", 10), prod("p2", "ZETA", 1)).online()
	ctx := context.Background()
	_, _ = f.svc.Reload(ctx, false)

	in := validFields()
	in.Quantidade = 12
	_, err := f.svc.UpdateProduct(ctx, "p1", in)
	require.NoError(t, err)
	p, _ := f.svc.FindByID("p1")
	assert.Equal(t, 12, p.Quantidade)

	require.NoError(t, f.svc.DeleteProduct(ctx, "p2"))
	_, ok := f.svc.FindByID("p2")
	assert.False(t, ok)

	err = f.svc.DeleteProduct(ctx, "p2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.svc.UpdateProduct(ctx, "", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestService_UpdateSoMarcaEDescricaoAtualizaCache(t *testing.T) {
	f := newFixture(prod("p1", "ACME", 10)).online()
	ctx := context.Background()
	_, err := f.svc.Reload(ctx, false)
	require.NoError(t, err)

	in := validFields()
	in.Marca = "NOVA"
	in.Descricao = "Parafuso M6"
	in.Quantidade = 10 // mesmo saldo: o fingerprint não muda

	p, err := f.svc.UpdateProduct(ctx, "p1", in)
	require.NoError(t, err)
	assert.Equal(t, "NOVA", p.Marca)

	cached, _ := f.svc.FindByID("p1")
	assert.Equal(t, "NOVA", cached.Marca)
	assert.Equal(t, "Parafuso M6", cached.Descricao)
	assert.Equal(t, []string{"NOVA"}, f.svc.Brands())

	changed, _, _ := f.notifier.snapshot()
	assert.Equal(t, 2, changed, "carga inicial + edição")
}

func TestService_UpdateRespostaParcialUsaCamposEnviados(t *testing.T) {
	f := newFixture(prod("p1", "ACME", 10)).online()
	ctx := context.Background()
	_, _ = f.svc.Reload(ctx, false)
	f.gw.partial = true
	f.gw.listErr = domain.ErrUnreachable

	in := validFields()
	in.Marca = "NOVA"
	in.Quantidade = 10
	p, err := f.svc.UpdateProduct(ctx, "p1", in)
	require.NoError(t, err)

	assert.Equal(t, "NOVA", p.Marca)
	assert.Equal(t, "Parafuso", p.Descricao)
	assert.Equal(t, entity.Codigo("p1"), p.Codigo, "codigo do servidor preservado")
	assert.Equal(t, 10, p.Quantidade)
}

// ──────────────────────────────────────────────────────────────────────────────
// Filtro
// ──────────────────────────────────────────────────────────────────────────────

func TestFilterProducts(t *testing.T) {
	list := []entity.Product{
		{ID: "1", Codigo: "10", CodigoFornecedor: "AB-1", Marca: "ACME", Descricao: "Parafuso sextavado"},
		{ID: "2", Codigo: "11", CodigoFornecedor: "ZX-9", Marca: "ZETA", Descricao: "Porca"},
		{ID: "3", Codigo: "12", CodigoFornecedor: "AB-2", Marca: "ACME", Descricao: "Arruela"},
	}

	assert.Len(t, FilterProducts(list, AllBrands, ""), 3)
	assert.Len(t, FilterProducts(list, "", ""), 3)
	assert.Len(t, FilterProducts(list, "ACME", ""), 2)
	assert.Len(t, FilterProducts(list, AllBrands, "PARAFUSO"), 1)
	assert.Len(t, FilterProducts(list, AllBrands, "ab-"), 2)
	assert.Len(t, FilterProducts(list, AllBrands, "zeta"), 1)
	assert.Len(t, FilterProducts(list, AllBrands, "11"), 1)
	assert.Empty(t, FilterProducts(list, "ZETA", "arruela"))
}
