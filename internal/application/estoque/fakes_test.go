package estoque

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/Estoque-sync/internal/application/session"
	"github.com/jhoicas/Estoque-sync/internal/domain"
	"github.com/jhoicas/Estoque-sync/internal/domain/entity"
	"github.com/jhoicas/Estoque-sync/pkg/logger"
)

// fakeGateway backend en memoria con estado propio (el servidor autoritativo).
type fakeGateway struct {
	mu        sync.Mutex
	products  []entity.Product
	history   entity.MovementHistory
	probeErrs []error
	listErr   error
	recordErr error
	noProduct bool
	partial   bool // respuestas de escritura con solo {id, quantidade}
	probeHang bool // Probe espera hasta que venza el contexto

	probes, lists, movLists, records, creates, updates, deletes int
}

func newFakeGateway(products ...entity.Product) *fakeGateway {
	return &fakeGateway{products: products}
}

func (f *fakeGateway) Probe(ctx context.Context) error {
	f.mu.Lock()
	f.probes++
	hang := f.probeHang
	f.mu.Unlock()
	if hang {
		<-ctx.Done()
		return fmt.Errorf("%w: %w", domain.ErrUnreachable, ctx.Err())
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.probeErrs) == 0 {
		return nil
	}
	err := f.probeErrs[0]
	f.probeErrs = f.probeErrs[1:]
	return err
}

func (f *fakeGateway) ListProducts(ctx context.Context) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]entity.Product(nil), f.products...), nil
}

func (f *fakeGateway) ListMovements(ctx context.Context) (*entity.MovementHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movLists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	h := f.history
	return &h, nil
}

func (f *fakeGateway) CreateProduct(ctx context.Context, fields entity.ProductFields) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	p := entity.Product{
		ID:               fmt.Sprintf("p%d", len(f.products)+1),
		Codigo:           entity.Codigo(fmt.Sprint(len(f.products) + 1)),
		CodigoFornecedor: fields.CodigoFornecedor,
		Marca:            fields.Marca,
		Descricao:        fields.Descricao,
		Unidade:          fields.Unidade,
		Quantidade:       fields.Quantidade,
		ValorUnitario:    fields.ValorUnitario,
	}
	f.products = append(f.products, p)
	return &p, nil
}

func (f *fakeGateway) UpdateProduct(ctx context.Context, id string, fields entity.ProductFields) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	for i := range f.products {
		if f.products[i].ID == id {
			f.products[i].CodigoFornecedor = fields.CodigoFornecedor
			f.products[i].NCM = fields.NCM
			f.products[i].Marca = fields.Marca
			f.products[i].Descricao = fields.Descricao
			f.products[i].Unidade = fields.Unidade
			f.products[i].Quantidade = fields.Quantidade
			f.products[i].ValorUnitario = fields.ValorUnitario
			return f.reply(f.products[i]), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeGateway) DeleteProduct(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	for i := range f.products {
		if f.products[i].ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeGateway) RecordMovement(ctx context.Context, id string, tipo entity.MovementType, quantidade int) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records++
	if f.recordErr != nil {
		return nil, f.recordErr
	}
	for i := range f.products {
		if f.products[i].ID != id {
			continue
		}
		if tipo == entity.MovementSaida {
			if quantidade > f.products[i].Quantidade {
				return nil, domain.ErrInsufficientStock
			}
			f.products[i].Quantidade -= quantidade
		} else {
			f.products[i].Quantidade += quantidade
		}
		if f.noProduct {
			return nil, nil
		}
		return f.reply(f.products[i]), nil
	}
	return nil, domain.ErrNotFound
}

// reply copia p, o solo {id, quantidade} si partial. Requiere mu.
func (f *fakeGateway) reply(p entity.Product) *entity.Product {
	if f.partial {
		return &entity.Product{ID: p.ID, Quantidade: p.Quantidade}
	}
	return &p
}

func (f *fakeGateway) setQuantidade(id string, q int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.products {
		if f.products[i].ID == id {
			f.products[i].Quantidade = q
		}
	}
}

func (f *fakeGateway) counts() (probes, lists, movLists, records int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.probes, f.lists, f.movLists, f.records
}

// recordingNotifier cuenta eventos.
type recordingNotifier struct {
	mu           sync.Mutex
	changed      int
	connectivity []entity.ConnectivityState
	expired      int
}

func (n *recordingNotifier) ProductsChanged([]entity.Product, []string) {
	n.mu.Lock()
	n.changed++
	n.mu.Unlock()
}

func (n *recordingNotifier) ConnectivityChanged(s entity.ConnectivityState) {
	n.mu.Lock()
	n.connectivity = append(n.connectivity, s)
	n.mu.Unlock()
}

func (n *recordingNotifier) SessionExpired() {
	n.mu.Lock()
	n.expired++
	n.mu.Unlock()
}

func (n *recordingNotifier) snapshot() (changed, connectivity, expired int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.changed, len(n.connectivity), n.expired
}

// fakeClock tickers manuales: el test envía los ticks.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers map[time.Duration]*fakeTicker
}

func newFakeClock() *fakeClock {
	return &fakeClock{
		now:     time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
		tickers: map[time.Duration]*fakeTicker{},
	}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func (c *fakeClock) NewTicker(d time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTicker{c: make(chan time.Time)}
	c.tickers[d] = t
	return t
}

func (c *fakeClock) ticker(d time.Duration) *fakeTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tickers[d]
}

type fakeTicker struct {
	c       chan time.Time
	stopped bool
}

func (t *fakeTicker) C() <-chan time.Time { return t.c }
func (t *fakeTicker) Stop()               { t.stopped = true }

// fixture Service + dependencias con sesión activa.
type fixture struct {
	gw       *fakeGateway
	creds    *session.Store
	conn     *Connectivity
	notifier *recordingNotifier
	svc      *Service
}

func newFixture(products ...entity.Product) *fixture {
	gw := newFakeGateway(products...)
	creds := session.NewStore(nil, logger.Nop())
	creds.Set("tok-123")
	conn := NewConnectivity()
	n := &recordingNotifier{}
	return &fixture{
		gw:       gw,
		creds:    creds,
		conn:     conn,
		notifier: n,
		svc:      NewService(gw, NewCache(), creds, conn, n, logger.Nop()),
	}
}

// online fuerza el estado Online sin pasar por el monitor.
func (f *fixture) online() *fixture {
	f.conn.set(true, time.Now())
	return f
}
