// Package estoque coordina la sincronización del estoque local con el backend
// autoritativo: cache con detección de cambios, monitor de conectividad y el
// flujo de movimentos (guarda local → servidor → reconciliación → reload).
package estoque

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/Estoque-sync/internal/application/session"
	"github.com/jhoicas/Estoque-sync/internal/domain"
	"github.com/jhoicas/Estoque-sync/internal/domain/entity"
	"github.com/jhoicas/Estoque-sync/internal/domain/repository"
	"github.com/jhoicas/Estoque-sync/internal/domain/stock"
	"github.com/jhoicas/Estoque-sync/pkg/logger"
)

// AllBrands valor del filtro de marca que no filtra.
const AllBrands = "TODAS"

const reloadKey = "estoque"

// ReloadResult resultado de un reload aplicado (o descartado por viejo).
type ReloadResult struct {
	Outcome  Outcome
	Products int
	Stale    bool // la respuesta llegó después de otra más nueva y se descartó
}

// Service estado de sesión explícito: reemplaza las variables globales del front.
// Es el único que escribe en la Cache.
type Service struct {
	gateway  repository.InventoryGateway
	cache    *Cache
	creds    *session.Store
	conn     *Connectivity
	notifier Notifier
	log      *logger.Logger

	sf      singleflight.Group
	seq     atomic.Uint64
	applyMu sync.Mutex
	applied uint64

	movMu     sync.RWMutex
	movements entity.MovementHistory
}

// NewService construye el servicio. notifier puede ser nil.
func NewService(
	gateway repository.InventoryGateway,
	cache *Cache,
	creds *session.Store,
	conn *Connectivity,
	notifier Notifier,
	log *logger.Logger,
) *Service {
	if notifier == nil {
		notifier = NewLogNotifier(log)
	}
	return &Service{
		gateway:  gateway,
		cache:    cache,
		creds:    creds,
		conn:     conn,
		notifier: notifier,
		log:      log.Named("estoque"),
	}
}

// ── Lectura / sincronización ─────────────────────────────────────────────────

type fetchResult struct {
	seq      uint64
	products []entity.Product
}

// Reload trae la lista completa y la pasa por la cache. Las llamadas concurrentes
// comparten la misma ida y vuelta. silent=true: los errores solo se registran.
func (s *Service) Reload(ctx context.Context, silent bool) (ReloadResult, error) {
	return s.reload(ctx, silent, false)
}

// reload con fresh=true no se une a una llamada en curso: tras una mutación la
// lectura debe empezar después de que el servidor la aplicó. Además instala la
// lista aunque el fingerprint no cambie.
func (s *Service) reload(ctx context.Context, silent, fresh bool) (ReloadResult, error) {
	if !s.conn.Online() {
		return ReloadResult{}, s.fail(domain.ErrOffline, silent, "carregar produtos")
	}
	if fresh {
		s.sf.Forget(reloadKey)
	}
	v, err, _ := s.sf.Do(reloadKey, func() (any, error) {
		seq := s.seq.Add(1)
		list, err := s.gateway.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		return fetchResult{seq: seq, products: list}, nil
	})
	if err != nil {
		return ReloadResult{}, s.fail(err, silent, "carregar produtos")
	}
	return s.apply(v.(fetchResult), silent, fresh), nil
}

// apply serializa las escrituras en la cache: gana la lectura que empezó más tarde.
// force usa Replace en lugar de Ingest.
func (s *Service) apply(r fetchResult, silent, force bool) ReloadResult {
	s.applyMu.Lock()
	if r.seq < s.applied {
		s.applyMu.Unlock()
		s.log.Debug().Uint64("seq", r.seq).Uint64("aplicado", s.applied).Msg("resposta antiga descartada")
		return ReloadResult{Outcome: Unchanged, Products: len(r.products), Stale: true}
	}
	s.applied = r.seq
	var outcome Outcome
	if force {
		outcome = s.cache.Replace(r.products)
	} else {
		outcome = s.cache.Ingest(r.products)
	}
	s.applyMu.Unlock()

	if outcome == Changed {
		s.notifier.ProductsChanged(s.cache.Products(), s.cache.Brands())
		if !silent {
			s.log.Info().Int("produtos", len(r.products)).Msg("produtos carregados")
		}
	}
	return ReloadResult{Outcome: outcome, Products: len(r.products)}
}

// invalidateInFlight marca como viejas las lecturas iniciadas antes de una
// mutación confirmada. Requiere applyMu.
func (s *Service) invalidateInFlight() {
	if next := s.seq.Load() + 1; next > s.applied {
		s.applied = next
	}
}

// ReloadMovements trae el histórico de entradas/saídas (usado por los relatórios).
func (s *Service) ReloadMovements(ctx context.Context, silent bool) error {
	if !s.conn.Online() {
		return s.fail(domain.ErrOffline, silent, "carregar movimentos")
	}
	hist, err := s.gateway.ListMovements(ctx)
	if err != nil {
		return s.fail(err, silent, "carregar movimentos")
	}
	s.movMu.Lock()
	s.movements = *hist
	s.movMu.Unlock()
	return nil
}

// SyncNow sincronización manual: produtos + movimentos, errores visibles.
func (s *Service) SyncNow(ctx context.Context) (ReloadResult, error) {
	return s.ReloadAll(ctx, false)
}

// ReloadAll produtos y luego movimentos.
func (s *Service) ReloadAll(ctx context.Context, silent bool) (ReloadResult, error) {
	res, err := s.Reload(ctx, silent)
	if err != nil {
		return res, err
	}
	if err := s.ReloadMovements(ctx, silent); err != nil {
		return res, err
	}
	return res, nil
}

// refreshAfterMutation reload fresco + movimentos en modo silencioso; la mutación
// ya fue confirmada por el servidor, así que un fallo aquí no la invalida.
func (s *Service) refreshAfterMutation(ctx context.Context) {
	if _, err := s.reload(ctx, true, true); err != nil {
		return
	}
	_ = s.ReloadMovements(ctx, true)
}

// ── Consultas ────────────────────────────────────────────────────────────────

// Products copia de la colección en cache.
func (s *Service) Products() []entity.Product { return s.cache.Products() }

// FindByID produto en cache.
func (s *Service) FindByID(id string) (entity.Product, bool) { return s.cache.FindByID(id) }

// Brands marcas distintas.
func (s *Service) Brands() []string { return s.cache.Brands() }

// Fingerprint de la colección aplicada.
func (s *Service) Fingerprint() string { return s.cache.Fingerprint() }

// Connectivity estado de conexión.
func (s *Service) Connectivity() entity.ConnectivityState { return s.conn.State() }

// HasSession indica si hay token.
func (s *Service) HasSession() bool {
	_, ok := s.creds.Token()
	return ok
}

// Movements último histórico cargado.
func (s *Service) Movements() entity.MovementHistory {
	s.movMu.RLock()
	defer s.movMu.RUnlock()
	return entity.MovementHistory{
		Entradas: append([]entity.Movement(nil), s.movements.Entradas...),
		Saidas:   append([]entity.Movement(nil), s.movements.Saidas...),
	}
}

// Filter aplica el filtro de marca (AllBrands o vacío = todas) y la búsqueda
// por codigo, codigo_fornecedor, marca o descricao, sin distinguir mayúsculas.
func (s *Service) Filter(marca, busca string) []entity.Product {
	return FilterProducts(s.cache.Products(), marca, busca)
}

// FilterProducts versión pura de Filter.
func FilterProducts(products []entity.Product, marca, busca string) []entity.Product {
	busca = strings.ToLower(strings.TrimSpace(busca))
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if marca != "" && marca != AllBrands && p.Marca != marca {
			continue
		}
		if busca != "" &&
			!strings.Contains(strings.ToLower(p.Codigo.String()), busca) &&
			!strings.Contains(strings.ToLower(p.CodigoFornecedor), busca) &&
			!strings.Contains(strings.ToLower(p.Marca), busca) &&
			!strings.Contains(strings.ToLower(p.Descricao), busca) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ── Mutaciones (nunca se reintentan automáticamente) ─────────────────────────

// CreateProduct valida, crea en el servidor y recarga.
func (s *Service) CreateProduct(ctx context.Context, in entity.ProductFields) (*entity.Product, error) {
	in = stock.NormalizeFields(in)
	if err := stock.ValidateFields(in); err != nil {
		return nil, err
	}
	p, err := s.gateway.CreateProduct(ctx, in)
	if err != nil {
		return nil, s.fail(err, false, "criar produto")
	}
	s.log.Info().Str("codigo", p.Codigo.String()).Int("quantidade", p.Quantidade).Msg("produto criado")
	s.refreshAfterMutation(ctx)
	return p, nil
}

// UpdateProduct valida, actualiza en el servidor, reconcilia la cache con la
// edición confirmada y recarga.
func (s *Service) UpdateProduct(ctx context.Context, id string, in entity.ProductFields) (*entity.Product, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id é obrigatório", domain.ErrInvalidInput)
	}
	in = stock.NormalizeFields(in)
	if err := stock.ValidateFields(in); err != nil {
		return nil, err
	}
	p, err := s.gateway.UpdateProduct(ctx, id, in)
	if err != nil {
		return nil, s.fail(err, false, "atualizar produto")
	}

	base, ok := s.cache.FindByID(id)
	if !ok {
		base = entity.Product{ID: id}
	}
	edited := mergeProduct(withFields(base, in), p)
	s.reconcile(edited)

	s.log.Info().Str("produto_id", id).Msg("produto atualizado")
	s.refreshAfterMutation(ctx)
	return s.current(edited), nil
}

// DeleteProduct elimina en el servidor, quita de la cache y recarga.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id é obrigatório", domain.ErrInvalidInput)
	}
	if err := s.gateway.DeleteProduct(ctx, id); err != nil {
		return s.fail(err, false, "excluir produto")
	}
	s.applyMu.Lock()
	s.invalidateInFlight()
	outcome := s.cache.Remove(id)
	s.applyMu.Unlock()
	if outcome == Changed {
		s.notifier.ProductsChanged(s.cache.Products(), s.cache.Brands())
	}
	s.log.Info().Str("produto_id", id).Msg("produto excluído")
	s.refreshAfterMutation(ctx)
	return nil
}

// Entrada registra una entrada de quantidade unidades.
func (s *Service) Entrada(ctx context.Context, id string, quantidade int) (*entity.Product, error) {
	return s.Movimentar(ctx, id, entity.MovementEntrada, quantidade)
}

// Saida registra una saída; falla sin tocar la red si supera el saldo en cache.
func (s *Service) Saida(ctx context.Context, id string, quantidade int) (*entity.Product, error) {
	return s.Movimentar(ctx, id, entity.MovementSaida, quantidade)
}

// Movimentar guarda local → POST al servidor → reconcilia la cache con el saldo
// devuelto (nunca con un delta calculado aquí) → reload fresco.
func (s *Service) Movimentar(ctx context.Context, id string, tipo entity.MovementType, quantidade int) (*entity.Product, error) {
	product, ok := s.cache.FindByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: produto %s", domain.ErrNotFound, id)
	}
	if err := stock.Prepare(product, tipo, quantidade); err != nil {
		return nil, err
	}

	updated, err := s.gateway.RecordMovement(ctx, id, tipo, quantidade)
	if err != nil {
		return nil, s.fail(err, false, "registrar movimento")
	}

	// La respuesta puede traer solo {id, quantidade}: del movimento se toma el saldo.
	if updated != nil {
		s.applyMu.Lock()
		s.invalidateInFlight()
		outcome := s.cache.SetQuantidade(id, updated.Quantidade)
		s.applyMu.Unlock()
		if outcome == Changed {
			s.notifier.ProductsChanged(s.cache.Products(), s.cache.Brands())
		}
	}

	s.log.Info().
		Str("produto_id", id).
		Str("codigo", product.Codigo.String()).
		Str("tipo", string(tipo)).
		Int("quantidade", quantidade).
		Msg("movimento registrado")

	s.refreshAfterMutation(ctx)

	if p, ok := s.cache.FindByID(id); ok {
		return &p, nil
	}
	return updated, nil
}

// reconcile instala p en la cache como escritura propia confirmada.
func (s *Service) reconcile(p entity.Product) {
	s.applyMu.Lock()
	s.invalidateInFlight()
	outcome := s.cache.Reconcile(p)
	s.applyMu.Unlock()
	if outcome == Changed {
		s.notifier.ProductsChanged(s.cache.Products(), s.cache.Brands())
	}
}

// current versión en cache de p (tras el reload), o p si ya no está.
func (s *Service) current(p entity.Product) *entity.Product {
	if c, ok := s.cache.FindByID(p.ID); ok {
		return &c
	}
	return &p
}

// withFields aplica los campos editados sobre el registro conocido.
func withFields(p entity.Product, in entity.ProductFields) entity.Product {
	p.CodigoFornecedor = in.CodigoFornecedor
	p.NCM = in.NCM
	p.Marca = in.Marca
	p.Descricao = in.Descricao
	p.Unidade = in.Unidade
	p.Quantidade = in.Quantidade
	p.ValorUnitario = in.ValorUnitario
	return p
}

// mergeProduct copia sobre base los campos que el servidor sí devolvió; una
// respuesta parcial no borra lo que ya se sabe.
func mergeProduct(base entity.Product, srv *entity.Product) entity.Product {
	if srv == nil {
		return base
	}
	if srv.Codigo != "" {
		base.Codigo = srv.Codigo
	}
	if srv.CodigoFornecedor != "" {
		base.CodigoFornecedor = srv.CodigoFornecedor
	}
	if srv.NCM != "" {
		base.NCM = srv.NCM
	}
	if srv.Marca != "" {
		base.Marca = srv.Marca
	}
	if srv.Descricao != "" {
		base.Descricao = srv.Descricao
	}
	if srv.Unidade != "" {
		base.Unidade = srv.Unidade
	}
	if srv.Quantidade != 0 {
		base.Quantidade = srv.Quantidade
	}
	if !srv.ValorUnitario.IsZero() {
		base.ValorUnitario = srv.ValorUnitario
	}
	return base
}

// ── Errores ──────────────────────────────────────────────────────────────────

// fail aplica la política de errores: Unauthorized limpia la sesión siempre;
// en modo silencioso solo se registra.
func (s *Service) fail(err error, silent bool, op string) error {
	if errors.Is(err, domain.ErrUnauthorized) && !errors.Is(err, domain.ErrNoSession) {
		s.ExpireSession()
	}
	ev := s.log.Warn()
	if silent {
		ev = s.log.Debug()
	}
	ev.Err(err).Str("op", op).Bool("silencioso", silent).Msg("falha")
	return err
}

// ExpireSession limpia el token y avisa a la presentación. Hasta un nuevo token
// ninguna llamada autenticada sale a la red.
func (s *Service) ExpireSession() {
	if _, had := s.creds.Token(); !had {
		return
	}
	s.creds.Clear()
	s.notifier.SessionExpired()
}
