package estoque

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/Estoque-sync/internal/domain"
	"github.com/jhoicas/Estoque-sync/internal/domain/entity"
	"github.com/jhoicas/Estoque-sync/internal/domain/repository"
	"github.com/jhoicas/Estoque-sync/pkg/logger"
)

// Intervalos por defecto.
const (
	DefaultProbeInterval = 30 * time.Second
	DefaultProbeTimeout  = 10 * time.Second
	DefaultSyncInterval  = 60 * time.Second
)

// MonitorConfig temporización del monitor.
type MonitorConfig struct {
	ProbeInterval time.Duration
	ProbeTimeout  time.Duration
	SyncInterval  time.Duration
	AutoSync      bool
}

func (c MonitorConfig) withDefaults() MonitorConfig {
	if c.ProbeInterval <= 0 {
		c.ProbeInterval = DefaultProbeInterval
	}
	if c.ProbeTimeout <= 0 {
		c.ProbeTimeout = DefaultProbeTimeout
	}
	if c.SyncInterval <= 0 {
		c.SyncInterval = DefaultSyncInterval
	}
	return c
}

// Monitor único escritor del estado de conectividad. Probes y auto-sync corren
// en la misma goroutine, nunca se solapan.
type Monitor struct {
	gateway  repository.InventoryGateway
	conn     *Connectivity
	svc      *Service
	clock    Clock
	cfg      MonitorConfig
	notifier Notifier
	log      *logger.Logger

	stopOnce sync.Once
	stop     chan struct{}
	wake     chan struct{}
}

// NewMonitor construye el monitor. clock nil usa SystemClock; notifier nil usa LogNotifier.
func NewMonitor(
	gateway repository.InventoryGateway,
	conn *Connectivity,
	svc *Service,
	clock Clock,
	cfg MonitorConfig,
	notifier Notifier,
	log *logger.Logger,
) *Monitor {
	if clock == nil {
		clock = SystemClock{}
	}
	if notifier == nil {
		notifier = NewLogNotifier(log)
	}
	return &Monitor{
		gateway:  gateway,
		conn:     conn,
		svc:      svc,
		clock:    clock,
		cfg:      cfg.withDefaults(),
		notifier: notifier,
		log:      log.Named("monitor"),
		stop:     make(chan struct{}),
		wake:     make(chan struct{}, 1),
	}
}

// Config temporización efectiva.
func (m *Monitor) Config() MonitorConfig { return m.cfg }

// ProbeOnce ejecuta un probe y aplica la transición resultante. En el flanco
// Offline→Online dispara una recarga completa (produtos + movimentos).
func (m *Monitor) ProbeOnce(ctx context.Context) entity.ConnectivityState {
	pctx, cancel := context.WithTimeout(ctx, m.cfg.ProbeTimeout)
	err := m.gateway.Probe(pctx)
	cancel()

	online := err == nil
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoSession):
			m.log.Debug().Msg("probe sem sessão")
		case errors.Is(err, domain.ErrUnauthorized):
			m.log.Warn().Err(err).Msg("probe não autorizado")
			m.svc.ExpireSession()
		default:
			m.log.Debug().Err(err).Msg("probe falhou")
		}
	}

	wasOnline := m.conn.set(online, m.clock.Now())
	state := m.conn.State()
	if wasOnline == online {
		return state
	}

	m.log.Info().Str("estado", state.Label()).Msg("conectividade alterada")
	m.notifier.ConnectivityChanged(state)
	if online && ctx.Err() == nil {
		if _, err := m.svc.ReloadAll(ctx, true); err != nil {
			m.log.Warn().Err(err).Msg("recarga ao reconectar")
		}
	}
	return state
}

// SyncOnce recarga silenciosa si está Online y el auto-sync está activo.
// Devuelve true si intentó la recarga.
func (m *Monitor) SyncOnce(ctx context.Context) bool {
	if !m.cfg.AutoSync || !m.conn.Online() {
		return false
	}
	if _, err := m.svc.Reload(ctx, true); err != nil {
		m.log.Debug().Err(err).Msg("auto-sync falhou")
	}
	return true
}

// Run probe inmediato y luego uno por ProbeInterval; auto-sync por SyncInterval.
// Bloquea hasta que ctx se cancela o se llama Stop.
func (m *Monitor) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-m.stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	probeT := m.clock.NewTicker(m.cfg.ProbeInterval)
	defer probeT.Stop()
	syncT := m.clock.NewTicker(m.cfg.SyncInterval)
	defer syncT.Stop()

	m.log.Info().
		Dur("probe_interval", m.cfg.ProbeInterval).
		Dur("sync_interval", m.cfg.SyncInterval).
		Bool("auto_sync", m.cfg.AutoSync).
		Msg("monitor iniciado")

	m.ProbeOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			m.log.Info().Msg("monitor detido")
			return
		case <-probeT.C():
			if ctx.Err() == nil {
				m.ProbeOnce(ctx)
			}
		case <-m.wake:
			if ctx.Err() == nil {
				m.ProbeOnce(ctx)
			}
		case <-syncT.C():
			if ctx.Err() == nil {
				m.SyncOnce(ctx)
			}
		}
	}
}

// Trigger pide un probe inmediato (ej: llegó un token nuevo). No bloquea;
// varios pedidos seguidos se funden en uno.
func (m *Monitor) Trigger() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// Stop detiene Run; idempotente.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}
