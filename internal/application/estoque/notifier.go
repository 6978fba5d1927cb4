package estoque

import (
	"github.com/jhoicas/Estoque-sync/internal/domain/entity"
	"github.com/jhoicas/Estoque-sync/pkg/logger"
)

// Notifier puerto de salida hacia la capa de presentación (render externo).
type Notifier interface {
	ProductsChanged(products []entity.Product, brands []string)
	ConnectivityChanged(state entity.ConnectivityState)
	SessionExpired()
}

// LogNotifier Notifier por defecto: solo registra los eventos.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notifier.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.Named("eventos")}
}

func (n *LogNotifier) ProductsChanged(products []entity.Product, brands []string) {
	n.log.Info().Int("produtos", len(products)).Int("marcas", len(brands)).Msg("produtos carregados")
}

func (n *LogNotifier) ConnectivityChanged(state entity.ConnectivityState) {
	n.log.Info().Str("estado", state.Label()).Time("desde", state.Since).Msg("conectividade alterada")
}

func (n *LogNotifier) SessionExpired() {
	n.log.Warn().Msg("sessão expirada")
}
