package estoque

import (
	"sync"
	"time"

	"github.com/jhoicas/Estoque-sync/internal/domain/entity"
)

// Connectivity estado online/offline compartido. Solo el Monitor escribe;
// Service y la capa HTTP leen.
type Connectivity struct {
	mu    sync.RWMutex
	state entity.ConnectivityState
}

// NewConnectivity inicia en Offline.
func NewConnectivity() *Connectivity {
	return &Connectivity{}
}

// State foto del estado actual.
func (c *Connectivity) State() entity.ConnectivityState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Online atajo de State().Online.
func (c *Connectivity) Online() bool {
	return c.State().Online
}

// set registra el resultado de un probe; devuelve el estado anterior.
func (c *Connectivity) set(online bool, at time.Time) (previous bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	previous = c.state.Online
	if previous != online {
		c.state.Since = at
	}
	c.state.Online = online
	c.state.LastProbeAt = at
	return previous
}
