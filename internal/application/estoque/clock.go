package estoque

import "time"

// Ticker abstracción de time.Ticker para simular el paso del tiempo en tests.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock fuente de tiempo y de tickers.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

// SystemClock reloj de pared.
type SystemClock struct{}

// Now hora actual.
func (SystemClock) Now() time.Time { return time.Now() }

// NewTicker envuelve time.NewTicker.
func (SystemClock) NewTicker(d time.Duration) Ticker {
	return systemTicker{t: time.NewTicker(d)}
}

type systemTicker struct{ t *time.Ticker }

func (s systemTicker) C() <-chan time.Time { return s.t.C }
func (s systemTicker) Stop()               { s.t.Stop() }
