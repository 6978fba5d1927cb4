package entity

import "time"

// ConnectivityState foto del estado online/offline con la hora de la última transición.
type ConnectivityState struct {
	Online      bool
	Since       time.Time // última transición; cero si nunca hubo una
	LastProbeAt time.Time
}

// Label "online" u "offline".
func (s ConnectivityState) Label() string {
	if s.Online {
		return "online"
	}
	return "offline"
}
