package dto

import "time"

// StatusResponse respuesta de GET /api/status.
type StatusResponse struct {
	Online      bool      `json:"online"`
	Estado      string    `json:"estado"` // "online" / "offline"
	Desde       time.Time `json:"desde"`
	UltimoProbe time.Time `json:"ultimo_probe"`
	HasSession  bool      `json:"has_session"`
	Fingerprint string    `json:"fingerprint"`
	Produtos    int       `json:"produtos"`
	AutoSync    bool      `json:"auto_sync"`
}

// SessionRequest entrada de POST /api/session.
type SessionRequest struct {
	Token string `json:"token"`
}

// SyncResponse respuesta de POST /api/sync.
type SyncResponse struct {
	Outcome  string `json:"outcome"` // changed / unchanged
	Produtos int    `json:"produtos"`
	Message  string `json:"message"`
}
