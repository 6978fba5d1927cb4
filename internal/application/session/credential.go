// Package session guarda el token opaco de sesión del estoque.
package session

import (
	"net/url"
	"strings"
	"sync"

	"github.com/jhoicas/Estoque-sync/pkg/logger"
)

// URLTokenParam parámetro de query por el que el portal entrega el token.
const URLTokenParam = "sessionToken"

// Persister guarda el token para el resto de la sesión (equivalente a sessionStorage).
type Persister interface {
	Save(token string) error
	Load() (string, error)
	Remove() error
}

// Store único escritor: el flujo de autenticación. Lectores concurrentes seguros.
type Store struct {
	mu        sync.RWMutex
	token     string
	persister Persister
	log       *logger.Logger
}

// NewStore construye el store. persister puede ser nil (solo memoria).
func NewStore(persister Persister, log *logger.Logger) *Store {
	return &Store{persister: persister, log: log}
}

// Load restaura el token persistido, si lo hay. Devuelve true si quedó un token cargado.
func (s *Store) Load() bool {
	if s.persister == nil {
		return s.has()
	}
	tok, err := s.persister.Load()
	if err != nil {
		s.log.Warn().Err(err).Msg("sessão: leitura do token persistido")
		return s.has()
	}
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return s.has()
	}
	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()
	return true
}

// Set guarda y persiste el token. Un token vacío equivale a Clear.
func (s *Store) Set(token string) {
	token = strings.TrimSpace(token)
	if token == "" {
		s.Clear()
		return
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	if s.persister != nil {
		if err := s.persister.Save(token); err != nil {
			s.log.Warn().Err(err).Msg("sessão: persistir token")
		}
	}
}

// Token devuelve el token actual.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Clear descarta el token y su copia persistida.
func (s *Store) Clear() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	if s.persister != nil {
		if err := s.persister.Remove(); err != nil {
			s.log.Warn().Err(err).Msg("sessão: remover token persistido")
		}
	}
}

// ConsumeURLToken toma el token de ?sessionToken=..., lo guarda y devuelve la query
// sin el parámetro. ok=false si el parámetro no venía.
func (s *Store) ConsumeURLToken(query url.Values) (rest url.Values, ok bool) {
	tok := strings.TrimSpace(query.Get(URLTokenParam))
	rest = url.Values{}
	for k, v := range query {
		if k != URLTokenParam {
			rest[k] = v
		}
	}
	if tok == "" {
		return rest, false
	}
	s.Set(tok)
	return rest, true
}

func (s *Store) has() bool {
	_, ok := s.Token()
	return ok
}
