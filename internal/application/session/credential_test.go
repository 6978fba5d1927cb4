package session_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-sync/internal/application/session"
	"github.com/jhoicas/Estoque-sync/pkg/logger"
)

type memPersister struct {
	token   string
	saves   int
	removes int
	failAll bool
}

func (m *memPersister) Save(t string) error {
	if m.failAll {
		return errors.New("disco cheio")
	}
	m.saves++
	m.token = t
	return nil
}

func (m *memPersister) Load() (string, error) {
	if m.failAll {
		return "", errors.New("ilegível")
	}
	return m.token, nil
}

func (m *memPersister) Remove() error {
	m.removes++
	m.token = ""
	return nil
}

func TestStore_SetTokenClear(t *testing.T) {
	p := &memPersister{}
	s := session.NewStore(p, logger.Nop())

	_, ok := s.Token()
	assert.False(t, ok, "inicia sem token")

	s.Set("  tok-1 ")
	tok, ok := s.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-1", tok)
	assert.Equal(t, "tok-1", p.token, "token persistido")

	s.Clear()
	_, ok = s.Token()
	assert.False(t, ok)
	assert.Empty(t, p.token)
	assert.Equal(t, 1, p.removes)
}

func TestStore_LoadRestauraPersistido(t *testing.T) {
	p := &memPersister{token: "anterior"}
	s := session.NewStore(p, logger.Nop())

	require.True(t, s.Load())
	tok, _ := s.Token()
	assert.Equal(t, "anterior", tok)
}

func TestStore_FalhaDoPersisterNaoPropaga(t *testing.T) {
	s := session.NewStore(&memPersister{failAll: true}, logger.Nop())
	assert.False(t, s.Load())
	s.Set("x")
	tok, ok := s.Token()
	assert.True(t, ok, "o token fica em memória mesmo sem persistência")
	assert.Equal(t, "x", tok)
}

func TestStore_ConsumeURLToken(t *testing.T) {
	s := session.NewStore(nil, logger.Nop())

	q := url.Values{"sessionToken": {"do-portal"}, "marca": {"ACME"}}
	rest, ok := s.ConsumeURLToken(q)
	require.True(t, ok)
	assert.Equal(t, "ACME", rest.Get("marca"))
	assert.Empty(t, rest.Get("sessionToken"), "o parâmetro é removido")

	tok, _ := s.Token()
	assert.Equal(t, "do-portal", tok)

	_, ok = s.ConsumeURLToken(url.Values{})
	assert.False(t, ok)
	tok, _ = s.Token()
	assert.Equal(t, "do-portal", tok, "sem parâmetro o token anterior continua")
}
