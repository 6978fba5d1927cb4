package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MovementType dirección de un movimiento de estoque.
type MovementType string

// Tipos de movimiento (valor del campo "tipo" en /movimentar).
const (
	MovementEntrada MovementType = "entrada"
	MovementSaida   MovementType = "saida"
)

// Valid indica si el tipo es entrada o saida.
func (t MovementType) Valid() bool {
	return t == MovementEntrada || t == MovementSaida
}

// Movement registro histórico de entrada o saída (GET /estoque/movimentos).
// Quantidade es siempre positiva; la dirección la da Tipo. Data queda en cero
// cuando el backend manda una fecha ilegible.
type Movement struct {
	ID         string       `json:"id,omitempty"`
	ProdutoID  string       `json:"produto_id"`
	Tipo       MovementType `json:"tipo,omitempty"`
	Quantidade int          `json:"quantidade"`
	Data       time.Time    `json:"data"`
}

// MovementHistory entradas y saídas tal como las separa el backend.
type MovementHistory struct {
	Entradas []Movement `json:"entradas"`
	Saidas   []Movement `json:"saidas"`
}

// UnmarshalJSON decodifica data con ParseDate; una fecha ilegible no invalida
// el registro.
func (m *Movement) UnmarshalJSON(b []byte) error {
	type alias Movement
	aux := struct {
		*alias
		Data json.RawMessage `json:"data"`
	}{alias: (*alias)(m)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	m.Data = time.Time{}

	raw := bytes.TrimSpace(aux.Data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] != '"' {
		// epoch en milisegundos
		var n json.Number
		if err := json.Unmarshal(raw, &n); err == nil {
			if ms, err := n.Int64(); err == nil {
				m.Data = time.UnixMilli(ms)
			}
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	if t, err := ParseDate(s); err == nil {
		m.Data = t
	}
	return nil
}

// Formatos aceptados para la fecha de un movimento. Los que no traen zona se
// leen en la hora local.
var dateLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDate lee RFC3339 y las variantes ISO sin zona, con espacio en lugar
// de la T, o solo fecha.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02 15:04:05Z07:00", s); err == nil {
		return t, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("data inválida: %q", s)
}
