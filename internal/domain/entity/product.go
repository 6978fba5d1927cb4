package entity

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// DefaultUnidade unidad de medida cuando el backend no informa ninguna.
const DefaultUnidade = "UN"

// Product representa un produto del estoque tal como lo devuelve el backend.
// Quantidade nunca es negativa; ValorUnitario se guarda con precisión completa
// y solo se redondea a 2 decimales al mostrarse.
type Product struct {
	ID               string          `json:"id"`
	Codigo           Codigo          `json:"codigo"`            // asignado por el servidor
	CodigoFornecedor string          `json:"codigo_fornecedor"` // "modelo" en los relatórios
	NCM              string          `json:"ncm,omitempty"`     // clasificación fiscal opcional
	Marca            string          `json:"marca"`
	Descricao        string          `json:"descricao"`
	Unidade          string          `json:"unidade"`
	Quantidade       int             `json:"quantidade"`
	ValorUnitario    decimal.Decimal `json:"valor_unitario"`
}

// UnidadeOrDefault devuelve la unidad o "UN".
func (p Product) UnidadeOrDefault() string {
	if p.Unidade == "" {
		return DefaultUnidade
	}
	return p.Unidade
}

// ValorTotal quantidade × valor_unitario.
func (p Product) ValorTotal() decimal.Decimal {
	return p.ValorUnitario.Mul(decimal.NewFromInt(int64(p.Quantidade)))
}

// ProductFields campos editables de un produto (create/update).
type ProductFields struct {
	CodigoFornecedor string
	NCM              string
	Marca            string
	Descricao        string
	Unidade          string
	Quantidade       int
	ValorUnitario    decimal.Decimal
}

// Codigo código secuencial del servidor. Llega como número o como string
// según la versión del backend; se normaliza a string.
type Codigo string

// UnmarshalJSON acepta 42, "42" y null.
func (c *Codigo) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*c = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Codigo(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = Codigo(n.String())
	return nil
}

// Int valor numérico del código para ordenar; códigos no numéricos van al final.
func (c Codigo) Int() (int64, bool) {
	n, err := strconv.ParseInt(string(c), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c Codigo) String() string { return string(c) }
