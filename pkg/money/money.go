// Package money formatea y lee valores en reales con las convenciones pt-BR
// ("R$ 1.234,56").
package money

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Symbol prefijo de moneda.
const Symbol = "R$"

// ErrInvalidAmount el texto no es un valor monetario.
var ErrInvalidAmount = errors.New("valor monetário inválido")

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Number "1.234,56": dos decimales, separador de miles. Los centavos salen del
// decimal; nunca pasa por float64.
func Number(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	intPart, cents, _ := strings.Cut(fixed, ".")
	out := groupThousands(intPart) + "," + cents
	if d.IsNegative() && fixed != "0.00" {
		out = "-" + out
	}
	return out
}

// groupThousands agrupa la parte entera con el separador pt-BR.
func groupThousands(digits string) string {
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return printer.Sprint(number.Decimal(n))
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Format "R$ 1.234,56"; negativos como "-R$ 1,00".
func Format(d decimal.Decimal) string {
	if d.Round(2).IsNegative() {
		return "-" + Symbol + " " + Number(d.Neg())
	}
	return Symbol + " " + Number(d)
}

// Parse lee un valor escrito a la brasileña: quita "R$", los puntos de miles y
// usa la coma como separador decimal. Vacío equivale a cero.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), Symbol))
	if s == "" {
		return decimal.Zero, nil
	}
	norm := strings.ReplaceAll(s, ".", "")
	norm = strings.ReplaceAll(norm, ",", ".")
	d, err := decimal.NewFromString(norm)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// BRL valor que en JSON acepta número (2.5) o texto pt-BR ("2,50", "R$ 1.234,56").
// Un texto sin coma se lee como decimal con punto.
type BRL struct {
	decimal.Decimal
}

// NewBRL envuelve un decimal.
func NewBRL(d decimal.Decimal) BRL { return BRL{Decimal: d} }

// UnmarshalJSON acepta número, texto o null (cero).
func (b *BRL) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		b.Decimal = decimal.Zero
		return nil
	}
	if data[0] != '"' {
		d, err := decimal.NewFromString(string(data))
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidAmount, data)
		}
		b.Decimal = d
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if strings.Contains(s, ",") || strings.Contains(s, Symbol) {
		d, err := Parse(s)
		if err != nil {
			return err
		}
		b.Decimal = d
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		b.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	b.Decimal = d
	return nil
}

// MarshalJSON número JSON.
func (b BRL) MarshalJSON() ([]byte, error) {
	return []byte(b.Decimal.String()), nil
}
