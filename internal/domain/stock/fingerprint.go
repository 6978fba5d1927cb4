package stock

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/jhoicas/Estoque-sync/internal/domain/entity"
)

// EmptyFingerprint centinela previo al primer ingest; nunca coincide con un cálculo real.
const EmptyFingerprint = ""

// Fingerprint resume la secuencia ordenada de pares (id, quantidade).
// Solo la deriva de cantidades cuenta: cambios de precio o descripción con la
// misma cantidad producen el mismo valor.
func Fingerprint(products []entity.Product) string {
	h := sha256.New()
	buf := make([]byte, 0, 64)
	for _, p := range products {
		buf = buf[:0]
		buf = strconv.AppendQuote(buf, p.ID)
		buf = append(buf, '-')
		buf = strconv.AppendInt(buf, int64(p.Quantidade), 10)
		buf = append(buf, '\n')
		h.Write(buf)
	}
	return hex.EncodeToString(h.Sum(nil))
}
