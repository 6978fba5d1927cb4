package dto

import (
	"time"

	"github.com/jhoicas/Estoque-sync/internal/domain/entity"
)

// MovementRequest entrada de POST /api/produtos/:id/{entrada,saida,movimentar}.
// Tipo solo se usa en /movimentar.
type MovementRequest struct {
	Tipo       string `json:"tipo"`
	Quantidade int    `json:"quantidade"`
}

// MovementResponse produto con el saldo confirmado por el servidor.
type MovementResponse struct {
	Produto    ProductResponse `json:"produto"`
	Tipo       string          `json:"tipo"`
	Quantidade int             `json:"quantidade"`
	Message    string          `json:"message"` // ej: "Entrada de 3 para o item 42"
}

// MovementItem un movimento del histórico.
type MovementItem struct {
	ID         string    `json:"id,omitempty"`
	ProdutoID  string    `json:"produto_id"`
	Tipo       string    `json:"tipo"`
	Quantidade int       `json:"quantidade"`
	Data       time.Time `json:"data"`
}

// MovementHistoryResponse respuesta de GET /api/movimentos.
type MovementHistoryResponse struct {
	Entradas []MovementItem `json:"entradas"`
	Saidas   []MovementItem `json:"saidas"`
}

// FromHistory mapea el histórico.
func FromHistory(h entity.MovementHistory) MovementHistoryResponse {
	return MovementHistoryResponse{Entradas: movementItems(h.Entradas), Saidas: movementItems(h.Saidas)}
}

func movementItems(list []entity.Movement) []MovementItem {
	out := make([]MovementItem, 0, len(list))
	for _, m := range list {
		out = append(out, MovementItem{
			ID:         m.ID,
			ProdutoID:  m.ProdutoID,
			Tipo:       string(m.Tipo),
			Quantidade: m.Quantidade,
			Data:       m.Data,
		})
	}
	return out
}
