package repository

import (
	"context"

	"github.com/jhoicas/Estoque-sync/internal/domain/entity"
)

// InventoryGateway define el puerto hacia el almacén remoto autoritativo de estoque (DIP).
// ListProducts, ListMovements y Probe pueden reintentarse sin riesgo; las mutaciones no:
// ninguna implementación debe reintentarlas por su cuenta.
type InventoryGateway interface {
	Probe(ctx context.Context) error
	ListProducts(ctx context.Context) ([]entity.Product, error)
	ListMovements(ctx context.Context) (*entity.MovementHistory, error)
	CreateProduct(ctx context.Context, fields entity.ProductFields) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id string, fields entity.ProductFields) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	// RecordMovement devuelve el produto con el saldo posterior según el servidor;
	// puede ser nil si el backend no lo informa.
	RecordMovement(ctx context.Context, id string, tipo entity.MovementType, quantidade int) (*entity.Product, error)
}

// TokenSource entrega el token de sesión vigente a los adaptadores de salida.
type TokenSource interface {
	Token() (string, bool)
}
