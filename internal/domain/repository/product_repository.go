package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
//
// CurrentStock solo se escribe vía UpdateStock, y únicamente desde el motor de
// movimientos dentro de su transacción (con la fila bloqueada por
// GetForUpdate). Update cubre solo metadatos.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	// GetForUpdate lee el producto bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// UpdateStock escribe el nuevo saldo y bumpea updated_at.
	UpdateStock(ctx context.Context, id string, newStock decimal.Decimal) error
	// Update actualiza metadatos (nombre, unidad, categoría, ubicación, activo).
	// Nunca toca current_stock ni opening_stock.
	Update(ctx context.Context, product *entity.Product) error
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context, onlyActive bool, limit, offset int) ([]*entity.Product, error)
	ListLowStock(ctx context.Context, threshold decimal.Decimal, limit, offset int) ([]*entity.Product, error)
}
