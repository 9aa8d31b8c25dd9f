package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// TransactionFilter filtros de consulta sobre el ledger.
// Campos nil/vacíos no filtran.
type TransactionFilter struct {
	ProductID string
	UserID    string
	Type      string // stock_in | stock_out
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// TransactionView fila del ledger unida con producto y usuario.
// Los lados pueden ser nil si la referencia ya no existe (usuario borrado);
// la consulta no falla por eso.
type TransactionView struct {
	Transaction entity.StockTransaction
	Product     *entity.Product
	User        *entity.User
}

// TransactionRepository puerto append-only del ledger.
// No expone update ni delete: las entradas son inmutables.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.StockTransaction) error
	// List devuelve las entradas filtradas, ordenadas por transaction_date DESC,
	// con producto y usuario unidos por LEFT JOIN.
	List(ctx context.Context, filter TransactionFilter) ([]*TransactionView, error)
	// ListByProduct devuelve las entradas de un producto en orden de commit
	// ascendente (para verificación de encadenamiento y reportes).
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockTransaction, error)
}
