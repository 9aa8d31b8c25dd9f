package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const txColumns = `t.id, t.product_id, t.user_id, t.type, t.quantity, t.previous_stock, t.new_stock,
	t.remarks, t.so_number, t.po_number, t.original_quantity, t.original_unit,
	t.transaction_date, t.created_at`

// TransactionRepo adaptador append-only del ledger sobre PostgreSQL
// (usable con pool o tx). No expone UPDATE ni DELETE.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create inserta una entrada del ledger. Las FKs a products y users se
// validan en la BD; una referencia inválida aborta la transacción.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions
			(id, product_id, user_id, type, quantity, previous_stock, new_stock,
			 remarks, so_number, po_number, original_quantity, original_unit,
			 transaction_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.ProductID, t.UserID, t.Type, t.Quantity, t.PreviousStock, t.NewStock,
		t.Remarks, t.SONumber, t.PONumber, t.OriginalQuantity, t.OriginalUnit,
		t.TransactionDate, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock transaction: %w", err)
	}
	return nil
}

// List devuelve entradas filtradas ordenadas por transaction_date DESC,
// unidas con producto y usuario por LEFT JOIN: una referencia rota sale como
// null, nunca como error.
func (r *TransactionRepo) List(ctx context.Context, filter repository.TransactionFilter) ([]*repository.TransactionView, error) {
	query := `
		SELECT ` + txColumns + `,
			p.id, p.name, p.unit, p.category, p.storage_location_id,
			p.opening_stock, p.current_stock, p.is_active, p.created_at, p.updated_at,
			u.id, u.username, u.name, u.role, u.status, u.created_at, u.updated_at
		FROM stock_transactions t
		LEFT JOIN products p ON p.id = t.product_id
		LEFT JOIN users u ON u.id = t.user_id
		WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND t.product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.UserID != "" {
		query += fmt.Sprintf(" AND t.user_id = $%d", pos)
		args = append(args, filter.UserID)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND t.type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND t.transaction_date >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND t.transaction_date <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY t.transaction_date DESC, t.created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var list []*repository.TransactionView
	for rows.Next() {
		var v repository.TransactionView
		var (
			pID, pName, pUnit, pCategory, pLocation *string
			pOpening, pCurrent                      decimal.NullDecimal
			pActive                                 *bool
			pCreated, pUpdated                      *time.Time
			uID, uUsername, uName, uRole, uStatus   *string
			uCreated, uUpdated                      *time.Time
		)
		if err := rows.Scan(
			&v.Transaction.ID, &v.Transaction.ProductID, &v.Transaction.UserID,
			&v.Transaction.Type, &v.Transaction.Quantity, &v.Transaction.PreviousStock,
			&v.Transaction.NewStock, &v.Transaction.Remarks, &v.Transaction.SONumber,
			&v.Transaction.PONumber, &v.Transaction.OriginalQuantity, &v.Transaction.OriginalUnit,
			&v.Transaction.TransactionDate, &v.Transaction.CreatedAt,
			&pID, &pName, &pUnit, &pCategory, &pLocation,
			&pOpening, &pCurrent, &pActive, &pCreated, &pUpdated,
			&uID, &uUsername, &uName, &uRole, &uStatus, &uCreated, &uUpdated,
		); err != nil {
			return nil, fmt.Errorf("scan transaction view: %w", err)
		}
		if pID != nil {
			v.Product = &entity.Product{
				ID: *pID, Name: *pName, Unit: *pUnit, Category: *pCategory,
				StorageLocationID: *pLocation,
				OpeningStock:      pOpening.Decimal, CurrentStock: pCurrent.Decimal,
				IsActive:  *pActive,
				CreatedAt: *pCreated, UpdatedAt: *pUpdated,
			}
		}
		if uID != nil {
			v.User = &entity.User{
				ID: *uID, Username: *uUsername, Name: *uName,
				Role: *uRole, Status: *uStatus,
				CreatedAt: *uCreated, UpdatedAt: *uUpdated,
			}
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// ListByProduct devuelve las entradas de un producto en orden de commit
// ascendente (para verificar el encadenamiento previous/new).
func (r *TransactionRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockTransaction, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+txColumns+`
		FROM stock_transactions t
		WHERE t.product_id = $1
		ORDER BY t.created_at ASC LIMIT $2 OFFSET $3`,
		productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list by product: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockTransaction
	for rows.Next() {
		var t entity.StockTransaction
		if err := rows.Scan(&t.ID, &t.ProductID, &t.UserID, &t.Type, &t.Quantity,
			&t.PreviousStock, &t.NewStock, &t.Remarks, &t.SONumber, &t.PONumber,
			&t.OriginalQuantity, &t.OriginalUnit, &t.TransactionDate, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
