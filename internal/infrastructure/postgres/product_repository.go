package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, unit, category, storage_location_id, opening_stock, current_stock, is_active, created_at, updated_at`

// ProductRepo implementación de ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Unit, &p.Category, &p.StorageLocationID,
		&p.OpeningStock, &p.CurrentStock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Create persiste un producto nuevo. current_stock nace igual a opening_stock.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Unit, product.Category, product.StorageLocationID,
		product.OpeningStock, product.CurrentStock, product.IsActive,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByName obtiene un producto activo por nombre (case-sensitive).
func (r *ProductRepo) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE name = $1 AND is_active LIMIT 1`, name))
	if err != nil {
		return nil, fmt.Errorf("get product by name: %w", err)
	}
	return p, nil
}

// GetForUpdate lee el producto bloqueando la fila (SELECT FOR UPDATE).
// Si lock_timeout expira esperando el lock, devuelve domain.ErrBusy.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if isLockNotAvailable(err) {
			return nil, domain.ErrBusy
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// UpdateStock escribe el nuevo saldo y bumpea updated_at. Solo lo invoca el
// motor de movimientos con la fila ya bloqueada.
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, newStock decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET current_stock = $2, updated_at = now() WHERE id = $1`,
		id, newStock,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// Update actualiza metadatos. No toca current_stock ni opening_stock, así que
// un rename concurrente con un movimiento no pisa el saldo.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		UPDATE products
		SET name = $2, unit = $3, category = $4, storage_location_id = $5, updated_at = $6
		WHERE id = $1`,
		product.ID, product.Name, product.Unit, product.Category,
		product.StorageLocationID, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// SetActive cambia el flag de soft-delete.
func (r *ProductRepo) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET is_active = $2, updated_at = now() WHERE id = $1`,
		id, active,
	)
	if err != nil {
		return fmt.Errorf("set product active: %w", err)
	}
	return nil
}

// List lista productos con paginación, los más recientes primero.
func (r *ProductRepo) List(ctx context.Context, onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	if onlyActive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ListLowStock lista productos activos con current_stock bajo el umbral.
func (r *ProductRepo) ListLowStock(ctx context.Context, threshold decimal.Decimal, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE is_active AND current_stock < $1
		ORDER BY current_stock ASC LIMIT $2 OFFSET $3`,
		threshold, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Unit, &p.Category, &p.StorageLocationID,
			&p.OpeningStock, &p.CurrentStock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
