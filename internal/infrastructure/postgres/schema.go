package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema crea las tablas si no existen. Es idempotente; no hay
// migraciones más allá de esto.
//
// Los invariantes del ledger se refuerzan también en la BD: current_stock
// nunca negativo, quantity siempre positiva, FKs de stock_transactions a
// products y users, y ninguna operación de UPDATE/DELETE expuesta sobre
// stock_transactions por los repositorios.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			name          TEXT NOT NULL,
			role          TEXT NOT NULL,
			status        TEXT NOT NULL DEFAULT 'active',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS storage_locations (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS storage_dimensions (
			id          TEXT PRIMARY KEY,
			location_id TEXT NOT NULL REFERENCES storage_locations(id) ON DELETE CASCADE,
			name        TEXT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id                  TEXT PRIMARY KEY,
			name                TEXT NOT NULL,
			unit                TEXT NOT NULL,
			category            TEXT NOT NULL DEFAULT '',
			storage_location_id TEXT NOT NULL DEFAULT '',
			opening_stock       NUMERIC(14,2) NOT NULL CHECK (opening_stock >= 0),
			current_stock       NUMERIC(14,2) NOT NULL CHECK (current_stock >= 0),
			is_active           BOOLEAN NOT NULL DEFAULT TRUE,
			created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_products_active_name
			ON products (name) WHERE is_active`,
		`CREATE TABLE IF NOT EXISTS stock_transactions (
			id                TEXT PRIMARY KEY,
			product_id        TEXT NOT NULL REFERENCES products(id),
			user_id           TEXT NOT NULL REFERENCES users(id),
			type              TEXT NOT NULL CHECK (type IN ('stock_in', 'stock_out')),
			quantity          NUMERIC(14,2) NOT NULL CHECK (quantity > 0),
			previous_stock    NUMERIC(14,2) NOT NULL,
			new_stock         NUMERIC(14,2) NOT NULL,
			remarks           TEXT NOT NULL DEFAULT '',
			so_number         TEXT NOT NULL DEFAULT '',
			po_number         TEXT NOT NULL DEFAULT '',
			original_quantity TEXT NOT NULL DEFAULT '',
			original_unit     TEXT NOT NULL DEFAULT '',
			transaction_date  TIMESTAMPTZ NOT NULL,
			created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stock_tx_product_date
			ON stock_transactions (product_id, transaction_date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_stock_tx_date
			ON stock_transactions (transaction_date DESC)`,
	}
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
