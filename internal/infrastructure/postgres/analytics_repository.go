package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
// Un fallo de la BD se propaga como error: nunca se devuelven datos
// inventados en su lugar.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// CountProducts devuelve total y activos en una sola consulta.
func (r *AnalyticsRepo) CountProducts(ctx context.Context) (total, active int, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active)
		FROM products`).Scan(&total, &active)
	if err != nil {
		return 0, 0, fmt.Errorf("analytics.CountProducts: %w", err)
	}
	return total, active, nil
}

// SumActiveStock suma current_stock de los productos activos.
func (r *AnalyticsRepo) SumActiveStock(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(current_stock), 0)
		FROM products WHERE is_active`).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("analytics.SumActiveStock: %w", err)
	}
	return sum, nil
}

// SumMovements suma quantity del tipo dado con transaction_date en [from, to).
func (r *AnalyticsRepo) SumMovements(ctx context.Context, txType string, from, to time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity), 0)
		FROM stock_transactions
		WHERE type = $1 AND transaction_date >= $2 AND transaction_date < $3`,
		txType, from, to).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("analytics.SumMovements: %w", err)
	}
	return sum, nil
}

// CountLowStock cuenta productos activos con current_stock < threshold.
func (r *AnalyticsRepo) CountLowStock(ctx context.Context, threshold decimal.Decimal) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM products
		WHERE is_active AND current_stock < $1`, threshold).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("analytics.CountLowStock: %w", err)
	}
	return count, nil
}

// DailyMovements agrupa entradas y salidas por día dentro de [from, to).
func (r *AnalyticsRepo) DailyMovements(ctx context.Context, from, to time.Time) ([]repository.DailyMovementRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			date_trunc('day', transaction_date)                                  AS day,
			COALESCE(SUM(quantity) FILTER (WHERE type = 'stock_in'),  0)         AS stock_in,
			COALESCE(SUM(quantity) FILTER (WHERE type = 'stock_out'), 0)         AS stock_out
		FROM stock_transactions
		WHERE transaction_date >= $1 AND transaction_date < $2
		GROUP BY 1 ORDER BY 1`, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.DailyMovements: %w", err)
	}
	defer rows.Close()
	var results []repository.DailyMovementRow
	for rows.Next() {
		var row repository.DailyMovementRow
		if err := rows.Scan(&row.Day, &row.StockIn, &row.StockOut); err != nil {
			return nil, fmt.Errorf("analytics.DailyMovements scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CategoryBreakdown agrupa productos activos por categoría.
// Los productos sin categoría se consolidan en "sin_categoria".
func (r *AnalyticsRepo) CategoryBreakdown(ctx context.Context) ([]repository.CategoryBreakdownRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			COALESCE(NULLIF(category, ''), 'sin_categoria') AS category,
			COUNT(*)                                        AS products,
			COALESCE(SUM(current_stock), 0)                 AS total_stock
		FROM products WHERE is_active
		GROUP BY 1 ORDER BY total_stock DESC`)
	if err != nil {
		return nil, fmt.Errorf("analytics.CategoryBreakdown: %w", err)
	}
	defer rows.Close()
	var results []repository.CategoryBreakdownRow
	for rows.Next() {
		var row repository.CategoryBreakdownRow
		if err := rows.Scan(&row.Category, &row.Products, &row.TotalStock); err != nil {
			return nil, fmt.Errorf("analytics.CategoryBreakdown scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// TopMovers devuelve los productos con mayor volumen movido (entradas más
// salidas, en magnitud) dentro de [from, to).
func (r *AnalyticsRepo) TopMovers(ctx context.Context, from, to time.Time, limit int) ([]repository.TopMoverRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.product_id, COALESCE(p.name, ''), SUM(t.quantity) AS moved
		FROM stock_transactions t
		LEFT JOIN products p ON p.id = t.product_id
		WHERE t.transaction_date >= $1 AND t.transaction_date < $2
		GROUP BY t.product_id, p.name
		ORDER BY moved DESC
		LIMIT $3`, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.TopMovers: %w", err)
	}
	defer rows.Close()
	var results []repository.TopMoverRow
	for rows.Next() {
		var row repository.TopMoverRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.MovedQty); err != nil {
			return nil, fmt.Errorf("analytics.TopMovers scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// StockHistogram cuenta productos activos por rango de stock.
func (r *AnalyticsRepo) StockHistogram(ctx context.Context) ([]repository.HistogramBucket, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT bucket, COUNT(*) FROM (
			SELECT CASE
				WHEN current_stock = 0 THEN '0'
				WHEN current_stock <= 10 THEN '1-10'
				WHEN current_stock <= 50 THEN '11-50'
				WHEN current_stock <= 100 THEN '51-100'
				ELSE '100+'
			END AS bucket
			FROM products WHERE is_active
		) b
		GROUP BY bucket
		ORDER BY CASE bucket
			WHEN '0' THEN 0 WHEN '1-10' THEN 1 WHEN '11-50' THEN 2
			WHEN '51-100' THEN 3 ELSE 4
		END`)
	if err != nil {
		return nil, fmt.Errorf("analytics.StockHistogram: %w", err)
	}
	defer rows.Close()
	var results []repository.HistogramBucket
	for rows.Next() {
		var row repository.HistogramBucket
		if err := rows.Scan(&row.Label, &row.Count); err != nil {
			return nil, fmt.Errorf("analytics.StockHistogram scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// MonthlyTrend totales de entradas y salidas por mes, últimos `months` meses.
func (r *AnalyticsRepo) MonthlyTrend(ctx context.Context, months int) ([]repository.MonthlyTrendRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			EXTRACT(YEAR FROM month)::INT,
			EXTRACT(MONTH FROM month)::INT,
			stock_in, stock_out
		FROM (
			SELECT
				date_trunc('month', transaction_date)                            AS month,
				COALESCE(SUM(quantity) FILTER (WHERE type = 'stock_in'),  0)     AS stock_in,
				COALESCE(SUM(quantity) FILTER (WHERE type = 'stock_out'), 0)     AS stock_out
			FROM stock_transactions
			WHERE transaction_date >= date_trunc('month', now()) - ($1 - 1) * INTERVAL '1 month'
			GROUP BY 1
		) m ORDER BY month`, months)
	if err != nil {
		return nil, fmt.Errorf("analytics.MonthlyTrend: %w", err)
	}
	defer rows.Close()
	var results []repository.MonthlyTrendRow
	for rows.Next() {
		var year, month int
		var row repository.MonthlyTrendRow
		if err := rows.Scan(&year, &month, &row.StockIn, &row.StockOut); err != nil {
			return nil, fmt.Errorf("analytics.MonthlyTrend scan: %w", err)
		}
		row.Year = year
		row.Month = time.Month(month)
		results = append(results, row)
	}
	return results, rows.Err()
}
