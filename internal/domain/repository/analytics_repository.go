package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DailyMovementRow suma de entradas y salidas de un día.
type DailyMovementRow struct {
	Day      time.Time
	StockIn  decimal.Decimal
	StockOut decimal.Decimal
}

// CategoryBreakdownRow productos y stock agregados por categoría.
type CategoryBreakdownRow struct {
	Category   string
	Products   int
	TotalStock decimal.Decimal
}

// TopMoverRow producto con mayor volumen movido en el período.
type TopMoverRow struct {
	ProductID   string
	ProductName string
	MovedQty    decimal.Decimal // suma de magnitudes, entradas + salidas
}

// HistogramBucket cubeta del histograma de niveles de stock.
type HistogramBucket struct {
	Label string // "0", "1-10", "11-50", "51-100", "100+"
	Count int
}

// MonthlyTrendRow totales de entradas y salidas de un mes.
type MonthlyTrendRow struct {
	Year     int
	Month    time.Month
	StockIn  decimal.Decimal
	StockOut decimal.Decimal
}

// AnalyticsRepository consultas read-only para el dashboard.
// Las implementaciones nunca modifican datos y nunca devuelven datos
// inventados ante un fallo de la BD: el error se propaga.
type AnalyticsRepository interface {
	// CountProducts devuelve total y activos.
	CountProducts(ctx context.Context) (total, active int, err error)
	// SumActiveStock suma current_stock de los productos activos.
	SumActiveStock(ctx context.Context) (decimal.Decimal, error)
	// SumMovements suma quantity de las transacciones del tipo dado con
	// transaction_date dentro de [from, to).
	SumMovements(ctx context.Context, txType string, from, to time.Time) (decimal.Decimal, error)
	// CountLowStock cuenta productos activos con current_stock < threshold.
	CountLowStock(ctx context.Context, threshold decimal.Decimal) (int, error)
	// DailyMovements agrupa entradas/salidas por día dentro de [from, to).
	DailyMovements(ctx context.Context, from, to time.Time) ([]DailyMovementRow, error)
	// CategoryBreakdown agrupa productos activos por categoría.
	CategoryBreakdown(ctx context.Context) ([]CategoryBreakdownRow, error)
	// TopMovers devuelve los productos con más volumen movido en [from, to).
	TopMovers(ctx context.Context, from, to time.Time, limit int) ([]TopMoverRow, error)
	// StockHistogram cuenta productos activos por rango de stock.
	StockHistogram(ctx context.Context) ([]HistogramBucket, error)
	// MonthlyTrend devuelve totales por mes para los últimos `months` meses.
	MonthlyTrend(ctx context.Context, months int) ([]MonthlyTrendRow, error)
}
