package dto

import "github.com/shopspring/decimal"

// StatsDTO respuesta de GET /api/dashboard/stats.
type StatsDTO struct {
	TotalProducts    int             `json:"total_products"`
	ActiveProducts   int             `json:"active_products"`
	TotalStock       decimal.Decimal `json:"total_stock"`
	TodayStockIn     decimal.Decimal `json:"today_stock_in"`
	TodayStockOut    decimal.Decimal `json:"today_stock_out"`
	LowStockProducts int             `json:"low_stock_products"`
}

// DailyMovementDTO totales de un día dentro del reporte mensual.
type DailyMovementDTO struct {
	Day      string          `json:"day"` // YYYY-MM-DD
	StockIn  decimal.Decimal `json:"stock_in"`
	StockOut decimal.Decimal `json:"stock_out"`
}

// MonthlyMovementDTO respuesta de GET /api/dashboard/monthly.
type MonthlyMovementDTO struct {
	Year  int                `json:"year"`
	Month int                `json:"month"`
	Days  []DailyMovementDTO `json:"days"`
}

// CategoryBreakdownDTO productos y stock por categoría.
type CategoryBreakdownDTO struct {
	Category   string          `json:"category"`
	Products   int             `json:"products"`
	TotalStock decimal.Decimal `json:"total_stock"`
}

// TopMoverDTO producto con más volumen movido en los últimos 30 días.
type TopMoverDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	MovedQty    decimal.Decimal `json:"moved_qty"`
}

// HistogramBucketDTO cubeta del histograma de niveles de stock.
type HistogramBucketDTO struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// MonthlyTrendDTO totales de un mes dentro de la tendencia semestral.
type MonthlyTrendDTO struct {
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	StockIn  decimal.Decimal `json:"stock_in"`
	StockOut decimal.Decimal `json:"stock_out"`
}

// InventoryAnalyticsDTO respuesta de GET /api/dashboard/analytics.
type InventoryAnalyticsDTO struct {
	Categories []CategoryBreakdownDTO `json:"categories"`
	TopMovers  []TopMoverDTO          `json:"top_movers"`
	Histogram  []HistogramBucketDTO   `json:"histogram"`
	Trend      []MonthlyTrendDTO      `json:"trend"`
}
