// Package analytics contiene los casos de uso read-only del dashboard:
// métricas del día, movimiento mensual y analítica de inventario.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

const (
	topMoversLimit  = 10 // productos en el widget de más movidos
	trendMonths     = 6  // meses de la tendencia
	topMoversWindow = 30 * 24 * time.Hour
)

// DashboardUseCase computa métricas derivadas sobre el estado confirmado.
// Nada se cachea: cada llamada consulta la BD. La consistencia es
// read-committed; nunca se observa un movimiento a medio aplicar porque el
// motor de movimientos escribe saldo y ledger en una sola transacción.
type DashboardUseCase struct {
	analyticsRepo     repository.AnalyticsRepository
	loc               *time.Location  // zona horaria del negocio para la ventana "hoy"
	lowStockThreshold decimal.Decimal
}

// NewDashboardUseCase construye el caso de uso. loc define la ventana
// medianoche-a-medianoche de las métricas del día; threshold el umbral de
// stock bajo.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, loc *time.Location, threshold decimal.Decimal) *DashboardUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardUseCase{analyticsRepo: analyticsRepo, loc: loc, lowStockThreshold: threshold}
}

// GetStats construye el resumen del dashboard. Las consultas independientes
// se lanzan en paralelo y se juntan por canales.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.StatsDTO, error) {
	now := time.Now().In(uc.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	type countsResult struct {
		total, active int
		err           error
	}
	type sumResult struct {
		sum decimal.Decimal
		err error
	}
	type lowResult struct {
		count int
		err   error
	}

	countsCh := make(chan countsResult, 1)
	stockCh := make(chan sumResult, 1)
	inCh := make(chan sumResult, 1)
	outCh := make(chan sumResult, 1)
	lowCh := make(chan lowResult, 1)

	go func() {
		total, active, err := uc.analyticsRepo.CountProducts(ctx)
		countsCh <- countsResult{total, active, err}
	}()
	go func() {
		sum, err := uc.analyticsRepo.SumActiveStock(ctx)
		stockCh <- sumResult{sum, err}
	}()
	go func() {
		sum, err := uc.analyticsRepo.SumMovements(ctx, entity.TransactionTypeStockIn, dayStart, dayEnd)
		inCh <- sumResult{sum, err}
	}()
	go func() {
		sum, err := uc.analyticsRepo.SumMovements(ctx, entity.TransactionTypeStockOut, dayStart, dayEnd)
		outCh <- sumResult{sum, err}
	}()
	go func() {
		count, err := uc.analyticsRepo.CountLowStock(ctx, uc.lowStockThreshold)
		lowCh <- lowResult{count, err}
	}()

	counts := <-countsCh
	stock := <-stockCh
	in := <-inCh
	out := <-outCh
	low := <-lowCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de productos: %w", counts.err)
	}
	if stock.err != nil {
		return nil, fmt.Errorf("dashboard: stock total: %w", stock.err)
	}
	if in.err != nil {
		return nil, fmt.Errorf("dashboard: entradas de hoy: %w", in.err)
	}
	if out.err != nil {
		return nil, fmt.Errorf("dashboard: salidas de hoy: %w", out.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}

	return &dto.StatsDTO{
		TotalProducts:    counts.total,
		ActiveProducts:   counts.active,
		TotalStock:       stock.sum.Round(2),
		TodayStockIn:     in.sum.Round(2),
		TodayStockOut:    out.sum.Round(2),
		LowStockProducts: low.count,
	}, nil
}

// GetMonthlyMovement devuelve entradas y salidas por día del mes indicado.
func (uc *DashboardUseCase) GetMonthlyMovement(ctx context.Context, year int, month time.Month) (*dto.MonthlyMovementDTO, error) {
	if month < time.January || month > time.December || year < 2000 {
		return nil, fmt.Errorf("dashboard: período inválido %d-%d", year, month)
	}
	from := time.Date(year, month, 1, 0, 0, 0, 0, uc.loc)
	to := from.AddDate(0, 1, 0)

	rows, err := uc.analyticsRepo.DailyMovements(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("dashboard: movimiento mensual: %w", err)
	}

	days := make([]dto.DailyMovementDTO, 0, len(rows))
	for _, r := range rows {
		days = append(days, dto.DailyMovementDTO{
			Day:      r.Day.Format("2006-01-02"),
			StockIn:  r.StockIn.Round(2),
			StockOut: r.StockOut.Round(2),
		})
	}
	return &dto.MonthlyMovementDTO{Year: year, Month: int(month), Days: days}, nil
}

// GetInventoryAnalytics arma el reporte de analítica: desglose por categoría,
// productos más movidos (30 días), histograma de niveles y tendencia de 6 meses.
func (uc *DashboardUseCase) GetInventoryAnalytics(ctx context.Context) (*dto.InventoryAnalyticsDTO, error) {
	now := time.Now().In(uc.loc)

	type catResult struct {
		rows []repository.CategoryBreakdownRow
		err  error
	}
	type moversResult struct {
		rows []repository.TopMoverRow
		err  error
	}
	type histResult struct {
		rows []repository.HistogramBucket
		err  error
	}
	type trendResult struct {
		rows []repository.MonthlyTrendRow
		err  error
	}

	catCh := make(chan catResult, 1)
	moversCh := make(chan moversResult, 1)
	histCh := make(chan histResult, 1)
	trendCh := make(chan trendResult, 1)

	go func() {
		rows, err := uc.analyticsRepo.CategoryBreakdown(ctx)
		catCh <- catResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.TopMovers(ctx, now.Add(-topMoversWindow), now, topMoversLimit)
		moversCh <- moversResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.StockHistogram(ctx)
		histCh <- histResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.MonthlyTrend(ctx, trendMonths)
		trendCh <- trendResult{rows, err}
	}()

	cats := <-catCh
	movers := <-moversCh
	hist := <-histCh
	trend := <-trendCh

	if cats.err != nil {
		return nil, fmt.Errorf("dashboard: categorías: %w", cats.err)
	}
	if movers.err != nil {
		return nil, fmt.Errorf("dashboard: más movidos: %w", movers.err)
	}
	if hist.err != nil {
		return nil, fmt.Errorf("dashboard: histograma: %w", hist.err)
	}
	if trend.err != nil {
		return nil, fmt.Errorf("dashboard: tendencia: %w", trend.err)
	}

	out := &dto.InventoryAnalyticsDTO{
		Categories: make([]dto.CategoryBreakdownDTO, 0, len(cats.rows)),
		TopMovers:  make([]dto.TopMoverDTO, 0, len(movers.rows)),
		Histogram:  make([]dto.HistogramBucketDTO, 0, len(hist.rows)),
		Trend:      make([]dto.MonthlyTrendDTO, 0, len(trend.rows)),
	}
	for _, r := range cats.rows {
		out.Categories = append(out.Categories, dto.CategoryBreakdownDTO{
			Category: r.Category, Products: r.Products, TotalStock: r.TotalStock.Round(2),
		})
	}
	for _, r := range movers.rows {
		out.TopMovers = append(out.TopMovers, dto.TopMoverDTO{
			ProductID: r.ProductID, ProductName: r.ProductName, MovedQty: r.MovedQty.Round(2),
		})
	}
	for _, r := range hist.rows {
		out.Histogram = append(out.Histogram, dto.HistogramBucketDTO{Label: r.Label, Count: r.Count})
	}
	for _, r := range trend.rows {
		out.Trend = append(out.Trend, dto.MonthlyTrendDTO{
			Year: r.Year, Month: int(r.Month), StockIn: r.StockIn.Round(2), StockOut: r.StockOut.Round(2),
		})
	}
	return out, nil
}
