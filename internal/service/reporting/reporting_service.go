package reporting

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/domain/models"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/pkg/clients/inventory"
)

const (
	dateLayout        = "2006-01-02"
	snapshotDataRange = "Snapshots!A:I"
	uncategorized     = "Uncategorized"
)

// Source provides the lists the reports aggregate.
type Source interface {
	Products(ctx context.Context) ([]models.Product, error)
	Movements(ctx context.Context) ([]models.StockMovement, error)
}

// SnapshotStore persists snapshots.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snapshot models.InventorySnapshot) error
}

// RowWriter appends one spreadsheet row.
type RowWriter interface {
	WriteRow(ctx context.Context, sheetRange string, values []interface{}) error
}

// Service computes dashboard figures and inventory snapshots.
type Service struct {
	source    Source
	snapshots SnapshotStore
	sheet     RowWriter
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a new reporting service instance. snapshots and sheet may be nil.
func NewService(source Source, snapshots SnapshotStore, sheet RowWriter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, snapshots: snapshots, sheet: sheet, logger: logger, now: time.Now}
}

// Dashboard loads products and movements and aggregates the last `days` days.
func (s *Service) Dashboard(ctx context.Context, days int) (models.Dashboard, error) {
	products, movements, err := s.load(ctx)
	if err != nil {
		return models.Dashboard{}, err
	}
	if days <= 0 {
		days = 7
	}
	end := s.now().UTC()
	start := end.AddDate(0, 0, -(days - 1))

	return models.Dashboard{
		Metrics:     ComputeMetrics(products),
		StockStatus: StockStatusSeries(products),
		Categories:  CategorySeries(products),
		Movements:   MovementSeries(movements, start, end),
	}, nil
}

// Snapshot aggregates the catalog at this moment and persists it to every
// configured sink.
func (s *Service) Snapshot(ctx context.Context) (models.InventorySnapshot, error) {
	products, movements, err := s.load(ctx)
	if err != nil {
		return models.InventorySnapshot{}, err
	}

	takenAt := s.now().UTC()
	metrics := ComputeMetrics(products)
	snapshot := models.InventorySnapshot{
		TakenAt:         takenAt,
		TotalProducts:   metrics.TotalProducts,
		TotalUnits:      metrics.TotalUnits,
		LowStockCount:   metrics.LowStockCount,
		OutOfStockCount: metrics.OutOfStockCount,
		InventoryCost:   metrics.InventoryCost,
		InventoryValue:  metrics.InventoryValue,
	}
	for _, p := range MovementSeries(movements, takenAt, takenAt) {
		snapshot.MovementsIn += p.In
		snapshot.MovementsOut += p.Out
	}

	if s.snapshots != nil {
		if err := s.snapshots.SaveSnapshot(ctx, snapshot); err != nil {
			return snapshot, fmt.Errorf("save snapshot: %w", err)
		}
	}
	if s.sheet != nil {
		if err := s.sheet.WriteRow(ctx, snapshotDataRange, snapshotRow(snapshot)); err != nil {
			return snapshot, fmt.Errorf("append snapshot row: %w", err)
		}
	}

	s.logger.Info("inventory snapshot taken",
		zap.Int("products", snapshot.TotalProducts),
		zap.Int("low_stock", snapshot.LowStockCount),
		zap.Int("out_of_stock", snapshot.OutOfStockCount),
	)
	return snapshot, nil
}

// Summary renders a one-line description of a snapshot.
func Summary(snapshot models.InventorySnapshot) string {
	return fmt.Sprintf("Inventory (%s): %d products, %d units, %d low, %d out of stock. Value %.2f (cost %.2f). Movements in %d, out %d.",
		snapshot.TakenAt.Format(dateLayout),
		snapshot.TotalProducts, snapshot.TotalUnits,
		snapshot.LowStockCount, snapshot.OutOfStockCount,
		snapshot.InventoryValue, snapshot.InventoryCost,
		snapshot.MovementsIn, snapshot.MovementsOut,
	)
}

func (s *Service) load(ctx context.Context) ([]models.Product, []models.StockMovement, error) {
	var (
		products  []models.Product
		movements []models.StockMovement
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.source.Products(gctx)
		if err != nil {
			return fmt.Errorf("load products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		movements, err = s.source.Movements(gctx)
		if err != nil {
			return fmt.Errorf("load stock movements: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return products, movements, nil
}

// ComputeMetrics totals stock counts and valuations.
func ComputeMetrics(products []models.Product) models.DashboardMetrics {
	m := models.DashboardMetrics{TotalProducts: len(products)}
	for _, p := range products {
		m.TotalUnits += p.Quantity
		switch p.Status() {
		case models.StockOut:
			m.OutOfStockCount++
		case models.StockLow:
			m.LowStockCount++
		}
		if p.Quantity > 0 {
			m.InventoryCost += p.CostPrice * float64(p.Quantity)
			m.InventoryValue += p.Price * float64(p.Quantity)
		}
	}
	return m
}

// StockStatusSeries counts products per stock status, always in the same order.
func StockStatusSeries(products []models.Product) []models.ChartSlice {
	counts := map[models.StockStatus]int{}
	for _, p := range products {
		counts[p.Status()]++
	}
	return []models.ChartSlice{
		{Label: string(models.StockIn), Value: counts[models.StockIn]},
		{Label: string(models.StockLow), Value: counts[models.StockLow]},
		{Label: string(models.StockOut), Value: counts[models.StockOut]},
	}
}

// CategorySeries counts products per category, largest first.
func CategorySeries(products []models.Product) []models.ChartSlice {
	counts := map[string]int{}
	for _, p := range products {
		category := p.Category
		if category == "" {
			category = uncategorized
		}
		counts[category]++
	}
	series := make([]models.ChartSlice, 0, len(counts))
	for label, value := range counts {
		series = append(series, models.ChartSlice{Label: label, Value: value})
	}
	sort.Slice(series, func(i, j int) bool {
		if series[i].Value != series[j].Value {
			return series[i].Value > series[j].Value
		}
		return series[i].Label < series[j].Label
	})
	return series
}

// MovementSeries sums movement quantities per day from start to end
// inclusive. Days without movements are present with zeros.
func MovementSeries(movements []models.StockMovement, start, end time.Time) []models.ChartPoint {
	first := truncateDay(start)
	last := truncateDay(end)
	if last.Before(first) {
		return []models.ChartPoint{}
	}

	index := map[string]int{}
	var series []models.ChartPoint
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateLayout)
		index[key] = len(series)
		series = append(series, models.ChartPoint{Date: key})
	}

	for _, m := range movements {
		i, ok := index[m.Date.UTC().Format(dateLayout)]
		if !ok {
			continue
		}
		switch m.Type {
		case models.MovementIn:
			series[i].In += m.Quantity
		case models.MovementOut:
			series[i].Out += m.Quantity
		}
	}
	return series
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func snapshotRow(s models.InventorySnapshot) []interface{} {
	return []interface{}{
		s.TakenAt.Format(time.RFC3339),
		s.TotalProducts,
		s.TotalUnits,
		s.LowStockCount,
		s.OutOfStockCount,
		fmt.Sprintf("%.2f", s.InventoryCost),
		fmt.Sprintf("%.2f", s.InventoryValue),
		s.MovementsIn,
		s.MovementsOut,
	}
}

// ClientSource reads report inputs from the inventory API.
type ClientSource struct {
	Client *inventory.Client
}

func (c ClientSource) Products(ctx context.Context) ([]models.Product, error) {
	return c.Client.Products().List(ctx, nil)
}

func (c ClientSource) Movements(ctx context.Context) ([]models.StockMovement, error) {
	return c.Client.StockMovements().List(ctx, nil)
}
