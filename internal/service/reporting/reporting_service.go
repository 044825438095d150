package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/agritech/internal/dataset"
	"github.com/mamadbah2/agritech/internal/domain/models"
	sheetsrepo "github.com/mamadbah2/agritech/internal/repository/sheets"
)

// SnapshotStore archives dashboard snapshots.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snap models.DashboardSnapshot) error
}

// InventoryExporter overwrites a spreadsheet range with fresh rows.
type InventoryExporter interface {
	ReplaceRange(ctx context.Context, sheetRange string, rows [][]interface{}) error
}

// Alerter notifies someone when a snapshot reports shortages.
type Alerter interface {
	NotifyShortages(ctx context.Context, snap models.DashboardSnapshot) (bool, error)
}

// Sinks are the optional destinations of a published snapshot. Nil sinks
// are skipped.
type Sinks struct {
	Store          SnapshotStore
	Exporter       InventoryExporter
	InventoryRange string
	Alerter        Alerter
}

// Service builds farm-wide dashboard snapshots from the dataset.
type Service struct {
	catalog *dataset.Catalog
	sinks   Sinks
	logger  *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(catalog *dataset.Catalog, sinks Sinks, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{catalog: catalog, sinks: sinks, logger: logger}
}

// BuildSnapshot aggregates the dataset into the figures of the day of now.
func (s *Service) BuildSnapshot(_ context.Context, now time.Time) models.DashboardSnapshot {
	snap := models.DashboardSnapshot{
		Date:              models.DateOf(now),
		InventoryValue:    decimal.Zero,
		LivestockByHealth: map[string]int{},
		CreatedAt:         now.UTC(),
	}

	items := s.catalog.InventoryItems()
	snap.InventoryItems = len(items)
	for _, item := range items {
		snap.InventoryUnits += item.Quantity
		snap.InventoryValue = snap.InventoryValue.Add(item.Value())
		switch item.EffectiveStatus() {
		case models.StatusOutOfStock:
			snap.OutOfStockItems = append(snap.OutOfStockItems, item.Name)
		case models.StatusLowStock:
			snap.LowStockItems = append(snap.LowStockItems, item.Name)
		}
	}

	animals := s.catalog.Livestock()
	snap.LivestockHeads = len(animals)
	for _, animal := range animals {
		snap.LivestockByHealth[string(animal.HealthStatus)]++
	}

	for _, crop := range s.catalog.Crops() {
		snap.CropQuantity += crop.Quantity
	}

	for _, p := range s.catalog.AdminProducts() {
		if p.Status == models.ProductLowStock || p.Status == models.ProductOutOfStock {
			snap.LowStockProducts = append(snap.LowStockProducts, p.Name)
		}
	}

	return snap
}

// Publish builds the snapshot of now and hands it to every configured sink.
// Sinks run concurrently and a failing sink does not stop the others; the
// first error is returned.
func (s *Service) Publish(ctx context.Context, now time.Time) (models.DashboardSnapshot, error) {
	snap := s.BuildSnapshot(ctx, now)
	logger := s.logger.With(zap.String("date", snap.Date.String()))

	var eg errgroup.Group
	step := func(name string, fn func() error) {
		eg.Go(func() error {
			if err := fn(); err != nil {
				logger.Error("publish step failed", zap.String("step", name), zap.Error(err))
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}

	if s.sinks.Store != nil {
		step("archive snapshot", func() error {
			return s.sinks.Store.SaveSnapshot(ctx, snap)
		})
	}

	if s.sinks.Exporter != nil {
		rows := sheetsrepo.InventoryRows(s.catalog.InventoryItems())
		step("export inventory", func() error {
			return s.sinks.Exporter.ReplaceRange(ctx, s.sinks.InventoryRange, rows)
		})
	}

	if s.sinks.Alerter != nil {
		step("send shortage alert", func() error {
			sent, err := s.sinks.Alerter.NotifyShortages(ctx, snap)
			if err == nil && sent {
				logger.Info("shortage alert sent")
			}
			return err
		})
	}

	err := eg.Wait()
	logger.Info("dashboard snapshot published",
		zap.Int("inventory_items", snap.InventoryItems),
		zap.String("inventory_value", snap.InventoryValue.StringFixed(2)),
		zap.Bool("shortages", snap.HasShortages()),
		zap.Bool("complete", err == nil),
	)
	return snap, err
}
