package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/agritech/internal/dataset"
	"github.com/mamadbah2/agritech/internal/domain/models"
	"github.com/mamadbah2/agritech/internal/service/crops"
	"github.com/mamadbah2/agritech/internal/service/inventory"
	"github.com/mamadbah2/agritech/internal/service/livestock"
	"github.com/mamadbah2/agritech/pkg/listing"
)

// ErrUnsupportedCommand indicates we do not support the requested command.
var ErrUnsupportedCommand = errors.New("unsupported command")

// maxRows caps the rows listed in a single reply.
const maxRows = 10

const helpText = `Farm bot commands:
/stock [search] - warehouse inventory
/livestock [search] - animals by tag
/crops - crop inventory summary
/report - today's snapshot and shortages`

// Snapshotter builds the farm-wide figures of a day.
type Snapshotter interface {
	BuildSnapshot(ctx context.Context, now time.Time) models.DashboardSnapshot
}

// Service answers bot commands from the dataset. It never changes data.
type Service struct {
	catalog   *dataset.Catalog
	reporting Snapshotter
	logger    *zap.Logger
	now       func() time.Time
}

// NewService constructs a command dispatcher.
func NewService(catalog *dataset.Catalog, reporting Snapshotter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog:   catalog,
		reporting: reporting,
		logger:    logger,
		now:       time.Now,
	}
}

// HandleCommand returns the text reply for cmd.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Strings("args", cmd.Args))

	switch cmd.Type {
	case models.CommandStock:
		return s.stock(strings.Join(cmd.Args, " "))
	case models.CommandLivestock:
		return s.livestock(strings.Join(cmd.Args, " "))
	case models.CommandCrops:
		sum := crops.Summarize(s.catalog.Crops())
		return fmt.Sprintf("Crops: %d units in total, average %.1f, max %d, min %d.", sum.Total, sum.Average, sum.Max, sum.Min), nil
	case models.CommandReport:
		if s.reporting == nil {
			return "", fmt.Errorf("%w: report", ErrUnsupportedCommand)
		}
		return formatReport(s.reporting.BuildSnapshot(ctx, s.now())), nil
	case models.CommandHelp:
		return helpText, nil
	default:
		return "", ErrUnsupportedCommand
	}
}

// Help is the reply to messages that are not a command.
func Help() string { return helpText }

func (s *Service) stock(search string) (string, error) {
	q := inventory.Schema.DefaultQuery()
	q.Search = search
	q.Page = &listing.Page{Limit: maxRows}
	res, err := inventory.Schema.Apply(s.catalog.InventoryItems(), q)
	if err != nil {
		return "", err
	}
	if res.Total == 0 {
		return fmt.Sprintf("No inventory item matches %q.", search), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Inventory (%d items)", res.Total)
	for _, item := range res.Items {
		fmt.Fprintf(&b, "\n- %s: %d (%s)", item.Name, item.Quantity, item.EffectiveStatus())
	}
	return b.String(), nil
}

func (s *Service) livestock(search string) (string, error) {
	q := livestock.Schema.DefaultQuery()
	q.Search = search
	q.Page = &listing.Page{Limit: maxRows}
	res, err := livestock.Schema.Apply(s.catalog.Livestock(), q)
	if err != nil {
		return "", err
	}
	if res.Total == 0 {
		return fmt.Sprintf("No animal matches %q.", search), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Livestock (%d animals)", res.Total)
	for _, a := range res.Items {
		fmt.Fprintf(&b, "\n- %s %s, %s, %s", a.Tag, a.Type, a.HealthStatus, a.Location)
	}
	return b.String(), nil
}

func formatReport(snap models.DashboardSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Farm report for %s\n", snap.Date)
	fmt.Fprintf(&b, "Inventory: %d items, %d units, value %s\n", snap.InventoryItems, snap.InventoryUnits, snap.InventoryValue.StringFixed(2))
	fmt.Fprintf(&b, "Livestock: %d heads\n", snap.LivestockHeads)
	fmt.Fprintf(&b, "Crops: %d units", snap.CropQuantity)
	if snap.HasShortages() {
		shortages := make([]string, 0, len(snap.OutOfStockItems)+len(snap.LowStockItems)+len(snap.LowStockProducts))
		shortages = append(shortages, snap.OutOfStockItems...)
		shortages = append(shortages, snap.LowStockItems...)
		shortages = append(shortages, snap.LowStockProducts...)
		fmt.Fprintf(&b, "\nRestock: %s", strings.Join(shortages, ", "))
	}
	return b.String()
}
