package inventory

import (
	"slices"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/agritech/internal/dataset"
	"github.com/mamadbah2/agritech/internal/domain/models"
	"github.com/mamadbah2/agritech/internal/service/session"
	"github.com/mamadbah2/agritech/pkg/chart"
	"github.com/mamadbah2/agritech/pkg/listing"
)

const (
	TabDashboard = "dashboard"
	TabInventory = "inventory"
	TabOrders    = "orders"
)

// Schema describes how inventory rows are searched, filtered and sorted.
var Schema = listing.NewSchema(listing.SortSpec{Key: "name", Direction: listing.Asc},
	listing.Field[models.InventoryItem]{Name: "name", Get: func(i models.InventoryItem) listing.Value { return listing.Text(i.Name) }, Searchable: true, Sortable: true},
	listing.Field[models.InventoryItem]{Name: "category", Get: func(i models.InventoryItem) listing.Value { return listing.Text(i.Category) }, Filterable: true, Sortable: true},
	listing.Field[models.InventoryItem]{Name: "status", Get: func(i models.InventoryItem) listing.Value { return listing.Text(string(i.EffectiveStatus())) }, Filterable: true, Sortable: true},
	listing.Field[models.InventoryItem]{Name: "quantity", Get: func(i models.InventoryItem) listing.Value { return listing.Int(i.Quantity) }, Sortable: true},
	listing.Field[models.InventoryItem]{Name: "price", Get: func(i models.InventoryItem) listing.Value { return listing.Decimal(i.Price) }, Sortable: true},
	listing.Field[models.InventoryItem]{Name: "reorderPoint", Get: func(i models.InventoryItem) listing.Value { return listing.Int(i.ReorderPoint) }, Sortable: true},
	listing.Field[models.InventoryItem]{Name: "lastUpdated", Get: func(i models.InventoryItem) listing.Value { return listing.Time(i.LastUpdated.Time()) }, Sortable: true},
	listing.Field[models.InventoryItem]{Name: "supplier", Get: func(i models.InventoryItem) listing.Value { return listing.OptionalText(i.Supplier) }, Sortable: true},
	listing.Field[models.InventoryItem]{Name: "location", Get: func(i models.InventoryItem) listing.Value { return listing.OptionalText(i.Location) }, Sortable: true},
)

// Row is a rendered inventory table row.
type Row struct {
	models.InventoryItem
	Status     models.StockStatus `json:"status"`
	BadgeClass string             `json:"badge_class"`
	StockValue decimal.Decimal    `json:"stock_value"`
}

// Stats are the quick-stat cards above the table.
type Stats struct {
	TotalItems int             `json:"total_items"`
	TotalUnits int             `json:"total_units"`
	LowStock   int             `json:"low_stock"`
	OutOfStock int             `json:"out_of_stock"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// Page is the inventory view model.
type Page struct {
	Tab           string         `json:"tab"`
	Query         listing.Query  `json:"query"`
	Stats         Stats          `json:"stats"`
	Categories    []string       `json:"categories"`
	Rows          []Row          `json:"rows"`
	Total         int            `json:"total"`
	StockOverview []chart.Series `json:"stock_overview"`
	CategoryShare []chart.Slice  `json:"category_share"`
}

// Service renders the warehouse inventory dashboard.
type Service struct {
	catalog  *dataset.Catalog
	sessions *session.Manager
	logger   *zap.Logger
}

// NewService wires a new inventory view service.
func NewService(catalog *dataset.Catalog, sessions *session.Manager, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{catalog: catalog, sessions: sessions, logger: logger}
}

func (s *Service) mount(st *session.State) {
	st.Query = Schema.DefaultQuery()
	st.Settings["tab"] = TabDashboard
}

// View applies ev to the session's inventory state and renders the page.
func (s *Service) View(sessionID string, ev session.Event) (Page, error) {
	var page Page
	err := s.sessions.With(sessionID, session.ViewInventory, func(st *session.State) error {
		st.Mount(s.mount)
		if err := session.ApplySetting(st, "tab", ev.Settings["tab"], TabDashboard, TabInventory, TabOrders); err != nil {
			return err
		}

		items := s.catalog.InventoryItems()
		res, err := session.Refresh(st, Schema, items, ev.Update)
		if err != nil {
			return err
		}
		page = s.render(st, items, res)
		return nil
	})
	return page, err
}

// ToggleSort handles a click on a column header.
func (s *Service) ToggleSort(sessionID, key string) (Page, error) {
	err := s.sessions.With(sessionID, session.ViewInventory, func(st *session.State) error {
		st.Mount(s.mount)
		return session.ToggleSort(st, Schema, key)
	})
	if err != nil {
		return Page{}, err
	}
	return s.View(sessionID, session.Event{})
}

func (s *Service) render(st *session.State, items []models.InventoryItem, res listing.Result[models.InventoryItem]) Page {
	rows := make([]Row, 0, len(res.Items))
	for _, item := range res.Items {
		status := item.EffectiveStatus()
		rows = append(rows, Row{
			InventoryItem: item,
			Status:        status,
			BadgeClass:    BadgeClass(status),
			StockValue:    item.Value(),
		})
	}

	analytics := s.catalog.InventoryAnalytics()
	month := func(p models.StockPoint) string { return p.Month }

	return Page{
		Tab:        st.Setting("tab", TabDashboard),
		Query:      st.Query.Clone(),
		Stats:      ComputeStats(items),
		Categories: Categories(items),
		Rows:       rows,
		Total:      res.Total,
		StockOverview: chart.Multi(analytics, month,
			[]string{"inStock", "outStock"},
			func(p models.StockPoint) float64 { return float64(p.InStock) },
			func(p models.StockPoint) float64 { return float64(p.OutStock) },
		),
		CategoryShare: chart.Colorize(chart.Project(s.catalog.InventoryCategories(),
			func(c models.Share) string { return c.Name },
			func(c models.Share) float64 { return c.Value },
		)),
	}
}

// BadgeClass maps a stock status to its badge style.
func BadgeClass(status models.StockStatus) string {
	switch status {
	case models.StatusInStock:
		return "bg-success"
	case models.StatusLowStock:
		return "bg-warning"
	case models.StatusOutOfStock:
		return "bg-danger"
	default:
		return "bg-secondary"
	}
}

// ComputeStats summarises the whole inventory regardless of the active query.
func ComputeStats(items []models.InventoryItem) Stats {
	stats := Stats{TotalItems: len(items), TotalValue: decimal.Zero}
	for _, item := range items {
		stats.TotalUnits += item.Quantity
		stats.TotalValue = stats.TotalValue.Add(item.Value())
		switch item.EffectiveStatus() {
		case models.StatusLowStock:
			stats.LowStock++
		case models.StatusOutOfStock:
			stats.OutOfStock++
		}
	}
	return stats
}

// Categories lists the category filter options, "all" first.
func Categories(items []models.InventoryItem) []string {
	var out []string
	for _, item := range items {
		if !slices.Contains(out, item.Category) {
			out = append(out, item.Category)
		}
	}
	slices.Sort(out)
	return append([]string{"all"}, out...)
}
