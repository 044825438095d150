package admin

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/agritech/internal/dataset"
	"github.com/mamadbah2/agritech/internal/domain/models"
	"github.com/mamadbah2/agritech/internal/service/session"
	"github.com/mamadbah2/agritech/pkg/chart"
	"github.com/mamadbah2/agritech/pkg/collection"
	"github.com/mamadbah2/agritech/pkg/listing"
)

const (
	TabOverview  = "overview"
	TabProducts  = "products"
	TabOrders    = "orders"
	TabAnalytics = "analytics"

	defaultPageSize   = 10
	lowStockThreshold = 10
	revenueColor      = "#82ca9d"
)

type product = models.FarmerProduct

// Schema describes how the admin product table is searched, filtered and
// sorted.
var Schema = listing.NewSchema(listing.SortSpec{},
	listing.Field[product]{Name: "name", Get: func(p product) listing.Value { return listing.Text(p.Name) }, Searchable: true, Sortable: true},
	listing.Field[product]{Name: "sku", Get: func(p product) listing.Value { return listing.OptionalText(p.SKU) }, Searchable: true, Sortable: true},
	listing.Field[product]{Name: "category", Get: func(p product) listing.Value { return listing.Text(p.Category) }, Filterable: true, Sortable: true},
	listing.Field[product]{Name: "status", Get: func(p product) listing.Value { return listing.Text(string(p.Status)) }, Filterable: true, Sortable: true},
	listing.Field[product]{Name: "price", Get: func(p product) listing.Value { return listing.Decimal(p.Price) }, Sortable: true},
	listing.Field[product]{Name: "quantity", Get: func(p product) listing.Value { return listing.Int(p.Quantity) }, Sortable: true},
	listing.Field[product]{Name: "orders", Get: func(p product) listing.Value { return listing.Int(p.Orders) }, Sortable: true},
	listing.Field[product]{Name: "createdAt", Get: func(p product) listing.Value { return listing.Time(p.CreatedAt.Time()) }, Sortable: true},
)

// Row is a rendered admin product row.
type Row struct {
	models.FarmerProduct
	PriceLabel   string        `json:"price_label"`
	StatusBadge  string        `json:"status_badge"`
	SalesHistory []chart.Point `json:"sales_history"`
}

// Stats are the quick-stat cards of the dashboard.
type Stats struct {
	Products      int `json:"products"`
	LowStock      int `json:"low_stock"`
	Notifications int `json:"notifications"`
}

// Page is the farmer admin dashboard view model.
type Page struct {
	Tab           string                `json:"tab"`
	TimeRange     string                `json:"time_range"`
	Query         listing.Query         `json:"query"`
	Stats         Stats                 `json:"stats"`
	Rows          []Row                 `json:"rows"`
	Total         int                   `json:"total"`
	Revenue       chart.Series          `json:"revenue"`
	Categories    []chart.Slice         `json:"categories"`
	Notifications []models.Notification `json:"notifications"`
}

// Service renders and edits the farmer admin dashboard.
type Service struct {
	catalog  *dataset.Catalog
	sessions *session.Manager
	logger   *zap.Logger
}

// NewService wires a new admin dashboard service.
func NewService(catalog *dataset.Catalog, sessions *session.Manager, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{catalog: catalog, sessions: sessions, logger: logger}
}

func mount(st *session.State) {
	st.Query = Schema.DefaultQuery()
	st.Query.Page = &listing.Page{Limit: defaultPageSize}
	st.Settings["tab"] = TabOverview
	st.Settings["timeRange"] = "7days"
}

func (s *Service) records(st *session.State) []product {
	st.Mount(mount)
	return session.Records(st, s.catalog.AdminProducts)
}

// View applies ev and renders the dashboard.
func (s *Service) View(sessionID string, ev session.Event) (Page, error) {
	var page Page
	err := s.sessions.With(sessionID, session.ViewAdmin, func(st *session.State) error {
		items := s.records(st)
		if err := session.ApplySetting(st, "tab", ev.Settings["tab"], TabOverview, TabProducts, TabOrders, TabAnalytics); err != nil {
			return err
		}
		if err := session.ApplySetting(st, "timeRange", ev.Settings["timeRange"], "7days", "30days", "90days"); err != nil {
			return err
		}

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
	err := s.sessions.With(sessionID, session.ViewAdmin, func(st *session.State) error {
		s.records(st)
		return session.ToggleSort(st, Schema, key)
	})
	if err != nil {
		return Page{}, err
	}
	return s.View(sessionID, session.Event{})
}

// Add stores a new product under the next free id. A missing status is
// derived from the quantity.
func (s *Service) Add(sessionID string, in models.FarmerProduct) (models.FarmerProduct, error) {
	if in.Status == "" {
		in.Status = DeriveStatus(in.Quantity)
	}
	var added product
	err := s.sessions.With(sessionID, session.ViewAdmin, func(st *session.State) error {
		var items []product
		items, added = collection.Add(s.records(st), in)
		session.SetRecords(st, items)
		return nil
	})
	if err == nil {
		s.logger.Info("product added", zap.String("session_id", sessionID), zap.Int64("id", added.ID), zap.String("sku", added.SKU))
	}
	return added, err
}

// Update replaces the product with the same id.
func (s *Service) Update(sessionID string, in models.FarmerProduct) (models.FarmerProduct, error) {
	if in.Status == "" {
		in.Status = DeriveStatus(in.Quantity)
	}
	err := s.sessions.With(sessionID, session.ViewAdmin, func(st *session.State) error {
		items, ok := collection.Replace(s.records(st), in)
		if !ok {
			return fmt.Errorf("product %d: %w", in.ID, collection.ErrNotFound)
		}
		session.SetRecords(st, items)
		return nil
	})
	return in, err
}

// Delete removes a product. Unknown ids are ignored.
func (s *Service) Delete(sessionID string, id int64) error {
	return s.sessions.With(sessionID, session.ViewAdmin, func(st *session.State) error {
		session.SetRecords(st, collection.Remove(s.records(st), id))
		return nil
	})
}

func (s *Service) render(st *session.State, all []product, res listing.Result[product]) Page {
	rows := make([]Row, 0, len(res.Items))
	for _, p := range res.Items {
		rows = append(rows, Row{
			FarmerProduct: p,
			PriceLabel:    "$" + p.Price.StringFixed(2),
			StatusBadge:   StatusBadge(p.Status),
			SalesHistory:  chart.Indexed("Day", toFloats(p.Sales)),
		})
	}

	notifications := s.catalog.Notifications()
	return Page{
		Tab:       st.Setting("tab", TabOverview),
		TimeRange: st.Setting("timeRange", "7days"),
		Query:     st.Query.Clone(),
		Stats: Stats{
			Products:      len(all),
			LowStock:      countStatus(all, models.ProductLowStock),
			Notifications: len(notifications),
		},
		Rows:  rows,
		Total: res.Total,
		Revenue: chart.Series{
			Name:  "revenue",
			Color: revenueColor,
			Points: chart.Project(s.catalog.Revenue(),
				func(r models.RevenuePoint) string { return r.Name },
				func(r models.RevenuePoint) float64 { return r.Revenue },
			),
		},
		Categories: chart.Colorize(chart.Project(s.catalog.AdminCategories(),
			func(c models.Share) string { return c.Name },
			func(c models.Share) float64 { return c.Value },
		)),
		Notifications: notifications,
	}
}

// StatusBadge maps a product status to its badge variant.
func StatusBadge(status models.ProductStatus) string {
	switch status {
	case models.ProductAvailable:
		return "success"
	case models.ProductLowStock:
		return "warning"
	default:
		return "danger"
	}
}

// DeriveStatus classifies a stock quantity for products saved without one.
func DeriveStatus(quantity int) models.ProductStatus {
	switch {
	case quantity <= 0:
		return models.ProductOutOfStock
	case quantity < lowStockThreshold:
		return models.ProductLowStock
	default:
		return models.ProductAvailable
	}
}

func countStatus(items []product, status models.ProductStatus) int {
	n := 0
	for _, p := range items {
		if p.Status == status {
			n++
		}
	}
	return n
}

func toFloats(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
