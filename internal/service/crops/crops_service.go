package crops

import (
	"go.uber.org/zap"

	"github.com/mamadbah2/agritech/internal/dataset"
	"github.com/mamadbah2/agritech/internal/domain/models"
	"github.com/mamadbah2/agritech/internal/service/session"
	"github.com/mamadbah2/agritech/pkg/chart"
	"github.com/mamadbah2/agritech/pkg/collection"
	"github.com/mamadbah2/agritech/pkg/listing"
)

const displayLayout = "Jan 2, 2006"

// Schema keeps input order by default; sorting is opt-in.
var Schema = listing.NewSchema(listing.SortSpec{},
	listing.Field[models.Crop]{Name: "name", Get: func(c models.Crop) listing.Value { return listing.Text(c.Name) }, Searchable: true, Sortable: true},
	listing.Field[models.Crop]{Name: "quantity", Get: func(c models.Crop) listing.Value { return listing.Int(c.Quantity) }, Sortable: true},
	listing.Field[models.Crop]{Name: "planted", Get: func(c models.Crop) listing.Value { return listing.Time(c.Planted.Time()) }, Sortable: true},
	listing.Field[models.Crop]{Name: "harvested", Get: func(c models.Crop) listing.Value { return listing.Time(c.Harvested.Time()) }, Sortable: true},
)

// Row is a rendered crop table row.
type Row struct {
	models.Crop
	PlantedLabel   string `json:"planted_label"`
	HarvestedLabel string `json:"harvested_label"`
}

// Summary holds the quantity statistics of the whole collection.
type Summary struct {
	Total   int     `json:"total"`
	Average float64 `json:"average"`
	Max     int     `json:"max"`
	Min     int     `json:"min"`
}

// Page is the crop inventory view model.
type Page struct {
	Query    listing.Query `json:"query"`
	Rows     []Row         `json:"rows"`
	Total    int           `json:"total"`
	Summary  Summary       `json:"summary"`
	Quantity []chart.Point `json:"quantity_chart"`
}

// Service renders and edits the crop inventory.
type Service struct {
	catalog  *dataset.Catalog
	sessions *session.Manager
	logger   *zap.Logger
}

// NewService wires a new crop inventory service.
func NewService(catalog *dataset.Catalog, sessions *session.Manager, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{catalog: catalog, sessions: sessions, logger: logger}
}

func (s *Service) records(st *session.State) []models.Crop {
	st.Mount(func(st *session.State) { st.Query = Schema.DefaultQuery() })
	return session.Records(st, s.catalog.Crops)
}

// View applies ev and renders the crop table, summary and chart.
func (s *Service) View(sessionID string, ev session.Event) (Page, error) {
	var page Page
	err := s.sessions.With(sessionID, session.ViewCrops, func(st *session.State) error {
		all := s.records(st)
		res, err := session.Refresh(st, Schema, all, ev.Update)
		if err != nil {
			return err
		}

		rows := make([]Row, 0, len(res.Items))
		for _, c := range res.Items {
			rows = append(rows, Row{
				Crop:           c,
				PlantedLabel:   formatDate(c.Planted),
				HarvestedLabel: formatDate(c.Harvested),
			})
		}
		page = Page{
			Query:   st.Query.Clone(),
			Rows:    rows,
			Total:   res.Total,
			Summary: Summarize(all),
			Quantity: chart.Project(res.Items,
				func(c models.Crop) string { return c.Name },
				func(c models.Crop) float64 { return float64(c.Quantity) },
			),
		}
		return nil
	})
	return page, err
}

// ToggleSort handles a click on a column header.
func (s *Service) ToggleSort(sessionID, key string) (Page, error) {
	err := s.sessions.With(sessionID, session.ViewCrops, func(st *session.State) error {
		s.records(st)
		return session.ToggleSort(st, Schema, key)
	})
	if err != nil {
		return Page{}, err
	}
	return s.View(sessionID, session.Event{})
}

// Add appends a crop under the next free id.
func (s *Service) Add(sessionID string, in models.Crop) (models.Crop, error) {
	var added models.Crop
	err := s.sessions.With(sessionID, session.ViewCrops, func(st *session.State) error {
		var items []models.Crop
		items, added = collection.Add(s.records(st), in)
		session.SetRecords(st, items)
		return nil
	})
	if err == nil {
		s.logger.Info("crop added", zap.String("session_id", sessionID), zap.Int64("id", added.ID), zap.String("name", added.Name))
	}
	return added, err
}

// Remove drops a crop. Unknown ids are ignored.
func (s *Service) Remove(sessionID string, id int64) error {
	return s.sessions.With(sessionID, session.ViewCrops, func(st *session.State) error {
		session.SetRecords(st, collection.Remove(s.records(st), id))
		return nil
	})
}

// Summarize computes total, average, max and min quantity. An empty
// collection yields zeros.
func Summarize(crops []models.Crop) Summary {
	if len(crops) == 0 {
		return Summary{}
	}
	sum := Summary{Max: crops[0].Quantity, Min: crops[0].Quantity}
	for _, c := range crops {
		sum.Total += c.Quantity
		sum.Max = max(sum.Max, c.Quantity)
		sum.Min = min(sum.Min, c.Quantity)
	}
	sum.Average = float64(sum.Total) / float64(len(crops))
	return sum
}

func formatDate(d models.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(displayLayout)
}
