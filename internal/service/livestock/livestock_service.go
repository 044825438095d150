package livestock

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

type item = models.LivestockItem

// Schema describes how the herd table is searched, filtered and sorted.
var Schema = listing.NewSchema(listing.SortSpec{Key: "tag", Direction: listing.Asc},
	listing.Field[item]{Name: "tag", Get: func(i item) listing.Value { return listing.Text(i.Tag) }, Searchable: true, Sortable: true},
	listing.Field[item]{Name: "type", Get: func(i item) listing.Value { return listing.Text(string(i.Type)) }, Filterable: true, Sortable: true},
	listing.Field[item]{Name: "healthStatus", Get: func(i item) listing.Value { return listing.Text(string(i.HealthStatus)) }, Filterable: true, Sortable: true},
	listing.Field[item]{Name: "age", Get: func(i item) listing.Value { return listing.Int(i.Age) }, Sortable: true},
	listing.Field[item]{Name: "weight", Get: func(i item) listing.Value { return listing.Number(i.Weight) }, Sortable: true},
	listing.Field[item]{Name: "location", Get: func(i item) listing.Value { return listing.OptionalText(i.Location) }, Sortable: true},
	listing.Field[item]{Name: "lastCheckup", Get: func(i item) listing.Value { return listing.Time(i.LastCheckup.Time()) }, Sortable: true},
)

// Row is a rendered herd table row.
type Row struct {
	models.LivestockItem
	HealthClass string `json:"health_class"`
	HealthIcon  string `json:"health_icon"`
}

// Page is the livestock view model.
type Page struct {
	Query        listing.Query `json:"query"`
	Rows         []Row         `json:"rows"`
	Total        int           `json:"total"`
	Types        []string      `json:"types"`
	HealthStates []string      `json:"health_states"`
	TypeShare    []chart.Slice `json:"type_share"`
}

// Service renders and edits the livestock inventory.
type Service struct {
	catalog  *dataset.Catalog
	sessions *session.Manager
	logger   *zap.Logger
}

// NewService wires a new livestock view service.
func NewService(catalog *dataset.Catalog, sessions *session.Manager, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{catalog: catalog, sessions: sessions, logger: logger}
}

func (s *Service) mount(st *session.State) {
	st.Query = Schema.DefaultQuery()
	st.Query.Filters = map[string]string{"type": "All", "healthStatus": "All"}
}

func (s *Service) records(st *session.State) []item {
	st.Mount(s.mount)
	return session.Records(st, s.catalog.Livestock)
}

// View applies ev and renders the herd table.
func (s *Service) View(sessionID string, ev session.Event) (Page, error) {
	var page Page
	err := s.sessions.With(sessionID, session.ViewLivestock, func(st *session.State) error {
		herd := s.records(st)
		res, err := session.Refresh(st, Schema, herd, ev.Update)
		if err != nil {
			return err
		}
		page = render(st, herd, res)
		return nil
	})
	return page, err
}

// ToggleSort handles a click on a column header.
func (s *Service) ToggleSort(sessionID, key string) (Page, error) {
	err := s.sessions.With(sessionID, session.ViewLivestock, func(st *session.State) error {
		s.records(st)
		return session.ToggleSort(st, Schema, key)
	})
	if err != nil {
		return Page{}, err
	}
	return s.View(sessionID, session.Event{})
}

// Add stores a new animal under the next free id.
func (s *Service) Add(sessionID string, in models.LivestockItem) (models.LivestockItem, error) {
	var added item
	err := s.sessions.With(sessionID, session.ViewLivestock, func(st *session.State) error {
		var items []item
		items, added = collection.Add(s.records(st), in)
		session.SetRecords(st, items)
		return nil
	})
	if err == nil {
		s.logger.Info("livestock added", zap.String("session_id", sessionID), zap.Int64("id", added.ID), zap.String("tag", added.Tag))
	}
	return added, err
}

// Update replaces the animal with the same id.
func (s *Service) Update(sessionID string, in models.LivestockItem) (models.LivestockItem, error) {
	err := s.sessions.With(sessionID, session.ViewLivestock, func(st *session.State) error {
		items, ok := collection.Replace(s.records(st), in)
		if !ok {
			return fmt.Errorf("livestock %d: %w", in.ID, collection.ErrNotFound)
		}
		session.SetRecords(st, items)
		return nil
	})
	return in, err
}

// Delete removes an animal. Unknown ids are ignored.
func (s *Service) Delete(sessionID string, id int64) error {
	return s.sessions.With(sessionID, session.ViewLivestock, func(st *session.State) error {
		session.SetRecords(st, collection.Remove(s.records(st), id))
		return nil
	})
}

func render(st *session.State, herd []item, res listing.Result[item]) Page {
	rows := make([]Row, 0, len(res.Items))
	for _, it := range res.Items {
		class, icon := HealthStyle(it.HealthStatus)
		rows = append(rows, Row{LivestockItem: it, HealthClass: class, HealthIcon: icon})
	}
	return Page{
		Query: st.Query.Clone(),
		Rows:  rows,
		Total: res.Total,
		Types: []string{"All", string(models.AnimalCow), string(models.AnimalSheep), string(models.AnimalPig)},
		HealthStates: []string{"All", string(models.HealthHealthy), string(models.HealthSick),
			string(models.HealthQuarantined)},
		TypeShare: TypeShare(herd),
	}
}

// TypeShare counts the whole herd per animal type, ignoring the table
// filters. Types without animals are left out.
func TypeShare(herd []item) []chart.Slice {
	counts := map[models.AnimalType]int{}
	for _, it := range herd {
		counts[it.Type]++
	}
	var points []chart.Point
	for _, t := range []models.AnimalType{models.AnimalCow, models.AnimalSheep, models.AnimalPig} {
		if n := counts[t]; n > 0 {
			points = append(points, chart.Point{Label: string(t), Value: float64(n)})
		}
	}
	return chart.Colorize(points)
}

// HealthStyle returns the text class and icon name for a health status.
func HealthStyle(status models.HealthStatus) (class, icon string) {
	switch status {
	case models.HealthHealthy:
		return "text-success", "milk"
	case models.HealthSick:
		return "text-danger", "cloud"
	case models.HealthQuarantined:
		return "text-warning", "piggy-bank"
	default:
		return "text-secondary", "milk"
	}
}
