package marketplace

import (
	"math"

	"go.uber.org/zap"

	"github.com/mamadbah2/agritech/internal/dataset"
	"github.com/mamadbah2/agritech/internal/domain/models"
	"github.com/mamadbah2/agritech/internal/service/session"
	"github.com/mamadbah2/agritech/pkg/listing"
)

const (
	ModeGrid = "grid"
	ModeList = "list"

	AllCategories = "All Categories"

	cartCounter = "cart"
)

// Schema describes how marketplace cards are searched, filtered and sorted.
var Schema = listing.NewSchema(listing.SortSpec{},
	listing.Field[models.Product]{Name: "name", Get: func(p models.Product) listing.Value { return listing.Text(p.Name) }, Searchable: true, Sortable: true},
	listing.Field[models.Product]{Name: "category", Get: func(p models.Product) listing.Value { return listing.Text(p.Category) }, Filterable: true, Sortable: true},
	listing.Field[models.Product]{Name: "price", Get: func(p models.Product) listing.Value { return listing.Decimal(p.Price) }, Sortable: true},
	listing.Field[models.Product]{Name: "rating", Get: func(p models.Product) listing.Value { return listing.Number(p.Rating) }, Sortable: true},
	listing.Field[models.Product]{Name: "reviews", Get: func(p models.Product) listing.Value { return listing.Int(p.Reviews) }, Sortable: true},
	listing.Field[models.Product]{Name: "seller", Get: func(p models.Product) listing.Value { return listing.Text(p.Seller) }, Filterable: true, Sortable: true},
)

// Stars is the rating rendered as full stars plus an optional half star.
type Stars struct {
	Full int  `json:"full"`
	Half bool `json:"half"`
}

// RenderStars converts a rating into stars: floor(rating) full stars and a
// half star for any fractional part.
func RenderStars(rating float64) Stars {
	if rating <= 0 || math.IsNaN(rating) {
		return Stars{}
	}
	full := math.Floor(rating)
	return Stars{Full: int(full), Half: rating != full}
}

// Card is a rendered product card.
type Card struct {
	models.Product
	Stars Stars  `json:"stars"`
	Class string `json:"class"`
}

// Page is the marketplace view model.
type Page struct {
	Query      listing.Query `json:"query"`
	ViewMode   string        `json:"view_mode"`
	CartCount  int           `json:"cart_count"`
	Categories []string      `json:"categories"`
	Cards      []Card        `json:"cards"`
	Total      int           `json:"total"`
}

// Service renders the public marketplace.
type Service struct {
	catalog  *dataset.Catalog
	sessions *session.Manager
	logger   *zap.Logger
}

// NewService wires a new marketplace service.
func NewService(catalog *dataset.Catalog, sessions *session.Manager, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{catalog: catalog, sessions: sessions, logger: logger}
}

func mount(st *session.State) {
	st.Query = Schema.DefaultQuery()
	st.Query.Filters = map[string]string{"category": AllCategories}
	st.Settings["viewMode"] = ModeGrid
}

// View applies ev and renders the product grid or list.
func (s *Service) View(sessionID string, ev session.Event) (Page, error) {
	var page Page
	err := s.sessions.With(sessionID, session.ViewMarketplace, func(st *session.State) error {
		st.Mount(mount)
		if err := session.ApplySetting(st, "viewMode", ev.Settings["viewMode"], ModeGrid, ModeList); err != nil {
			return err
		}

		res, err := session.Refresh(st, Schema, s.catalog.MarketProducts(), ev.Update)
		if err != nil {
			return err
		}

		mode := st.Setting("viewMode", ModeGrid)
		cards := make([]Card, 0, len(res.Items))
		for _, p := range res.Items {
			cards = append(cards, Card{Product: p, Stars: RenderStars(p.Rating), Class: cardClass(mode, p.Available)})
		}
		page = Page{
			Query:      st.Query.Clone(),
			ViewMode:   mode,
			CartCount:  st.Counters[cartCounter],
			Categories: s.catalog.MarketCategories(),
			Cards:      cards,
			Total:      res.Total,
		}
		return nil
	})
	return page, err
}

// AddToCart bumps the cart counter and returns the new count.
func (s *Service) AddToCart(sessionID string) (int, error) {
	var count int
	err := s.sessions.With(sessionID, session.ViewMarketplace, func(st *session.State) error {
		st.Mount(mount)
		st.Counters[cartCounter]++
		count = st.Counters[cartCounter]
		return nil
	})
	return count, err
}

func cardClass(mode string, available bool) string {
	class := "col-12"
	if mode == ModeGrid {
		class += " col-md-6 col-lg-4"
	}
	if !available {
		class += " bg-light"
	}
	return class
}
