package stock

import (
	"go.uber.org/zap"

	"github.com/mamadbah2/agritech/internal/dataset"
	"github.com/mamadbah2/agritech/internal/domain/models"
	"github.com/mamadbah2/agritech/internal/service/session"
	"github.com/mamadbah2/agritech/pkg/chart"
)

const (
	TabCrops     = "crops"
	TabLivestock = "livestock"
)

// Page is the stock management board. Only the collection of the active tab
// is populated.
type Page struct {
	Tab    string             `json:"tab"`
	Fields []models.CropField `json:"fields,omitempty"`
	Herds  []models.Herd      `json:"herds,omitempty"`
	Yield  []chart.Series     `json:"yield"`
}

// Service renders the stock management board.
type Service struct {
	catalog  *dataset.Catalog
	sessions *session.Manager
	logger   *zap.Logger
}

func NewService(catalog *dataset.Catalog, sessions *session.Manager, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{catalog: catalog, sessions: sessions, logger: logger}
}

func (s *Service) View(sessionID string, ev session.Event) (Page, error) {
	var page Page
	err := s.sessions.With(sessionID, session.ViewStock, func(st *session.State) error {
		st.Mount(func(st *session.State) { st.Settings["tab"] = TabCrops })
		if err := session.ApplySetting(st, "tab", ev.Settings["tab"], TabCrops, TabLivestock); err != nil {
			return err
		}

		page.Tab = st.Setting("tab", TabCrops)
		if page.Tab == TabLivestock {
			page.Herds = s.catalog.Herds()
		} else {
			page.Fields = s.catalog.CropFields()
		}
		page.Yield = chart.Multi(s.catalog.Yield(),
			func(y models.YieldPoint) string { return y.Month },
			[]string{"crops", "livestock"},
			func(y models.YieldPoint) float64 { return y.Crops },
			func(y models.YieldPoint) float64 { return y.Livestock },
		)
		return nil
	})
	return page, err
}
