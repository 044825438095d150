package blog

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/mamadbah2/agritech/internal/dataset"
	"github.com/mamadbah2/agritech/internal/domain/models"
	"github.com/mamadbah2/agritech/internal/service/session"
	"github.com/mamadbah2/agritech/pkg/chart"
)

// Option is an entry of the crop selector.
type Option struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Page is the crop overview article.
type Page struct {
	Options     []Option           `json:"options"`
	Crop        models.CropProfile `json:"crop"`
	Production  []chart.Point      `json:"production"`
	RegionShare []chart.Slice      `json:"region_share"`
}

// Service renders the crop overview blog.
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

// View renders the selected crop profile. The "crop" setting selects a
// profile by id; the first profile is shown until one is picked.
func (s *Service) View(sessionID string, ev session.Event) (Page, error) {
	profiles := s.catalog.CropProfiles()
	ids := make([]string, 0, len(profiles))
	options := make([]Option, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, strconv.FormatInt(p.ID, 10))
		options = append(options, Option{ID: p.ID, Name: p.Name})
	}

	var page Page
	err := s.sessions.With(sessionID, session.ViewBlog, func(st *session.State) error {
		if err := session.ApplySetting(st, "crop", ev.Settings["crop"], ids...); err != nil {
			return err
		}

		page.Options = options
		selected := st.Setting("crop", "")
		for i, p := range profiles {
			if ids[i] == selected || (selected == "" && i == 0) {
				page.Crop = p
				break
			}
		}
		page.Production = chart.Indexed("Week", page.Crop.Production)
		page.RegionShare = chart.Colorize(chart.EvenShare(page.Crop.Regions))
		return nil
	})
	return page, err
}
