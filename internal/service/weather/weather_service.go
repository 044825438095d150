package weather

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/agritech/internal/dataset"
	"github.com/mamadbah2/agritech/internal/domain/models"
	"github.com/mamadbah2/agritech/internal/service/session"
	"github.com/mamadbah2/agritech/pkg/chart"
)

const (
	Range24h = "24h"
	Range7d  = "7d"
	Range30d = "30d"

	// maxGDD is the growing degree days a crop needs to reach maturity.
	maxGDD = 2000.0
)

// CropRow is a rendered crop health row.
type CropRow struct {
	models.CropHealth
	StressBadge string  `json:"stress_badge"`
	GDDProgress float64 `json:"gdd_progress"`
}

// Page is the weather dashboard view model.
type Page struct {
	Location   models.Location   `json:"location"`
	Locations  []models.Location `json:"locations"`
	DateRange  string            `json:"date_range"`
	Alert      string            `json:"alert,omitempty"`
	Climate    []chart.Series    `json:"climate"`
	Soil       []chart.Series    `json:"soil"`
	Forecast   []models.Forecast `json:"forecast"`
	Outlook    []string          `json:"outlook"`
	CropHealth []CropRow         `json:"crop_health"`
}

// Service renders the agricultural weather dashboard.
type Service struct {
	catalog  *dataset.Catalog
	sessions *session.Manager
	logger   *zap.Logger
}

// NewService wires a new weather dashboard service.
func NewService(catalog *dataset.Catalog, sessions *session.Manager, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{catalog: catalog, sessions: sessions, logger: logger}
}

// View applies the location and date range settings of ev and renders the
// dashboard.
func (s *Service) View(sessionID string, ev session.Event) (Page, error) {
	locations := s.catalog.Locations()
	ids := make([]string, 0, len(locations))
	for _, l := range locations {
		ids = append(ids, l.ID)
	}

	var page Page
	err := s.sessions.With(sessionID, session.ViewWeather, func(st *session.State) error {
		st.Mount(func(st *session.State) {
			if len(ids) > 0 {
				st.Settings["location"] = ids[0]
			}
			st.Settings["range"] = Range24h
		})
		if err := session.ApplySetting(st, "location", ev.Settings["location"], ids...); err != nil {
			return err
		}
		if err := session.ApplySetting(st, "range", ev.Settings["range"], Range24h, Range7d, Range30d); err != nil {
			return err
		}

		page = s.render(st, locations)
		return nil
	})
	return page, err
}

// DismissAlert hides the weather alert banner for the session.
func (s *Service) DismissAlert(sessionID string) error {
	return s.sessions.With(sessionID, session.ViewWeather, func(st *session.State) error {
		st.Settings["alert"] = "dismissed"
		return nil
	})
}

func (s *Service) render(st *session.State, locations []models.Location) Page {
	selected := st.Setting("location", "")
	page := Page{
		Locations: locations,
		DateRange: st.Setting("range", Range24h),
		Forecast:  s.catalog.Forecast(),
	}
	for _, l := range locations {
		if l.ID == selected {
			page.Location = l
		}
	}
	for _, f := range page.Forecast {
		page.Outlook = append(page.Outlook, FormatForecast(f))
	}
	if st.Setting("alert", "") != "dismissed" {
		page.Alert = s.catalog.WeatherAlert()
	}

	hourly := s.catalog.Hourly()
	stamp := func(w models.WeatherSample) string { return w.Timestamp }
	page.Climate = chart.Multi(hourly, stamp,
		[]string{"Temperature (°C)", "Humidity (%)"},
		func(w models.WeatherSample) float64 { return w.Temperature },
		func(w models.WeatherSample) float64 { return w.Humidity },
	)
	page.Soil = chart.Multi(hourly, stamp,
		[]string{"Soil Moisture (%)", "Precipitation (mm)"},
		func(w models.WeatherSample) float64 { return w.SoilMoisture },
		func(w models.WeatherSample) float64 { return w.Precipitation },
	)

	for _, c := range s.catalog.CropHealth() {
		page.CropHealth = append(page.CropHealth, CropRow{
			CropHealth:  c,
			StressBadge: StressBadge(c.Stress),
			GDDProgress: GDDProgress(c.GDD),
		})
	}
	return page
}

// StressBadge maps a stress level to its badge class.
func StressBadge(level models.StressLevel) string {
	switch level {
	case models.StressLow:
		return "bg-success"
	case models.StressMedium:
		return "bg-warning"
	case models.StressHigh:
		return "bg-danger"
	default:
		return "bg-secondary"
	}
}

// GDDProgress is the accumulated growing degree days as a percentage of
// maturity.
func GDDProgress(gdd float64) float64 {
	return gdd / maxGDD * 100
}

// FormatForecast renders a forecast day as shown on the forecast card.
func FormatForecast(f models.Forecast) string {
	return fmt.Sprintf("%s: %g°C / %g°C, %g%% precipitation, wind %g km/h",
		f.Date, f.TempHigh, f.TempLow, f.Precipitation, f.WindSpeed)
}
