// Package session holds the per-client view state: the search text, filters,
// sort order and editable records each page keeps while it is open.
package session

import "github.com/mamadbah2/agritech/pkg/listing"

// View identifies a page. Every view keeps its own state.
type View string

const (
	ViewInventory   View = "inventory"
	ViewLivestock   View = "livestock"
	ViewCrops       View = "cropinventory"
	ViewMarketplace View = "market-place"
	ViewAdmin       View = "admin"
	ViewWeather     View = "weather"
	ViewStock       View = "stock-management"
	ViewBlog        View = "blog"
)

// State is the mutable state of one view in one session.
type State struct {
	Query    listing.Query
	Settings map[string]string
	Counters map[string]int

	mounted bool
	records any
}

func newState() *State {
	return &State{
		Settings: make(map[string]string),
		Counters: make(map[string]int),
	}
}

// Mount runs init the first time the view is opened in this session.
func (s *State) Mount(init func(*State)) {
	if s.mounted {
		return
	}
	s.mounted = true
	if init != nil {
		init(s)
	}
}

// Setting returns a named setting or def when unset.
func (s *State) Setting(name, def string) string {
	if v, ok := s.Settings[name]; ok && v != "" {
		return v
	}
	return def
}

// Records returns the editable collection of the view, seeding it on first
// access.
func Records[T any](s *State, seed func() []T) []T {
	if items, ok := s.records.([]T); ok {
		return items
	}
	var items []T
	if seed != nil {
		items = seed()
	}
	if items == nil {
		items = make([]T, 0)
	}
	s.records = items
	return items
}

// SetRecords replaces the editable collection of the view.
func SetRecords[T any](s *State, items []T) {
	s.records = items
}
