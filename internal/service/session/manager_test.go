package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/agritech/pkg/listing"
)

func TestWithCreatesStatePerView(t *testing.T) {
	m := NewManager(nil)
	id := NewID()

	require.NoError(t, m.With(id, ViewInventory, func(s *State) error {
		s.Query.Search = "widget"
		return nil
	}))

	require.NoError(t, m.With(id, ViewLivestock, func(s *State) error {
		assert.Empty(t, s.Query.Search, "views must not share state")
		return nil
	}))

	require.NoError(t, m.With(id, ViewInventory, func(s *State) error {
		assert.Equal(t, "widget", s.Query.Search)
		return nil
	}))

	assert.Equal(t, 1, m.Len())
}

func TestSessionsAreIsolated(t *testing.T) {
	m := NewManager(nil)

	require.NoError(t, m.With("a", ViewCrops, func(s *State) error {
		SetRecords(s, []string{"Corn"})
		return nil
	}))
	require.NoError(t, m.With("b", ViewCrops, func(s *State) error {
		assert.Equal(t, []string{"Tomatoes"}, Records(s, func() []string { return []string{"Tomatoes"} }))
		return nil
	}))
}

func TestWithPropagatesError(t *testing.T) {
	m := NewManager(nil)
	boom := errors.New("boom")
	assert.ErrorIs(t, m.With("a", ViewAdmin, func(*State) error { return boom }), boom)
}

func TestMountRunsOnce(t *testing.T) {
	m := NewManager(nil)
	calls := 0
	mount := func(s *State) error {
		s.Mount(func(s *State) {
			calls++
			s.Query = listing.Query{Sort: listing.SortSpec{Key: "tag", Direction: listing.Asc}}
		})
		return nil
	}

	require.NoError(t, m.With("a", ViewLivestock, mount))
	require.NoError(t, m.With("a", ViewLivestock, mount))
	assert.Equal(t, 1, calls)
}

func TestRecordsSeedsLazily(t *testing.T) {
	s := newState()
	seeded := 0
	seed := func() []int { seeded++; return []int{1, 2} }

	assert.Equal(t, []int{1, 2}, Records(s, seed))
	SetRecords(s, []int{3})
	assert.Equal(t, []int{3}, Records(s, seed))
	assert.Equal(t, 1, seeded)

	empty := newState()
	assert.NotNil(t, Records[int](empty, nil))
}

func TestClear(t *testing.T) {
	m := NewManager(nil)
	require.NoError(t, m.With("a", ViewMarketplace, func(s *State) error {
		s.Counters["cart"] = 3
		return nil
	}))

	m.Clear("a")
	assert.Zero(t, m.Len())

	require.NoError(t, m.With("a", ViewMarketplace, func(s *State) error {
		assert.Zero(t, s.Counters["cart"])
		return nil
	}))
}

func TestSweep(t *testing.T) {
	m := NewManager(nil)
	now := time.Date(2024, 10, 25, 8, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	require.NoError(t, m.With("old", ViewWeather, func(*State) error { return nil }))
	now = now.Add(45 * time.Minute)
	require.NoError(t, m.With("fresh", ViewWeather, func(*State) error { return nil }))

	assert.Equal(t, 1, m.Sweep(30*time.Minute))
	assert.Equal(t, 1, m.Len())
	assert.Zero(t, m.Sweep(30*time.Minute))
}

func TestConcurrentAccess(t *testing.T) {
	m := NewManager(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.With("shared", ViewMarketplace, func(s *State) error {
				s.Counters["cart"]++
				return nil
			})
		}()
	}
	wg.Wait()

	require.NoError(t, m.With("shared", ViewMarketplace, func(s *State) error {
		assert.Equal(t, 50, s.Counters["cart"])
		return nil
	}))
}

func TestSetting(t *testing.T) {
	s := newState()
	assert.Equal(t, "grid", s.Setting("viewMode", "grid"))
	s.Settings["viewMode"] = "list"
	assert.Equal(t, "list", s.Setting("viewMode", "grid"))
}

type row struct {
	Name string
	Qty  int
}

var rowSchema = listing.NewSchema(listing.SortSpec{},
	listing.Field[row]{Name: "name", Get: func(r row) listing.Value { return listing.Text(r.Name) }, Searchable: true, Sortable: true},
	listing.Field[row]{Name: "qty", Get: func(r row) listing.Value { return listing.Int(r.Qty) }, Sortable: true},
)

func TestRefreshKeepsStateOnError(t *testing.T) {
	s := newState()
	search := "co"
	res, err := Refresh(s, rowSchema, []row{{"Corn", 80}, {"Tomatoes", 100}}, listing.Update{Search: &search})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)

	_, err = Refresh(s, rowSchema, nil, listing.Update{Sort: &listing.SortSpec{Key: "colour"}})
	assert.ErrorIs(t, err, listing.ErrUnknownField)
	assert.Equal(t, "co", s.Query.Search)
	assert.True(t, s.Query.Sort.IsZero())
}

func TestToggleSort(t *testing.T) {
	s := newState()

	require.NoError(t, ToggleSort(s, rowSchema, "QTY"))
	assert.Equal(t, listing.SortSpec{Key: "qty", Direction: listing.Asc}, s.Query.Sort)

	require.NoError(t, ToggleSort(s, rowSchema, "qty"))
	assert.Equal(t, listing.SortSpec{Key: "qty", Direction: listing.Desc}, s.Query.Sort)

	assert.ErrorIs(t, ToggleSort(s, rowSchema, "weight"), listing.ErrUnknownField)
	assert.Equal(t, listing.Desc, s.Query.Sort.Direction)
}

func TestRefreshStoresRegisteredSortKey(t *testing.T) {
	s := newState()

	_, err := Refresh(s, rowSchema, nil, listing.Update{Sort: &listing.SortSpec{Key: "Name", Direction: listing.Asc}})
	require.NoError(t, err)
	assert.Equal(t, "name", s.Query.Sort.Key)

	require.NoError(t, ToggleSort(s, rowSchema, "name"))
	assert.Equal(t, listing.SortSpec{Key: "name", Direction: listing.Desc}, s.Query.Sort)
}

func TestApplySetting(t *testing.T) {
	s := newState()
	require.NoError(t, ApplySetting(s, "tab", "livestock", "crops", "livestock"))
	require.NoError(t, ApplySetting(s, "tab", "", "crops", "livestock"))
	assert.Equal(t, "livestock", s.Settings["tab"])

	assert.ErrorIs(t, ApplySetting(s, "tab", "orders", "crops", "livestock"), ErrInvalidSetting)
}
