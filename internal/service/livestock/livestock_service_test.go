package livestock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/agritech/internal/dataset"
	"github.com/mamadbah2/agritech/internal/domain/models"
	"github.com/mamadbah2/agritech/internal/service/session"
	"github.com/mamadbah2/agritech/pkg/collection"
	"github.com/mamadbah2/agritech/pkg/listing"
)

func newTestService() *Service {
	return NewService(dataset.MustLoad(), session.NewManager(nil), nil)
}

func tags(p Page) []string {
	out := make([]string, 0, len(p.Rows))
	for _, r := range p.Rows {
		out = append(out, r.Tag)
	}
	return out
}

func TestViewDefaultSortsByTag(t *testing.T) {
	page, err := newTestService().View("s", session.Event{})
	require.NoError(t, err)
	assert.Equal(t, []string{"COW-001", "PIG-003", "SHEEP-002"}, tags(page))
	assert.Equal(t, "All", page.Query.Filters["type"])
	assert.Equal(t, "text-warning", page.Rows[1].HealthClass)
}

func TestSearchCow(t *testing.T) {
	search := "cow"
	page, err := newTestService().View("s", session.Event{Update: listing.Update{Search: &search}})
	require.NoError(t, err)
	assert.Equal(t, []string{"COW-001"}, tags(page))
}

func TestFilters(t *testing.T) {
	svc := newTestService()

	page, err := svc.View("s", session.Event{Update: listing.Update{Filters: map[string]string{"healthStatus": "Sick"}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"SHEEP-002"}, tags(page))

	page, err = svc.View("s", session.Event{Update: listing.Update{Filters: map[string]string{"healthStatus": "All", "type": "Pig"}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"PIG-003"}, tags(page))
}

func TestToggleSortWeight(t *testing.T) {
	svc := newTestService()

	page, err := svc.ToggleSort("s", "weight")
	require.NoError(t, err)
	assert.Equal(t, []string{"SHEEP-002", "PIG-003", "COW-001"}, tags(page))

	page, err = svc.ToggleSort("s", "weight")
	require.NoError(t, err)
	assert.Equal(t, []string{"COW-001", "PIG-003", "SHEEP-002"}, tags(page))
}

func TestAddEditDelete(t *testing.T) {
	svc := newTestService()

	added, err := svc.Add("s", models.LivestockItem{
		Type: models.AnimalCow, Tag: "COW-004", Age: 4, Weight: 700,
		HealthStatus: models.HealthHealthy, Location: "Barn A",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), added.ID)

	added.HealthStatus = models.HealthSick
	_, err = svc.Update("s", added)
	require.NoError(t, err)

	page, err := svc.View("s", session.Event{Update: listing.Update{Filters: map[string]string{"healthStatus": "Sick"}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"COW-004", "SHEEP-002"}, tags(page))

	_, err = svc.Update("s", models.LivestockItem{ID: 99, Tag: "GHOST"})
	assert.ErrorIs(t, err, collection.ErrNotFound)

	require.NoError(t, svc.Delete("s", added.ID))
	require.NoError(t, svc.Delete("s", 1234))

	page, err = svc.View("s", session.Event{Update: listing.Update{Filters: map[string]string{"healthStatus": "All"}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"COW-001", "PIG-003", "SHEEP-002"}, tags(page))

	// Edits stay within the session.
	other, err := svc.View("other", session.Event{})
	require.NoError(t, err)
	assert.Len(t, other.Rows, 3)
}

func TestHealthStyle(t *testing.T) {
	class, icon := HealthStyle(models.HealthSick)
	assert.Equal(t, "text-danger", class)
	assert.Equal(t, "cloud", icon)

	class, _ = HealthStyle("Unknown")
	assert.Equal(t, "text-secondary", class)
}

func TestTypeShareIgnoresFilters(t *testing.T) {
	page, err := newTestService().View("s", session.Event{Update: listing.Update{Filters: map[string]string{"type": "Pig"}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"PIG-003"}, tags(page))

	require.Len(t, page.TypeShare, 3)
	for i, label := range []string{"Cow", "Sheep", "Pig"} {
		assert.Equal(t, label, page.TypeShare[i].Label)
		assert.Equal(t, 1.0, page.TypeShare[i].Value)
	}
	assert.Empty(t, TypeShare(nil))
}
