package marketplace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/agritech/internal/dataset"
	"github.com/mamadbah2/agritech/internal/service/session"
	"github.com/mamadbah2/agritech/pkg/listing"
)

func newTestService() *Service {
	return NewService(dataset.MustLoad(), session.NewManager(nil), nil)
}

func cardNames(p Page) []string {
	out := make([]string, 0, len(p.Cards))
	for _, c := range p.Cards {
		out = append(out, c.Name)
	}
	return out
}

func TestViewAllCategories(t *testing.T) {
	page, err := newTestService().View("s", session.Event{})
	require.NoError(t, err)

	assert.Len(t, page.Cards, 6)
	assert.Equal(t, ModeGrid, page.ViewMode)
	assert.Equal(t, AllCategories, page.Categories[0])
	assert.Equal(t, Stars{Full: 4, Half: true}, page.Cards[0].Stars)
	assert.Equal(t, "col-12 col-md-6 col-lg-4", page.Cards[0].Class)
}

func TestCategoryAndSearch(t *testing.T) {
	svc := newTestService()

	page, err := svc.View("s", session.Event{Update: listing.Update{Filters: map[string]string{"category": "Vegetables"}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Premium Organic Tomatoes", "Organic Baby Spinach"}, cardNames(page))

	search := "premium"
	page, err = svc.View("s", session.Event{Update: listing.Update{Search: &search}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Premium Organic Tomatoes"}, cardNames(page))

	page, err = svc.View("s", session.Event{Update: listing.Update{Filters: map[string]string{"category": AllCategories}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Premium Organic Tomatoes", "Premium Ground Coffee"}, cardNames(page))

	page, err = svc.View("s", session.Event{Update: listing.Update{Filters: map[string]string{"category": "Grains"}}})
	require.NoError(t, err)
	assert.Empty(t, page.Cards)
}

func TestViewModeAndCart(t *testing.T) {
	svc := newTestService()

	page, err := svc.View("s", session.Event{Settings: map[string]string{"viewMode": ModeList}})
	require.NoError(t, err)
	assert.Equal(t, ModeList, page.ViewMode)
	assert.Equal(t, "col-12", page.Cards[0].Class)

	_, err = svc.View("s", session.Event{Settings: map[string]string{"viewMode": "carousel"}})
	assert.ErrorIs(t, err, session.ErrInvalidSetting)

	for i := 1; i <= 3; i++ {
		n, err := svc.AddToCart("s")
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
	page, err = svc.View("s", session.Event{})
	require.NoError(t, err)
	assert.Equal(t, 3, page.CartCount)
	assert.Equal(t, ModeList, page.ViewMode)
}

func TestRenderStars(t *testing.T) {
	assert.Equal(t, Stars{Full: 5}, RenderStars(5.0))
	assert.Equal(t, Stars{Full: 4, Half: true}, RenderStars(4.8))
	assert.Equal(t, Stars{}, RenderStars(0))
}
