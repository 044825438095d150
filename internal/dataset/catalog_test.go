package dataset

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/agritech/internal/domain/models"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	items := c.InventoryItems()
	require.Len(t, items, 3)
	assert.Equal(t, "Widget A", items[0].Name)
	assert.True(t, decimal.RequireFromString("29.99").Equal(items[0].Price))
	assert.Equal(t, models.MustParseDate("2024-10-25"), items[0].LastUpdated)
	assert.Equal(t, models.StatusOutOfStock, items[2].Status)

	assert.Len(t, c.InventoryAnalytics(), 4)
	assert.Len(t, c.InventoryCategories(), 4)

	livestock := c.Livestock()
	require.Len(t, livestock, 3)
	assert.Equal(t, "COW-001", livestock[0].Tag)
	assert.Equal(t, models.HealthQuarantined, livestock[2].HealthStatus)

	crops := c.Crops()
	require.Len(t, crops, 4)
	assert.Equal(t, models.MustParseDate("2023-06-30"), crops[3].Harvested)

	assert.Len(t, c.MarketProducts(), 6)
	assert.Equal(t, "All Categories", c.MarketCategories()[0])

	admin := c.AdminProducts()
	require.Len(t, admin, 2)
	assert.Equal(t, "DAI-EGG-002", admin[1].SKU)
	assert.Equal(t, []int{45, 56, 67, 78, 67, 56, 67}, admin[1].Sales)
	assert.Len(t, c.Notifications(), 2)
	assert.Len(t, c.Revenue(), 7)
	assert.Len(t, c.AdminCategories(), 5)

	assert.Len(t, c.Locations(), 3)
	assert.NotEmpty(t, c.Hourly())
	assert.NotEmpty(t, c.Forecast())
	assert.Equal(t, 1250.0, c.CropHealth()[0].GDD)
	assert.NotEmpty(t, c.WeatherAlert())

	assert.Len(t, c.CropFields(), 3)
	assert.Len(t, c.Herds(), 3)
	assert.Len(t, c.Yield(), 4)

	profiles := c.CropProfiles()
	require.Len(t, profiles, 2)
	assert.Equal(t, "Maize", profiles[0].Name)
	assert.Equal(t, []string{"Kenya", "Uganda", "Tanzania"}, profiles[0].Regions)

	assert.Len(t, c.Features(), 6)
	assert.Len(t, c.Testimonials(), 2)

	signup, ok := c.Form("signup")
	require.True(t, ok)
	assert.Len(t, signup.Fields, 4)
	_, ok = c.Form("reset")
	assert.False(t, ok)
}

func TestAccessorsReturnCopies(t *testing.T) {
	c := MustLoad()

	crops := c.Crops()
	crops[0].Name = "Changed"
	assert.Equal(t, "Tomatoes", c.Crops()[0].Name)

	admin := c.AdminProducts()
	admin[0].Sales[0] = -1
	assert.Equal(t, 23, c.AdminProducts()[0].Sales[0])

	profiles := c.CropProfiles()
	profiles[1].Regions[0] = "Nowhere"
	assert.Equal(t, "India", c.CropProfiles()[1].Regions[0])
}

func TestParseRejectsMalformedInput(t *testing.T) {
	_, err := Parse([]byte("crops: [ {id: 1"))
	assert.Error(t, err)

	_, err = Parse([]byte("crops:\n  - planted: not-a-date\n"))
	assert.Error(t, err)
}
