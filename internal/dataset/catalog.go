// Package dataset provides the constant sample records every view starts
// from. The records are embedded at build time and parsed once at startup.
package dataset

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/mamadbah2/agritech/internal/domain/models"
)

//go:embed seed.yaml
var seed []byte

type seedDoc struct {
	Inventory struct {
		Items      []models.InventoryItem `yaml:"items"`
		Analytics  []models.StockPoint    `yaml:"analytics"`
		Categories []models.Share         `yaml:"categories"`
	} `yaml:"inventory"`
	Livestock   []models.LivestockItem `yaml:"livestock"`
	Crops       []models.Crop          `yaml:"crops"`
	Marketplace struct {
		Categories []string         `yaml:"categories"`
		Products   []models.Product `yaml:"products"`
	} `yaml:"marketplace"`
	Admin struct {
		Products      []models.FarmerProduct `yaml:"products"`
		Notifications []models.Notification  `yaml:"notifications"`
		Revenue       []models.RevenuePoint  `yaml:"revenue"`
		Categories    []models.Share         `yaml:"categories"`
	} `yaml:"admin"`
	Weather struct {
		Alert     string                 `yaml:"alert"`
		Locations []models.Location      `yaml:"locations"`
		Hourly    []models.WeatherSample `yaml:"hourly"`
		Forecast  []models.Forecast      `yaml:"forecast"`
		Crops     []models.CropHealth    `yaml:"crops"`
	} `yaml:"weather"`
	Stock struct {
		Fields []models.CropField  `yaml:"fields"`
		Herds  []models.Herd       `yaml:"herds"`
		Yield  []models.YieldPoint `yaml:"yield"`
	} `yaml:"stock"`
	Blog    []models.CropProfile `yaml:"blog"`
	Landing struct {
		Features     []models.Feature     `yaml:"features"`
		Testimonials []models.Testimonial `yaml:"testimonials"`
	} `yaml:"landing"`
	Forms []models.Form `yaml:"forms"`
}

// Catalog is the read-only sample dataset. Accessors return copies so callers
// can reshape or mutate what they receive.
type Catalog struct {
	doc seedDoc
}

// Load parses the embedded seed data.
func Load() (*Catalog, error) {
	return Parse(seed)
}

// Parse builds a catalog from a YAML document with the same layout as the
// embedded seed.
func Parse(data []byte) (*Catalog, error) {
	var doc seedDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &Catalog{doc: doc}, nil
}

// MustLoad is Load for package initialisation and tests.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) InventoryItems() []models.InventoryItem {
	return slices.Clone(c.doc.Inventory.Items)
}

func (c *Catalog) InventoryAnalytics() []models.StockPoint {
	return slices.Clone(c.doc.Inventory.Analytics)
}

func (c *Catalog) InventoryCategories() []models.Share {
	return slices.Clone(c.doc.Inventory.Categories)
}

func (c *Catalog) Livestock() []models.LivestockItem {
	return slices.Clone(c.doc.Livestock)
}

func (c *Catalog) Crops() []models.Crop {
	return slices.Clone(c.doc.Crops)
}

func (c *Catalog) MarketCategories() []string {
	return slices.Clone(c.doc.Marketplace.Categories)
}

func (c *Catalog) MarketProducts() []models.Product {
	return slices.Clone(c.doc.Marketplace.Products)
}

// AdminProducts deep-copies the sales history of every product.
func (c *Catalog) AdminProducts() []models.FarmerProduct {
	out := slices.Clone(c.doc.Admin.Products)
	for i := range out {
		out[i].Sales = slices.Clone(out[i].Sales)
	}
	return out
}

func (c *Catalog) Notifications() []models.Notification {
	return slices.Clone(c.doc.Admin.Notifications)
}

func (c *Catalog) Revenue() []models.RevenuePoint {
	return slices.Clone(c.doc.Admin.Revenue)
}

func (c *Catalog) AdminCategories() []models.Share {
	return slices.Clone(c.doc.Admin.Categories)
}

func (c *Catalog) WeatherAlert() string { return c.doc.Weather.Alert }

func (c *Catalog) Locations() []models.Location {
	return slices.Clone(c.doc.Weather.Locations)
}

func (c *Catalog) Hourly() []models.WeatherSample {
	return slices.Clone(c.doc.Weather.Hourly)
}

func (c *Catalog) Forecast() []models.Forecast {
	return slices.Clone(c.doc.Weather.Forecast)
}

func (c *Catalog) CropHealth() []models.CropHealth {
	return slices.Clone(c.doc.Weather.Crops)
}

func (c *Catalog) CropFields() []models.CropField {
	return slices.Clone(c.doc.Stock.Fields)
}

func (c *Catalog) Herds() []models.Herd {
	return slices.Clone(c.doc.Stock.Herds)
}

func (c *Catalog) Yield() []models.YieldPoint {
	return slices.Clone(c.doc.Stock.Yield)
}

// CropProfiles deep-copies the nested lists of each profile.
func (c *Catalog) CropProfiles() []models.CropProfile {
	out := slices.Clone(c.doc.Blog)
	for i := range out {
		out[i].AdaptiveFeatures = slices.Clone(out[i].AdaptiveFeatures)
		out[i].Lifecycle = slices.Clone(out[i].Lifecycle)
		out[i].Production = slices.Clone(out[i].Production)
		out[i].Regions = slices.Clone(out[i].Regions)
	}
	return out
}

func (c *Catalog) Features() []models.Feature {
	return slices.Clone(c.doc.Landing.Features)
}

func (c *Catalog) Testimonials() []models.Testimonial {
	return slices.Clone(c.doc.Landing.Testimonials)
}

// Form looks up an account form by name ("signin" or "signup").
func (c *Catalog) Form(name string) (models.Form, bool) {
	for _, f := range c.doc.Forms {
		if f.Name == name {
			f.Fields = slices.Clone(f.Fields)
			return f, true
		}
	}
	return models.Form{}, false
}
