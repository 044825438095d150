package models

import "github.com/shopspring/decimal"

// Product is a marketplace listing card.
type Product struct {
	ID          int64           `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Category    string          `json:"category" yaml:"category"`
	Price       decimal.Decimal `json:"price" yaml:"price"`
	Unit        string          `json:"unit" yaml:"unit"`
	Rating      float64         `json:"rating" yaml:"rating"`
	Reviews     int             `json:"reviews" yaml:"reviews"`
	Image       string          `json:"image" yaml:"image"`
	Seller      string          `json:"seller" yaml:"seller"`
	Available   bool            `json:"available" yaml:"available"`
	Description string          `json:"description" yaml:"description"`
	Origin      string          `json:"origin" yaml:"origin"`
}

// ProductStatus is the admin-side availability of a farmer product.
type ProductStatus string

const (
	ProductAvailable  ProductStatus = "Available"
	ProductLowStock   ProductStatus = "Low Stock"
	ProductOutOfStock ProductStatus = "Out of Stock"
)

// FarmerProduct is a product managed from the farmer admin dashboard.
type FarmerProduct struct {
	ID          int64           `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name" binding:"required"`
	Description string          `json:"description" yaml:"description"`
	Price       decimal.Decimal `json:"price" yaml:"price"`
	Quantity    int             `json:"quantity" yaml:"quantity"`
	Category    string          `json:"category" yaml:"category"`
	ImageURL    string          `json:"image_url" yaml:"imageUrl"`
	Orders      int             `json:"orders" yaml:"orders"`
	CreatedAt   Date            `json:"created_at" yaml:"createdAt"`
	Status      ProductStatus   `json:"status" yaml:"status"`
	SKU         string          `json:"sku" yaml:"sku"`
	Discount    int             `json:"discount" yaml:"discount"`
	Rating      float64         `json:"rating" yaml:"rating"`
	Reviews     int             `json:"reviews" yaml:"reviews"`
	Sales       []int           `json:"sales" yaml:"sales"`
}

func (p FarmerProduct) RecordID() int64       { return p.ID }
func (p *FarmerProduct) SetRecordID(id int64) { p.ID = id }

// Notification is an entry of the admin notification bell.
type Notification struct {
	ID      int64  `json:"id" yaml:"id"`
	Message string `json:"message" yaml:"message"`
	Type    string `json:"type" yaml:"type"`
	Time    string `json:"time" yaml:"time"`
}

// RevenuePoint is one day of the admin revenue chart.
type RevenuePoint struct {
	Name    string  `json:"name" yaml:"name"`
	Revenue float64 `json:"revenue" yaml:"revenue"`
}
