package models

import "github.com/shopspring/decimal"

// StockStatus is the availability badge shown next to an inventory item.
type StockStatus string

const (
	StatusInStock    StockStatus = "In Stock"
	StatusLowStock   StockStatus = "Low Stock"
	StatusOutOfStock StockStatus = "Out of Stock"
)

// InventoryItem is one row of the warehouse inventory table.
type InventoryItem struct {
	ID           int64           `json:"id" yaml:"id"`
	Name         string          `json:"name" yaml:"name"`
	Category     string          `json:"category" yaml:"category"`
	Quantity     int             `json:"quantity" yaml:"quantity"`
	Price        decimal.Decimal `json:"price" yaml:"price"`
	ReorderPoint int             `json:"reorder_point" yaml:"reorderPoint"`
	LastUpdated  Date            `json:"last_updated" yaml:"lastUpdated"`
	Status       StockStatus     `json:"status" yaml:"status"`
	Supplier     string          `json:"supplier" yaml:"supplier"`
	Location     string          `json:"location" yaml:"location"`
}

// DeriveStockStatus classifies a quantity against its reorder point.
func DeriveStockStatus(quantity, reorderPoint int) StockStatus {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity <= reorderPoint:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// EffectiveStatus returns the stored status, deriving it when absent.
func (i InventoryItem) EffectiveStatus() StockStatus {
	if i.Status != "" {
		return i.Status
	}
	return DeriveStockStatus(i.Quantity, i.ReorderPoint)
}

// Value is the stock value of the row (price times quantity).
func (i InventoryItem) Value() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// StockPoint is one month of the stock overview chart.
type StockPoint struct {
	Month    string `json:"month" yaml:"month"`
	InStock  int    `json:"in_stock" yaml:"inStock"`
	OutStock int    `json:"out_stock" yaml:"outStock"`
}

// Share is a named percentage slice used by distribution charts.
type Share struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}
