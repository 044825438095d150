package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSnapshot captures the farm-wide figures archived by the scheduler.
type DashboardSnapshot struct {
	Date              Date            `json:"date"`
	InventoryItems    int             `json:"inventory_items"`
	InventoryUnits    int             `json:"inventory_units"`
	InventoryValue    decimal.Decimal `json:"inventory_value"`
	LowStockItems     []string        `json:"low_stock_items"`
	OutOfStockItems   []string        `json:"out_of_stock_items"`
	LivestockHeads    int             `json:"livestock_heads"`
	LivestockByHealth map[string]int  `json:"livestock_by_health"`
	CropQuantity      int             `json:"crop_quantity"`
	LowStockProducts  []string        `json:"low_stock_products"`
	CreatedAt         time.Time       `json:"created_at"`
}

// HasShortages reports whether anything needs restocking.
func (s DashboardSnapshot) HasShortages() bool {
	return len(s.LowStockItems) > 0 || len(s.OutOfStockItems) > 0 || len(s.LowStockProducts) > 0
}
