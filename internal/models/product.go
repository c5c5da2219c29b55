package models

import "math"

// LowStockThreshold is the stock level below which a product counts as low stock.
// It is fixed for every product and only echoed back to clients for display.
const LowStockThreshold = 10

// Stock levels are stored in 32-bit integer columns.
const (
	MinStockLevel = math.MinInt32
	MaxStockLevel = math.MaxInt32
)

// Product represents a product entity in the inventory system.
type Product struct {
	ID         int      `db:"id" json:"id"`
	Name       string   `db:"name" json:"name"`
	SKU        string   `db:"sku" json:"sku"`
	StockLevel int      `db:"stock_level" json:"stock_level"`
	Category   *string  `db:"category" json:"category"`
	Price      *float64 `db:"price" json:"price"`
	Cost       *float64 `db:"cost" json:"cost"`
}

// IsLowStock reports whether the product is strictly below LowStockThreshold.
func (p Product) IsLowStock() bool {
	return p.StockLevel < LowStockThreshold
}

// Value is price times stock level, with a missing price counted as zero.
func (p Product) Value() float64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price * float64(p.StockLevel)
}
