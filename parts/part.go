package parts

import (
	"math"
	"time"
)

// Status is the stock status of a part, derived from its quantity.
type Status string

const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusLowStock   Status = "low_stock"
	StatusOutOfStock Status = "out_of_stock"
)

// lowStockThreshold is the quantity below which a part is flagged low_stock.
const lowStockThreshold = 10

// Part is an inventory item. JSON tags match the wire format consumed by
// the SDK.
type Part struct {
	ID          string    `json:"id"`
	PartNumber  string    `json:"partNumber"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Status      Status    `json:"status"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DeriveStatus computes the stock status for a quantity.
func DeriveStatus(quantity int) Status {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity < lowStockThreshold:
		return StatusLowStock
	default:
		return StatusActive
	}
}

// RoundPrice normalizes a price to two decimal places.
func RoundPrice(price float64) float64 {
	return math.Round(price*100) / 100
}

// InStock reports whether the part has any stock.
func (p *Part) InStock() bool {
	return p.Quantity > 0
}
