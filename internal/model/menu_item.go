package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem is a priced catalog entry. Its price is the current menu price;
// order items snapshot this value at creation time, so editing it here
// never changes the amount on an existing order.
type MenuItem struct {
	ID          uint64          `json:"id"`   // menu_items.id
	Name        string          `json:"name"` // menu_items.name
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`        // menu_items.price
	Category    string          `json:"category"`     // menu_items.category
	IsAvailable bool            `json:"is_available"` // menu_items.is_available
	PrepMinutes *uint32         `json:"preparation_time_minutes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
