package model

import "time"

// InventoryItem is a stock count entry. Quantity is adjusted with signed
// deltas; ReorderLevel marks the threshold below which an item shows up in
// the low-stock listing.
type InventoryItem struct {
	ID           uint64    `json:"id"`       // inventory_items.id
	Name         string    `json:"name"`     // inventory_items.name (unique)
	Category     string    `json:"category"` // inventory_items.category
	Quantity     int64     `json:"quantity"` // inventory_items.quantity
	Unit         string    `json:"unit"`     // inventory_items.unit (kg, pcs, l, ...)
	ReorderLevel int64     `json:"reorder_level"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
