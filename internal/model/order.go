package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a restaurant order: the header of one table allocation together
// with its line items. TotalAmount is derived state: it always equals the
// sum of the live items' subtotals and is only ever written by the total
// recomputation inside the same transaction as an item mutation.
//
// Fields:
//  ID                  – primary key identifier.
//  OrderNumber         – unique human-facing number (ORD-xxxxxxxx).
//  TableID             – table this order occupies.
//  CustomerName        – optional customer name.
//  Status              – lifecycle state, see allocation.FlowOrder.
//  TotalAmount         – derived sum of item subtotals.
//  Guests              – party size, optional (0 = unspecified).
//  SpecialInstructions – optional free text for the kitchen.
//  CreatedAt           – when the order was placed.
//  UpdatedAt           – stamped on every committed mutation.
type Order struct {
	ID                  uint64          `json:"id"`           // restaurant_orders.id
	OrderNumber         string          `json:"order_number"` // restaurant_orders.order_number
	TableID             uint64          `json:"table_id"`     // restaurant_orders.table_id
	CustomerName        *string         `json:"customer_name,omitempty"`
	Status              string          `json:"status"`       // restaurant_orders.status
	TotalAmount         decimal.Decimal `json:"total_amount"` // restaurant_orders.total_amount
	Guests              uint32          `json:"number_of_guests,omitempty"`
	SpecialInstructions *string         `json:"special_instructions,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`

	// Items is populated on detail reads; it is not scanned on list queries.
	Items []OrderItem `json:"items,omitempty"`
}

// OrderItem is one priced line within an order. MenuItemName and UnitPrice
// are snapshots taken when the line was added: the customer keeps the
// quoted price even if the catalog changes afterwards. Subtotal is always
// Quantity x UnitPrice.
type OrderItem struct {
	ID              uint64          `json:"id"`             // order_items.id
	OrderID         uint64          `json:"order_id"`       // order_items.order_id
	MenuItemID      uint64          `json:"menu_item_id"`   // order_items.menu_item_id
	MenuItemName    string          `json:"menu_item_name"` // order_items.menu_item_name
	Quantity        uint32          `json:"quantity"`       // order_items.quantity
	UnitPrice       decimal.Decimal `json:"unit_price"`     // order_items.unit_price
	Subtotal        decimal.Decimal `json:"subtotal"`       // order_items.subtotal
	SpecialRequests *string         `json:"special_requests,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
