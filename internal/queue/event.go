// Package queue defines message payloads exchanged over the message broker,
// the publisher that feeds the order.events queue and the background
// consumer that drains it.
package queue

// Event types carried in OrderEvent.Type.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is published whenever an order is placed or moves through its
// lifecycle. It contains enough information for downstream consumers to
// log, notify the kitchen, or trigger analytics without querying the
// primary database.
type OrderEvent struct {
	Type        string `json:"type"`
	OrderID     uint64 `json:"order_id"`
	OrderNumber string `json:"order_number"`
	TableID     uint64 `json:"table_id"`
	Status      string `json:"status"`
	TotalAmount string `json:"total_amount"`
	OccurredAt  string `json:"occurred_at"`
}
