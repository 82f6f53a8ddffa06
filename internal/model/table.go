package model

import "time"

// Table statuses. OUT_OF_SERVICE tables reject all new orders; the other
// three describe who currently holds the table.
const (
	TableAvailable    = "AVAILABLE"
	TableOccupied     = "OCCUPIED"
	TableReserved     = "RESERVED"
	TableOutOfService = "OUT_OF_SERVICE"
)

// Table represents a physical restaurant table. The table number is the
// human key and is unique across live tables. Status changes are driven
// either by staff (PATCH) or by the order lifecycle: creating an order
// occupies the table, closing or cancelling it frees the table again.
//
// Fields:
//  ID          – primary key identifier.
//  TableNumber – unique human-facing number.
//  Capacity    – number of seats.
//  Status      – one of the Table* constants above.
//  Location    – optional area description (terrace, window, ...).
//  Description – optional free text.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Table struct {
	ID          uint64    `json:"id"`           // restaurant_tables.id
	TableNumber uint32    `json:"table_number"` // restaurant_tables.table_number
	Capacity    uint32    `json:"capacity"`     // restaurant_tables.capacity
	Status      string    `json:"status"`       // restaurant_tables.status
	Location    *string   `json:"location,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
