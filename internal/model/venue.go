package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Venue is an event space that can be booked for a whole calendar date.
// Unlike tables it carries no status column: per-date occupancy is derived
// from the active bookings referencing it.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – unique venue name.
//  Capacity     – maximum number of attendees.
//  PricePerHour – hire price, decimal to the cent.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Venue struct {
	ID           uint64          `json:"id"`             // venues.id
	Name         string          `json:"name"`           // venues.name
	Capacity     uint32          `json:"capacity"`       // venues.capacity
	PricePerHour decimal.Decimal `json:"price_per_hour"` // venues.price_per_hour
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
