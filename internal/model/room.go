package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Room is a hotel room catalog entry. The room number is the unique human
// key. Room allocation is handled outside this repository; the status here
// is informational and staff-maintained.
type Room struct {
	ID            uint64          `json:"id"`          // rooms.id
	RoomNumber    string          `json:"room_number"` // rooms.room_number (unique)
	Type          string          `json:"type"`        // rooms.type (single, double, suite)
	PricePerNight decimal.Decimal `json:"price_per_night"`
	Status        string          `json:"status"` // rooms.status
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
