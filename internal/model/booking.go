package model

import "time"

// Booking reserves a venue for a whole calendar date. At most one booking
// in a non-cancelled status may hold a given (venue, date) pair; the
// conflict check and the insert run in one transaction so two concurrent
// requests can never both win.
//
// Fields:
//  ID            – primary key identifier.
//  BookingNumber – unique human-facing number (BKG-xxxxxxxx).
//  VenueID       – booked venue.
//  CustomerName  – who the event is for.
//  EventDate     – booked day, YYYY-MM-DD.
//  Attendees     – expected head count, validated against venue capacity.
//  Status        – lifecycle state, see allocation.FlowBooking.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – stamped on every committed mutation.
type Booking struct {
	ID            uint64    `json:"id"`             // bookings.id
	BookingNumber string    `json:"booking_number"` // bookings.booking_number
	VenueID       uint64    `json:"venue_id"`       // bookings.venue_id
	CustomerName  string    `json:"customer_name"`  // bookings.customer_name
	EventDate     string    `json:"event_date"`     // bookings.event_date (DATE)
	Attendees     uint32    `json:"attendees"`      // bookings.attendees
	Status        string    `json:"status"`         // bookings.status
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
