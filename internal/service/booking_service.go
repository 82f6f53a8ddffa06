package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/hospitality-suite/internal/allocation"
	"github.com/iliyamo/hospitality-suite/internal/model"
	"github.com/iliyamo/hospitality-suite/internal/repository"
)

// ErrInvalidDate is returned when an event date is not a YYYY-MM-DD value.
var ErrInvalidDate = errors.New("invalid event date")

// BookingService orchestrates venue bookings: the per-date slot check on
// create and the booking lifecycle. Cancelling a booking frees the date
// implicitly, because the conflict lookup ignores cancelled rows.
type BookingService struct {
	store Store
}

// NewBookingService returns a BookingService over the given store.
func NewBookingService(store Store) *BookingService {
	if store == nil {
		panic("nil Store passed to NewBookingService")
	}
	return &BookingService{store: store}
}

// CreateBookingInput carries a venue booking request.
type CreateBookingInput struct {
	VenueID      uint64
	CustomerName string
	EventDate    string // YYYY-MM-DD
	Attendees    uint32
}

// NewBookingNumber derives a human-readable booking number from a UUID.
func NewBookingNumber() string {
	return "BKG-" + strings.ToUpper(uuid.NewString()[:8])
}

func venueResource(v *model.Venue) allocation.Resource {
	return allocation.Resource{
		ID:       v.ID,
		Kind:     allocation.KindVenue,
		Key:      v.Name,
		Capacity: v.Capacity,
	}
}

// Create books a venue for one date. The venue row is locked, the
// capacity and slot checks run, and the insert commits in the same
// transaction, so two concurrent requests for one (venue, date) can never
// both succeed. Bookings are created directly in CONFIRMED.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*model.Booking, error) {
	day, err := time.Parse("2006-01-02", in.EventDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	date := day.Format("2006-01-02")

	var created *model.Booking
	err = s.store.WithinTx(ctx, func(tx Tx) error {
		v, err := tx.VenueForUpdate(ctx, in.VenueID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return allocation.ErrResourceNotFound
			}
			return err
		}
		res := venueResource(v)
		checker := allocation.NewChecker(txConflicts{tx})
		if err := checker.CheckAndReserve(ctx, &res, allocation.Window{Date: date}, in.Attendees); err != nil {
			return err
		}

		now := time.Now().UTC()
		b := &model.Booking{
			BookingNumber: NewBookingNumber(),
			VenueID:       v.ID,
			CustomerName:  in.CustomerName,
			EventDate:     date,
			Attendees:     in.Attendees,
			Status:        string(allocation.FlowBooking.Initial()),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := tx.InsertBooking(ctx, b); err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ChangeStatus moves the booking through its lifecycle. Transitions into
// CANCELLED or COMPLETED release the (venue, date) slot for future
// bookings.
func (s *BookingService) ChangeStatus(ctx context.Context, bookingID uint64, requested string) (*model.Booking, error) {
	st, ok := allocation.ParseStatus(strings.ToUpper(strings.TrimSpace(requested)))
	if !ok {
		return nil, allocation.ErrIllegalTransition
	}
	var updated *model.Booking
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		b, err := tx.BookingByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := allocation.FlowBooking.Transition(allocation.Status(b.Status), st); err != nil {
			return err
		}
		now := time.Now().UTC()
		if err := tx.SetBookingStatus(ctx, b.ID, string(st), now); err != nil {
			return err
		}
		b.Status = string(st)
		b.UpdatedAt = now
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a booking outright, freeing its slot.
func (s *BookingService) Delete(ctx context.Context, bookingID uint64) error {
	return s.store.WithinTx(ctx, func(tx Tx) error {
		b, err := tx.BookingByID(ctx, bookingID)
		if err != nil {
			return err
		}
		return tx.DeleteBooking(ctx, b.ID)
	})
}
