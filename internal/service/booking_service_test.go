package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hospitality-suite/internal/allocation"
)

func TestCreateBooking(t *testing.T) {
	store := newMemStore()
	v := store.addVenue("Grand Hall", 200)
	svc := NewBookingService(store)

	b, err := svc.Create(context.Background(), CreateBookingInput{
		VenueID:      v.ID,
		CustomerName: "Acme Corp",
		EventDate:    "2026-09-12",
		Attendees:    120,
	})
	require.NoError(t, err)
	assert.Equal(t, string(allocation.StatusConfirmed), b.Status)
	assert.Equal(t, "2026-09-12", b.EventDate)
	assert.Regexp(t, `^BKG-[0-9A-F]{8}$`, b.BookingNumber)
}

func TestCreateBookingValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown venue", func(t *testing.T) {
		svc := NewBookingService(newMemStore())
		_, err := svc.Create(ctx, CreateBookingInput{VenueID: 7, EventDate: "2026-09-12"})
		assert.ErrorIs(t, err, allocation.ErrResourceNotFound)
	})

	t.Run("malformed date", func(t *testing.T) {
		store := newMemStore()
		v := store.addVenue("Grand Hall", 200)
		svc := NewBookingService(store)
		for _, date := range []string{"12-09-2026", "2026/09/12", "next friday", ""} {
			_, err := svc.Create(ctx, CreateBookingInput{VenueID: v.ID, EventDate: date})
			assert.ErrorIs(t, err, ErrInvalidDate, "date %q", date)
		}
	})

	t.Run("attendees over capacity", func(t *testing.T) {
		store := newMemStore()
		v := store.addVenue("Side Room", 30)
		svc := NewBookingService(store)
		_, err := svc.Create(ctx, CreateBookingInput{VenueID: v.ID, EventDate: "2026-09-12", Attendees: 31})
		assert.ErrorIs(t, err, allocation.ErrCapacityExceeded)
	})
}

func TestBookingDateConflicts(t *testing.T) {
	store := newMemStore()
	v1 := store.addVenue("Grand Hall", 200)
	v2 := store.addVenue("Terrace", 80)
	svc := NewBookingService(store)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateBookingInput{VenueID: v1.ID, EventDate: "2026-09-12", Attendees: 50})
	require.NoError(t, err)

	// Same venue, same date: rejected.
	_, err = svc.Create(ctx, CreateBookingInput{VenueID: v1.ID, EventDate: "2026-09-12", Attendees: 10})
	assert.ErrorIs(t, err, allocation.ErrSlotAlreadyBooked)

	// Same venue, other date: fine.
	_, err = svc.Create(ctx, CreateBookingInput{VenueID: v1.ID, EventDate: "2026-09-13", Attendees: 10})
	assert.NoError(t, err)

	// Other venue, same date: fine.
	_, err = svc.Create(ctx, CreateBookingInput{VenueID: v2.ID, EventDate: "2026-09-12", Attendees: 10})
	assert.NoError(t, err)
}

func TestBookingLifecycle(t *testing.T) {
	store := newMemStore()
	v := store.addVenue("Grand Hall", 200)
	svc := NewBookingService(store)
	ctx := context.Background()

	b, err := svc.Create(ctx, CreateBookingInput{VenueID: v.ID, EventDate: "2026-09-12", Attendees: 50})
	require.NoError(t, err)

	b, err = svc.ChangeStatus(ctx, b.ID, "IN_PROGRESS")
	require.NoError(t, err)
	assert.Equal(t, string(allocation.StatusInProgress), b.Status)

	b, err = svc.ChangeStatus(ctx, b.ID, "COMPLETED")
	require.NoError(t, err)
	assert.Equal(t, string(allocation.StatusCompleted), b.Status)

	// Terminal states absorb further requests.
	_, err = svc.ChangeStatus(ctx, b.ID, "CANCELLED")
	assert.ErrorIs(t, err, allocation.ErrIllegalTransition)

	// A completed booking no longer blocks the date.
	_, err = svc.Create(ctx, CreateBookingInput{VenueID: v.ID, EventDate: "2026-09-12", Attendees: 20})
	assert.NoError(t, err)
}

func TestBookingOrderStatusesRejected(t *testing.T) {
	store := newMemStore()
	v := store.addVenue("Grand Hall", 200)
	svc := NewBookingService(store)
	ctx := context.Background()

	b, err := svc.Create(ctx, CreateBookingInput{VenueID: v.ID, EventDate: "2026-09-12"})
	require.NoError(t, err)

	// Order lifecycle statuses are not part of the booking flow.
	for _, bad := range []string{"PREPARING", "READY", "SERVED", "PENDING"} {
		_, err = svc.ChangeStatus(ctx, b.ID, bad)
		assert.ErrorIs(t, err, allocation.ErrIllegalTransition, "status %s", bad)
	}
}

func TestCancelBookingFreesDate(t *testing.T) {
	store := newMemStore()
	v := store.addVenue("Grand Hall", 200)
	svc := NewBookingService(store)
	ctx := context.Background()

	b, err := svc.Create(ctx, CreateBookingInput{VenueID: v.ID, EventDate: "2026-09-12", Attendees: 50})
	require.NoError(t, err)

	_, err = svc.ChangeStatus(ctx, b.ID, "CANCELLED")
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateBookingInput{VenueID: v.ID, EventDate: "2026-09-12", Attendees: 20})
	assert.NoError(t, err)
}

func TestDeleteBookingFreesDate(t *testing.T) {
	store := newMemStore()
	v := store.addVenue("Grand Hall", 200)
	svc := NewBookingService(store)
	ctx := context.Background()

	b, err := svc.Create(ctx, CreateBookingInput{VenueID: v.ID, EventDate: "2026-09-12"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, b.ID))
	assert.Equal(t, 0, store.bookingCount())

	_, err = svc.Create(ctx, CreateBookingInput{VenueID: v.ID, EventDate: "2026-09-12"})
	assert.NoError(t, err)
}

func TestConcurrentBookingSingleWinner(t *testing.T) {
	store := newMemStore()
	v := store.addVenue("Grand Hall", 200)
	svc := NewBookingService(store)
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, CreateBookingInput{
				VenueID:   v.ID,
				EventDate: "2026-09-12",
				Attendees: 50,
			})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, allocation.ErrSlotAlreadyBooked)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, store.bookingCount())
}
