package allocation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFinder answers HasActiveAllocation from a fixed map keyed by
// resource ID and window date.
type stubFinder struct {
	taken map[string]bool
	err   error
	calls int
}

func (f *stubFinder) HasActiveAllocation(_ context.Context, res Resource, w Window) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.taken[res.Key+"|"+w.Date], nil
}

func venue50() *Resource {
	return &Resource{ID: 1, Kind: KindVenue, Key: "Grand Hall", Capacity: 50}
}

func TestCheckAndReserve(t *testing.T) {
	ctx := context.Background()
	date := Window{Date: "2024-06-01"}

	tests := []struct {
		name      string
		res       *Resource
		window    Window
		partySize uint32
		taken     map[string]bool
		wantErr   error
	}{
		{
			name: "venue with room and free slot: ok",
			res:  venue50(), window: date, partySize: 40,
		},
		{
			name: "missing resource: not found",
			res:  nil, window: date, partySize: 10,
			wantErr: ErrResourceNotFound,
		},
		{
			name: "party larger than capacity: rejected",
			res:  venue50(), window: date, partySize: 60,
			wantErr: ErrCapacityExceeded,
		},
		{
			name: "out of service table: rejected",
			res: &Resource{ID: 7, Kind: KindTable, Key: "12",
				Capacity: 4, OutOfService: true},
			partySize: 2,
			wantErr:   ErrResourceUnavailable,
		},
		{
			name: "slot already held: rejected",
			res:  venue50(), window: date, partySize: 10,
			taken:   map[string]bool{"Grand Hall|2024-06-01": true},
			wantErr: ErrSlotAlreadyBooked,
		},
		{
			name: "same venue, different date: ok",
			res:  venue50(), window: Window{Date: "2024-06-02"}, partySize: 10,
			taken: map[string]bool{"Grand Hall|2024-06-01": true},
		},
		{
			name: "zero party size skips capacity check",
			res:  &Resource{ID: 3, Kind: KindTable, Key: "2", Capacity: 2},
		},
		{
			name: "table held by an open order: rejected",
			res:  &Resource{ID: 4, Kind: KindTable, Key: "5", Capacity: 4},
			taken:   map[string]bool{"5|": true},
			wantErr: ErrSlotAlreadyBooked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewChecker(&stubFinder{taken: tt.taken})
			err := checker.CheckAndReserve(ctx, tt.res, tt.window, tt.partySize)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// Capacity and availability are validated before the store is consulted,
// so invalid requests cause no reads at all.
func TestCheckAndReserveShortCircuits(t *testing.T) {
	finder := &stubFinder{}
	checker := NewChecker(finder)

	err := checker.CheckAndReserve(context.Background(), venue50(), Window{Date: "2024-06-01"}, 60)
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Zero(t, finder.calls)
}

func TestCheckAndReservePropagatesStoreError(t *testing.T) {
	boom := errors.New("connection reset")
	checker := NewChecker(&stubFinder{err: boom})

	err := checker.CheckAndReserve(context.Background(), venue50(), Window{Date: "2024-06-01"}, 10)
	assert.ErrorIs(t, err, boom)
}
