package allocation

import "context"

// ConflictFinder reports whether an active allocation already holds the
// given (resource, window) pair. An allocation counts as active while its
// status is non-terminal; cancelled and completed aggregates release the
// slot. Implementations backed by SQL must run inside the same transaction
// as the subsequent insert so that check-then-create is atomic.
type ConflictFinder interface {
	HasActiveAllocation(ctx context.Context, res Resource, w Window) (bool, error)
}

// Checker decides whether a requested allocation is legal. It owns steps
// 1-4 of the reservation algorithm; the caller performs the insert in the
// same transaction on success.
type Checker struct {
	finder ConflictFinder
}

// NewChecker returns a Checker that consults the given finder for
// conflicting allocations.
func NewChecker(f ConflictFinder) *Checker {
	if f == nil {
		panic("nil ConflictFinder passed to NewChecker")
	}
	return &Checker{finder: f}
}

// CheckAndReserve validates an allocation request against the resource.
// partySize zero means the caller did not state a party size and the
// capacity check is skipped. The returned error is one of the sentinel
// values of this package, or a storage error from the finder.
func (c *Checker) CheckAndReserve(ctx context.Context, res *Resource, w Window, partySize uint32) error {
	if res == nil {
		return ErrResourceNotFound
	}
	if partySize > 0 && res.Capacity > 0 && partySize > res.Capacity {
		return ErrCapacityExceeded
	}
	if res.OutOfService {
		return ErrResourceUnavailable
	}
	taken, err := c.finder.HasActiveAllocation(ctx, *res, w)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlotAlreadyBooked
	}
	return nil
}
