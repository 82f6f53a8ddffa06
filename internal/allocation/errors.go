// Package allocation implements the rules shared by the restaurant order
// and venue booking subsystems: deciding whether a finite resource (a
// table, a venue on a date) may be allocated, moving an allocation through
// its status lifecycle, and keeping an order's total consistent with its
// line items. The package is pure logic; persistence is supplied by the
// caller through small interfaces so the rules can be tested in isolation.
package allocation

import "errors"

// ErrResourceNotFound is returned when the requested table or venue does
// not exist. Handlers should translate this into an HTTP 404 response.
var ErrResourceNotFound = errors.New("resource not found")

// ErrCapacityExceeded is returned when the party size is larger than the
// capacity of the requested resource.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// ErrResourceUnavailable is returned when the resource is out of service
// and therefore cannot accept any allocation.
var ErrResourceUnavailable = errors.New("resource unavailable")

// ErrSlotAlreadyBooked is returned when another active allocation already
// holds the requested resource and window. Exactly one of two concurrent
// requests for the same slot receives this error.
var ErrSlotAlreadyBooked = errors.New("slot already booked")

// ErrIllegalTransition is returned when a status change request does not
// follow the declared lifecycle. The aggregate is left unchanged.
var ErrIllegalTransition = errors.New("illegal status transition")

// ErrInvalidQuantity is returned when a line item quantity is below one.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")
