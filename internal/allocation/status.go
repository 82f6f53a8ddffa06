package allocation

// Status is the lifecycle state of an order or booking aggregate.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusPreparing  Status = "PREPARING"
	StatusReady      Status = "READY"
	StatusServed     Status = "SERVED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// Flow declares the legal forward path of a lifecycle. A transition is
// legal only when the requested status is the declared successor of the
// current one, or when it is CANCELLED and the current status is not
// terminal. Anything else fails ErrIllegalTransition.
type Flow struct {
	initial Status
	next    map[Status]Status
}

// FlowOrder is the restaurant order lifecycle.
var FlowOrder = Flow{
	initial: StatusPending,
	next: map[Status]Status{
		StatusPending:   StatusConfirmed,
		StatusConfirmed: StatusPreparing,
		StatusPreparing: StatusReady,
		StatusReady:     StatusServed,
	},
}

// FlowBooking is the venue booking lifecycle. Bookings are confirmed at
// creation time, so the flow starts at CONFIRMED.
var FlowBooking = Flow{
	initial: StatusConfirmed,
	next: map[Status]Status{
		StatusConfirmed:  StatusInProgress,
		StatusInProgress: StatusCompleted,
	},
}

// Initial returns the status a new aggregate is created in.
func (f Flow) Initial() Status { return f.initial }

// Known reports whether s appears anywhere in this flow.
func (f Flow) Known(s Status) bool {
	if s == StatusCancelled {
		return true
	}
	if _, ok := f.next[s]; ok {
		return true
	}
	// terminal forward state appears only as a successor value
	for _, succ := range f.next {
		if succ == s {
			return true
		}
	}
	return false
}

// Terminal reports whether s admits no further transitions in this flow.
func (f Flow) Terminal(s Status) bool {
	if s == StatusCancelled {
		return true
	}
	_, hasSuccessor := f.next[s]
	return f.Known(s) && !hasSuccessor
}

// Transition validates a requested status change. It returns nil when the
// change is legal and ErrIllegalTransition otherwise; it never mutates
// anything, so a failed call leaves the aggregate untouched by design of
// the caller.
func (f Flow) Transition(current, requested Status) error {
	if !f.Known(requested) || !f.Known(current) {
		return ErrIllegalTransition
	}
	if f.Terminal(current) {
		return ErrIllegalTransition
	}
	if requested == StatusCancelled {
		return nil
	}
	if f.next[current] == requested {
		return nil
	}
	return ErrIllegalTransition
}

// ParseStatus normalizes a client-supplied status string. The boolean is
// false when the value names no status of either flow.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
		StatusServed, StatusInProgress, StatusCompleted, StatusCancelled:
		return Status(s), true
	}
	return "", false
}
