package allocation

// Kind distinguishes the two allocatable resource families. Tables are
// held instantaneously through their status; venues are held per calendar
// date. The checker treats both uniformly as (resource, window) pairs.
type Kind int

const (
	KindTable Kind = iota
	KindVenue
)

func (k Kind) String() string {
	if k == KindVenue {
		return "venue"
	}
	return "table"
}

// Window is the time scope over which a resource is held. For tables the
// zero Window is used (occupancy is status based); for venues Date carries
// the booked day in YYYY-MM-DD form.
type Window struct {
	Date string
}

// None is the empty window used for table allocations.
var None = Window{}

// IsZero reports whether the window carries no date.
func (w Window) IsZero() bool { return w.Date == "" }

// Resource is the checker's view of an allocatable entity. It carries only
// what the allocation decision needs; descriptive metadata stays in the
// model layer. Key is the human identifier (table number, venue name) used
// in error reporting.
type Resource struct {
	ID           uint64
	Kind         Kind
	Key          string
	Capacity     uint32
	OutOfService bool
}
