// Package order implements the order status lifecycle: which statuses
// exist, which moves between them are legal, and the engine that enforces
// both before anything reaches the platform.
package order

// Status is an order's lifecycle state.
type Status string

const (
	Draft     Status = "draft"
	Confirmed Status = "confirmed"
	Preparing Status = "preparing"
	Ready     Status = "ready"
	Delivered Status = "delivered"
	Cancelled Status = "cancelled"
)

// transitions is the authoritative move table. Delivered and cancelled are
// terminal. Statuses not in the table allow no moves at all, so an
// unrecognized status coming back from the platform can never be
// transitioned out of from here.
var transitions = map[Status][]Status{
	Draft:     {Confirmed, Cancelled},
	Confirmed: {Preparing, Cancelled},
	Preparing: {Ready, Cancelled},
	Ready:     {Delivered},
	Delivered: {},
	Cancelled: {},
}

// Known reports whether s is a status the lifecycle recognizes.
func Known(s Status) bool {
	_, ok := transitions[s]
	return ok
}

// AllowedNext returns the statuses reachable from s. Unknown statuses get
// an empty set.
func AllowedNext(s Status) []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether the move from → to is legal.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
