package request

import "fmt"

// Resolution is the lifecycle state of a request.
type Resolution int

const (
	Pending Resolution = iota
	Resolved
	Cancelled
)

func (r Resolution) String() string {
	switch r {
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("resolution(%d)", int(r))
	}
}

// Transition returns the state after moving from r to next and whether the
// move is allowed. Only Pending may move, and only to a terminal state.
func (r Resolution) Transition(next Resolution) (Resolution, bool) {
	if r != Pending || (next != Resolved && next != Cancelled) {
		return r, false
	}
	return next, true
}

// Settled reports whether r is terminal.
func (r Resolution) Settled() bool {
	return r == Resolved || r == Cancelled
}

// Outcome is the result of a dialog invocation.
type Outcome[V any] struct {
	Cancelled bool
	Value     V
}

// Cancel returns the cancelled outcome.
func Cancel[V any]() Outcome[V] {
	return Outcome[V]{Cancelled: true}
}

// Accept returns an accepted outcome carrying v.
func Accept[V any](v V) Outcome[V] {
	return Outcome[V]{Value: v}
}

// Resolution maps the outcome to its terminal state.
func (o Outcome[V]) Resolution() Resolution {
	if o.Cancelled {
		return Cancelled
	}
	return Resolved
}
