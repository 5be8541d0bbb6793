package domain

import "fmt"

// Status represents the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// transitions is the fixed lifecycle graph. Missing keys and empty sets are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
}

// InvalidTransitionError rejects a status change, naming both sides of the request.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %q to %q", e.From, e.To)
}

// IsValidStatus reports whether the value belongs to the five-state domain.
func IsValidStatus(status Status) bool {
	_, ok := transitions[status]
	return ok
}

// IsTerminal reports whether no further transitions are accepted from the status.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0 && IsValidStatus(s)
}

// CanTransitionTo reports whether the requested status is reachable from s.
// Unknown requested values are simply unreachable; the taxonomy stays flat.
func (s Status) CanTransitionTo(requested Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == requested {
			return true
		}
	}
	return false
}

// Transition decides a requested status change. It is pure: no side effects,
// no storage. Callers inside a transaction must re-run it against the value
// actually read there.
func Transition(current, requested Status) (Status, error) {
	if !current.CanTransitionTo(requested) {
		return "", &InvalidTransitionError{From: current, To: requested}
	}
	return requested, nil
}
