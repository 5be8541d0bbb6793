package domain

// Event identifies what happened to an order and shapes the notification sent
// for it. The dispatcher reads current order state at execution time, so the
// event carries no snapshot.
type Event string

const (
	// EventCreated is raised when a new order is committed.
	EventCreated Event = "created"
	// EventStatusUpdated is raised when a status transition is committed.
	EventStatusUpdated Event = "status_updated"
)

// IsValidEvent reports whether the value is a known event kind.
func IsValidEvent(event Event) bool {
	return event == EventCreated || event == EventStatusUpdated
}
