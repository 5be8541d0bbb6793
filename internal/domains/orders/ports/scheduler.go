package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/Apurer/go-order-tracker/internal/domains/orders/domain"
)

// NotificationScheduler hands a notification task to the execution runtime.
// Scheduling happens from after-commit hooks, so failures here are logged by
// the adapter and never surface to the request that triggered the event.
type NotificationScheduler interface {
	Schedule(ctx context.Context, orderID uuid.UUID, event domain.Event) error
}
