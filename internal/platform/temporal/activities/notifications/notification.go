package notifications

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	notifapp "github.com/Apurer/go-order-tracker/internal/domains/notifications/application"
)

// Activities groups activities operating on the notifications bounded context.
type Activities struct {
	dispatcher *notifapp.Dispatcher
}

// NewActivities wires the dispatcher into the Temporal activities bundle.
func NewActivities(dispatcher *notifapp.Dispatcher) *Activities {
	return &Activities{dispatcher: dispatcher}
}

// SendOrderNotification performs one dispatch attempt. A returned error is a
// retryable transport failure and triggers the workflow's retry policy; all
// terminal resolutions come back as the Outcome value. Temporal acknowledges
// the attempt only when this function returns, so a worker lost mid-call
// redelivers the task.
func (a *Activities) SendOrderNotification(ctx context.Context, input notifapp.DispatchInput) (notifapp.Outcome, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.dispatcher == nil {
		logger.Error("notification activity not initialized", "orderId", input.OrderID.String())
		return notifapp.Outcome{}, errors.New("notification activity not initialized")
	}
	logger.Info("SendOrderNotification activity started",
		"orderId", input.OrderID.String(),
		"event", string(input.Event),
		"attempt", activity.GetInfo(ctx).Attempt)
	outcome, err := a.dispatcher.Dispatch(ctx, input)
	if err != nil {
		logger.Error("SendOrderNotification attempt failed",
			"orderId", input.OrderID.String(), "error", err)
		return notifapp.Outcome{}, err
	}
	logger.Info("SendOrderNotification activity completed",
		"orderId", input.OrderID.String(),
		"status", string(outcome.Status),
		"reason", outcome.Reason)
	return outcome, nil
}
