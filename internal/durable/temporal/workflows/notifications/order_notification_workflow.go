package notifications

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	notifapp "github.com/Apurer/go-order-tracker/internal/domains/notifications/application"
)

const (
	// OrderNotificationWorkflowName is the public identifier for registering the workflow.
	OrderNotificationWorkflowName = "orders.workflows.Notification"
	// OrderNotificationTaskQueue is the queue consumed by the notification worker.
	OrderNotificationTaskQueue = "ORDER_NOTIFICATIONS"
	// SendNotificationActivityName executes one dispatch attempt.
	SendNotificationActivityName = "orders.activities.SendNotification"
)

// OrderNotificationWorkflow delivers one notification for one committed order
// event. The single activity carries the whole retry contract: transport
// failures retry with capped exponential backoff (the server jitters the
// intervals), at most three retries after the original attempt; terminal
// outcomes return as values and are never retried.
func OrderNotificationWorkflow(ctx workflow.Context, input notifapp.DispatchInput) (*notifapp.Outcome, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderNotificationWorkflow started",
		"orderId", input.OrderID.String(), "event", string(input.Event))

	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    60 * time.Second,
			MaximumAttempts:    4,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var outcome notifapp.Outcome
	if err := workflow.ExecuteActivity(ctx, SendNotificationActivityName, input).Get(ctx, &outcome); err != nil {
		logger.Error("OrderNotificationWorkflow exhausted retries",
			"orderId", input.OrderID.String(), "event", string(input.Event), "error", err)
		return nil, err
	}
	logger.Info("OrderNotificationWorkflow completed",
		"orderId", input.OrderID.String(),
		"status", string(outcome.Status),
		"reason", outcome.Reason)
	return &outcome, nil
}
