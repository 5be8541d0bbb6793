package workflows

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"

	notifapp "github.com/Apurer/go-order-tracker/internal/domains/notifications/application"
	"github.com/Apurer/go-order-tracker/internal/domains/orders/domain"
	"github.com/Apurer/go-order-tracker/internal/domains/orders/ports"
	notifworkflows "github.com/Apurer/go-order-tracker/internal/durable/temporal/workflows/notifications"
)

var (
	_ ports.NotificationScheduler = (*TemporalScheduler)(nil)
	_ ports.NotificationScheduler = (*InlineScheduler)(nil)
)

// TemporalScheduler starts notification workflows on a Temporal cluster.
// Scheduling is fire-and-forget: the triggering request never waits on
// delivery, and retries belong to the workflow's own policy.
type TemporalScheduler struct {
	client    client.Client
	taskQueue string
}

// NewTemporalScheduler wires a Temporal client into the scheduler port.
func NewTemporalScheduler(c client.Client) *TemporalScheduler {
	return &TemporalScheduler{client: c, taskQueue: notifworkflows.OrderNotificationTaskQueue}
}

// Schedule enqueues one notification task for a committed event. The
// timestamp in the workflow id keeps two sequential transitions of the same
// order from colliding; tasks stay independent and unsuppressed.
func (s *TemporalScheduler) Schedule(ctx context.Context, orderID uuid.UUID, event domain.Event) error {
	if s == nil || s.client == nil {
		return errors.New("temporal notification scheduler not configured")
	}
	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("order-notify-%s-%s-%d", orderID, event, time.Now().UnixNano()),
		TaskQueue: s.taskQueue,
	}
	input := notifapp.DispatchInput{OrderID: orderID, Event: event}
	_, err := s.client.ExecuteWorkflow(ctx, options, notifworkflows.OrderNotificationWorkflowName, input)
	return err
}

// InlineScheduler runs the dispatcher directly in a goroutine, a dev/test
// fallback for when no Temporal cluster is reachable. It keeps the
// after-commit and never-block-the-request semantics but provides no retries
// and no redelivery on crash.
type InlineScheduler struct {
	dispatcher *notifapp.Dispatcher
	logger     *slog.Logger
	timeout    time.Duration
}

// NewInlineScheduler wraps the dispatcher for inline execution.
func NewInlineScheduler(dispatcher *notifapp.Dispatcher, logger *slog.Logger) *InlineScheduler {
	return &InlineScheduler{dispatcher: dispatcher, logger: logger, timeout: 30 * time.Second}
}

func (s *InlineScheduler) Schedule(_ context.Context, orderID uuid.UUID, event domain.Event) error {
	if s == nil || s.dispatcher == nil {
		return errors.New("inline notification scheduler not configured")
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		outcome, err := s.dispatcher.Dispatch(ctx, notifapp.DispatchInput{OrderID: orderID, Event: event})
		if s.logger == nil {
			return
		}
		if err != nil {
			s.logger.Error("inline notification dispatch failed",
				slog.String("order_id", orderID.String()),
				slog.String("event", string(event)),
				slog.String("error", err.Error()))
			return
		}
		s.logger.Info("inline notification dispatched",
			slog.String("order_id", orderID.String()),
			slog.String("status", string(outcome.Status)),
			slog.String("reason", outcome.Reason))
	}()
	return nil
}
