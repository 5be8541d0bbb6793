package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Apurer/go-order-tracker/internal/domains/notifications/ports"
	ordersdomain "github.com/Apurer/go-order-tracker/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-order-tracker/internal/domains/orders/ports"
)

// OutcomeStatus classifies how one dispatch resolved.
type OutcomeStatus string

const (
	OutcomeSent    OutcomeStatus = "sent"
	OutcomeSkipped OutcomeStatus = "skipped"
	OutcomeError   OutcomeStatus = "error"
)

// Skip and terminal-error reasons.
const (
	ReasonDisabled      = "disabled"
	ReasonMissingConfig = "missing_config"
	ReasonNotFound      = "not_found"
)

// DispatchInput identifies one notification task.
type DispatchInput struct {
	OrderID uuid.UUID
	Event   ordersdomain.Event
}

// Outcome is the terminal result of one dispatch. It is observational only;
// nothing about it is persisted on the order.
type Outcome struct {
	Status      OutcomeStatus `json:"status"`
	Reason      string        `json:"reason,omitempty"`
	OrderNumber string        `json:"order_number,omitempty"`
}

// Dispatcher delivers one notification per triggering event. Dispatch returns
// a non-nil error only for retryable transport failures; every other
// resolution is a terminal Outcome so the execution runtime acknowledges the
// task instead of redelivering it.
type Dispatcher struct {
	orders   ports.OrderReader
	notifier ports.ChannelNotifier
	settings ports.SettingsProvider
	logger   *slog.Logger
}

// Option configures optional dispatcher collaborators.
type Option func(*Dispatcher)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

// NewDispatcher wires the dispatcher with its collaborators.
func NewDispatcher(orders ports.OrderReader, notifier ports.ChannelNotifier, settings ports.SettingsProvider, opts ...Option) *Dispatcher {
	d := &Dispatcher{orders: orders, notifier: notifier, settings: settings}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Dispatch executes one notification attempt end to end.
func (d *Dispatcher) Dispatch(ctx context.Context, input DispatchInput) (Outcome, error) {
	settings := d.settings.NotificationSettings(ctx)
	if !settings.Enabled {
		d.logInfo(ctx, "notifications disabled, skipping", slog.String("order_id", input.OrderID.String()))
		return Outcome{Status: OutcomeSkipped, Reason: ReasonDisabled}, nil
	}
	if !settings.Configured() {
		d.logWarn(ctx, "notification channel not configured, skipping", slog.String("order_id", input.OrderID.String()))
		return Outcome{Status: OutcomeSkipped, Reason: ReasonMissingConfig}, nil
	}

	order, err := d.orders.GetByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, ordersports.ErrNotFound) {
			// A missing order will not appear later; terminal, never retried.
			d.logError(ctx, "order not found for notification", slog.String("order_id", input.OrderID.String()))
			return Outcome{Status: OutcomeError, Reason: ReasonNotFound}, nil
		}
		return Outcome{}, err
	}

	if err := d.notifier.Notify(ctx, settings, order, input.Event); err != nil {
		var terminal *ports.NonRetryableError
		if errors.As(err, &terminal) {
			d.logError(ctx, "non-retryable notification failure",
				slog.String("order_number", order.OrderNumber),
				slog.String("reason", terminal.Reason))
			return Outcome{Status: OutcomeError, Reason: terminal.Reason, OrderNumber: order.OrderNumber}, nil
		}
		return Outcome{}, err
	}

	d.logInfo(ctx, "notification sent",
		slog.String("order_number", order.OrderNumber),
		slog.String("event", string(input.Event)))
	return Outcome{Status: OutcomeSent, OrderNumber: order.OrderNumber}, nil
}

func (d *Dispatcher) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if d.logger != nil {
		d.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
	}
}

func (d *Dispatcher) logWarn(ctx context.Context, msg string, attrs ...slog.Attr) {
	if d.logger != nil {
		d.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
	}
}

func (d *Dispatcher) logError(ctx context.Context, msg string, attrs ...slog.Attr) {
	if d.logger != nil {
		d.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
}
