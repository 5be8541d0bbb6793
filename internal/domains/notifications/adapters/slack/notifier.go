package slack

import (
	"context"
	"errors"

	slackclient "github.com/Apurer/go-order-tracker/internal/clients/http/slack"
	"github.com/Apurer/go-order-tracker/internal/domains/notifications/ports"
	ordersdomain "github.com/Apurer/go-order-tracker/internal/domains/orders/domain"
)

var _ ports.ChannelNotifier = (*Notifier)(nil)

// Notifier delivers order notifications to a Slack channel.
type Notifier struct {
	client *slackclient.Client
}

// NewNotifier wires a Slack HTTP client into the channel notifier port.
func NewNotifier(client *slackclient.Client) *Notifier {
	return &Notifier{client: client}
}

// Notify builds the Block Kit message from the order's current state and
// posts it. Slack-level errors that retrying cannot fix are wrapped as
// NonRetryableError; everything else stays retryable.
func (n *Notifier) Notify(ctx context.Context, settings ports.Settings, order *ordersdomain.Order, event ordersdomain.Event) error {
	if n == nil || n.client == nil {
		return errors.New("slack notifier not configured")
	}
	if order == nil {
		return errors.New("order is nil")
	}
	message := buildMessage(order, event, settings.Channel)
	err := n.client.PostMessage(ctx, settings.BotToken, message)
	if err == nil {
		return nil
	}
	var apiErr *slackclient.APIError
	if errors.As(err, &apiErr) && !apiErr.Retryable() {
		return &ports.NonRetryableError{Reason: apiErr.Code, Err: err}
	}
	return err
}
