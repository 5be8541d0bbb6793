package ports

import (
	"context"

	ordersdomain "github.com/Apurer/go-order-tracker/internal/domains/orders/domain"
)

// Settings is the channel configuration read at dispatch time, not enqueue
// time, so configuration changes apply to in-flight tasks.
type Settings struct {
	Enabled  bool
	BotToken string
	Channel  string
}

// Configured reports whether the destination and credential are both present.
func (s Settings) Configured() bool {
	return s.BotToken != "" && s.Channel != ""
}

// SettingsProvider resolves the current notification settings.
type SettingsProvider interface {
	NotificationSettings(ctx context.Context) Settings
}

// ChannelNotifier delivers one message about an order event to the external
// channel. Errors are retryable transport failures unless wrapped in
// NonRetryableError.
type ChannelNotifier interface {
	Notify(ctx context.Context, settings Settings, order *ordersdomain.Order, event ordersdomain.Event) error
}

// NonRetryableError marks a delivery failure that retrying cannot fix, such
// as a revoked credential or an archived channel.
type NonRetryableError struct {
	Reason string
	Err    error
}

func (e *NonRetryableError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *NonRetryableError) Unwrap() error { return e.Err }
