// Package config provides the env-backed notification settings provider.
package config

import (
	"context"
	"os"
	"strings"

	"github.com/Apurer/go-order-tracker/internal/domains/notifications/ports"
)

var _ ports.SettingsProvider = (*EnvSettings)(nil)

// EnvSettings reads Slack configuration from the environment on every call,
// so operators can flip SLACK_ENABLED or rotate the token without redeploying
// tasks already in flight.
type EnvSettings struct{}

func NewEnvSettings() *EnvSettings { return &EnvSettings{} }

func (EnvSettings) NotificationSettings(_ context.Context) ports.Settings {
	return ports.Settings{
		Enabled:  isTruthy(os.Getenv("SLACK_ENABLED")),
		BotToken: strings.TrimSpace(os.Getenv("SLACK_BOT_TOKEN")),
		Channel:  strings.TrimSpace(os.Getenv("SLACK_CHANNEL")),
	}
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
