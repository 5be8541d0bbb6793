// Package slack is a minimal client for the Slack chat.postMessage API.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
)

// DefaultAPIURL is the production chat.postMessage endpoint.
const DefaultAPIURL = "https://slack.com/api/chat.postMessage"

const (
	// Overall request budget; keeps a single attempt from starving the worker.
	defaultTimeout = 10 * time.Second
	// Separate, shorter bound on connection establishment.
	defaultConnectTimeout = 5 * time.Second
)

// nonRetryableCodes are Slack API errors that retrying cannot fix.
var nonRetryableCodes = map[string]struct{}{
	"invalid_auth":      {},
	"channel_not_found": {},
	"not_in_channel":    {},
	"is_archived":       {},
}

// APIError is a Slack-level failure (HTTP 200, ok=false).
type APIError struct {
	Code string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("slack API error: %s", e.Code)
}

// Retryable reports whether another attempt could succeed.
func (e *APIError) Retryable() bool {
	_, terminal := nonRetryableCodes[e.Code]
	return !terminal
}

// Message is a chat.postMessage payload.
type Message struct {
	Channel     string       `json:"channel"`
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment carries a colored Block Kit section.
type Attachment struct {
	Color  string  `json:"color"`
	Blocks []Block `json:"blocks"`
}

// Block is one Block Kit element.
type Block struct {
	Type   string       `json:"type"`
	Text   *TextObject  `json:"text,omitempty"`
	Fields []TextObject `json:"fields,omitempty"`
}

// TextObject is a Block Kit text element.
type TextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Client posts messages to the Slack Web API.
type Client struct {
	apiURL     string
	httpClient *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithAPIURL overrides the endpoint, used by tests.
func WithAPIURL(url string) Option {
	return func(c *Client) {
		if strings.TrimSpace(url) != "" {
			c.apiURL = url
		}
	}
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient instantiates the Slack client with bounded timeouts.
func NewClient(opts ...Option) *Client {
	c := &Client{
		apiURL: DefaultAPIURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				DialContext:         (&net.Dialer{Timeout: defaultConnectTimeout}).DialContext,
				TLSHandshakeTimeout: defaultConnectTimeout,
			},
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// PostMessage sends one message. Transport errors and non-2xx statuses are
// retryable; ok=false responses surface as *APIError so callers can separate
// terminal credential/channel problems from transient ones.
func (c *Client) PostMessage(ctx context.Context, token string, message Message) error {
	if c == nil || c.httpClient == nil {
		return errors.New("slack client not configured")
	}
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("encode slack message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build slack request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call slack API: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("slack API status: %s", resp.Status)
	}
	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("decode slack response: %w", err)
	}
	if !parsed.OK {
		code := parsed.Error
		if code == "" {
			code = "unknown"
		}
		return &APIError{Code: code}
	}
	return nil
}
