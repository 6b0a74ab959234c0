package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultEndpoint = "https://api.pushover.net/1/messages.json"

// Pushover sends fire-and-forget push notifications. With empty credentials
// the client is disabled and Push is a no-op; credentials are checked once
// at construction, never per call.
type Pushover struct {
	token    string
	user     string
	endpoint string
	client   *http.Client
}

type Option func(*Pushover)

// WithEndpoint overrides the Pushover API endpoint.
func WithEndpoint(u string) Option {
	return func(p *Pushover) { p.endpoint = u }
}

func NewPushover(token, user string, opts ...Option) *Pushover {
	p := &Pushover{
		token:    token,
		user:     user,
		endpoint: defaultEndpoint,
		client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pushover) Enabled() bool {
	return p.token != "" && p.user != ""
}

// Push sends a single message. The response body is discarded; there is no
// retry and no delivery confirmation.
func (p *Pushover) Push(ctx context.Context, text string) error {
	if !p.Enabled() {
		slog.Debug("pushover disabled, dropping notification", "text_len", len(text))
		return nil
	}

	form := url.Values{
		"token":   {p.token},
		"user":    {p.user},
		"message": {text},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating pushover request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending pushover notification: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("pushover returned HTTP %d", resp.StatusCode)
	}

	slog.Debug("pushover notification sent", "status", resp.StatusCode)
	return nil
}
