// Package webhook forwards notifications to an HTTP endpoint as JSON.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gabapcia/walletwatch/internal/notification"
	transporthttp "github.com/gabapcia/walletwatch/internal/pkg/transport/http"

	"github.com/hashicorp/go-retryablehttp"
)

// ErrDeliveryFailed is returned when the endpoint does not accept a notification.
var ErrDeliveryFailed = errors.New("webhook delivery failed")

// payload is the body posted for every notification.
type payload struct {
	Event        string                    `json:"event"`
	SentAt       time.Time                 `json:"sentAt"`
	Notification notification.Notification `json:"notification"`
}

// dispatcher posts notifications to a fixed URL.
type dispatcher struct {
	url        string
	httpClient *retryablehttp.Client
	now        func() time.Time
}

// Compile-time assertion that dispatcher implements notification.Dispatcher.
var _ notification.Dispatcher = (*dispatcher)(nil)

// Option configures a dispatcher.
type Option func(*dispatcher)

// New creates a dispatcher for url. The default client retries a delivery
// three times on connection errors and 5xx responses.
func New(url string, opts ...Option) *dispatcher {
	d := &dispatcher{
		url: url,
		httpClient: transporthttp.NewClient(
			transporthttp.WithRetryMax(3),
			transporthttp.WithRetryWaitMin(500*time.Millisecond),
			transporthttp.WithRetryWaitMax(5*time.Second),
		),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch implements notification.Dispatcher.
func (d *dispatcher) Dispatch(ctx context.Context, n notification.Notification) error {
	body, err := json.Marshal(payload{
		Event:        "notification." + string(n.Type),
		SentAt:       d.now(),
		Notification: n,
	})
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", ErrDeliveryFailed, resp.StatusCode)
	}

	return nil
}

// WithHTTPClient replaces the HTTP client used for deliveries.
func WithHTTPClient(c *retryablehttp.Client) Option {
	return func(d *dispatcher) {
		d.httpClient = c
	}
}
