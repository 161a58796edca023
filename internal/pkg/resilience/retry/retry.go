// Package retry runs operations that may fail temporarily with exponential
// backoff. It wraps avast/retry-go behind a small interface so callers can
// inject a retrier and tests can run with tiny delays.
//
//	r := retry.New(retry.WithAttempts(5), retry.WithDelay(200*time.Millisecond))
//	err := r.Execute(ctx, func() error {
//	    return client.Ping(ctx).Err()
//	})
package retry

import (
	"context"
	"time"

	retry "github.com/avast/retry-go/v4"
)

// Retry executes an operation until it succeeds, the attempts run out, or the
// context ends.
type Retry interface {
	// Execute runs operation and retries it on error.
	//
	// Returns nil on success, otherwise the error of the last attempt (or the
	// context error if ctx ended while waiting between attempts).
	Execute(ctx context.Context, operation func() error) error
}

// config holds internal settings for the retrier.
type config struct {
	attempts uint                          // total attempts, including the first
	delay    time.Duration                 // base backoff delay
	maxDelay time.Duration                 // upper bound for a single delay
	retryIf  func(error) bool              // decides whether an error is worth another attempt
	onRetry  func(attempt uint, err error) // observes failed attempts
}

// Option configures the retrier.
type Option func(*config)

// retrier implements Retry on top of retry-go.
type retrier struct {
	cfg config
}

// Compile-time assertion that retrier implements Retry interface
var _ Retry = (*retrier)(nil)

// New creates a Retry. Defaults: 3 attempts, 1s base delay, 5s max delay,
// every error is retried.
func New(opts ...Option) Retry {
	cfg := config{
		attempts: 3,
		delay:    1 * time.Second,
		maxDelay: 5 * time.Second,
		retryIf:  func(error) bool { return true },
		onRetry:  func(uint, error) {},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &retrier{
		cfg: cfg,
	}
}

// Execute implements Retry.
func (r *retrier) Execute(ctx context.Context, operation func() error) error {
	return retry.Do(operation,
		retry.Attempts(r.cfg.attempts),
		retry.Delay(r.cfg.delay),
		retry.MaxDelay(r.cfg.maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(r.cfg.retryIf),
		retry.OnRetry(r.cfg.onRetry),
		retry.Context(ctx),
	)
}

// WithAttempts sets the total number of attempts, including the first one.
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithDelay sets the base delay. It doubles after every failed attempt.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithMaxDelay caps a single delay between attempts.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithRetryIf stops retrying as soon as fn reports false for an error.
func WithRetryIf(fn func(error) bool) Option {
	return func(c *config) {
		c.retryIf = fn
	}
}

// WithOnRetry registers a callback invoked after failed attempts. attempt is
// zero-based.
func WithOnRetry(fn func(attempt uint, err error)) Option {
	return func(c *config) {
		c.onRetry = fn
	}
}
