// Package ratelimit enforces a per-provider ceiling on outbound requests using
// a sliding one-second window of admission timestamps.
//
// No trailing one-second interval ever contains more than the configured
// number of admitted requests for a provider.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gabapcia/walletwatch/internal/pkg/types"
)

// window is the length of the trailing interval the limit applies to.
const window = time.Second

// ErrInvalidLimit is returned by New when a provider limit is zero or negative.
// A limiter with such a limit would block forever, so it is rejected at startup.
var ErrInvalidLimit = errors.New("rate limit must be greater than zero")

// Limiter admits outbound requests for a named upstream provider.
type Limiter interface {
	// Admit blocks until a request to the given provider may be sent without
	// exceeding its requests-per-second limit, or until ctx is done.
	//
	// Returns ctx.Err() if the context ends while waiting.
	Admit(ctx context.Context, provider string) error
}

// config holds internal settings for the limiter.
type config struct {
	limits map[string]int                       // per-provider overrides of the default limit
	now    func() time.Time                     // clock used to timestamp admissions
	after  func(time.Duration) <-chan time.Time // timer used while waiting for the window to open
}

// Option configures the limiter before construction.
type Option func(*config)

// limiter is the sliding-window implementation of Limiter.
type limiter struct {
	mu           sync.Mutex
	defaultLimit int
	limits       map[string]int
	windows      types.DefaultMap[string, []time.Time]

	now   func() time.Time
	after func(time.Duration) <-chan time.Time
}

// Compile-time assertion that limiter implements Limiter.
var _ Limiter = (*limiter)(nil)

// New creates a Limiter that allows defaultLimit requests per second for any
// provider without an explicit override (see WithProviderLimit).
//
// Returns ErrInvalidLimit if defaultLimit or any override is not positive.
func New(defaultLimit int, opts ...Option) (*limiter, error) {
	cfg := config{
		limits: make(map[string]int),
		now:    time.Now,
		after:  time.After,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if defaultLimit <= 0 {
		return nil, fmt.Errorf("%w: default limit is %d", ErrInvalidLimit, defaultLimit)
	}

	for provider, limit := range cfg.limits {
		if limit <= 0 {
			return nil, fmt.Errorf("%w: provider %q limit is %d", ErrInvalidLimit, provider, limit)
		}
	}

	return &limiter{
		defaultLimit: defaultLimit,
		limits:       cfg.limits,
		windows:      types.NewDefaultMap[string](func() []time.Time { return nil }),
		now:          cfg.now,
		after:        cfg.after,
	}, nil
}

// limitFor returns the configured limit for provider.
func (l *limiter) limitFor(provider string) int {
	if limit, ok := l.limits[provider]; ok {
		return limit
	}
	return l.defaultLimit
}

// prune drops admissions that fell out of the trailing window ending at now.
// Timestamps are kept in admission order, so the stale ones form a prefix.
func prune(admitted []time.Time, now time.Time) []time.Time {
	i := 0
	for i < len(admitted) && now.Sub(admitted[i]) >= window {
		i++
	}
	return admitted[i:]
}

// tryAdmit records an admission if the window has room and reports how long
// the caller must wait otherwise.
func (l *limiter) tryAdmit(provider string) (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	admitted := prune(l.windows.Get(provider), now)

	if len(admitted) < l.limitFor(provider) {
		l.windows.Set(provider, append(admitted, now))
		return 0, true
	}

	l.windows.Set(provider, admitted)
	return window - now.Sub(admitted[0]), false
}

// Admit implements Limiter.
//
// The window is re-checked after every wait because concurrent callers may
// have claimed the slot that opened up in the meantime.
func (l *limiter) Admit(ctx context.Context, provider string) error {
	for {
		wait, ok := l.tryAdmit(provider)
		if ok {
			return nil
		}

		recordWait(ctx, provider, wait)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.after(wait):
		}
	}
}

// inWindow returns how many admissions for provider are inside the window
// ending now. It exists for tests.
func (l *limiter) inWindow(provider string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(prune(l.windows.Get(provider), l.now()))
}

// WithProviderLimit overrides the requests-per-second limit for one provider.
func WithProviderLimit(provider string, limit int) Option {
	return func(c *config) {
		c.limits[provider] = limit
	}
}

// withClock replaces the wall clock and timer, letting tests drive time.
func withClock(now func() time.Time, after func(time.Duration) <-chan time.Time) Option {
	return func(c *config) {
		c.now = now
		c.after = after
	}
}
