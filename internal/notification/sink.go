package notification

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/gabapcia/walletwatch/internal/pkg/logger"
	"github.com/gabapcia/walletwatch/internal/pkg/x/chflow"

	"github.com/google/uuid"
)

const (
	// DefaultCapacity is how many notifications are retained by default.
	DefaultCapacity = 50

	// subscriberBufferSize is the per-subscriber backlog before events are dropped.
	subscriberBufferSize = 16
)

// Sink stores notifications and hands them to consumers. All methods are safe
// for concurrent use.
type Sink interface {
	// Add stores n with a fresh ID, creation time and Read=false.
	//
	// If a retained notification has the same DedupKey, n is dropped and the
	// retained one is returned with false.
	Add(ctx context.Context, n Notification) (Notification, bool)

	// MarkRead flags one notification as read.
	//
	// Returns ErrNotificationNotFound if id is not retained.
	MarkRead(id string) error

	// MarkAllRead flags every retained notification as read.
	MarkAllRead()

	// ClearAll drops every retained notification.
	ClearAll()

	// List returns the notifications selected by filter, newest first.
	List(filter Filter) []Notification

	// UnreadCount returns how many retained notifications are unread.
	UnreadCount() int

	// Subscribe returns a feed of newly stored notifications. The channel is
	// closed when ctx ends. Events are dropped for subscribers that fall behind.
	Subscribe(ctx context.Context) <-chan Notification
}

// config holds optional sink settings.
type config struct {
	capacity int
	now      func() time.Time
	newID    func() string
}

// Option configures a sink.
type Option func(*config)

// sink is the in-memory Sink implementation.
type sink struct {
	mu       sync.Mutex
	capacity int
	items    []Notification // oldest first

	subscribers map[chan Notification]struct{}

	now   func() time.Time
	newID func() string
}

// Compile-time assertion that sink implements Sink.
var _ Sink = (*sink)(nil)

// newID returns a time-ordered identifier.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// New creates an empty sink retaining at most DefaultCapacity notifications
// unless WithCapacity says otherwise.
func New(opts ...Option) *sink {
	cfg := config{
		capacity: DefaultCapacity,
		now:      time.Now,
		newID:    newID,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.capacity <= 0 {
		cfg.capacity = DefaultCapacity
	}

	return &sink{
		capacity:    cfg.capacity,
		items:       make([]Notification, 0, cfg.capacity),
		subscribers: make(map[chan Notification]struct{}),
		now:         cfg.now,
		newID:       cfg.newID,
	}
}

// Add implements Sink.
func (s *sink) Add(ctx context.Context, n Notification) (Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.DedupKey != "" {
		for _, existing := range s.items {
			if existing.DedupKey == n.DedupKey {
				return existing, false
			}
		}
	}

	n.ID = s.newID()
	n.CreatedAt = s.now()
	n.Read = false

	s.items = append(s.items, n)
	if overflow := len(s.items) - s.capacity; overflow > 0 {
		s.items = slices.Delete(s.items, 0, overflow)
	}

	recordEmitted(ctx, n)

	for ch := range s.subscribers {
		if !chflow.TrySend(ch, n) {
			logger.Warn(ctx, "notification subscriber is falling behind, dropping event",
				"notification.id", n.ID,
				"notification.type", n.Type,
			)
		}
	}

	return n, true
}

// MarkRead implements Sink.
func (s *sink) MarkRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Read = true
			return nil
		}
	}

	return ErrNotificationNotFound
}

// MarkAllRead implements Sink.
func (s *sink) MarkAllRead() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		s.items[i].Read = true
	}
}

// ClearAll implements Sink.
func (s *sink) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = s.items[:0]
}

// List implements Sink.
func (s *sink) List(filter Filter) []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Notification, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		if filter.Match(s.items[i]) {
			out = append(out, s.items[i])
		}
	}

	return out
}

// UnreadCount implements Sink.
func (s *sink) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, n := range s.items {
		if !n.Read {
			count++
		}
	}

	return count
}

// Subscribe implements Sink.
func (s *sink) Subscribe(ctx context.Context) <-chan Notification {
	ch := make(chan Notification, subscriberBufferSize)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()

		s.mu.Lock()
		defer s.mu.Unlock()

		delete(s.subscribers, ch)
		close(ch)
	}()

	return ch
}

// WithCapacity sets how many notifications are retained. Non-positive values
// keep DefaultCapacity.
func WithCapacity(n int) Option {
	return func(c *config) {
		c.capacity = n
	}
}

// withClock replaces the clock and ID generator. It exists for tests.
func withClock(now func() time.Time, newID func() string) Option {
	return func(c *config) {
		c.now = now
		c.newID = newID
	}
}
