// Package monitor drives periodic polling of the watched wallets.
//
// The scheduler is either Idle or Active. While Active it runs one tick per
// interval: every watched wallet is fetched concurrently, and each successful
// snapshot is diffed against the wallet's previous successful snapshot. The
// resulting notifications go to the notification sink. A failed fetch is
// recorded against its wallet only and never advances that wallet's baseline.
package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gabapcia/walletwatch/internal/changedetect"
	"github.com/gabapcia/walletwatch/internal/notification"
	"github.com/gabapcia/walletwatch/internal/pkg/resilience/retry"
	"github.com/gabapcia/walletwatch/internal/portfolio"
	"github.com/gabapcia/walletwatch/internal/walletregistry"
)

var (
	// ErrNoWatchedWallets is returned by Start when the watch set is empty.
	ErrNoWatchedWallets = errors.New("no wallets are being watched")

	// ErrAlreadyActive is returned by Start when monitoring is already running.
	ErrAlreadyActive = errors.New("monitoring is already active")

	// ErrWalletNotWatched is returned for addresses outside the watch set.
	ErrWalletNotWatched = errors.New("wallet is not watched")
)

const (
	// DefaultInterval is the polling period used unless WithInterval says otherwise.
	DefaultInterval = 30 * time.Second

	// DefaultNetwork is the watch list network used unless WithNetwork says otherwise.
	DefaultNetwork = "ethereum"
)

// State is the scheduler state.
type State string

const (
	StateIdle   State = "idle"
	StateActive State = "active"
)

// SnapshotFetcher loads the current state of a wallet.
type SnapshotFetcher interface {
	// FetchSnapshot returns a usable snapshot even on failure. A non-nil error
	// means the snapshot is a fallback and must not be trusted as a baseline,
	// unless it wraps walletdata.ErrPartialSnapshot.
	FetchSnapshot(ctx context.Context, address portfolio.Address) (*portfolio.WalletSnapshot, error)
}

// WalletStatus is the externally visible state of one watched wallet.
type WalletStatus struct {
	Address        portfolio.Address `json:"address"`
	Label          string            `json:"label"`
	LastSnapshotAt *time.Time        `json:"lastSnapshotAt,omitempty"`
	LastError      string            `json:"lastError,omitempty"`
}

// Service is the monitoring scheduler. All methods are safe for concurrent use.
type Service interface {
	// AddWallet persists address on the watch list and starts watching it.
	// Its first successful fetch establishes the baseline and emits nothing.
	AddWallet(ctx context.Context, address, label string) (WalletStatus, error)

	// RemoveWallet stops watching address and forgets its baseline.
	//
	// Returns ErrWalletNotWatched if address is not watched.
	RemoveWallet(ctx context.Context, address string) error

	// RenameWallet replaces the label of a watched wallet.
	RenameWallet(ctx context.Context, address, label string) (WalletStatus, error)

	// Wallets lists every watched wallet ordered by address.
	Wallets() []WalletStatus

	// WalletStatus returns the status of one watched wallet.
	WalletStatus(address string) (WalletStatus, error)

	// Snapshot returns a copy of the last successful snapshot of address, or
	// nil if none has been fetched yet.
	//
	// Returns ErrWalletNotWatched if address is not watched.
	Snapshot(address string) (*portfolio.WalletSnapshot, error)

	// Restore loads the persisted watch list with empty baselines and returns
	// how many wallets were added.
	Restore(ctx context.Context) (int, error)

	// Start moves the scheduler from Idle to Active and runs a first tick
	// right away.
	//
	// Returns ErrNoWatchedWallets (state stays Idle) or ErrAlreadyActive.
	Start(ctx context.Context) error

	// Stop moves the scheduler to Idle. A tick in flight runs to completion.
	Stop()

	// State reports the scheduler state.
	State() State

	// RefreshNow runs one tick synchronously, regardless of the state.
	RefreshNow(ctx context.Context) error
}

// monitoredWallet is the scheduler-owned record of one watched wallet.
type monitoredWallet struct {
	address   portfolio.Address
	label     string
	previous  *portfolio.WalletSnapshot // last successful snapshot, nil before the first one
	lastError error
}

func (w *monitoredWallet) status() WalletStatus {
	s := WalletStatus{
		Address: w.address,
		Label:   w.label,
	}

	if w.previous != nil {
		at := w.previous.FetchedAt
		s.LastSnapshotAt = &at
	}

	if w.lastError != nil {
		s.LastError = w.lastError.Error()
	}

	return s
}

// config holds optional scheduler settings.
type config struct {
	interval time.Duration
	network  string
	retry    retry.Retry
}

// Option configures the scheduler.
type Option func(*config)

type closeFunc func()

type service struct {
	mu        sync.Mutex
	isStarted bool
	closeFunc closeFunc
	wallets   map[portfolio.Address]*monitoredWallet

	// tickMu serializes ticks so baselines are always applied in order.
	tickMu sync.Mutex

	fetcher  SnapshotFetcher
	registry walletregistry.Service
	engine   changedetect.Engine
	sink     notification.Sink

	interval time.Duration
	network  string
	retry    retry.Retry
}

// Compile-time assertion that service implements Service.
var _ Service = (*service)(nil)

// New creates an Idle scheduler with an empty watch set.
func New(fetcher SnapshotFetcher, registry walletregistry.Service, engine changedetect.Engine, sink notification.Sink, opts ...Option) *service {
	cfg := config{
		interval: DefaultInterval,
		network:  DefaultNetwork,
		retry:    retry.New(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.interval <= 0 {
		cfg.interval = DefaultInterval
	}

	return &service{
		wallets:  make(map[portfolio.Address]*monitoredWallet),
		fetcher:  fetcher,
		registry: registry,
		engine:   engine,
		sink:     sink,
		interval: cfg.interval,
		network:  cfg.network,
		retry:    cfg.retry,
	}
}

// WithInterval sets the polling period. Non-positive values keep DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(c *config) {
		c.interval = d
	}
}

// WithNetwork selects the watch list network.
func WithNetwork(network string) Option {
	return func(c *config) {
		c.network = network
	}
}

// WithRetry sets the retrier used when loading the persisted watch list.
func WithRetry(r retry.Retry) Option {
	return func(c *config) {
		c.retry = r
	}
}
