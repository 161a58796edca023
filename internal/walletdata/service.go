// Package walletdata fetches balances and transaction history for a single
// account from an upstream Provider and assembles them into a
// portfolio.WalletSnapshot.
//
// Every sub-fetch is read through a shared ttlcache.Cache and, on a miss,
// admitted through a shared ratelimit.Limiter before the network call is made.
// Provider failures never propagate as a missing value: each sub-fetch falls
// back to a documented safe default (zero balance, empty list) and reports the
// failure alongside it.
package walletdata

import (
	"context"
	"errors"
	"time"

	"github.com/gabapcia/walletwatch/internal/pkg/ratelimit"
	"github.com/gabapcia/walletwatch/internal/pkg/ttlcache"
	"github.com/gabapcia/walletwatch/internal/portfolio"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
)

// ErrDegradedSnapshot is returned together with a usable snapshot when one or
// more of its sub-fetches failed and fell back to a default value.
var ErrDegradedSnapshot = errors.New("snapshot built from fallback data")

// ErrPartialSnapshot is returned together with a trustworthy snapshot when only
// some token balances failed to load. Those tokens are missing from it.
var ErrPartialSnapshot = errors.New("snapshot is missing token balances")

const (
	// snapshotPage and snapshotOffset select the history page merged into a snapshot.
	snapshotPage   = 1
	snapshotOffset = 5

	// snapshotTransactions caps the merged history of a snapshot.
	snapshotTransactions = 10
)

var tracer = otel.Tracer("github.com/gabapcia/walletwatch/internal/walletdata")

// TTLs are the cache lifetimes of each family of data.
type TTLs struct {
	Balance     time.Duration
	Transaction time.Duration
	TokenInfo   time.Duration
	Price       time.Duration
}

// DefaultTTLs bound staleness for a 30 second polling dashboard.
var DefaultTTLs = TTLs{
	Balance:     30 * time.Second,
	Transaction: 60 * time.Second,
	TokenInfo:   5 * time.Minute,
	Price:       30 * time.Second,
}

// Service fetches wallet data for one account at a time. All methods are safe
// for concurrent use.
type Service interface {
	// FetchSnapshot returns the native balance, the registry token balances and
	// the ten most recent transfers of address.
	//
	// The snapshot is always usable. If the native balance or a history
	// fetch failed, the returned error wraps ErrDegradedSnapshot and every
	// underlying failure. If only token balances failed, it wraps
	// ErrPartialSnapshot instead.
	FetchSnapshot(ctx context.Context, address portfolio.Address) (*portfolio.WalletSnapshot, error)

	// NativeBalance returns the native balance of address, or a zero balance
	// and an error if the provider failed.
	NativeBalance(ctx context.Context, address portfolio.Address) (portfolio.TokenBalance, error)

	// TokenBalances returns the positive balances of address for the given
	// contracts, or for the token registry if none are given. Tokens that
	// failed to load are omitted and reported in the error.
	TokenBalances(ctx context.Context, address portfolio.Address, contracts ...portfolio.Address) ([]portfolio.TokenBalance, error)

	// TransactionHistory returns one page of native transfers, or an empty
	// list and an error if the provider failed.
	TransactionHistory(ctx context.Context, address portfolio.Address, page, offset int) ([]portfolio.TransactionRecord, error)

	// TokenTransactionHistory returns one page of token transfers, optionally
	// restricted to one contract, or an empty list and an error.
	TokenTransactionHistory(ctx context.Context, address, contract portfolio.Address, page, offset int) ([]portfolio.TransactionRecord, error)

	// TokenInfo resolves token metadata, using the static table first. Unknown
	// contracts resolve to UNKNOWN with 18 decimals alongside an error.
	TokenInfo(ctx context.Context, contract portfolio.Address) (TokenInfo, error)

	// TokenPrices returns USD prices for symbols. Unknown symbols are zero.
	TokenPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error)

	// ClearCache drops every cached value.
	ClearCache()

	// CacheStats reports cache usage.
	CacheStats() ttlcache.Stats
}

// config holds optional settings for the service.
type config struct {
	ttls        TTLs
	knownTokens map[portfolio.Address]TokenInfo
	extraTokens []portfolio.Address
	prices      PriceSource
	now         func() time.Time
}

// Option configures the service.
type Option func(*config)

// service is the default Service implementation.
type service struct {
	provider Provider
	limiter  ratelimit.Limiter
	cache    *ttlcache.Cache

	ttls     TTLs
	registry tokenRegistry
	prices   PriceSource
	now      func() time.Time
}

// Compile-time assertion that service implements Service.
var _ Service = (*service)(nil)

// New creates a Service reading from provider. The limiter and cache are
// shared with any other service built on them.
func New(provider Provider, limiter ratelimit.Limiter, cache *ttlcache.Cache, opts ...Option) *service {
	cfg := config{
		ttls:        DefaultTTLs,
		knownTokens: KnownTokens,
		prices:      nopPriceSource{},
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		provider: provider,
		limiter:  limiter,
		cache:    cache,
		ttls:     cfg.ttls,
		registry: newTokenRegistry(cfg.knownTokens, cfg.extraTokens),
		prices:   cfg.prices,
		now:      cfg.now,
	}
}

// call admits one request through the limiter and runs it.
func call[T any](ctx context.Context, s *service, fn func(ctx context.Context) (T, error)) (T, error) {
	if err := s.limiter.Admit(ctx, s.provider.Name()); err != nil {
		var zero T
		return zero, err
	}
	return fn(ctx)
}

// ClearCache implements Service.
func (s *service) ClearCache() {
	s.cache.Clear()
}

// CacheStats implements Service.
func (s *service) CacheStats() ttlcache.Stats {
	return s.cache.Stats()
}

// WithTTLs overrides the cache lifetimes. Zero fields keep their default.
func WithTTLs(ttls TTLs) Option {
	return func(c *config) {
		if ttls.Balance > 0 {
			c.ttls.Balance = ttls.Balance
		}
		if ttls.Transaction > 0 {
			c.ttls.Transaction = ttls.Transaction
		}
		if ttls.TokenInfo > 0 {
			c.ttls.TokenInfo = ttls.TokenInfo
		}
		if ttls.Price > 0 {
			c.ttls.Price = ttls.Price
		}
	}
}

// WithKnownTokens replaces the static token table.
func WithKnownTokens(tokens map[portfolio.Address]TokenInfo) Option {
	return func(c *config) {
		c.knownTokens = tokens
	}
}

// WithExtraTokens adds contracts to the token registry checked by FetchSnapshot.
func WithExtraTokens(contracts ...portfolio.Address) Option {
	return func(c *config) {
		c.extraTokens = append(c.extraTokens, contracts...)
	}
}

// WithPriceSource sets where token prices come from.
func WithPriceSource(p PriceSource) Option {
	return func(c *config) {
		c.prices = p
	}
}

// withClock replaces the clock used to stamp snapshots. It exists for tests.
func withClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}
