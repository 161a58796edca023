package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gabapcia/walletwatch/internal/notification"
	"github.com/gabapcia/walletwatch/internal/pkg/logger"
	"github.com/gabapcia/walletwatch/internal/pkg/types"
	"github.com/gabapcia/walletwatch/internal/portfolio"
	"github.com/gabapcia/walletwatch/internal/walletdata"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("github.com/gabapcia/walletwatch/internal/monitor")

// fetchResult is the outcome of one wallet fetch within a tick.
type fetchResult struct {
	wallet   *monitoredWallet
	snapshot *portfolio.WalletSnapshot
	err      error
}

// watched returns the wallets being watched when the tick starts.
func (s *service) watched() []*monitoredWallet {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallets := make([]*monitoredWallet, 0, len(s.wallets))
	for _, w := range s.wallets {
		wallets = append(wallets, w)
	}
	return wallets
}

// fetch loads one wallet. A panic in the fetcher is reported as an error for
// that wallet only.
func (s *service) fetch(ctx context.Context, w *monitoredWallet) (r fetchResult) {
	ctx, span := tracer.Start(ctx, "monitor.fetchWallet", trace.WithAttributes(
		attribute.String("wallet.address", w.address.String()),
	))
	defer span.End()

	r.wallet = w
	defer func() {
		if p := recover(); p != nil {
			r.snapshot, r.err = nil, fmt.Errorf("fetch panicked: %v", p)
		}
		if r.err != nil {
			span.RecordError(r.err)
			span.SetStatus(codes.Error, "wallet fetch failed")
		}
	}()

	r.snapshot, r.err = s.fetcher.FetchSnapshot(ctx, w.address)
	return r
}

// tick fetches every watched wallet concurrently, waits for all of them, and
// only then applies the results. Ticks never overlap.
func (s *service) tick(ctx context.Context) {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	start := time.Now()
	wallets := s.watched()

	ctx, span := tracer.Start(ctx, "monitor.tick", trace.WithAttributes(
		attribute.Int("monitor.wallets", len(wallets)),
	))
	defer span.End()

	results := make([]fetchResult, len(wallets))

	var g errgroup.Group
	for i, w := range wallets {
		g.Go(func() error {
			results[i] = s.fetch(ctx, w)
			return nil
		})
	}
	_ = g.Wait()

	failures := 0
	for _, r := range results {
		if !s.apply(ctx, r) {
			failures++
		}
	}

	span.SetAttributes(attribute.Int("monitor.failures", failures))
	recordTick(ctx, time.Since(start), failures)
}

// apply updates the wallet record with one fetch result and emits the
// notifications of a successful fetch. It reports false for a failed fetch.
//
// A snapshot missing some token balances is still diffed; the error is kept on
// the wallet and the missing tokens keep their last known balance.
func (s *service) apply(ctx context.Context, r fetchResult) bool {
	var notes []notification.Notification

	s.mu.Lock()
	current, ok := s.wallets[r.wallet.address]
	if !ok || current != r.wallet {
		// removed (or removed and re-added) while the tick was running
		s.mu.Unlock()
		return true
	}

	partial := errors.Is(r.err, walletdata.ErrPartialSnapshot)
	if r.err != nil && !partial {
		r.wallet.lastError = r.err
		s.mu.Unlock()

		logger.Warn(ctx, "wallet fetch failed",
			"wallet.address", r.wallet.address.String(),
			"error", r.err,
		)
		return false
	}

	notes = s.engine.Diff(r.wallet.previous, r.snapshot)
	if partial {
		r.wallet.previous = carryTokens(r.wallet.previous, r.snapshot)
	} else {
		r.wallet.previous = r.snapshot
	}
	r.wallet.lastError = r.err
	s.mu.Unlock()

	for _, n := range notes {
		if _, added := s.sink.Add(ctx, n); added {
			logger.Debug(ctx, "notification emitted",
				"wallet.address", r.wallet.address.String(),
				"notification.type", n.Type,
				"notification.severity", n.Severity,
			)
		}
	}

	return true
}

// carryTokens returns curr with the token balances of prev it lacks, so a token
// that failed to load is not later reported as appearing from zero.
func carryTokens(prev, curr *portfolio.WalletSnapshot) *portfolio.WalletSnapshot {
	if prev == nil {
		return curr
	}

	present := types.NewSet[string]()
	for _, b := range curr.TokenBalances {
		present.Add(b.Key())
	}

	merged := curr.Clone()
	for _, b := range prev.TokenBalances {
		if !present.Has(b.Key()) {
			merged.TokenBalances = append(merged.TokenBalances, b)
		}
	}
	return merged
}
