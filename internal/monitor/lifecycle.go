package monitor

import (
	"context"
	"time"

	"github.com/gabapcia/walletwatch/internal/pkg/logger"
)

// Start implements Service.
func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return ErrAlreadyActive
	}

	if len(s.wallets) == 0 {
		return ErrNoWatchedWallets
	}

	ctx, cancel := context.WithCancel(ctx)

	s.closeFunc = func() {
		cancel()
	}
	s.isStarted = true

	go s.loop(ctx)

	logger.Info(ctx, "monitoring started", "monitor.interval", s.interval.String(), "monitor.wallets", len(s.wallets))
	return nil
}

// Stop implements Service.
func (s *service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closeFunc != nil {
		s.closeFunc()
	}
	s.isStarted = false
	s.closeFunc = nil
}

// State implements Service.
func (s *service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return StateActive
	}
	return StateIdle
}

// loop runs a tick now and then once per interval until ctx is cancelled.
// Ticks run on a context detached from ctx so that stopping the loop lets an
// in-flight tick finish its fetches.
func (s *service) loop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	tickCtx := context.WithoutCancel(ctx)
	for {
		s.tick(tickCtx)

		select {
		case <-ctx.Done():
			logger.Info(tickCtx, "monitoring stopped")
			return
		case <-ticker.C:
		}
	}
}

// RefreshNow implements Service.
func (s *service) RefreshNow(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.tick(ctx)
	return nil
}
