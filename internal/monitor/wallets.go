package monitor

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/gabapcia/walletwatch/internal/pkg/logger"
	"github.com/gabapcia/walletwatch/internal/portfolio"
	"github.com/gabapcia/walletwatch/internal/walletregistry"
)

// AddWallet implements Service.
func (s *service) AddWallet(ctx context.Context, address, label string) (WalletStatus, error) {
	w, err := s.registry.StartWatching(ctx, s.network, address, label)
	if err != nil {
		return WalletStatus{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	mw := &monitoredWallet{address: w.Address, label: w.Label}
	s.wallets[w.Address] = mw

	logger.Info(ctx, "wallet added to watch set", "wallet.address", w.Address.String())
	return mw.status(), nil
}

// RemoveWallet implements Service.
func (s *service) RemoveWallet(ctx context.Context, address string) error {
	addr := portfolio.NormalizeAddress(address)

	s.mu.Lock()
	_, ok := s.wallets[addr]
	s.mu.Unlock()
	if !ok {
		return ErrWalletNotWatched
	}

	err := s.registry.StopWatching(ctx, s.network, addr.String())
	if err != nil && !errors.Is(err, walletregistry.ErrWalletNotFound) {
		return err
	}

	s.mu.Lock()
	delete(s.wallets, addr)
	s.mu.Unlock()

	logger.Info(ctx, "wallet removed from watch set", "wallet.address", addr.String())
	return nil
}

// RenameWallet implements Service.
func (s *service) RenameWallet(ctx context.Context, address, label string) (WalletStatus, error) {
	addr := portfolio.NormalizeAddress(address)

	s.mu.Lock()
	_, ok := s.wallets[addr]
	s.mu.Unlock()
	if !ok {
		return WalletStatus{}, ErrWalletNotWatched
	}

	w, err := s.registry.Rename(ctx, s.network, addr.String(), label)
	if err != nil {
		return WalletStatus{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	mw, ok := s.wallets[addr]
	if !ok {
		return WalletStatus{}, ErrWalletNotWatched
	}

	mw.label = w.Label
	return mw.status(), nil
}

// Wallets implements Service.
func (s *service) Wallets() []WalletStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]WalletStatus, 0, len(s.wallets))
	for _, w := range s.wallets {
		out = append(out, w.status())
	}

	slices.SortFunc(out, func(a, b WalletStatus) int {
		return cmp.Compare(a.Address, b.Address)
	})
	return out
}

// WalletStatus implements Service.
func (s *service) WalletStatus(address string) (WalletStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.wallets[portfolio.NormalizeAddress(address)]
	if !ok {
		return WalletStatus{}, ErrWalletNotWatched
	}
	return w.status(), nil
}

// Snapshot implements Service.
func (s *service) Snapshot(address string) (*portfolio.WalletSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.wallets[portfolio.NormalizeAddress(address)]
	if !ok {
		return nil, ErrWalletNotWatched
	}
	return w.previous.Clone(), nil
}

// Restore implements Service.
//
// Wallets already in the watch set keep their baseline.
func (s *service) Restore(ctx context.Context) (int, error) {
	var wallets []walletregistry.Wallet
	err := s.retry.Execute(ctx, func() error {
		var err error
		wallets, err = s.registry.List(ctx, s.network)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, w := range wallets {
		if _, ok := s.wallets[w.Address]; ok {
			continue
		}

		s.wallets[w.Address] = &monitoredWallet{address: w.Address, label: w.Label}
		added++
	}

	logger.Info(ctx, "watch list restored", "monitor.network", s.network, "monitor.wallets", added)
	return added, nil
}
