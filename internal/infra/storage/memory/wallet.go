// Package memory keeps the watch list in process memory. It is used when no
// Redis address is configured, and the list is lost on restart.
package memory

import (
	"context"
	"sync"

	"github.com/gabapcia/walletwatch/internal/pkg/types"
	"github.com/gabapcia/walletwatch/internal/portfolio"
	"github.com/gabapcia/walletwatch/internal/walletregistry"
)

type storage struct {
	mu       sync.Mutex
	networks types.DefaultMap[string, map[portfolio.Address]string] // network -> address -> label
}

// Compile-time assertion to ensure *storage satisfies walletregistry.WalletStorage
var _ walletregistry.WalletStorage = (*storage)(nil)

// NewWalletStorage creates an empty watch list.
func NewWalletStorage() *storage {
	return &storage{
		networks: types.NewDefaultMap[string](func() map[portfolio.Address]string {
			return make(map[portfolio.Address]string)
		}),
	}
}

// RegisterWallet implements walletregistry.WalletStorage.
func (s *storage) RegisterWallet(_ context.Context, w walletregistry.Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallets := s.networks.Get(w.Network)
	if _, ok := wallets[w.Address]; ok {
		return walletregistry.ErrWalletAlreadyRegistered
	}

	wallets[w.Address] = w.Label
	return nil
}

// UnregisterWallet implements walletregistry.WalletStorage.
func (s *storage) UnregisterWallet(_ context.Context, network string, address portfolio.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallets := s.networks.Get(network)
	if _, ok := wallets[address]; !ok {
		return walletregistry.ErrWalletNotFound
	}

	delete(wallets, address)
	return nil
}

// UpdateWallet implements walletregistry.WalletStorage.
func (s *storage) UpdateWallet(_ context.Context, w walletregistry.Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallets := s.networks.Get(w.Network)
	if _, ok := wallets[w.Address]; !ok {
		return walletregistry.ErrWalletNotFound
	}

	wallets[w.Address] = w.Label
	return nil
}

// ListWallets implements walletregistry.WalletStorage.
func (s *storage) ListWallets(_ context.Context, network string) ([]walletregistry.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallets := s.networks.Get(network)
	out := make([]walletregistry.Wallet, 0, len(wallets))
	for address, label := range wallets {
		out = append(out, walletregistry.Wallet{
			Network: network,
			Address: address,
			Label:   label,
		})
	}

	return out, nil
}
