package walletregistry

import (
	"cmp"
	"context"
	"slices"

	"github.com/gabapcia/walletwatch/internal/pkg/validator"
	"github.com/gabapcia/walletwatch/internal/portfolio"
)

// Wallet is one entry of the watch list.
type Wallet struct {
	Network string            `json:"network" validate:"required"`
	Address portfolio.Address `json:"address" validate:"required,eth_addr"`
	Label   string            `json:"label" validate:"max=64"`
}

// WalletStorage persists the watch list.
type WalletStorage interface {
	// RegisterWallet stores w. Returns ErrWalletAlreadyRegistered if the
	// address is already stored for the network.
	RegisterWallet(ctx context.Context, w Wallet) error

	// UnregisterWallet removes the wallet. Returns ErrWalletNotFound if it is
	// not stored.
	UnregisterWallet(ctx context.Context, network string, address portfolio.Address) error

	// UpdateWallet replaces the stored label of w. Returns ErrWalletNotFound if
	// the wallet is not stored.
	UpdateWallet(ctx context.Context, w Wallet) error

	// ListWallets returns every wallet stored for network, in any order.
	ListWallets(ctx context.Context, network string) ([]Wallet, error)
}

// buildWallet normalizes and validates a watch list entry.
func buildWallet(network, address, label string) (Wallet, error) {
	w := Wallet{
		Network: network,
		Address: portfolio.NormalizeAddress(address),
		Label:   label,
	}

	return w, validator.Validate(w)
}

// StartWatching implements Service.
func (s *service) StartWatching(ctx context.Context, network, address, label string) (Wallet, error) {
	w, err := buildWallet(network, address, label)
	if err != nil {
		return Wallet{}, err
	}

	if err := s.walletStorage.RegisterWallet(ctx, w); err != nil {
		return Wallet{}, err
	}

	return w, nil
}

// StopWatching implements Service.
func (s *service) StopWatching(ctx context.Context, network, address string) error {
	w, err := buildWallet(network, address, "")
	if err != nil {
		return err
	}

	return s.walletStorage.UnregisterWallet(ctx, w.Network, w.Address)
}

// Rename implements Service.
func (s *service) Rename(ctx context.Context, network, address, label string) (Wallet, error) {
	w, err := buildWallet(network, address, label)
	if err != nil {
		return Wallet{}, err
	}

	if err := s.walletStorage.UpdateWallet(ctx, w); err != nil {
		return Wallet{}, err
	}

	return w, nil
}

// List implements Service.
func (s *service) List(ctx context.Context, network string) ([]Wallet, error) {
	wallets, err := s.walletStorage.ListWallets(ctx, network)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(wallets, func(a, b Wallet) int {
		return cmp.Compare(a.Address, b.Address)
	})
	return wallets, nil
}
