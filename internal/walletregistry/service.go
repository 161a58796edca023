// Package walletregistry owns the persisted watch list: which wallets are
// monitored on a network and the label each one carries.
package walletregistry

import (
	"context"
	"errors"
)

var (
	// ErrWalletAlreadyRegistered is returned when a wallet is already on the watch list.
	ErrWalletAlreadyRegistered = errors.New("wallet already registered")

	// ErrWalletNotFound is returned when a wallet is not on the watch list.
	ErrWalletNotFound = errors.New("wallet not found")
)

// Service validates watch list changes and delegates persistence to a
// WalletStorage.
type Service interface {
	// StartWatching adds a wallet to the watch list.
	//
	// Parameters:
	//   - ctx: controls cancellation and timeout.
	//   - network: the network the wallet lives on (e.g., "ethereum").
	//   - address: the 0x-prefixed wallet address. It is stored lowercase.
	//   - label: a human name for the wallet. May be empty.
	//
	// Returns:
	//   - The stored wallet.
	//   - validator.ErrValidationFailed for malformed input, ErrWalletAlreadyRegistered
	//     if the wallet is already watched, or a storage error.
	StartWatching(ctx context.Context, network, address, label string) (Wallet, error)

	// StopWatching removes a wallet from the watch list.
	//
	// Returns ErrWalletNotFound if the wallet is not watched.
	StopWatching(ctx context.Context, network, address string) error

	// Rename replaces the label of a watched wallet.
	//
	// Returns ErrWalletNotFound if the wallet is not watched.
	Rename(ctx context.Context, network, address, label string) (Wallet, error)

	// List returns every wallet watched on network, ordered by address.
	List(ctx context.Context, network string) ([]Wallet, error)
}

// service is the concrete implementation of the Service interface.
type service struct {
	walletStorage WalletStorage
}

// Ensure compile-time compliance with the Service interface.
var _ Service = (*service)(nil)

// New creates a walletregistry service persisting through ws.
func New(ws WalletStorage) *service {
	return &service{
		walletStorage: ws,
	}
}
