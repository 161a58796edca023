package redis

import (
	"context"
	"fmt"

	"github.com/gabapcia/walletwatch/internal/portfolio"
	"github.com/gabapcia/walletwatch/internal/walletregistry"
)

// watchListPrefix is the base key prefix for watch list hashes.
const watchListPrefix = "walletwatch"

// watchListKey returns the hash holding address -> label for network.
//
// Format: "walletwatch:watchlist:{network}"
func watchListKey(network string) string {
	return fmt.Sprintf("%s:watchlist:%s", watchListPrefix, network)
}

// RegisterWallet implements walletregistry.WalletStorage with HSETNX so that
// concurrent registrations of the same address cannot both succeed.
func (c *client) RegisterWallet(ctx context.Context, w walletregistry.Wallet) error {
	created, err := c.conn.HSetNX(ctx, watchListKey(w.Network), w.Address.String(), w.Label).Result()
	if err != nil {
		return err
	}

	if !created {
		return walletregistry.ErrWalletAlreadyRegistered
	}

	return nil
}

// UnregisterWallet implements walletregistry.WalletStorage.
func (c *client) UnregisterWallet(ctx context.Context, network string, address portfolio.Address) error {
	removed, err := c.conn.HDel(ctx, watchListKey(network), address.String()).Result()
	if err != nil {
		return err
	}

	if removed == 0 {
		return walletregistry.ErrWalletNotFound
	}

	return nil
}

// UpdateWallet implements walletregistry.WalletStorage.
//
// Parameters:
//   - ctx: context used for cancellation and timeout control.
//   - w: the wallet whose label replaces the stored one.
//
// Returns:
//   - walletregistry.ErrWalletNotFound if the address is not in the hash.
//   - An error if a Redis command fails.
func (c *client) UpdateWallet(ctx context.Context, w walletregistry.Wallet) error {
	key := watchListKey(w.Network)

	exists, err := c.conn.HExists(ctx, key, w.Address.String()).Result()
	if err != nil {
		return err
	}

	if !exists {
		return walletregistry.ErrWalletNotFound
	}

	return c.conn.HSet(ctx, key, w.Address.String(), w.Label).Err()
}

// ListWallets implements walletregistry.WalletStorage using HGETALL.
func (c *client) ListWallets(ctx context.Context, network string) ([]walletregistry.Wallet, error) {
	entries, err := c.conn.HGetAll(ctx, watchListKey(network)).Result()
	if err != nil {
		return nil, err
	}

	wallets := make([]walletregistry.Wallet, 0, len(entries))
	for address, label := range entries {
		wallets = append(wallets, walletregistry.Wallet{
			Network: network,
			Address: portfolio.Address(address),
			Label:   label,
		})
	}

	return wallets, nil
}

// Compile-time assertion to ensure *client satisfies the walletregistry.WalletStorage interface
var _ walletregistry.WalletStorage = (*client)(nil)
