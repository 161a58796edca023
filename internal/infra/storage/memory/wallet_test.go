package memory

import (
	"testing"

	"github.com/gabapcia/walletwatch/internal/walletregistry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	w := walletregistry.Wallet{Network: "ethereum", Address: "0xabc", Label: "main"}

	t.Run("should register and list wallets per network", func(t *testing.T) {
		s := NewWalletStorage()
		require.NoError(t, s.RegisterWallet(t.Context(), w))

		got, err := s.ListWallets(t.Context(), "ethereum")
		require.NoError(t, err)
		assert.Equal(t, []walletregistry.Wallet{w}, got)

		other, err := s.ListWallets(t.Context(), "polygon")
		require.NoError(t, err)
		assert.Empty(t, other)
	})

	t.Run("should reject a duplicate registration", func(t *testing.T) {
		s := NewWalletStorage()
		require.NoError(t, s.RegisterWallet(t.Context(), w))

		assert.ErrorIs(t, s.RegisterWallet(t.Context(), w), walletregistry.ErrWalletAlreadyRegistered)
	})

	t.Run("should update the label", func(t *testing.T) {
		s := NewWalletStorage()
		require.NoError(t, s.RegisterWallet(t.Context(), w))

		renamed := w
		renamed.Label = "savings"
		require.NoError(t, s.UpdateWallet(t.Context(), renamed))

		got, err := s.ListWallets(t.Context(), "ethereum")
		require.NoError(t, err)
		assert.Equal(t, []walletregistry.Wallet{renamed}, got)
	})

	t.Run("should unregister wallets", func(t *testing.T) {
		s := NewWalletStorage()
		require.NoError(t, s.RegisterWallet(t.Context(), w))
		require.NoError(t, s.UnregisterWallet(t.Context(), "ethereum", w.Address))

		got, err := s.ListWallets(t.Context(), "ethereum")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("should report unknown wallets", func(t *testing.T) {
		s := NewWalletStorage()

		assert.ErrorIs(t, s.UnregisterWallet(t.Context(), "ethereum", w.Address), walletregistry.ErrWalletNotFound)
		assert.ErrorIs(t, s.UpdateWallet(t.Context(), w), walletregistry.ErrWalletNotFound)
	})
}
