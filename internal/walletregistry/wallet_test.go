package walletregistry

import (
	"errors"
	"testing"

	"github.com/gabapcia/walletwatch/internal/pkg/validator"
	"github.com/gabapcia/walletwatch/internal/portfolio"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	mixedCase = "0x742D35cc6634C0532925a3b844bc454e4438F44E"
	lowerCase = portfolio.Address("0x742d35cc6634c0532925a3b844bc454e4438f44e")
)

func TestBuildWallet(t *testing.T) {
	t.Run("should normalize the address", func(t *testing.T) {
		w, err := buildWallet("ethereum", "  "+mixedCase+" ", "treasury")
		require.NoError(t, err)
		assert.Equal(t, Wallet{Network: "ethereum", Address: lowerCase, Label: "treasury"}, w)
	})

	t.Run("should reject a missing network", func(t *testing.T) {
		_, err := buildWallet("", mixedCase, "")
		assert.ErrorIs(t, err, validator.ErrValidationFailed)
	})

	t.Run("should reject a malformed address", func(t *testing.T) {
		_, err := buildWallet("ethereum", "0x123", "")
		assert.ErrorIs(t, err, validator.ErrValidationFailed)
		assert.Contains(t, err.Error(), "'address'")
	})

	t.Run("should reject an overly long label", func(t *testing.T) {
		long := make([]byte, 65)
		for i := range long {
			long[i] = 'a'
		}

		_, err := buildWallet("ethereum", mixedCase, string(long))
		assert.ErrorIs(t, err, validator.ErrValidationFailed)
	})
}

func TestService_StartWatching(t *testing.T) {
	t.Run("should register a normalized wallet", func(t *testing.T) {
		ctx := t.Context()
		storage := NewWalletStorageMock(t)
		s := New(storage)

		want := Wallet{Network: "ethereum", Address: lowerCase, Label: "cold"}
		storage.EXPECT().RegisterWallet(ctx, want).Return(nil).Once()

		got, err := s.StartWatching(ctx, "ethereum", mixedCase, "cold")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("should not touch storage for invalid input", func(t *testing.T) {
		storage := NewWalletStorageMock(t)

		_, err := New(storage).StartWatching(t.Context(), "ethereum", "nope", "")
		assert.ErrorIs(t, err, validator.ErrValidationFailed)
	})

	t.Run("should propagate storage errors", func(t *testing.T) {
		ctx := t.Context()
		storage := NewWalletStorageMock(t)
		storage.EXPECT().RegisterWallet(ctx, Wallet{Network: "ethereum", Address: lowerCase}).Return(ErrWalletAlreadyRegistered).Once()

		_, err := New(storage).StartWatching(ctx, "ethereum", mixedCase, "")
		assert.ErrorIs(t, err, ErrWalletAlreadyRegistered)
	})
}

func TestService_StopWatching(t *testing.T) {
	t.Run("should unregister the normalized address", func(t *testing.T) {
		ctx := t.Context()
		storage := NewWalletStorageMock(t)
		storage.EXPECT().UnregisterWallet(ctx, "ethereum", lowerCase).Return(nil).Once()

		require.NoError(t, New(storage).StopWatching(ctx, "ethereum", mixedCase))
	})

	t.Run("should propagate not found", func(t *testing.T) {
		ctx := t.Context()
		storage := NewWalletStorageMock(t)
		storage.EXPECT().UnregisterWallet(ctx, "ethereum", lowerCase).Return(ErrWalletNotFound).Once()

		assert.ErrorIs(t, New(storage).StopWatching(ctx, "ethereum", mixedCase), ErrWalletNotFound)
	})

	t.Run("should reject a malformed address", func(t *testing.T) {
		storage := NewWalletStorageMock(t)
		assert.ErrorIs(t, New(storage).StopWatching(t.Context(), "ethereum", ""), validator.ErrValidationFailed)
	})
}

func TestService_Rename(t *testing.T) {
	t.Run("should update the label", func(t *testing.T) {
		ctx := t.Context()
		storage := NewWalletStorageMock(t)
		want := Wallet{Network: "ethereum", Address: lowerCase, Label: "hot"}
		storage.EXPECT().UpdateWallet(ctx, want).Return(nil).Once()

		got, err := New(storage).Rename(ctx, "ethereum", mixedCase, "hot")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("should propagate storage errors", func(t *testing.T) {
		ctx := t.Context()
		storage := NewWalletStorageMock(t)
		storage.EXPECT().UpdateWallet(ctx, Wallet{Network: "ethereum", Address: lowerCase, Label: "hot"}).Return(ErrWalletNotFound).Once()

		_, err := New(storage).Rename(ctx, "ethereum", mixedCase, "hot")
		assert.ErrorIs(t, err, ErrWalletNotFound)
	})
}

func TestService_List(t *testing.T) {
	t.Run("should return wallets ordered by address", func(t *testing.T) {
		ctx := t.Context()
		storage := NewWalletStorageMock(t)
		storage.EXPECT().ListWallets(ctx, "ethereum").Return([]Wallet{
			{Network: "ethereum", Address: "0xbb"},
			{Network: "ethereum", Address: "0xaa"},
		}, nil).Once()

		got, err := New(storage).List(ctx, "ethereum")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, portfolio.Address("0xaa"), got[0].Address)
	})

	t.Run("should propagate storage errors", func(t *testing.T) {
		ctx := t.Context()
		storage := NewWalletStorageMock(t)
		storage.EXPECT().ListWallets(ctx, "ethereum").Return(nil, errors.New("redis down")).Once()

		_, err := New(storage).List(ctx, "ethereum")
		assert.EqualError(t, err, "redis down")
	})
}
