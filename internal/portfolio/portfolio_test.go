package portfolio

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAddress(t *testing.T) {
	t.Run("should lowercase and trim", func(t *testing.T) {
		addr := NormalizeAddress("  0xAbCDef0123456789abcdef0123456789ABCDEF01 ")
		assert.Equal(t, Address("0xabcdef0123456789abcdef0123456789abcdef01"), addr)
	})

	t.Run("should compare addresses case-insensitively", func(t *testing.T) {
		assert.True(t, Address("0xABC").Equal("0xabc"))
		assert.False(t, Address("0xabc").Equal("0xabd"))
	})
}

func TestAddress_Short(t *testing.T) {
	t.Run("should keep the first 8 and last 6 characters", func(t *testing.T) {
		addr := Address("0x1234567890abcdef1234567890abcdef12345678")
		assert.Equal(t, "0x123456...345678", addr.Short())
		assert.Equal(t, "0x123456", addr.Prefix())
	})

	t.Run("should leave short values untouched", func(t *testing.T) {
		assert.Equal(t, "0xabc", Address("0xabc").Short())
		assert.Equal(t, "0xabc", Address("0xabc").Prefix())
	})
}

func TestNewTokenBalance(t *testing.T) {
	t.Run("should scale the raw amount by the token decimals", func(t *testing.T) {
		b, err := NewTokenBalance("USDC", "USD Coin", "1234567", 6, "0xa0b8")
		require.NoError(t, err)

		assert.True(t, decimal.RequireFromString("1.234567").Equal(b.HumanAmount))
		assert.Equal(t, "1234567", b.RawAmount)
		assert.Equal(t, "0xa0b8", b.Key())
		assert.False(t, b.IsNative())
	})

	t.Run("should read an empty amount as zero", func(t *testing.T) {
		b, err := NewTokenBalance(NativeSymbol, "Ether", "", NativeDecimals, "")
		require.NoError(t, err)

		assert.True(t, b.HumanAmount.IsZero())
		assert.Equal(t, NativeSymbol, b.Key())
		assert.True(t, b.IsNative())
	})

	t.Run("should reject a non-numeric amount", func(t *testing.T) {
		_, err := NewTokenBalance("ETH", "", "abc", 18, "")
		assert.Error(t, err)
	})

	t.Run("should reject a fractional raw amount", func(t *testing.T) {
		_, err := NewTokenBalance("ETH", "", "1.5", 18, "")
		assert.Error(t, err)
	})
}

func TestTransactionRecord(t *testing.T) {
	t.Run("should key native transfers by hash", func(t *testing.T) {
		tx := TransactionRecord{Hash: "0xa"}
		assert.Equal(t, "0xa", tx.IdentityKey())
		assert.True(t, tx.IsNative())
	})

	t.Run("should key token transfers by hash and contract", func(t *testing.T) {
		tx := TransactionRecord{Hash: "0xa", ContractAddress: "0xc"}
		assert.Equal(t, "0xa:0xc", tx.IdentityKey())
	})

	t.Run("should resolve the counterparty from the direction", func(t *testing.T) {
		out := TransactionRecord{From: "0x1", To: "0x2", Direction: DirectionOutgoing}
		in := TransactionRecord{From: "0x1", To: "0x2", Direction: DirectionIncoming}

		assert.Equal(t, Address("0x2"), out.Counterparty())
		assert.Equal(t, Address("0x1"), in.Counterparty())
	})

	t.Run("should derive the direction from the sender", func(t *testing.T) {
		assert.Equal(t, DirectionOutgoing, DirectionFor("0xabc", "0xABC"))
		assert.Equal(t, DirectionIncoming, DirectionFor("0xabc", "0xdef"))
	})
}

func TestWalletSnapshot(t *testing.T) {
	snapshot := &WalletSnapshot{
		Address:            "0xabc",
		NativeBalance:      ZeroNativeBalance(),
		TokenBalances:      []TokenBalance{{Symbol: "USDC", ContractAddress: "0xc"}},
		RecentTransactions: []TransactionRecord{{Hash: "0xa"}},
		FetchedAt:          time.Now(),
	}

	t.Run("should list the native balance first", func(t *testing.T) {
		balances := snapshot.Balances()
		require.Len(t, balances, 2)
		assert.Equal(t, NativeSymbol, balances[0].Symbol)
		assert.Equal(t, "USDC", balances[1].Symbol)
	})

	t.Run("should clone without sharing slices", func(t *testing.T) {
		clone := snapshot.Clone()
		clone.TokenBalances[0].Symbol = "CHANGED"
		clone.RecentTransactions[0].Hash = "0xchanged"

		assert.Equal(t, "USDC", snapshot.TokenBalances[0].Symbol)
		assert.Equal(t, "0xa", snapshot.RecentTransactions[0].Hash)
	})

	t.Run("should clone nil as nil", func(t *testing.T) {
		var s *WalletSnapshot
		assert.Nil(t, s.Clone())
	})
}
