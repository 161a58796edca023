package portfolio

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// NativeSymbol is the ticker of the chain's native asset.
	NativeSymbol = "ETH"

	// NativeDecimals is the number of decimals of the native asset (wei).
	NativeDecimals int32 = 18
)

// TokenBalance is the amount of one asset held by an account.
//
// HumanAmount is always RawAmount / 10^Decimals.
type TokenBalance struct {
	Symbol          string          `json:"symbol"`
	Name            string          `json:"name,omitempty"`
	RawAmount       string          `json:"rawAmount"`
	Decimals        int32           `json:"decimals"`
	ContractAddress Address         `json:"contractAddress,omitempty"`
	HumanAmount     decimal.Decimal `json:"humanAmount"`
}

// NewTokenBalance builds a TokenBalance from the integer amount reported by a
// provider. An empty raw amount is read as zero.
//
// Returns an error if raw is not a base-10 integer.
func NewTokenBalance(symbol, name, raw string, decimals int32, contract Address) (TokenBalance, error) {
	if raw == "" {
		raw = "0"
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return TokenBalance{}, fmt.Errorf("invalid raw amount %q for %s: %w", raw, symbol, err)
	}

	if !amount.Equal(amount.Truncate(0)) {
		return TokenBalance{}, fmt.Errorf("invalid raw amount %q for %s: not an integer", raw, symbol)
	}

	return TokenBalance{
		Symbol:          symbol,
		Name:            name,
		RawAmount:       amount.String(),
		Decimals:        decimals,
		ContractAddress: contract,
		HumanAmount:     amount.Shift(-decimals),
	}, nil
}

// ZeroNativeBalance is the fallback native balance used when the provider
// cannot be reached.
func ZeroNativeBalance() TokenBalance {
	return TokenBalance{
		Symbol:      NativeSymbol,
		Name:        "Ether",
		RawAmount:   "0",
		Decimals:    NativeDecimals,
		HumanAmount: decimal.Zero,
	}
}

// IsNative reports whether the balance is for the chain's native asset.
func (b TokenBalance) IsNative() bool {
	return b.ContractAddress == ""
}

// Key identifies the asset of the balance: the contract address for tokens,
// the symbol for the native asset.
func (b TokenBalance) Key() string {
	if b.IsNative() {
		return b.Symbol
	}
	return b.ContractAddress.String()
}
