package walletdata

import (
	"context"
	"time"

	"github.com/gabapcia/walletwatch/internal/portfolio"

	"github.com/shopspring/decimal"
)

// TokenInfo is the immutable metadata of a token contract.
type TokenInfo struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int32  `json:"decimals"`
}

// unknownTokenInfo is used when a contract's metadata cannot be resolved.
var unknownTokenInfo = TokenInfo{
	Symbol:   "UNKNOWN",
	Name:     "Unknown Token",
	Decimals: 18,
}

// RawTransaction is a transfer as reported by a Provider, before amounts are
// scaled by the asset's decimals.
//
// Token transfers set ContractAddress. Providers that include token metadata
// in their transfer rows fill TokenSymbol, TokenName and TokenDecimals; those
// values are only used when the contract's metadata cannot be resolved.
type RawTransaction struct {
	Hash            string
	From            portfolio.Address
	To              portfolio.Address
	Value           string
	ContractAddress portfolio.Address
	TokenSymbol     string
	TokenName       string
	TokenDecimals   int32
	Timestamp       time.Time
	BlockNumber     uint64
	Status          portfolio.Status
}

// Provider is an upstream blockchain data source.
//
// Every method performs exactly one network call. Implementations report
// network failures, non-success envelopes and malformed payloads as errors;
// rate limiting, caching and fallbacks are handled by the caller.
type Provider interface {
	// Name identifies the provider for rate limiting and logging.
	Name() string

	// NativeBalance returns the native balance of address in base units (wei).
	NativeBalance(ctx context.Context, address portfolio.Address) (string, error)

	// TokenBalance returns the balance of address for the token contract in
	// the token's base units.
	TokenBalance(ctx context.Context, address, contract portfolio.Address) (string, error)

	// NormalTransactions returns one page of native transfers, newest first.
	NormalTransactions(ctx context.Context, address portfolio.Address, page, offset int) ([]RawTransaction, error)

	// TokenTransfers returns one page of token transfers, newest first. An
	// empty contract means transfers of any token.
	TokenTransfers(ctx context.Context, address, contract portfolio.Address, page, offset int) ([]RawTransaction, error)

	// TokenInfo returns the metadata of a token contract.
	TokenInfo(ctx context.Context, contract portfolio.Address) (TokenInfo, error)
}

// PriceSource returns USD prices for token symbols.
type PriceSource interface {
	// Prices returns a price for each requested symbol. Unknown symbols are
	// priced at zero.
	Prices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error)
}

// nopPriceSource prices every symbol at zero.
type nopPriceSource struct{}

func (nopPriceSource) Prices(_ context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	prices := make(map[string]decimal.Decimal, len(symbols))
	for _, s := range symbols {
		prices[s] = decimal.Zero
	}
	return prices, nil
}
