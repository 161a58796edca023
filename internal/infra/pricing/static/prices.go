// Package static serves token prices from a fixed in-process table. It stands
// in for a market data feed in development and demo deployments.
package static

import (
	"context"
	"strings"

	"github.com/gabapcia/walletwatch/internal/walletdata"

	"github.com/shopspring/decimal"
)

// DefaultPrices are USD reference prices for the registry tokens.
var DefaultPrices = map[string]decimal.Decimal{
	"ETH":  decimal.NewFromInt(1800),
	"USDC": decimal.NewFromInt(1),
	"USDT": decimal.NewFromInt(1),
	"LINK": decimal.NewFromInt(15),
	"UNI":  decimal.RequireFromString("8.5"),
}

type source struct {
	table map[string]decimal.Decimal
}

var _ walletdata.PriceSource = (*source)(nil)

// New returns a price source backed by table, or by DefaultPrices if table is nil.
func New(table map[string]decimal.Decimal) *source {
	if table == nil {
		table = DefaultPrices
	}

	normalized := make(map[string]decimal.Decimal, len(table))
	for sym, price := range table {
		normalized[strings.ToUpper(sym)] = price
	}

	return &source{table: normalized}
}

// Prices implements walletdata.PriceSource.
func (s *source) Prices(_ context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	prices := make(map[string]decimal.Decimal, len(symbols))
	for _, sym := range symbols {
		prices[sym] = s.table[strings.ToUpper(sym)]
	}
	return prices, nil
}
