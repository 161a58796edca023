package walletdata

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gabapcia/walletwatch/internal/pkg/ttlcache"

	"github.com/shopspring/decimal"
)

// TokenPrices implements Service.
func (s *service) TokenPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	wanted := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		if sym = strings.ToUpper(strings.TrimSpace(sym)); sym != "" {
			wanted = append(wanted, sym)
		}
	}
	slices.Sort(wanted)
	wanted = slices.Compact(wanted)

	key := ttlcache.Key(ttlcache.NamespacePrice, strings.Join(wanted, ","))

	prices, err := ttlcache.GetOrLoad(ctx, s.cache, key, s.ttls.Price, func(ctx context.Context) (map[string]decimal.Decimal, error) {
		prices, err := s.prices.Prices(ctx, wanted)
		if err != nil {
			zero, _ := nopPriceSource{}.Prices(ctx, wanted)
			return zero, fmt.Errorf("token prices: %w", err)
		}
		return prices, nil
	})

	return maps.Clone(prices), err
}
