package walletdata

import (
	"maps"
	"slices"

	"github.com/gabapcia/walletwatch/internal/portfolio"
)

// KnownTokens are well-known mainnet contracts resolved without a network call
// and checked for every wallet.
var KnownTokens = map[portfolio.Address]TokenInfo{
	"0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48": {Symbol: "USDC", Name: "USD Coin", Decimals: 6},
	"0xdac17f958d2ee523a2206206994597c13d831ec7": {Symbol: "USDT", Name: "Tether USD", Decimals: 6},
	"0x514910771af9ca656af840dff83e8264ecf986ca": {Symbol: "LINK", Name: "Chainlink", Decimals: 18},
	"0x1f9840a85d5af5bf1d1762f925bdaddc4201f984": {Symbol: "UNI", Name: "Uniswap", Decimals: 18},
}

// tokenRegistry is the ordered set of contracts checked by FetchSnapshot.
type tokenRegistry struct {
	info      map[portfolio.Address]TokenInfo
	contracts []portfolio.Address
}

// newTokenRegistry merges the known table with extra contracts, normalizing
// addresses and dropping duplicates. Contracts are kept sorted so that cache
// keys built from the registry are stable.
func newTokenRegistry(known map[portfolio.Address]TokenInfo, extra []portfolio.Address) tokenRegistry {
	info := make(map[portfolio.Address]TokenInfo, len(known))
	for addr, ti := range known {
		info[portfolio.NormalizeAddress(addr.String())] = ti
	}

	seen := make(map[portfolio.Address]struct{}, len(info)+len(extra))
	for addr := range info {
		seen[addr] = struct{}{}
	}
	for _, addr := range extra {
		seen[portfolio.NormalizeAddress(addr.String())] = struct{}{}
	}
	delete(seen, "")

	return tokenRegistry{
		info:      info,
		contracts: slices.Sorted(maps.Keys(seen)),
	}
}

// lookup returns the static metadata for contract, if any.
func (r tokenRegistry) lookup(contract portfolio.Address) (TokenInfo, bool) {
	ti, ok := r.info[contract]
	return ti, ok
}
