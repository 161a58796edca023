package walletdata

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gabapcia/walletwatch/internal/pkg/logger"
	"github.com/gabapcia/walletwatch/internal/pkg/ttlcache"
	"github.com/gabapcia/walletwatch/internal/portfolio"

	"golang.org/x/sync/errgroup"
)

// NativeBalance implements Service.
func (s *service) NativeBalance(ctx context.Context, address portfolio.Address) (portfolio.TokenBalance, error) {
	address = portfolio.NormalizeAddress(address.String())
	key := ttlcache.Key(ttlcache.NamespaceBalance, address.String())

	return ttlcache.GetOrLoad(ctx, s.cache, key, s.ttls.Balance, func(ctx context.Context) (portfolio.TokenBalance, error) {
		raw, err := call(ctx, s, func(ctx context.Context) (string, error) {
			return s.provider.NativeBalance(ctx, address)
		})
		if err != nil {
			return portfolio.ZeroNativeBalance(), fmt.Errorf("native balance of %s: %w", address, err)
		}

		balance, err := portfolio.NewTokenBalance(portfolio.NativeSymbol, "Ether", raw, portfolio.NativeDecimals, "")
		if err != nil {
			return portfolio.ZeroNativeBalance(), fmt.Errorf("native balance of %s: %w", address, err)
		}

		return balance, nil
	})
}

// TokenBalances implements Service.
func (s *service) TokenBalances(ctx context.Context, address portfolio.Address, contracts ...portfolio.Address) ([]portfolio.TokenBalance, error) {
	address = portfolio.NormalizeAddress(address.String())

	list := s.registry.contracts
	if len(contracts) > 0 {
		list = normalizeContracts(contracts)
	}

	parts := make([]string, len(list))
	for i, c := range list {
		parts[i] = c.String()
	}
	key := ttlcache.Key(ttlcache.NamespaceTokenBalance, address.String(), strings.Join(parts, ","))

	return ttlcache.GetOrLoad(ctx, s.cache, key, s.ttls.Balance, func(ctx context.Context) ([]portfolio.TokenBalance, error) {
		return s.loadTokenBalances(ctx, address, list)
	})
}

// loadTokenBalances queries every contract concurrently and keeps the positive
// balances in contract order.
func (s *service) loadTokenBalances(ctx context.Context, address portfolio.Address, contracts []portfolio.Address) ([]portfolio.TokenBalance, error) {
	var (
		g        errgroup.Group
		balances = make([]*portfolio.TokenBalance, len(contracts))
		errs     = make([]error, len(contracts))
	)

	for i, contract := range contracts {
		g.Go(func() error {
			balances[i], errs[i] = s.loadTokenBalance(ctx, address, contract)
			return nil
		})
	}
	_ = g.Wait()

	result := make([]portfolio.TokenBalance, 0, len(contracts))
	for _, b := range balances {
		if b != nil {
			result = append(result, *b)
		}
	}

	return result, errors.Join(errs...)
}

// loadTokenBalance returns nil without error when the balance is zero.
func (s *service) loadTokenBalance(ctx context.Context, address, contract portfolio.Address) (*portfolio.TokenBalance, error) {
	raw, err := call(ctx, s, func(ctx context.Context) (string, error) {
		return s.provider.TokenBalance(ctx, address, contract)
	})
	if err != nil {
		return nil, fmt.Errorf("token %s balance of %s: %w", contract, address, err)
	}

	probe, err := portfolio.NewTokenBalance("", "", raw, 0, contract)
	if err != nil {
		return nil, fmt.Errorf("token %s balance of %s: %w", contract, address, err)
	}
	if !probe.HumanAmount.IsPositive() {
		return nil, nil
	}

	info, err := s.TokenInfo(ctx, contract)
	if err != nil {
		logger.Debug(ctx, "using fallback token metadata",
			"token.contract", contract,
			"error", err,
		)
	}

	balance, err := portfolio.NewTokenBalance(info.Symbol, info.Name, raw, info.Decimals, contract)
	if err != nil {
		return nil, err
	}

	return &balance, nil
}

// TokenInfo implements Service.
func (s *service) TokenInfo(ctx context.Context, contract portfolio.Address) (TokenInfo, error) {
	contract = portfolio.NormalizeAddress(contract.String())
	if info, ok := s.registry.lookup(contract); ok {
		return info, nil
	}

	key := ttlcache.Key(ttlcache.NamespaceTokenInfo, contract.String())

	return ttlcache.GetOrLoad(ctx, s.cache, key, s.ttls.TokenInfo, func(ctx context.Context) (TokenInfo, error) {
		info, err := call(ctx, s, func(ctx context.Context) (TokenInfo, error) {
			return s.provider.TokenInfo(ctx, contract)
		})
		if err != nil {
			return unknownTokenInfo, fmt.Errorf("token info of %s: %w", contract, err)
		}

		if info.Symbol == "" {
			info.Symbol = unknownTokenInfo.Symbol
		}
		if info.Name == "" {
			info.Name = unknownTokenInfo.Name
		}

		return info, nil
	})
}

// normalizeContracts lowercases, deduplicates and sorts contract addresses.
func normalizeContracts(contracts []portfolio.Address) []portfolio.Address {
	out := make([]portfolio.Address, 0, len(contracts))
	for _, c := range contracts {
		if n := portfolio.NormalizeAddress(c.String()); n != "" {
			out = append(out, n)
		}
	}

	slices.Sort(out)
	return slices.Compact(out)
}
