package walletdata

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/gabapcia/walletwatch/internal/pkg/ttlcache"
	"github.com/gabapcia/walletwatch/internal/portfolio"

	"github.com/shopspring/decimal"
)

// TransactionHistory implements Service.
func (s *service) TransactionHistory(ctx context.Context, address portfolio.Address, page, offset int) ([]portfolio.TransactionRecord, error) {
	address = portfolio.NormalizeAddress(address.String())
	key := ttlcache.Key(ttlcache.NamespaceTransactions, address.String(), strconv.Itoa(page), strconv.Itoa(offset))

	return ttlcache.GetOrLoad(ctx, s.cache, key, s.ttls.Transaction, func(ctx context.Context) ([]portfolio.TransactionRecord, error) {
		raws, err := call(ctx, s, func(ctx context.Context) ([]RawTransaction, error) {
			return s.provider.NormalTransactions(ctx, address, page, offset)
		})
		if err != nil {
			return []portfolio.TransactionRecord{}, fmt.Errorf("transactions of %s: %w", address, err)
		}

		records := make([]portfolio.TransactionRecord, 0, len(raws))
		for _, raw := range raws {
			record, err := toRecord(address, raw, portfolio.NativeSymbol, "", portfolio.NativeDecimals)
			if err != nil {
				return []portfolio.TransactionRecord{}, fmt.Errorf("transactions of %s: %w", address, err)
			}
			records = append(records, record)
		}

		return records, nil
	})
}

// TokenTransactionHistory implements Service.
func (s *service) TokenTransactionHistory(ctx context.Context, address, contract portfolio.Address, page, offset int) ([]portfolio.TransactionRecord, error) {
	address = portfolio.NormalizeAddress(address.String())
	contract = portfolio.NormalizeAddress(contract.String())
	key := ttlcache.Key(ttlcache.NamespaceTransactions, "token", address.String(), contract.String(), strconv.Itoa(page), strconv.Itoa(offset))

	return ttlcache.GetOrLoad(ctx, s.cache, key, s.ttls.Transaction, func(ctx context.Context) ([]portfolio.TransactionRecord, error) {
		raws, err := call(ctx, s, func(ctx context.Context) ([]RawTransaction, error) {
			return s.provider.TokenTransfers(ctx, address, contract, page, offset)
		})
		if err != nil {
			return []portfolio.TransactionRecord{}, fmt.Errorf("token transfers of %s: %w", address, err)
		}

		records := make([]portfolio.TransactionRecord, 0, len(raws))
		for _, raw := range raws {
			info := s.transferTokenInfo(ctx, raw)

			record, err := toRecord(address, raw, info.Symbol, info.Name, info.Decimals)
			if err != nil {
				return []portfolio.TransactionRecord{}, fmt.Errorf("token transfers of %s: %w", address, err)
			}
			if record.Status == "" {
				record.Status = portfolio.StatusSuccess
			}
			records = append(records, record)
		}

		return records, nil
	})
}

// transferTokenInfo resolves the metadata of a transfer's token, preferring
// the registry and token info lookups over the metadata embedded in the row.
func (s *service) transferTokenInfo(ctx context.Context, raw RawTransaction) TokenInfo {
	info, err := s.TokenInfo(ctx, raw.ContractAddress)
	if err == nil || raw.TokenSymbol == "" {
		return info
	}

	hint := TokenInfo{
		Symbol:   raw.TokenSymbol,
		Name:     raw.TokenName,
		Decimals: raw.TokenDecimals,
	}
	if hint.Name == "" {
		hint.Name = unknownTokenInfo.Name
	}
	return hint
}

// toRecord scales a raw transfer into a TransactionRecord seen from owner.
func toRecord(owner portfolio.Address, raw RawTransaction, symbol, name string, decimals int32) (portfolio.TransactionRecord, error) {
	value := raw.Value
	if value == "" {
		value = "0"
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return portfolio.TransactionRecord{}, fmt.Errorf("invalid value %q in transaction %s: %w", raw.Value, raw.Hash, err)
	}

	status := raw.Status
	if status == "" && raw.ContractAddress == "" {
		status = portfolio.StatusPending
	}

	from := portfolio.NormalizeAddress(raw.From.String())

	return portfolio.TransactionRecord{
		Hash:            raw.Hash,
		From:            from,
		To:              portfolio.NormalizeAddress(raw.To.String()),
		Value:           amount.Shift(-decimals),
		RawValue:        amount.String(),
		Token:           symbol,
		TokenName:       name,
		ContractAddress: portfolio.NormalizeAddress(raw.ContractAddress.String()),
		Direction:       portfolio.DirectionFor(owner, from),
		Timestamp:       raw.Timestamp,
		Status:          status,
		BlockNumber:     raw.BlockNumber,
	}, nil
}

// mergeHistory combines native and token transfers newest first and keeps at
// most limit records. Transfers with equal timestamps keep native first.
func mergeHistory(limit int, lists ...[]portfolio.TransactionRecord) []portfolio.TransactionRecord {
	var merged []portfolio.TransactionRecord
	for _, l := range lists {
		merged = append(merged, l...)
	}

	slices.SortStableFunc(merged, func(a, b portfolio.TransactionRecord) int {
		return cmp.Compare(b.Timestamp.UnixNano(), a.Timestamp.UnixNano())
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}
	if merged == nil {
		merged = []portfolio.TransactionRecord{}
	}
	return merged
}
