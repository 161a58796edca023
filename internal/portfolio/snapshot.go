package portfolio

import (
	"slices"
	"time"
)

// WalletSnapshot is the balances and recent transfers of one account as of a
// single fetch. Snapshots are never mutated; a new fetch produces a new one.
type WalletSnapshot struct {
	Address            Address             `json:"address"`
	NativeBalance      TokenBalance        `json:"nativeBalance"`
	TokenBalances      []TokenBalance      `json:"tokenBalances"`
	RecentTransactions []TransactionRecord `json:"recentTransactions"`
	FetchedAt          time.Time           `json:"fetchedAt"`
}

// Balances returns every balance in the snapshot, native first, followed by
// token balances in their stored order.
func (s *WalletSnapshot) Balances() []TokenBalance {
	balances := make([]TokenBalance, 0, len(s.TokenBalances)+1)
	balances = append(balances, s.NativeBalance)
	return append(balances, s.TokenBalances...)
}

// Clone returns a deep copy so callers can hand the snapshot out without
// sharing its slices.
func (s *WalletSnapshot) Clone() *WalletSnapshot {
	if s == nil {
		return nil
	}

	c := *s
	c.TokenBalances = slices.Clone(s.TokenBalances)
	c.RecentTransactions = slices.Clone(s.RecentTransactions)
	return &c
}
