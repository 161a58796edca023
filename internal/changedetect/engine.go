// Package changedetect compares two successive snapshots of a wallet and
// produces the notifications worth surfacing: significant balance moves and
// transfers that were not seen before.
//
// A nil previous snapshot is a first observation. It establishes the baseline
// and never produces notifications.
package changedetect

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/gabapcia/walletwatch/internal/notification"
	"github.com/gabapcia/walletwatch/internal/pkg/types"
	"github.com/gabapcia/walletwatch/internal/portfolio"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Thresholds decide which changes are significant. All values are compared
// with a strict greater-than.
type Thresholds struct {
	// BalanceAbsolute is the minimum absolute balance delta, in token units.
	BalanceAbsolute decimal.Decimal `json:"balanceAbsolute" validate:"gte=0"`
	// BalancePercent is the minimum delta relative to the previous balance, in percent.
	BalancePercent decimal.Decimal `json:"balancePercent" validate:"gte=0"`
	// BalanceHighPercent promotes a balance change to high severity.
	BalanceHighPercent decimal.Decimal `json:"balanceHighPercent" validate:"gte=0"`
	// TransferMinimum is the minimum value of a native transfer. Token
	// transfers are always reported.
	TransferMinimum decimal.Decimal `json:"transferMinimum" validate:"gte=0"`
	// TransferHigh promotes a transfer to high severity.
	TransferHigh decimal.Decimal `json:"transferHigh" validate:"gte=0"`
}

// DefaultThresholds returns 0.01 absolute / 5% for balance changes (high
// above 20%) and 0.001 / 1 for transfers.
func DefaultThresholds() Thresholds {
	return Thresholds{
		BalanceAbsolute:    decimal.RequireFromString("0.01"),
		BalancePercent:     decimal.NewFromInt(5),
		BalanceHighPercent: decimal.NewFromInt(20),
		TransferMinimum:    decimal.RequireFromString("0.001"),
		TransferHigh:       decimal.NewFromInt(1),
	}
}

// Engine turns a pair of snapshots into notifications.
type Engine interface {
	// Diff returns the notifications for the move from prev to curr: balance
	// changes first, in the order of curr.Balances(), then new transfers from
	// newest to oldest.
	//
	// Returns an empty slice when prev is nil.
	Diff(prev, curr *portfolio.WalletSnapshot) []notification.Notification
}

// config holds the engine settings.
type config struct {
	thresholds Thresholds
	rules      *RuleSet
}

// Option configures an engine.
type Option func(*config)

type engine struct {
	thresholds Thresholds
	rules      *RuleSet
}

// Compile-time assertion that engine implements Engine.
var _ Engine = (*engine)(nil)

// New creates an Engine using DefaultThresholds unless overridden.
func New(opts ...Option) *engine {
	cfg := config{
		thresholds: DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &engine{
		thresholds: cfg.thresholds,
		rules:      cfg.rules,
	}
}

// Diff implements Engine.
func (e *engine) Diff(prev, curr *portfolio.WalletSnapshot) []notification.Notification {
	out := make([]notification.Notification, 0)
	if prev == nil || curr == nil {
		return out
	}

	out = append(out, e.balanceChanges(prev, curr)...)
	out = append(out, e.transfers(prev, curr)...)
	return out
}

// balanceThresholds returns the absolute and percentage thresholds for token,
// honoring an enabled alert rule.
func (e *engine) balanceThresholds(token string) (decimal.Decimal, decimal.Decimal) {
	if rule, ok := e.rules.enabled(token); ok {
		return rule.AbsoluteThreshold, rule.PercentThreshold
	}
	return e.thresholds.BalanceAbsolute, e.thresholds.BalancePercent
}

func (e *engine) balanceChanges(prev, curr *portfolio.WalletSnapshot) []notification.Notification {
	previous := make(map[string]decimal.Decimal)
	for _, b := range prev.Balances() {
		previous[b.Key()] = b.HumanAmount
	}

	var out []notification.Notification
	for _, b := range curr.Balances() {
		before := previous[b.Key()]
		delta := b.HumanAmount.Sub(before)

		pct := decimal.Zero
		if before.IsPositive() {
			pct = delta.Div(before).Mul(hundred)
		}

		absThreshold, pctThreshold := e.balanceThresholds(b.Symbol)
		if !delta.Abs().GreaterThan(absThreshold) && !pct.Abs().GreaterThan(pctThreshold) {
			continue
		}

		severity := notification.SeverityMedium
		if pct.Abs().GreaterThan(e.thresholds.BalanceHighPercent) {
			severity = notification.SeverityHigh
		}

		direction, sign := "Decreased", ""
		if delta.IsPositive() {
			direction, sign = "Increased", "+"
		}

		out = append(out, notification.Notification{
			Type:          notification.TypeBalanceChange,
			Address:       curr.Address,
			Token:         b.Symbol,
			Delta:         &delta,
			PercentChange: &pct,
			Severity:      severity,
			Title:         fmt.Sprintf("%s Balance %s", b.Symbol, direction),
			Message: fmt.Sprintf("%s: %s %s%s (%s%%)",
				curr.Address.Short(), b.Symbol, sign, delta.StringFixed(6), pct.StringFixed(2),
			),
		})
	}

	return out
}

func (e *engine) transfers(prev, curr *portfolio.WalletSnapshot) []notification.Notification {
	seen := types.NewSet[string]()
	for _, tx := range prev.RecentTransactions {
		seen.Add(tx.IdentityKey())
	}

	fresh := make([]portfolio.TransactionRecord, 0, len(curr.RecentTransactions))
	for _, tx := range curr.RecentTransactions {
		if !seen.Has(tx.IdentityKey()) {
			fresh = append(fresh, tx)
		}
	}

	slices.SortStableFunc(fresh, func(a, b portfolio.TransactionRecord) int {
		return cmp.Compare(b.Timestamp.UnixNano(), a.Timestamp.UnixNano())
	})

	var out []notification.Notification
	for _, tx := range fresh {
		if tx.IsNative() && !tx.Value.GreaterThan(e.thresholds.TransferMinimum) {
			continue
		}

		severity := notification.SeverityMedium
		if tx.Value.GreaterThan(e.thresholds.TransferHigh) {
			severity = notification.SeverityHigh
		}

		typ, verb, preposition := notification.TypeTransferIn, "Received", "received from"
		if tx.Direction == portfolio.DirectionOutgoing {
			typ, verb, preposition = notification.TypeTransferOut, "Sent", "sent to"
		}

		record := tx
		out = append(out, notification.Notification{
			Type:        typ,
			Address:     curr.Address,
			Token:       tx.Token,
			Transaction: &record,
			Severity:    severity,
			Title:       fmt.Sprintf("%s %s", tx.Token, verb),
			Message: fmt.Sprintf("%s %s %s %s...",
				tx.Value.StringFixed(6), tx.Token, preposition, tx.Counterparty().Prefix(),
			),
			DedupKey: notification.TransferDedupKey(curr.Address, tx.IdentityKey()),
		})
	}

	return out
}

// WithThresholds replaces the default thresholds.
func WithThresholds(t Thresholds) Option {
	return func(c *config) {
		c.thresholds = t
	}
}

// WithRules makes the engine consult rules for per-token balance thresholds.
// The set is read on every Diff, so later changes take effect immediately.
func WithRules(rules *RuleSet) Option {
	return func(c *config) {
		c.rules = rules
	}
}
