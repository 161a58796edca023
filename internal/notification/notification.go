// Package notification stores the alerts produced by change detection and
// exposes them to consumers: a bounded, de-duplicated, newest-first list with
// read tracking and a live subscription feed.
package notification

import (
	"errors"
	"fmt"
	"time"

	"github.com/gabapcia/walletwatch/internal/portfolio"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotificationNotFound is returned when an ID is not among the retained notifications.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrInvalidFilter is returned by ParseFilter for unknown filter names.
	ErrInvalidFilter = errors.New("invalid notification filter")
)

// Type is the kind of change a notification reports.
type Type string

const (
	TypeBalanceChange Type = "balance_change"
	TypeTransferIn    Type = "transfer_in"
	TypeTransferOut   Type = "transfer_out"
)

// Severity ranks how much attention a notification deserves.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Notification is a single alert about a watched wallet. Every field except
// Read is fixed once the notification is stored.
type Notification struct {
	ID            string                       `json:"id"`
	Type          Type                         `json:"type"`
	Address       portfolio.Address            `json:"address"`
	Token         string                       `json:"token"`
	Delta         *decimal.Decimal             `json:"delta,omitempty"`
	PercentChange *decimal.Decimal             `json:"percentChange,omitempty"`
	Transaction   *portfolio.TransactionRecord `json:"transaction,omitempty"`
	Severity      Severity                     `json:"severity"`
	Title         string                       `json:"title"`
	Message       string                       `json:"message"`
	DedupKey      string                       `json:"-"`
	CreatedAt     time.Time                    `json:"createdAt"`
	Read          bool                         `json:"read"`
}

// TransferDedupKey identifies a transfer notification for one wallet. Balance
// changes carry no key: the same movement can legitimately repeat.
func TransferDedupKey(address portfolio.Address, txKey string) string {
	return fmt.Sprintf("transfer:%s:%s", address, txKey)
}

// Filter selects notifications in List.
type Filter string

const (
	FilterAll           Filter = "all"
	FilterUnread        Filter = "unread"
	FilterBalanceChange Filter = Filter(TypeBalanceChange)
	FilterTransferIn    Filter = Filter(TypeTransferIn)
	FilterTransferOut   Filter = Filter(TypeTransferOut)
)

// ParseFilter validates a filter name. An empty name means FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterUnread, FilterBalanceChange, FilterTransferIn, FilterTransferOut:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, s)
	}
}

// Match reports whether n is selected by the filter.
func (f Filter) Match(n Notification) bool {
	switch f {
	case FilterAll, "":
		return true
	case FilterUnread:
		return !n.Read
	default:
		return string(n.Type) == string(f)
	}
}
