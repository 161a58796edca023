package portfolio

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the side of a transfer relative to the watched account.
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

// Status is the execution outcome of a transaction.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusPending Status = "pending"
)

// TransactionRecord is a single native or token transfer touching the watched
// account.
type TransactionRecord struct {
	Hash            string          `json:"hash"`
	From            Address         `json:"from"`
	To              Address         `json:"to"`
	Value           decimal.Decimal `json:"value"`
	RawValue        string          `json:"rawValue"`
	Token           string          `json:"token"`
	TokenName       string          `json:"tokenName,omitempty"`
	ContractAddress Address         `json:"contractAddress,omitempty"`
	Direction       Direction       `json:"direction"`
	Timestamp       time.Time       `json:"timestamp"`
	Status          Status          `json:"status"`
	BlockNumber     uint64          `json:"blockNumber"`
}

// IsNative reports whether the record moves the native asset.
func (t TransactionRecord) IsNative() bool {
	return t.ContractAddress == ""
}

// IdentityKey uniquely identifies the transfer. A single transaction hash may
// carry several token transfers, so token records include the contract.
func (t TransactionRecord) IdentityKey() string {
	if t.IsNative() {
		return t.Hash
	}
	return t.Hash + ":" + t.ContractAddress.String()
}

// Counterparty returns the other side of the transfer.
func (t TransactionRecord) Counterparty() Address {
	if t.Direction == DirectionOutgoing {
		return t.To
	}
	return t.From
}

// DirectionFor reports whether a transfer from -> to is outgoing or incoming
// for owner.
func DirectionFor(owner, from Address) Direction {
	if owner.Equal(from) {
		return DirectionOutgoing
	}
	return DirectionIncoming
}
