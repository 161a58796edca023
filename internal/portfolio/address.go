// Package portfolio holds the wallet data model shared by the fetch, diff and
// notification stages: addresses, token balances, transaction records and the
// immutable snapshot that groups them.
package portfolio

import "strings"

// Address is an account identifier. Values produced by NormalizeAddress are
// lowercase and trimmed so that comparisons are case-insensitive.
type Address string

// NormalizeAddress returns the canonical lowercase form of s.
func NormalizeAddress(s string) Address {
	return Address(strings.ToLower(strings.TrimSpace(s)))
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return string(a)
}

// Equal reports whether a and b identify the same account, ignoring case.
func (a Address) Equal(b Address) bool {
	return strings.EqualFold(string(a), string(b))
}

// Short abbreviates the address for human-facing text, keeping the first 8
// and the last 6 characters.
func (a Address) Short() string {
	s := string(a)
	if len(s) <= 14 {
		return s
	}
	return s[:8] + "..." + s[len(s)-6:]
}

// Prefix returns the first 8 characters of the address.
func (a Address) Prefix() string {
	s := string(a)
	if len(s) <= 8 {
		return s
	}
	return s[:8]
}
