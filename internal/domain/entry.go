package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType classifies a ledger entry.
type EntryType string

const (
	// EntryTypeBaki is a debit: the customer owes more.
	EntryTypeBaki EntryType = "BAKI"
	// EntryTypePaid is a credit: the customer paid dues back.
	EntryTypePaid EntryType = "PAID"
	// EntryTypeReversal compensates a prior BAKI or PAID entry.
	EntryTypeReversal EntryType = "REVERSAL"
)

// Postable reports whether the type may be submitted directly by callers.
// Reversals are only created internally.
func (t EntryType) Postable() bool {
	return t == EntryTypeBaki || t == EntryTypePaid
}

// Entry is a single immutable ledger entry. Entries are append-only: the
// "reversed" status of an entry is derived from later REVERSAL entries that
// reference it, never stored.
type Entry struct {
	CreatedAt        time.Time
	EntryDate        time.Time
	ReferenceEntryID *string
	ID               string
	CustomerID       string
	ShopID           string
	CreatedByUserID  string
	Notes            string
	Type             EntryType
	Amount           decimal.Decimal
	BalanceAfter     decimal.Decimal
}

// IsReversal reports whether the entry is a compensating entry.
func (e *Entry) IsReversal() bool {
	return e.Type == EntryTypeReversal
}

// ApplyToBalance computes the balance after applying an entry of this type.
// BAKI increases the balance, PAID decreases it.
func (t EntryType) ApplyToBalance(prior, amount decimal.Decimal) decimal.Decimal {
	switch t {
	case EntryTypeBaki:
		return prior.Add(amount)
	case EntryTypePaid:
		return prior.Sub(amount)
	default:
		return prior
	}
}

// ReversalBalance computes the balance after reversing an entry of the given
// original type: the inverse delta applied to the current balance. Later
// entries' stored snapshots are never recomputed; a reversal is a new event,
// not a rewrite of history.
func ReversalBalance(originalType EntryType, current, amount decimal.Decimal) decimal.Decimal {
	switch originalType {
	case EntryTypeBaki:
		return current.Sub(amount)
	case EntryTypePaid:
		return current.Add(amount)
	default:
		return current
	}
}
