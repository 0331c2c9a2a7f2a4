package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ValidateNewEntry checks a proposed BAKI/PAID posting before any mutation.
// Backdated entry dates are allowed; a zero entry date is not.
func ValidateNewEntry(entryType EntryType, amount decimal.Decimal, entryDate time.Time) error {
	if !entryType.Postable() {
		return ErrInvalidEntryType
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if entryDate.IsZero() {
		return ErrInvalidEntryDate
	}

	return nil
}
