package domain

import "errors"

var (
	// Validation errors. All are rejected before any mutation.
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidEntryType = errors.New("entry type must be BAKI or PAID")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrCustomerInactive = errors.New("customer is inactive")
	ErrShopMismatch     = errors.New("customer does not belong to shop")
	ErrShopNotFound     = errors.New("shop not found")
	ErrInvalidShopName  = errors.New("shop name is required")
	ErrInvalidEntryDate = errors.New("entry date is required")

	// Reversal errors.
	ErrEntryNotFound    = errors.New("ledger entry not found")
	ErrAlreadyAReversal = errors.New("cannot reverse a reversal entry")
	ErrAlreadyReversed  = errors.New("entry has already been reversed")

	// ErrConcurrencyConflict is returned when the atomic post/reverse unit
	// keeps losing to concurrent writers after retries; the caller should
	// retry the whole operation.
	ErrConcurrencyConflict = errors.New("concurrent ledger write conflict")
)
