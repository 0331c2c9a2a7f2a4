package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a dues account held at a shop. OpeningBalance is immutable
// after creation; CurrentBalance is mutated only by posting and reversing
// ledger entries, so it always equals OpeningBalance plus the signed sum of
// all effective entries.
type Customer struct {
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ID             string
	ShopID         string
	Name           string
	Phone          string
	OpeningBalance decimal.Decimal
	CurrentBalance decimal.Decimal
	IsActive       bool
}

// CanAcceptEntry checks that the customer may receive a ledger entry posted
// against the given shop.
func (c *Customer) CanAcceptEntry(shopID string) error {
	if !c.IsActive {
		return ErrCustomerInactive
	}

	if c.ShopID != shopID {
		return ErrShopMismatch
	}

	return nil
}
