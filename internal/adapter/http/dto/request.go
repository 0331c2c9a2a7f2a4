package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ysonawan/duebook/internal/domain"
	"github.com/ysonawan/duebook/internal/usecase"
)

// entryDateLayout is the wire format of entry dates. Entries carry a business
// date, not a timestamp.
const entryDateLayout = "2006-01-02"

// PostEntryRequest represents a request to post a BAKI or PAID entry.
type PostEntryRequest struct {
	CustomerID string          `json:"customer_id"`
	ShopID     string          `json:"shop_id"`
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Notes      string          `json:"notes,omitempty"`
	EntryDate  string          `json:"entry_date,omitempty"`
}

// ToUseCaseInput converts to use case input. An absent entry date defaults to
// today; backdating is allowed.
func (r *PostEntryRequest) ToUseCaseInput(userID string) (usecase.PostEntryInput, error) {
	entryDate := time.Now().UTC()
	if r.EntryDate != "" {
		parsed, err := time.Parse(entryDateLayout, r.EntryDate)
		if err != nil {
			return usecase.PostEntryInput{}, err
		}
		entryDate = parsed
	}

	return usecase.PostEntryInput{
		CustomerID: r.CustomerID,
		ShopID:     r.ShopID,
		Type:       domain.EntryType(r.Type),
		Amount:     r.Amount,
		Notes:      r.Notes,
		EntryDate:  entryDate,
		UserID:     userID,
	}, nil
}

// ReverseEntryRequest represents a request to reverse an entry.
type ReverseEntryRequest struct {
	Notes string `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ReverseEntryRequest) ToUseCaseInput(entryID, userID string) usecase.ReverseEntryInput {
	return usecase.ReverseEntryInput{
		EntryID: entryID,
		Notes:   r.Notes,
		UserID:  userID,
	}
}

// CreateCustomerRequest represents a request to create a customer.
type CreateCustomerRequest struct {
	ShopID         string          `json:"shop_id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone,omitempty"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCustomerRequest) ToUseCaseInput(userID string) usecase.CreateCustomerInput {
	return usecase.CreateCustomerInput{
		ShopID:         r.ShopID,
		Name:           r.Name,
		Phone:          r.Phone,
		OpeningBalance: r.OpeningBalance,
		UserID:         userID,
	}
}

// SetCustomerStatusRequest represents a request to (de)activate a customer.
type SetCustomerStatusRequest struct {
	Active bool `json:"active"`
}

// CreateShopRequest represents a request to create a shop.
type CreateShopRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateShopRequest) ToUseCaseInput(userID string) usecase.CreateShopInput {
	return usecase.CreateShopInput{
		Name:    r.Name,
		Address: r.Address,
		UserID:  userID,
	}
}
