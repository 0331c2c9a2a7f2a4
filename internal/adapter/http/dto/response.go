package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ysonawan/duebook/internal/domain"
	"github.com/ysonawan/duebook/internal/usecase"
)

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID               string          `json:"id"`
	CustomerID       string          `json:"customer_id"`
	ShopID           string          `json:"shop_id"`
	CreatedByUserID  string          `json:"created_by_user_id,omitempty"`
	Type             string          `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	BalanceAfter     decimal.Decimal `json:"balance_after"`
	ReferenceEntryID *string         `json:"reference_entry_id,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	EntryDate        string          `json:"entry_date"`
	CreatedAt        time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:               e.ID,
		CustomerID:       e.CustomerID,
		ShopID:           e.ShopID,
		CreatedByUserID:  e.CreatedByUserID,
		Type:             string(e.Type),
		Amount:           e.Amount,
		BalanceAfter:     e.BalanceAfter,
		ReferenceEntryID: e.ReferenceEntryID,
		Notes:            e.Notes,
		EntryDate:        e.EntryDate.UTC().Format(entryDateLayout),
		CreatedAt:        e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// PageResponse is one page of an offset-paginated listing.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// EntryPageFromDomain converts a use case page of entries to a response page.
func EntryPageFromDomain(page *usecase.Page[*domain.Entry]) *PageResponse[*EntryResponse] {
	return &PageResponse[*EntryResponse]{
		Content:       EntriesFromDomain(page.Content),
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
	}
}

// CustomerResponse represents a customer in API responses.
type CustomerResponse struct {
	ID             string          `json:"id"`
	ShopID         string          `json:"shop_id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone,omitempty"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CustomerFromDomain converts a domain customer to a response.
func CustomerFromDomain(c *domain.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:             c.ID,
		ShopID:         c.ShopID,
		Name:           c.Name,
		Phone:          c.Phone,
		OpeningBalance: c.OpeningBalance,
		CurrentBalance: c.CurrentBalance,
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// CustomersFromDomain converts domain customers to responses.
func CustomersFromDomain(customers []*domain.Customer) []*CustomerResponse {
	result := make([]*CustomerResponse, len(customers))
	for i, c := range customers {
		result[i] = CustomerFromDomain(c)
	}
	return result
}

// ShopResponse represents a shop in API responses.
type ShopResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ShopFromDomain converts a domain shop to a response.
func ShopFromDomain(s *domain.Shop) *ShopResponse {
	return &ShopResponse{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
	}
}

// AuditLogResponse represents an audit log in API responses.
type AuditLogResponse struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id,omitempty"`
	Action      string         `json:"action"`
	EntityType  string         `json:"entity_type"`
	EntityID    string         `json:"entity_id"`
	RequestID   string         `json:"request_id,omitempty"`
	BeforeState map[string]any `json:"before_state,omitempty"`
	AfterState  map[string]any `json:"after_state,omitempty"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
}

// AuditLogsFromDomain converts domain audit logs to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	result := make([]*AuditLogResponse, len(logs))
	for i, l := range logs {
		result[i] = &AuditLogResponse{
			ID:          l.ID,
			UserID:      l.UserID,
			Action:      l.Action,
			EntityType:  l.EntityType,
			EntityID:    l.EntityID,
			RequestID:   l.RequestID,
			BeforeState: l.BeforeState,
			AfterState:  l.AfterState,
			Status:      l.Status,
			CreatedAt:   l.CreatedAt,
		}
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
