package domain

import (
	"encoding/json"
	"time"
)

// AuditLog records who changed what, with before/after state, for every
// successful ledger mutation.
type AuditLog struct {
	ID           string
	UserID       string
	Action       string
	EntityType   string
	EntityID     string
	RequestID    string
	BeforeState  JSON
	AfterState   JSON
	Status       string
	ErrorMessage string
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// AuditAction represents different types of auditable actions
type AuditAction string

const (
	AuditActionEntryCreated    AuditAction = "ledger.entry_created"
	AuditActionEntryReversed   AuditAction = "ledger.entry_reversed"
	AuditActionBalanceAdjusted AuditAction = "customer.balance_adjusted"
	AuditActionCustomerCreated AuditAction = "customer.created"
	AuditActionCustomerStatus  AuditAction = "customer.status_changed"
	AuditActionShopCreated     AuditAction = "shop.created"
)

// Audited entity types.
const (
	AuditEntityLedger   = "LEDGER"
	AuditEntityCustomer = "CUSTOMER"
	AuditEntityShop     = "SHOP"
)

// AuditStatus represents the status of an audited action
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
)

// MarshalState converts a domain object to JSON for audit logging
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}

// AuditFilter defines filters for querying audit logs
type AuditFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	UserID     string
	Action     string
	EntityType string
	EntityID   string
	Limit      int
	Offset     int
	// Ascending returns oldest logs first. The default is newest first,
	// which suits the read API; tailing consumers need write order.
	Ascending bool
}
