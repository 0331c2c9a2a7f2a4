package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ysonawan/duebook/internal/domain"
)

// EntryFilter narrows ledger queries. A zero value matches everything;
// ShopID "" or "0" means all shops accessible to the caller.
type EntryFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	ShopID     string
	CustomerID string
	EntryType  domain.EntryType
}

// AllShops reports whether the filter spans every shop.
func (f EntryFilter) AllShops() bool {
	return f.ShopID == "" || f.ShopID == "0"
}

// Page is one page of an offset-paginated result set. Page numbering is
// zero-indexed.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.Entry) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	// HasReversal reports whether a REVERSAL entry referencing id exists.
	// Runs inside tx so the check is atomic with the reversal insert.
	HasReversal(ctx context.Context, tx Transaction, id string) (bool, error)
	List(ctx context.Context, filter EntryFilter, page, size int) ([]*domain.Entry, int64, error)
	ListAll(ctx context.Context, filter EntryFilter) ([]*domain.Entry, error)
}

// CustomerRepository defines data access for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Customer, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*domain.Customer, error)
	SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error
	CountByShop(ctx context.Context, shopID string) (total, active int64, err error)
	// Outstanding returns the number of customers owing money and the sum of
	// their positive balances.
	Outstanding(ctx context.Context, shopID string) (int64, decimal.Decimal, error)
}

// ShopRepository defines data access for shops.
type ShopRepository interface {
	Create(ctx context.Context, shop *domain.Shop) error
	Exists(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.Shop, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	List(ctx context.Context, filter *domain.AuditFilter) ([]*domain.AuditLog, error)
	GetByEntity(ctx context.Context, entityType, entityID string) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient storage conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations for derived read models.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}

// ReportInvalidator drops cached reports that a ledger mutation made stale.
type ReportInvalidator interface {
	InvalidateShop(ctx context.Context, shopID string)
}
