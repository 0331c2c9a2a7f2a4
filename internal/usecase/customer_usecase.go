package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ysonawan/duebook/internal/domain"
)

// CustomerUseCase manages the customer directory. The opening balance is
// fixed at creation; the current balance is mutated only by ledger postings
// and reversals.
type CustomerUseCase struct {
	customerRepo CustomerRepository
	shopRepo     ShopRepository
	auditRepo    AuditRepository
	idGen        IDGenerator
}

// NewCustomerUseCase creates a new CustomerUseCase.
func NewCustomerUseCase(
	customerRepo CustomerRepository,
	shopRepo ShopRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
) *CustomerUseCase {
	return &CustomerUseCase{
		customerRepo: customerRepo,
		shopRepo:     shopRepo,
		auditRepo:    auditRepo,
		idGen:        idGen,
	}
}

// CreateCustomerInput represents input for creating a customer.
type CreateCustomerInput struct {
	ShopID         string
	Name           string
	Phone          string
	UserID         string
	OpeningBalance decimal.Decimal
}

// CreateCustomer creates a customer whose current balance starts at the
// opening balance.
func (uc *CustomerUseCase) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error) {
	exists, err := uc.shopRepo.Exists(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrShopNotFound
	}

	now := time.Now().UTC()
	customer := &domain.Customer{
		ID:             uc.idGen.Generate(),
		ShopID:         input.ShopID,
		Name:           input.Name,
		Phone:          input.Phone,
		OpeningBalance: input.OpeningBalance,
		CurrentBalance: input.OpeningBalance,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	uc.audit(ctx, domain.AuditActionCustomerCreated, input.UserID, customer.ID, nil, domain.MarshalState(customer), now)

	return customer, nil
}

// GetCustomer retrieves a customer by ID.
func (uc *CustomerUseCase) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	return uc.customerRepo.GetByID(ctx, id)
}

// ListCustomersInput represents input for listing customers of a shop.
type ListCustomersInput struct {
	ShopID string
	Limit  int
	Offset int
}

// ListCustomers lists a shop's customers; shop ID "0" spans all shops.
func (uc *CustomerUseCase) ListCustomers(ctx context.Context, input ListCustomersInput) ([]*domain.Customer, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.customerRepo.ListByShop(ctx, normalizeShopID(input.ShopID), input.Limit, input.Offset)
}

// SetCustomerStatus activates or deactivates a customer. Inactive customers
// reject new ledger entries; their history stays queryable.
func (uc *CustomerUseCase) SetCustomerStatus(ctx context.Context, id string, active bool, userID string) (*domain.Customer, error) {
	customer, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if customer.IsActive == active {
		return customer, nil
	}

	now := time.Now().UTC()
	before := domain.MarshalState(customer)

	if err := uc.customerRepo.SetActive(ctx, id, active, now); err != nil {
		return nil, err
	}

	customer.IsActive = active
	customer.UpdatedAt = now

	uc.audit(ctx, domain.AuditActionCustomerStatus, userID, id, before, domain.MarshalState(customer), now)

	return customer, nil
}

// audit writes best-effort: a failed audit write never fails the operation
// it describes.
func (uc *CustomerUseCase) audit(ctx context.Context, action domain.AuditAction, userID, entityID string, before, after domain.JSON, now time.Time) {
	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		UserID:      userID,
		Action:      string(action),
		EntityType:  domain.AuditEntityCustomer,
		EntityID:    entityID,
		BeforeState: before,
		AfterState:  after,
		Status:      string(domain.AuditStatusSuccess),
		CreatedAt:   now,
	})
}
