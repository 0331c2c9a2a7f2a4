package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ysonawan/duebook/internal/domain"
)

// LedgerUseCase posts and reverses ledger entries. Posting and reversal each
// run as one transaction: the customer row is locked, the entry is written
// and the customer balance updated together, so concurrent postings for the
// same customer serialize and never lose balance updates.
type LedgerUseCase struct {
	txManager    TransactionManager
	entryRepo    EntryRepository
	customerRepo CustomerRepository
	shopRepo     ShopRepository
	auditRepo    AuditRepository
	idGen        IDGenerator
	retrier      Retrier
	invalidator  ReportInvalidator
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	entryRepo EntryRepository,
	customerRepo CustomerRepository,
	shopRepo ShopRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:    txManager,
		entryRepo:    entryRepo,
		customerRepo: customerRepo,
		shopRepo:     shopRepo,
		auditRepo:    auditRepo,
		idGen:        idGen,
	}
}

// WithRetrier enables retries of the transactional unit on serialization
// conflicts.
func (uc *LedgerUseCase) WithRetrier(retrier Retrier) *LedgerUseCase {
	uc.retrier = retrier
	return uc
}

// WithReportInvalidator drops stale cached reports after each successful
// posting or reversal.
func (uc *LedgerUseCase) WithReportInvalidator(invalidator ReportInvalidator) *LedgerUseCase {
	uc.invalidator = invalidator
	return uc
}

func (uc *LedgerUseCase) invalidateReports(ctx context.Context, shopID string) {
	if uc.invalidator != nil {
		uc.invalidator.InvalidateShop(ctx, shopID)
	}
}

func (uc *LedgerUseCase) run(ctx context.Context, operation func() error) error {
	if uc.retrier == nil {
		return operation()
	}

	return uc.retrier.Retry(ctx, operation)
}

// PostEntryInput represents input for posting a BAKI or PAID entry.
type PostEntryInput struct {
	// EntryDate is the business date of the entry. Zero means today.
	EntryDate  time.Time
	CustomerID string
	ShopID     string
	Notes      string
	UserID     string
	Type       domain.EntryType
	Amount     decimal.Decimal
}

// PostEntry validates and posts a new ledger entry, returning it with its
// balance snapshot. An unset entry date defaults to today; backdating is
// allowed.
func (uc *LedgerUseCase) PostEntry(ctx context.Context, input PostEntryInput) (*domain.Entry, error) {
	if input.EntryDate.IsZero() {
		input.EntryDate = time.Now().UTC()
	}

	if err := domain.ValidateNewEntry(input.Type, input.Amount, input.EntryDate); err != nil {
		return nil, err
	}

	exists, err := uc.shopRepo.Exists(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrShopNotFound
	}

	var entry *domain.Entry

	err = uc.run(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		customer, err := uc.customerRepo.GetByIDForUpdate(ctx, tx, input.CustomerID)
		if err != nil {
			return err
		}

		if err := customer.CanAcceptEntry(input.ShopID); err != nil {
			return err
		}

		now := time.Now().UTC()
		oldBalance := customer.CurrentBalance
		newBalance := input.Type.ApplyToBalance(oldBalance, input.Amount)

		entry = &domain.Entry{
			ID:              uc.idGen.Generate(),
			CustomerID:      customer.ID,
			ShopID:          customer.ShopID,
			CreatedByUserID: input.UserID,
			Type:            input.Type,
			Amount:          input.Amount,
			BalanceAfter:    newBalance,
			Notes:           input.Notes,
			EntryDate:       input.EntryDate,
			CreatedAt:       now,
		}

		if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
			return err
		}

		if err := uc.customerRepo.UpdateBalance(ctx, tx, customer.ID, newBalance, now); err != nil {
			return err
		}

		if err := uc.auditEntry(ctx, tx, domain.AuditActionEntryCreated, input.UserID, nil, entry, now); err != nil {
			return err
		}

		if err := uc.auditBalance(ctx, tx, customer.ID, input.UserID, oldBalance, newBalance, entry, now); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateReports(ctx, entry.ShopID)

	return entry, nil
}

// ReverseEntryInput represents input for reversing an entry.
type ReverseEntryInput struct {
	EntryID string
	Notes   string
	UserID  string
}

// ReverseEntry creates a compensating REVERSAL entry for an existing BAKI or
// PAID entry. An entry can be reversed at most once, and a reversal can never
// itself be reversed. The already-reversed check and the insert run in the
// same transaction, behind the customer row lock, so concurrent reversal
// requests on the same entry yield exactly one success.
func (uc *LedgerUseCase) ReverseEntry(ctx context.Context, input ReverseEntryInput) (*domain.Entry, error) {
	original, err := uc.entryRepo.GetByID(ctx, input.EntryID)
	if err != nil {
		return nil, err
	}

	if original.IsReversal() {
		return nil, domain.ErrAlreadyAReversal
	}

	notes := input.Notes
	if notes == "" {
		notes = "Reversal of entry " + original.ID
	}

	var reversal *domain.Entry

	err = uc.run(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		customer, err := uc.customerRepo.GetByIDForUpdate(ctx, tx, original.CustomerID)
		if err != nil {
			return err
		}

		reversed, err := uc.entryRepo.HasReversal(ctx, tx, original.ID)
		if err != nil {
			return err
		}
		if reversed {
			return domain.ErrAlreadyReversed
		}

		now := time.Now().UTC()
		oldBalance := customer.CurrentBalance
		newBalance := domain.ReversalBalance(original.Type, oldBalance, original.Amount)
		refID := original.ID

		reversal = &domain.Entry{
			ID:               uc.idGen.Generate(),
			CustomerID:       original.CustomerID,
			ShopID:           original.ShopID,
			CreatedByUserID:  input.UserID,
			Type:             domain.EntryTypeReversal,
			Amount:           original.Amount,
			BalanceAfter:     newBalance,
			ReferenceEntryID: &refID,
			Notes:            notes,
			EntryDate:        now,
			CreatedAt:        now,
		}

		if err := uc.entryRepo.Create(ctx, tx, reversal); err != nil {
			return err
		}

		if err := uc.customerRepo.UpdateBalance(ctx, tx, customer.ID, newBalance, now); err != nil {
			return err
		}

		if err := uc.auditEntry(ctx, tx, domain.AuditActionEntryReversed, input.UserID, original, reversal, now); err != nil {
			return err
		}

		if err := uc.auditBalance(ctx, tx, customer.ID, input.UserID, oldBalance, newBalance, reversal, now); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateReports(ctx, reversal.ShopID)

	return reversal, nil
}

// GetEntry retrieves an entry by ID.
func (uc *LedgerUseCase) GetEntry(ctx context.Context, id string) (*domain.Entry, error) {
	return uc.entryRepo.GetByID(ctx, id)
}

// ListEntriesInput represents input for the paginated ledger listing.
type ListEntriesInput struct {
	Filter EntryFilter
	Page   int
	Size   int
}

// ListEntries returns one page of filtered entries, newest entry date first.
func (uc *LedgerUseCase) ListEntries(ctx context.Context, input ListEntriesInput) (*Page[*domain.Entry], error) {
	if input.Size <= 0 {
		input.Size = 20
	}
	if input.Size > 100 {
		input.Size = 100
	}
	if input.Page < 0 {
		input.Page = 0
	}

	entries, total, err := uc.entryRepo.List(ctx, input.Filter, input.Page, input.Size)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(input.Size) - 1) / int64(input.Size))

	return &Page[*domain.Entry]{
		Content:       entries,
		Page:          input.Page,
		Size:          input.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

func (uc *LedgerUseCase) auditEntry(ctx context.Context, tx Transaction, action domain.AuditAction, userID string, before, after *domain.Entry, now time.Time) error {
	var beforeState domain.JSON
	if before != nil {
		beforeState = domain.MarshalState(before)
	}

	return uc.auditRepo.CreateTx(ctx, tx, &domain.AuditLog{
		UserID:      userID,
		Action:      string(action),
		EntityType:  domain.AuditEntityLedger,
		EntityID:    after.ID,
		BeforeState: beforeState,
		AfterState:  domain.MarshalState(after),
		Status:      string(domain.AuditStatusSuccess),
		CreatedAt:   now,
	})
}

func (uc *LedgerUseCase) auditBalance(ctx context.Context, tx Transaction, customerID, userID string, oldBalance, newBalance decimal.Decimal, cause *domain.Entry, now time.Time) error {
	return uc.auditRepo.CreateTx(ctx, tx, &domain.AuditLog{
		UserID:     userID,
		Action:     string(domain.AuditActionBalanceAdjusted),
		EntityType: domain.AuditEntityCustomer,
		EntityID:   customerID,
		BeforeState: domain.JSON{
			"balance": oldBalance.String(),
		},
		AfterState: domain.JSON{
			"balance":  newBalance.String(),
			"amount":   cause.Amount.String(),
			"type":     string(cause.Type),
			"entry_id": cause.ID,
		},
		Status:    string(domain.AuditStatusSuccess),
		CreatedAt: now,
	})
}
