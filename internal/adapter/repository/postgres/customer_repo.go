package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ysonawan/duebook/internal/domain"
	"github.com/ysonawan/duebook/internal/infrastructure/postgres/generated"
	"github.com/ysonawan/duebook/internal/usecase"
)

// CustomerRepository implements usecase.CustomerRepository.
type CustomerRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new customer.
func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	_, err := r.queries.CreateCustomer(ctx, generated.CreateCustomerParams{
		ID:             customer.ID,
		ShopID:         customer.ShopID,
		Name:           customer.Name,
		Phone:          customer.Phone,
		OpeningBalance: decimalToNumeric(customer.OpeningBalance),
		CurrentBalance: decimalToNumeric(customer.CurrentBalance),
		IsActive:       customer.IsActive,
		CreatedAt:      timeToPgTimestamptz(customer.CreatedAt),
		UpdatedAt:      timeToPgTimestamptz(customer.UpdatedAt),
	})

	return err
}

// GetByID retrieves a customer by ID.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	row, err := r.queries.GetCustomerByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}

		return nil, err
	}

	return rowToCustomer(row), nil
}

// GetByIDForUpdate retrieves a customer by ID with a FOR UPDATE lock. The lock
// serializes concurrent postings and reversals for the same customer.
func (r *CustomerRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Customer, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.GetCustomerByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}

		return nil, err
	}

	return rowToCustomer(row), nil
}

// UpdateBalance updates the running balance of a customer.
func (r *CustomerRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateCustomerBalance(ctx, generated.UpdateCustomerBalanceParams{
		ID:             id,
		CurrentBalance: decimalToNumeric(balance),
		UpdatedAt:      timeToPgTimestamptz(updatedAt),
	})
}

// ListByShop lists customers of a shop; shopID "" spans all shops.
func (r *CustomerRepository) ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*domain.Customer, error) {
	rows, err := r.queries.ListCustomersByShop(ctx, generated.ListCustomersByShopParams{
		ShopID: shopID,
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	customers := make([]*domain.Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, rowToCustomer(row))
	}

	return customers, nil
}

// SetActive flips the active flag of a customer.
func (r *CustomerRepository) SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error {
	return r.queries.SetCustomerActive(ctx, generated.SetCustomerActiveParams{
		ID:        id,
		IsActive:  active,
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

// CountByShop returns total and active customer counts.
func (r *CustomerRepository) CountByShop(ctx context.Context, shopID string) (int64, int64, error) {
	row, err := r.queries.CountCustomersByShop(ctx, shopID)
	if err != nil {
		return 0, 0, err
	}

	return row.Total, row.Active, nil
}

// Outstanding returns how many customers owe money and the sum of their
// positive balances.
func (r *CustomerRepository) Outstanding(ctx context.Context, shopID string) (int64, decimal.Decimal, error) {
	row, err := r.queries.OutstandingByShop(ctx, shopID)
	if err != nil {
		return 0, decimal.Zero, err
	}

	return row.Owing, numericToDecimal(row.Total), nil
}

func rowToCustomer(row generated.Customer) *domain.Customer {
	return &domain.Customer{
		ID:             row.ID,
		ShopID:         row.ShopID,
		Name:           row.Name,
		Phone:          row.Phone,
		OpeningBalance: numericToDecimal(row.OpeningBalance),
		CurrentBalance: numericToDecimal(row.CurrentBalance),
		IsActive:       row.IsActive,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
