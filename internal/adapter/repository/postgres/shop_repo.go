package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ysonawan/duebook/internal/domain"
	"github.com/ysonawan/duebook/internal/infrastructure/postgres/generated"
)

// ShopRepository implements usecase.ShopRepository.
type ShopRepository struct {
	queries *generated.Queries
}

// NewShopRepository creates a new ShopRepository.
func NewShopRepository(pool *pgxpool.Pool) *ShopRepository {
	return &ShopRepository{
		queries: generated.New(pool),
	}
}

// Create inserts a new shop.
func (r *ShopRepository) Create(ctx context.Context, shop *domain.Shop) error {
	return r.queries.CreateShop(ctx, generated.CreateShopParams{
		ID:        shop.ID,
		Name:      shop.Name,
		Address:   shop.Address,
		IsActive:  shop.IsActive,
		CreatedAt: timeToPgTimestamptz(shop.CreatedAt),
	})
}

// Exists reports whether a shop with the given ID exists.
func (r *ShopRepository) Exists(ctx context.Context, id string) (bool, error) {
	return r.queries.ShopExists(ctx, id)
}

// GetByID retrieves a shop by ID.
func (r *ShopRepository) GetByID(ctx context.Context, id string) (*domain.Shop, error) {
	row, err := r.queries.GetShopByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrShopNotFound
		}

		return nil, err
	}

	return &domain.Shop{
		ID:        row.ID,
		Name:      row.Name,
		Address:   row.Address,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt.Time,
	}, nil
}
