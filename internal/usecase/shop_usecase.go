package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/ysonawan/duebook/internal/domain"
)

// ShopUseCase provisions shops. A shop must exist before customers can be
// registered or entries posted against it.
type ShopUseCase struct {
	shopRepo  ShopRepository
	auditRepo AuditRepository
	idGen     IDGenerator
}

// NewShopUseCase creates a new ShopUseCase.
func NewShopUseCase(shopRepo ShopRepository, auditRepo AuditRepository, idGen IDGenerator) *ShopUseCase {
	return &ShopUseCase{
		shopRepo:  shopRepo,
		auditRepo: auditRepo,
		idGen:     idGen,
	}
}

// CreateShopInput represents input for creating a shop.
type CreateShopInput struct {
	Name    string
	Address string
	UserID  string
}

// CreateShop creates an active shop.
func (uc *ShopUseCase) CreateShop(ctx context.Context, input CreateShopInput) (*domain.Shop, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrInvalidShopName
	}

	shop := &domain.Shop{
		ID:        uc.idGen.Generate(),
		Name:      name,
		Address:   input.Address,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.shopRepo.Create(ctx, shop); err != nil {
		return nil, err
	}

	// Best-effort, same as the customer directory audits.
	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		UserID:     input.UserID,
		Action:     string(domain.AuditActionShopCreated),
		EntityType: domain.AuditEntityShop,
		EntityID:   shop.ID,
		AfterState: domain.MarshalState(shop),
		Status:     string(domain.AuditStatusSuccess),
		CreatedAt:  shop.CreatedAt,
	})

	return shop, nil
}

// GetShop retrieves a shop by ID.
func (uc *ShopUseCase) GetShop(ctx context.Context, id string) (*domain.Shop, error) {
	return uc.shopRepo.GetByID(ctx, id)
}
