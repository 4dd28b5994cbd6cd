package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dukahub/duka-api/internal/domain/entity"
)

// ShopRepository defines the interface for shop data operations
type ShopRepository interface {
	Create(ctx context.Context, shop *entity.Shop) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error)
	Update(ctx context.Context, shop *entity.Shop) error
	// ListByUser returns all shops the user is a member of
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Shop, error)
}

// ShopMembershipRepository defines the interface for shop membership operations
type ShopMembershipRepository interface {
	Create(ctx context.Context, membership *entity.ShopMembership) error
	Get(ctx context.Context, shopID, userID uuid.UUID) (*entity.ShopMembership, error)
	ListByShop(ctx context.Context, shopID uuid.UUID) ([]entity.ShopMembership, error)
	Delete(ctx context.Context, shopID, userID uuid.UUID) error
}
