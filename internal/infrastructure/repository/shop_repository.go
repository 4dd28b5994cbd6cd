package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahub/duka-api/internal/domain/entity"
	domainRepo "github.com/dukahub/duka-api/internal/domain/repository"
)

type shopRepository struct {
	db *gorm.DB
}

// NewShopRepository creates a new shop repository
func NewShopRepository(db *gorm.DB) domainRepo.ShopRepository {
	return &shopRepository{db: db}
}

func (r *shopRepository) Create(ctx context.Context, shop *entity.Shop) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(shop).Error
}

func (r *shopRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error) {
	var shop entity.Shop
	err := dbFromContext(ctx, r.db).WithContext(ctx).First(&shop, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shop, err
}

func (r *shopRepository) Update(ctx context.Context, shop *entity.Shop) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(shop).Error
}

func (r *shopRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Shop, error) {
	var shops []entity.Shop
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Joins("JOIN shop_memberships ON shop_memberships.shop_id = shops.id").
		Where("shop_memberships.user_id = ?", userID).
		Find(&shops).Error
	return shops, err
}

type shopMembershipRepository struct {
	db *gorm.DB
}

// NewShopMembershipRepository creates a new shop membership repository
func NewShopMembershipRepository(db *gorm.DB) domainRepo.ShopMembershipRepository {
	return &shopMembershipRepository{db: db}
}

func (r *shopMembershipRepository) Create(ctx context.Context, membership *entity.ShopMembership) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(membership).Error
}

func (r *shopMembershipRepository) Get(ctx context.Context, shopID, userID uuid.UUID) (*entity.ShopMembership, error) {
	var membership entity.ShopMembership
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		First(&membership, "shop_id = ? AND user_id = ?", shopID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &membership, err
}

func (r *shopMembershipRepository) ListByShop(ctx context.Context, shopID uuid.UUID) ([]entity.ShopMembership, error) {
	var memberships []entity.ShopMembership
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Preload("User").
		Where("shop_id = ?", shopID).
		Find(&memberships).Error
	return memberships, err
}

func (r *shopMembershipRepository) Delete(ctx context.Context, shopID, userID uuid.UUID) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).
		Delete(&entity.ShopMembership{}, "shop_id = ? AND user_id = ?", shopID, userID).Error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := dbFromContext(ctx, r.db).WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := dbFromContext(ctx, r.db).WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(user).Error
}
