package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/dukahub/duka-api/internal/domain/entity"
	"github.com/dukahub/duka-api/internal/domain/repository"
	"github.com/dukahub/duka-api/pkg/apperror"
)

// ShopService handles shop registration, membership and settings
type ShopService struct {
	shopRepo       repository.ShopRepository
	membershipRepo repository.ShopMembershipRepository
	userRepo       repository.UserRepository
	transactor     repository.Transactor
}

// NewShopService creates a new shop service
func NewShopService(
	shopRepo repository.ShopRepository,
	membershipRepo repository.ShopMembershipRepository,
	userRepo repository.UserRepository,
	transactor repository.Transactor,
) *ShopService {
	return &ShopService{
		shopRepo:       shopRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		transactor:     transactor,
	}
}

// RegisterShopInput represents the shop registration input
type RegisterShopInput struct {
	OwnerID  uuid.UUID
	Name     string
	ShopType string
	Address  string
}

// RegisterShop creates a shop with default settings and makes the owner its
// first member, in one transaction.
func (s *ShopService) RegisterShop(ctx context.Context, input *RegisterShopInput) (*entity.Shop, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Shop name is required")
	}

	owner, err := s.userRepo.GetByID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	shop := &entity.Shop{
		OwnerID:  input.OwnerID,
		Name:     input.Name,
		ShopType: input.ShopType,
		Address:  input.Address,
		Settings: entity.DefaultShopSettings(),
	}

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.shopRepo.Create(ctx, shop); err != nil {
			return err
		}
		return s.membershipRepo.Create(ctx, &entity.ShopMembership{
			ShopID: shop.ID,
			UserID: input.OwnerID,
			Role:   "owner",
		})
	})
	if err != nil {
		return nil, err
	}
	return shop, nil
}

// GetShop returns a shop the user belongs to
func (s *ShopService) GetShop(ctx context.Context, shopID, userID uuid.UUID) (*entity.Shop, error) {
	membership, err := s.membershipRepo.Get(ctx, shopID, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, apperror.NewNotFoundError("Shop")
	}
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, apperror.NewNotFoundError("Shop")
	}
	return shop, nil
}

// ListShops returns all shops the user is a member of
func (s *ShopService) ListShops(ctx context.Context, userID uuid.UUID) ([]entity.Shop, error) {
	return s.shopRepo.ListByUser(ctx, userID)
}

// UpdateSettings replaces a shop's settings. Only the owner or an admin
// member may change them.
func (s *ShopService) UpdateSettings(ctx context.Context, shopID, userID uuid.UUID, settings entity.ShopSettings) (*entity.Shop, error) {
	membership, err := s.membershipRepo.Get(ctx, shopID, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, apperror.NewNotFoundError("Shop")
	}
	if membership.Role != "owner" && membership.Role != "admin" {
		return nil, apperror.ErrForbidden
	}
	if settings.TaxRate != nil && settings.TaxRate.IsNegative() {
		return nil, apperror.NewBadRequestError("Tax rate cannot be negative")
	}

	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, apperror.NewNotFoundError("Shop")
	}

	shop.Settings = settings
	if err := s.shopRepo.Update(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// AddMember adds a user to a shop. Only the owner or an admin may add
// members, and a user cannot be added twice.
func (s *ShopService) AddMember(ctx context.Context, shopID, actorID, userID uuid.UUID, role string) (*entity.ShopMembership, error) {
	actor, err := s.membershipRepo.Get(ctx, shopID, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, apperror.NewNotFoundError("Shop")
	}
	if actor.Role != "owner" && actor.Role != "admin" {
		return nil, apperror.ErrForbidden
	}
	if role != "admin" && role != "member" {
		return nil, apperror.NewBadRequestError("Role must be admin or member")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	existing, err := s.membershipRepo.Get(ctx, shopID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("User is already a member of this shop")
	}

	membership := &entity.ShopMembership{ShopID: shopID, UserID: userID, Role: role}
	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		return nil, err
	}
	return membership, nil
}

// RemoveMember removes a user from a shop. The owner cannot be removed.
func (s *ShopService) RemoveMember(ctx context.Context, shopID, actorID, userID uuid.UUID) error {
	actor, err := s.membershipRepo.Get(ctx, shopID, actorID)
	if err != nil {
		return err
	}
	if actor == nil {
		return apperror.NewNotFoundError("Shop")
	}
	if actor.Role != "owner" && actor.Role != "admin" {
		return apperror.ErrForbidden
	}

	target, err := s.membershipRepo.Get(ctx, shopID, userID)
	if err != nil {
		return err
	}
	if target == nil {
		return apperror.NewNotFoundError("Membership")
	}
	if target.Role == "owner" {
		return apperror.NewInvalidStateError("The shop owner cannot be removed")
	}
	return s.membershipRepo.Delete(ctx, shopID, userID)
}

// Membership returns the caller's membership in a shop, if any
func (s *ShopService) Membership(ctx context.Context, shopID, userID uuid.UUID) (*entity.ShopMembership, error) {
	return s.membershipRepo.Get(ctx, shopID, userID)
}
