package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/dukahub/duka-api/internal/domain/entity"
	"github.com/dukahub/duka-api/internal/domain/repository"
	infraRepo "github.com/dukahub/duka-api/internal/infrastructure/repository"
	"github.com/dukahub/duka-api/pkg/apperror"
	"github.com/dukahub/duka-api/pkg/pagination"
)

// SupplierService handles supplier-related operations
type SupplierService struct {
	supplierRepo repository.SupplierRepository
}

// NewSupplierService creates a new supplier service
func NewSupplierService(supplierRepo repository.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// SupplierInput represents the create/update supplier input
type SupplierInput struct {
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	TaxNumber     string
}

// CreateSupplier creates a new supplier
func (s *SupplierService) CreateSupplier(ctx context.Context, input *SupplierInput) (*entity.Supplier, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Shop context required")
	}
	if input.Name == "" || input.Phone == "" {
		return nil, apperror.NewBadRequestError("Supplier name and phone are required")
	}

	supplier := &entity.Supplier{
		ShopID:        shopID,
		Name:          input.Name,
		ContactPerson: input.ContactPerson,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		TaxNumber:     input.TaxNumber,
		IsActive:      true,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// UpdateSupplier updates an existing supplier
func (s *SupplierService) UpdateSupplier(ctx context.Context, id uuid.UUID, input *SupplierInput) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	if input.Name != "" {
		supplier.Name = input.Name
	}
	if input.Phone != "" {
		supplier.Phone = input.Phone
	}
	supplier.ContactPerson = input.ContactPerson
	supplier.Email = input.Email
	supplier.Address = input.Address
	supplier.TaxNumber = input.TaxNumber

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// GetSupplier returns a supplier by ID
func (s *SupplierService) GetSupplier(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	return supplier, nil
}

// ListSuppliers returns suppliers for the current shop
func (s *SupplierService) ListSuppliers(ctx context.Context, params *pagination.PaginationParams, search string, includeInactive bool) ([]entity.Supplier, int64, error) {
	return s.supplierRepo.List(ctx, params, search, includeInactive)
}

// DeleteSupplier removes a supplier. A supplier referenced by purchase orders
// is deactivated instead of deleted.
func (s *SupplierService) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return apperror.NewNotFoundError("Supplier")
	}

	hasOrders, err := s.supplierRepo.HasPurchaseOrders(ctx, id)
	if err != nil {
		return err
	}
	if hasOrders {
		supplier.IsActive = false
		return s.supplierRepo.Update(ctx, supplier)
	}
	return s.supplierRepo.Delete(ctx, id)
}
