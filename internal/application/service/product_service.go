package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukahub/duka-api/internal/domain/entity"
	"github.com/dukahub/duka-api/internal/domain/enum"
	"github.com/dukahub/duka-api/internal/domain/repository"
	infraRepo "github.com/dukahub/duka-api/internal/infrastructure/repository"
	"github.com/dukahub/duka-api/pkg/apperror"
	"github.com/dukahub/duka-api/pkg/pagination"
)

// ProductService handles product catalog operations. Creating a product with
// an opening quantity seeds the stock row and writes the INITIAL movement in
// the same transaction, so even opening balances are on the ledger.
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	unitRepo     repository.UnitRepository
	stockRepo    repository.StockRepository
	movementRepo repository.StockMovementRepository
	transactor   repository.Transactor
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	unitRepo repository.UnitRepository,
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	transactor repository.Transactor,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		unitRepo:     unitRepo,
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		transactor:   transactor,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name            string
	SKU             string
	Barcode         string
	Description     string
	CategoryID      *uuid.UUID
	UnitID          *uuid.UUID
	CreatedByID     *uuid.UUID
	CostPrice       decimal.Decimal
	SellingPrice    decimal.Decimal
	MinimumStock    decimal.Decimal
	MaximumStock    *decimal.Decimal
	InitialQuantity decimal.Decimal
}

// CreateProduct creates a product and, when InitialQuantity is positive, its
// opening stock with an INITIAL-referenced IN movement.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Shop context required")
	}
	if input.Name == "" || input.SKU == "" {
		return nil, apperror.NewBadRequestError("Product name and SKU are required")
	}
	if input.CostPrice.IsNegative() || input.SellingPrice.IsNegative() {
		return nil, apperror.NewBadRequestError("Prices cannot be negative")
	}
	if input.InitialQuantity.IsNegative() {
		return nil, apperror.NewInvalidQuantityError("Initial quantity cannot be negative")
	}

	existing, err := s.productRepo.GetBySKU(ctx, input.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A product with this SKU already exists")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}
	if input.UnitID != nil {
		unit, err := s.unitRepo.GetByID(ctx, *input.UnitID)
		if err != nil {
			return nil, err
		}
		if unit == nil {
			return nil, apperror.NewNotFoundError("Unit")
		}
	}

	product := &entity.Product{
		ShopID:       shopID,
		CategoryID:   input.CategoryID,
		UnitID:       input.UnitID,
		CreatedByID:  input.CreatedByID,
		Name:         input.Name,
		SKU:          input.SKU,
		Barcode:      input.Barcode,
		Description:  input.Description,
		CostPrice:    input.CostPrice,
		SellingPrice: input.SellingPrice,
		MinimumStock: input.MinimumStock,
		MaximumStock: input.MaximumStock,
		IsActive:     true,
	}

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.productRepo.Create(ctx, product); err != nil {
			return err
		}
		if err := s.stockRepo.Create(ctx, &entity.Stock{
			ShopID:    shopID,
			ProductID: product.ID,
			Quantity:  input.InitialQuantity,
		}); err != nil {
			return err
		}
		if input.InitialQuantity.IsPositive() {
			return s.movementRepo.Create(ctx, &entity.StockMovement{
				ShopID:          shopID,
				ProductID:       product.ID,
				CreatedByID:     input.CreatedByID,
				MovementType:    enum.MovementIn,
				Quantity:        input.InitialQuantity,
				UnitPrice:       input.CostPrice,
				ReferenceNumber: "INITIAL",
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProductInput represents the update product input. Nil fields are
// left unchanged.
type UpdateProductInput struct {
	Name         *string
	Barcode      *string
	Description  *string
	CategoryID   *uuid.UUID
	UnitID       *uuid.UUID
	CostPrice    *decimal.Decimal
	SellingPrice *decimal.Decimal
	MinimumStock *decimal.Decimal
	MaximumStock *decimal.Decimal
	IsActive     *bool
}

// UpdateProduct updates catalog fields. Stock quantity is not touchable here;
// quantity changes go through the stock ledger.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Barcode != nil {
		product.Barcode = *input.Barcode
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
	if input.UnitID != nil {
		product.UnitID = input.UnitID
	}
	if input.CostPrice != nil {
		if input.CostPrice.IsNegative() {
			return nil, apperror.NewBadRequestError("Prices cannot be negative")
		}
		product.CostPrice = *input.CostPrice
	}
	if input.SellingPrice != nil {
		if input.SellingPrice.IsNegative() {
			return nil, apperror.NewBadRequestError("Prices cannot be negative")
		}
		product.SellingPrice = *input.SellingPrice
	}
	if input.MinimumStock != nil {
		product.MinimumStock = *input.MinimumStock
	}
	if input.MaximumStock != nil {
		product.MaximumStock = input.MaximumStock
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts returns products matching the filter
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return s.productRepo.List(ctx, params)
}

// DeactivateProduct marks a product inactive. Products are never hard
// deleted; their movement history must stay intact.
func (s *ProductService) DeactivateProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	product.IsActive = false
	return s.productRepo.Update(ctx, product)
}

// CreateCategory creates a product category
func (s *ProductService) CreateCategory(ctx context.Context, name, description string, parentID *uuid.UUID) (*entity.Category, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Shop context required")
	}
	if name == "" {
		return nil, apperror.NewBadRequestError("Category name is required")
	}
	if parentID != nil {
		parent, err := s.categoryRepo.GetByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperror.NewNotFoundError("Parent category")
		}
	}

	category := &entity.Category{
		ShopID:      shopID,
		ParentID:    parentID,
		Name:        name,
		Description: description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns product categories for the current shop
func (s *ProductService) ListCategories(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Category, int64, error) {
	return s.categoryRepo.List(ctx, params, search)
}

// CreateUnit creates a measurement unit
func (s *ProductService) CreateUnit(ctx context.Context, name, symbol string) (*entity.Unit, error) {
	if name == "" || symbol == "" {
		return nil, apperror.NewBadRequestError("Unit name and symbol are required")
	}
	unit := &entity.Unit{Name: name, Symbol: symbol}
	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

// ListUnits returns measurement units
func (s *ProductService) ListUnits(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Unit, int64, error) {
	return s.unitRepo.List(ctx, params, search)
}
