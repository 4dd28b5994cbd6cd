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
)

// StockService is the single entry point for stock mutations. Every change to
// a product's quantity goes through ApplyMovement, which adjusts the stock row
// and appends the matching movement record in one transaction.
type StockService struct {
	stockRepo    repository.StockRepository
	movementRepo repository.StockMovementRepository
	productRepo  repository.ProductRepository
	transactor   repository.Transactor
}

// NewStockService creates a new stock service
func NewStockService(
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	transactor repository.Transactor,
) *StockService {
	return &StockService{
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		productRepo:  productRepo,
		transactor:   transactor,
	}
}

// MovementInput describes a single stock change. Quantity is the magnitude
// for IN, OUT and RET movements; for ADJ it is the signed delta itself.
type MovementInput struct {
	ProductID       uuid.UUID
	Type            enum.MovementType
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	SupplierID      *uuid.UUID
	CreatedByID     *uuid.UUID
	ReferenceNumber string
	Notes           string
}

// signedDelta validates the input quantity and converts it to the signed
// delta applied to stock.
func signedDelta(input *MovementInput) (decimal.Decimal, error) {
	if !input.Type.IsValid() {
		return decimal.Zero, apperror.NewBadRequestError("Unknown movement type")
	}
	if input.Type == enum.MovementAdjustment {
		if input.Quantity.IsZero() {
			return decimal.Zero, apperror.NewInvalidQuantityError("Adjustment quantity must be non-zero")
		}
		return input.Quantity, nil
	}
	if !input.Quantity.IsPositive() {
		return decimal.Zero, apperror.NewInvalidQuantityError("Quantity must be positive")
	}
	if input.Type == enum.MovementOut {
		return input.Quantity.Neg(), nil
	}
	return input.Quantity, nil
}

// ApplyMovement records a stock change. The conditional stock update and the
// movement insert commit together or not at all, so the movement log always
// sums to the stock quantity.
func (s *StockService) ApplyMovement(ctx context.Context, input *MovementInput) (*entity.StockMovement, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Shop context required")
	}

	delta, err := signedDelta(input)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	movement := &entity.StockMovement{
		ShopID:          shopID,
		ProductID:       input.ProductID,
		SupplierID:      input.SupplierID,
		CreatedByID:     input.CreatedByID,
		MovementType:    input.Type,
		Quantity:        delta,
		UnitPrice:       input.UnitPrice,
		ReferenceNumber: input.ReferenceNumber,
		Notes:           input.Notes,
	}

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.applyDelta(ctx, shopID, product, delta); err != nil {
			return err
		}
		return s.movementRepo.Create(ctx, movement)
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// applyDelta adjusts the stock row for a product, creating it lazily on the
// first inbound movement. Must run inside a transaction.
func (s *StockService) applyDelta(ctx context.Context, shopID uuid.UUID, product *entity.Product, delta decimal.Decimal) error {
	applied, err := s.stockRepo.ApplyDelta(ctx, product.ID, delta)
	if err != nil {
		return err
	}
	if applied {
		return nil
	}

	stock, err := s.stockRepo.GetByProductID(ctx, product.ID)
	if err != nil {
		return err
	}
	if stock != nil {
		// Row exists; the guard rejected the change.
		return apperror.NewInsufficientStockError(product.Name)
	}

	if delta.IsNegative() {
		return apperror.NewInsufficientStockError(product.Name)
	}
	return s.stockRepo.Create(ctx, &entity.Stock{
		ShopID:    shopID,
		ProductID: product.ID,
		Quantity:  delta,
	})
}

// GetStock returns the stock row for a product, treating a missing row as
// zero quantity.
func (s *StockService) GetStock(ctx context.Context, productID uuid.UUID) (*entity.Stock, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Shop context required")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	stock, err := s.stockRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return &entity.Stock{ShopID: shopID, ProductID: productID, Quantity: decimal.Zero}, nil
	}
	return stock, nil
}

// ListStock returns stock levels for the current shop
func (s *StockService) ListStock(ctx context.Context, params *repository.MovementFilterParams) ([]entity.Stock, int64, error) {
	return s.stockRepo.List(ctx, params.Pagination)
}

// ListMovements returns the movement history matching the filter
func (s *StockService) ListMovements(ctx context.Context, params *repository.MovementFilterParams) ([]entity.StockMovement, int64, error) {
	return s.movementRepo.List(ctx, params)
}

// GetLowStockProducts returns active products at or below their minimum stock
func (s *StockService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}
