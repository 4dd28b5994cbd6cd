package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukahub/duka-api/internal/domain/entity"
	"github.com/dukahub/duka-api/internal/domain/enum"
	"github.com/dukahub/duka-api/pkg/pagination"
)

// StockRepository defines the interface for stock level operations
type StockRepository interface {
	Create(ctx context.Context, stock *entity.Stock) error
	GetByProductID(ctx context.Context, productID uuid.UUID) (*entity.Stock, error)
	// ApplyDelta atomically adjusts a product's stock by the signed delta,
	// refusing any change that would leave the quantity negative.
	// Returns (true, nil) on success, (false, nil) when the guard rejected
	// the change, (false, err) on database error.
	ApplyDelta(ctx context.Context, productID uuid.UUID, delta decimal.Decimal) (bool, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Stock, int64, error)
}

// StockMovementRepository defines the interface for the append-only movement log
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	CreateBatch(ctx context.Context, movements []entity.StockMovement) error
	List(ctx context.Context, params *MovementFilterParams) ([]entity.StockMovement, int64, error)
	// SumByProductID returns the sum of signed movement quantities for a product
	SumByProductID(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error)
}

// MovementFilterParams contains filtering parameters for movement queries
type MovementFilterParams struct {
	Pagination   *pagination.PaginationParams
	ProductID    *uuid.UUID
	MovementType *enum.MovementType
	StartDate    *time.Time
	EndDate      *time.Time
}
