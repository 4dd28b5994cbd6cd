package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukahub/duka-api/internal/domain/entity"
	"github.com/dukahub/duka-api/internal/domain/enum"
	"github.com/dukahub/duka-api/pkg/pagination"
)

// SalesReturnRepository defines the interface for sales return operations
type SalesReturnRepository interface {
	Create(ctx context.Context, ret *entity.SalesReturn) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesReturn, error)
	// GetWithDetails loads the return with its items and the original sale
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.SalesReturn, error)
	Update(ctx context.Context, ret *entity.SalesReturn) error
	// UpdateStatus transitions the return from one status to another in a
	// single compare-and-swap update. Returns false when the return no longer
	// holds the expected status.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to enum.ReturnStatus) (bool, error)
	List(ctx context.Context, params *pagination.PaginationParams, saleID *uuid.UUID) ([]entity.SalesReturn, int64, error)
	// SumReturnedBySaleItem returns the total quantity already returned per
	// sale item across completed and pending returns of a sale.
	SumReturnedBySaleItem(ctx context.Context, saleID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)
}
