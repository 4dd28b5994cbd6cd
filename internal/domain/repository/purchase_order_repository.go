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

// PurchaseOrderRepository defines the interface for purchase order operations
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error)
	// GetWithDetails loads the purchase order with its items and supplier
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error)
	GetByPONumber(ctx context.Context, poNumber string) (*entity.PurchaseOrder, error)
	// LastPONumber returns the greatest PO number with the given prefix,
	// or empty string if none exists.
	LastPONumber(ctx context.Context, prefix string) (string, error)
	Update(ctx context.Context, po *entity.PurchaseOrder) error
	// UpdateStatus transitions the order from one status to another in a
	// single compare-and-swap update. Returns false when the order no longer
	// holds the expected status.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to enum.PurchaseOrderStatus) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *PurchaseOrderFilterParams) ([]entity.PurchaseOrder, int64, error)
}

// PurchaseOrderFilterParams contains filtering parameters for purchase order queries
type PurchaseOrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.PurchaseOrderStatus
	SupplierID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// PurchaseOrderItemRepository defines the interface for PO line item operations
type PurchaseOrderItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.PurchaseOrderItem) error
	GetByPurchaseOrderID(ctx context.Context, poID uuid.UUID) ([]entity.PurchaseOrderItem, error)
	// AccumulateReceived adds qty to received_quantity in a single guarded
	// update that refuses to exceed the ordered quantity. Returns false when
	// no row qualified, so concurrent receipts cannot over-receive.
	AccumulateReceived(ctx context.Context, id uuid.UUID, qty decimal.Decimal) (bool, error)
}
