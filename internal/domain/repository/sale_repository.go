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

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	// GetWithDetails loads the sale with its items, payments and customer
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*entity.Sale, error)
	// LastInvoiceNumber returns the greatest invoice number with the given
	// prefix, or empty string if none exists.
	LastInvoiceNumber(ctx context.Context, prefix string) (string, error)
	Update(ctx context.Context, sale *entity.Sale) error
	// ApplyPaymentAmount increments paid_amount by amount in a single guarded
	// update that refuses to exceed the sale total. Returns false when no row
	// qualified, so concurrent payments cannot overpay.
	ApplyPaymentAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// SumTotals aggregates total, paid and outstanding amounts over the
	// sales matching the filter, for listing metadata.
	SumTotals(ctx context.Context, params *SaleFilterParams) (total, paid decimal.Decimal, err error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	PaymentStatus *enum.PaymentStatus
	CustomerID    *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
	SortBy        string
	SortOrder     string
}

// SaleItemRepository defines the interface for sale line item operations
type SaleItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.SaleItem) error
	GetBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.SaleItem, error)
}

// PaymentRepository defines the interface for the payment ledger.
// Payments are append-only; there is no update or delete.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	GetBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.Payment, error)
	List(ctx context.Context, params *PaymentFilterParams) ([]entity.Payment, int64, error)
	// SumBySaleID returns the sum of payment amounts recorded against a sale
	SumBySaleID(ctx context.Context, saleID uuid.UUID) (decimal.Decimal, error)
}

// PaymentFilterParams contains filtering parameters for payment queries
type PaymentFilterParams struct {
	Pagination    *pagination.PaginationParams
	SaleID        *uuid.UUID
	PaymentMethod *enum.PaymentMethod
	StartDate     *time.Time
	EndDate       *time.Time
}
