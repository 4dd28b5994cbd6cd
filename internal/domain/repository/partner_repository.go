package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dukahub/duka-api/internal/domain/entity"
	"github.com/dukahub/duka-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string, includeInactive bool) ([]entity.Customer, int64, error)
	// HasSales reports whether any sale references the customer
	HasSales(ctx context.Context, id uuid.UUID) (bool, error)
}

// SupplierRepository defines the interface for supplier data operations
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string, includeInactive bool) ([]entity.Supplier, int64, error)
	// HasPurchaseOrders reports whether any purchase order references the supplier
	HasPurchaseOrders(ctx context.Context, id uuid.UUID) (bool, error)
}
