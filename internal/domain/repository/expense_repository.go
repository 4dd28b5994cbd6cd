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

// ExpenseRepository defines the interface for expense data operations
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Expense, error)
	// LastExpenseNumber returns the greatest expense number with the given
	// prefix, or empty string if none exists.
	LastExpenseNumber(ctx context.Context, prefix string) (string, error)
	Update(ctx context.Context, expense *entity.Expense) error
	// ApplyPaymentAmount increments paid_amount by amount in a single guarded
	// update that skips cancelled expenses and refuses to exceed the total.
	// Returns false when no row qualified.
	ApplyPaymentAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error)
	// MarkCancelled sets the status to CANCELLED only while the expense is
	// uncancelled and unpaid. Returns false when no row qualified.
	MarkCancelled(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ExpenseFilterParams) ([]entity.Expense, int64, error)
	// GetRecurringDue returns active recurring expenses whose recurring day
	// matches the given day of month.
	GetRecurringDue(ctx context.Context, day int) ([]entity.Expense, error)
}

// ExpenseFilterParams contains filtering parameters for expense queries
type ExpenseFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.ExpenseStatus
	CategoryID *uuid.UUID
	SupplierID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// ExpenseCategoryRepository defines the interface for expense category operations
type ExpenseCategoryRepository interface {
	Create(ctx context.Context, category *entity.ExpenseCategory) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ExpenseCategory, error)
	Update(ctx context.Context, category *entity.ExpenseCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.ExpenseCategory, int64, error)
}

// ExpensePaymentRepository defines the interface for the expense payment ledger.
// Append-only, like sale payments.
type ExpensePaymentRepository interface {
	Create(ctx context.Context, payment *entity.ExpensePayment) error
	GetByExpenseID(ctx context.Context, expenseID uuid.UUID) ([]entity.ExpensePayment, error)
	// SumByExpenseID returns the sum of payment amounts recorded against an expense
	SumByExpenseID(ctx context.Context, expenseID uuid.UUID) (decimal.Decimal, error)
}
