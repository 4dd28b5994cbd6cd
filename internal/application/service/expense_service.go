package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukahub/duka-api/internal/config"
	"github.com/dukahub/duka-api/internal/domain/entity"
	"github.com/dukahub/duka-api/internal/domain/enum"
	"github.com/dukahub/duka-api/internal/domain/repository"
	infraRepo "github.com/dukahub/duka-api/internal/infrastructure/repository"
	"github.com/dukahub/duka-api/pkg/apperror"
	"github.com/dukahub/duka-api/pkg/pagination"
	"github.com/dukahub/duka-api/pkg/sequence"
)

// ExpenseService tracks operational costs and payments against them.
// Expense payments mirror the sale payment ledger: append-only records with
// the running status derived from the amounts.
type ExpenseService struct {
	expenseRepo  repository.ExpenseRepository
	categoryRepo repository.ExpenseCategoryRepository
	paymentRepo  repository.ExpensePaymentRepository
	supplierRepo repository.SupplierRepository
	shopRepo     repository.ShopRepository
	transactor   repository.Transactor
	numbers      *sequence.Generator
	cfg          *config.SalesConfig
}

// NewExpenseService creates a new expense service
func NewExpenseService(
	expenseRepo repository.ExpenseRepository,
	categoryRepo repository.ExpenseCategoryRepository,
	paymentRepo repository.ExpensePaymentRepository,
	supplierRepo repository.SupplierRepository,
	shopRepo repository.ShopRepository,
	transactor repository.Transactor,
	numbers *sequence.Generator,
	cfg *config.SalesConfig,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		paymentRepo:  paymentRepo,
		supplierRepo: supplierRepo,
		shopRepo:     shopRepo,
		transactor:   transactor,
		numbers:      numbers,
		cfg:          cfg,
	}
}

// CreateExpenseInput represents the create expense input
type CreateExpenseInput struct {
	CategoryID   *uuid.UUID
	SupplierID   *uuid.UUID
	CreatedByID  *uuid.UUID
	Description  string
	Amount       decimal.Decimal
	TaxAmount    decimal.Decimal
	ExpenseDate  time.Time
	IsRecurring  bool
	RecurringDay *int
	Notes        string
}

// CreateExpense records a new expense. TotalAmount is fixed here as
// Amount + TaxAmount and never recomputed.
func (s *ExpenseService) CreateExpense(ctx context.Context, input *CreateExpenseInput) (*entity.Expense, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Shop context required")
	}
	if input.Description == "" {
		return nil, apperror.NewBadRequestError("Expense description is required")
	}
	if !input.Amount.IsPositive() {
		return nil, apperror.NewInvalidQuantityError("Expense amount must be positive")
	}
	if input.TaxAmount.IsNegative() {
		return nil, apperror.NewBadRequestError("Tax amount cannot be negative")
	}
	if input.IsRecurring {
		if input.RecurringDay == nil || *input.RecurringDay < 1 || *input.RecurringDay > 28 {
			return nil, apperror.NewBadRequestError("Recurring day must be between 1 and 28")
		}
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Expense category")
		}
	}
	if input.SupplierID != nil {
		supplier, err := s.supplierRepo.GetByID(ctx, *input.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, apperror.NewNotFoundError("Supplier")
		}
	}

	expenseDate := input.ExpenseDate
	if expenseDate.IsZero() {
		expenseDate = time.Now()
	}

	prefix := s.expensePrefix(ctx, shopID)
	total := input.Amount.Add(input.TaxAmount).Round(2)

	for attempt := 0; attempt < numberAttempts; attempt++ {
		last, err := s.expenseRepo.LastExpenseNumber(ctx, s.numbers.SearchPrefix(prefix))
		if err != nil {
			return nil, err
		}

		expense := &entity.Expense{
			ShopID:        shopID,
			CategoryID:    input.CategoryID,
			SupplierID:    input.SupplierID,
			CreatedByID:   input.CreatedByID,
			ExpenseNumber: s.numbers.Next(prefix, last),
			Description:   input.Description,
			Amount:        input.Amount,
			TaxAmount:     input.TaxAmount,
			TotalAmount:   total,
			PaidAmount:    decimal.Zero,
			Status:        enum.ExpenseStatusPending,
			ExpenseDate:   expenseDate,
			IsRecurring:   input.IsRecurring,
			RecurringDay:  input.RecurringDay,
			Notes:         input.Notes,
		}

		err = s.expenseRepo.Create(ctx, expense)
		if err == nil {
			return expense, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return nil, err
	}
	return nil, apperror.NewSequenceExhaustedError("expense")
}

// ApplyPayment records a payment against an expense. Cancelled expenses
// reject payments; the paid amount is advanced by a guarded increment that
// refuses to pass the total, so racing payments cannot overpay.
func (s *ExpenseService) ApplyPayment(ctx context.Context, expenseID uuid.UUID, input *PaymentInput) (*entity.ExpensePayment, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Shop context required")
	}
	if !input.Amount.IsPositive() {
		return nil, apperror.NewInvalidQuantityError("Payment amount must be positive")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown payment method")
	}

	paymentDate := input.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	var payment *entity.ExpensePayment
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		expense, err := s.expenseRepo.GetByID(ctx, expenseID)
		if err != nil {
			return err
		}
		if expense == nil {
			return apperror.NewNotFoundError("Expense")
		}
		if expense.Status == enum.ExpenseStatusCancelled {
			return apperror.NewInvalidStateError("Cannot record a payment against a cancelled expense")
		}

		balance := expense.BalanceDue()
		if input.Amount.GreaterThan(balance) {
			return apperror.NewOverPaymentError(input.Amount.String(), balance.String())
		}

		applied, err := s.expenseRepo.ApplyPaymentAmount(ctx, expense.ID, input.Amount)
		if err != nil {
			return err
		}
		if !applied {
			return apperror.NewConcurrentModificationError("Expense changed, retry the payment")
		}

		payment = &entity.ExpensePayment{
			ShopID:          shopID,
			ExpenseID:       expense.ID,
			CreatedByID:     input.CreatedByID,
			Amount:          input.Amount,
			PaymentDate:     paymentDate,
			PaymentMethod:   input.PaymentMethod,
			ReferenceNumber: input.ReferenceNumber,
			Notes:           input.Notes,
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}

		fresh, err := s.expenseRepo.GetByID(ctx, expense.ID)
		if err != nil {
			return err
		}
		fresh.Status = enum.DeriveExpenseStatus(fresh.TotalAmount, fresh.PaidAmount)
		return s.expenseRepo.Update(ctx, fresh)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// CancelExpense marks an expense cancelled. Expenses with recorded payments
// cannot be cancelled; reverse the payments first.
func (s *ExpenseService) CancelExpense(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}
	if expense.Status == enum.ExpenseStatusCancelled {
		return nil, apperror.NewInvalidStateError("Expense is already cancelled")
	}
	if expense.PaidAmount.IsPositive() {
		return nil, apperror.NewInvalidStateError("Cannot cancel an expense with recorded payments")
	}

	cancelled, err := s.expenseRepo.MarkCancelled(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cancelled {
		// The checks above passed, so a payment or cancellation landed
		// between the read and the update.
		return nil, apperror.NewConcurrentModificationError("Expense changed, retry the cancellation")
	}
	expense.Status = enum.ExpenseStatusCancelled
	return expense, nil
}

// GetExpense returns an expense with category, supplier and payments
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}
	return expense, nil
}

// ListExpenses returns expenses matching the filter
func (s *ExpenseService) ListExpenses(ctx context.Context, params *repository.ExpenseFilterParams) ([]entity.Expense, int64, error) {
	return s.expenseRepo.List(ctx, params)
}

// CreateCategory creates an expense category
func (s *ExpenseService) CreateCategory(ctx context.Context, name, description string) (*entity.ExpenseCategory, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Shop context required")
	}
	if name == "" {
		return nil, apperror.NewBadRequestError("Category name is required")
	}

	category := &entity.ExpenseCategory{
		ShopID:      shopID,
		Name:        name,
		Description: description,
		IsActive:    true,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns expense categories for the current shop
func (s *ExpenseService) ListCategories(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.ExpenseCategory, int64, error) {
	return s.categoryRepo.List(ctx, params, search)
}

func (s *ExpenseService) expensePrefix(ctx context.Context, shopID uuid.UUID) string {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err == nil && shop != nil && shop.Settings.ExpensePrefix != "" {
		return shop.Settings.ExpensePrefix
	}
	return s.cfg.ExpensePrefix
}
