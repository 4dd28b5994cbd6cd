package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukahub/duka-api/internal/domain/entity"
	"github.com/dukahub/duka-api/internal/domain/enum"
	domainRepo "github.com/dukahub/duka-api/internal/domain/repository"
	"github.com/dukahub/duka-api/pkg/pagination"
)

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) domainRepo.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	var expense entity.Expense
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		First(&expense, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &expense, err
}

func (r *expenseRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	var expense entity.Expense
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		Preload("Category").Preload("Supplier").Preload("Payments").
		First(&expense, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &expense, err
}

func (r *expenseRepository) LastExpenseNumber(ctx context.Context, prefix string) (string, error) {
	var expense entity.Expense
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		Where("expense_number LIKE ?", prefix+"%").
		Order("expense_number DESC").
		First(&expense).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return expense.ExpenseNumber, err
}

func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(expense).Error
}

// ApplyPaymentAmount increments paid_amount with a guarded UPDATE. The WHERE
// clause skips cancelled expenses and refuses any increment past total_amount,
// so racing payments cannot overpay.
func (r *expenseRepository) ApplyPaymentAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	result := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Expense{}).
		Scopes(ShopScope(ctx)).
		Where("id = ? AND status <> ? AND paid_amount + ? <= total_amount",
			id, enum.ExpenseStatusCancelled, amount).
		Update("paid_amount", gorm.Expr("paid_amount + ?", amount))

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkCancelled flips the status to CANCELLED only while the expense is still
// uncancelled and unpaid, so a racing payment cannot be silently orphaned.
func (r *expenseRepository) MarkCancelled(ctx context.Context, id uuid.UUID) (bool, error) {
	result := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Expense{}).
		Scopes(ShopScope(ctx)).
		Where("id = ? AND status <> ? AND paid_amount = 0", id, enum.ExpenseStatusCancelled).
		Update("status", enum.ExpenseStatusCancelled)

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		Delete(&entity.Expense{}, "id = ?", id).Error
}

func (r *expenseRepository) List(ctx context.Context, params *domainRepo.ExpenseFilterParams) ([]entity.Expense, int64, error) {
	var expenses []entity.Expense
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Expense{}).
		Scopes(ShopScope(ctx))

	if params.Search != "" {
		query = query.Where("expense_number ILIKE ? OR description ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if params.SupplierID != nil {
		query = query.Where("supplier_id = ?", *params.SupplierID)
	}
	if params.StartDate != nil {
		query = query.Where("expense_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("expense_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Preload("Category").
		Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("expense_date DESC").
		Find(&expenses).Error

	return expenses, total, err
}

func (r *expenseRepository) GetRecurringDue(ctx context.Context, day int) ([]entity.Expense, error) {
	var expenses []entity.Expense
	err := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Expense{}).
		Scopes(ShopScope(ctx)).
		Where("is_recurring = ? AND recurring_day = ?", true, day).
		Find(&expenses).Error
	return expenses, err
}

type expenseCategoryRepository struct {
	db *gorm.DB
}

// NewExpenseCategoryRepository creates a new expense category repository
func NewExpenseCategoryRepository(db *gorm.DB) domainRepo.ExpenseCategoryRepository {
	return &expenseCategoryRepository{db: db}
}

func (r *expenseCategoryRepository) Create(ctx context.Context, category *entity.ExpenseCategory) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(category).Error
}

func (r *expenseCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ExpenseCategory, error) {
	var category entity.ExpenseCategory
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *expenseCategoryRepository) Update(ctx context.Context, category *entity.ExpenseCategory) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(category).Error
}

func (r *expenseCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		Delete(&entity.ExpenseCategory{}, "id = ?", id).Error
}

func (r *expenseCategoryRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.ExpenseCategory, int64, error) {
	var categories []entity.ExpenseCategory
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.ExpenseCategory{}).
		Scopes(ShopScope(ctx))

	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&categories).Error

	return categories, total, err
}

type expensePaymentRepository struct {
	db *gorm.DB
}

// NewExpensePaymentRepository creates a new expense payment repository
func NewExpensePaymentRepository(db *gorm.DB) domainRepo.ExpensePaymentRepository {
	return &expensePaymentRepository{db: db}
}

func (r *expensePaymentRepository) Create(ctx context.Context, payment *entity.ExpensePayment) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(payment).Error
}

func (r *expensePaymentRepository) GetByExpenseID(ctx context.Context, expenseID uuid.UUID) ([]entity.ExpensePayment, error) {
	var payments []entity.ExpensePayment
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		Where("expense_id = ?", expenseID).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *expensePaymentRepository) SumByExpenseID(ctx context.Context, expenseID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.ExpensePayment{}).
		Scopes(ShopScope(ctx)).
		Where("expense_id = ?", expenseID).
		Select("SUM(amount)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}
