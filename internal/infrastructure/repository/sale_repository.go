package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukahub/duka-api/internal/domain/entity"
	domainRepo "github.com/dukahub/duka-api/internal/domain/repository"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(sale).Error
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		Preload("Items").Preload("Items.Product").
		Preload("Payments").Preload("Customer").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*entity.Sale, error) {
	var sale entity.Sale
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		First(&sale, "invoice_number = ?", invoiceNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) LastInvoiceNumber(ctx context.Context, prefix string) (string, error) {
	var sale entity.Sale
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		Where("invoice_number LIKE ?", prefix+"%").
		Order("invoice_number DESC").
		First(&sale).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return sale.InvoiceNumber, err
}

func (r *saleRepository) Update(ctx context.Context, sale *entity.Sale) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(sale).Error
}

// ApplyPaymentAmount increments paid_amount with a guarded UPDATE, the same
// shape as stockRepository.ApplyDelta: the WHERE clause refuses any increment
// that would push paid_amount past total, so racing payments cannot overpay.
func (r *saleRepository) ApplyPaymentAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	result := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Sale{}).
		Scopes(ShopScope(ctx)).
		Where("id = ? AND paid_amount + ? <= total", id, amount).
		Update("paid_amount", gorm.Expr("paid_amount + ?", amount))

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *saleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		Delete(&entity.Sale{}, "id = ?", id).Error
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.filtered(ctx, params)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()

	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = "sale_date"
	}
	sortOrder := params.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	err := query.Preload("Customer").
		Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) SumTotals(ctx context.Context, params *domainRepo.SaleFilterParams) (decimal.Decimal, decimal.Decimal, error) {
	var row struct {
		Total decimal.NullDecimal
		Paid  decimal.NullDecimal
	}
	err := r.filtered(ctx, params).
		Select("SUM(total) AS total, SUM(paid_amount) AS paid").
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	total, paid := decimal.Zero, decimal.Zero
	if row.Total.Valid {
		total = row.Total.Decimal
	}
	if row.Paid.Valid {
		paid = row.Paid.Decimal
	}
	return total, paid, nil
}

func (r *saleRepository) filtered(ctx context.Context, params *domainRepo.SaleFilterParams) *gorm.DB {
	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Sale{}).
		Scopes(ShopScope(ctx))

	if params.Search != "" {
		query = query.Where("invoice_number ILIKE ?", "%"+params.Search+"%")
	}
	if params.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *params.PaymentStatus)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.StartDate != nil {
		query = query.Where("sale_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("sale_date <= ?", *params.EndDate)
	}
	return query
}

type saleItemRepository struct {
	db *gorm.DB
}

// NewSaleItemRepository creates a new sale item repository
func NewSaleItemRepository(db *gorm.DB) domainRepo.SaleItemRepository {
	return &saleItemRepository{db: db}
}

func (r *saleItemRepository) CreateBatch(ctx context.Context, items []entity.SaleItem) error {
	if len(items) == 0 {
		return nil
	}
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(&items).Error
}

func (r *saleItemRepository) GetBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.SaleItem, error) {
	var items []entity.SaleItem
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Preload("Product").
		Where("sale_id = ?", saleID).
		Find(&items).Error
	return items, err
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) GetBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		Where("sale_id = ?", saleID).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) List(ctx context.Context, params *domainRepo.PaymentFilterParams) ([]entity.Payment, int64, error) {
	var payments []entity.Payment
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Payment{}).
		Scopes(ShopScope(ctx))

	if params.SaleID != nil {
		query = query.Where("sale_id = ?", *params.SaleID)
	}
	if params.PaymentMethod != nil {
		query = query.Where("payment_method = ?", *params.PaymentMethod)
	}
	if params.StartDate != nil {
		query = query.Where("payment_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("payment_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("payment_date DESC").
		Find(&payments).Error

	return payments, total, err
}

func (r *paymentRepository) SumBySaleID(ctx context.Context, saleID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Payment{}).
		Scopes(ShopScope(ctx)).
		Where("sale_id = ?", saleID).
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
