package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukahub/duka-api/internal/domain/entity"
	domainRepo "github.com/dukahub/duka-api/internal/domain/repository"
	"github.com/dukahub/duka-api/pkg/pagination"
)

type stockRepository struct {
	db *gorm.DB
}

// NewStockRepository creates a new stock repository
func NewStockRepository(db *gorm.DB) domainRepo.StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) Create(ctx context.Context, stock *entity.Stock) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(stock).Error
}

func (r *stockRepository) GetByProductID(ctx context.Context, productID uuid.UUID) (*entity.Stock, error) {
	var stock entity.Stock
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		First(&stock, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &stock, err
}

// ApplyDelta adjusts stock by a signed delta in a single conditional UPDATE.
// The WHERE clause guards against going negative, so concurrent writers
// cannot oversell: the row is only changed when quantity + delta >= 0.
func (r *stockRepository) ApplyDelta(ctx context.Context, productID uuid.UUID, delta decimal.Decimal) (bool, error) {
	result := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Stock{}).
		Scopes(ShopScope(ctx)).
		Where("product_id = ? AND quantity + ? >= 0", productID, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *stockRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Stock, int64, error) {
	var stocks []entity.Stock
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Stock{}).
		Scopes(ShopScope(ctx))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Preload("Product").
		Offset(params.Offset()).Limit(params.PerPage).
		Order("updated_at DESC").
		Find(&stocks).Error

	return stocks, total, err
}

type stockMovementRepository struct {
	db *gorm.DB
}

// NewStockMovementRepository creates a new stock movement repository
func NewStockMovementRepository(db *gorm.DB) domainRepo.StockMovementRepository {
	return &stockMovementRepository{db: db}
}

func (r *stockMovementRepository) Create(ctx context.Context, movement *entity.StockMovement) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(movement).Error
}

func (r *stockMovementRepository) CreateBatch(ctx context.Context, movements []entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(&movements).Error
}

func (r *stockMovementRepository) List(ctx context.Context, params *domainRepo.MovementFilterParams) ([]entity.StockMovement, int64, error) {
	var movements []entity.StockMovement
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.StockMovement{}).
		Scopes(ShopScope(ctx))

	if params.ProductID != nil {
		query = query.Where("product_id = ?", *params.ProductID)
	}
	if params.MovementType != nil {
		query = query.Where("movement_type = ?", *params.MovementType)
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Preload("Product").
		Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&movements).Error

	return movements, total, err
}

func (r *stockMovementRepository) SumByProductID(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.StockMovement{}).
		Scopes(ShopScope(ctx)).
		Where("product_id = ?", productID).
		Select("SUM(quantity)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}
