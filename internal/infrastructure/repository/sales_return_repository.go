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

type salesReturnRepository struct {
	db *gorm.DB
}

// NewSalesReturnRepository creates a new sales return repository
func NewSalesReturnRepository(db *gorm.DB) domainRepo.SalesReturnRepository {
	return &salesReturnRepository{db: db}
}

func (r *salesReturnRepository) Create(ctx context.Context, ret *entity.SalesReturn) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(ret).Error
}

func (r *salesReturnRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesReturn, error) {
	var ret entity.SalesReturn
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		First(&ret, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ret, err
}

func (r *salesReturnRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.SalesReturn, error) {
	var ret entity.SalesReturn
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		Preload("Items").Preload("Items.SaleItem").Preload("Sale").
		First(&ret, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ret, err
}

func (r *salesReturnRepository) Update(ctx context.Context, ret *entity.SalesReturn) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(ret).Error
}

// UpdateStatus is a compare-and-swap: the row only changes while it still
// holds the expected status. Completion claims the APPROVED status this way,
// so a return can never restore stock twice.
func (r *salesReturnRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enum.ReturnStatus) (bool, error) {
	result := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.SalesReturn{}).
		Scopes(ShopScope(ctx)).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *salesReturnRepository) List(ctx context.Context, params *pagination.PaginationParams, saleID *uuid.UUID) ([]entity.SalesReturn, int64, error) {
	var returns []entity.SalesReturn
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.SalesReturn{}).
		Scopes(ShopScope(ctx))

	if saleID != nil {
		query = query.Where("sale_id = ?", *saleID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Preload("Sale").
		Offset(params.Offset()).Limit(params.PerPage).
		Order("return_date DESC").
		Find(&returns).Error

	return returns, total, err
}

func (r *salesReturnRepository) SumReturnedBySaleItem(ctx context.Context, saleID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	var rows []struct {
		SaleItemID uuid.UUID
		Returned   decimal.Decimal
	}
	err := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.SalesReturnItem{}).
		Select("sales_return_items.sale_item_id, SUM(sales_return_items.quantity) AS returned").
		Joins("JOIN sales_returns ON sales_returns.id = sales_return_items.sales_return_id").
		Where("sales_returns.sale_id = ? AND sales_returns.status <> ?", saleID, enum.ReturnStatusRejected).
		Group("sales_return_items.sale_item_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, row := range rows {
		result[row.SaleItemID] = row.Returned
	}
	return result, nil
}
