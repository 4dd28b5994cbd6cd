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
)

type purchaseOrderRepository struct {
	db *gorm.DB
}

// NewPurchaseOrderRepository creates a new purchase order repository
func NewPurchaseOrderRepository(db *gorm.DB) domainRepo.PurchaseOrderRepository {
	return &purchaseOrderRepository{db: db}
}

func (r *purchaseOrderRepository) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(po).Error
}

func (r *purchaseOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		First(&po, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &po, err
}

func (r *purchaseOrderRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		Preload("Items").Preload("Items.Product").Preload("Supplier").
		First(&po, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &po, err
}

func (r *purchaseOrderRepository) GetByPONumber(ctx context.Context, poNumber string) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		First(&po, "po_number = ?", poNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &po, err
}

func (r *purchaseOrderRepository) LastPONumber(ctx context.Context, prefix string) (string, error) {
	var po entity.PurchaseOrder
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		Where("po_number LIKE ?", prefix+"%").
		Order("po_number DESC").
		First(&po).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return po.PONumber, err
}

func (r *purchaseOrderRepository) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(po).Error
}

// UpdateStatus is a compare-and-swap: the row only changes while it still
// holds the expected status, so racing transitions lose cleanly.
func (r *purchaseOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enum.PurchaseOrderStatus) (bool, error) {
	result := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.PurchaseOrder{}).
		Scopes(ShopScope(ctx)).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *purchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		Delete(&entity.PurchaseOrder{}, "id = ?", id).Error
}

func (r *purchaseOrderRepository) List(ctx context.Context, params *domainRepo.PurchaseOrderFilterParams) ([]entity.PurchaseOrder, int64, error) {
	var orders []entity.PurchaseOrder
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.PurchaseOrder{}).
		Scopes(ShopScope(ctx))

	if params.Search != "" {
		query = query.Where("po_number ILIKE ?", "%"+params.Search+"%")
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.SupplierID != nil {
		query = query.Where("supplier_id = ?", *params.SupplierID)
	}
	if params.StartDate != nil {
		query = query.Where("order_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("order_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()

	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = "order_date"
	}
	sortOrder := params.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	err := query.Preload("Supplier").
		Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&orders).Error

	return orders, total, err
}

type purchaseOrderItemRepository struct {
	db *gorm.DB
}

// NewPurchaseOrderItemRepository creates a new purchase order item repository
func NewPurchaseOrderItemRepository(db *gorm.DB) domainRepo.PurchaseOrderItemRepository {
	return &purchaseOrderItemRepository{db: db}
}

func (r *purchaseOrderItemRepository) CreateBatch(ctx context.Context, items []entity.PurchaseOrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(&items).Error
}

func (r *purchaseOrderItemRepository) GetByPurchaseOrderID(ctx context.Context, poID uuid.UUID) ([]entity.PurchaseOrderItem, error) {
	var items []entity.PurchaseOrderItem
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Preload("Product").
		Where("purchase_order_id = ?", poID).
		Find(&items).Error
	return items, err
}

// AccumulateReceived adds to received_quantity with a guarded UPDATE. The
// WHERE clause refuses any increment past the ordered quantity, so racing
// receipts cannot over-receive a line.
func (r *purchaseOrderItemRepository) AccumulateReceived(ctx context.Context, id uuid.UUID, qty decimal.Decimal) (bool, error) {
	result := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.PurchaseOrderItem{}).
		Where("id = ? AND received_quantity + ? <= quantity", id, qty).
		Update("received_quantity", gorm.Expr("received_quantity + ?", qty))

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
