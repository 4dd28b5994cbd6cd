package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahub/duka-api/internal/domain/entity"
	domainRepo "github.com/dukahub/duka-api/internal/domain/repository"
	"github.com/dukahub/duka-api/pkg/pagination"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		Preload("Category").Preload("Unit").
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var products []entity.Product
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		Where("id IN ?", ids).
		Find(&products).Error
	return products, err
}

func (r *productRepository) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	var product entity.Product
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		First(&product, "sku = ?", sku).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	var product entity.Product
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		First(&product, "barcode = ?", barcode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Product{}).
		Scopes(ShopScope(ctx))

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR sku ILIKE ? OR barcode ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}
	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if params.UnitID != nil {
		query = query.Where("unit_id = ?", *params.UnitID)
	}
	if params.IsActive != nil {
		query = query.Where("is_active = ?", *params.IsActive)
	}
	if params.LowStock {
		query = query.Where(
			"id IN (SELECT product_id FROM stocks WHERE stocks.quantity <= products.minimum_stock)")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()

	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = "name"
	}
	sortOrder := params.SortOrder
	if sortOrder != "desc" {
		sortOrder = "asc"
	}

	err := query.Preload("Category").Preload("Unit").
		Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Product{}).
		Scopes(ShopScope(ctx)).
		Where("is_active = ?", true).
		Where("id IN (SELECT product_id FROM stocks WHERE stocks.quantity <= products.minimum_stock)").
		Order("name ASC").
		Find(&products).Error
	return products, err
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) domainRepo.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		Delete(&entity.Category{}, "id = ?", id).Error
}

func (r *categoryRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Category, int64, error) {
	var categories []entity.Category
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Category{}).
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

type unitRepository struct {
	db *gorm.DB
}

// NewUnitRepository creates a new unit repository
func NewUnitRepository(db *gorm.DB) domainRepo.UnitRepository {
	return &unitRepository{db: db}
}

func (r *unitRepository) Create(ctx context.Context, unit *entity.Unit) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(unit).Error
}

func (r *unitRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Unit, error) {
	var unit entity.Unit
	err := dbFromContext(ctx, r.db).WithContext(ctx).First(&unit, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &unit, err
}

func (r *unitRepository) Update(ctx context.Context, unit *entity.Unit) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(unit).Error
}

func (r *unitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Delete(&entity.Unit{}, "id = ?", id).Error
}

func (r *unitRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Unit, int64, error) {
	var units []entity.Unit
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Unit{})

	if search != "" {
		query = query.Where("name ILIKE ? OR symbol ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&units).Error

	return units, total, err
}
