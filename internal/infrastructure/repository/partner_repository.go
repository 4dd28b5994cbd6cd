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

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	var customer entity.Customer
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		First(&customer, "phone = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		Delete(&entity.Customer{}, "id = ?", id).Error
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string, includeInactive bool) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Customer{}).
		Scopes(ShopScope(ctx))

	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&customers).Error

	return customers, total, err
}

func (r *customerRepository) HasSales(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Sale{}).
		Where("customer_id = ?", id).
		Count(&count).Error
	return count > 0, err
}

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *gorm.DB) domainRepo.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(supplier).Error
}

func (r *supplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		First(&supplier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &supplier, err
}

func (r *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(supplier).Error
}

func (r *supplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ShopScope(ctx)).
		Delete(&entity.Supplier{}, "id = ?", id).Error
}

func (r *supplierRepository) List(ctx context.Context, params *pagination.PaginationParams, search string, includeInactive bool) ([]entity.Supplier, int64, error) {
	var suppliers []entity.Supplier
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Supplier{}).
		Scopes(ShopScope(ctx))

	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if search != "" {
		query = query.Where("name ILIKE ? OR contact_person ILIKE ? OR phone ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&suppliers).Error

	return suppliers, total, err
}

func (r *supplierRepository) HasPurchaseOrders(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.PurchaseOrder{}).
		Where("supplier_id = ?", id).
		Count(&count).Error
	return count > 0, err
}
