package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukahub/duka-api/internal/domain/entity"
	"github.com/dukahub/duka-api/internal/domain/enum"
	domainRepo "github.com/dukahub/duka-api/internal/domain/repository"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetSummary(ctx context.Context) (*domainRepo.DashboardSummary, error) {
	db := dbFromContext(ctx, r.db).WithContext(ctx)
	summary := &domainRepo.DashboardSummary{}

	var sales struct {
		Total decimal.NullDecimal
		Paid  decimal.NullDecimal
		Count int64
	}
	err := db.Model(&entity.Sale{}).
		Scopes(ShopScope(ctx)).
		Select("SUM(total) AS total, SUM(paid_amount) AS paid, COUNT(*) AS count").
		Scan(&sales).Error
	if err != nil {
		return nil, err
	}
	if sales.Total.Valid {
		summary.TotalRevenue = sales.Total.Decimal
		summary.TotalOutstanding = sales.Total.Decimal.Sub(sales.Paid.Decimal)
	}
	summary.SalesCount = sales.Count

	var expenses decimal.NullDecimal
	err = db.Model(&entity.Expense{}).
		Scopes(ShopScope(ctx)).
		Where("status <> ?", enum.ExpenseStatusCancelled).
		Select("SUM(total_amount)").
		Scan(&expenses).Error
	if err != nil {
		return nil, err
	}
	if expenses.Valid {
		summary.TotalExpenses = expenses.Decimal
	}

	var stockValue decimal.NullDecimal
	err = db.Model(&entity.Stock{}).
		Joins("JOIN products ON products.id = stocks.product_id").
		Scopes(func(db *gorm.DB) *gorm.DB {
			if shopID, ok := GetShopID(ctx); ok {
				return db.Where("stocks.shop_id = ?", shopID)
			}
			return db.Where("1 = 0")
		}).
		Where("products.is_active = ?", true).
		Select("SUM(stocks.quantity * products.cost_price)").
		Scan(&stockValue).Error
	if err != nil {
		return nil, err
	}
	if stockValue.Valid {
		summary.StockValue = stockValue.Decimal
	}

	if err := db.Model(&entity.Customer{}).Scopes(ShopScope(ctx)).
		Where("is_active = ?", true).Count(&summary.CustomerCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entity.Product{}).Scopes(ShopScope(ctx)).
		Where("is_active = ?", true).Count(&summary.ProductCount).Error; err != nil {
		return nil, err
	}

	err = db.Model(&entity.Product{}).Scopes(ShopScope(ctx)).
		Where("is_active = ?", true).
		Where("id IN (SELECT product_id FROM stocks WHERE stocks.quantity <= products.minimum_stock)").
		Count(&summary.LowStockCount).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&entity.PurchaseOrder{}).Scopes(ShopScope(ctx)).
		Where("status IN ?", []enum.PurchaseOrderStatus{enum.POStatusPending, enum.POStatusOrdered}).
		Count(&summary.PendingOrdersCount).Error
	if err != nil {
		return nil, err
	}

	return summary, nil
}

func (r *analyticsRepository) GetTopProducts(ctx context.Context, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult
	err := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.SaleItem{}).
		Select(`products.id AS product_id,
			products.name AS product_name,
			products.sku AS sku,
			SUM(sale_items.quantity) AS quantity_sold,
			SUM(sale_items.quantity * sale_items.unit_price * (1 - sale_items.discount_percentage / 100)) AS revenue`).
		Joins("JOIN products ON products.id = sale_items.product_id").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Scopes(func(db *gorm.DB) *gorm.DB {
			if shopID, ok := GetShopID(ctx); ok {
				return db.Where("sales.shop_id = ?", shopID)
			}
			return db.Where("1 = 0")
		}).
		Group("products.id, products.name, products.sku").
		Order("revenue DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) GetTopCustomers(ctx context.Context, limit int) ([]domainRepo.TopCustomerResult, error) {
	var results []domainRepo.TopCustomerResult
	err := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Sale{}).
		Select(`customers.id AS customer_id,
			customers.name AS customer_name,
			SUM(sales.total) AS total_spent,
			COUNT(*) AS sales_count`).
		Joins("JOIN customers ON customers.id = sales.customer_id").
		Scopes(func(db *gorm.DB) *gorm.DB {
			if shopID, ok := GetShopID(ctx); ok {
				return db.Where("sales.shop_id = ?", shopID)
			}
			return db.Where("1 = 0")
		}).
		Group("customers.id, customers.name").
		Order("total_spent DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) GetDailySales(ctx context.Context, days int) ([]domainRepo.DailySalesResult, error) {
	var results []domainRepo.DailySalesResult
	since := time.Now().AddDate(0, 0, -days)
	err := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Sale{}).
		Scopes(ShopScope(ctx)).
		Select("sale_date AS date, SUM(total) AS revenue, COUNT(*) AS sales_count").
		Where("sale_date >= ?", since).
		Group("sale_date").
		Order("sale_date ASC").
		Scan(&results).Error
	return results, err
}
