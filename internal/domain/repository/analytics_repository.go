package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardSummary aggregates headline figures for a shop. StockValue is the
// on-hand inventory valued at cost price.
type DashboardSummary struct {
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	TotalOutstanding   decimal.Decimal `json:"total_outstanding"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	StockValue         decimal.Decimal `json:"stock_value"`
	SalesCount         int64           `json:"sales_count"`
	CustomerCount      int64           `json:"customer_count"`
	ProductCount       int64           `json:"product_count"`
	LowStockCount      int64           `json:"low_stock_count"`
	PendingOrdersCount int64           `json:"pending_orders_count"`
}

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	SKU          string          `json:"sku"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// TopCustomerResult represents a customer's spending data
type TopCustomerResult struct {
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	TotalSpent   decimal.Decimal `json:"total_spent"`
	SalesCount   int64           `json:"sales_count"`
}

// DailySalesResult represents sales data for a single day
type DailySalesResult struct {
	Date       time.Time       `json:"date"`
	Revenue    decimal.Decimal `json:"revenue"`
	SalesCount int64           `json:"sales_count"`
}

// AnalyticsRepository defines interface for dashboard aggregation queries
type AnalyticsRepository interface {
	// GetSummary returns the headline dashboard figures for the current shop
	GetSummary(ctx context.Context) (*DashboardSummary, error)

	// GetTopProducts returns top selling products by revenue
	GetTopProducts(ctx context.Context, limit int) ([]TopProductResult, error)

	// GetTopCustomers returns top customers by total spending
	GetTopCustomers(ctx context.Context, limit int) ([]TopCustomerResult, error)

	// GetDailySales returns daily sales data for the last N days
	GetDailySales(ctx context.Context, days int) ([]DailySalesResult, error)
}
