package service

import (
	"context"

	"github.com/dukahub/duka-api/internal/domain/repository"
)

// DashboardService aggregates headline figures for the shop dashboard
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository) *DashboardService {
	return &DashboardService{analyticsRepo: analyticsRepo}
}

// GetSummary returns headline dashboard figures
func (s *DashboardService) GetSummary(ctx context.Context) (*repository.DashboardSummary, error) {
	return s.analyticsRepo.GetSummary(ctx)
}

// GetTopProducts returns the top selling products by revenue
func (s *DashboardService) GetTopProducts(ctx context.Context, limit int) ([]repository.TopProductResult, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.analyticsRepo.GetTopProducts(ctx, limit)
}

// GetTopCustomers returns the top customers by total spending
func (s *DashboardService) GetTopCustomers(ctx context.Context, limit int) ([]repository.TopCustomerResult, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.analyticsRepo.GetTopCustomers(ctx, limit)
}

// GetDailySales returns daily sales for the last N days
func (s *DashboardService) GetDailySales(ctx context.Context, days int) ([]repository.DailySalesResult, error) {
	if days <= 0 || days > 365 {
		days = 30
	}
	return s.analyticsRepo.GetDailySales(ctx, days)
}
