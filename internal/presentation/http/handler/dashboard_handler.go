package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dukahub/duka-api/internal/application/service"
	"github.com/dukahub/duka-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard analytics HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary handles getting headline dashboard figures
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardService.GetSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard summary retrieved successfully", summary)
}

// TopProducts handles getting the top selling products by revenue
func (h *DashboardHandler) TopProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	products, err := h.dashboardService.GetTopProducts(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top products retrieved successfully", products)
}

// TopCustomers handles getting the top customers by total spending
func (h *DashboardHandler) TopCustomers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	customers, err := h.dashboardService.GetTopCustomers(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top customers retrieved successfully", customers)
}

// DailySales handles getting daily sales for the last N days
func (h *DashboardHandler) DailySales(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	sales, err := h.dashboardService.GetDailySales(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily sales retrieved successfully", sales)
}
