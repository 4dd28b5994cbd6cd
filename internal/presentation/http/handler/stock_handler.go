package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dukahub/duka-api/internal/application/service"
	"github.com/dukahub/duka-api/internal/domain/enum"
	"github.com/dukahub/duka-api/internal/domain/repository"
	"github.com/dukahub/duka-api/internal/presentation/http/dto/request"
	"github.com/dukahub/duka-api/internal/presentation/http/dto/response"
	"github.com/dukahub/duka-api/pkg/pagination"
)

// StockHandler handles stock level and movement HTTP requests
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// CreateMovement handles recording a manual stock movement
func (h *StockHandler) CreateMovement(c *gin.Context) {
	var req request.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	movement, err := h.stockService.ApplyMovement(c.Request.Context(), &service.MovementInput{
		ProductID:       req.ProductID,
		Type:            enum.MovementType(req.Type),
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		SupplierID:      req.SupplierID,
		CreatedByID:     GetUserID(c),
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock movement recorded successfully", movement)
}

// GetStock handles getting the stock level for a product
func (h *StockHandler) GetStock(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	stock, err := h.stockService.GetStock(c.Request.Context(), productID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock retrieved successfully", stock)
}

// ListStock handles listing stock levels
func (h *StockHandler) ListStock(c *gin.Context) {
	params := queryPagination(c)
	stocks, total, err := h.stockService.ListStock(c.Request.Context(), &repository.MovementFilterParams{
		Pagination: params,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(stocks,
		pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Stock levels retrieved successfully", result)
}

// ListMovements handles listing the movement history
func (h *StockHandler) ListMovements(c *gin.Context) {
	params := &repository.MovementFilterParams{Pagination: queryPagination(c)}

	if productIDStr := c.Query("product_id"); productIDStr != "" {
		if id, err := uuid.Parse(productIDStr); err == nil {
			params.ProductID = &id
		}
	}
	if typeStr := c.Query("type"); typeStr != "" {
		movementType := enum.MovementType(typeStr)
		if !movementType.IsValid() {
			response.BadRequest(c, "Unknown movement type")
			return
		}
		params.MovementType = &movementType
	}
	params.StartDate = queryDate(c, "start_date")
	params.EndDate = queryDate(c, "end_date")

	movements, total, err := h.stockService.ListMovements(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(movements,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Stock movements retrieved successfully", result)
}

// LowStock handles listing products at or below their minimum stock
func (h *StockHandler) LowStock(c *gin.Context) {
	products, err := h.stockService.GetLowStockProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved successfully", products)
}

// queryDate parses an RFC 3339 or YYYY-MM-DD date query parameter
func queryDate(c *gin.Context, key string) *time.Time {
	value := c.Query(key)
	if value == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t
	}
	return nil
}
