package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dukahub/duka-api/internal/application/service"
	"github.com/dukahub/duka-api/internal/domain/enum"
	"github.com/dukahub/duka-api/internal/presentation/http/dto/request"
	"github.com/dukahub/duka-api/internal/presentation/http/dto/response"
	"github.com/dukahub/duka-api/pkg/pagination"
)

// SalesReturnHandler handles sales return HTTP requests
type SalesReturnHandler struct {
	returnService *service.SalesReturnService
}

// NewSalesReturnHandler creates a new sales return handler
func NewSalesReturnHandler(returnService *service.SalesReturnService) *SalesReturnHandler {
	return &SalesReturnHandler{returnService: returnService}
}

// Create handles creating a sales return
func (h *SalesReturnHandler) Create(c *gin.Context) {
	var req request.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.ReturnItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.ReturnItemInput{
			SaleItemID: item.SaleItemID,
			Quantity:   item.Quantity,
		})
	}

	input := &service.CreateReturnInput{
		SaleID:      req.SaleID,
		CreatedByID: GetUserID(c),
		Reason:      req.Reason,
		Items:       items,
	}
	if req.ReturnDate != nil {
		input.ReturnDate = *req.ReturnDate
	}

	ret, err := h.returnService.CreateReturn(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sales return created successfully", ret)
}

// UpdateStatus handles moving a return through its lifecycle
func (h *SalesReturnHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sales return ID")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	ret, err := h.returnService.UpdateReturnStatus(c.Request.Context(), id, enum.ReturnStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales return status updated successfully", ret)
}

// Get handles getting a single sales return
func (h *SalesReturnHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sales return ID")
		return
	}

	ret, err := h.returnService.GetReturn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales return retrieved successfully", ret)
}

// List handles listing sales returns, optionally filtered by sale
func (h *SalesReturnHandler) List(c *gin.Context) {
	params := queryPagination(c)

	var saleID *uuid.UUID
	if saleIDStr := c.Query("sale_id"); saleIDStr != "" {
		if id, err := uuid.Parse(saleIDStr); err == nil {
			saleID = &id
		}
	}

	returns, total, err := h.returnService.ListReturns(c.Request.Context(), params, saleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(returns,
		pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Sales returns retrieved successfully", result)
}
