package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dukahub/duka-api/internal/application/service"
	"github.com/dukahub/duka-api/internal/domain/enum"
	"github.com/dukahub/duka-api/internal/domain/repository"
	"github.com/dukahub/duka-api/internal/presentation/http/dto/request"
	"github.com/dukahub/duka-api/internal/presentation/http/dto/response"
	"github.com/dukahub/duka-api/pkg/pagination"
)

// PurchaseOrderHandler handles purchase order HTTP requests
type PurchaseOrderHandler struct {
	poService *service.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new purchase order handler
func NewPurchaseOrderHandler(poService *service.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{poService: poService}
}

// Create handles creating a purchase order
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req request.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.PurchaseOrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.PurchaseOrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	input := &service.CreatePurchaseOrderInput{
		SupplierID:           req.SupplierID,
		CreatedByID:          GetUserID(c),
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		Notes:                req.Notes,
		Items:                items,
	}
	if req.OrderDate != nil {
		input.OrderDate = *req.OrderDate
	}

	po, err := h.poService.CreatePurchaseOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase order created successfully", po)
}

// List handles listing purchase orders
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	params := &repository.PurchaseOrderFilterParams{
		Pagination: queryPagination(c),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
		StartDate:  queryDate(c, "start_date"),
		EndDate:    queryDate(c, "end_date"),
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.PurchaseOrderStatus(statusStr)
		params.Status = &status
	}
	if supplierIDStr := c.Query("supplier_id"); supplierIDStr != "" {
		if id, err := uuid.Parse(supplierIDStr); err == nil {
			params.SupplierID = &id
		}
	}

	orders, total, err := h.poService.ListPurchaseOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(orders,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Purchase orders retrieved successfully", result)
}

// Get handles getting a single purchase order
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	po, err := h.poService.GetPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order retrieved successfully", po)
}

// UpdateStatus handles transitioning a purchase order
func (h *PurchaseOrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	var req request.UpdatePOStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	po, err := h.poService.UpdateStatus(c.Request.Context(), id, enum.PurchaseOrderStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order status updated successfully", po)
}

// Receive handles recording received quantities against a purchase order
func (h *PurchaseOrderHandler) Receive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	var req request.ReceiveItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	receipts := make([]service.ReceiveItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		receipts = append(receipts, service.ReceiveItemInput{
			ItemID:   item.ItemID,
			Quantity: item.Quantity,
		})
	}

	po, err := h.poService.ReceiveItems(c.Request.Context(), id, receipts)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Items received successfully", po)
}

// Delete handles deleting a draft purchase order
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	if err := h.poService.DeletePurchaseOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
