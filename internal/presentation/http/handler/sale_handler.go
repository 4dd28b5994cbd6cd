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

// SaleHandler handles sale and payment HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Create handles creating a sale
func (h *SaleHandler) Create(c *gin.Context) {
	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.SaleItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.SaleItemInput{
			ProductID:          item.ProductID,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			DiscountPercentage: item.DiscountPercentage,
		})
	}

	input := &service.CreateSaleInput{
		CustomerID:    req.CustomerID,
		CreatedByID:   GetUserID(c),
		DueDate:       req.DueDate,
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		AmountPaid:    req.AmountPaid,
		Notes:         req.Notes,
		Items:         items,
	}
	if req.SaleDate != nil {
		input.SaleDate = *req.SaleDate
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale created successfully", sale)
}

// List handles listing sales with aggregate money metadata
func (h *SaleHandler) List(c *gin.Context) {
	params := &repository.SaleFilterParams{
		Pagination: queryPagination(c),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
		StartDate:  queryDate(c, "start_date"),
		EndDate:    queryDate(c, "end_date"),
	}
	if statusStr := c.Query("payment_status"); statusStr != "" {
		status := enum.PaymentStatus(statusStr)
		params.PaymentStatus = &status
	}
	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		if id, err := uuid.Parse(customerIDStr); err == nil {
			params.CustomerID = &id
		}
	}

	sales, total, summary, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(sales,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)).
		WithMetadata(summary)
	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Get handles getting a single sale with items, payments and customer
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// CreatePayment handles recording a payment against a sale
func (h *SaleHandler) CreatePayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	var req request.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.PaymentInput{
		Amount:          req.Amount,
		PaymentMethod:   enum.PaymentMethod(req.PaymentMethod),
		CreatedByID:     GetUserID(c),
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
	}
	if req.PaymentDate != nil {
		input.PaymentDate = *req.PaymentDate
	}

	payment, err := h.saleService.ApplyPayment(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}

// ListPayments handles listing payments
func (h *SaleHandler) ListPayments(c *gin.Context) {
	params := &repository.PaymentFilterParams{
		Pagination: queryPagination(c),
		StartDate:  queryDate(c, "start_date"),
		EndDate:    queryDate(c, "end_date"),
	}
	if saleIDStr := c.Query("sale_id"); saleIDStr != "" {
		if id, err := uuid.Parse(saleIDStr); err == nil {
			params.SaleID = &id
		}
	}
	if methodStr := c.Query("payment_method"); methodStr != "" {
		method := enum.PaymentMethod(methodStr)
		params.PaymentMethod = &method
	}

	payments, total, err := h.saleService.ListPayments(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(payments,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Payments retrieved successfully", result)
}
