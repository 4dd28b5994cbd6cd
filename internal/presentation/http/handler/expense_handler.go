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

// ExpenseHandler handles expense HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// Create handles recording an expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req request.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateExpenseInput{
		CategoryID:   req.CategoryID,
		SupplierID:   req.SupplierID,
		CreatedByID:  GetUserID(c),
		Description:  req.Description,
		Amount:       req.Amount,
		TaxAmount:    req.TaxAmount,
		IsRecurring:  req.IsRecurring,
		RecurringDay: req.RecurringDay,
		Notes:        req.Notes,
	}
	if req.ExpenseDate != nil {
		input.ExpenseDate = *req.ExpenseDate
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense created successfully", expense)
}

// List handles listing expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	params := &repository.ExpenseFilterParams{
		Pagination: queryPagination(c),
		Search:     c.Query("search"),
		StartDate:  queryDate(c, "start_date"),
		EndDate:    queryDate(c, "end_date"),
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.ExpenseStatus(statusStr)
		params.Status = &status
	}
	if categoryIDStr := c.Query("category_id"); categoryIDStr != "" {
		if id, err := uuid.Parse(categoryIDStr); err == nil {
			params.CategoryID = &id
		}
	}
	if supplierIDStr := c.Query("supplier_id"); supplierIDStr != "" {
		if id, err := uuid.Parse(supplierIDStr); err == nil {
			params.SupplierID = &id
		}
	}

	expenses, total, err := h.expenseService.ListExpenses(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(expenses,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Expenses retrieved successfully", result)
}

// Get handles getting a single expense
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense retrieved successfully", expense)
}

// CreatePayment handles recording a payment against an expense
func (h *ExpenseHandler) CreatePayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
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

	payment, err := h.expenseService.ApplyPayment(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense payment recorded successfully", payment)
}

// Cancel handles cancelling an expense
func (h *ExpenseHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	expense, err := h.expenseService.CancelExpense(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense cancelled successfully", expense)
}

// CreateCategory handles creating an expense category
func (h *ExpenseHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.expenseService.CreateCategory(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense category created successfully", category)
}

// ListCategories handles listing expense categories
func (h *ExpenseHandler) ListCategories(c *gin.Context) {
	params := queryPagination(c)
	categories, total, err := h.expenseService.ListCategories(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(categories,
		pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Expense categories retrieved successfully", result)
}
