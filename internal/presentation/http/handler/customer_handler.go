package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukahub/duka-api/internal/application/service"
	"github.com/dukahub/duka-api/internal/presentation/http/dto/response"
	"github.com/dukahub/duka-api/pkg/pagination"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

type customerPayload struct {
	Name        string          `json:"name" binding:"required"`
	Email       string          `json:"email" binding:"omitempty,email"`
	Phone       string          `json:"phone" binding:"required"`
	Address     string          `json:"address"`
	TaxNumber   string          `json:"tax_number"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
}

func (p *customerPayload) toInput() *service.CustomerInput {
	return &service.CustomerInput{
		Name:        p.Name,
		Email:       p.Email,
		Phone:       p.Phone,
		Address:     p.Address,
		TaxNumber:   p.TaxNumber,
		CreditLimit: p.CreditLimit,
	}
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req customerPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// List handles listing customers
func (h *CustomerHandler) List(c *gin.Context) {
	params := queryPagination(c)
	includeInactive := c.Query("include_inactive") == "true"

	customers, total, err := h.customerService.ListCustomers(c.Request.Context(), params, c.Query("search"), includeInactive)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(customers,
		pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// Get handles getting a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req customerPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), id, req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles deleting a customer. Customers with sales history are
// deactivated instead.
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
