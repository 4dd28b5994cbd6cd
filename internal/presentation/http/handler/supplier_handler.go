package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dukahub/duka-api/internal/application/service"
	"github.com/dukahub/duka-api/internal/presentation/http/dto/response"
	"github.com/dukahub/duka-api/pkg/pagination"
)

// SupplierHandler handles supplier-related HTTP requests
type SupplierHandler struct {
	supplierService *service.SupplierService
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(supplierService *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

type supplierPayload struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone" binding:"required"`
	Address       string `json:"address"`
	TaxNumber     string `json:"tax_number"`
}

func (p *supplierPayload) toInput() *service.SupplierInput {
	return &service.SupplierInput{
		Name:          p.Name,
		ContactPerson: p.ContactPerson,
		Email:         p.Email,
		Phone:         p.Phone,
		Address:       p.Address,
		TaxNumber:     p.TaxNumber,
	}
}

// Create handles creating a supplier
func (h *SupplierHandler) Create(c *gin.Context) {
	var req supplierPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Supplier created successfully", supplier)
}

// List handles listing suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	params := queryPagination(c)
	includeInactive := c.Query("include_inactive") == "true"

	suppliers, total, err := h.supplierService.ListSuppliers(c.Request.Context(), params, c.Query("search"), includeInactive)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(suppliers,
		pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Suppliers retrieved successfully", result)
}

// Get handles getting a single supplier
func (h *SupplierHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	supplier, err := h.supplierService.GetSupplier(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier retrieved successfully", supplier)
}

// Update handles updating a supplier
func (h *SupplierHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	var req supplierPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(c.Request.Context(), id, req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier updated successfully", supplier)
}

// Delete handles deleting a supplier. Suppliers with purchase history are
// deactivated instead.
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	if err := h.supplierService.DeleteSupplier(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
