package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dukahub/duka-api/internal/application/service"
	"github.com/dukahub/duka-api/internal/domain/repository"
	"github.com/dukahub/duka-api/internal/presentation/http/dto/request"
	"github.com/dukahub/duka-api/internal/presentation/http/dto/response"
	"github.com/dukahub/duka-api/pkg/pagination"
)

// ProductHandler handles product catalog HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateProductInput{
		Name:            req.Name,
		SKU:             req.SKU,
		CategoryID:      req.CategoryID,
		UnitID:          req.UnitID,
		CreatedByID:     GetUserID(c),
		CostPrice:       req.CostPrice,
		SellingPrice:    req.SellingPrice,
		MinimumStock:    req.MinimumStock,
		InitialQuantity: req.InitialQuantity,
	}
	if req.Barcode != nil {
		input.Barcode = *req.Barcode
	}
	if req.Description != nil {
		input.Description = *req.Description
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid filter parameters")
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage},
		Search:     filter.Search,
		LowStock:   filter.LowStock,
		IsActive:   filter.IsActive,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	}
	if filter.CategoryID != "" {
		if id, err := uuid.Parse(filter.CategoryID); err == nil {
			params.CategoryID = &id
		}
	}
	if filter.UnitID != "" {
		if id, err := uuid.Parse(filter.UnitID); err == nil {
			params.UnitID = &id
		}
	}

	products, total, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(products,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Update handles updating a product's catalog fields
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &service.UpdateProductInput{
		Name:         req.Name,
		Barcode:      req.Barcode,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		UnitID:       req.UnitID,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		MinimumStock: req.MinimumStock,
		IsActive:     req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deactivating a product. Products are never hard deleted.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeactivateProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// CreateCategory handles creating a product category
func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name        string     `json:"name" binding:"required"`
		Description string     `json:"description"`
		ParentID    *uuid.UUID `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.productService.CreateCategory(c.Request.Context(), req.Name, req.Description, req.ParentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category created successfully", category)
}

// ListCategories handles listing product categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
	params := queryPagination(c)
	categories, total, err := h.productService.ListCategories(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(categories,
		pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Categories retrieved successfully", result)
}

// CreateUnit handles creating a measurement unit
func (h *ProductHandler) CreateUnit(c *gin.Context) {
	var req struct {
		Name   string `json:"name" binding:"required"`
		Symbol string `json:"symbol" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	unit, err := h.productService.CreateUnit(c.Request.Context(), req.Name, req.Symbol)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Unit created successfully", unit)
}

// ListUnits handles listing measurement units
func (h *ProductHandler) ListUnits(c *gin.Context) {
	params := queryPagination(c)
	units, total, err := h.productService.ListUnits(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(units,
		pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Units retrieved successfully", result)
}

// queryPagination reads page/per_page query parameters with defaults
func queryPagination(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	return &pagination.PaginationParams{Page: page, PerPage: perPage}
}
