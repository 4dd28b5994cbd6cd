package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a product creation request. Prices and
// quantities are decimal strings; range checks live in the service layer.
type CreateProductRequest struct {
	CategoryID      *uuid.UUID      `json:"category_id"`
	UnitID          *uuid.UUID      `json:"unit_id"`
	Name            string          `json:"name" binding:"required,min=2,max=255"`
	SKU             string          `json:"sku" binding:"required,max=100"`
	Barcode         *string         `json:"barcode" binding:"omitempty,max=100"`
	Description     *string         `json:"description"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	MinimumStock    decimal.Decimal `json:"minimum_stock"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	CategoryID   *uuid.UUID       `json:"category_id"`
	UnitID       *uuid.UUID       `json:"unit_id"`
	Name         *string          `json:"name" binding:"omitempty,min=2,max=255"`
	Barcode      *string          `json:"barcode" binding:"omitempty,max=100"`
	Description  *string          `json:"description"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
	MinimumStock *decimal.Decimal `json:"minimum_stock"`
	IsActive     *bool            `json:"is_active"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	UnitID     string `form:"unit_id"`
	LowStock   bool   `form:"low_stock"`
	IsActive   *bool  `form:"is_active"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
