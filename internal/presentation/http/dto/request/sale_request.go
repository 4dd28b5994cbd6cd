package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItemRequest represents a line on a sale creation request. UnitPrice is
// optional; omitted means the product's current selling price.
type SaleItemRequest struct {
	ProductID          uuid.UUID        `json:"product_id" binding:"required"`
	Quantity           decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice          *decimal.Decimal `json:"unit_price"`
	DiscountPercentage decimal.Decimal  `json:"discount_percentage"`
}

// CreateSaleRequest represents a sale creation request
type CreateSaleRequest struct {
	CustomerID    *uuid.UUID        `json:"customer_id"`
	SaleDate      *time.Time        `json:"sale_date"`
	DueDate       *time.Time        `json:"due_date"`
	PaymentMethod string            `json:"payment_method"`
	AmountPaid    decimal.Decimal   `json:"amount_paid"`
	Notes         string            `json:"notes"`
	Items         []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// PaymentRequest represents a payment recorded against a sale or expense
type PaymentRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate     *time.Time      `json:"payment_date"`
	PaymentMethod   string          `json:"payment_method" binding:"required"`
	ReferenceNumber string          `json:"reference_number"`
	Notes           string          `json:"notes"`
}

// ReturnItemRequest represents a returned line, keyed by the sold line
type ReturnItemRequest struct {
	SaleItemID uuid.UUID       `json:"sale_item_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateReturnRequest represents a sales return creation request
type CreateReturnRequest struct {
	SaleID     uuid.UUID           `json:"sale_id" binding:"required"`
	ReturnDate *time.Time          `json:"return_date"`
	Reason     string              `json:"reason" binding:"required"`
	Items      []ReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}
