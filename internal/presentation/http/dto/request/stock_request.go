package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateMovementRequest represents a manual stock movement. Quantity is the
// magnitude for IN, OUT and RET movements and the signed delta for ADJ.
type CreateMovementRequest struct {
	ProductID       uuid.UUID       `json:"product_id" binding:"required"`
	Type            string          `json:"type" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	SupplierID      *uuid.UUID      `json:"supplier_id"`
	ReferenceNumber string          `json:"reference_number"`
	Notes           string          `json:"notes"`
}
