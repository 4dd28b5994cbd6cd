package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderItemRequest represents an ordered line
type PurchaseOrderItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseOrderRequest represents a purchase order creation request
type CreatePurchaseOrderRequest struct {
	SupplierID           uuid.UUID                  `json:"supplier_id" binding:"required"`
	OrderDate            *time.Time                 `json:"order_date"`
	ExpectedDeliveryDate *time.Time                 `json:"expected_delivery_date"`
	Notes                string                     `json:"notes"`
	Items                []PurchaseOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ReceiveItemRequest represents a received quantity for a PO line
type ReceiveItemRequest struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// ReceiveItemsRequest represents a receipt against a purchase order
type ReceiveItemsRequest struct {
	Items []ReceiveItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdatePOStatusRequest represents a purchase order status transition
type UpdatePOStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
