package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukahub/duka-api/internal/domain/enum"
)

// PurchaseOrder tracks an order placed with a supplier through its lifecycle:
// DRAFT -> PENDING -> ORDERED -> RECEIVED, with CANCELLED reachable from any
// non-terminal state. Totals are computed once at creation.
type PurchaseOrder struct {
	ID                   uuid.UUID                `gorm:"type:uuid;primary_key" json:"id"`
	ShopID               uuid.UUID                `gorm:"type:uuid;not null;index" json:"shop_id"`
	SupplierID           uuid.UUID                `gorm:"type:uuid;not null;index" json:"supplier_id"`
	CreatedByID          *uuid.UUID               `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	PONumber             string                   `gorm:"size:50;not null;uniqueIndex" json:"po_number"`
	Status               enum.PurchaseOrderStatus `gorm:"size:10;not null;default:'DRAFT';index" json:"status"`
	OrderDate            time.Time                `gorm:"type:date;not null" json:"order_date"`
	ExpectedDeliveryDate *time.Time               `gorm:"type:date" json:"expected_delivery_date,omitempty"`
	Subtotal             decimal.Decimal          `gorm:"type:decimal(15,2);not null;default:0" json:"subtotal"`
	TaxAmount            decimal.Decimal          `gorm:"type:decimal(15,2);not null;default:0" json:"tax_amount"`
	Total                decimal.Decimal          `gorm:"type:decimal(15,2);not null;default:0" json:"total"`
	Notes                string                   `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt            time.Time                `json:"created_at"`
	UpdatedAt            time.Time                `json:"updated_at"`
	DeletedAt            gorm.DeletedAt           `gorm:"index" json:"-"`

	// Relationships
	Shop     Shop                `gorm:"foreignKey:ShopID" json:"-"`
	Supplier Supplier            `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Items    []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items,omitempty"`
}

// FullyReceived reports whether every line has been received in full.
func (po *PurchaseOrder) FullyReceived() bool {
	if len(po.Items) == 0 {
		return false
	}
	for _, item := range po.Items {
		if item.ReceivedQuantity.LessThan(item.Quantity) {
			return false
		}
	}
	return true
}

// BeforeCreate generates a UUID before creating a new purchase order
func (po *PurchaseOrder) BeforeCreate(tx *gorm.DB) error {
	if po.ID == uuid.Nil {
		po.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseOrder model
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderItem is an ordered line. ReceivedQuantity accumulates across
// receipts and never exceeds Quantity.
type PurchaseOrderItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseOrderID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity         decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"quantity"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	ReceivedQuantity decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"received_quantity"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Relationships
	PurchaseOrder PurchaseOrder `gorm:"foreignKey:PurchaseOrderID" json:"-"`
	Product       Product       `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TotalPrice is quantity * unit price for the line.
func (i *PurchaseOrderItem) TotalPrice() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// RemainingQuantity is how much of the line is still outstanding.
func (i *PurchaseOrderItem) RemainingQuantity() decimal.Decimal {
	return i.Quantity.Sub(i.ReceivedQuantity)
}

// BeforeCreate generates a UUID before creating a new purchase order item
func (i *PurchaseOrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseOrderItem model
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}
