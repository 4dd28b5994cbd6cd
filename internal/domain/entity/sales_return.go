package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukahub/duka-api/internal/domain/enum"
)

// SalesReturn reverses part of a sale. Completing a return restores stock
// through RET movements; it never edits the original sale.
type SalesReturn struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	ShopID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"shop_id"`
	SaleID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"sale_id"`
	CreatedByID *uuid.UUID        `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	ReturnDate  time.Time         `gorm:"type:date;not null" json:"return_date"`
	Status      enum.ReturnStatus `gorm:"size:10;not null;default:'PENDING'" json:"status"`
	Reason      string            `gorm:"type:text;not null" json:"reason"`
	Subtotal    decimal.Decimal   `gorm:"type:decimal(15,2);not null;default:0" json:"subtotal"`
	TaxAmount   decimal.Decimal   `gorm:"type:decimal(15,2);not null;default:0" json:"tax_amount"`
	Total       decimal.Decimal   `gorm:"type:decimal(15,2);not null;default:0" json:"total"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	// Relationships
	Shop  Shop              `gorm:"foreignKey:ShopID" json:"-"`
	Sale  Sale              `gorm:"foreignKey:SaleID" json:"sale,omitempty"`
	Items []SalesReturnItem `gorm:"foreignKey:SalesReturnID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sales return
func (r *SalesReturn) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesReturn model
func (SalesReturn) TableName() string {
	return "sales_returns"
}

// SalesReturnItem is a returned line, referencing the sold line it reverses.
// Quantity never exceeds the originally sold quantity for that line.
type SalesReturnItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SalesReturnID uuid.UUID       `gorm:"type:uuid;not null;index" json:"sales_return_id"`
	SaleItemID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_item_id"`
	Quantity      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"quantity"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	CreatedAt     time.Time       `json:"created_at"`

	// Relationships
	SalesReturn SalesReturn `gorm:"foreignKey:SalesReturnID" json:"-"`
	SaleItem    SaleItem    `gorm:"foreignKey:SaleItemID" json:"sale_item,omitempty"`
}

// Total is the refunded amount for this line.
func (i *SalesReturnItem) Total() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// BeforeCreate generates a UUID before creating a new sales return item
func (i *SalesReturnItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesReturnItem model
func (SalesReturnItem) TableName() string {
	return "sales_return_items"
}
