package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukahub/duka-api/internal/domain/enum"
)

// Stock is the single source of truth for a product's on-hand quantity.
// Quantity may be fractional (e.g. kilograms). It is mutated only through
// signed deltas applied by the stock ledger and must never be negative after
// a committed mutation.
type Stock struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ShopID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"shop_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"product_id"`
	Quantity  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relationships
	Shop    Shop    `gorm:"foreignKey:ShopID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new stock row
func (s *Stock) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Stock model
func (Stock) TableName() string {
	return "stocks"
}

// StockMovement is an immutable, append-only audit record of a stock change.
// Quantity stores the signed delta applied to stock: positive for IN and RET,
// negative for OUT, either sign for ADJ. At any point the stock quantity for
// a product equals the sum of its movements' quantities.
type StockMovement struct {
	ID              uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	ShopID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"shop_id"`
	ProductID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"product_id"`
	SupplierID      *uuid.UUID        `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	CreatedByID     *uuid.UUID        `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	MovementType    enum.MovementType `gorm:"size:3;not null;index" json:"movement_type"`
	Quantity        decimal.Decimal   `gorm:"type:decimal(15,2);not null" json:"quantity"`
	UnitPrice       decimal.Decimal   `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	ReferenceNumber string            `gorm:"size:50" json:"reference_number,omitempty"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`

	// Relationships
	Shop     Shop      `gorm:"foreignKey:ShopID" json:"-"`
	Product  Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Supplier *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

// BeforeCreate generates a UUID before creating a new stock movement
func (m *StockMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockMovement model
func (StockMovement) TableName() string {
	return "stock_movements"
}
