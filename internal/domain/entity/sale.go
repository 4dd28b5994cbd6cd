package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukahub/duka-api/internal/domain/enum"
)

// Sale is a committed sales transaction. Monetary totals are computed once at
// creation and never edited afterwards; only paid_amount and payment_status
// change, and only through the payment ledger.
type Sale struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ShopID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"shop_id"`
	CustomerID     *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CreatedByID    *uuid.UUID         `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	InvoiceNumber  string             `gorm:"size:50;not null;uniqueIndex" json:"invoice_number"`
	SaleDate       time.Time          `gorm:"type:date;not null" json:"sale_date"`
	DueDate        *time.Time         `gorm:"type:date" json:"due_date,omitempty"`
	PaymentStatus  enum.PaymentStatus `gorm:"size:10;not null;default:'PENDING';index" json:"payment_status"`
	PaymentMethod  enum.PaymentMethod `gorm:"size:10;not null;default:'CASH'" json:"payment_method"`
	Subtotal       decimal.Decimal    `gorm:"type:decimal(15,2);not null;default:0" json:"subtotal"`
	DiscountAmount decimal.Decimal    `gorm:"type:decimal(15,2);not null;default:0" json:"discount_amount"`
	TaxAmount      decimal.Decimal    `gorm:"type:decimal(15,2);not null;default:0" json:"tax_amount"`
	Total          decimal.Decimal    `gorm:"type:decimal(15,2);not null;default:0" json:"total"`
	PaidAmount     decimal.Decimal    `gorm:"type:decimal(15,2);not null;default:0" json:"paid_amount"`
	Notes          string             `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Shop     Shop       `gorm:"foreignKey:ShopID" json:"-"`
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
	Payments []Payment  `gorm:"foreignKey:SaleID" json:"payments,omitempty"`
}

// BalanceDue is the amount still owed. Derived, never stored: it cannot
// drift from its components.
func (s *Sale) BalanceDue() decimal.Decimal {
	return s.Total.Sub(s.PaidAmount)
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleItem is a line item on a sale. Immutable once the sale is committed;
// returns are modeled as separate entities, not edits.
type SaleItem struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID             uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity           decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"quantity"`
	UnitPrice          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"discount_percentage"`
	CreatedAt          time.Time       `json:"created_at"`

	// Relationships
	Sale    Sale    `gorm:"foreignKey:SaleID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// Subtotal is quantity * unit price before discount.
func (i *SaleItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// ItemDiscountAmount is the discount applied to this line.
func (i *SaleItem) ItemDiscountAmount() decimal.Decimal {
	return i.Subtotal().Mul(i.DiscountPercentage).Div(decimal.NewFromInt(100))
}

// Total is the line amount after discount.
func (i *SaleItem) Total() decimal.Decimal {
	return i.Subtotal().Sub(i.ItemDiscountAmount())
}

// BeforeCreate generates a UUID before creating a new sale item
func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// Payment is an immutable record of money received against a sale. There is
// no update or delete path; a wrong payment needs a compensating entry.
type Payment struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ShopID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"shop_id"`
	SaleID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"sale_id"`
	CreatedByID     *uuid.UUID         `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	Amount          decimal.Decimal    `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaymentDate     time.Time          `gorm:"type:date;not null" json:"payment_date"`
	PaymentMethod   enum.PaymentMethod `gorm:"size:10;not null" json:"payment_method"`
	ReferenceNumber string             `gorm:"size:50" json:"reference_number,omitempty"`
	Notes           string             `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`

	// Relationships
	Shop Shop `gorm:"foreignKey:ShopID" json:"-"`
	Sale Sale `gorm:"foreignKey:SaleID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
