package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukahub/duka-api/internal/domain/enum"
)

// ExpenseCategory is a per-shop lookup for classifying expenses
type ExpenseCategory struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ShopID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"shop_id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Shop     Shop      `gorm:"foreignKey:ShopID" json:"-"`
	Expenses []Expense `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new expense category
func (c *ExpenseCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ExpenseCategory model
func (ExpenseCategory) TableName() string {
	return "expense_categories"
}

// Expense is an operational cost. TotalAmount is Amount plus TaxAmount,
// fixed at creation; PaidAmount and Status move only through expense payments.
type Expense struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ShopID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"shop_id"`
	CategoryID    *uuid.UUID         `gorm:"type:uuid;index" json:"category_id,omitempty"`
	SupplierID    *uuid.UUID         `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	CreatedByID   *uuid.UUID         `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	ExpenseNumber string             `gorm:"size:50;not null;uniqueIndex" json:"expense_number"`
	Description   string             `gorm:"type:text;not null" json:"description"`
	Amount        decimal.Decimal    `gorm:"type:decimal(15,2);not null" json:"amount"`
	TaxAmount     decimal.Decimal    `gorm:"type:decimal(15,2);not null;default:0" json:"tax_amount"`
	TotalAmount   decimal.Decimal    `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	PaidAmount    decimal.Decimal    `gorm:"type:decimal(15,2);not null;default:0" json:"paid_amount"`
	Status        enum.ExpenseStatus `gorm:"size:15;not null;default:'PENDING';index" json:"status"`
	ExpenseDate   time.Time          `gorm:"type:date;not null" json:"expense_date"`
	IsRecurring   bool               `gorm:"default:false" json:"is_recurring"`
	RecurringDay  *int               `json:"recurring_day,omitempty"`
	Notes         string             `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Shop     Shop             `gorm:"foreignKey:ShopID" json:"-"`
	Category *ExpenseCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Supplier *Supplier        `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Payments []ExpensePayment `gorm:"foreignKey:ExpenseID" json:"payments,omitempty"`
}

// BalanceDue is the amount still owed on the expense.
func (e *Expense) BalanceDue() decimal.Decimal {
	return e.TotalAmount.Sub(e.PaidAmount)
}

// BeforeCreate generates a UUID before creating a new expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}

// ExpensePayment is an immutable record of money paid against an expense
type ExpensePayment struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ShopID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"shop_id"`
	ExpenseID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"expense_id"`
	CreatedByID     *uuid.UUID         `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	Amount          decimal.Decimal    `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaymentDate     time.Time          `gorm:"type:date;not null" json:"payment_date"`
	PaymentMethod   enum.PaymentMethod `gorm:"size:10;not null" json:"payment_method"`
	ReferenceNumber string             `gorm:"size:50" json:"reference_number,omitempty"`
	Notes           string             `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`

	// Relationships
	Shop    Shop    `gorm:"foreignKey:ShopID" json:"-"`
	Expense Expense `gorm:"foreignKey:ExpenseID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new expense payment
func (p *ExpensePayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ExpensePayment model
func (ExpensePayment) TableName() string {
	return "expense_payments"
}
