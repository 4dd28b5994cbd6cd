package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer represents a buyer tracked by the shop
type Customer struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ShopID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"shop_id"`
	Name        string          `gorm:"size:200;not null" json:"name"`
	Email       string          `gorm:"size:255" json:"email,omitempty"`
	Phone       string          `gorm:"size:20;not null" json:"phone"`
	Address     string          `gorm:"type:text" json:"address,omitempty"`
	TaxNumber   string          `gorm:"size:50" json:"tax_number,omitempty"`
	CreditLimit decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"credit_limit"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Shop  Shop   `gorm:"foreignKey:ShopID" json:"-"`
	Sales []Sale `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
