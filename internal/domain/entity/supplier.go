package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supplier represents a vendor the shop buys from
type Supplier struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ShopID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"shop_id"`
	Name          string         `gorm:"size:200;not null" json:"name"`
	ContactPerson string         `gorm:"size:100" json:"contact_person,omitempty"`
	Email         string         `gorm:"size:255" json:"email,omitempty"`
	Phone         string         `gorm:"size:20;not null" json:"phone"`
	Address       string         `gorm:"type:text" json:"address"`
	TaxNumber     string         `gorm:"size:50" json:"tax_number,omitempty"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Shop           Shop            `gorm:"foreignKey:ShopID" json:"-"`
	PurchaseOrders []PurchaseOrder `gorm:"foreignKey:SupplierID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new supplier
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}
