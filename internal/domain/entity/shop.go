package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Shop is the tenant boundary. Every ledger entity belongs to exactly one
// shop and every query is scoped to it.
type Shop struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name       string         `gorm:"size:100;not null" json:"name"`
	ShopType   string         `gorm:"size:50" json:"shop_type"`
	Address    string         `gorm:"type:text" json:"address"`
	IsVerified bool           `gorm:"default:false" json:"is_verified"`
	Settings   ShopSettings   `gorm:"type:jsonb;serializer:json" json:"settings"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Owner   User             `gorm:"foreignKey:OwnerID" json:"-"`
	Members []ShopMembership `gorm:"foreignKey:ShopID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new shop
func (s *Shop) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Shop model
func (Shop) TableName() string {
	return "shops"
}

// ShopMembership links a user to a shop with a role
type ShopMembership struct {
	ShopID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"shop_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Role      string    `gorm:"size:50;default:'member'" json:"role"` // owner, admin, member
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Shop Shop `gorm:"foreignKey:ShopID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName returns the table name for the ShopMembership model
func (ShopMembership) TableName() string {
	return "shop_memberships"
}

// ShopSettings holds per-shop configuration. TaxRate, when set, overrides the
// application-level sale tax rate.
type ShopSettings struct {
	Currency      string           `json:"currency,omitempty"`
	Timezone      string           `json:"timezone,omitempty"`
	TaxRate       *decimal.Decimal `json:"tax_rate,omitempty"`
	TaxLabel      string           `json:"tax_label,omitempty"`
	InvoicePrefix string           `json:"invoice_prefix,omitempty"`
	POPrefix      string           `json:"po_prefix,omitempty"`
	ExpensePrefix string           `json:"expense_prefix,omitempty"`
}

// Scan implements the sql.Scanner interface for ShopSettings
func (ss *ShopSettings) Scan(value interface{}) error {
	if value == nil {
		*ss = ShopSettings{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan ShopSettings: unsupported type")
	}

	return json.Unmarshal(bytes, ss)
}

// Value implements the driver.Valuer interface for ShopSettings
func (ss ShopSettings) Value() (driver.Value, error) {
	return json.Marshal(ss)
}

// DefaultShopSettings returns default settings for new shops
func DefaultShopSettings() ShopSettings {
	return ShopSettings{
		Currency:      "KES",
		Timezone:      "Africa/Nairobi",
		TaxLabel:      "VAT",
		InvoicePrefix: "INV",
		POPrefix:      "PO",
		ExpensePrefix: "EXP",
	}
}
