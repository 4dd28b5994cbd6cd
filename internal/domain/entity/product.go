package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a sellable item in the shop's catalog. Its on-hand
// quantity lives in the associated Stock row and is mutated only through
// stock movements, never by editing the product.
type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ShopID       uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_products_shop_sku" json:"shop_id"`
	CategoryID   *uuid.UUID      `gorm:"type:uuid;index" json:"category_id,omitempty"`
	UnitID       *uuid.UUID      `gorm:"type:uuid;index" json:"unit_id,omitempty"`
	CreatedByID  *uuid.UUID      `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	Name         string          `gorm:"size:200;not null" json:"name"`
	SKU          string          `gorm:"size:50;not null;uniqueIndex:idx_products_shop_sku" json:"sku"`
	Barcode      string          `gorm:"size:100" json:"barcode,omitempty"`
	Description  string          `gorm:"type:text" json:"description,omitempty"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"cost_price"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"selling_price"`
	MinimumStock decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"minimum_stock"`
	MaximumStock *decimal.Decimal `gorm:"type:decimal(15,2)" json:"maximum_stock,omitempty"`
	IsActive     bool            `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Shop     Shop      `gorm:"foreignKey:ShopID" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Unit     *Unit     `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Stock    *Stock    `gorm:"foreignKey:ProductID" json:"stock,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// Category represents a product category, optionally nested
type Category struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ShopID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"shop_id"`
	ParentID    *uuid.UUID     `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Shop     Shop       `gorm:"foreignKey:ShopID" json:"-"`
	Parent   *Category  `gorm:"foreignKey:ParentID" json:"-"`
	Products []Product  `gorm:"foreignKey:CategoryID" json:"-"`
	Children []Category `gorm:"foreignKey:ParentID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// Unit represents a unit of measurement, e.g. Pieces (pcs) or Kilograms (kg)
type Unit struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:50;not null" json:"name"`
	Symbol    string         `gorm:"size:10;not null" json:"symbol"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:UnitID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new unit
func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Unit model
func (Unit) TableName() string {
	return "units"
}
