package models

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog product under a brand.
type Product struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Brand     string         `gorm:"not null;index" json:"brand"`
	Name      string         `gorm:"not null" json:"name"`
	Variants  []Variant      `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// Variant represents a sellable size/pack variant of a product.
type Variant struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	Size      string         `gorm:"not null" json:"size"`
	Unit      string         `json:"unit"` // e.g. "ml", "g", "pcs"
	SKU       string         `gorm:"uniqueIndex;not null" json:"sku"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Variant model
func (Variant) TableName() string {
	return "variants"
}
