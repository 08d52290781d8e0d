// internal/models/product.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the persisted inventory record. ID is caller-assigned and
// immutable after creation.
type Product struct {
	ID         string          `json:"id" gorm:"size:64;primaryKey"`
	Name       string          `json:"name" gorm:"size:255;not null"`
	Category   string          `json:"category" gorm:"size:100;not null;index"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Quantity   int             `json:"quantity" gorm:"not null;default:0"`
	ExpiryDate *DateOnly       `json:"expiryDate" gorm:"type:date"`
	Discount   decimal.Decimal `json:"discount" gorm:"type:decimal(5,2);not null;default:0"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// ProductView is a Product with the server-computed display fields attached.
// Views are derived on every read and never persisted.
type ProductView struct {
	Product
	Available       bool            `json:"available"`
	DiscountedPrice decimal.Decimal `json:"discountedPrice"`
}
