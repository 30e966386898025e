package model

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. SalePrice, when positive, takes precedence over
// Price in cart and sale totals.
type Product struct {
	BaseModel
	SKU         string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"sku" validate:"required"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Slug        string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description string          `gorm:"type:text" json:"description"`
	Category    string          `gorm:"type:varchar(100);index" json:"category"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	SalePrice   decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"sale_price"`
	Stock       int             `gorm:"default:0" json:"stock"`
	Unit        string          `gorm:"type:varchar(20)" json:"unit"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`
	IsFeatured  bool            `gorm:"default:false" json:"is_featured"`

	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	UpdatedByID *uuid.UUID `gorm:"type:uuid" json:"updated_by,omitempty"`
}

// EffectivePrice is the price charged per unit: the sale price when set.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice.IsPositive() {
		return p.SalePrice
	}
	return p.Price
}

// Slugify derives a URL slug from a product name.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastDash := true
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
