package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is created lazily on a user's first cart access; one per user.
type Cart struct {
	BaseModel
	UserID uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Items  []CartItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

type CartItem struct {
	BaseModel
	CartID    uuid.UUID `gorm:"type:uuid;not null;index" json:"cart_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
}

// CartResponse carries the cart with computed totals. The effective price
// rule (sale price over price) is applied per line.
type CartResponse struct {
	ID         uuid.UUID       `json:"id"`
	Items      []CartItem      `json:"items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Total      decimal.Decimal `json:"total"`
	TotalItems int             `json:"total_items"`
}

// ToResponse computes totals from the loaded items. Items with a missing
// product relation contribute nothing.
func (c *Cart) ToResponse() CartResponse {
	subtotal := decimal.Zero
	totalItems := 0
	for _, item := range c.Items {
		if item.Product == nil {
			continue
		}
		line := item.Product.EffectivePrice().Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
		totalItems += item.Quantity
	}
	return CartResponse{
		ID:         c.ID,
		Items:      c.Items,
		Subtotal:   subtotal,
		Total:      subtotal,
		TotalItems: totalItems,
	}
}
