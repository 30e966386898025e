package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SaleType string

const (
	SaleTypeSale     SaleType = "SALE"     // stock out, customer-facing
	SaleTypePurchase SaleType = "PURCHASE" // stock in, from a supplier
)

// Sale records one stock movement with a price snapshot taken at write time.
// Purchases carry a supplier reference; sales may carry the register session
// they were rung up in.
type Sale struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product  `json:"product,omitempty" validate:"-"`
	Type      SaleType  `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=SALE PURCHASE"`
	Quantity  int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`

	// Snapshots, immutable after creation
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`

	PaymentMethod string `gorm:"type:varchar(20)" json:"payment_method"`
	Note          string `gorm:"type:text" json:"note"`

	SupplierID *uuid.UUID `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Supplier   *Supplier  `json:"supplier,omitempty" validate:"-"`

	RegisterSessionID *uuid.UUID `gorm:"type:uuid;index" json:"register_session_id,omitempty"`

	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
}

// SalesSummary aggregates totals over a period.
type SalesSummary struct {
	TotalSales     decimal.Decimal `json:"total_sales"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	SaleCount      int64           `json:"sale_count"`
	PurchaseCount  int64           `json:"purchase_count"`
}
