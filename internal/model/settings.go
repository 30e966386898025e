package model

import "github.com/shopspring/decimal"

// SiteSettings is the at-most-one configuration row. The fixed singleton key
// carries a unique index, so concurrent first reads cannot create two rows.
type SiteSettings struct {
	BaseModel
	SingletonKey   string          `gorm:"type:varchar(16);uniqueIndex;not null;default:'default'" json:"-"`
	SiteName       string          `gorm:"type:varchar(255);default:'E-Shop'" json:"site_name"`
	Logo           string          `gorm:"type:text" json:"logo"`
	Favicon        string          `gorm:"type:text" json:"favicon"`
	PrimaryColor   string          `gorm:"type:varchar(16);default:'#3b82f6'" json:"primary_color"`
	SecondaryColor string          `gorm:"type:varchar(16);default:'#10b981'" json:"secondary_color"`
	Currency       string          `gorm:"type:varchar(8);default:'USD'" json:"currency"`
	TaxRate        decimal.Decimal `gorm:"type:numeric(5,2);default:0" json:"tax_rate"`
}

// SettingsSingletonKey is the only value SingletonKey ever holds.
const SettingsSingletonKey = "default"
