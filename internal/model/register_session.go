package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RegisterStatus string

const (
	RegisterOpen   RegisterStatus = "OPEN"
	RegisterClosed RegisterStatus = "CLOSED"
)

// RegisterSession is one cash drawer shift: opened with a float, sales accrue
// against it, closed with a counted amount. At most one OPEN session per user.
type RegisterSession struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Status RegisterStatus `gorm:"type:varchar(10);not null;default:'OPEN';index" json:"status"`

	OpeningFloat decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"opening_float"`
	// Cash counted at close; ExpectedCash and Difference are computed then.
	CountedCash  decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"counted_cash"`
	ExpectedCash decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"expected_cash"`
	Difference   decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"difference"`

	OpenedAt time.Time  `gorm:"not null" json:"opened_at"`
	ClosedAt *time.Time `json:"closed_at,omitempty"`
	Note     string     `gorm:"type:text" json:"note,omitempty"`
}
