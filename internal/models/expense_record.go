package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseRecord - money-out entry tied to a property. Append-only.
type ExpenseRecord struct {
	ID            uint            `gorm:"primaryKey"`
	PropertyID    uint            `gorm:"index;not null"`
	Property      Property        `gorm:"foreignKey:PropertyID"`
	Amount        decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Date          time.Time       `gorm:"type:date;index;not null"`
	Details       string          `gorm:"type:text"`
	PaymentMethod string          `gorm:"size:50"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
