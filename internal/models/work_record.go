package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkRecord - a maintenance/repair cost entry tied to a property.
// Append-only: there is no update or delete path.
type WorkRecord struct {
	ID            uint            `gorm:"primaryKey"`
	PropertyID    uint            `gorm:"index;not null"`
	Property      Property        `gorm:"foreignKey:PropertyID"`
	Description   string          `gorm:"type:text;not null"`
	Date          time.Time       `gorm:"type:date;index;not null"`
	Cost          decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	PaymentMethod string          `gorm:"size:50"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
