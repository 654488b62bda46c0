package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Property - a tracked real-estate asset. Rows are never deleted; work,
// income and expense records reference them by foreign key.
type Property struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"size:255;not null"`
	Address       string `gorm:"type:text;not null"`
	Latitude      *float64
	Longitude     *float64
	PurchaseDate  *time.Time       `gorm:"type:date"`
	PurchasePrice *decimal.Decimal `gorm:"type:numeric(12,2)"`
	CurrentValue  *decimal.Decimal `gorm:"type:numeric(12,2)"`
	Notes         string           `gorm:"type:text"`
	IsHidden      bool             `gorm:"default:false"` // hidden from list/map for non-admins
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
