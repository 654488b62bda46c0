package ledger

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrDateRequired   = errors.New("date is required")
	ErrDateFormat     = errors.New("date must be 'YYYY-MM-DD'")
	ErrAmountRequired = errors.New("amount is required")
	ErrAmountPositive = errors.New("amount must be greater than zero")
	ErrCostNegative   = errors.New("cost cannot be negative")
)

// ParseRecordDate parses the mandatory calendar-date field of a record.
// Records carry dates only, never a time of day.
func ParseRecordDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrDateRequired
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrDateFormat
	}
	return d, nil
}

// ValidateAmount checks the required positive amount of an income or
// expense record.
func ValidateAmount(d *decimal.Decimal) (decimal.Decimal, error) {
	if d == nil {
		return decimal.Zero, ErrAmountRequired
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrAmountPositive
	}
	return *d, nil
}

// ValidateCost checks the optional work cost; a missing cost is zero.
func ValidateCost(d *decimal.Decimal) (decimal.Decimal, error) {
	if d == nil {
		return decimal.Zero, nil
	}
	if d.IsNegative() {
		return decimal.Zero, ErrCostNegative
	}
	return *d, nil
}
