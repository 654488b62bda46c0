package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseRecordDate(t *testing.T) {
	d, err := ParseRecordDate("2024-02-01")
	if err != nil {
		t.Fatalf("valid date rejected: %v", err)
	}
	if d.Year() != 2024 || d.Month() != 2 || d.Day() != 1 {
		t.Errorf("parsed %v, want 2024-02-01", d)
	}

	if _, err := ParseRecordDate(""); !errors.Is(err, ErrDateRequired) {
		t.Errorf("empty date: got %v, want ErrDateRequired", err)
	}
	for _, bad := range []string{"01/02/2024", "2024-13-01", "yesterday", "2024-02-01T10:00:00Z"} {
		if _, err := ParseRecordDate(bad); !errors.Is(err, ErrDateFormat) {
			t.Errorf("ParseRecordDate(%q): got %v, want ErrDateFormat", bad, err)
		}
	}
}

func TestValidateAmount(t *testing.T) {
	amount := decimal.RequireFromString("1200.00")
	got, err := ValidateAmount(&amount)
	if err != nil {
		t.Fatalf("valid amount rejected: %v", err)
	}
	if !got.Equal(amount) {
		t.Errorf("got %s, want %s", got, amount)
	}

	if _, err := ValidateAmount(nil); !errors.Is(err, ErrAmountRequired) {
		t.Errorf("nil amount: got %v, want ErrAmountRequired", err)
	}

	zero := decimal.Zero
	if _, err := ValidateAmount(&zero); !errors.Is(err, ErrAmountPositive) {
		t.Errorf("zero amount: got %v, want ErrAmountPositive", err)
	}
	neg := decimal.RequireFromString("-5.00")
	if _, err := ValidateAmount(&neg); !errors.Is(err, ErrAmountPositive) {
		t.Errorf("negative amount: got %v, want ErrAmountPositive", err)
	}
}

func TestValidateCost(t *testing.T) {
	// Missing cost defaults to zero, matching the old work form
	got, err := ValidateCost(nil)
	if err != nil {
		t.Fatalf("nil cost rejected: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("nil cost = %s, want 0", got)
	}

	zero := decimal.Zero
	if got, err := ValidateCost(&zero); err != nil || !got.IsZero() {
		t.Errorf("zero cost: got %s, %v", got, err)
	}

	neg := decimal.RequireFromString("-1.00")
	if _, err := ValidateCost(&neg); !errors.Is(err, ErrCostNegative) {
		t.Errorf("negative cost: got %v, want ErrCostNegative", err)
	}
}
