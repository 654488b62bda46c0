package financial

import (
	"testing"
	"time"

	"propintel-backend/internal/models"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date literal %q: %v", s, err)
	}
	return d
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil, nil, nil)

	for name, got := range map[string]decimal.Decimal{
		"income":  totals.Income,
		"expense": totals.Expense,
		"work":    totals.Work,
		"net":     totals.Net,
	} {
		if !got.IsZero() {
			t.Errorf("%s total = %s, want 0 for a property with no records", name, got)
		}
	}
}

func TestComputeTotalsWorkedExample(t *testing.T) {
	incomes := []models.IncomeRecord{
		{Amount: dec(t, "5000.00"), Date: day(t, "2024-02-01")},
		{Amount: dec(t, "5000.00"), Date: day(t, "2024-03-01")},
	}
	expenses := []models.ExpenseRecord{
		{Amount: dec(t, "1200.00"), Date: day(t, "2024-02-15")},
		{Amount: dec(t, "450.00"), Date: day(t, "2024-03-10")},
	}

	totals := ComputeTotals(incomes, expenses, nil)

	if want := dec(t, "10000.00"); !totals.Income.Equal(want) {
		t.Errorf("income total = %s, want %s", totals.Income, want)
	}
	if want := dec(t, "1650.00"); !totals.Expense.Equal(want) {
		t.Errorf("expense total = %s, want %s", totals.Expense, want)
	}
	if want := dec(t, "8350.00"); !totals.Net.Equal(want) {
		t.Errorf("net total = %s, want %s", totals.Net, want)
	}
}

func TestComputeTotalsNetExcludesWork(t *testing.T) {
	incomes := []models.IncomeRecord{{Amount: dec(t, "1000.00")}}
	expenses := []models.ExpenseRecord{{Amount: dec(t, "300.00")}}
	works := []models.WorkRecord{{Cost: dec(t, "250.00")}}

	totals := ComputeTotals(incomes, expenses, works)

	if want := dec(t, "250.00"); !totals.Work.Equal(want) {
		t.Errorf("work total = %s, want %s", totals.Work, want)
	}
	// Work cost is informational; net stays income minus expenses
	if want := dec(t, "700.00"); !totals.Net.Equal(want) {
		t.Errorf("net total = %s, want %s", totals.Net, want)
	}
}

func TestComputeTotalsExactDecimals(t *testing.T) {
	// Classic float trap: 0.1 + 0.2
	incomes := []models.IncomeRecord{
		{Amount: dec(t, "0.10")},
		{Amount: dec(t, "0.20")},
	}
	totals := ComputeTotals(incomes, nil, nil)

	if want := dec(t, "0.30"); !totals.Income.Equal(want) {
		t.Errorf("income total = %s, want exactly %s", totals.Income, want)
	}
	if !totals.Net.Equal(totals.Income.Sub(totals.Expense)) {
		t.Errorf("net total %s is not income - expense", totals.Net)
	}
}

func TestMergeTrendsUnionAndZeroFill(t *testing.T) {
	income := []MonthTotal{
		{Month: "2024-02", Total: dec(t, "5000.00")},
		{Month: "2024-03", Total: dec(t, "5000.00")},
	}
	expense := []MonthTotal{
		{Month: "2024-03", Total: dec(t, "450.00")},
		{Month: "2024-05", Total: dec(t, "90.00")},
	}

	points := MergeTrends(income, expense)

	wantMonths := []string{"2024-02", "2024-03", "2024-05"}
	if len(points) != len(wantMonths) {
		t.Fatalf("got %d points, want %d", len(points), len(wantMonths))
	}
	for i, m := range wantMonths {
		if points[i].Month != m {
			t.Errorf("point %d month = %q, want %q", i, points[i].Month, m)
		}
	}

	// 2024-02 has no expenses, 2024-05 has no income: both zero-filled
	if !points[0].Expense.IsZero() {
		t.Errorf("2024-02 expense = %s, want 0", points[0].Expense)
	}
	if !points[2].Income.IsZero() {
		t.Errorf("2024-05 income = %s, want 0", points[2].Income)
	}
	// 2024-04 had no activity on either side and must be omitted
	for _, p := range points {
		if p.Month == "2024-04" {
			t.Error("2024-04 should be omitted, not zero-filled")
		}
	}
}

func TestMergeTrendsEmpty(t *testing.T) {
	points := MergeTrends(nil, nil)
	if len(points) != 0 {
		t.Errorf("got %d points for empty inputs, want 0", len(points))
	}
}

func TestMergeTrendsChronologicalOrder(t *testing.T) {
	income := []MonthTotal{
		{Month: "2024-12", Total: dec(t, "1.00")},
		{Month: "2023-01", Total: dec(t, "1.00")},
		{Month: "2024-01", Total: dec(t, "1.00")},
	}

	points := MergeTrends(income, nil)

	for i := 1; i < len(points); i++ {
		if points[i-1].Month >= points[i].Month {
			t.Fatalf("months out of order: %q before %q", points[i-1].Month, points[i].Month)
		}
	}
}
