package financial

import (
	"sort"

	"propintel-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Totals are exact decimal sums over a property's records. Work cost is
// reported separately and is not part of the net figure: the net the user
// sees has always been income minus expenses.
type Totals struct {
	Income  decimal.Decimal `json:"income_total"`
	Expense decimal.Decimal `json:"expense_total"`
	Work    decimal.Decimal `json:"work_total"`
	Net     decimal.Decimal `json:"net_total"`
}

// MonthTotal is one month's sum for a single series, month formatted "YYYY-MM".
type MonthTotal struct {
	Month string          `gorm:"column:month"`
	Total decimal.Decimal `gorm:"column:total"`
}

// TrendPoint pairs the income and expense sums of one month for charting.
type TrendPoint struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// ComputeTotals reduces a property's records to exact totals. Empty slices
// yield all-zero totals.
func ComputeTotals(incomes []models.IncomeRecord, expenses []models.ExpenseRecord, works []models.WorkRecord) Totals {
	t := Totals{
		Income:  decimal.Zero,
		Expense: decimal.Zero,
		Work:    decimal.Zero,
	}

	for _, r := range incomes {
		t.Income = t.Income.Add(r.Amount)
	}
	for _, r := range expenses {
		t.Expense = t.Expense.Add(r.Amount)
	}
	for _, r := range works {
		t.Work = t.Work.Add(r.Cost)
	}

	t.Net = t.Income.Sub(t.Expense)
	return t
}

// MergeTrends combines per-month income and expense sums into one ordered
// series. Labels are the union of months seen on either side, sorted
// ascending ("YYYY-MM" sorts chronologically); a month active on only one
// side gets a zero on the other. Months with no activity at all are omitted.
func MergeTrends(income, expense []MonthTotal) []TrendPoint {
	incomeByMonth := make(map[string]decimal.Decimal, len(income))
	for _, m := range income {
		incomeByMonth[m.Month] = m.Total
	}
	expenseByMonth := make(map[string]decimal.Decimal, len(expense))
	for _, m := range expense {
		expenseByMonth[m.Month] = m.Total
	}

	months := make([]string, 0, len(incomeByMonth)+len(expenseByMonth))
	seen := make(map[string]bool)
	for m := range incomeByMonth {
		if !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}
	for m := range expenseByMonth {
		if !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}
	sort.Strings(months)

	points := make([]TrendPoint, 0, len(months))
	for _, m := range months {
		in, ok := incomeByMonth[m]
		if !ok {
			in = decimal.Zero
		}
		out, ok := expenseByMonth[m]
		if !ok {
			out = decimal.Zero
		}
		points = append(points, TrendPoint{Month: m, Income: in, Expense: out})
	}

	return points
}
