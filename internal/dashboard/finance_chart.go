package dashboard

import (
	"fmt"
	"sort"
	"time"

	"propintel-backend/internal/auth"
	"propintel-backend/internal/database"
	"propintel-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type FinanceChartPoint struct {
	Label   string          `json:"label"` // day or month start
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Work    decimal.Decimal `json:"work"`
	Net     decimal.Decimal `json:"net"`
}

type FinanceChartTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Work    decimal.Decimal `json:"work"`
	Net     decimal.Decimal `json:"net"`
}

type FinanceChartResponse struct {
	Period      string              `json:"period"` // daily | monthly
	From        string              `json:"from"`
	To          string              `json:"to"`
	Points      []FinanceChartPoint `json:"points"`
	GrandTotals FinanceChartTotals  `json:"grand_totals"`
}

// BucketTotal is one time bucket's sum for a single series.
type BucketTotal struct {
	Bucket time.Time       `gorm:"column:bucket"`
	Total  decimal.Decimal `gorm:"column:total"`
}

// mergeChartSeries lines the three series up on their buckets, filling zeros
// where a series has no activity, oldest bucket first.
func mergeChartSeries(income, expense, work []BucketTotal) ([]FinanceChartPoint, FinanceChartTotals) {
	type bucketAgg struct {
		income  decimal.Decimal
		expense decimal.Decimal
		work    decimal.Decimal
	}

	buckets := make(map[time.Time]*bucketAgg)
	get := func(t time.Time) *bucketAgg {
		agg, ok := buckets[t]
		if !ok {
			agg = &bucketAgg{income: decimal.Zero, expense: decimal.Zero, work: decimal.Zero}
			buckets[t] = agg
		}
		return agg
	}

	for _, r := range income {
		get(r.Bucket).income = r.Total
	}
	for _, r := range expense {
		get(r.Bucket).expense = r.Total
	}
	for _, r := range work {
		get(r.Bucket).work = r.Total
	}

	ordered := make([]time.Time, 0, len(buckets))
	for t := range buckets {
		ordered = append(ordered, t)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Before(ordered[j]) })

	points := make([]FinanceChartPoint, 0, len(ordered))
	grand := FinanceChartTotals{
		Income:  decimal.Zero,
		Expense: decimal.Zero,
		Work:    decimal.Zero,
	}

	for _, t := range ordered {
		agg := buckets[t]
		points = append(points, FinanceChartPoint{
			Label:   t.Format("2006-01-02"),
			Income:  agg.income,
			Expense: agg.expense,
			Work:    agg.work,
			Net:     agg.income.Sub(agg.expense),
		})
		grand.Income = grand.Income.Add(agg.income)
		grand.Expense = grand.Expense.Add(agg.expense)
		grand.Work = grand.Work.Add(agg.work)
	}
	grand.Net = grand.Income.Sub(grand.Expense)

	return points, grand
}

// bucketSQL builds the aggregation query for one record table. Hidden
// properties stay in the sums for admins, matching the property list.
func bucketSQL(table, trunc string, includeHidden bool) string {
	hiddenFilter := ""
	if !includeHidden {
		hiddenFilter = "\n		  AND property_id IN (SELECT id FROM properties WHERE is_hidden = false)"
	}
	return fmt.Sprintf(`
		SELECT date_trunc('%s', date)::date AS bucket,
		       SUM(%s) AS total
		FROM %s
		WHERE date >= ? AND date <= ?%s
		GROUP BY bucket
		ORDER BY bucket ASC;
	`, trunc, amountColumn(table), table, hiddenFilter)
}

func bucketTotals(table, trunc string, start, end time.Time, includeHidden bool) ([]BucketTotal, error) {
	var rows []BucketTotal
	err := database.DB.Raw(bucketSQL(table, trunc, includeHidden), start, end).Scan(&rows).Error
	return rows, err
}

func amountColumn(table string) string {
	if table == "work_records" {
		return "cost"
	}
	return "amount"
}

// GET /api/dashboard/finance-chart?period=monthly&count=12
// Portfolio-wide income/expense/work sums per day or month, for the
// dashboard chart.
func FinanceChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		period := c.Query("period", "monthly") // daily | monthly
		countStr := c.Query("count", "")

		var count int
		if countStr == "" {
			switch period {
			case "daily":
				count = 30
			default:
				period = "monthly"
				count = 12
			}
		} else {
			if _, err := fmt.Sscan(countStr, &count); err != nil || count <= 0 || count > 120 {
				return fiber.NewError(fiber.StatusBadRequest, "count is invalid")
			}
		}

		now := time.Now()
		loc := now.Location()
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		var start time.Time
		trunc := "day"

		switch period {
		case "daily":
			start = end.AddDate(0, 0, -(count - 1))
		default:
			period = "monthly"
			trunc = "month"
			monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
			start = monthStart.AddDate(0, -(count - 1), 0)
			end = monthStart.AddDate(0, 1, -1) // last day of the current month
		}

		role, _ := c.Locals(auth.CtxUserRoleKey).(models.UserRole)
		includeHidden := role == models.RoleAdmin

		incomeRows, err := bucketTotals("income_records", trunc, start, end, includeHidden)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not aggregate income")
		}
		expenseRows, err := bucketTotals("expense_records", trunc, start, end, includeHidden)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not aggregate expenses")
		}
		workRows, err := bucketTotals("work_records", trunc, start, end, includeHidden)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not aggregate work costs")
		}

		points, grand := mergeChartSeries(incomeRows, expenseRows, workRows)

		return c.JSON(FinanceChartResponse{
			Period:      period,
			From:        start.Format("2006-01-02"),
			To:          end.Format("2006-01-02"),
			Points:      points,
			GrandTotals: grand,
		})
	}
}
