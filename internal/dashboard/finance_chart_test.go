package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func bucket(t *testing.T, s string) time.Time {
	t.Helper()
	b, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad bucket literal %q: %v", s, err)
	}
	return b
}

func TestMergeChartSeries(t *testing.T) {
	feb := bucket(t, "2024-02-01")
	mar := bucket(t, "2024-03-01")

	income := []BucketTotal{
		{Bucket: mar, Total: decimal.RequireFromString("5000.00")},
		{Bucket: feb, Total: decimal.RequireFromString("5000.00")},
	}
	expense := []BucketTotal{
		{Bucket: mar, Total: decimal.RequireFromString("450.00")},
	}
	work := []BucketTotal{
		{Bucket: feb, Total: decimal.RequireFromString("200.00")},
	}

	points, grand := mergeChartSeries(income, expense, work)

	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	if points[0].Label != "2024-02-01" || points[1].Label != "2024-03-01" {
		t.Errorf("labels = %q, %q; want chronological order", points[0].Label, points[1].Label)
	}

	// February: no expenses, zero-filled; net ignores work
	if !points[0].Expense.IsZero() {
		t.Errorf("feb expense = %s, want 0", points[0].Expense)
	}
	if want := decimal.RequireFromString("5000.00"); !points[0].Net.Equal(want) {
		t.Errorf("feb net = %s, want %s", points[0].Net, want)
	}
	if want := decimal.RequireFromString("200.00"); !points[0].Work.Equal(want) {
		t.Errorf("feb work = %s, want %s", points[0].Work, want)
	}

	if want := decimal.RequireFromString("10000.00"); !grand.Income.Equal(want) {
		t.Errorf("grand income = %s, want %s", grand.Income, want)
	}
	if want := decimal.RequireFromString("9550.00"); !grand.Net.Equal(want) {
		t.Errorf("grand net = %s, want %s", grand.Net, want)
	}
}

func TestMergeChartSeriesEmpty(t *testing.T) {
	points, grand := mergeChartSeries(nil, nil, nil)
	if len(points) != 0 {
		t.Errorf("got %d points, want 0", len(points))
	}
	if !grand.Income.IsZero() || !grand.Expense.IsZero() || !grand.Work.IsZero() || !grand.Net.IsZero() {
		t.Errorf("grand totals not zero: %+v", grand)
	}
}

func TestBucketSQLHiddenFilter(t *testing.T) {
	viewer := bucketSQL("income_records", "month", false)
	if !strings.Contains(viewer, "is_hidden = false") {
		t.Error("non-admin query should exclude hidden properties")
	}

	admin := bucketSQL("income_records", "month", true)
	if strings.Contains(admin, "is_hidden") {
		t.Error("admin query should not filter on is_hidden")
	}

	work := bucketSQL("work_records", "day", false)
	if !strings.Contains(work, "SUM(cost)") {
		t.Error("work query should sum the cost column")
	}
	if !strings.Contains(work, "date_trunc('day'") {
		t.Error("work query should truncate to day")
	}
}
