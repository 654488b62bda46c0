package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Row parsing for spreadsheet imports. Sheets come from the legacy tracking
// workbooks, so cells are forgiving: currency symbols, thousands separators
// and a couple of date formats are accepted.

var (
	ErrEmptyRow       = errors.New("row is empty")
	ErrNameRequired   = errors.New("property name is required")
	ErrAddrRequired   = errors.New("address is required")
	ErrBadDate        = errors.New("date is invalid")
	ErrBadAmount      = errors.New("amount is invalid")
	ErrAmountZero     = errors.New("amount must be greater than zero")
	ErrDetailRequired = errors.New("description is required")
)

// PropertyRow is one row of the "Properties" sheet:
// name | address | latitude | longitude | purchase_date | purchase_price | notes
type PropertyRow struct {
	Name          string
	Address       string
	Latitude      *float64
	Longitude     *float64
	PurchaseDate  *time.Time
	PurchasePrice *decimal.Decimal
	Notes         string
}

// RecordRow is one row of the "Work", "Income" or "Expenses" sheets:
// property | description/details | date | amount | payment_method
type RecordRow struct {
	PropertyName  string
	Details       string
	Date          time.Time
	Amount        decimal.Decimal
	PaymentMethod string
}

func cell(cells []string, i int) string {
	if i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

func rowEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseDateCell(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "02/01/2006", "2/1/2006"} {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, ErrBadDate
}

func parseAmountCell(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(s, "$"))
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, ErrBadAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrBadAmount
	}
	return d, nil
}

func parseFloatCell(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %q", s)
	}
	return &f, nil
}

// ParsePropertyRow validates one Properties-sheet row. Optional columns may
// be blank; name and address are mandatory.
func ParsePropertyRow(cells []string) (*PropertyRow, error) {
	if rowEmpty(cells) {
		return nil, ErrEmptyRow
	}

	row := &PropertyRow{
		Name:    cell(cells, 0),
		Address: cell(cells, 1),
		Notes:   cell(cells, 6),
	}
	if row.Name == "" {
		return nil, ErrNameRequired
	}
	if row.Address == "" {
		return nil, ErrAddrRequired
	}

	var err error
	if row.Latitude, err = parseFloatCell(cell(cells, 2)); err != nil {
		return nil, fmt.Errorf("latitude: %w", err)
	}
	if row.Longitude, err = parseFloatCell(cell(cells, 3)); err != nil {
		return nil, fmt.Errorf("longitude: %w", err)
	}

	if s := cell(cells, 4); s != "" {
		d, err := parseDateCell(s)
		if err != nil {
			return nil, fmt.Errorf("purchase_date: %w", err)
		}
		row.PurchaseDate = &d
	}
	if s := cell(cells, 5); s != "" {
		amount, err := parseAmountCell(s)
		if err != nil {
			return nil, fmt.Errorf("purchase_price: %w", err)
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("purchase_price: %w", ErrBadAmount)
		}
		row.PurchasePrice = &amount
	}

	return row, nil
}

// ParseRecordRow validates one row of a record sheet. The date is mandatory.
// Income and expense amounts must be strictly positive; work costs only have
// to be non-negative, since unpaid work is recorded with a zero cost.
func ParseRecordRow(cells []string, requirePositive bool) (*RecordRow, error) {
	if rowEmpty(cells) {
		return nil, ErrEmptyRow
	}

	row := &RecordRow{
		PropertyName:  cell(cells, 0),
		Details:       cell(cells, 1),
		PaymentMethod: cell(cells, 4),
	}
	if row.PropertyName == "" {
		return nil, ErrNameRequired
	}
	if row.Details == "" {
		return nil, ErrDetailRequired
	}

	date, err := parseDateCell(cell(cells, 2))
	if err != nil {
		return nil, err
	}
	row.Date = date

	amount, err := parseAmountCell(cell(cells, 3))
	if err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, ErrBadAmount
	}
	if requirePositive && !amount.IsPositive() {
		return nil, ErrAmountZero
	}
	row.Amount = amount

	return row, nil
}
