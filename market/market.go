// Package market loads weekly commodity price tables and extracts
// per-commodity price series.
package market

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/sartorproj/cropforecast/timeseries"
)

// Required column names.
const (
	ColumnCommodity = "Commodity"
	ColumnWeek      = "Week"
	ColumnPrice     = "Weekly_Avg_Modal_Price"
)

var (
	ErrMissingColumn    = errors.New("missing required column")
	ErrMalformedRow     = errors.New("malformed row")
	ErrNoData           = errors.New("no price records found")
	ErrUnknownCommodity = errors.New("unknown commodity")
	ErrDuplicateWeek    = errors.New("duplicate week for commodity")
)

// PriceRecord is one row of the price table.
type PriceRecord struct {
	Commodity string
	Week      time.Time
	Price     decimal.Decimal
}

// Table is an immutable in-memory price table.
type Table struct {
	records     []PriceRecord
	commodities []string
}

// NewTable builds a table from records. The commodity set is derived once,
// lower-cased, in first-occurrence order.
func NewTable(records []PriceRecord) *Table {
	t := &Table{records: make([]PriceRecord, len(records))}
	copy(t.records, records)

	seen := make(map[string]bool)
	for _, rec := range t.records {
		key := Normalize(rec.Commodity)
		if !seen[key] {
			seen[key] = true
			t.commodities = append(t.commodities, key)
		}
	}
	return t
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// Commodities returns the distinct lower-cased commodity names in the
// order they first appear.
func (t *Table) Commodities() []string {
	out := make([]string, len(t.commodities))
	copy(out, t.commodities)
	return out
}

// Series returns the chronologically ordered price history of commodity.
// Matching is case-insensitive. A commodity with two records for the same
// week is rejected with ErrDuplicateWeek.
func (t *Table) Series(commodity string) (*timeseries.Series, error) {
	key := Normalize(commodity)

	var (
		weeks  []time.Time
		prices []float64
	)
	for _, rec := range t.records {
		if Normalize(rec.Commodity) != key {
			continue
		}
		weeks = append(weeks, rec.Week)
		prices = append(prices, rec.Price.InexactFloat64())
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommodity, commodity)
	}

	series, err := timeseries.NewWithTimestamps(weeks, prices)
	if err != nil {
		return nil, err
	}
	series.Name = key
	series.SortByTime()

	if week, dup := series.Duplicate(); dup {
		return nil, fmt.Errorf("%w: %s on %s", ErrDuplicateWeek, key, week.Format(timeseries.DateLayout))
	}
	return series, nil
}

// Normalize folds a commodity name to its matching key.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DisplayName upper-cases the first letter of name and lower-cases the rest.
func DisplayName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(name[size:])
}
