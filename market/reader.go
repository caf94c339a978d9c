package market

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/sartorproj/cropforecast/timeseries"
)

// LoadFile reads a price table from path. Files ending in .xlsx are read
// as spreadsheets, anything else as comma separated text.
func LoadFile(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var table *Table
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		table, err = ReadXLSX(file)
	} else {
		table, err = ReadCSV(file)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// ReadCSV reads a price table with a header row from r.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, err
	}
	cols, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	var records []PriceRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
		}
		line, _ := reader.FieldPos(0)

		rec, err := cols.parse(row, timeseries.ParseTime)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrNoData
	}
	return NewTable(records), nil
}

// ReadXLSX reads a price table from the first sheet of a workbook. Week
// cells may hold Excel date serials or date strings.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	cols, err := locateColumns(rows[0])
	if err != nil {
		return nil, err
	}

	var records []PriceRecord
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		rec, err := cols.parse(row, parseExcelDate)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrNoData
	}
	return NewTable(records), nil
}

// parseExcelDate accepts a date serial number or a date string.
func parseExcelDate(s string) (time.Time, error) {
	if serial, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && serial > 0 {
		ts, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, err
		}
		return timeseries.Midnight(ts), nil
	}
	return timeseries.ParseTime(s)
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// columns holds the header positions of the required fields.
type columns struct {
	commodity, week, price int
}

func locateColumns(header []string) (columns, error) {
	cols := columns{commodity: -1, week: -1, price: -1}
	for i, h := range header {
		switch strings.TrimSpace(strings.Trim(strings.TrimPrefix(h, "\ufeff"), "\"")) {
		case ColumnCommodity:
			cols.commodity = i
		case ColumnWeek:
			cols.week = i
		case ColumnPrice:
			cols.price = i
		}
	}

	var missing []string
	if cols.commodity < 0 {
		missing = append(missing, ColumnCommodity)
	}
	if cols.week < 0 {
		missing = append(missing, ColumnWeek)
	}
	if cols.price < 0 {
		missing = append(missing, ColumnPrice)
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return cols, nil
}

func (c columns) parse(row []string, parseDate func(string) (time.Time, error)) (PriceRecord, error) {
	field := func(i int) string {
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(strings.Trim(row[i], "\""))
	}

	commodity := field(c.commodity)
	if commodity == "" {
		return PriceRecord{}, fmt.Errorf("%w: empty %s", ErrMalformedRow, ColumnCommodity)
	}

	week, err := parseDate(field(c.week))
	if err != nil {
		return PriceRecord{}, fmt.Errorf("%w: %s: %v", ErrMalformedRow, ColumnWeek, err)
	}

	price, err := decimal.NewFromString(field(c.price))
	if err != nil {
		return PriceRecord{}, fmt.Errorf("%w: %s %q", ErrMalformedRow, ColumnPrice, field(c.price))
	}

	return PriceRecord{Commodity: commodity, Week: week, Price: price}, nil
}
