package timeseries

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnparsableTime is returned by ParseTime when no layout matches.
var ErrUnparsableTime = errors.New("unrecognised date")

// DateLayout is the canonical layout used for parsing and display.
const DateLayout = "2006-01-02"

// layouts are tried in order. Month-first is preferred over day-first for
// slash-separated dates.
var layouts = []string{
	DateLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	time.RFC3339Nano,
	"2006/01/02",
	"2006/1/2",
	"2006-1-2",
	"01/02/2006",
	"1/2/2006",
	"1/2/06",
	"02-Jan-2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"20060102",
	"2006-01",
	"2006",
}

// ParseTime parses s with the first matching layout and returns it
// normalised to midnight UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(strings.Trim(s, "\""))
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty string", ErrUnparsableTime)
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return Midnight(ts), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparsableTime, s)
}

// Midnight drops the time of day, keeping the calendar date in UTC.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
