// Package timeseries provides core time series data structures and operations.
package timeseries

import (
	"errors"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Week is the stride between consecutive observations of a weekly series.
const Week = 7 * 24 * time.Hour

// ErrLengthMismatch is returned when timestamps and values differ in length.
var ErrLengthMismatch = errors.New("timestamps and values must have the same length")

// Series represents a time series with timestamps and values.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// New creates a series from values alone. Timestamps are left empty; use
// NewWithTimestamps when the dates matter.
func New(values []float64) *Series {
	return &Series{Values: values}
}

// NewWithTimestamps creates a time series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, ErrLengthMismatch
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// Weekly builds a series whose timestamps start at start and advance one
// week per value.
func Weekly(start time.Time, values []float64) *Series {
	timestamps := make([]time.Time, len(values))
	for i := range timestamps {
		timestamps[i] = start.AddDate(0, 0, 7*i)
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// HasTimestamps reports whether every value carries a timestamp.
func (s *Series) HasTimestamps() bool {
	return len(s.Values) > 0 && len(s.Timestamps) == len(s.Values)
}

// Last returns the final timestamp and value. ok is false for an empty
// series or one without timestamps.
func (s *Series) Last() (ts time.Time, v float64, ok bool) {
	if !s.HasTimestamps() {
		return time.Time{}, math.NaN(), false
	}
	n := len(s.Values) - 1
	return s.Timestamps[n], s.Values[n], true
}

// Mean calculates the arithmetic mean of the series.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return stat.Mean(s.Values, nil)
}

// Variance calculates the sample variance of the series.
func (s *Series) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	return stat.Variance(s.Values, nil)
}

// Diff calculates the first difference of the series. Each difference
// keeps the later of its two timestamps.
func (s *Series) Diff() *Series {
	if len(s.Values) <= 1 {
		return &Series{Values: []float64{}, Name: s.Name}
	}

	result := make([]float64, len(s.Values)-1)
	for i := 1; i < len(s.Values); i++ {
		result[i-1] = s.Values[i] - s.Values[i-1]
	}

	var timestamps []time.Time
	if len(s.Timestamps) == len(s.Values) {
		timestamps = make([]time.Time, len(result))
		copy(timestamps, s.Timestamps[1:])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     result,
		Name:       s.Name + "_diff",
	}
}

// SortByTime orders the series chronologically in place. Entries with equal
// timestamps keep their relative order.
func (s *Series) SortByTime() {
	if !s.HasTimestamps() {
		return
	}
	sort.Stable(byTime{s})
}

// Duplicate returns the first timestamp that occurs more than once in a
// chronologically sorted series.
func (s *Series) Duplicate() (time.Time, bool) {
	for i := 1; i < len(s.Timestamps); i++ {
		if s.Timestamps[i].Equal(s.Timestamps[i-1]) {
			return s.Timestamps[i], true
		}
	}
	return time.Time{}, false
}

type byTime struct{ s *Series }

func (b byTime) Len() int { return len(b.s.Values) }

func (b byTime) Less(i, j int) bool {
	return b.s.Timestamps[i].Before(b.s.Timestamps[j])
}

func (b byTime) Swap(i, j int) {
	b.s.Timestamps[i], b.s.Timestamps[j] = b.s.Timestamps[j], b.s.Timestamps[i]
	b.s.Values[i], b.s.Values[j] = b.s.Values[j], b.s.Values[i]
}
