// Package timeseries provides time series data structures and utilities.
//
// A Series pairs timestamps with float64 values. Price histories loaded by
// the market package and forecasts produced by the forecast package are
// both carried as Series.
//
// # Creating a Series
//
//	values := []float64{100, 102, 105, 103, 108, 110}
//	series := timeseries.Weekly(start, values)
//
// # Ordering
//
// SortByTime orders observations chronologically, keeping the input order
// of equal timestamps. Duplicate reports the first repeated timestamp of a
// sorted series.
//
// # Transformations
//
//	diff := series.Diff() // First difference
//
// # Dates
//
// ParseTime accepts ISO dates as well as a handful of common layouts and
// always returns midnight UTC:
//
//	t, err := timeseries.ParseTime("2024-01-07")
package timeseries
