// Package stats provides autocorrelation analysis for time series.
//
//	acf := stats.ACF(series, 20) // lags 0..20
//
// YuleWalker turns autocorrelations into AR coefficients and is used to
// seed the ARIMA optimiser:
//
//	phi := stats.YuleWalker(acf, 2)
package stats
