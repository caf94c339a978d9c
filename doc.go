// Package cropforecast forecasts weekly agricultural commodity prices.
//
// The cropforecast command loads a table of weekly average modal prices,
// asks the user to pick a commodity, fits an ARIMA(1,1,1) model to its
// history, charts 26 weeks of forecasts and then answers date queries
// against the forecast.
//
// # Packages
//
//   - timeseries: Series type, differencing and date parsing
//   - stats: autocorrelation and Yule-Walker estimates
//   - arima: ARIMA estimation and forecasting
//   - market: price table loading (CSV, XLSX) and per-commodity series
//   - forecast: the fixed weekly forecaster and date lookup
//   - chart: rendering observed and forecast prices
//   - console: interactive crop selection and date queries
//   - app: one interactive session
//   - config, logger: configuration and structured logging
package cropforecast
