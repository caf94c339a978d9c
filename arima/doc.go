// Package arima implements AutoRegressive Integrated Moving Average (ARIMA) models.
//
// An ARIMA(p,d,q) model combines:
//   - AR(p): AutoRegressive component with p lags
//   - I(d): Integration (differencing) of order d
//   - MA(q): Moving Average component with q lags
//
// # Estimation
//
// Fit differences the series d times and maximises the exact Gaussian
// likelihood of the resulting ARMA(p,q) process. The likelihood is
// evaluated with a Kalman filter on the state space form, with the
// innovation variance concentrated out. Starting values come from
// Yule-Walker and a short conditional sum of squares refinement, and the
// optimiser (Nelder-Mead) works on a transformed parameter space that
// keeps the AR part stationary and the MA part invertible. No random
// numbers are involved, so fits are reproducible.
//
// Differenced models carry no constant; a mean is estimated when d = 0.
//
// # Basic Usage
//
//	model := arima.New(1, 1, 1)
//	if err := model.Fit(series); err != nil {
//	    log.Fatal(err)
//	}
//
//	fc, _ := model.Forecast(26, 0.95)
//	// fc.Mean, fc.Lower, fc.Upper
//
// Use Summary for information criteria (AIC, AICc, BIC) and the
// log-likelihood of a fitted model.
package arima
