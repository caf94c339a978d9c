// Package arima implements ARIMA (AutoRegressive Integrated Moving Average) models.
package arima

import (
	"errors"
	"fmt"
	"math"

	"github.com/sartorproj/cropforecast/timeseries"
)

var (
	// ErrInvalidOrder is returned by Fit for negative orders.
	ErrInvalidOrder = errors.New("arima: order components must be non-negative")
	// ErrInsufficientData is returned when the series is too short for the order.
	ErrInsufficientData = errors.New("arima: insufficient data points for the specified order")
	// ErrDegenerateSeries is returned when the differenced series has no variation.
	ErrDegenerateSeries = errors.New("arima: differenced series has zero variance")
	// ErrNotConverged is returned when maximum likelihood estimation fails.
	ErrNotConverged = errors.New("arima: likelihood optimisation did not converge")
	// ErrNotFitted is returned when forecasting from an unfitted model.
	ErrNotFitted = errors.New("arima: model must be fitted before prediction")
	// ErrInvalidSteps is returned for a forecast horizon below one.
	ErrInvalidSteps = errors.New("arima: steps must be at least 1")
)

// Order represents ARIMA model order (p, d, q).
type Order struct {
	P int // AR order (number of autoregressive terms)
	D int // Differencing order
	Q int // MA order (number of moving average terms)
}

func (o Order) String() string {
	return fmt.Sprintf("ARIMA(%d,%d,%d)", o.P, o.D, o.Q)
}

// Model represents an ARIMA model.
type Model struct {
	Order       Order
	ARCoeffs    []float64 // AR coefficients (phi)
	MACoeffs    []float64 // MA coefficients (theta)
	IncludeMean bool      // Estimate a mean for the differenced series
	Mean        float64
	Variance    float64 // Innovation variance (sigma^2)
	AIC         float64
	AICc        float64 // Corrected AIC for small sample sizes
	BIC         float64
	LogLik      float64
	Evaluations int // Likelihood evaluations used by the optimiser

	fitted   bool
	data     *timeseries.Series
	diffData *timeseries.Series
	state    []float64 // one-step-ahead state after the last observation
}

// New creates a new ARIMA model with the specified order. A mean term is
// estimated only when no differencing is applied.
func New(p, d, q int) *Model {
	return &Model{
		Order:       Order{P: p, D: d, Q: q},
		ARCoeffs:    make([]float64, max(p, 0)),
		MACoeffs:    make([]float64, max(q, 0)),
		IncludeMean: d == 0,
	}
}

// MinObservations is the shortest series Fit accepts for the order.
func (o Order) MinObservations() int {
	return o.D + o.P + o.Q + 1
}

// Fit estimates the model parameters by exact Gaussian maximum likelihood.
// The result is deterministic for a given series and order.
func (m *Model) Fit(series *timeseries.Series) error {
	if m.Order.P < 0 || m.Order.D < 0 || m.Order.Q < 0 {
		return ErrInvalidOrder
	}
	if series.Len() < m.Order.MinObservations() {
		return fmt.Errorf("%w: %s needs %d observations, got %d",
			ErrInsufficientData, m.Order, m.Order.MinObservations(), series.Len())
	}

	m.fitted = false
	m.data = series

	diffSeries := series
	for i := 0; i < m.Order.D; i++ {
		diffSeries = diffSeries.Diff()
	}
	m.diffData = diffSeries

	if diffSeries.Variance() == 0 {
		return ErrDegenerateSeries
	}

	if err := m.fitMLE(); err != nil {
		return err
	}

	m.calculateIC()
	m.fitted = true
	return nil
}

// calculateIC calculates AIC, AICc, and BIC.
func (m *Model) calculateIC() {
	n := float64(m.diffData.Len())
	k := float64(m.numParams())

	// AIC = -2*loglik + 2*k
	m.AIC = -2*m.LogLik + 2*k

	// AICc = AIC + 2*k*(k+1)/(n-k-1)
	if n-k-1 > 0 {
		m.AICc = m.AIC + 2*k*(k+1)/(n-k-1)
	} else {
		m.AICc = math.Inf(1)
	}

	// BIC = -2*loglik + k*log(n)
	m.BIC = -2*m.LogLik + k*math.Log(n)
}

// numParams counts AR, MA, mean and variance parameters.
func (m *Model) numParams() int {
	k := m.Order.P + m.Order.Q + 1
	if m.IncludeMean {
		k++
	}
	return k
}

// Summary holds the estimated parameters and fit statistics.
type Summary struct {
	Order    Order
	ARCoeffs []float64
	MACoeffs []float64
	Mean     float64
	Variance float64
	AIC      float64
	AICc     float64 // Corrected AIC
	BIC      float64
	LogLik   float64
	NObs     int
}

// Summary returns a summary of the fitted model.
func (m *Model) Summary() *Summary {
	if !m.fitted {
		return nil
	}

	return &Summary{
		Order:    m.Order,
		ARCoeffs: append([]float64(nil), m.ARCoeffs...),
		MACoeffs: append([]float64(nil), m.MACoeffs...),
		Mean:     m.Mean,
		Variance: m.Variance,
		AIC:      m.AIC,
		AICc:     m.AICc,
		BIC:      m.BIC,
		LogLik:   m.LogLik,
		NObs:     m.data.Len(),
	}
}
