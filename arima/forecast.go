package arima

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Forecast holds point forecasts with their prediction intervals.
type Forecast struct {
	Mean   []float64
	StdErr []float64
	Lower  []float64
	Upper  []float64
	Level  float64 // Coverage of [Lower, Upper], e.g. 0.95
}

// Forecast generates forecasts with prediction intervals at the given
// coverage level. Forecast variances come from the psi-weights of the
// integrated model.
func (m *Model) Forecast(steps int, level float64) (*Forecast, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	if steps < 1 {
		return nil, ErrInvalidSteps
	}
	if level <= 0 || level >= 1 {
		return nil, fmt.Errorf("arima: interval level %v outside (0, 1)", level)
	}

	ss := newStateSpace(m.ARCoeffs, m.MACoeffs)
	state := make([]float64, len(m.state))
	copy(state, m.state)

	// Forecast the differenced series by propagating the filtered state.
	diffForecast := make([]float64, steps)
	next := make([]float64, ss.r)
	for h := 0; h < steps; h++ {
		diffForecast[h] = state[0] + m.Mean
		for i := 0; i < ss.r; i++ {
			next[i] = 0
			for j := 0; j < ss.r; j++ {
				next[i] += ss.T.At(i, j) * state[j]
			}
		}
		copy(state, next)
	}

	mean := diffForecast
	if m.Order.D > 0 {
		mean = m.integrate(diffForecast)
	}

	psi := m.psiWeights(steps)
	z := distuv.UnitNormal.Quantile(0.5 + level/2)

	fc := &Forecast{
		Mean:   mean,
		StdErr: make([]float64, steps),
		Lower:  make([]float64, steps),
		Upper:  make([]float64, steps),
		Level:  level,
	}
	cum := 0.0
	for h := 0; h < steps; h++ {
		cum += psi[h] * psi[h]
		se := math.Sqrt(m.Variance * cum)
		fc.StdErr[h] = se
		fc.Lower[h] = mean[h] - z*se
		fc.Upper[h] = mean[h] + z*se
	}
	return fc, nil
}

// psiWeights returns the first n coefficients of the MA(infinity)
// representation of the integrated model phi(B)(1-B)^d y = theta(B) e.
func (m *Model) psiWeights(n int) []float64 {
	// phi(B) as 1 - phi1 B - ... - phip B^p
	poly := make([]float64, len(m.ARCoeffs)+1)
	poly[0] = 1
	for i, phi := range m.ARCoeffs {
		poly[i+1] = -phi
	}
	for i := 0; i < m.Order.D; i++ {
		poly = polyMul(poly, []float64{1, -1})
	}

	psi := make([]float64, n)
	psi[0] = 1
	for j := 1; j < n; j++ {
		if j <= len(m.MACoeffs) {
			psi[j] = m.MACoeffs[j-1]
		}
		for i := 1; i < len(poly) && i <= j; i++ {
			psi[j] -= poly[i] * psi[j-i]
		}
	}
	return psi
}

func polyMul(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)
	for i, x := range a {
		tmp := make([]float64, len(b))
		floats.ScaleTo(tmp, x, b)
		floats.Add(out[i:i+len(b)], tmp)
	}
	return out
}

// integrate undoes differencing to return forecasts on the original scale.
func (m *Model) integrate(forecasts []float64) []float64 {
	d := m.Order.D

	// Keep the last value of the series at each differencing level.
	lasts := make([]float64, d)
	level := m.data
	for i := 0; i < d; i++ {
		lasts[i] = level.Values[level.Len()-1]
		level = level.Diff()
	}

	result := make([]float64, len(forecasts))
	copy(result, forecasts)

	for i := d - 1; i >= 0; i-- {
		prev := lasts[i]
		for j := range result {
			result[j] += prev
			prev = result[j]
		}
	}

	return result
}
