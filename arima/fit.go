package arima

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// penalty replaces the negative log-likelihood for parameters the filter
// cannot evaluate. Nelder-Mead needs finite values to order its simplex.
const penalty = 1e100

// fitMLE maximises the exact Gaussian likelihood of the differenced series.
func (m *Model) fitMLE() error {
	y := m.diffData.Values
	layout := params{p: m.Order.P, q: m.Order.Q, includeMean: m.IncludeMean}

	ar0, ma0, mean0 := cssStart(y, layout.p, layout.q, layout.includeMean)
	x0 := layout.pack(ar0, ma0, mean0)

	nll := func(x []float64) float64 {
		ar, ma, mean := layout.unpack(x)
		fr, err := runFilter(y, ar, ma, mean)
		if err != nil {
			return penalty
		}
		ll, sigma2 := fr.logLikelihood()
		if sigma2 <= 0 || math.IsNaN(ll) || math.IsInf(ll, 0) {
			return penalty
		}
		return -ll
	}

	xHat := x0
	if layout.size() > 0 {
		problem := optimize.Problem{Func: nll}
		settings := &optimize.Settings{
			FuncEvaluations: 20000,
			Converger: &optimize.FunctionConverge{
				Absolute:   1e-10,
				Relative:   1e-10,
				Iterations: 200,
			},
		}
		result, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
		if result == nil {
			return fmt.Errorf("%w: %v", ErrNotConverged, err)
		}
		if result.F < nll(x0) {
			xHat = result.X
		}
		m.Evaluations = result.Stats.FuncEvaluations
	}

	ar, ma, mean := layout.unpack(xHat)
	fr, err := runFilter(y, ar, ma, mean)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotConverged, err)
	}
	ll, sigma2 := fr.logLikelihood()
	if sigma2 <= 0 || math.IsNaN(ll) || math.IsInf(ll, 0) {
		return fmt.Errorf("%w: non-finite likelihood", ErrNotConverged)
	}

	copy(m.ARCoeffs, ar)
	copy(m.MACoeffs, ma)
	m.Mean = mean
	m.LogLik = ll
	m.Variance = sigma2
	m.state = fr.state
	return nil
}

// runFilter evaluates the ARMA state space model on the demeaned series.
func runFilter(y, ar, ma []float64, mean float64) (*filterResult, error) {
	centered := y
	if mean != 0 {
		centered = make([]float64, len(y))
		for i, v := range y {
			centered[i] = v - mean
		}
	}
	return newStateSpace(ar, ma).filter(centered)
}
