package arima

import "math"

// maxPartial bounds partial autocorrelations recovered from starting
// values so that the inverse transform stays finite.
const maxPartial = 0.99

// constrainStationary maps unconstrained reals to the coefficients of a
// stationary AR polynomial 1 - c1 z - ... - cp z^p. Each x is first mapped
// to a partial autocorrelation in (-1, 1), then the Durbin-Levinson
// recursion builds the coefficients.
func constrainStationary(x []float64) []float64 {
	p := len(x)
	if p == 0 {
		return nil
	}

	coeffs := make([]float64, p)
	prev := make([]float64, p)
	for k := 0; k < p; k++ {
		r := x[k] / math.Sqrt(1+x[k]*x[k])
		copy(prev, coeffs)
		for j := 0; j < k; j++ {
			coeffs[j] = prev[j] - r*prev[k-j-1]
		}
		coeffs[k] = r
	}
	return coeffs
}

// unconstrainStationary is the inverse of constrainStationary. Partial
// autocorrelations outside (-maxPartial, maxPartial) are clamped.
func unconstrainStationary(coeffs []float64) []float64 {
	p := len(coeffs)
	if p == 0 {
		return nil
	}

	cur := make([]float64, p)
	copy(cur, coeffs)
	partials := make([]float64, p)

	for k := p - 1; k >= 0; k-- {
		r := math.Max(-maxPartial, math.Min(maxPartial, cur[k]))
		partials[k] = r
		denom := 1 - r*r
		prev := make([]float64, k)
		for j := 0; j < k; j++ {
			prev[j] = (cur[j] + r*cur[k-j-1]) / denom
		}
		copy(cur, prev)
	}

	x := make([]float64, p)
	for i, r := range partials {
		x[i] = r / math.Sqrt(1-r*r)
	}
	return x
}

// params is the unconstrained parameter vector layout:
// [AR (p) | MA (q) | mean (0 or 1)].
type params struct {
	p, q        int
	includeMean bool
}

func (l params) size() int {
	n := l.p + l.q
	if l.includeMean {
		n++
	}
	return n
}

// unpack converts an unconstrained vector into model coefficients. MA
// coefficients are negated so that 1 + theta1 z + ... is invertible.
func (l params) unpack(x []float64) (ar, ma []float64, mean float64) {
	ar = constrainStationary(x[:l.p])
	ma = constrainStationary(x[l.p : l.p+l.q])
	for i := range ma {
		ma[i] = -ma[i]
	}
	if l.includeMean {
		mean = x[l.p+l.q]
	}
	return ar, ma, mean
}

// pack is the inverse of unpack.
func (l params) pack(ar, ma []float64, mean float64) []float64 {
	x := make([]float64, 0, l.size())
	x = append(x, unconstrainStationary(ar)...)

	neg := make([]float64, len(ma))
	for i, theta := range ma {
		neg[i] = -theta
	}
	x = append(x, unconstrainStationary(neg)...)

	if l.includeMean {
		x = append(x, mean)
	}
	return x
}
