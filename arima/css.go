package arima

import (
	"math"

	"github.com/sartorproj/cropforecast/stats"
	"github.com/sartorproj/cropforecast/timeseries"
)

// cssStart produces starting values for maximum likelihood: Yule-Walker
// AR estimates refined, together with the MA terms, by a few rounds of
// conditional sum of squares gradient descent.
func cssStart(y []float64, p, q int, includeMean bool) (ar, ma []float64, mean float64) {
	n := len(y)
	ar = make([]float64, p)
	ma = make([]float64, q)

	if includeMean {
		for _, v := range y {
			mean += v
		}
		mean /= float64(n)
	}

	if p > 0 {
		if acf := stats.ACF(timeseries.New(y), p); len(acf) > p {
			if phi := stats.YuleWalker(acf, p); phi != nil {
				copy(ar, phi)
			}
		}
	}
	for i := range ma {
		ma[i] = 0.1
	}
	clampCoeffs(ar)

	if p == 0 && q == 0 {
		return ar, ma, mean
	}

	const (
		maxIter      = 100
		tolerance    = 1e-6
		learningRate = 0.01
	)

	start := max(p, q)
	residuals := make([]float64, n)
	sse := func() float64 {
		total := 0.0
		for t := start; t < n; t++ {
			pred := mean
			for i := 0; i < p; i++ {
				pred += ar[i] * (y[t-i-1] - mean)
			}
			for i := 0; i < q; i++ {
				pred += ma[i] * residuals[t-i-1]
			}
			residuals[t] = y[t] - pred
			total += residuals[t] * residuals[t]
		}
		return total
	}

	arGrad := make([]float64, p)
	maGrad := make([]float64, q)
	for iter := 0; iter < maxIter; iter++ {
		prevSSE := sse()

		clear(arGrad)
		clear(maGrad)
		for t := start; t < n; t++ {
			for i := 0; i < p; i++ {
				arGrad[i] -= 2 * residuals[t] * (y[t-i-1] - mean)
			}
			for i := 0; i < q; i++ {
				maGrad[i] -= 2 * residuals[t] * residuals[t-i-1]
			}
		}

		for i := range ar {
			ar[i] -= learningRate * arGrad[i] / float64(n)
		}
		for i := range ma {
			ma[i] -= learningRate * maGrad[i] / float64(n)
		}
		clampCoeffs(ar)
		clampCoeffs(ma)

		newSSE := sse()
		if math.IsNaN(newSSE) || math.Abs(prevSSE-newSSE) < tolerance {
			break
		}
	}

	return ar, ma, mean
}

// clampCoeffs keeps each coefficient inside (-1, 1).
func clampCoeffs(c []float64) {
	for i := range c {
		if math.IsNaN(c[i]) {
			c[i] = 0
		}
		c[i] = math.Max(-maxPartial, math.Min(maxPartial, c[i]))
	}
}
