// Package stats provides autocorrelation functions for time series analysis.
package stats

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/cropforecast/timeseries"
)

// ACF calculates the Autocorrelation Function for the given series.
// Returns ACF values for lags 0 to maxLag, or nil for a constant series.
func ACF(series *timeseries.Series, maxLag int) []float64 {
	n := series.Len()
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	centered := make([]float64, n)
	copy(centered, series.Values)
	floats.AddConst(-stat.Mean(centered, nil), centered)

	variance := floats.Dot(centered, centered)
	if variance == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		acf[k] = floats.Dot(centered[k:], centered[:n-k]) / variance
	}

	return acf
}

// YuleWalker estimates AR(order) coefficients from autocorrelations.
// acf must hold lags 0..order.
func YuleWalker(acf []float64, order int) []float64 {
	if order <= 0 || len(acf) <= order {
		return nil
	}
	return durbinLevinson(acf, order)
}

// durbinLevinson solves the Yule-Walker equations recursively.
func durbinLevinson(acf []float64, order int) []float64 {
	phi := make([]float64, order)
	prev := make([]float64, order)

	phi[0] = acf[1]
	v := 1 - acf[1]*acf[1]

	for k := 2; k <= order; k++ {
		if v <= 0 {
			break
		}
		copy(prev, phi)

		num := acf[k]
		for j := 1; j < k; j++ {
			num -= prev[j-1] * acf[k-j]
		}
		kk := num / v

		for j := 1; j < k; j++ {
			phi[j-1] = prev[j-1] - kk*prev[k-j-1]
		}
		phi[k-1] = kk

		v *= 1 - kk*kk
	}

	return phi
}
