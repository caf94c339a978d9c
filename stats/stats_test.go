package stats

import (
	"math"
	"testing"

	"github.com/sartorproj/cropforecast/timeseries"
)

func ar1(n int, phi float64) []float64 {
	values := make([]float64, n)
	for i := 1; i < n; i++ {
		values[i] = phi*values[i-1] + (float64(i%10)-5)/10
	}
	return values
}

func TestACF(t *testing.T) {
	series := timeseries.New(ar1(100, 0.8))
	acf := ACF(series, 10)

	if acf == nil {
		t.Fatal("ACF returned nil")
	}
	if len(acf) != 11 {
		t.Fatalf("Expected 11 lags, got %d", len(acf))
	}

	// ACF at lag 0 should be 1
	if math.Abs(acf[0]-1.0) > 1e-10 {
		t.Errorf("ACF at lag 0 should be 1, got %f", acf[0])
	}

	if acf[1] <= 0 {
		t.Errorf("ACF at lag 1 should be positive for AR(1) with phi=0.8, got %f", acf[1])
	}
}

func TestACFConstantSeries(t *testing.T) {
	series := timeseries.New([]float64{5, 5, 5, 5, 5})
	if acf := ACF(series, 3); acf != nil {
		t.Errorf("Expected nil ACF for a constant series, got %v", acf)
	}
}

func TestACFClampsLag(t *testing.T) {
	series := timeseries.New([]float64{1, 2, 3})
	acf := ACF(series, 10)
	if len(acf) != 3 {
		t.Errorf("Expected lags clamped to n-1, got %d values", len(acf))
	}
}

func TestYuleWalker(t *testing.T) {
	// Theoretical ACF of an AR(1) process with phi=0.6.
	acf := []float64{1.0, 0.6, 0.36, 0.216, 0.1296}

	coeffs := YuleWalker(acf, 2)
	if len(coeffs) != 2 {
		t.Fatalf("Expected 2 coefficients, got %d", len(coeffs))
	}

	if math.Abs(coeffs[0]-0.6) > 1e-10 {
		t.Errorf("Expected phi1=0.6, got %f", coeffs[0])
	}
	if math.Abs(coeffs[1]) > 1e-10 {
		t.Errorf("Expected phi2=0, got %f", coeffs[1])
	}
}

func TestYuleWalkerInvalid(t *testing.T) {
	if YuleWalker([]float64{1, 0.5}, 2) != nil {
		t.Error("Expected nil when ACF is shorter than the order")
	}
	if YuleWalker([]float64{1, 0.5}, 0) != nil {
		t.Error("Expected nil for order 0")
	}
}
