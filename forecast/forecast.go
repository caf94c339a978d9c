// Package forecast projects weekly commodity prices with a fixed
// ARIMA(1,1,1) model and resolves dates against the projection.
package forecast

import (
	"fmt"
	"time"

	"github.com/sartorproj/cropforecast/arima"
	"github.com/sartorproj/cropforecast/logger"
	"github.com/sartorproj/cropforecast/timeseries"
)

const (
	// Horizon is the number of weekly periods forecast (about six months).
	Horizon = 26
	// Tolerance is the exclusive bound on |week - date| for Lookup.
	Tolerance = 4 * 24 * time.Hour
	// IntervalLevel is the coverage of Point.Lower and Point.Upper.
	IntervalLevel = 0.95
)

// Order is the fixed model order.
var Order = arima.Order{P: 1, D: 1, Q: 1}

// Point is one forecast week.
type Point struct {
	Week  time.Time
	Mean  float64
	Lower float64
	Upper float64
}

// Series is the forecast for one commodity: Horizon points at a fixed
// weekly stride starting one week after the last observation.
type Series struct {
	Commodity string
	Points    []Point
	Summary   *arima.Summary
}

// Forecaster fits the fixed model and projects it forward.
type Forecaster struct {
	log *logger.Entry
}

// New creates a Forecaster. A nil log uses the global logger.
func New(log *logger.Log) *Forecaster {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Forecaster{log: log.WithComponent("forecast")}
}

// Forecast fits ARIMA(1,1,1) to history and returns Horizon weekly points.
// history must carry timestamps in ascending order.
func (f *Forecaster) Forecast(history *timeseries.Series) (*Series, error) {
	last, _, ok := history.Last()
	if !ok {
		return nil, fmt.Errorf("forecast %s: %w", history.Name, arima.ErrInsufficientData)
	}

	log := f.log.WithFields(logger.Fields{
		"commodity":    history.Name,
		"observations": history.Len(),
		"order":        Order.String(),
	})

	model := arima.New(Order.P, Order.D, Order.Q)
	if err := model.Fit(history); err != nil {
		log.WithError(err).Error("model fit failed")
		return nil, fmt.Errorf("fit %s for %s: %w", Order, history.Name, err)
	}

	fc, err := model.Forecast(Horizon, IntervalLevel)
	if err != nil {
		return nil, fmt.Errorf("forecast %s: %w", history.Name, err)
	}

	summary := model.Summary()
	log.WithFields(logger.Fields{
		"ar":          summary.ARCoeffs,
		"ma":          summary.MACoeffs,
		"sigma2":      summary.Variance,
		"loglik":      summary.LogLik,
		"aic":         summary.AIC,
		"bic":         summary.BIC,
		"evaluations": model.Evaluations,
	}).Debug("model fitted")

	out := &Series{
		Commodity: history.Name,
		Points:    make([]Point, Horizon),
		Summary:   summary,
	}
	for i := range out.Points {
		out.Points[i] = Point{
			Week:  last.AddDate(0, 0, 7*(i+1)),
			Mean:  fc.Mean[i],
			Lower: fc.Lower[i],
			Upper: fc.Upper[i],
		}
	}
	return out, nil
}

// Lookup returns the earliest point whose week lies strictly within
// Tolerance of date.
func (s *Series) Lookup(date time.Time) (Point, bool) {
	for _, p := range s.Points {
		diff := p.Week.Sub(date)
		if diff < 0 {
			diff = -diff
		}
		if diff < Tolerance {
			return p, true
		}
	}
	return Point{}, false
}

// Means returns the forecast means as a weekly time series.
func (s *Series) Means() *timeseries.Series {
	weeks := make([]time.Time, len(s.Points))
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		weeks[i] = p.Week
		values[i] = p.Mean
	}
	return &timeseries.Series{Timestamps: weeks, Values: values, Name: s.Commodity + "_forecast"}
}
