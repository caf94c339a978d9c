// Package chart renders observed and forecast price series.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"os/exec"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/sartorproj/cropforecast/logger"
	"github.com/sartorproj/cropforecast/timeseries"
)

// ErrEmptySeries is returned when a series to plot has no dated points.
var ErrEmptySeries = errors.New("chart: series has no dated points")

// ForecastColor is the line colour of the forecast series.
var ForecastColor = color.RGBA{G: 128, A: 255}

// Labels holds the text drawn on a chart.
type Labels struct {
	Title    string
	XLabel   string
	YLabel   string
	Observed string
	Forecast string
}

// DefaultLabels returns the labels for a six month forecast of crop.
func DefaultLabels(crop string) Labels {
	return Labels{
		Title:    fmt.Sprintf("Forecasted Prices for %s (Next 6 Months)", crop),
		XLabel:   "Week",
		YLabel:   "Price (INR)",
		Observed: "Observed",
		Forecast: "Forecast",
	}
}

// Renderer draws an observed series and its forecast.
type Renderer interface {
	Render(observed, forecast *timeseries.Series, labels Labels) error
}

// Nop discards charts.
type Nop struct{}

func (Nop) Render(_, _ *timeseries.Series, _ Labels) error { return nil }

// FileRenderer saves charts to Path. The image format follows the file
// extension (png, svg, pdf, ...). When Viewer is set, the command is run
// with the saved file as its last argument and Render blocks until it exits.
type FileRenderer struct {
	Path   string
	Width  vg.Length
	Height vg.Length
	Viewer string

	log *logger.Entry
}

// NewFileRenderer creates a renderer for a chart of widthIn by heightIn inches.
func NewFileRenderer(path string, widthIn, heightIn float64, viewer string, log *logger.Log) *FileRenderer {
	if log == nil {
		log = logger.GetLogger()
	}
	return &FileRenderer{
		Path:   path,
		Width:  vg.Length(widthIn) * vg.Inch,
		Height: vg.Length(heightIn) * vg.Inch,
		Viewer: viewer,
		log:    log.WithComponent("chart"),
	}
}

func (r *FileRenderer) Render(observed, forecast *timeseries.Series, labels Labels) error {
	p, err := Plot(observed, forecast, labels)
	if err != nil {
		return err
	}
	if err := p.Save(r.Width, r.Height, r.Path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	r.log.WithFields(logger.Fields{"path": r.Path}).Info("chart saved")

	args := strings.Fields(r.Viewer)
	if len(args) == 0 {
		return nil
	}
	cmd := exec.Command(args[0], append(args[1:], r.Path)...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("chart viewer %q: %w", r.Viewer, err)
	}
	return nil
}

// Plot builds the line chart: observed prices in the default style and the
// forecast in ForecastColor, on a date axis with legend and grid.
func Plot(observed, forecast *timeseries.Series, labels Labels) (*plot.Plot, error) {
	obsXYs, err := toXYs(observed)
	if err != nil {
		return nil, err
	}
	fcXYs, err := toXYs(forecast)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = labels.Title
	p.X.Label.Text = labels.XLabel
	p.Y.Label.Text = labels.YLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: timeseries.DateLayout}

	obsLine, err := plotter.NewLine(obsXYs)
	if err != nil {
		return nil, err
	}
	fcLine, err := plotter.NewLine(fcXYs)
	if err != nil {
		return nil, err
	}
	fcLine.Color = ForecastColor
	fcLine.Width = vg.Points(1.5)

	p.Add(plotter.NewGrid(), obsLine, fcLine)
	p.Legend.Add(labels.Observed, obsLine)
	p.Legend.Add(labels.Forecast, fcLine)
	p.Legend.Top = true

	return p, nil
}

func toXYs(s *timeseries.Series) (plotter.XYs, error) {
	if s == nil || !s.HasTimestamps() {
		return nil, ErrEmptySeries
	}
	xys := make(plotter.XYs, s.Len())
	for i := range xys {
		xys[i].X = float64(s.Timestamps[i].Unix())
		xys[i].Y = s.Values[i]
	}
	return xys, nil
}
