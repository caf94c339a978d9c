package chart

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/sartorproj/cropforecast/logger"
	"github.com/sartorproj/cropforecast/timeseries"
)

var start = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

func series() (*timeseries.Series, *timeseries.Series) {
	observed := timeseries.Weekly(start, []float64{1500, 1520, 1490, 1510, 1535})
	forecast := timeseries.Weekly(start.AddDate(0, 0, 35), []float64{1540, 1545, 1548})
	return observed, forecast
}

func TestDefaultLabels(t *testing.T) {
	l := DefaultLabels("Tomato")
	if l.Title != "Forecasted Prices for Tomato (Next 6 Months)" {
		t.Errorf("Unexpected title %q", l.Title)
	}
	if l.XLabel != "Week" || l.YLabel != "Price (INR)" || l.Observed != "Observed" || l.Forecast != "Forecast" {
		t.Errorf("Unexpected labels %+v", l)
	}
}

func TestPlot(t *testing.T) {
	observed, forecast := series()
	p, err := Plot(observed, forecast, DefaultLabels("Onion"))
	if err != nil {
		t.Fatalf("Plot failed: %v", err)
	}
	if p.Title.Text != "Forecasted Prices for Onion (Next 6 Months)" {
		t.Errorf("Unexpected title %q", p.Title.Text)
	}
	if p.X.Label.Text != "Week" || p.Y.Label.Text != "Price (INR)" {
		t.Errorf("Unexpected axis labels %q / %q", p.X.Label.Text, p.Y.Label.Text)
	}
	if p.X.Min > float64(start.Unix()) || p.X.Max < float64(start.AddDate(0, 0, 49).Unix()) {
		t.Errorf("X range [%f, %f] does not cover both series", p.X.Min, p.X.Max)
	}
}

func TestPlotEmptySeries(t *testing.T) {
	observed, _ := series()
	if _, err := Plot(observed, timeseries.New(nil), DefaultLabels("x")); !errors.Is(err, ErrEmptySeries) {
		t.Errorf("Expected ErrEmptySeries, got %v", err)
	}
}

func TestFileRendererWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forecast.png")
	r := NewFileRenderer(path, 10, 5, "", logger.Discard())

	observed, forecast := series()
	if err := r.Render(observed, forecast, DefaultLabels("Tomato")); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Errorf("Output is not a PNG (%d bytes)", len(data))
	}
}

func TestFileRendererRunsViewer(t *testing.T) {
	viewer, err := exec.LookPath("true")
	if err != nil {
		t.Skip("no 'true' command available")
	}

	path := filepath.Join(t.TempDir(), "forecast.svg")
	r := NewFileRenderer(path, 4, 3, viewer, nil)

	observed, forecast := series()
	if err := r.Render(observed, forecast, DefaultLabels("Tomato")); err != nil {
		t.Fatalf("Render with viewer failed: %v", err)
	}
}

func TestFileRendererViewerFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forecast.png")
	r := NewFileRenderer(path, 4, 3, "definitely-not-a-viewer-binary", nil)

	observed, forecast := series()
	if err := r.Render(observed, forecast, DefaultLabels("Tomato")); err == nil {
		t.Error("Expected an error from a missing viewer")
	}
}

func TestNop(t *testing.T) {
	var r Renderer = Nop{}
	if err := r.Render(nil, nil, Labels{}); err != nil {
		t.Errorf("Nop should never fail: %v", err)
	}
}
