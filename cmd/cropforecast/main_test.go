package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sartorproj/cropforecast/console"
	"github.com/sartorproj/cropforecast/timeseries"
)

const weeks = 80

var firstWeek = time.Date(2022, time.January, 2, 0, 0, 0, 0, time.UTC)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CROPFORECAST_DATA_PATH", "CROPFORECAST_CHART_PATH", "CROPFORECAST_CHART_VIEWER",
		"CROPFORECAST_CHART_ENABLED", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE",
	} {
		t.Setenv(k, "")
	}
}

// writePrices writes a CSV with weeks of tomato and onion prices.
func writePrices(t *testing.T, dir string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("Commodity,Week,Weekly_Avg_Modal_Price\n")
	for i := 0; i < weeks; i++ {
		week := firstWeek.AddDate(0, 0, 7*i).Format(timeseries.DateLayout)
		fmt.Fprintf(&b, "Tomato,%s,%.2f\n", week, 1500+2*float64(i)+10*math.Sin(float64(i)/3))
		fmt.Fprintf(&b, "Onion,%s,%.2f\n", week, 900+float64(i%9)*4+5*math.Cos(float64(i)/2))
	}
	path := filepath.Join(dir, "prices.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func session() string {
	forecastWeek := firstWeek.AddDate(0, 0, 7*weeks).Format(timeseries.DateLayout)
	return "tomato\n" + forecastWeek + "\nexit\n"
}

func TestFlagsOverrideConfig(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	data := writePrices(t, dir)
	configChart := filepath.Join(dir, "from-config.png")
	flagChart := filepath.Join(dir, "from-flag.png")
	cfg := writeConfig(t, dir, fmt.Sprintf(`
data:
  path: %s
chart:
  path: %s
log:
  level: info
`, filepath.Join(dir, "missing.csv"), configChart))

	var stdout, stderr strings.Builder
	code := execute([]string{
		"--config", cfg,
		"--data", data,
		"--chart", flagChart,
		"--log-level", "panic",
	}, strings.NewReader(session()), &stdout, &stderr)

	if code != 0 {
		t.Fatalf("exit status %d, stderr: %s", code, stderr.String())
	}

	info, err := os.Stat(flagChart)
	if err != nil || info.Size() == 0 {
		t.Errorf("expected chart at --chart path: %v", err)
	}
	if _, err := os.Stat(configChart); !os.IsNotExist(err) {
		t.Errorf("chart should not be written to the config path: %v", err)
	}

	out := stdout.String()
	forecastWeek := firstWeek.AddDate(0, 0, 7*weeks).Format(timeseries.DateLayout)
	for _, want := range []string{"1. Tomato\n", "Expected modal price for Tomato on " + forecastWeek, console.Farewell} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout missing %q", want)
		}
	}
	t.Logf("stdout:\n%s", out)
}

func TestNoChartFlag(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	data := writePrices(t, dir)
	chartPath := filepath.Join(dir, "forecast.png")
	cfg := writeConfig(t, dir, fmt.Sprintf(`
chart:
  enabled: true
  path: %s
`, chartPath))

	var stdout, stderr strings.Builder
	code := execute([]string{"--config", cfg, "--data", data, "--no-chart", "--log-level", "panic"},
		strings.NewReader(session()), &stdout, &stderr)

	if code != 0 {
		t.Fatalf("exit status %d, stderr: %s", code, stderr.String())
	}
	if _, err := os.Stat(chartPath); !os.IsNotExist(err) {
		t.Errorf("--no-chart should skip rendering, stat: %v", err)
	}
}

func TestFatalErrorsAreReported(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	data := writePrices(t, dir)
	noConfig := filepath.Join(dir, "none.yaml")
	missing := filepath.Join(dir, "nonexistent.csv")

	tests := []struct {
		name  string
		args  []string
		input string
		want  string
	}{
		{
			name: "missing data file",
			args: []string{"--config", noConfig, "--data", missing, "--log-level", "panic"},
			want: missing,
		},
		{
			name: "invalid log level",
			args: []string{"--config", noConfig, "--data", data, "--log-level", "loud"},
			want: "init logger",
		},
		{
			name: "unexpected argument",
			args: []string{"--config", noConfig, "extra"},
			want: "extra",
		},
		{
			name:  "input ends before a crop is chosen",
			args:  []string{"--config", noConfig, "--data", data, "--no-chart", "--log-level", "panic"},
			input: "garlic\n",
			want:  console.ErrNoSelection.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr strings.Builder
			code := execute(tt.args, strings.NewReader(tt.input), &stdout, &stderr)

			if code != 1 {
				t.Errorf("exit status = %d, want 1", code)
			}
			msg := stderr.String()
			if !strings.HasPrefix(msg, "Error: ") || !strings.Contains(msg, tt.want) {
				t.Errorf("stderr = %q, want an Error line containing %q", msg, tt.want)
			}
		})
	}
}
