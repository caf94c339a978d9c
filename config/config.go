// Package config loads cropforecast settings from YAML, .env files and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Data struct {
		Path string `yaml:"path"`
	} `yaml:"data"`
	Chart struct {
		Enabled  *bool   `yaml:"enabled"`
		Path     string  `yaml:"path"`
		WidthIn  float64 `yaml:"width_in"`
		HeightIn float64 `yaml:"height_in"`
		Viewer   string  `yaml:"viewer"`
	} `yaml:"chart"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		File   string `yaml:"file"`
	} `yaml:"log"`
}

// ChartEnabled reports whether a chart should be rendered.
func (c *Config) ChartEnabled() bool {
	return c.Chart.Enabled == nil || *c.Chart.Enabled
}

// LoadEnv reads KEY=VALUE pairs from the given .env files (default ".env")
// into the process environment without overriding variables already set.
// Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("CROPFORECAST_DATA_PATH"); v != "" {
		cfg.Data.Path = v
	}
	if v := os.Getenv("CROPFORECAST_CHART_PATH"); v != "" {
		cfg.Chart.Path = v
	}
	if v := os.Getenv("CROPFORECAST_CHART_VIEWER"); v != "" {
		cfg.Chart.Viewer = v
	}
	if v := os.Getenv("CROPFORECAST_CHART_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("CROPFORECAST_CHART_ENABLED: %w", err)
		}
		cfg.Chart.Enabled = &enabled
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Log.File = v
	}

	// Defaults
	if cfg.Data.Path == "" {
		cfg.Data.Path = "weekly_avg_prices-2.csv"
	}
	if cfg.Chart.Path == "" {
		cfg.Chart.Path = "forecast.png"
	}
	if cfg.Chart.WidthIn == 0 {
		cfg.Chart.WidthIn = 10
	}
	if cfg.Chart.HeightIn == 0 {
		cfg.Chart.HeightIn = 5
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return fmt.Errorf("data.path is required")
	}
	if c.ChartEnabled() && c.Chart.Path == "" {
		return fmt.Errorf("chart.path is required when charts are enabled")
	}
	if c.Chart.WidthIn <= 0 || c.Chart.HeightIn <= 0 {
		return fmt.Errorf("chart.width_in and chart.height_in must be positive")
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}
