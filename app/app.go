// Package app wires one interactive forecasting session together.
package app

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sartorproj/cropforecast/chart"
	"github.com/sartorproj/cropforecast/console"
	"github.com/sartorproj/cropforecast/forecast"
	"github.com/sartorproj/cropforecast/logger"
	"github.com/sartorproj/cropforecast/market"
)

// App runs the select, fit, render and query pipeline over a loaded table.
type App struct {
	Table      *market.Table
	Forecaster *forecast.Forecaster
	Renderer   chart.Renderer
	Prompter   *console.Prompter
	Log        *logger.Log
}

// New builds an App. A nil renderer disables charts and a nil log uses the
// global logger.
func New(table *market.Table, renderer chart.Renderer, prompter *console.Prompter, log *logger.Log) *App {
	if log == nil {
		log = logger.GetLogger()
	}
	if renderer == nil {
		renderer = chart.Nop{}
	}
	return &App{
		Table:      table,
		Forecaster: forecast.New(log),
		Renderer:   renderer,
		Prompter:   prompter,
		Log:        log,
	}
}

// Run executes a single session. Any returned error is fatal.
func (a *App) Run() error {
	log := a.Log.WithComponent("app").WithFields(logger.Fields{"session": uuid.NewString()})

	crops := a.Table.Commodities()
	log.WithFields(logger.Fields{"records": a.Table.Len(), "commodities": len(crops)}).Info("table loaded")

	crop, err := console.SelectCommodity(a.Prompter, crops)
	if err != nil {
		return fmt.Errorf("select crop: %w", err)
	}
	log = log.WithFields(logger.Fields{"commodity": crop})

	history, err := a.Table.Series(crop)
	if err != nil {
		return fmt.Errorf("extract series: %w", err)
	}
	log.WithFields(logger.Fields{"observations": history.Len()}).Info("series extracted")

	fc, err := a.Forecaster.Forecast(history)
	if err != nil {
		return fmt.Errorf("forecast: %w", err)
	}

	display := market.DisplayName(crop)
	if err := a.Renderer.Render(history, fc.Means(), chart.DefaultLabels(display)); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	if err := console.NewQueryLoop(a.Prompter, fc, display).Run(); err != nil {
		return fmt.Errorf("query loop: %w", err)
	}
	log.Info("session finished")
	return nil
}
