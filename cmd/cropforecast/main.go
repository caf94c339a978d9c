package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sartorproj/cropforecast/app"
	"github.com/sartorproj/cropforecast/chart"
	"github.com/sartorproj/cropforecast/config"
	"github.com/sartorproj/cropforecast/console"
	"github.com/sartorproj/cropforecast/logger"
	"github.com/sartorproj/cropforecast/market"
)

type options struct {
	cfgPath   string
	dataPath  string
	chartPath string
	viewer    string
	noChart   bool
	logLevel  string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "cropforecast",
		Short: "Forecast weekly crop prices six months ahead",
		Long: `cropforecast loads weekly average modal prices, fits an ARIMA(1,1,1)
model to the chosen crop and answers price queries for the next 26 weeks.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.cfgPath, "config", "configs/config.yaml", "path to YAML config file")
	cmd.Flags().StringVar(&opts.dataPath, "data", "", "price file (.csv or .xlsx)")
	cmd.Flags().StringVar(&opts.chartPath, "chart", "", "output image for the forecast chart")
	cmd.Flags().StringVar(&opts.viewer, "viewer", "", "command that displays the chart; waits for it to exit")
	cmd.Flags().BoolVar(&opts.noChart, "no-chart", false, "skip chart rendering")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level: debug|info|warn|error")
	return cmd
}

// loadConfig layers flags over the config file and environment.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	if err := config.LoadEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.Load(opts.cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.Data.Path = opts.dataPath
	}
	if flags.Changed("chart") {
		cfg.Chart.Path = opts.chartPath
	}
	if flags.Changed("viewer") {
		cfg.Chart.Viewer = opts.viewer
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if opts.noChart {
		disabled := false
		cfg.Chart.Enabled = &disabled
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func run(cfg *config.Config, in io.Reader, out io.Writer) error {
	log, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Close()
	logger.SetLogger(log)

	table, err := market.LoadFile(cfg.Data.Path)
	if err != nil {
		log.WithError(err).Error("load prices")
		return err
	}

	var renderer chart.Renderer = chart.Nop{}
	if cfg.ChartEnabled() {
		renderer = chart.NewFileRenderer(cfg.Chart.Path, cfg.Chart.WidthIn, cfg.Chart.HeightIn, cfg.Chart.Viewer, log)
	}

	session := app.New(table, renderer, console.NewPrompter(in, out), log)
	if err := session.Run(); err != nil {
		log.WithError(err).Error("session failed")
		return err
	}
	return nil
}

// execute runs the command and reports a fatal error on stderr. It returns
// the process exit status.
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
