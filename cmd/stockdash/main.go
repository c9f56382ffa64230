package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"StockDash/internal/chart"
	"StockDash/internal/collector"
	"StockDash/internal/config"
	"StockDash/internal/dashboard"
	"StockDash/internal/logger"
)

var versionString = "0.1.0"

var (
	configFile string
	dataPath   string
	verbose    bool
)

// app bundles the loaded configuration with the pieces built from it.
type app struct {
	cfg       *config.Config
	collector *collector.Collector
	generator *chart.Generator
	settings  dashboard.Settings
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "stockdash",
		Short:         "Stock data visualization dashboard",
		Long:          `Loads daily OHLCV data from a CSV file and serves statistics and chart specifications over it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultConfig := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultConfig = v
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", defaultConfig, "Path to config file")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Path to the stock data CSV (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(
		serveCmd(),
		summaryCmd(),
		overviewCmd(),
		chartsCmd(),
		renderCmd(),
		watchCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads config, applies flag overrides and initialises logging.
func setup() (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if dataPath != "" {
		cfg.Data.Path = dataPath
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	logger.InitWriter(os.Stderr, "stockdash", cfg.Log.Level, cfg.Log.Pretty)

	col := collector.NewCollector(collector.NewCSVSource(cfg.Data.Path), cfg.Data.Symbol)
	col.Window = cfg.Dashboard.Window
	col.StrictDates = cfg.Strict()

	gen := chart.NewGenerator(cfg.Dashboard.Asset)
	gen.Window = cfg.Dashboard.Window

	return &app{
		cfg:       cfg,
		collector: col,
		generator: gen,
		settings: dashboard.Settings{
			Title:          cfg.Dashboard.Title,
			Description:    cfg.Dashboard.Description,
			DefaultColumns: cfg.Dashboard.DefaultColumns,
		},
	}, nil
}

// load reads the dataset once and wraps it in a dashboard.
func (a *app) load() (*dashboard.Dashboard, error) {
	ds, err := a.collector.Collect()
	if err != nil {
		return nil, err
	}
	log.Debug().Strs("columns", ds.Columns()).Msg("columns available")
	return dashboard.New(ds, a.generator, a.settings), nil
}
