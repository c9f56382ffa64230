package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. STOCKDASH_DATA_PATH or
// STOCKDASH_DASHBOARD_DEFAULT_COLUMNS.
const EnvPrefix = "STOCKDASH"

// Config holds all application configuration.
type Config struct {
	Data struct {
		Path        string `yaml:"path"`
		Symbol      string `yaml:"symbol"`
		StrictDates *bool  `yaml:"strict_dates" split_words:"true"`
	} `yaml:"data"`
	Dashboard struct {
		Title          string   `yaml:"title"`
		Description    string   `yaml:"description"`
		Asset          string   `yaml:"asset"`
		DefaultColumns []string `yaml:"default_columns" split_words:"true"`
		Window         int      `yaml:"moving_average_window"`
	} `yaml:"dashboard"`
	Server struct {
		Addr      string  `yaml:"addr"`
		RateLimit float64 `yaml:"rate_limit" split_words:"true"`
		Burst     int     `yaml:"burst"`
	} `yaml:"server"`
	Render struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"render"`
	Watch struct {
		Cron string `yaml:"cron"`
	} `yaml:"watch"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Data.Path == "" {
		c.Data.Path = "Tesla Stock Data.csv"
	}
	if c.Data.Symbol == "" {
		c.Data.Symbol = "TSLA"
	}
	if c.Data.StrictDates == nil {
		strict := true
		c.Data.StrictDates = &strict
	}
	if c.Dashboard.Asset == "" {
		c.Dashboard.Asset = "Tesla"
	}
	if c.Dashboard.Title == "" {
		c.Dashboard.Title = c.Dashboard.Asset + " Stock Data Visualization Dashboard"
	}
	if c.Dashboard.Description == "" {
		c.Dashboard.Description = "Analyze and visualize " + c.Dashboard.Asset + " stock data with interactive charts and insights."
	}
	if len(c.Dashboard.DefaultColumns) == 0 {
		c.Dashboard.DefaultColumns = []string{"Date", "Open", "Close", "Volume"}
	}
	if c.Dashboard.Window == 0 {
		c.Dashboard.Window = 30
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8501"
	}
	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = 50
	}
	if c.Server.Burst == 0 {
		c.Server.Burst = 100
	}
	if c.Render.Width == 0 {
		c.Render.Width = 1024
	}
	if c.Render.Height == 0 {
		c.Render.Height = 600
	}
	if c.Watch.Cron == "" {
		c.Watch.Cron = "0 */5 * * * *"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks that all settings are usable.
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return fmt.Errorf("data.path is required")
	}
	if c.Dashboard.Window <= 0 {
		return fmt.Errorf("dashboard.moving_average_window must be positive")
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative")
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render.width and render.height must be positive")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

// Strict reports whether date problems abort loading.
func (c *Config) Strict() bool {
	return c.Data.StrictDates == nil || *c.Data.StrictDates
}
