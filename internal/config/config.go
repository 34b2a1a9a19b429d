package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"chartd/internal/overlay"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Listen string `yaml:"listen"`
	} `yaml:"server"`
	DataSource struct {
		BaseURL     string `yaml:"base_url"`
		APIKey      string `yaml:"api_key"`
		Symbol      string `yaml:"symbol"`
		Pattern     string `yaml:"pattern"`
		CandleLimit int    `yaml:"candle_limit"`
	} `yaml:"data_source"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Overlay struct {
		Palette               []string `yaml:"palette"`
		ClusterGapSeconds     int64    `yaml:"cluster_gap_seconds"`
		CurveExtensionSeconds int64    `yaml:"curve_extension_seconds"`
		BowlDepthFactor       float64  `yaml:"bowl_depth_factor"`
		BlendRatio            float64  `yaml:"blend_ratio"`
	} `yaml:"overlay"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides, then defaults. A missing file is not an error; everything can
// come from the environment.
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
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv("ANALYSIS_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("ANALYSIS_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("CHART_SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("CHART_PATTERN"); v != "" {
		cfg.DataSource.Pattern = v
	}
	if v := os.Getenv("CANDLE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DataSource.CandleLimit = n
		}
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "NIFTY"
	}
	if cfg.DataSource.Pattern == "" {
		cfg.DataSource.Pattern = "bowl"
	}
	if cfg.DataSource.CandleLimit == 0 {
		cfg.DataSource.CandleLimit = 300
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */5 * * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/chartd.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if c.DataSource.Symbol == "" {
		return fmt.Errorf("data_source.symbol is required")
	}
	if c.DataSource.CandleLimit <= 0 {
		return fmt.Errorf("data_source.candle_limit must be positive")
	}
	if c.Overlay.BlendRatio < 0 || c.Overlay.BlendRatio > 1 {
		return fmt.Errorf("overlay.blend_ratio must be within [0, 1]")
	}
	if c.Overlay.BowlDepthFactor < 0 || c.Overlay.BowlDepthFactor > 1 {
		return fmt.Errorf("overlay.bowl_depth_factor must be within [0, 1]")
	}
	return nil
}

// OverlayOptions converts the overlay section into engine options. Zero
// fields fall through to the engine defaults.
func (c *Config) OverlayOptions() overlay.Options {
	return overlay.Options{
		Palette:               c.Overlay.Palette,
		ClusterGapSeconds:     c.Overlay.ClusterGapSeconds,
		CurveExtensionSeconds: c.Overlay.CurveExtensionSeconds,
		BowlDepthFactor:       c.Overlay.BowlDepthFactor,
		BlendRatio:            c.Overlay.BlendRatio,
	}
}
