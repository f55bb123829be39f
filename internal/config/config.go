package config

import (
	"fmt"
	"os"
	"time"

	"MarketFetch/internal/model"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// defaultCallIntervalSeconds spaces calls to stay under the free-tier
// frequency ceiling.
const defaultCallIntervalSeconds = 15

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL    string `yaml:"base_url" envconfig:"ALPHAVANTAGE_BASE_URL"`
		APIKey     string `yaml:"api_key" envconfig:"ALPHAVANTAGE_API_KEY"`
		Function   string `yaml:"function" envconfig:"ALPHAVANTAGE_FUNCTION"`
		OutputSize string `yaml:"output_size" envconfig:"ALPHAVANTAGE_OUTPUT_SIZE"`
	} `yaml:"data_source"`
	Symbols   []model.Symbol `yaml:"symbols" ignored:"true"`
	OutputDir string         `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	// Pointer so an explicit 0 (no delay) is distinguishable from absent.
	CallIntervalSeconds *int `yaml:"call_interval_seconds" envconfig:"CALL_INTERVAL_SECONDS"`
	Schedule            struct {
		FetchCron string `yaml:"fetch_cron" envconfig:"FETCH_CRON"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" envconfig:"SQLITE_PATH"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy" envconfig:"HTTPS_PROXY"`
}

// Load reads config from a YAML file, then applies environment variable overrides
// and defaults. A missing file is tolerated; env vars alone can configure a run.
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
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}

	// Defaults
	if cfg.DataSource.BaseURL == "" {
		cfg.DataSource.BaseURL = "https://www.alphavantage.co/query"
	}
	if cfg.DataSource.Function == "" {
		cfg.DataSource.Function = "TIME_SERIES_DAILY"
	}
	if cfg.DataSource.OutputSize == "" {
		cfg.DataSource.OutputSize = "compact"
	}
	if len(cfg.Symbols) == 0 {
		cfg.Symbols = DefaultRegistry()
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "data/stock"
	}
	if cfg.CallIntervalSeconds == nil {
		v := defaultCallIntervalSeconds
		cfg.CallIntervalSeconds = &v
	}

	return cfg, nil
}

// DefaultRegistry returns the built-in symbol registry, in fetch order.
// File names downstream are derived from the codes verbatim, dots included.
func DefaultRegistry() []model.Symbol {
	return []model.Symbol{
		{Code: "SPY", Label: "S&P 500 (SPY)"},
		{Code: "QQQ", Label: "Nasdaq (QQQ)"},
		{Code: "EXS1.DE", Label: "DAX (EXS1.DE)"},
		{Code: "ASHR", Label: "China A50 (ASHR)"},
		{Code: "EWJ", Label: "Japan (EWJ)"},
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.DataSource.APIKey == "" {
		return fmt.Errorf("data_source.api_key is required")
	}
	if len(c.Symbols) == 0 {
		return fmt.Errorf("at least one symbol is required")
	}
	for _, s := range c.Symbols {
		if s.Code == "" {
			return fmt.Errorf("symbol code must not be empty")
		}
	}
	if c.CallIntervalSeconds != nil && *c.CallIntervalSeconds < 0 {
		return fmt.Errorf("call_interval_seconds must not be negative")
	}
	return nil
}

// CallInterval returns the spacing between consecutive API calls.
func (c *Config) CallInterval() time.Duration {
	if c.CallIntervalSeconds == nil {
		return defaultCallIntervalSeconds * time.Second
	}
	return time.Duration(*c.CallIntervalSeconds) * time.Second
}
