// Package config loads and validates the harness configuration from a YAML
// file, environment variables and defaults, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the entire harness configuration.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	Browser   BrowserConfig   `mapstructure:"browser" yaml:"browser"`
	Reporting ReportingConfig `mapstructure:"reporting" yaml:"reporting"`
	AI        AIConfig        `mapstructure:"ai" yaml:"ai"`
}

// LoggerConfig configures the zap logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"` // "console" or "json"
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"` // megabytes
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"` // days
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// BrowserConfig configures the chromedp-driven browser sessions.
type BrowserConfig struct {
	Headless          bool              `mapstructure:"headless" yaml:"headless"`
	ViewportWidth     int64             `mapstructure:"viewport_width" yaml:"viewport_width"`
	ViewportHeight    int64             `mapstructure:"viewport_height" yaml:"viewport_height"`
	NavigationTimeout time.Duration     `mapstructure:"navigation_timeout" yaml:"navigation_timeout"`
	ActionTimeout     time.Duration     `mapstructure:"action_timeout" yaml:"action_timeout"`
	ExtraHeaders      map[string]string `mapstructure:"extra_headers" yaml:"extra_headers"`
}

// ReportingConfig configures the on-disk error record store.
type ReportingConfig struct {
	// ResultsDir is the root under which per-application error-logs/ and
	// error-screenshots/ directories are created.
	ResultsDir string `mapstructure:"results_dir" yaml:"results_dir"`
	// AppName namespaces the results directory per application under test.
	AppName string `mapstructure:"app_name" yaml:"app_name"`
}

// LogDir returns the directory that holds one JSON file per error record.
func (r ReportingConfig) LogDir() string {
	return filepath.Join(r.ResultsDir, r.AppName, "error-logs")
}

// ScreenshotDir returns the directory that holds failure screenshots.
func (r ReportingConfig) ScreenshotDir() string {
	return filepath.Join(r.ResultsDir, r.AppName, "error-screenshots")
}

// AIConfig configures the optional Gemini-backed maintenance suggester.
type AIConfig struct {
	Enabled    bool          `mapstructure:"enabled" yaml:"enabled"`
	Model      string        `mapstructure:"model" yaml:"model"`
	APIKey     string        `mapstructure:"api_key" yaml:"api_key"`
	APITimeout time.Duration `mapstructure:"api_timeout" yaml:"api_timeout"`
	// RequestsPerMinute caps calls to the generation API.
	RequestsPerMinute float64 `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
}

// SetDefaults initializes default values on the given viper instance.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "webharness")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)

	// -- Browser --
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.viewport_width", 1280)
	v.SetDefault("browser.viewport_height", 800)
	v.SetDefault("browser.navigation_timeout", "30s")
	v.SetDefault("browser.action_timeout", "5s")

	// -- Reporting --
	v.SetDefault("reporting.results_dir", "results")
	v.SetDefault("reporting.app_name", "default")

	// -- AI --
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("ai.api_timeout", "60s")
	v.SetDefault("ai.requests_per_minute", 6)
}

// NewDefaultConfig returns a configuration populated with defaults only.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	cfg, err := NewConfigFromViper(v)
	if err != nil {
		// Defaults always validate; this indicates a programming error.
		panic(fmt.Sprintf("failed to build default config: %v", err))
	}
	return cfg
}

// NewConfigFromViper unmarshals and validates a configuration from viper.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	// Sensitive values come from the environment, never the config file.
	v.BindEnv("ai.api_key", "WEBHARNESS_AI_API_KEY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.AI.Enabled && cfg.AI.APIKey == "" {
		cfg.AI.APIKey = os.Getenv("WEBHARNESS_AI_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if c.Browser.ViewportWidth <= 0 || c.Browser.ViewportHeight <= 0 {
		return fmt.Errorf("browser.viewport_width and browser.viewport_height must be positive")
	}
	if c.Browser.NavigationTimeout <= 0 {
		return fmt.Errorf("browser.navigation_timeout must be a positive duration")
	}
	if c.Browser.ActionTimeout <= 0 {
		return fmt.Errorf("browser.action_timeout must be a positive duration")
	}
	if c.Reporting.ResultsDir == "" {
		return fmt.Errorf("reporting.results_dir is required")
	}
	if c.Reporting.AppName == "" {
		return fmt.Errorf("reporting.app_name is required")
	}
	if err := c.AI.Validate(); err != nil {
		return fmt.Errorf("ai configuration invalid: %w", err)
	}
	return nil
}

// Validate checks the AI suggester configuration.
func (a *AIConfig) Validate() error {
	if !a.Enabled {
		return nil
	}
	if a.Model == "" {
		return fmt.Errorf("model is required when ai.enabled is true")
	}
	if a.APIKey == "" {
		return fmt.Errorf("API key is required but not found; set WEBHARNESS_AI_API_KEY")
	}
	if a.RequestsPerMinute <= 0 {
		return fmt.Errorf("requests_per_minute must be positive")
	}
	return nil
}
