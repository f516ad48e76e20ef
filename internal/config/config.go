// Package config loads service configuration from a YAML file, the
// environment, and defaults, in that order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the dashboard service configuration.
type Config struct {
	BackendURL      string        `mapstructure:"backend_url"`
	ListenAddr      string        `mapstructure:"listen_addr"`
	HealthInterval  time.Duration `mapstructure:"health_interval"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`

	Retry    RetryConfig    `mapstructure:"retry"`
	Analyzer AnalyzerConfig `mapstructure:"analyzer"`
}

// RetryConfig bounds the snapshot-fetch retry budget.
type RetryConfig struct {
	MaxAttempts int `mapstructure:"max_attempts"`
	BackoffMs   int `mapstructure:"backoff_ms"`
}

// AnalyzerConfig controls the preview energy analyzer.
type AnalyzerConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	Workers   int  `mapstructure:"workers"`
	QueueSize int  `mapstructure:"queue_size"`
}

// Load reads configuration from ./config.yaml (or /etc/trend-dashboard/),
// environment variables prefixed TREND_, and built-in defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/trend-dashboard/")

	v.SetEnvPrefix("TREND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("backend_url", "http://localhost:8000")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("health_interval", "60s")
	v.SetDefault("refresh_interval", "30s")
	v.SetDefault("request_timeout", "10s")
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.backoff_ms", 500)
	v.SetDefault("analyzer.enabled", false)
	v.SetDefault("analyzer.workers", 2)
	v.SetDefault("analyzer.queue_size", 100)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
		// No file is fine; defaults and env carry the day.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("config: backend_url is required")
	}
	if c.HealthInterval <= 0 {
		return fmt.Errorf("config: health_interval must be positive")
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("config: refresh_interval must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: request_timeout must be positive")
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("config: retry.max_attempts must be at least 1")
	}
	return nil
}
