package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
// Values are read once at startup and never mutated afterwards.
type Config struct {
	// Server
	Port     int    `mapstructure:"PORT"`
	Env      string `mapstructure:"APP_ENV"` // development | production
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Conta API
	APIURL            string `mapstructure:"API_URL"`
	APITimeoutSeconds int    `mapstructure:"API_TIMEOUT_SECONDS"`
	APICBFailures     int    `mapstructure:"API_CB_FAILURES"`
	APICBOpenSeconds  int    `mapstructure:"API_CB_OPEN_SECONDS"`

	// Rate limiting
	RateLimitPerMinute int `mapstructure:"RATE_LIMIT_PER_MINUTE"`
}

// DefaultAPIURL is used when API_URL is not set.
const DefaultAPIURL = "http://localhost:8000"

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("PORT", 5173)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("API_URL", DefaultAPIURL)
	v.SetDefault("API_TIMEOUT_SECONDS", 30)
	v.SetDefault("API_CB_FAILURES", 5)
	v.SetDefault("API_CB_OPEN_SECONDS", 30)
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 600)

	// Optional .env file for local development; a missing file is fine
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if err := validateAPIURL(cfg.APIURL); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateAPIURL rejects values that cannot be used as a request base, so a
// typo fails at startup instead of on every call.
func validateAPIURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("config: API_URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: API_URL %q must be an absolute http(s) URL", raw)
	}
	return nil
}

// APITimeout is the per-request timeout of the Conta API client.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.APITimeoutSeconds) * time.Second
}

// APICBOpenTimeout is how long the breaker stays open before probing.
func (c *Config) APICBOpenTimeout() time.Duration {
	return time.Duration(c.APICBOpenSeconds) * time.Second
}

func (c *Config) IsProduction() bool { return c.Env == "production" }
