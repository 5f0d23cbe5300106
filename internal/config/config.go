package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all tool settings, populated from defaults, an optional
// config file ($HOME/.geomet/config.yaml or ./config.yaml), and GEOMET_*
// environment variables, in increasing precedence.
type Config struct {
	Endpoint  string
	UserAgent string
	// Timeout bounds each individual HTTP request. The upstream service has
	// no SLA and can take multi-second latency on large collections, so this
	// is deliberately explicit rather than transport-default.
	Timeout   time.Duration
	LogLevel  string
	LogFormat string
}

// Load reads configuration and validates it.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("endpoint", "https://api.weather.gc.ca")
	v.SetDefault("user_agent", "geomet-catalog/1.0")
	v.SetDefault("timeout", "30s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvPrefix("GEOMET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.geomet")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// No config file is fine; defaults and env apply.
	}

	cfg := &Config{
		Endpoint:  v.GetString("endpoint"),
		UserAgent: v.GetString("user_agent"),
		Timeout:   v.GetDuration("timeout"),
		LogLevel:  v.GetString("log.level"),
		LogFormat: v.GetString("log.format"),
	}

	if cfg.Endpoint == "" {
		return nil, errors.New("endpoint is required")
	}
	u, err := url.Parse(cfg.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("endpoint %q is not a valid http(s) URL", cfg.Endpoint)
	}
	if cfg.Timeout <= 0 {
		return nil, errors.New("timeout must be positive")
	}

	return cfg, nil
}
