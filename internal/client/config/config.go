// Package config loads runtime settings for the memopad client. Values are
// layered: defaults, then environment, then JSON file, then command-line
// flags, with later sources taking precedence.
package config

import (
	"errors"
	"time"
)

// Config holds runtime settings for the memopad TUI client.
//
// BaseURL and ApiKey identify the backend installation; both are required
// and their absence is a startup error.
type Config struct {
	BaseURL        string
	ApiKey         string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults. The api key has no
// default: it must come from the environment, a config file or a flag.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8080"
	c.RequestTimeout = 10 * time.Second
}

// Validate reports whether the loaded configuration is usable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base url is required")
	}
	if c.ApiKey == "" {
		return errors.New("api key is required")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, JSON (if present) and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
