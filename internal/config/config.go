// Package config loads binary settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by the unitconv binaries. Command-line
// flags take precedence over these values.
type Config struct {
	Registry  string `env:"UNITCONV_REGISTRY"`
	DB        string `env:"UNITCONV_DB"`
	LogLevel  string `env:"UNITCONV_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"UNITCONV_LOG_FORMAT" envDefault:"tint"`
	Precision int    `env:"UNITCONV_PRECISION"  envDefault:"6"`
	Addr      string `env:"UNITCONV_ADDR"       envDefault:":8080"`
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Precision < 0 {
		return Config{}, fmt.Errorf("parse env: UNITCONV_PRECISION must not be negative, got %d", cfg.Precision)
	}
	return cfg, nil
}
