package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvOverrides are defaults read from the environment. Command-line flags
// take precedence over them.
type EnvOverrides struct {
	Tables string `env:"PAYGO_TABLES"`
	Format string `env:"PAYGO_FORMAT" envDefault:"console"`
	Debug  bool   `env:"PAYGO_DEBUG"`
}

// LoadEnvOverrides reads the PAYGO_* variables
func LoadEnvOverrides() (EnvOverrides, error) {
	var o EnvOverrides
	if err := env.Parse(&o); err != nil {
		return o, fmt.Errorf("parse env: %w", err)
	}
	return o, nil
}
