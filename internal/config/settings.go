package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings are process-level options read from the environment.
type Settings struct {
	DataDir      string `env:"ORBSIM_DATA_DIR" envDefault:".orbsim"`
	LogPrefix    string `env:"ORBSIM_LOG_PREFIX" envDefault:"[ORBSIM] "`
	Diagnostics  bool   `env:"ORBSIM_DIAGNOSTICS" envDefault:"false"`
	OTelEndpoint string `env:"ORBSIM_OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"ORBSIM_OTEL_ENABLED" envDefault:"true"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func LoadSettings() (Settings, error) {
	var s Settings
	if err := ParseEnv(&s); err != nil {
		return Settings{}, err
	}
	return s, nil
}
