package cmdutil

import (
	"fmt"

	"twi-speech/internal/config"
)

// ConfigPath is bound to the root --config flag
var ConfigPath string

// LoadConfig loads and validates the configuration for a subcommand
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
