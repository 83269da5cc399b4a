package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cuemby/stow/pkg/log"
)

// Config holds stowctl's process-level settings: which database to open,
// how to log, and where to expose metrics.
type Config struct {
	// DatabaseURI is a scheme://rest URI in the form kv.Open accepts.
	// stowctl's subcommands take their URI as a positional argument and do
	// not read this field.
	DatabaseURI string `yaml:"databaseURI"`
	// LogLevel is one of log.DebugLevel/InfoLevel/WarnLevel/ErrorLevel.
	LogLevel string `yaml:"logLevel"`
	// LogJSON selects JSON log output over console output.
	LogJSON bool `yaml:"logJSON"`
	// MetricsAddr, if non-empty, is the address stowctl serve listens on
	// for /metrics, /health, /ready, /live.
	MetricsAddr string `yaml:"metricsAddr"`
}

// Default returns the configuration used when no file and no flags
// override anything.
func Default() Config {
	return Config{
		DatabaseURI: "bolt://./stow.db",
		LogLevel:    string(log.InfoLevel),
		LogJSON:     false,
		MetricsAddr: "",
	}
}

// Load reads path as YAML into a Config, starting from Default() so a
// partial file only overrides the fields it sets. An empty path returns
// Default() unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
