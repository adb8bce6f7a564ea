package app

import "fmt"

// Config holds everything an App needs for one run.
type Config struct {
	// Flavor is passed to the generator verbatim. Empty is a valid flavor.
	Flavor string

	LogFormat string
	LogLevel  string
}

// Defaults applied by NewConfig. Logging stays quiet unless asked for so the
// generated file is the only thing dune sees.
const (
	DefaultLogFormat = "text"
	DefaultLogLevel  = "warn"
)

// NewConfig fills in defaults for unset logging fields and validates them.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	return &cfg, nil
}
