package config

import (
	"strings"
	"time"
)

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// This function is called after loading configuration from file and environment
// variables to fill in any missing values with sensible defaults.
//
// Default Strategy:
//   - Zero values (0, "", false, nil) are replaced with defaults
//   - Explicit values are preserved
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyWatchDefaults(&cfg.Watch)
	// Tool.Path has no default - empty means probe the usual locations
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	// Normalize log level to uppercase for consistent internal representation
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		// Logs go to stderr so stdout stays clean for reports and
		// --output json|yaml renderings
		cfg.Output = "stderr"
	}
}

// applyWatchDefaults sets watch mode defaults and normalizes extensions.
func applyWatchDefaults(cfg *WatchConfig) {
	if cfg.SettleDelay == 0 {
		cfg.SettleDelay = 2 * time.Second
	}

	// Normalize extensions: lowercase, no leading dot
	for i, ext := range cfg.Extensions {
		cfg.Extensions[i] = strings.ToLower(strings.TrimPrefix(ext, "."))
	}
}

// GetDefaultConfig returns a Config struct with all default values applied.
//
// This is useful for:
//   - Running without a configuration file
//   - Testing
//   - Documentation
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
