package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// configTemplate is the starter file written by 'mdwipe init'. It spells
// out every key with its default so users edit instead of guessing.
const configTemplate = `# mdwipe Configuration File
#
# All keys are optional; missing values fall back to the defaults shown
# here. Environment variables override the file, e.g.
# MDWIPE_LOGGING_LEVEL=DEBUG or MDWIPE_TOOL_PATH=/usr/local/bin/exiftool.

logging:
  # Minimum level: DEBUG, INFO, WARN, ERROR
  level: "INFO"
  # Output format: text, json
  format: "text"
  # Destination: stdout, stderr, or a file path
  output: "stderr"

tool:
  # Pin the exiftool binary instead of probing install locations and PATH.
  # path: /opt/homebrew/bin/exiftool

watch:
  # How long a new file must sit unchanged before it is cleaned.
  settle_delay: "2s"
  # Restrict watch mode to these extensions (empty means all files).
  # extensions: [jpg, jpeg, png, heic, pdf]
`

// InitConfig writes the starter configuration file at the default
// location and returns the path written.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	if err := InitConfigToPath(path, force); err != nil {
		return "", err
	}
	return path, nil
}

// InitConfigToPath writes the starter configuration file at an explicit
// path, creating parent directories as needed. An existing file is only
// overwritten when force is set.
func InitConfigToPath(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s\nHint: Use --force to overwrite it", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
