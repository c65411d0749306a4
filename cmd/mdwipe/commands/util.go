package commands

import (
	"context"
	"fmt"

	"github.com/mdwipe/mdwipe/cmd/mdwipe/cmdutil"
	"github.com/mdwipe/mdwipe/internal/logger"
	"github.com/mdwipe/mdwipe/internal/runner"
	"github.com/mdwipe/mdwipe/pkg/config"
	"github.com/mdwipe/mdwipe/pkg/exiftool"
	"github.com/mdwipe/mdwipe/pkg/platform"
)

// InitLogger initializes the structured logger from configuration.
// The --verbose flag overrides the configured level with DEBUG.
func InitLogger(cfg *config.Config) error {
	loggerCfg := logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if cmdutil.IsVerbose() {
		loggerCfg.Level = "DEBUG"
	}
	if err := logger.Init(loggerCfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// loadConfig loads the configuration and wires logging from it. Every
// command that touches files calls this first.
func loadConfig() (*config.Config, error) {
	cfg, err := cmdutil.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := InitLogger(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveTool finds the exiftool binary. A path pinned in the
// configuration wins over auto-detection but must answer a version
// probe; a broken pin is an error, not a silent fallback.
func resolveTool(ctx context.Context, cfg *config.Config, plat platform.Platform, r runner.Runner) (*exiftool.Tool, error) {
	if cfg.Tool.Path != "" {
		tool := &exiftool.Tool{Path: cfg.Tool.Path, Source: exiftool.SourceConfig}
		if _, err := tool.Client(r).Version(ctx); err != nil {
			return nil, fmt.Errorf("configured exiftool at %s is not usable: %w\nHint: Fix tool.path in your configuration or remove it to use auto-detection", cfg.Tool.Path, err)
		}
		return tool, nil
	}
	return exiftool.NewLocator(plat, r).Locate(ctx)
}
