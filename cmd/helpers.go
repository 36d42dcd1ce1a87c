package cmd

import (
	"fmt"

	"github.com/richmanstudio/studio/internal/config"
	"github.com/richmanstudio/studio/internal/logger"
)

// loadConfig loads and validates the config, providing a user-friendly error.
// A missing file is not an error: defaults and STUDIO_* variables apply.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `studio init` to create a config file", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the structured logger from cfg. Logs go to stderr so
// stdout stays free for command output and the MCP protocol.
func newLogger(cfg *config.Config) *logger.Logger {
	return logger.New(cfg.Log.Level, cfg.Log.Format)
}
