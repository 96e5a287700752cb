// ABOUTME: Logger selection for the configured backend
// ABOUTME: Supports logrus (default), zap and the charmbracelet console logger

package app

import (
	"fmt"

	"newsnex-api/core/interfaces"
	"newsnex-api/infrastructure/logger/console"
	logger "newsnex-api/infrastructure/logger/standard"
	"newsnex-api/infrastructure/logger/zaplogger"
	"newsnex-api/pkg/config"
)

// NewLogger builds the logger named by cfg.Backend. The returned sync func
// flushes buffered entries and is safe to call once at shutdown.
func NewLogger(cfg config.LogConfig) (interfaces.Logger, func() error, error) {
	switch cfg.Backend {
	case "zap":
		l, err := zaplogger.NewLogger(cfg.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("creating zap logger: %w", err)
		}
		return l, l.Sync, nil
	case "console":
		return console.NewLogger(cfg.Level), noopSync, nil
	case "", "logrus":
		return logger.NewWithOptions(logger.Options{
			Level:  cfg.Level,
			Format: cfg.Format,
			File:   cfg.File,
		}), noopSync, nil
	}
	return nil, nil, fmt.Errorf("unknown log backend %q", cfg.Backend)
}

func noopSync() error { return nil }
