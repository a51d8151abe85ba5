// Package logging builds the zap loggers used across ragchat.
// Logging is controlled by debug_mode: when false, every logger is a no-op.
// The interactive UI owns the terminal, so its logs always go to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category names a subsystem; it becomes the logger name.
type Category string

const (
	CategoryBoot   Category = "boot"   // startup, config resolution
	CategoryAPI    Category = "api"    // chat endpoint round trips
	CategoryUI     Category = "ui"     // chat component events
	CategoryServer Category = "server" // local echo backend
)

// Options mirrors config.LoggingConfig plus the sink choice, so this
// package does not depend on config.
type Options struct {
	DebugMode bool
	Level     string
	// File is the log destination. Empty means stderr.
	File string
	// Console switches to the human-readable encoder.
	Console bool
}

// New builds a logger for opts. With DebugMode off it returns zap.NewNop().
func New(opts Options) (*zap.Logger, error) {
	if !opts.DebugMode {
		return zap.NewNop(), nil
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	if opts.Console {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if opts.File != "" {
		if dir := filepath.Dir(opts.File); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory: %w", err)
			}
		}
		cfg.OutputPaths = []string{opts.File}
		cfg.ErrorOutputPaths = []string{opts.File}
	} else {
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// ParseLevel maps a config level string to a zap level. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// Get returns the child logger for a category. A nil base yields a no-op.
func Get(base *zap.Logger, c Category) *zap.Logger {
	if base == nil {
		return zap.NewNop()
	}
	return base.Named(string(c))
}
