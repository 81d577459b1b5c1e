// Package logging builds the zap loggers used across the engine. Output
// defaults to a file rather than stderr: the terminal display owns the
// screen, and interleaved log lines would corrupt it.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultPath is where logs land when no output path is configured.
const DefaultPath = "ember.log"

// Options configure a logger. The zero value logs info-level JSON to
// DefaultPath.
type Options struct {
	// Level is a zap level name ("debug", "info", "warn", "error").
	Level string
	// Development switches to the console encoder with debug defaults.
	Development bool
	// OutputPaths are zap sink URLs or file paths.
	OutputPaths []string
}

// New builds a logger from options.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Development {
		level = zapcore.DebugLevel
	}
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}

	paths := opts.OutputPaths
	if len(paths) == 0 {
		paths = []string{DefaultPath}
	}

	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       opts.Development,
		DisableCaller:     true,
		DisableStacktrace: !opts.Development,
		Encoding:          "json",
		EncoderConfig:     zap.NewProductionEncoderConfig(),
		OutputPaths:       paths,
		ErrorOutputPaths:  paths,
	}
	if opts.Development {
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log, nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}
