package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the level and encoding of a logger.
type Options struct {
	// Level is a zap level name such as "debug" or "warn". Empty means info.
	Level string
	// Console switches from JSON to human-readable output.
	Console bool
}

// New creates a production-ready structured logger. Output goes to stderr so
// that command output on stdout stays machine readable.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if raw := strings.TrimSpace(opts.Level); raw != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(raw))); err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", opts.Level, err)
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "json"
	if opts.Console {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.StacktraceKey = "stacktrace"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
