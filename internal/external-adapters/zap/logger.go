// Package zap adapts go.uber.org/zap to the domain Logger interface.
package zap

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ochairo/localcert/internal/domain/entities"
	"github.com/ochairo/localcert/internal/domain/interfaces"
)

// Logger implements interfaces.Logger on top of a zap.Logger
type Logger struct {
	zl *zap.Logger
}

// New wraps an existing zap logger
func New(zl *zap.Logger) *Logger {
	return &Logger{zl: zl}
}

// NewFromConfig builds a zap logger for the configured level and format.
// "console" uses zap's development encoder, "json" its production encoder.
func NewFromConfig(cfg entities.LogConfig) (*Logger, error) {
	var zcfg zap.Config
	switch cfg.Format {
	case "json":
		zcfg = zap.NewProductionConfig()
	case "", "console":
		zcfg = zap.NewDevelopmentConfig()
		zcfg.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("unsupported log format: %s", cfg.Format)
	}
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		zcfg.Level = level
	}

	zl, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return New(zl.Named("localcert")), nil
}

// Debug logs debug-level messages
func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	l.zl.Debug(msg, toZap(fields)...)
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	l.zl.Info(msg, toZap(fields)...)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	l.zl.Warn(msg, toZap(fields)...)
}

// Error logs error messages
func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	l.zl.Error(msg, toZap(fields)...)
}

// With returns a child logger carrying fields
func (l *Logger) With(fields ...interfaces.Field) interfaces.Logger {
	return &Logger{zl: l.zl.With(toZap(fields)...)}
}

// Sync flushes buffered entries
func (l *Logger) Sync() error {
	return l.zl.Sync()
}

func toZap(fields []interfaces.Field) []zap.Field {
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		if err, ok := f.Value.(error); ok {
			out[i] = zap.NamedError(f.Key, err)
			continue
		}
		out[i] = zap.Any(f.Key, f.Value)
	}
	return out
}
