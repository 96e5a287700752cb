// ABOUTME: Logger implementation backed by uber-go/zap
// ABOUTME: Selected with LOG_BACKEND=zap for high-throughput JSON logging

package zaplogger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger implements the Logger interface using zap
type Logger struct {
	log *zap.Logger
}

// NewLogger creates a production zap logger at the given level
func NewLogger(level string) (*Logger, error) {
	cfg := zap.NewProductionConfig()

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{log: l}, nil
}

// NewFromZap wraps an existing zap logger
func NewFromZap(l *zap.Logger) *Logger {
	return &Logger{log: l}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug(msg, toZapFields(fields)...)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.log.Info(msg, toZapFields(fields)...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn(msg, toZapFields(fields)...)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.log.Error(msg, toZapFields(fields)...)
}

// Sync flushes buffered log entries
func (l *Logger) Sync() error {
	return l.log.Sync()
}

func toZapFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}
