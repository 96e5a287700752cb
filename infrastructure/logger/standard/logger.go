// ABOUTME: Standard logger implementation backed by logrus
// ABOUTME: Provides leveled structured logging with optional rotating file output

package standard

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the standard logger
type Options struct {
	// Level is one of debug, info, warn, error (default info)
	Level string

	// Format is "text" or "json" (default text)
	Format string

	// File enables rotating file output in addition to stdout
	File string
}

// StandardLogger implements the Logger interface using logrus
type StandardLogger struct {
	entry *logrus.Logger
}

// NewStandardLogger creates a logger with default options
func NewStandardLogger() *StandardLogger {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a logger from the given options
func NewWithOptions(opts Options) *StandardLogger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if opts.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var out io.Writer = os.Stdout
	if opts.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    100, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}
	logger.SetOutput(out)

	return &StandardLogger{entry: logger}
}

// NewWithWriter creates a logger that writes JSON to w, mainly for tests
func NewWithWriter(w io.Writer, level string) *StandardLogger {
	l := NewWithOptions(Options{Level: level, Format: "json"})
	l.entry.SetOutput(w)
	return l
}

// Debug logs a debug message
func (l *StandardLogger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Debug(msg)
}

// Info logs an info message
func (l *StandardLogger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Info(msg)
}

// Warn logs a warning message
func (l *StandardLogger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Warn(msg)
}

// Error logs an error message
func (l *StandardLogger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Error(msg)
}
