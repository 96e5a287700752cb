// ABOUTME: Console logger for the CLI backed by charmbracelet/log
// ABOUTME: Renders colored, human-friendly lines on stderr

package console

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger implements the Logger interface for terminal output
type Logger struct {
	log *log.Logger
}

// NewLogger creates a console logger writing to stderr
func NewLogger(level string) *Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a console logger writing to w
func NewWithWriter(w io.Writer, level string) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		Prefix:          "newsnex",
	})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}
	l.SetLevel(lvl)

	return &Logger{log: l}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug(msg, keyvals(fields)...)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.log.Info(msg, keyvals(fields)...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn(msg, keyvals(fields)...)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.log.Error(msg, keyvals(fields)...)
}

func keyvals(fields map[string]interface{}) []interface{} {
	out := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		out = append(out, k, v)
	}
	return out
}
