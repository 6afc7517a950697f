// Package logger provides the structured logger used by the tablemd CLI.
package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
		Prefix:          "tablemd",
	})
	return &Logger{Logger: l}
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(file string, workers int, headerMode string) {
	if file == "" {
		file = "(defaults)"
	}
	l.Debug("config loaded",
		"file", file,
		"workers", workers,
		"header_mode", headerMode)
}

// BatchStarted logs the start of a multi-file conversion
func (l *Logger) BatchStarted(files, workers int) {
	l.Info("conversion started",
		"files", files,
		"workers", workers)
}

// BatchCompleted logs the completion of a multi-file conversion
func (l *Logger) BatchCompleted(converted, failed int, duration time.Duration) {
	l.Info("conversion completed",
		"converted", converted,
		"failed", failed,
		"duration", duration.Round(time.Millisecond))
}

// FileConverted logs a successfully converted file
func (l *Logger) FileConverted(source, dest string, tables int) {
	l.Info("file converted",
		"source", source,
		"dest", dest,
		"tables", tables)
}

// TableWarning logs a non-fatal conversion issue
func (l *Logger) TableWarning(file, message string) {
	l.Warn("table warning",
		"file", file,
		"warning", message)
}

// FileError logs an error for a specific file
func (l *Logger) FileError(file string, err error) {
	l.Error("file error",
		"file", file,
		"error", err)
}

// Skipped logs when a file is skipped
func (l *Logger) Skipped(file, reason string) {
	l.Debug("file skipped",
		"file", file,
		"reason", reason)
}
