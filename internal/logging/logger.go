package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level represents log level
type Level = logrus.Level

const (
	DEBUG = logrus.DebugLevel
	INFO  = logrus.InfoLevel
	WARN  = logrus.WarnLevel
	ERROR = logrus.ErrorLevel
)

// Logger provides structured logging. Output defaults to stderr because
// stdout belongs to the report.
type Logger struct {
	entry *logrus.Entry
}

// NewLogger creates a new logger
func NewLogger(level Level, jsonFormat bool) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stderr)
	base.SetLevel(level)
	if jsonFormat {
		base.SetFormatter(&logrus.JSONFormatter{})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	return &Logger{entry: logrus.NewEntry(base)}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	l := NewLogger(ERROR, false)
	l.SetOutput(io.Discard)
	return l
}

// SetOutput sets the output writer
func (l *Logger) SetOutput(w io.Writer) {
	l.entry.Logger.SetOutput(w)
}

// Debug logs a debug message
func (l *Logger) Debug(message string, fields ...map[string]interface{}) {
	l.with(fields).Debug(message)
}

// Info logs an info message
func (l *Logger) Info(message string, fields ...map[string]interface{}) {
	l.with(fields).Info(message)
}

// Warn logs a warning message
func (l *Logger) Warn(message string, fields ...map[string]interface{}) {
	l.with(fields).Warn(message)
}

// Error logs an error message
func (l *Logger) Error(message string, fields ...map[string]interface{}) {
	l.with(fields).Error(message)
}

// WithField adds a field to the logger context
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

func (l *Logger) with(fields []map[string]interface{}) *logrus.Entry {
	if len(fields) == 0 || len(fields[0]) == 0 {
		return l.entry
	}
	return l.entry.WithFields(logrus.Fields(fields[0]))
}

// ParseLevel parses a log level string. Unknown values fall back to WARN.
func ParseLevel(level string) Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "trace":
		return DEBUG
	case "info":
		return INFO
	case "warn", "warning":
		return WARN
	case "error", "fatal", "panic":
		return ERROR
	default:
		return WARN
	}
}
