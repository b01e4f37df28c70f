package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel maps a config value to a level, defaulting to INFO
func ParseLogLevel(value string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case DEBUG:
		return zerolog.DebugLevel
	case WARN:
		return zerolog.WarnLevel
	case ERROR:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Logger is a leveled printf-style logger backed by zerolog
type Logger struct {
	base zerolog.Logger
}

// NewLogger creates a logger writing to out. Human output uses the console writer.
func NewLogger(level LogLevel, out io.Writer, human bool) *Logger {
	if out == nil {
		out = os.Stdout
	}
	if human {
		console := zerolog.NewConsoleWriter()
		console.Out = out
		console.TimeFormat = time.DateTime
		out = console
	}
	base := zerolog.New(out).Level(level.zerolog()).With().Timestamp().Logger()
	return &Logger{base: base}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.base.Debug().Msg(fmt.Sprintf(format, v...))
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.base.Info().Msg(fmt.Sprintf(format, v...))
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...interface{}) {
	l.base.Warn().Msg(fmt.Sprintf(format, v...))
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.base.Error().Msg(fmt.Sprintf(format, v...))
}

// WithFields returns a new logger with the specified fields
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	builder := l.base.With()
	for k, v := range fields {
		builder = builder.Interface(k, v)
	}
	return &Logger{base: builder.Logger()}
}

// WithField returns a new logger with a single field added
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

// SetLevel changes the log level
func (l *Logger) SetLevel(level LogLevel) {
	l.base = l.base.Level(level.zerolog())
}

// Configure replaces the global logger from config values
func Configure(level string, human bool) {
	Log = NewLogger(ParseLogLevel(level), os.Stdout, human)
}

// Global logger instance
var Log = NewLogger(INFO, os.Stdout, true)
