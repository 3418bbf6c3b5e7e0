package logging

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

var Logger *log.Logger

// LogLevel represents available log levels
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// Log output formats accepted by Configure.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatLogfmt = "logfmt"
)

// Options controls how Configure sets up the global logger.
type Options struct {
	Level      string
	Format     string
	Structured bool
	Prefix     string
}

// InitLogger initializes the global logger with configuration from environment variables
func InitLogger() {
	Logger = log.New(os.Stderr)

	logLevel := ParseLevel(os.Getenv("LOG_LEVEL"))
	setLogLevel(Logger, logLevel)

	Logger.SetReportTimestamp(true)
	Logger.SetReportCaller(false)

	Logger.Debug("Logger initialized successfully", "level", logLevel)
}

// Configure replaces the global logger with one built from opts.
func Configure(opts Options) *log.Logger {
	logger := log.New(os.Stderr)

	level := ParseLevel(opts.Level)
	setLogLevel(logger, level)

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case FormatJSON:
		logger.SetFormatter(log.JSONFormatter)
	case FormatLogfmt:
		logger.SetFormatter(log.LogfmtFormatter)
	default:
		logger.SetFormatter(log.TextFormatter)
	}

	logger.SetReportTimestamp(true)
	// Caller info is reported for unstructured output only.
	logger.SetReportCaller(!opts.Structured)

	if opts.Prefix != "" {
		logger.SetPrefix(opts.Prefix)
	}

	Logger = logger
	Logger.Debug("Logger configured", "level", level, "format", opts.Format, "structured", opts.Structured)
	return Logger
}

// ParseLevel maps a user supplied level name onto a LogLevel, defaulting to info.
func ParseLevel(value string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// setLogLevel configures the logger with the specified level
func setLogLevel(logger *log.Logger, level LogLevel) {
	switch level {
	case DebugLevel:
		logger.SetLevel(log.DebugLevel)
	case InfoLevel:
		logger.SetLevel(log.InfoLevel)
	case WarnLevel:
		logger.SetLevel(log.WarnLevel)
	case ErrorLevel:
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}

// GetLogger returns the global logger instance
func GetLogger() *log.Logger {
	if Logger == nil {
		InitLogger()
	}
	return Logger
}

// WithFields creates a logger with contextual fields
func WithFields(fields ...interface{}) *log.Logger {
	return GetLogger().With(fields...)
}

// WithWorld creates a logger with world_id context
func WithWorld(worldID string) *log.Logger {
	return WithFields("world_id", worldID)
}

// WithSeed creates a logger with the generation inputs of a world
func WithSeed(seed int64, resolution int) *log.Logger {
	return WithFields("seed", seed, "resolution", resolution)
}

// WithDuration creates a logger with duration context (for performance logging)
func WithDuration(operation string, duration time.Duration) *log.Logger {
	return WithFields("operation", operation, "duration", duration)
}
