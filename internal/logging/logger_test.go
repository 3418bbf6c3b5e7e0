package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test_Logger_InitLogger_LogLevelConfiguration tests logger initialization with various log levels
func Test_Logger_InitLogger_LogLevelConfiguration(t *testing.T) {
	tests := []struct {
		name          string
		logLevel      string
		expectedLevel log.Level
	}{
		{name: "debug_level", logLevel: "debug", expectedLevel: log.DebugLevel},
		{name: "info_level", logLevel: "info", expectedLevel: log.InfoLevel},
		{name: "warn_level", logLevel: "warn", expectedLevel: log.WarnLevel},
		{name: "warning_level_alias", logLevel: "warning", expectedLevel: log.WarnLevel},
		{name: "error_level", logLevel: "error", expectedLevel: log.ErrorLevel},
		{name: "default_empty_level", logLevel: "", expectedLevel: log.InfoLevel},
		{name: "default_invalid_level", logLevel: "invalid", expectedLevel: log.InfoLevel},
		{name: "case_insensitive_debug", logLevel: "DEBUG", expectedLevel: log.DebugLevel},
		{name: "whitespace_trimmed", logLevel: "  warn  ", expectedLevel: log.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			originalLogLevel := os.Getenv("LOG_LEVEL")
			defer os.Setenv("LOG_LEVEL", originalLogLevel)
			os.Setenv("LOG_LEVEL", tt.logLevel)

			Logger = nil
			InitLogger()

			require.NotNil(t, Logger, "Logger should be initialized")
			assert.Equal(t, tt.expectedLevel, Logger.GetLevel())
		})
	}
}

func Test_Logger_GetLogger_SingletonBehavior(t *testing.T) {
	Logger = nil

	first := GetLogger()
	require.NotNil(t, first)
	assert.Same(t, Logger, first, "GetLogger should set the global Logger")
	assert.Same(t, first, GetLogger(), "subsequent calls should return the same instance")
}

func Test_Logger_Configure(t *testing.T) {
	tests := []struct {
		name          string
		opts          Options
		expectedLevel log.Level
	}{
		{
			name:          "json_structured",
			opts:          Options{Level: "warn", Format: FormatJSON, Structured: true},
			expectedLevel: log.WarnLevel,
		},
		{
			name:          "logfmt",
			opts:          Options{Level: "error", Format: FormatLogfmt, Structured: true},
			expectedLevel: log.ErrorLevel,
		},
		{
			name:          "pretty_text",
			opts:          Options{Level: "debug", Format: "pretty", Prefix: "[worldgen] "},
			expectedLevel: log.DebugLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := Configure(tt.opts)
			require.NotNil(t, logger)
			assert.Same(t, Logger, logger)
			assert.Equal(t, tt.expectedLevel, logger.GetLevel())
			assert.Equal(t, tt.opts.Prefix, logger.GetPrefix())
		})
	}
}

func Test_Logger_ContextHelpers_Functionality(t *testing.T) {
	var buf bytes.Buffer
	Logger = log.New(&buf)
	Logger.SetLevel(log.DebugLevel)
	Logger.SetFormatter(log.JSONFormatter)

	helpers := map[string]func() *log.Logger{
		"world_id": func() *log.Logger { return WithWorld("550e8400-e29b-41d4-a716-446655440000") },
		"seed":     func() *log.Logger { return WithSeed(42, 512) },
		"duration": func() *log.Logger { return WithDuration("generate", 250*time.Millisecond) },
	}

	for key, helper := range helpers {
		t.Run(key, func(t *testing.T) {
			buf.Reset()

			logger := helper()
			require.NotNil(t, logger)
			assert.NotSame(t, Logger, logger, "helpers should return a derived logger")

			logger.Info("helper message")

			var entry map[string]interface{}
			require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
			assert.Contains(t, entry, key)
			assert.Equal(t, "helper message", entry["msg"])
		})
	}
}

func Test_Logger_LogLevel_Filtering(t *testing.T) {
	tests := []struct {
		name         string
		level        LogLevel
		logFunction  func(*log.Logger, string)
		shouldOutput bool
	}{
		{"debug_level_debug_message", DebugLevel, func(l *log.Logger, m string) { l.Debug(m) }, true},
		{"info_level_debug_message", InfoLevel, func(l *log.Logger, m string) { l.Debug(m) }, false},
		{"warn_level_info_message", WarnLevel, func(l *log.Logger, m string) { l.Info(m) }, false},
		{"error_level_error_message", ErrorLevel, func(l *log.Logger, m string) { l.Error(m) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := log.New(&buf)
			setLogLevel(logger, tt.level)

			tt.logFunction(logger, "filtered message")

			assert.Equal(t, tt.shouldOutput, strings.Contains(buf.String(), "filtered message"))
		})
	}
}

func Test_DefaultLoggerWrapper_With(t *testing.T) {
	var buf bytes.Buffer
	Logger = log.New(&buf)
	Logger.SetLevel(log.DebugLevel)

	base := NewDefaultLoggerWrapper()
	component := base.With("component", "world-generator")
	scoped := component.With("seed", 7)

	scoped.Info("generation started")
	output := buf.String()
	assert.Contains(t, output, "generation started")
	assert.Contains(t, output, "component=world-generator")
	assert.Contains(t, output, "seed=7")

	buf.Reset()
	base.Warn("no fields")
	assert.NotContains(t, buf.String(), "component=", "With must not mutate the parent wrapper")
}
