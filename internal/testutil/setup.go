// Package testutil holds the logging, context and golden file helpers shared
// by worldgen tests.
package testutil

import (
	"context"
	"io"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/worldgen/internal/logging"
)

// GenerationTimeout bounds contexts from CreateTestContext. Even the largest
// worlds built in tests finish well inside it.
const GenerationTimeout = 30 * time.Second

// TestConfig controls what SetupTest does with the package logger.
type TestConfig struct {
	// CaptureLogs sends log output to t.Log at LogLevel instead of discarding it.
	CaptureLogs bool
	LogLevel    log.Level
}

// DefaultTestConfig discards logs.
func DefaultTestConfig() *TestConfig {
	return &TestConfig{LogLevel: log.DebugLevel}
}

// SetupTest swaps logging.Logger for the duration of a test. The returned
// function restores the previous logger:
//
//	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
//	defer cleanup()
func SetupTest(t *testing.T, config *TestConfig) func() {
	t.Helper()

	previous := logging.Logger
	if config != nil && config.CaptureLogs {
		logger := log.NewWithOptions(testWriter{t: t}, log.Options{Prefix: "[worldgen] "})
		logger.SetLevel(config.LogLevel)
		logging.Logger = logger
	} else {
		logging.Logger = log.New(io.Discard)
	}

	return func() { logging.Logger = previous }
}

type testWriter struct {
	t *testing.T
}

func (tw testWriter) Write(p []byte) (int, error) {
	tw.t.Helper()
	tw.t.Log(string(p))
	return len(p), nil
}

// CreateTestContext returns a context that expires after GenerationTimeout
// or when the test ends.
func CreateTestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), GenerationTimeout)
	t.Cleanup(cancel)
	return ctx
}

// GetProjectRoot returns the module root, found relative to this file.
func GetProjectRoot() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		panic("testutil: no caller information")
	}
	return filepath.Dir(filepath.Dir(filepath.Dir(filename)))
}
