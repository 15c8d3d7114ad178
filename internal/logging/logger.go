// Package logging owns the process-wide zap logger for the Yarnly client.
// Logs go to a file under the state directory, never to stdout/stderr: the
// terminal is owned by the TUI and stray writes corrupt the frame.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

// Init builds the file-backed logger. dir is the state directory
// (typically ~/.yarnly); log output lands in dir/logs/yarnly.log.
// Before Init (and after a failed Init) the package logger is a no-op,
// so callers never have to nil-check.
func Init(dir string, debug bool) error {
	if dir == "" {
		return fmt.Errorf("state directory required")
	}
	logsDir := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(logsDir, "yarnly.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	mu.Lock()
	logger = l
	mu.Unlock()
	return nil
}

// L returns the process logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Named returns a subsystem logger ("api", "session", "catalog", "auth", "ui").
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// Sync flushes buffered log entries. Call at shutdown.
func Sync() {
	_ = L().Sync()
}

// SetLogger replaces the process logger. Tests use this to capture output.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
