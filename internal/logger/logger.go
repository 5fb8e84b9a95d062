package logger

import (
	"go.uber.org/zap"
)

// Log is the process logger. It is a no-op until Initialize runs.
var Log *zap.Logger = zap.NewNop()

// Initialize builds a JSON production logger at level and installs it as Log.
func Initialize(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.DisableStacktrace = true

	zl, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = zl
	return nil
}

// Sync flushes buffered entries; errors from syncing a terminal are ignored.
func Sync() {
	_ = Log.Sync()
}
