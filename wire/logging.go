package wire

import (
	"log/slog"
	"sync"
)

var (
	loggerMu sync.RWMutex
	logger   = slog.Default()
)

// SetLogger replaces the logger used for the package's diagnostic
// warnings. Passing nil restores slog.Default(). The decoder itself never
// logs anything about malformed input; the only event this package ever
// emits is the unsigned-64-bit overflow warning below, mirroring the
// original extension's sqlite3_log call for the same condition.
func SetLogger(l *slog.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if l == nil {
		l = slog.Default()
	}
	logger = l
}

func currentLogger() *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// warnUnsignedOverflow logs that a uint64 value doesn't fit in an int64,
// the one case where a "uint64" or "fixed64" extract() result can't be represented
// exactly by SQLite's signed 64-bit integer storage class.
func warnUnsignedOverflow(value uint64) {
	currentLogger().Warn("protobuf value is unsigned but does not fit in an int64",
		slog.Uint64("value", value))
}
