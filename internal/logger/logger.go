package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It discards everything until Init is called,
// so packages can log unconditionally (tests included).
var Log = zap.NewNop()

// Init installs a development console logger at debug level
func Init() {
	InitWithLevel("debug")
}

// InitWithLevel installs a console logger at the named level ("debug", "info", "warn", "error").
// Unknown names fall back to info.
func InitWithLevel(level string) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true

	l, err := cfg.Build()
	if err != nil {
		// Keep whatever logger was installed before
		Log.Error("Failed to build logger", zap.Error(err))
		return
	}
	Log = l
}

// Sync flushes buffered log entries. Call before the process exits.
func Sync() {
	_ = Log.Sync()
}
