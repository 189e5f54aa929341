// Package log provides the structured logger shared by the importer, the
// renderer and the HTTP server. It wraps a single *zap.Logger the way
// the pack's service code does: one constructor per deployment mode,
// a package-level default, and Field re-exports so call sites never
// import zap directly.
package log

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field is a structured logging key/value pair.
type Field = zap.Field

var (
	String   = zap.String
	Int      = zap.Int
	Int64    = zap.Int64
	Float64  = zap.Float64
	Duration = zap.Duration
	Error    = zap.Error
	Bool     = zap.Bool
)

var current atomic.Pointer[zap.Logger]

func init() {
	l, _ := zap.NewDevelopment()
	current.Store(l)
}

// Logger returns the process-wide logger.
func Logger() *zap.Logger {
	return current.Load()
}

// SetProduction switches the process-wide logger to a JSON-encoded,
// info-level production configuration, used by cmd/railmapd.
func SetProduction() error {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	current.Store(l)
	return nil
}

// SetConsole switches the process-wide logger to a human-readable console
// encoder, used by the CLI import/lint tools.
func SetConsole(verbose bool) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	l, err := cfg.Build()
	if err != nil {
		l = zap.NewNop()
	}
	current.Store(l)
}

// Sync flushes any buffered log entries; call before process exit.
func Sync() {
	_ = Logger().Sync()
}

// Fatal is a thin convenience wrapper kept distinct from the logger so
// call sites read "log.Fatal(...)" the way the rest of the codebase's
// fmt.Errorf call sites read "return fmt.Errorf(...)" -- used only at
// startup (§7: "I/O error during load ... aborts startup").
func Fatal(msg string, fields ...Field) {
	Logger().Fatal(msg, fields...)
	os.Exit(1)
}
