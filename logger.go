package nightsky

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/nightsky/compose"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for nightsky and all its sub-packages.
// By default, nightsky produces no log output. Call SetLogger to enable it.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by nightsky:
//   - [slog.LevelDebug]: per-tick diagnostics (spawn events, batch sizes)
//   - [slog.LevelInfo]: lifecycle events (world regeneration, texture creation)
//   - [slog.LevelWarn]: degraded paths (present skipped, texture update failure)
//
// Example:
//
//	// Enable info-level logging to stderr:
//	nightsky.SetLogger(slog.Default())
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	// The compositor lives downstream of the engine and keeps its own
	// logger to avoid an import cycle; keep the two in sync.
	compose.SetLogger(l)
}

// Logger returns the current logger used by nightsky.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
