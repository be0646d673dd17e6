package marathon

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/marathon/resource"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for marathon and its resource package.
// By default, marathon produces no log output.
//
// Pass nil to disable logging. Devices pick up the logger that is current
// when a Renderer is created; use [WithLogger] to give one renderer its own.
//
// Log levels used by marathon:
//   - [slog.LevelDebug]: handler creation, buffer uploads, program builds
//   - [slog.LevelInfo]: renderer lifecycle
//   - [slog.LevelWarn]: skipped draws, invalid resources, missing uniforms
//
// The logger is also installed in the resource package, which has no
// renderer to take a per-renderer logger from. [WithLogger] does not reach
// it.
//
// Example:
//
//	marathon.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	resource.SetLogger(l)
}

// Logger returns the current logger used by marathon.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by devices that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

func propagateLogger(dev any, l *slog.Logger) {
	if ls, ok := dev.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}
