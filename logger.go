package iconic

import (
	"log/slog"
	"sync/atomic"
)

func newNopLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

// loggerPtr stores the package logger. Accessed atomically so SetLogger may race with logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by editors created without WithLogger, and by the
// SVG importer they run. By default iconic produces no log output. Pass nil to restore that.
//
// Log levels used:
//   - [slog.LevelDebug]: import details (skipped elements, path candidates, render timings)
//   - [slog.LevelWarn]: recoverable input problems (unparsable paints)
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current package logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
