package board

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record and reports itself disabled so callers skip formatting.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures logging for boards and their replay workers.
// Boards are silent until a logger is set; nil restores silence.
//
// Levels used:
//   - [slog.LevelDebug]: every replayed step
//   - [slog.LevelInfo]: replay start and end, surface reallocation
//   - [slog.LevelWarn]: rejected operations
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the logger in use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
