package render

import (
	"context"
	"log/slog"
)

// nopHandler is a slog.Handler that discards all records. Enabled returns
// false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// ErrorHandler receives errors the render loop recovers from.
type ErrorHandler interface {
	HandleError(err error)
}

// ErrorHandlerFunc adapts a function to ErrorHandler.
type ErrorHandlerFunc func(err error)

// HandleError calls f(err).
func (f ErrorHandlerFunc) HandleError(err error) { f(err) }

// logErrors is the default ErrorHandler: log and keep going.
type logErrors struct {
	logger *slog.Logger
}

func (l logErrors) HandleError(err error) {
	l.logger.Warn("frame failed", "err", err)
}
