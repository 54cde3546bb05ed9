// Package hostlog holds the process-wide logger shared by enginehost and its
// sub-packages. The root package re-exports SetLogger and Logger; this
// package exists so sub-packages can reach the logger without an import cycle.
package hostlog

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// Nop returns a logger that silently discards all output.
func Nop() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(Nop())
}

// Set stores l as the shared logger. A nil l restores the silent default.
func Set(l *slog.Logger) {
	if l == nil {
		l = Nop()
	}
	loggerPtr.Store(l)
}

// Get returns the shared logger. It never returns nil.
func Get() *slog.Logger {
	return loggerPtr.Load()
}

// sharedHandler forwards each record to the handler of the logger current
// at log time. ops replays With calls made on the forwarding logger.
type sharedHandler struct {
	ops []func(slog.Handler) slog.Handler
}

func (s sharedHandler) handler() slog.Handler {
	h := Get().Handler()
	for _, op := range s.ops {
		h = op(h)
	}
	return h
}

func (s sharedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return s.handler().Enabled(ctx, level)
}

func (s sharedHandler) Handle(ctx context.Context, r slog.Record) error {
	return s.handler().Handle(ctx, r)
}

func (s sharedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return s.with(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (s sharedHandler) WithGroup(name string) slog.Handler {
	return s.with(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (s sharedHandler) with(op func(slog.Handler) slog.Handler) slog.Handler {
	ops := make([]func(slog.Handler) slog.Handler, len(s.ops), len(s.ops)+1)
	copy(ops, s.ops)
	return sharedHandler{ops: append(ops, op)}
}

// Shared returns a logger that always writes through the logger last passed
// to Set, so components built before Set still log to it.
func Shared() *slog.Logger { return slog.New(sharedHandler{}) }

// Or returns l when non-nil, otherwise Shared.
func Or(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return Shared()
}
