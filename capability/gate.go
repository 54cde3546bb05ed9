// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package capability

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/enginehost/engine"
	"github.com/gogpu/enginehost/internal/hostlog"
)

// Common errors.
var (
	// ErrNilModule is returned by Publish when the module is nil.
	ErrNilModule = errors.New("capability: nil module")

	// ErrAlreadyPublished is returned by Publish when an engine is already bound.
	ErrAlreadyPublished = errors.New("capability: engine already published")

	// ErrEnginePanic wraps a panic recovered from an engine call.
	ErrEnginePanic = errors.New("capability: engine call panicked")
)

// Outcome classifies the result of a gated call.
type Outcome uint8

const (
	// OK means the engine function ran and returned no error.
	OK Outcome = iota

	// NotReady means no engine has been published yet.
	NotReady

	// Unsupported means the engine does not export the entry point.
	Unsupported

	// Failed means the engine function returned an error or panicked.
	Failed
)

// String returns the outcome name used in logs and metric labels.
func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case NotReady:
		return "not_ready"
	case Unsupported:
		return "unsupported"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(o))
	}
}

// Result is what Invoke reports back. It is never accompanied by a panic.
type Result struct {
	Name    string
	Outcome Outcome
	Value   any
	Err     error
}

// OK reports whether the call reached the engine and succeeded.
func (r Result) OK() bool { return r.Outcome == OK }

// binding is the published engine plus its negotiated descriptor.
// It is immutable once stored.
type binding struct {
	module     engine.Module
	descriptor Descriptor
}

// Gate is the single chokepoint for engine calls.
//
// Before Publish, every Invoke reports NotReady. After Publish, names the
// engine does not export report Unsupported. Neither case is an error for
// the caller; both are logged at debug level and counted.
//
// Thread safety: Gate is safe for concurrent use. The binding is stored
// atomically and never replaced.
type Gate struct {
	bound  atomic.Pointer[binding]
	want   []string
	logger *slog.Logger
	calls  *prometheus.CounterVec
}

// Option configures a Gate.
type Option func(*Gate)

// WithLogger sets the diagnostics logger. Defaults to the shared host logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gate) {
		g.logger = l
	}
}

// WithRegisterer registers the gate's call counter with reg.
// Without it the counter is kept but not exported.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(g *Gate) {
		g.calls = registerCalls(reg, g.calls)
	}
}

// WithEntryPoints overrides the names looked up at publish time.
// Defaults to engine.KnownEntryPoints.
func WithEntryPoints(names ...string) Option {
	return func(g *Gate) {
		g.want = append([]string(nil), names...)
	}
}

// NewGate creates a gate with no engine bound.
func NewGate(opts ...Option) *Gate {
	g := &Gate{
		want:  engine.KnownEntryPoints,
		calls: newCallsVec(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = hostlog.Or(g.logger)
	return g
}

// Publish binds m and negotiates its capability descriptor.
// It may succeed only once per Gate.
func (g *Gate) Publish(m engine.Module) (Descriptor, error) {
	if m == nil {
		return Descriptor{}, ErrNilModule
	}
	b := &binding{module: m, descriptor: Negotiate(m, g.want)}
	if !g.bound.CompareAndSwap(nil, b) {
		return Descriptor{}, ErrAlreadyPublished
	}
	g.logger.Info("capability: engine published",
		"available", b.descriptor.Available(),
		"missing", b.descriptor.Missing())
	return b.descriptor, nil
}

// Ready reports whether an engine has been published.
func (g *Gate) Ready() bool {
	return g.bound.Load() != nil
}

// Descriptor returns the negotiated descriptor, or false before Publish.
func (g *Gate) Descriptor() (Descriptor, bool) {
	b := g.bound.Load()
	if b == nil {
		return Descriptor{}, false
	}
	return b.descriptor, true
}

// Supports reports whether the bound engine exports name.
// It is false before Publish.
func (g *Gate) Supports(name string) bool {
	b := g.bound.Load()
	return b != nil && b.descriptor.Has(name)
}

// Invoke calls the entry point name with args.
func (g *Gate) Invoke(name string, args ...any) Result {
	r := g.invoke(name, args)
	g.calls.WithLabelValues(name, r.Outcome.String()).Inc()

	switch r.Outcome {
	case NotReady:
		g.logger.Debug("capability: engine not ready", "capability", name)
	case Unsupported:
		g.logger.Debug("capability: unsupported", "capability", name)
	case Failed:
		g.logger.Warn("capability: engine call failed", "capability", name, "error", r.Err)
	}
	return r
}

func (g *Gate) invoke(name string, args []any) (r Result) {
	r.Name = name
	b := g.bound.Load()
	if b == nil {
		r.Outcome = NotReady
		return r
	}
	fn, ok := b.descriptor.lookup(name)
	if !ok {
		r.Outcome = Unsupported
		return r
	}

	defer func() {
		if p := recover(); p != nil {
			r.Outcome = Failed
			r.Value = nil
			r.Err = fmt.Errorf("%w: %s: %v", ErrEnginePanic, name, p)
		}
	}()

	v, err := fn(args...)
	if err != nil {
		r.Outcome = Failed
		r.Err = err
		return r
	}
	r.Outcome = OK
	r.Value = v
	return r
}

// Collector exposes the gate's call counter for registration elsewhere.
func (g *Gate) Collector() prometheus.Collector {
	return g.calls
}
