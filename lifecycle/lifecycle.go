// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/gogpu/enginehost/capability"
	"github.com/gogpu/enginehost/engine"
	"github.com/gogpu/enginehost/internal/hostlog"
	"github.com/gogpu/enginehost/surface"
)

// Common errors.
var (
	// ErrLoadFailed wraps the cause of a failed engine load.
	ErrLoadFailed = errors.New("lifecycle: engine load failed")

	// ErrNilLoader is returned by Initialize when no loader was configured.
	ErrNilLoader = errors.New("lifecycle: nil loader")

	// ErrLoopClosed is the failure cause when the load finishes after the
	// loop has closed and its result cannot be handed back.
	ErrLoopClosed = errors.New("lifecycle: loop closed")
)

// State is the engine acquisition state.
type State uint32

const (
	// Absent means Initialize has not been called.
	Absent State = iota

	// Loading means the engine is being acquired.
	Loading

	// Ready means the engine is published into the gate.
	Ready

	// Failed means acquisition failed. There is no retry.
	Failed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", uint32(s))
	}
}

// Poster hands work to the loop goroutine. *loop.Loop satisfies it.
type Poster interface {
	Post(fn func()) bool
}

// Manager acquires the engine once, publishes it and starts rendering.
//
// Initialize may be called from any goroutine. Everything else runs on the
// loop goroutine; State, Ready, Done, Err and SessionID are safe anywhere.
type Manager struct {
	gate    *capability.Gate
	surface *surface.Manager
	post    Poster
	loader  engine.Loader
	logger  *slog.Logger
	session uuid.UUID

	initialized atomic.Bool
	state       atomic.Uint32
	err         error
	ready       chan struct{}
	done        chan struct{}
	settle      sync.Once

	started   bool
	onStarted []func()
	onStatus  []func(State, error)
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithSessionID overrides the generated session id.
func WithSessionID(id uuid.UUID) Option {
	return func(m *Manager) {
		m.session = id
	}
}

// New creates a manager. The start of rendering is tied to sm: if the
// engine becomes ready before the first Bind, the start waits for it.
func New(gate *capability.Gate, sm *surface.Manager, post Poster, loader engine.Loader, opts ...Option) *Manager {
	m := &Manager{
		gate:    gate,
		surface: sm,
		post:    post,
		loader:  loader,
		session: uuid.New(),
		ready:   make(chan struct{}),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = hostlog.Or(m.logger).With("session", m.session.String())
	sm.OnChange(func(surface.Descriptor) { m.tryStart() })
	return m
}

// Initialize starts acquiring the engine on a new goroutine and returns
// immediately. The result is applied on the loop goroutine.
//
// Initialize is single-shot: calling it a second time panics.
func (m *Manager) Initialize(ctx context.Context) error {
	if !m.initialized.CompareAndSwap(false, true) {
		panic("lifecycle: Initialize called more than once")
	}
	if m.loader == nil {
		m.fail(ErrNilLoader)
		return ErrNilLoader
	}
	m.setState(Loading, nil)
	m.logger.Info("lifecycle: loading engine")

	go func() {
		mod, err := m.loader.Load(ctx)
		if !m.post.Post(func() { m.complete(mod, err) }) {
			m.logger.Warn("lifecycle: load finished after loop closed", "error", err)
			m.fail(ErrLoopClosed)
		}
	}()
	return nil
}

func (m *Manager) complete(mod engine.Module, err error) {
	if err == nil && mod == nil {
		err = capability.ErrNilModule
	}
	if err != nil {
		m.fail(err)
		return
	}
	desc, err := m.gate.Publish(mod)
	if err != nil {
		m.fail(err)
		return
	}

	m.settle.Do(func() {
		m.setState(Ready, nil)
		close(m.ready)
		close(m.done)
	})
	m.logger.Info("lifecycle: engine ready", "available", desc.Available())
	m.tryStart()
}

func (m *Manager) fail(cause error) {
	m.settle.Do(func() {
		m.err = fmt.Errorf("%w: %w", ErrLoadFailed, cause)
		m.setState(Failed, m.err)
		close(m.done)
	})
	m.logger.Error("lifecycle: engine unavailable for this session", "error", cause)
}

// tryStart invokes the entry call once both the engine and a surface exist.
func (m *Manager) tryStart() {
	if m.started || m.State() != Ready {
		return
	}
	d, ok := m.surface.Descriptor()
	if !ok {
		m.logger.Debug("lifecycle: start deferred until surface is bound")
		return
	}
	m.started = true

	entry := engine.StartRendering
	if desc, ok := m.gate.Descriptor(); ok {
		if name, found := desc.FirstOf(engine.StartRendering, engine.Main); found {
			entry = name
		}
	}
	r := m.gate.Invoke(entry, d)
	m.logger.Info("lifecycle: rendering started", "entry", entry, "outcome", r.Outcome.String(),
		"width", d.Width, "height", d.Height)

	for _, fn := range m.onStarted {
		fn()
	}
}

// Frame runs one render tick. It reports whether render_frame was called.
func (m *Manager) Frame() bool {
	if !m.started || !m.gate.Supports(engine.RenderFrame) {
		return false
	}
	return m.gate.Invoke(engine.RenderFrame).OK()
}

// OnStarted registers fn to run after the entry call.
func (m *Manager) OnStarted(fn func()) {
	if fn != nil {
		m.onStarted = append(m.onStarted, fn)
	}
}

// OnStatus registers fn to be called on every state transition. Transitions
// run on the loop goroutine, except the ErrLoopClosed failure, which is
// reported from the loading goroutine once the loop is gone.
func (m *Manager) OnStatus(fn func(State, error)) {
	if fn != nil {
		m.onStatus = append(m.onStatus, fn)
	}
}

func (m *Manager) setState(s State, err error) {
	m.state.Store(uint32(s))
	for _, fn := range m.onStatus {
		fn(s, err)
	}
}

// State returns the acquisition state.
func (m *Manager) State() State {
	return State(m.state.Load())
}

// Started reports whether the entry call has been made.
func (m *Manager) Started() bool {
	return m.started
}

// Ready is closed when the engine is published.
func (m *Manager) Ready() <-chan struct{} {
	return m.ready
}

// Done is closed when acquisition finishes, successfully or not.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

// Err returns the load failure, or nil. It is meaningful after Done.
func (m *Manager) Err() error {
	select {
	case <-m.done:
		return m.err
	default:
		return nil
	}
}

// Wait blocks until acquisition finishes or ctx is done.
// The loop must be running for Wait to return.
func (m *Manager) Wait(ctx context.Context) error {
	select {
	case <-m.done:
		return m.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SessionID identifies this host session in logs.
func (m *Manager) SessionID() string {
	return m.session.String()
}
