// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/enginehost/internal/hostlog"
)

// Manager owns the surface's size and viewport binding.
//
// Bind is called once at mount and again on every host viewport resize.
// Listeners are notified only when the surface dimensions change.
//
// Manager is NOT safe for concurrent use; it lives on the loop goroutine.
type Manager struct {
	inset  Inset
	target Target
	lock   ScrollLock
	logger *slog.Logger

	desc   Descriptor
	bound  bool
	active bool

	listeners []func(Descriptor)
}

// Option configures a Manager.
type Option func(*Manager)

// WithInset sets the border inset. Defaults to DefaultInset.
func WithInset(in Inset) Option {
	return func(m *Manager) {
		m.inset = in
	}
}

// WithScrollLock sets the host scroll suppression hook.
func WithScrollLock(l ScrollLock) Option {
	return func(m *Manager) {
		m.lock = l
	}
}

// WithLogger sets the logger. Defaults to the shared host logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// NewManager creates a manager for target. target may be nil when the host
// has no drawing context (the descriptor then carries only geometry).
func NewManager(target Target, opts ...Option) *Manager {
	m := &Manager{
		inset:  DefaultInset,
		target: target,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = hostlog.Or(m.logger)
	m.desc.Target = target
	return m
}

// Bind computes the surface size from vp and applies it.
//
// The recorded dimensions always reflect vp minus the inset, even when the
// target rejects the resize; in that case the error wraps ErrResizeFailed.
func (m *Manager) Bind(vp Viewport) (Descriptor, error) {
	w, h := compute(vp, m.inset)
	changed := !m.bound || w != m.desc.Width || h != m.desc.Height

	m.desc.Width = w
	m.desc.Height = h
	m.desc.Offset = Point{X: float64(m.inset.Left), Y: float64(m.inset.Top)}
	m.bound = true

	if !changed {
		return m.desc, nil
	}

	var err error
	if m.target != nil {
		if rerr := m.target.Resize(w, h); rerr != nil {
			err = fmt.Errorf("%w: %dx%d: %w", ErrResizeFailed, w, h, rerr)
			m.logger.Warn("surface: resize failed", "width", w, "height", h, "error", rerr)
		}
	}
	m.logger.Debug("surface: bound", "viewport_width", vp.Width, "viewport_height", vp.Height,
		"width", w, "height", h)

	for _, fn := range m.listeners {
		fn(m.desc)
	}
	return m.desc, err
}

// Descriptor returns the current descriptor and whether Bind has run.
func (m *Manager) Descriptor() (Descriptor, bool) {
	return m.desc, m.bound
}

// Inset returns the configured inset.
func (m *Manager) Inset() Inset {
	return m.inset
}

// OnChange registers fn to be called after every dimension change.
func (m *Manager) OnChange(fn func(Descriptor)) {
	if fn != nil {
		m.listeners = append(m.listeners, fn)
	}
}

// Activate suppresses host scrolling. It is idempotent.
func (m *Manager) Activate() {
	if m.active {
		return
	}
	m.active = true
	if m.lock != nil {
		m.lock.Lock()
	}
}

// Deactivate releases host scrolling. It is idempotent.
func (m *Manager) Deactivate() {
	if !m.active {
		return
	}
	m.active = false
	if m.lock != nil {
		m.lock.Unlock()
	}
}

// Suppressing reports whether host scroll events should be swallowed.
func (m *Manager) Suppressing() bool {
	return m.active
}
