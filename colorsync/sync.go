// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package colorsync

import (
	"log/slog"

	"github.com/gogpu/enginehost/capability"
	"github.com/gogpu/enginehost/engine"
	"github.com/gogpu/enginehost/internal/hostlog"
)

// Invoker is the part of capability.Gate that Sync needs.
type Invoker interface {
	Invoke(name string, args ...any) capability.Result
}

// Sync keeps the UI colour and the engine's model colour in lockstep.
//
// Every change is stored first and then sent, so Current always equals the
// last value handed to the engine once that call succeeds. Sync is used
// from the loop goroutine only.
type Sync struct {
	gate    Invoker
	logger  *slog.Logger
	current UIColor
	sent    bool
}

// Option configures a Sync.
type Option func(*Sync)

// WithInitial sets the starting colour. Defaults to DefaultColor.
func WithInitial(c UIColor) Option {
	return func(s *Sync) {
		s.current = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sync) {
		s.logger = l
	}
}

// New creates a Sync that sends through gate.
func New(gate Invoker, opts ...Option) *Sync {
	s := &Sync{gate: gate, current: DefaultColor}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = hostlog.Or(s.logger)
	return s
}

// OnColorChanged stores c and sends its normalised form to the engine.
// It is called for every interactive change, not only on confirmation.
func (s *Sync) OnColorChanged(c UIColor) capability.Result {
	s.current = c
	return s.send()
}

// Resync re-sends the stored colour, e.g. after the engine starts or the
// surface is reloaded and the engine fell back to its own default.
func (s *Sync) Resync() capability.Result {
	return s.send()
}

// Current returns the stored UI colour.
func (s *Sync) Current() UIColor {
	return s.current
}

// InSync reports whether the stored colour has reached the engine.
func (s *Sync) InSync() bool {
	return s.sent
}

func (s *Sync) send() capability.Result {
	r := s.gate.Invoke(engine.SetModelColor, s.current.Normalize())
	s.sent = r.OK()
	if r.OK() {
		s.logger.Debug("colorsync: model color sent", "color", s.current.String())
	}
	return r
}
