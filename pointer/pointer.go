// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pointer converts viewport pointer positions into surface-local
// coordinates and forwards them to the engine.
package pointer

import (
	"github.com/gogpu/enginehost/capability"
	"github.com/gogpu/enginehost/engine"
	"github.com/gogpu/enginehost/surface"
)

// Invoker is the part of capability.Gate that Forwarder needs.
type Invoker interface {
	Invoke(name string, args ...any) capability.Result
}

// SurfaceSource yields the current surface descriptor.
// *surface.Manager satisfies it.
type SurfaceSource interface {
	Descriptor() (surface.Descriptor, bool)
}

// Forwarder sends surface-local clicks to the engine.
type Forwarder struct {
	gate    Invoker
	surface SurfaceSource
}

// NewForwarder creates a forwarder.
func NewForwarder(gate Invoker, src SurfaceSource) *Forwarder {
	return &Forwarder{gate: gate, surface: src}
}

// Forward subtracts the surface offset from the viewport point (x, y) and
// calls handle_mouse_click with the result. Points outside the surface are
// forwarded without clamping; bounds are the engine's concern.
// Before the first bind the offset is zero.
func (f *Forwarder) Forward(x, y float64) capability.Result {
	d, _ := f.surface.Descriptor()
	lx, ly := d.Local(x, y)
	return f.gate.Invoke(engine.HandleMouseClick, lx, ly)
}
