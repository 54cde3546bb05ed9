// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gogpuhost

import (
	"errors"

	"github.com/gogpu/gg"

	"github.com/gogpu/enginehost/surface"
)

// ErrNoCanvas is returned by CanvasTarget.Draw before a canvas is attached.
var ErrNoCanvas = errors.New("gogpuhost: no canvas attached")

// CanvasTarget is a surface.Target whose canvas arrives late.
//
// A gogpu window only hands out its GPU device inside the first draw
// callback, after the host already exists. Until Attach, CanvasTarget
// records the requested size; Attach applies it to the canvas.
type CanvasTarget struct {
	canvas surface.Target
	w, h   int
}

var _ surface.Target = (*CanvasTarget)(nil)

// Attach binds the real canvas (usually a *ggcanvas.Canvas) and resizes it
// to the last requested size.
func (t *CanvasTarget) Attach(c surface.Target) error {
	t.canvas = c
	if t.w > 0 && t.h > 0 {
		return c.Resize(t.w, t.h)
	}
	t.w, t.h = c.Size()
	return nil
}

// Attached reports whether a canvas is bound.
func (t *CanvasTarget) Attached() bool {
	return t.canvas != nil
}

// Size returns the requested size.
func (t *CanvasTarget) Size() (int, int) {
	return t.w, t.h
}

// Resize records the size and applies it to the canvas if attached.
func (t *CanvasTarget) Resize(w, h int) error {
	t.w, t.h = w, h
	if t.canvas == nil {
		return nil
	}
	return t.canvas.Resize(w, h)
}

// Draw draws into the canvas.
func (t *CanvasTarget) Draw(fn func(*gg.Context)) error {
	if t.canvas == nil {
		return ErrNoCanvas
	}
	return t.canvas.Draw(fn)
}
