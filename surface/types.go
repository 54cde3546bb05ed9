// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import "image"

// Point is a position in viewport space, in pixels.
type Point struct {
	X, Y float64
}

// Viewport is the host's client area.
type Viewport struct {
	Width, Height int
}

// Inset is the fixed border between the viewport edge and the surface.
// Top usually holds the menu bar.
type Inset struct {
	Top, Right, Bottom, Left int
}

// MenuBarHeight is the height of the host menu bar above the surface.
const MenuBarHeight = 48

// DefaultInset reserves the menu bar and nothing else.
var DefaultInset = Inset{Top: MenuBarHeight}

// Descriptor describes the bound surface.
// Width and Height are always at least 1.
type Descriptor struct {
	Width, Height int

	// Offset is the surface's top-left corner in viewport space.
	Offset Point

	// Target is the drawing context. It may be nil for hosts without one.
	Target Target
}

// Bounds returns the surface rectangle in viewport space.
func (d Descriptor) Bounds() image.Rectangle {
	x, y := int(d.Offset.X), int(d.Offset.Y)
	return image.Rect(x, y, x+d.Width, y+d.Height)
}

// Contains reports whether the viewport point (x, y) lies on the surface.
func (d Descriptor) Contains(x, y float64) bool {
	return x >= d.Offset.X && y >= d.Offset.Y &&
		x < d.Offset.X+float64(d.Width) && y < d.Offset.Y+float64(d.Height)
}

// Local converts a viewport point to surface-local coordinates.
// Points outside the surface are converted the same way, without clamping.
func (d Descriptor) Local(x, y float64) (float64, float64) {
	return x - d.Offset.X, y - d.Offset.Y
}

// compute derives the surface size from a viewport and inset.
func compute(vp Viewport, in Inset) (w, h int) {
	w = vp.Width - in.Left - in.Right
	h = vp.Height - in.Top - in.Bottom
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
