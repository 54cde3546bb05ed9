// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"
)

// ErrTargetClosed is returned when a closed ContextTarget is used.
var ErrTargetClosed = errors.New("surface: target is closed")

// ContextTarget is an off-screen Target backed by a gg.Context.
// It is the headless counterpart of a window canvas.
//
// Example:
//
//	t := surface.NewContextTarget(1, 1)
//	defer t.Close()
//	m := surface.NewManager(t)
//	m.Bind(surface.Viewport{Width: 1024, Height: 768})
//	// ... engine draws ...
//	t.SavePNG("frame.png")
type ContextTarget struct {
	dc     *gg.Context
	closed bool
}

// NewContextTarget creates a target of the given size. Non-positive
// dimensions are raised to 1.
func NewContextTarget(width, height int) *ContextTarget {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return &ContextTarget{dc: gg.NewContext(width, height)}
}

// Size returns the target dimensions.
func (t *ContextTarget) Size() (int, int) {
	if t.closed {
		return 0, 0
	}
	return t.dc.Width(), t.dc.Height()
}

// Resize reallocates the backing pixmap. Content is cleared.
func (t *ContextTarget) Resize(width, height int) error {
	if t.closed {
		return ErrTargetClosed
	}
	if err := t.dc.Resize(width, height); err != nil {
		return fmt.Errorf("surface: context resize: %w", err)
	}
	return nil
}

// Draw calls fn with the drawing context.
func (t *ContextTarget) Draw(fn func(*gg.Context)) error {
	if t.closed {
		return ErrTargetClosed
	}
	fn(t.dc)
	return nil
}

// Image returns the current pixels.
func (t *ContextTarget) Image() image.Image {
	if t.closed {
		return nil
	}
	return t.dc.Image()
}

// EncodePNG writes the current pixels to w as PNG.
func (t *ContextTarget) EncodePNG(w io.Writer) error {
	if t.closed {
		return ErrTargetClosed
	}
	return t.dc.EncodePNG(w)
}

// SavePNG writes the current pixels to path.
func (t *ContextTarget) SavePNG(path string) error {
	if t.closed {
		return ErrTargetClosed
	}
	return t.dc.SavePNG(path)
}

// Close releases the context. Close is idempotent.
func (t *ContextTarget) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	return t.dc.Close()
}
