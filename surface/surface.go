// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"

	"github.com/gogpu/gg"
)

// Common errors.
var (
	// ErrResizeFailed is returned by Bind when the target rejects new dimensions.
	ErrResizeFailed = errors.New("surface: target resize failed")
)

// Target is the drawing context bound to the surface.
//
// The engine renders into a Target; the Manager resizes it whenever the
// host viewport changes. *ggcanvas.Canvas satisfies Target for windowed
// hosts and ContextTarget for headless ones.
//
// Targets are NOT thread-safe. They are used from the loop goroutine only.
type Target interface {
	// Size returns the current target dimensions in pixels.
	Size() (width, height int)

	// Resize changes the target dimensions. Content may be discarded.
	Resize(width, height int) error

	// Draw calls fn with the target's drawing context.
	Draw(fn func(*gg.Context)) error
}

// ScrollLock suppresses the host's own scroll and overflow behaviour so the
// surface occupies the viewport without competing scrollbars.
type ScrollLock interface {
	Lock()
	Unlock()
}

// ScrollLockFunc adapts a pair of functions to ScrollLock.
type ScrollLockFunc struct {
	OnLock   func()
	OnUnlock func()
}

// Lock calls OnLock if set.
func (f ScrollLockFunc) Lock() {
	if f.OnLock != nil {
		f.OnLock()
	}
}

// Unlock calls OnUnlock if set.
func (f ScrollLockFunc) Unlock() {
	if f.OnUnlock != nil {
		f.OnUnlock()
	}
}
