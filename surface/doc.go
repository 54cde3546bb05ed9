// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface owns the drawing surface that the engine renders into.
//
// The Manager derives the surface size from the host viewport minus a fixed
// border inset and applies it to the bound Target:
//
//	viewport 1024x768, inset {Top: 48}  ->  surface 1024x720 at (0, 48)
//
// Dimensions are always at least 1x1, however small the viewport.
//
// # Targets
//
// A Target is anything that can be sized and drawn with gg:
//
//   - *ggcanvas.Canvas for gogpu windows
//   - *ContextTarget for headless rendering
//
// # Scroll suppression
//
// While the manager is active (Activate), the host's own scroll/overflow is
// suppressed through a ScrollLock so the surface owns the whole viewport.
// Deactivate releases it. Both are idempotent.
package surface
