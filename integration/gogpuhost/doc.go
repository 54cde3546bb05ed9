// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gogpuhost connects an enginehost.Host to a gogpu window through
// the gpucontext event and window contracts.
//
// The adapter routes:
//
//	OnResize       -> Host.Resize
//	OnMousePress   -> menu bar, open menu, colour dialog, or Host.Click
//	OnMouseMove    -> live colour preview while the dialog is open
//	OnScroll       -> swallowed while the surface suppresses host scroll
//	OnKeyPress     -> Ctrl+O open, W wireframe, C colour, Esc dismiss
//
// Chrome (menu bar, menus, colour dialog) is drawn with gg by PaintChrome.
// CanvasTarget lets the host exist before the window's GPU canvas does.
package gogpuhost
