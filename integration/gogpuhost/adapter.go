// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gogpuhost

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/enginehost"
	"github.com/gogpu/enginehost/internal/hostlog"
	"github.com/gogpu/enginehost/internal/uifont"
	"github.com/gogpu/enginehost/surface"
)

// Adapter routes window events into a Host.
//
// Event callbacks may arrive on the window thread; every handler posts its
// work to the host loop, so the host state is only touched where the loop
// is drained (the draw callback).
type Adapter struct {
	host   *enginehost.Host
	window gpucontext.WindowProvider
	ctx    context.Context
	logger *slog.Logger

	layout  Layout
	hovered int

	droppedScrolls int

	// status is also written from the lifecycle's loading goroutine when
	// the loop closes under it.
	status atomic.Pointer[Status]
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithContext sets the context passed to file actions.
func WithContext(ctx context.Context) Option {
	return func(a *Adapter) {
		a.ctx = ctx
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) {
		a.logger = l
	}
}

// Attach subscribes to src and returns the adapter. win may be nil.
func Attach(h *enginehost.Host, src gpucontext.EventSource, win gpucontext.WindowProvider, opts ...Option) *Adapter {
	a := &Adapter{
		host:    h,
		window:  win,
		ctx:     context.Background(),
		hovered: -1,
		layout:  Layout{Inset: h.Surface().Inset()},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = hostlog.Or(a.logger)
	if win != nil {
		w, ht := win.Size()
		a.layout.Viewport = surface.Viewport{Width: w, Height: ht}
	}

	h.Lifecycle().OnStatus(a.engineStatus)
	h.Files().OnStatus(a.fileStatus)

	src.OnResize(func(w, h int) {
		a.post(func() { a.resize(w, h) })
	})
	src.OnMousePress(func(b gpucontext.MouseButton, x, y float64) {
		if b != gpucontext.MouseButtonLeft {
			return
		}
		a.post(func() { a.press(x, y) })
	})
	src.OnMouseMove(func(x, y float64) {
		a.post(func() { a.move(x, y) })
	})
	src.OnScroll(func(dx, dy float64) {
		a.post(func() { a.scroll(dx, dy) })
	})
	src.OnKeyPress(func(k gpucontext.Key, mods gpucontext.Modifiers) {
		a.post(func() { a.key(k, mods) })
	})
	return a
}

func (a *Adapter) post(fn func()) {
	if !a.host.Post(fn) {
		a.logger.Debug("gogpuhost: event after unmount dropped")
	}
}

// Layout returns the current chrome layout.
func (a *Adapter) Layout() Layout {
	return a.layout
}

// DroppedScrolls returns how many scroll events were swallowed.
func (a *Adapter) DroppedScrolls() int {
	return a.droppedScrolls
}

// Viewport returns the last known window size.
func (a *Adapter) Viewport() surface.Viewport {
	return a.layout.Viewport
}

// Sync adopts the window size seen by a draw callback when no resize event
// reported it. It must run on the loop goroutine and reports whether the
// size changed.
func (a *Adapter) Sync(w, h int) bool {
	if a.layout.Viewport == (surface.Viewport{Width: w, Height: h}) {
		return false
	}
	a.resize(w, h)
	return true
}

func (a *Adapter) resize(w, h int) {
	a.layout.Viewport = surface.Viewport{Width: w, Height: h}
	if _, err := a.host.Resize(a.layout.Viewport); err != nil {
		a.logger.Warn("gogpuhost: resize failed", "error", err)
	}
	a.redraw()
}

func (a *Adapter) press(x, y float64) {
	cmds := a.host.Commands()
	menus := cmds.Menus()
	defer a.redraw()

	if cmds.Dialog().Open {
		if i, ok := a.layout.SwatchAt(x, y); ok {
			cmds.ConfirmColor(Palette[i])
			a.hovered = -1
			return
		}
		p := pt(x, y)
		if p.In(a.layout.CancelRect()) || !p.In(a.layout.DialogRect()) {
			cmds.CancelColor()
			a.hovered = -1
		}
		return
	}

	if a.layout.InBar(x, y) {
		if id, ok := a.layout.TitleAt(x, y); ok {
			menus.Toggle(id, a.layout.Anchor(id))
		} else {
			menus.CloseAll()
		}
		return
	}

	if id, open := menus.OpenMenu(); open {
		if it, ok := a.layout.ItemAt(id, menus.Anchor(id), x, y); ok {
			if err := cmds.Run(a.ctx, it.Action); err != nil {
				a.logger.Warn("gogpuhost: menu action failed", "action", it.Action.String(), "error", err)
			}
			return
		}
		menus.CloseAll()
		return
	}

	if d, ok := a.host.Surface().Descriptor(); ok && d.Contains(x, y) {
		a.host.Click(x, y)
	}
}

// move previews the palette colour under the pointer while the dialog is
// open.
func (a *Adapter) move(x, y float64) {
	cmds := a.host.Commands()
	if !cmds.Dialog().Open {
		return
	}
	i, ok := a.layout.SwatchAt(x, y)
	if !ok || i == a.hovered {
		return
	}
	a.hovered = i
	cmds.ColorChanged(Palette[i])
	a.redraw()
}

func (a *Adapter) scroll(dx, dy float64) {
	if a.host.Surface().Suppressing() {
		a.droppedScrolls++
		a.logger.Debug("gogpuhost: scroll suppressed", "dx", dx, "dy", dy)
	}
}

func (a *Adapter) key(k gpucontext.Key, mods gpucontext.Modifiers) {
	cmds := a.host.Commands()
	switch {
	case k == gpucontext.KeyEscape:
		cmds.Escape()
		a.hovered = -1
	case k == gpucontext.KeyO && mods.HasControl():
		cmds.OpenFile(a.ctx)
	case k == gpucontext.KeyW && !mods.HasControl():
		cmds.ToggleWireframe()
	case k == gpucontext.KeyC && !mods.HasControl():
		cmds.OpenColorPicker()
	default:
		return
	}
	a.redraw()
}

func (a *Adapter) redraw() {
	if a.window != nil {
		a.window.RequestRedraw()
	}
}

// PaintChrome draws the host chrome into dc. It must run on the loop
// goroutine.
func (a *Adapter) PaintChrome(dc *gg.Context) {
	face, _ := uifont.Face(14)
	cmds := a.host.Commands()
	Paint(dc, a.layout, ChromeState{
		Menus:   cmds.Menus(),
		Dialog:  cmds.Dialog(),
		Current: a.host.Color().Current(),
		Status:  a.Status(),
	}, face)
}
