// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggengine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/gogpu/enginehost/engine"
	"github.com/gogpu/enginehost/internal/uifont"
	"github.com/gogpu/enginehost/surface"
)

// ErrNotStarted is returned by entry points that need a surface before
// the engine has been started.
var ErrNotStarted = errors.New("ggengine: not started")

// defaultColor is the model colour the engine starts with.
var defaultColor = [4]float64{0.75, 0.75, 0.75, 1}

var (
	background = gg.RGBA{R: 0.11, G: 0.12, B: 0.14, A: 1}
	gridColor  = gg.RGBA{R: 0.2, G: 0.21, B: 0.24, A: 1}
	markColor  = gg.RGBA{R: 1, G: 0.55, B: 0.1, A: 1}
	labelColor = gg.RGBA{R: 0.85, G: 0.85, B: 0.85, A: 1}
)

// gridStep is the spacing of the background grid in pixels.
const gridStep = 32

// Snapshot is the engine's observable state.
type Snapshot struct {
	Started   bool
	Wireframe bool
	Color     [4]float64
	Content   string
	Lines     int
	Clicks    int
	LastClick surface.Point
	Frames    int
}

// Engine is a small reference engine that draws into the host surface
// with gg. It keeps all scene state itself; the host only calls it.
//
// Engine is NOT thread-safe. The host calls it from its loop goroutine.
type Engine struct {
	entry  string
	target surface.Target
	face   text.Face
	state  Snapshot
}

// Option configures an Engine.
type Option func(*Engine)

// WithMainEntry exports the entry call as "main" instead of
// "start_rendering", like older engine builds.
func WithMainEntry() Option {
	return func(e *Engine) {
		e.entry = engine.Main
	}
}

// New creates an engine with the default model colour.
func New(opts ...Option) *Engine {
	e := &Engine{entry: engine.StartRendering}
	e.state.Color = defaultColor
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Exports returns the engine's entry points.
func (e *Engine) Exports() engine.Exports {
	return engine.Exports{
		e.entry:                   e.start,
		engine.HandleMouseClick:   e.click,
		engine.ProcessFileContent: e.content,
		engine.ToggleWireframe:    e.toggleWireframe,
		engine.SetModelColor:      e.setColor,
		engine.RenderFrame:        e.renderFrame,
	}
}

// Loader returns a loader that yields a new engine's exports.
func Loader(opts ...Option) engine.Loader {
	return engine.LoaderFunc(func(ctx context.Context) (engine.Module, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return New(opts...).Exports(), nil
	})
}

// Snapshot returns a copy of the engine state.
func (e *Engine) Snapshot() Snapshot {
	return e.state
}

func (e *Engine) start(args ...any) (any, error) {
	if err := wantArgs(e.entry, args, 1); err != nil {
		return nil, err
	}
	d, err := surfaceArg(e.entry, args, 0)
	if err != nil {
		return nil, err
	}
	e.target = d.Target
	e.state.Started = true
	if face, ferr := uifont.Face(13); ferr == nil {
		e.face = face
	}
	return nil, e.draw()
}

func (e *Engine) click(args ...any) (any, error) {
	if err := wantArgs(engine.HandleMouseClick, args, 2); err != nil {
		return nil, err
	}
	x, err := floatArg(engine.HandleMouseClick, args, 0)
	if err != nil {
		return nil, err
	}
	y, err := floatArg(engine.HandleMouseClick, args, 1)
	if err != nil {
		return nil, err
	}
	e.state.Clicks++
	e.state.LastClick = surface.Point{X: x, Y: y}
	return nil, nil
}

func (e *Engine) content(args ...any) (any, error) {
	if err := wantArgs(engine.ProcessFileContent, args, 1); err != nil {
		return nil, err
	}
	s, err := stringArg(engine.ProcessFileContent, args, 0)
	if err != nil {
		return nil, err
	}
	e.state.Content = s
	e.state.Lines = strings.Count(s, "\n")
	if s != "" && !strings.HasSuffix(s, "\n") {
		e.state.Lines++
	}
	return nil, nil
}

func (e *Engine) toggleWireframe(args ...any) (any, error) {
	e.state.Wireframe = !e.state.Wireframe
	return nil, nil
}

func (e *Engine) setColor(args ...any) (any, error) {
	if err := wantArgs(engine.SetModelColor, args, 1); err != nil {
		return nil, err
	}
	c, err := rgbaArg(engine.SetModelColor, args, 0)
	if err != nil {
		return nil, err
	}
	e.state.Color = c
	return nil, nil
}

func (e *Engine) renderFrame(args ...any) (any, error) {
	if !e.state.Started {
		return nil, ErrNotStarted
	}
	e.state.Frames++
	return nil, e.draw()
}

func (e *Engine) draw() error {
	if e.target == nil {
		return nil
	}
	if err := e.target.Draw(e.paint); err != nil {
		return fmt.Errorf("ggengine: draw: %w", err)
	}
	return nil
}

func (e *Engine) paint(dc *gg.Context) {
	w, h := float64(dc.Width()), float64(dc.Height())
	dc.ClearWithColor(background)

	dc.SetColor(gridColor)
	dc.SetLineWidth(1)
	for x := 0.0; x < w; x += gridStep {
		dc.DrawLine(x, 0, x, h)
	}
	for y := 0.0; y < h; y += gridStep {
		dc.DrawLine(0, y, w, y)
	}
	_ = dc.Stroke()

	// Model placeholder, centred.
	mw, mh := w*0.4, h*0.4
	mx, my := (w-mw)/2, (h-mh)/2
	c := e.state.Color
	dc.SetRGBA(c[0], c[1], c[2], c[3])
	dc.DrawRoundedRectangle(mx, my, mw, mh, 12)
	if e.state.Wireframe {
		dc.SetLineWidth(2)
		_ = dc.Stroke()
		dc.DrawLine(mx, my, mx+mw, my+mh)
		dc.DrawLine(mx+mw, my, mx, my+mh)
		_ = dc.Stroke()
	} else {
		_ = dc.Fill()
	}

	if e.state.Clicks > 0 {
		dc.SetColor(markColor)
		dc.SetLineWidth(2)
		dc.DrawCircle(e.state.LastClick.X, e.state.LastClick.Y, 6)
		_ = dc.Stroke()
	}

	if e.face != nil {
		dc.SetFont(e.face)
		dc.SetColor(labelColor)
		dc.DrawString(fmt.Sprintf("frame %d  lines %d  bytes %d", e.state.Frames, e.state.Lines, len(e.state.Content)), 8, 18)
	}
}
