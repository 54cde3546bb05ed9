// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gogpu/enginehost/capability"
	"github.com/gogpu/enginehost/colorsync"
	"github.com/gogpu/enginehost/engine"
	"github.com/gogpu/enginehost/ingest"
	"github.com/gogpu/enginehost/internal/hostlog"
)

// ErrUnknownAction is returned for an action the dispatcher does not know.
var ErrUnknownAction = errors.New("command: unknown action")

// Invoker is the part of capability.Gate that Dispatcher needs.
type Invoker interface {
	Invoke(name string, args ...any) capability.Result
}

// Submitter accepts a selected file. *ingest.Pipeline satisfies it.
type Submitter interface {
	Submit(ctx context.Context, f ingest.File) uint64
}

// ColorSink receives colour changes. *colorsync.Sync satisfies it.
type ColorSink interface {
	OnColorChanged(c colorsync.UIColor) capability.Result
	Current() colorsync.UIColor
}

// ColorDialog is the modal colour dialog's state.
type ColorDialog struct {
	Open bool
	// Initial is the colour when the dialog opened; CancelColor restores it.
	Initial colorsync.UIColor
}

// Dispatcher runs menu actions.
//
// Each action first closes the menu it came from, then performs a single
// gate call or a single local transition. Wireframe state lives in the
// engine only: the host never reads it back.
type Dispatcher struct {
	menus  MenuState
	dialog ColorDialog

	gate   Invoker
	files  Submitter
	picker FilePicker
	color  ColorSink
	logger *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithFilePicker sets the file-selection surface. Without one, OpenFile is
// always a dismissal.
func WithFilePicker(p FilePicker) Option {
	return func(d *Dispatcher) {
		d.picker = p
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(gate Invoker, files Submitter, color ColorSink, opts ...Option) *Dispatcher {
	d := &Dispatcher{gate: gate, files: files, color: color}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = hostlog.Or(d.logger)
	return d
}

// Menus returns the menu state.
func (d *Dispatcher) Menus() *MenuState {
	return &d.menus
}

// Dialog returns the colour dialog state.
func (d *Dispatcher) Dialog() ColorDialog {
	return d.dialog
}

// Run performs action a.
func (d *Dispatcher) Run(ctx context.Context, a Action) error {
	switch a {
	case OpenFile:
		d.OpenFile(ctx)
	case ToggleWireframe:
		d.ToggleWireframe()
	case OpenColorPicker:
		d.OpenColorPicker()
	default:
		return ErrUnknownAction
	}
	return nil
}

// OpenFile closes the File menu, asks the picker for a file and submits it.
// A dismissal or picker error submits nil, which the pipeline reports as
// cancelled.
func (d *Dispatcher) OpenFile(ctx context.Context) uint64 {
	d.menus.Close(FileMenu)

	var f ingest.File
	if d.picker != nil {
		var err error
		f, err = d.picker.Pick(ctx)
		if err != nil {
			d.logger.Warn("command: file picker failed", "error", err)
			f = nil
		}
	}
	return d.files.Submit(ctx, f)
}

// ToggleWireframe closes the Draw menu and flips the engine's wireframe
// mode. Every call reaches the gate; nothing is deduplicated.
func (d *Dispatcher) ToggleWireframe() capability.Result {
	d.menus.Close(DrawMenu)
	return d.gate.Invoke(engine.ToggleWireframe)
}

// OpenColorPicker closes the Draw menu and opens the colour dialog.
// Opening an open dialog keeps its original colour.
func (d *Dispatcher) OpenColorPicker() {
	d.menus.Close(DrawMenu)
	if d.dialog.Open {
		return
	}
	d.dialog = ColorDialog{Open: true, Initial: d.color.Current()}
}

// ColorChanged previews c while the dialog is open. It reports whether the
// change was forwarded.
func (d *Dispatcher) ColorChanged(c colorsync.UIColor) bool {
	if !d.dialog.Open {
		return false
	}
	d.color.OnColorChanged(c)
	return true
}

// ConfirmColor applies c and closes the dialog.
func (d *Dispatcher) ConfirmColor(c colorsync.UIColor) {
	if !d.dialog.Open {
		return
	}
	d.color.OnColorChanged(c)
	d.dialog = ColorDialog{}
}

// CancelColor restores the colour the dialog opened with and closes it.
func (d *Dispatcher) CancelColor() {
	if !d.dialog.Open {
		return
	}
	if d.color.Current() != d.dialog.Initial {
		d.color.OnColorChanged(d.dialog.Initial)
	}
	d.dialog = ColorDialog{}
}

// Escape dismisses the top-most transient UI: the colour dialog if open,
// otherwise any open menu.
func (d *Dispatcher) Escape() {
	if d.dialog.Open {
		d.CancelColor()
		return
	}
	d.menus.CloseAll()
}
