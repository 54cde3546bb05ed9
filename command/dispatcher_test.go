// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"testing"

	"github.com/gogpu/enginehost/capability"
	"github.com/gogpu/enginehost/colorsync"
	"github.com/gogpu/enginehost/engine"
	"github.com/gogpu/enginehost/ingest"
	"github.com/gogpu/enginehost/surface"
)

type fakeGate struct {
	calls []string
}

func (g *fakeGate) Invoke(name string, args ...any) capability.Result {
	g.calls = append(g.calls, name)
	return capability.Result{Name: name, Outcome: capability.OK}
}

func (g *fakeGate) count(name string) int {
	n := 0
	for _, c := range g.calls {
		if c == name {
			n++
		}
	}
	return n
}

type fakeSubmitter struct {
	files []ingest.File
}

func (s *fakeSubmitter) Submit(_ context.Context, f ingest.File) uint64 {
	s.files = append(s.files, f)
	return uint64(len(s.files))
}

type fakeColor struct {
	current colorsync.UIColor
	sent    []colorsync.UIColor
}

func (c *fakeColor) OnColorChanged(col colorsync.UIColor) capability.Result {
	c.current = col
	c.sent = append(c.sent, col)
	return capability.Result{Outcome: capability.OK}
}

func (c *fakeColor) Current() colorsync.UIColor { return c.current }

func newTestDispatcher(opts ...Option) (*Dispatcher, *fakeGate, *fakeSubmitter, *fakeColor) {
	g := &fakeGate{}
	s := &fakeSubmitter{}
	c := &fakeColor{current: colorsync.DefaultColor}
	return NewDispatcher(g, s, c, opts...), g, s, c
}

func TestMenuStateOneOpen(t *testing.T) {
	var m MenuState
	if _, ok := m.OpenMenu(); ok {
		t.Fatal("zero MenuState has an open menu")
	}

	m.Open(FileMenu, surface.Point{X: 8, Y: 48})
	m.Open(DrawMenu, surface.Point{X: 80, Y: 48})
	if m.IsOpen(FileMenu) || !m.IsOpen(DrawMenu) {
		t.Error("opening Draw did not close File")
	}
	if id, ok := m.OpenMenu(); !ok || id != DrawMenu {
		t.Errorf("OpenMenu() = %v, %v", id, ok)
	}
	if m.Anchor(DrawMenu) != (surface.Point{X: 80, Y: 48}) {
		t.Errorf("Anchor() = %v", m.Anchor(DrawMenu))
	}

	if !m.Close(DrawMenu) {
		t.Error("Close() of open menu reported false")
	}
	if m.Close(DrawMenu) {
		t.Error("Close() of closed menu reported true")
	}

	m.Toggle(FileMenu, surface.Point{})
	m.Toggle(FileMenu, surface.Point{})
	if m.IsOpen(FileMenu) {
		t.Error("Toggle twice left menu open")
	}

	m.Open(MenuID(9), surface.Point{})
	if _, ok := m.OpenMenu(); ok {
		t.Error("invalid menu opened")
	}
}

func TestToggleWireframeNotDeduplicated(t *testing.T) {
	d, g, _, _ := newTestDispatcher()
	const n = 7
	for i := range n {
		if i%2 == 0 {
			d.Menus().Open(DrawMenu, surface.Point{})
		}
		d.ToggleWireframe()
		if d.Menus().IsOpen(DrawMenu) {
			t.Fatal("ToggleWireframe left the Draw menu open")
		}
	}
	if got := g.count(engine.ToggleWireframe); got != n {
		t.Errorf("toggle_wireframe calls = %d, want %d", got, n)
	}
}

func TestOpenFile(t *testing.T) {
	d, _, s, _ := newTestDispatcher(WithFilePicker(NewPathPicker("/models/a.obj")))
	d.Menus().Open(FileMenu, surface.Point{})

	d.OpenFile(context.Background())
	d.OpenFile(context.Background())

	if d.Menus().IsOpen(FileMenu) {
		t.Error("File menu still open")
	}
	if len(s.files) != 2 {
		t.Fatalf("submissions = %d, want 2", len(s.files))
	}
	if s.files[0] == nil || s.files[0].Name() != "a.obj" {
		t.Errorf("first submission = %v", s.files[0])
	}
	if s.files[1] != nil {
		t.Error("exhausted picker should submit nil")
	}
}

func TestOpenFilePickerError(t *testing.T) {
	picker := FilePickerFunc(func(context.Context) (ingest.File, error) {
		return nil, errors.New("dialog crashed")
	})
	d, _, s, _ := newTestDispatcher(WithFilePicker(picker))
	d.OpenFile(context.Background())
	if len(s.files) != 1 || s.files[0] != nil {
		t.Errorf("submissions = %v, want one nil", s.files)
	}
}

func TestOpenFileWithoutPicker(t *testing.T) {
	d, _, s, _ := newTestDispatcher()
	d.OpenFile(context.Background())
	if len(s.files) != 1 || s.files[0] != nil {
		t.Errorf("submissions = %v", s.files)
	}
}

func TestColorDialog(t *testing.T) {
	d, _, _, c := newTestDispatcher()

	if d.ColorChanged(colorsync.UIColor{R: 1, A: 1}) {
		t.Error("change forwarded while dialog closed")
	}

	d.Menus().Open(DrawMenu, surface.Point{})
	d.OpenColorPicker()
	if d.Menus().IsOpen(DrawMenu) || !d.Dialog().Open {
		t.Fatal("OpenColorPicker did not close menu and open dialog")
	}

	preview := []colorsync.UIColor{{R: 10, A: 1}, {R: 20, A: 1}, {R: 30, A: 1}}
	for _, col := range preview {
		d.ColorChanged(col)
	}
	d.OpenColorPicker() // keeps Initial
	if d.Dialog().Initial != colorsync.DefaultColor {
		t.Errorf("Initial = %v", d.Dialog().Initial)
	}

	d.ConfirmColor(colorsync.UIColor{R: 40, A: 1})
	if d.Dialog().Open {
		t.Error("dialog open after confirm")
	}
	if c.current != (colorsync.UIColor{R: 40, A: 1}) || len(c.sent) != 4 {
		t.Errorf("current = %v, sent = %d", c.current, len(c.sent))
	}
}

func TestCancelColorRestores(t *testing.T) {
	d, _, _, c := newTestDispatcher()
	d.OpenColorPicker()
	d.ColorChanged(colorsync.UIColor{R: 255, A: 1})
	d.CancelColor()

	if c.current != colorsync.DefaultColor {
		t.Errorf("current = %v, want restored default", c.current)
	}
	if d.Dialog().Open {
		t.Error("dialog open after cancel")
	}
	n := len(c.sent)
	d.CancelColor()
	if len(c.sent) != n {
		t.Error("second cancel sent a colour")
	}
}

func TestEscape(t *testing.T) {
	d, _, _, c := newTestDispatcher()
	d.Menus().Open(FileMenu, surface.Point{})
	d.Escape()
	if _, ok := d.Menus().OpenMenu(); ok {
		t.Error("Escape left a menu open")
	}

	d.OpenColorPicker()
	d.ColorChanged(colorsync.UIColor{G: 9, A: 1})
	d.Escape()
	if d.Dialog().Open || c.current != colorsync.DefaultColor {
		t.Error("Escape did not cancel the colour dialog")
	}
}

func TestRunAndParse(t *testing.T) {
	d, g, _, _ := newTestDispatcher()
	for _, name := range []string{"toggle_wireframe", "open_color_picker", "open_file"} {
		a, err := ParseAction(name)
		if err != nil {
			t.Fatalf("ParseAction(%q) error = %v", name, err)
		}
		if err := d.Run(context.Background(), a); err != nil {
			t.Errorf("Run(%v) error = %v", a, err)
		}
	}
	if g.count(engine.ToggleWireframe) != 1 || !d.Dialog().Open {
		t.Error("Run did not dispatch")
	}
	if _, err := ParseAction("explode"); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("ParseAction(explode) error = %v", err)
	}
	if err := d.Run(context.Background(), Action(99)); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("Run(99) error = %v", err)
	}
}

func TestItems(t *testing.T) {
	for _, id := range Menus {
		list := Items(id)
		if len(list) == 0 {
			t.Errorf("Items(%v) empty", id)
		}
		for _, it := range list {
			if got, ok := MenuOf(it.Action); !ok || got != id {
				t.Errorf("MenuOf(%v) = %v, want %v", it.Action, got, id)
			}
		}
	}
	list := Items(FileMenu)
	list[0].Label = "mutated"
	if Items(FileMenu)[0].Label == "mutated" {
		t.Error("Items returned shared slice")
	}
}
