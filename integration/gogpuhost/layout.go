// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gogpuhost

import (
	"image"

	"github.com/gogpu/enginehost/colorsync"
	"github.com/gogpu/enginehost/command"
	"github.com/gogpu/enginehost/surface"
)

// Chrome metrics in logical pixels.
const (
	titleWidth  = 64
	titleGap    = 8
	itemHeight  = 28
	menuWidth   = 200
	swatchSize  = 32
	swatchGap   = 8
	buttonWidth = 80
	buttonH     = 24
)

// Palette is the set of colours offered by the colour dialog.
var Palette = []colorsync.UIColor{
	colorsync.DefaultColor,
	colorsync.FromHSV(0, 0.65, 0.9),
	colorsync.FromHSV(40, 0.65, 0.9),
	colorsync.FromHSV(80, 0.65, 0.9),
	colorsync.FromHSV(160, 0.65, 0.9),
	colorsync.FromHSV(210, 0.65, 0.9),
	colorsync.FromHSV(270, 0.65, 0.9),
	colorsync.FromHSV(320, 0.65, 0.9),
}

// Layout places the menu bar, drop-down menus and colour dialog in
// viewport space.
type Layout struct {
	Inset    surface.Inset
	Viewport surface.Viewport
}

func pt(x, y float64) image.Point { return image.Pt(int(x), int(y)) }

// InBar reports whether (x, y) lies on the menu bar.
func (l Layout) InBar(x, y float64) bool {
	return y >= 0 && y < float64(l.Inset.Top)
}

// TitleRect returns the bar area of menu id.
func (l Layout) TitleRect(id command.MenuID) image.Rectangle {
	x := titleGap + int(id)*(titleWidth+titleGap)
	return image.Rect(x, 0, x+titleWidth, l.Inset.Top)
}

// TitleAt returns the menu whose title is under (x, y).
func (l Layout) TitleAt(x, y float64) (command.MenuID, bool) {
	p := pt(x, y)
	for _, id := range command.Menus {
		if p.In(l.TitleRect(id)) {
			return id, true
		}
	}
	return 0, false
}

// Anchor returns where menu id drops down from.
func (l Layout) Anchor(id command.MenuID) surface.Point {
	r := l.TitleRect(id)
	return surface.Point{X: float64(r.Min.X), Y: float64(r.Max.Y)}
}

// ItemRect returns the i-th entry of a menu opened at anchor.
func (l Layout) ItemRect(anchor surface.Point, i int) image.Rectangle {
	x, y := int(anchor.X), int(anchor.Y)+i*itemHeight
	return image.Rect(x, y, x+menuWidth, y+itemHeight)
}

// ItemAt returns the entry of menu id (opened at anchor) under (x, y).
func (l Layout) ItemAt(id command.MenuID, anchor surface.Point, x, y float64) (command.Item, bool) {
	p := pt(x, y)
	for i, it := range command.Items(id) {
		if p.In(l.ItemRect(anchor, i)) {
			return it, true
		}
	}
	return command.Item{}, false
}

// DialogRect returns the colour dialog, centred in the viewport.
func (l Layout) DialogRect() image.Rectangle {
	w := len(Palette)*(swatchSize+swatchGap) + swatchGap
	h := swatchGap + swatchSize + swatchGap + buttonH + swatchGap
	x := (l.Viewport.Width - w) / 2
	y := (l.Viewport.Height - h) / 2
	return image.Rect(x, y, x+w, y+h)
}

// SwatchRect returns the i-th palette swatch.
func (l Layout) SwatchRect(i int) image.Rectangle {
	d := l.DialogRect()
	x := d.Min.X + swatchGap + i*(swatchSize+swatchGap)
	y := d.Min.Y + swatchGap
	return image.Rect(x, y, x+swatchSize, y+swatchSize)
}

// SwatchAt returns the index of the swatch under (x, y).
func (l Layout) SwatchAt(x, y float64) (int, bool) {
	p := pt(x, y)
	for i := range Palette {
		if p.In(l.SwatchRect(i)) {
			return i, true
		}
	}
	return 0, false
}

// CancelRect returns the dialog's cancel button.
func (l Layout) CancelRect() image.Rectangle {
	d := l.DialogRect()
	x := d.Max.X - swatchGap - buttonWidth
	y := d.Max.Y - swatchGap - buttonH
	return image.Rect(x, y, x+buttonWidth, y+buttonH)
}
