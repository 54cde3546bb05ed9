// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gogpuhost

import (
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/gogpu/enginehost/colorsync"
	"github.com/gogpu/enginehost/command"
)

var (
	barColor     = gg.RGBA{R: 0.16, G: 0.18, B: 0.22, A: 1}
	barTextColor = gg.RGBA{R: 0.92, G: 0.92, B: 0.92, A: 1}
	menuColor    = gg.RGBA{R: 0.97, G: 0.97, B: 0.97, A: 1}
	menuText     = gg.RGBA{R: 0.1, G: 0.1, B: 0.1, A: 1}
	hintText     = gg.RGBA{R: 0.45, G: 0.45, B: 0.45, A: 1}
	shade        = gg.RGBA{R: 0, G: 0, B: 0, A: 0.35}
	outline      = gg.RGBA{R: 0.2, G: 0.4, B: 0.9, A: 1}
	alertText    = gg.RGBA{R: 1, G: 0.6, B: 0.25, A: 1}
)

// ChromeState is what the chrome needs to draw one frame.
type ChromeState struct {
	Menus   *command.MenuState
	Dialog  command.ColorDialog
	Current colorsync.UIColor
	Status  Status
}

func rect(dc *gg.Context, r image.Rectangle) {
	dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
}

// Paint draws the menu bar, any open menu and the colour dialog over a
// transparent background. face may be nil, in which case labels are
// skipped.
func Paint(dc *gg.Context, l Layout, st ChromeState, face text.Face) {
	dc.Clear()

	dc.SetColor(barColor)
	dc.DrawRectangle(0, 0, float64(l.Viewport.Width), float64(l.Inset.Top))
	_ = dc.Fill()

	if face != nil {
		dc.SetFont(face)
		dc.SetColor(barTextColor)
		for _, id := range command.Menus {
			r := l.TitleRect(id)
			dc.DrawStringAnchored(id.String(), float64(r.Min.X+r.Max.X)/2, float64(r.Min.Y+r.Max.Y)/2, 0.5, 0.5)
		}
		if st.Status.Text != "" {
			if st.Status.Alert {
				dc.SetColor(alertText)
			}
			dc.DrawStringAnchored(st.Status.Text, float64(l.Viewport.Width)-12, float64(l.Inset.Top)/2, 1, 0.5)
		}
	}

	if st.Menus != nil {
		if id, open := st.Menus.OpenMenu(); open {
			paintMenu(dc, l, id, st.Menus, face)
		}
	}
	if st.Dialog.Open {
		paintDialog(dc, l, st.Current, face)
	}
}

func paintMenu(dc *gg.Context, l Layout, id command.MenuID, menus *command.MenuState, face text.Face) {
	anchor := menus.Anchor(id)
	for i, it := range command.Items(id) {
		r := l.ItemRect(anchor, i)
		dc.SetColor(menuColor)
		rect(dc, r)
		_ = dc.Fill()
		if face == nil {
			continue
		}
		cy := float64(r.Min.Y+r.Max.Y) / 2
		dc.SetColor(menuText)
		dc.DrawStringAnchored(it.Label, float64(r.Min.X)+12, cy, 0, 0.5)
		dc.SetColor(hintText)
		dc.DrawStringAnchored(it.Shortcut, float64(r.Max.X)-12, cy, 1, 0.5)
	}
}

func paintDialog(dc *gg.Context, l Layout, current colorsync.UIColor, face text.Face) {
	dc.SetColor(shade)
	dc.DrawRectangle(0, 0, float64(l.Viewport.Width), float64(l.Viewport.Height))
	_ = dc.Fill()

	d := l.DialogRect()
	dc.SetColor(menuColor)
	dc.DrawRoundedRectangle(float64(d.Min.X), float64(d.Min.Y), float64(d.Dx()), float64(d.Dy()), 8)
	_ = dc.Fill()

	for i, c := range Palette {
		r := l.SwatchRect(i)
		n := c.Normalize()
		dc.SetRGBA(n[0], n[1], n[2], n[3])
		rect(dc, r)
		_ = dc.Fill()
		if c == current {
			dc.SetColor(outline)
			dc.SetLineWidth(2)
			rect(dc, r.Inset(-2))
			_ = dc.Stroke()
		}
	}

	b := l.CancelRect()
	dc.SetColor(hintText)
	dc.SetLineWidth(1)
	rect(dc, b)
	_ = dc.Stroke()
	if face != nil {
		dc.SetFont(face)
		dc.SetColor(menuText)
		dc.DrawStringAnchored("Cancel", float64(b.Min.X+b.Max.X)/2, float64(b.Min.Y+b.Max.Y)/2, 0.5, 0.5)
	}
}
