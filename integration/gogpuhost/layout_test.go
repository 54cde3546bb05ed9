// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gogpuhost

import (
	"testing"

	"github.com/gogpu/enginehost/command"
	"github.com/gogpu/enginehost/surface"
)

func TestLayoutHitTesting(t *testing.T) {
	l := Layout{Inset: surface.DefaultInset, Viewport: surface.Viewport{Width: 800, Height: 600}}

	tests := []struct {
		name   string
		x, y   float64
		wantID command.MenuID
		wantOK bool
	}{
		{"file title", 10, 20, command.FileMenu, true},
		{"draw title", float64(titleGap + titleWidth + titleGap + 1), 20, command.DrawMenu, true},
		{"bar gap", 500, 20, 0, false},
		{"below bar", 10, 60, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := l.TitleAt(tt.x, tt.y)
			if ok != tt.wantOK || (ok && id != tt.wantID) {
				t.Errorf("TitleAt(%v, %v) = %v, %v", tt.x, tt.y, id, ok)
			}
		})
	}

	if !l.InBar(0, 47) || l.InBar(0, 48) {
		t.Error("InBar boundary wrong")
	}

	anchor := l.Anchor(command.DrawMenu)
	it, ok := l.ItemAt(command.DrawMenu, anchor, anchor.X+5, anchor.Y+itemHeight+5)
	if !ok || it.Action != command.OpenColorPicker {
		t.Errorf("ItemAt second row = %+v, %v", it, ok)
	}

	d := l.DialogRect()
	if d.Min.X < 0 || d.Max.X > 800 || d.Min.Y < 0 || d.Max.Y > 600 {
		t.Errorf("DialogRect() = %v outside viewport", d)
	}
	for i := range Palette {
		r := l.SwatchRect(i)
		got, ok := l.SwatchAt(float64(r.Min.X+1), float64(r.Min.Y+1))
		if !ok || got != i {
			t.Errorf("SwatchAt(swatch %d) = %d, %v", i, got, ok)
		}
		if !r.In(d) {
			t.Errorf("swatch %d %v outside dialog %v", i, r, d)
		}
	}
	if !l.CancelRect().In(d) {
		t.Error("cancel button outside dialog")
	}
}
