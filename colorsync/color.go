// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package colorsync

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned by ParseHex for malformed input.
var ErrInvalidColor = errors.New("colorsync: invalid color")

// UIColor is the colour as the picker presents it: 8-bit RGB channels and a
// fractional alpha in [0, 1].
type UIColor struct {
	R, G, B uint8
	A       float64
}

// DefaultColor is the model colour before the user picks one.
var DefaultColor = UIColor{R: 192, G: 192, B: 192, A: 1}

// Normalize returns the engine form: each RGB channel divided by 255,
// alpha passed through unchanged.
func (c UIColor) Normalize() [4]float64 {
	return [4]float64{
		float64(c.R) / 255,
		float64(c.G) / 255,
		float64(c.B) / 255,
		c.A,
	}
}

// FromNormalized converts an engine tuple back to UI form. RGB channels are
// clamped to [0, 1] and rounded to the nearest 8-bit value; alpha is clamped.
func FromNormalized(v [4]float64) UIColor {
	return UIColor{
		R: channel(v[0]),
		G: channel(v[1]),
		B: channel(v[2]),
		A: clamp01(v[3]),
	}
}

// Hex returns the colour as "#rrggbb". Alpha is not encoded.
func (c UIColor) Hex() string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

// String implements fmt.Stringer.
func (c UIColor) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.3g)", c.R, c.G, c.B, c.A)
}

// ParseHex parses "#rgb" or "#rrggbb" into an opaque UIColor.
func ParseHex(s string) (UIColor, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return UIColor{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	r, g, b := col.RGB255()
	return UIColor{R: r, G: g, B: b, A: 1}, nil
}

// FromHSV builds an opaque colour from hue (degrees), saturation and value.
func FromHSV(h, s, v float64) UIColor {
	r, g, b := colorful.Hsv(h, s, v).Clamped().RGB255()
	return UIColor{R: r, G: g, B: b, A: 1}
}

func channel(f float64) uint8 {
	return uint8(math.Round(clamp01(f) * 255))
}

func clamp01(f float64) float64 {
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
