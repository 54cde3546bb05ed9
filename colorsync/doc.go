// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package colorsync keeps the host's selected model colour and the engine's
// rendered colour consistent.
//
// The UI form is 8-bit RGB plus fractional alpha; the engine form is four
// floats in [0, 1]:
//
//	{192, 192, 192, 1}  ->  [0.7529, 0.7529, 0.7529, 1]
package colorsync
