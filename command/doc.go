// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package command maps menu actions to engine calls and owns the transient
// menu and colour-dialog state.
//
//	File > Open...            OpenFile         picker -> ingest.Pipeline
//	Draw > Toggle Wireframe   ToggleWireframe  toggle_wireframe()
//	Draw > Model Color...     OpenColorPicker  dialog; changes -> colorsync
package command
