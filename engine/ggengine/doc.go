// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ggengine is a reference rendering engine for enginehost, drawn
// with gg.
//
// It exports every entry point the host knows about and draws a grid, a
// model placeholder in the model colour (outlined in wireframe mode), the
// last click and a status line. It does not interpret file content beyond
// counting it.
package ggengine
