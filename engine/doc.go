// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package engine defines the contract between the host and an externally
// supplied rendering engine.
//
// An engine is opaque. The host reaches it only through a small set of named
// entry points:
//
//	start_rendering(surface) / main(surface)   bind the surface, begin rendering
//	handle_mouse_click(x, y float64)            surface-local click
//	process_file_content(text string)           ingested file text
//	toggle_wireframe()                          flip engine-owned wireframe mode
//	set_model_color(rgba [4]float64)            normalised model colour
//	render_frame()                              render-loop tick
//
// Every entry point is optional from the host's point of view. Which ones a
// loaded Module actually exports is negotiated once by package capability.
//
// The wireframe flag is engine-owned: the host never reads it back and keeps
// no mirror of it.
//
// # Loading
//
// Engines are acquired through a Loader. Static wraps an in-process Module:
//
//	loader := engine.Static(ggengine.New())
//
// Exports is a convenient Module for tests and small engines:
//
//	mod := engine.Exports{
//	    engine.ToggleWireframe: func(...any) (any, error) { return nil, nil },
//	}
package engine
