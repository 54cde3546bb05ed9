// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package lifecycle performs the one-time acquisition of the rendering
// engine.
//
// The sequence is:
//
//	Initialize ──goroutine──> Loader.Load
//	                 │
//	      Post ──────┘
//	        │
//	        └─> Gate.Publish ─> Ready ─> (surface bound?) ─> start_rendering | main
//
// The start waits for the first surface bind when the engine is faster than
// the host. A failed load leaves the gate empty for the whole session, so
// every gated call reports NotReady.
package lifecycle
