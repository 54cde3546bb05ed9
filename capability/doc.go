// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package capability implements the gate that makes every engine call safe
// regardless of engine readiness or build.
//
// A Gate starts unbound. The lifecycle manager publishes the loaded engine
// exactly once; at that moment the gate negotiates a Descriptor mapping each
// known entry point to its availability. From then on:
//
//	r := gate.Invoke(engine.ToggleWireframe)
//	switch r.Outcome {
//	case capability.OK:          // engine ran
//	case capability.NotReady:    // no engine yet
//	case capability.Unsupported: // this build does not export it
//	case capability.Failed:      // engine returned an error or panicked
//	}
//
// Invoke never panics and never returns an error value to branch on; the
// outcome is for diagnostics and tests. Outcomes are logged and counted in
// enginehost_capability_calls_total{capability,outcome}.
package capability
