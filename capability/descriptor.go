// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package capability

import (
	"sort"

	"github.com/gogpu/enginehost/engine"
)

// Descriptor records which entry points a loaded engine exports.
// It is computed once, when the engine becomes ready, so that absence is a
// typed, testable condition rather than a lookup at call time.
//
// The zero Descriptor reports every capability as absent.
type Descriptor struct {
	funcs map[string]engine.Func
	// checked holds every name that was looked up, available or not.
	checked []string
}

// Negotiate looks up m for each name in want plus every name m itself reports.
// Duplicate names are checked once.
func Negotiate(m engine.Module, want []string) Descriptor {
	d := Descriptor{funcs: make(map[string]engine.Func)}
	if m == nil {
		d.checked = dedupe(want)
		return d
	}

	names := append(append([]string(nil), want...), m.Names()...)
	d.checked = dedupe(names)
	for _, name := range d.checked {
		if fn, ok := m.Lookup(name); ok {
			d.funcs[name] = fn
		}
	}
	return d
}

// Has reports whether the engine exports name.
func (d Descriptor) Has(name string) bool {
	_, ok := d.funcs[name]
	return ok
}

// Available returns the exported names in sorted order.
func (d Descriptor) Available() []string {
	names := make([]string, 0, len(d.funcs))
	for name := range d.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Missing returns the checked names the engine does not export, sorted.
func (d Descriptor) Missing() []string {
	var names []string
	for _, name := range d.checked {
		if !d.Has(name) {
			names = append(names, name)
		}
	}
	return names
}

// FirstOf returns the first name in names that the engine exports.
func (d Descriptor) FirstOf(names ...string) (string, bool) {
	for _, name := range names {
		if d.Has(name) {
			return name, true
		}
	}
	return "", false
}

func (d Descriptor) lookup(name string) (engine.Func, bool) {
	fn, ok := d.funcs[name]
	return fn, ok
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok || name == "" {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
