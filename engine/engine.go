// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"errors"
	"sort"
)

// Entry-point names exported by rendering engines.
//
// StartRendering and Main are alternative spellings of the same entry call
// across engine builds; an engine exports one or the other.
const (
	StartRendering     = "start_rendering"
	Main               = "main"
	HandleMouseClick   = "handle_mouse_click"
	ProcessFileContent = "process_file_content"
	ToggleWireframe    = "toggle_wireframe"
	SetModelColor      = "set_model_color"
	RenderFrame        = "render_frame"
)

// KnownEntryPoints lists every entry point the host may call.
// The capability descriptor is negotiated against this list.
var KnownEntryPoints = []string{
	StartRendering,
	Main,
	HandleMouseClick,
	ProcessFileContent,
	ToggleWireframe,
	SetModelColor,
	RenderFrame,
}

// ErrBadArgument is returned by engine functions when an argument has the
// wrong type or arity.
var ErrBadArgument = errors.New("engine: bad argument")

// Func is an exported engine entry point.
// Arguments and results are passed untyped; each entry point documents
// the values it expects.
type Func func(args ...any) (any, error)

// Module is an opaque handle to a loaded rendering engine.
//
// The host never reaches into the engine beyond named lookups. Lookup must
// be safe to call repeatedly and must return the same function for the same
// name during the lifetime of the module.
type Module interface {
	// Lookup returns the entry point registered under name.
	Lookup(name string) (Func, bool)

	// Names returns the exported entry-point names in sorted order.
	Names() []string
}

// Loader acquires a Module. Load may block (module download, instantiation)
// and should honor ctx cancellation.
type Loader interface {
	Load(ctx context.Context) (Module, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) (Module, error)

// Load calls f(ctx).
func (f LoaderFunc) Load(ctx context.Context) (Module, error) {
	return f(ctx)
}

// Exports is a static export table implementing Module.
type Exports map[string]Func

// Lookup returns the function registered under name. Nil entries are
// reported as absent.
func (e Exports) Lookup(name string) (Func, bool) {
	fn, ok := e[name]
	if !ok || fn == nil {
		return nil, false
	}
	return fn, true
}

// Names returns the exported names in sorted order.
func (e Exports) Names() []string {
	names := make([]string, 0, len(e))
	for name, fn := range e {
		if fn != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Static returns a Loader that yields m immediately.
func Static(m Module) Loader {
	return LoaderFunc(func(ctx context.Context) (Module, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return m, nil
	})
}
