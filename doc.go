// Package enginehost hosts an opaque rendering engine inside a drawing
// surface and coordinates it with the UI around it.
//
// # Overview
//
// The engine is reached only through named entry points (see package
// engine). The host acquires it once, gates every call on readiness and
// capability, owns the surface it draws into, and turns UI intents into
// engine calls:
//
//	import "github.com/gogpu/enginehost"
//
//	target := surface.NewContextTarget(1, 1)
//	h := enginehost.New(ggengine.Loader(), enginehost.WithTarget(target))
//	h.Mount(ctx, surface.Viewport{Width: 1024, Height: 768})
//	go h.Run(ctx)
//
// # Components
//
//   - capability: the gate every engine call goes through
//   - surface: surface size and viewport binding
//   - lifecycle: one-shot engine acquisition and render start
//   - ingest: selected file to process_file_content
//   - pointer: viewport clicks to surface-local handle_mouse_click
//   - command: menu actions and dialog state
//   - colorsync: UI colour to set_model_color
//
// # Threading
//
// Coordination state lives on a single loop goroutine. Engine loading and
// file reads run elsewhere and post their results back. Window hosts drain
// the loop from their draw callback with Pump; headless hosts call Run.
//
// # Failure
//
// Nothing crosses the host boundary as a panic or an error return except
// misuse. A missing engine or entry point is a logged no-op; a failed load
// leaves the session degraded and is reported by Lifecycle().Err().
package enginehost
