package enginehost

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/gogpu/enginehost/capability"
	"github.com/gogpu/enginehost/colorsync"
	"github.com/gogpu/enginehost/command"
	"github.com/gogpu/enginehost/engine"
	"github.com/gogpu/enginehost/ingest"
	"github.com/gogpu/enginehost/internal/hostlog"
	"github.com/gogpu/enginehost/internal/loop"
	"github.com/gogpu/enginehost/lifecycle"
	"github.com/gogpu/enginehost/pointer"
	"github.com/gogpu/enginehost/surface"
)

// ErrAlreadyMounted is returned by Mount when the host is already mounted.
var ErrAlreadyMounted = errors.New("enginehost: already mounted")

// Host wires the coordination components together around one engine and
// one surface.
//
// All methods except Post, Run and the channel accessors must be called on
// the loop goroutine: the goroutine running Run, or the one calling Pump.
type Host struct {
	loop      *loop.Loop
	gate      *capability.Gate
	surface   *surface.Manager
	lifecycle *lifecycle.Manager
	files     *ingest.Pipeline
	pointer   *pointer.Forwarder
	color     *colorsync.Sync
	commands  *command.Dispatcher

	mounted bool
}

// New creates a host for the engine produced by loader. Nothing is loaded
// until Mount.
func New(loader engine.Loader, opts ...Option) *Host {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger := hostlog.Or(o.logger)

	var loopOpts []loop.Option
	if o.wake != nil {
		loopOpts = append(loopOpts, loop.WithWakeHook(o.wake))
	}

	gateOpts := []capability.Option{capability.WithLogger(logger)}
	if o.registerer != nil {
		gateOpts = append(gateOpts, capability.WithRegisterer(o.registerer))
	}

	surfOpts := []surface.Option{surface.WithInset(o.inset), surface.WithLogger(logger)}
	if o.scrollLock != nil {
		surfOpts = append(surfOpts, surface.WithScrollLock(o.scrollLock))
	}

	lcOpts := []lifecycle.Option{lifecycle.WithLogger(logger)}
	if o.session != uuid.Nil {
		lcOpts = append(lcOpts, lifecycle.WithSessionID(o.session))
	}

	h := &Host{
		loop: loop.New(loopOpts...),
		gate: capability.NewGate(gateOpts...),
	}
	h.surface = surface.NewManager(o.target, surfOpts...)
	h.lifecycle = lifecycle.New(h.gate, h.surface, h.loop, loader, lcOpts...)
	h.files = ingest.NewPipeline(h.gate, h.loop, ingest.WithLogger(logger))
	h.pointer = pointer.NewForwarder(h.gate, h.surface)
	h.color = colorsync.New(h.gate, colorsync.WithInitial(o.color), colorsync.WithLogger(logger))
	h.commands = command.NewDispatcher(h.gate, h.files, h.color,
		command.WithFilePicker(o.picker), command.WithLogger(logger))

	// The engine starts with its own default colour.
	h.lifecycle.OnStarted(func() { h.color.Resync() })
	return h
}

// Mount binds the surface to vp, suppresses host scrolling and starts
// loading the engine. A resize failure is returned but does not stop the
// load.
func (h *Host) Mount(ctx context.Context, vp surface.Viewport) error {
	if h.mounted {
		return ErrAlreadyMounted
	}
	h.mounted = true
	h.surface.Activate()
	_, bindErr := h.surface.Bind(vp)
	if err := h.lifecycle.Initialize(ctx); err != nil {
		return err
	}
	return bindErr
}

// Unmount releases host scrolling and closes the loop. Pending work still
// runs on the next Pump.
func (h *Host) Unmount() {
	h.surface.Deactivate()
	h.loop.Close()
}

// Resize rebinds the surface to a new viewport.
func (h *Host) Resize(vp surface.Viewport) (surface.Descriptor, error) {
	return h.surface.Bind(vp)
}

// Click forwards a pointer click at viewport position (x, y).
func (h *Host) Click(x, y float64) capability.Result {
	return h.pointer.Forward(x, y)
}

// OpenFile runs the File > Open action.
func (h *Host) OpenFile(ctx context.Context) uint64 {
	return h.commands.OpenFile(ctx)
}

// SubmitFile sends f to the engine as if the user had picked it.
func (h *Host) SubmitFile(ctx context.Context, f ingest.File) uint64 {
	return h.files.Submit(ctx, f)
}

// ToggleWireframe runs the Draw > Toggle Wireframe action.
func (h *Host) ToggleWireframe() capability.Result {
	return h.commands.ToggleWireframe()
}

// SetColor applies c directly, without the dialog.
func (h *Host) SetColor(c colorsync.UIColor) capability.Result {
	return h.color.OnColorChanged(c)
}

// Frame runs one render tick. It reports whether the engine drew.
func (h *Host) Frame() bool {
	return h.lifecycle.Frame()
}

// Pump runs all work posted to the loop and returns the number of tasks.
// Window hosts call it from their draw callback.
func (h *Host) Pump() int {
	return h.loop.Drain()
}

// Run drives the loop until ctx is done or the host is unmounted.
func (h *Host) Run(ctx context.Context) error {
	return h.loop.Run(ctx)
}

// Post queues fn to run on the loop goroutine. It is safe for concurrent
// use.
func (h *Host) Post(fn func()) bool {
	return h.loop.Post(fn)
}

// Ready is closed when the engine is published.
func (h *Host) Ready() <-chan struct{} { return h.lifecycle.Ready() }

// Done is closed when engine acquisition finishes.
func (h *Host) Done() <-chan struct{} { return h.lifecycle.Done() }

// Gate returns the capability gate.
func (h *Host) Gate() *capability.Gate { return h.gate }

// Surface returns the surface manager.
func (h *Host) Surface() *surface.Manager { return h.surface }

// Lifecycle returns the engine lifecycle manager.
func (h *Host) Lifecycle() *lifecycle.Manager { return h.lifecycle }

// Files returns the file ingestion pipeline.
func (h *Host) Files() *ingest.Pipeline { return h.files }

// Commands returns the command dispatcher.
func (h *Host) Commands() *command.Dispatcher { return h.commands }

// Color returns the colour synchronisation state.
func (h *Host) Color() *colorsync.Sync { return h.color }
