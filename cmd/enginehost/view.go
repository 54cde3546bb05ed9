package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"

	"github.com/gogpu/enginehost"
	"github.com/gogpu/enginehost/command"
	"github.com/gogpu/enginehost/engine/ggengine"
	"github.com/gogpu/enginehost/ingest"
	"github.com/gogpu/enginehost/integration/gogpuhost"
	"github.com/gogpu/enginehost/surface"
)

func newViewCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [model files...]",
		Short: "Open a window hosting the engine",
		Long: `View opens a window with a File/Draw menu bar and mounts the engine on the
surface below it. File > Open (Ctrl+O) walks through the given model files.
With --watch the engine is fed the watched file every time it changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), a.cfg, args)
		},
	}
	f := cmd.Flags()
	f.String("title", "enginehost", "window title")
	f.String("metrics", "", "serve Prometheus metrics on this address, e.g. :9464")
	f.String("watch", "", "model file to reload on change")
	return cmd
}

// window is the gogpu side of a view session. All fields are touched only
// from the draw callback, which is also where the host loop is pumped.
type window struct {
	app     *gogpu.App
	host    *enginehost.Host
	adapter *gogpuhost.Adapter
	target  *gogpuhost.CanvasTarget
	logger  *slog.Logger
	ctx     context.Context

	surface *ggcanvas.Canvas
	chrome  *ggcanvas.Canvas
	anim    *gogpu.AnimationToken
}

func runView(ctx context.Context, cfg config, files []string) error {
	logger := enginehost.Logger()
	reg := newRegistry()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.Title).
		WithSize(cfg.Width, cfg.Height).
		WithContinuousRender(false))

	target := &gogpuhost.CanvasTarget{}
	h := enginehost.New(ggengine.Loader(),
		enginehost.WithTarget(target),
		enginehost.WithInset(cfg.Inset),
		enginehost.WithInitialColor(cfg.Color),
		enginehost.WithFilePicker(command.NewPathPicker(files...)),
		enginehost.WithRegisterer(reg),
		enginehost.WithScrollLock(surface.ScrollLockFunc{
			OnLock:   func() { logger.Debug("window scrolling suppressed") },
			OnUnlock: func() { logger.Debug("window scrolling released") },
		}),
	)
	logger = logger.With("session", h.Lifecycle().SessionID())

	w := &window{
		app:    app,
		host:   h,
		target: target,
		logger: logger,
		ctx:    ctx,
	}
	w.adapter = gogpuhost.Attach(h, app.EventSource(), nil,
		gogpuhost.WithContext(ctx), gogpuhost.WithLogger(logger))

	app.OnDraw(w.draw)
	app.OnClose(func() {
		if w.anim != nil {
			w.anim.Stop()
		}
		h.Unmount()
		h.Pump()
		cancel()
		closeAccelerator()
	})

	g, gctx := errgroup.WithContext(ctx)
	if cfg.MetricsAddr != "" {
		g.Go(func() error { return serveMetrics(gctx, cfg.MetricsAddr, reg, logger) })
	}
	if cfg.Watch != "" {
		watcher, err := ingest.NewWatcher(cfg.Watch, func(f ingest.File) {
			h.Post(func() { h.SubmitFile(ctx, f) })
		}, ingest.WithWatchLogger(logger))
		if err != nil {
			return err
		}
		if err := watcher.Start(gctx); err != nil {
			return fmt.Errorf("watch %s: %w", cfg.Watch, err)
		}
		defer watcher.Stop()
		// The watched file is also the first model shown.
		h.Lifecycle().OnStarted(func() { h.SubmitFile(ctx, ingest.OSFile(cfg.Watch)) })
	}

	runErr := app.Run()
	cancel()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Join(runErr, err)
	}
	return runErr
}

// draw is the window draw callback.
func (w *window) draw(dc *gogpu.Context) {
	width, height := dc.Width(), dc.Height()
	if width <= 0 || height <= 0 {
		return
	}
	if w.chrome == nil && !w.mount(width, height) {
		return
	}

	w.adapter.Sync(width, height)
	w.host.Pump()
	w.host.Frame()

	if cw, ch := w.chrome.Size(); cw != width || ch != height {
		if err := w.chrome.Resize(width, height); err != nil {
			w.logger.Warn("chrome resize failed", "error", err)
		}
	}
	if err := w.chrome.Draw(w.adapter.PaintChrome); err != nil {
		w.logger.Warn("chrome draw failed", "error", err)
	}

	td := dc.AsTextureDrawer()
	if d, ok := w.host.Surface().Descriptor(); ok && w.host.Lifecycle().Started() {
		if err := w.surface.RenderToPosition(td, float32(d.Offset.X), float32(d.Offset.Y)); err != nil {
			w.logger.Warn("surface render failed", "error", err)
		}
	}
	if err := w.chrome.RenderTo(td); err != nil {
		w.logger.Warn("chrome render failed", "error", err)
	}
}

// mount creates the canvases on the first draw, when the GPU device exists,
// and mounts the engine.
func (w *window) mount(width, height int) bool {
	provider := w.app.GPUContextProvider()
	if provider == nil {
		return false
	}
	var err error
	if w.surface, err = ggcanvas.New(provider, width, height); err != nil {
		w.logger.Error("surface canvas", "error", err)
		return false
	}
	if w.chrome, err = ggcanvas.New(provider, width, height); err != nil {
		w.logger.Error("chrome canvas", "error", err)
		_ = w.surface.Close()
		w.surface = nil
		return false
	}
	if err := gg.SetAcceleratorDeviceProvider(provider); err != nil {
		w.logger.Debug("accelerator keeps its own device", "error", err)
	}
	if err := w.target.Attach(w.surface); err != nil {
		w.logger.Warn("surface resize failed", "error", err)
	}

	w.adapter.Sync(width, height)
	if err := w.host.Mount(w.ctx, w.adapter.Viewport()); err != nil {
		w.logger.Warn("mount", "error", err)
	}
	w.anim = w.app.StartAnimation()
	return true
}
