package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/enginehost"
	"github.com/gogpu/enginehost/command"
	"github.com/gogpu/enginehost/engine/ggengine"
	"github.com/gogpu/enginehost/surface"
)

var errLoopClosed = errors.New("enginehost: host loop closed")

// renderOptions are the flags of the render command.
type renderOptions struct {
	output   string
	actions  []string
	clicks   []string
	timeout  time.Duration
	mainOnly bool
}

// script is a parsed render scenario.
type script struct {
	files   []string
	actions []command.Action
	clicks  []surface.Point
}

func newRenderCommand(a *app) *cobra.Command {
	var o renderOptions
	cmd := &cobra.Command{
		Use:   "render [model files...]",
		Short: "Render one frame off-screen and save it as PNG",
		Long: `Render mounts the engine on an off-screen surface, feeds it the given
files through the File > Open path, applies the scripted actions and clicks,
renders one frame and writes the surface to a PNG file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := parseScript(args, o.actions, o.clicks)
			if err != nil {
				return err
			}
			return runRender(cmd.Context(), a.cfg, o, sc, cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.output, "output", "o", "enginehost.png", "output PNG file")
	f.StringArrayVar(&o.actions, "action", nil, "menu action to run (open_file, toggle_wireframe, open_color_picker)")
	f.StringArrayVar(&o.clicks, "click", nil, "click at viewport position x,y")
	f.DurationVar(&o.timeout, "timeout", 10*time.Second, "give up after this long")
	f.BoolVar(&o.mainOnly, "main-entry", false, "export main instead of start_rendering")
	return cmd
}

// parseScript validates the scripted actions and clicks.
func parseScript(files, actions, clicks []string) (script, error) {
	sc := script{files: files}
	for _, s := range actions {
		act, err := command.ParseAction(s)
		if err != nil {
			return sc, err
		}
		sc.actions = append(sc.actions, act)
	}
	for _, s := range clicks {
		p, err := parsePoint(s)
		if err != nil {
			return sc, err
		}
		sc.clicks = append(sc.clicks, p)
	}
	return sc, nil
}

func parsePoint(s string) (surface.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return surface.Point{}, fmt.Errorf("click %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return surface.Point{}, fmt.Errorf("click %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return surface.Point{}, fmt.Errorf("click %q: %w", s, err)
	}
	return surface.Point{X: x, Y: y}, nil
}

// onLoop runs fn on the host loop and waits for it.
func onLoop(ctx context.Context, h *enginehost.Host, fn func() error) error {
	errc := make(chan error, 1)
	if !h.Post(func() { errc <- fn() }) {
		return errLoopClosed
	}
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func runRender(ctx context.Context, cfg config, o renderOptions, sc script, out io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	if err := forceCPU(); err != nil {
		return fmt.Errorf("cpu rasterizer: %w", err)
	}
	target := surface.NewContextTarget(1, 1)
	defer target.Close()

	var engOpts []ggengine.Option
	if o.mainOnly {
		engOpts = append(engOpts, ggengine.WithMainEntry())
	}
	h := enginehost.New(ggengine.Loader(engOpts...),
		enginehost.WithTarget(target),
		enginehost.WithInset(cfg.Inset),
		enginehost.WithInitialColor(cfg.Color),
		enginehost.WithFilePicker(command.NewPathPicker(sc.files...)),
	)
	logger := enginehost.Logger().With("session", h.Lifecycle().SessionID())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := h.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		defer h.Post(h.Unmount)
		return playScript(gctx, h, target, cfg, sc, o.output)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	w, ht := target.Size()
	logger.Info("frame written", "path", o.output, "width", w, "height", ht)
	_, err := fmt.Fprintf(out, "%s %dx%d\n", o.output, w, ht)
	return err
}

// playScript mounts the engine and replays sc against it.
func playScript(ctx context.Context, h *enginehost.Host, target *surface.ContextTarget, cfg config, sc script, output string) error {
	vp := surface.Viewport{Width: cfg.Width, Height: cfg.Height}
	if err := onLoop(ctx, h, func() error { return h.Mount(ctx, vp) }); err != nil {
		return fmt.Errorf("mount: %w", err)
	}
	if err := h.Lifecycle().Wait(ctx); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	// One file at a time, each delivered before the next is picked.
	for range sc.files {
		if err := onLoop(ctx, h, func() error { h.OpenFile(ctx); return nil }); err != nil {
			return err
		}
		h.Files().Wait()
	}

	for _, act := range sc.actions {
		if act == command.OpenFile {
			if err := onLoop(ctx, h, func() error { h.OpenFile(ctx); return nil }); err != nil {
				return err
			}
			h.Files().Wait()
			continue
		}
		err := onLoop(ctx, h, func() error {
			if err := h.Commands().Run(ctx, act); err != nil {
				return err
			}
			// Headless runs have no dialog; confirm with the configured colour.
			if act == command.OpenColorPicker {
				h.Commands().ColorChanged(cfg.Color)
				h.Commands().ConfirmColor(cfg.Color)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	for _, p := range sc.clicks {
		if err := onLoop(ctx, h, func() error { h.Click(p.X, p.Y); return nil }); err != nil {
			return err
		}
	}

	return onLoop(ctx, h, func() error {
		h.Frame()
		return target.SavePNG(output)
	})
}
