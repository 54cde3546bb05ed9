package enginehost

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/enginehost/colorsync"
	"github.com/gogpu/enginehost/command"
	"github.com/gogpu/enginehost/surface"
)

// Option configures a Host during creation.
//
// Example:
//
//	// Headless host rendering into an off-screen context
//	target := surface.NewContextTarget(1, 1)
//	h := enginehost.New(loader, enginehost.WithTarget(target))
//
//	// Window host with a file picker and metrics
//	h := enginehost.New(loader,
//	    enginehost.WithTarget(canvas),
//	    enginehost.WithFilePicker(picker),
//	    enginehost.WithRegisterer(prometheus.DefaultRegisterer))
type Option func(*hostOptions)

// hostOptions holds optional configuration for Host creation.
type hostOptions struct {
	target     surface.Target
	inset      surface.Inset
	scrollLock surface.ScrollLock
	picker     command.FilePicker
	color      colorsync.UIColor
	registerer prometheus.Registerer
	logger     *slog.Logger
	wake       func()
	session    uuid.UUID
}

// defaultOptions returns the default host options.
func defaultOptions() hostOptions {
	return hostOptions{
		inset: surface.DefaultInset,
		color: colorsync.DefaultColor,
	}
}

// WithTarget sets the drawing target the engine renders into.
// Without one the host tracks geometry only.
func WithTarget(t surface.Target) Option {
	return func(o *hostOptions) {
		o.target = t
	}
}

// WithInset sets the border between the viewport edge and the surface.
func WithInset(in surface.Inset) Option {
	return func(o *hostOptions) {
		o.inset = in
	}
}

// WithScrollLock sets the hook that suppresses host scrolling while mounted.
func WithScrollLock(l surface.ScrollLock) Option {
	return func(o *hostOptions) {
		o.scrollLock = l
	}
}

// WithFilePicker sets the file-selection surface used by OpenFile.
func WithFilePicker(p command.FilePicker) Option {
	return func(o *hostOptions) {
		o.picker = p
	}
}

// WithInitialColor sets the model colour before the user picks one.
func WithInitialColor(c colorsync.UIColor) Option {
	return func(o *hostOptions) {
		o.color = c
	}
}

// WithRegisterer exports the capability call counters to reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *hostOptions) {
		o.registerer = reg
	}
}

// WithLogger sets the logger for this host. Defaults to Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *hostOptions) {
		o.logger = l
	}
}

// WithWakeHook sets fn to be called whenever work is posted to the host
// loop from another goroutine, e.g. to request a window redraw.
func WithWakeHook(fn func()) Option {
	return func(o *hostOptions) {
		o.wake = fn
	}
}

// WithSessionID fixes the session id instead of generating one.
func WithSessionID(id uuid.UUID) Option {
	return func(o *hostOptions) {
		o.session = id
	}
}
