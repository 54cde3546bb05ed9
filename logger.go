package enginehost

import (
	"log/slog"

	"github.com/gogpu/gg"

	"github.com/gogpu/enginehost/internal/hostlog"
)

// SetLogger configures the logger for enginehost and all its sub-packages.
// By default, enginehost produces no log output. Call SetLogger to enable
// logging.
//
// The logger is also handed to gg so that drawing and GPU diagnostics land
// in the same stream. Pass nil to restore the silent default.
//
// Log levels used by enginehost:
//   - [slog.LevelDebug]: gated no-ops (engine not ready, entry point absent)
//   - [slog.LevelInfo]: lifecycle events (engine ready, rendering started)
//   - [slog.LevelWarn]: degraded paths (engine call failed, file read failed)
//   - [slog.LevelError]: engine load failure
//
// Example:
//
//	enginehost.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	hostlog.Set(l)
	gg.SetLogger(l)
}

// Logger returns the current logger. It never returns nil.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return hostlog.Get()
}
