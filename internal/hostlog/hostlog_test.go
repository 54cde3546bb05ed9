package hostlog

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNopHandler(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("nopHandler.Handle() = %v, want nil", err)
	}
	if _, ok := h.WithGroup("g").(nopHandler); !ok {
		t.Error("WithGroup should return nopHandler")
	}
}

func TestSetAndGet(t *testing.T) {
	orig := Get()
	t.Cleanup(func() { Set(orig) })

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	Set(custom)

	if Get() != custom {
		t.Fatal("Get() did not return the logger passed to Set")
	}
	Get().Info("surface bound", "width", 800)
	if !strings.Contains(buf.String(), "surface bound") {
		t.Errorf("log output = %q, want message", buf.String())
	}

	Set(nil)
	if Get().Enabled(context.Background(), slog.LevelError) {
		t.Error("Set(nil) should restore the silent logger")
	}
}

func TestOr(t *testing.T) {
	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	if Or(custom) != custom {
		t.Error("Or(l) should return l")
	}
	if _, ok := Or(nil).Handler().(sharedHandler); !ok {
		t.Error("Or(nil) should forward to the shared logger")
	}
}

func TestSharedFollowsSet(t *testing.T) {
	orig := Get()
	t.Cleanup(func() { Set(orig) })
	Set(nil)

	// Built before Set, as components are.
	l := Or(nil).With("session", "s1").WithGroup("surface")
	l.Info("dropped while silent")

	var buf bytes.Buffer
	Set(slog.New(slog.NewTextHandler(&buf, nil)))
	l.Info("bound", "width", 800)

	out := buf.String()
	for _, want := range []string{"msg=bound", "session=s1", "surface.width=800"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output = %q, want %q", out, want)
		}
	}
	if strings.Contains(out, "dropped while silent") {
		t.Errorf("log output = %q, record from before Set leaked", out)
	}

	Set(nil)
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("Set(nil) should silence loggers built earlier")
	}
}
