// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gogpu/enginehost/capability"
	"github.com/gogpu/enginehost/engine"
	"github.com/gogpu/enginehost/internal/loop"
	"github.com/gogpu/enginehost/surface"
)

// recorder builds an export table that logs every call.
type recorder struct {
	calls []string
	args  [][]any
}

func (r *recorder) fn(name string) engine.Func {
	return func(args ...any) (any, error) {
		r.calls = append(r.calls, name)
		r.args = append(r.args, args)
		return nil, nil
	}
}

func (r *recorder) module(names ...string) engine.Exports {
	e := engine.Exports{}
	for _, n := range names {
		e[n] = r.fn(n)
	}
	return e
}

func (r *recorder) count(name string) int {
	n := 0
	for _, c := range r.calls {
		if c == name {
			n++
		}
	}
	return n
}

// gatedLoader blocks until release is closed.
type gatedLoader struct {
	release chan struct{}
	mod     engine.Module
	err     error
}

func (l *gatedLoader) Load(ctx context.Context) (engine.Module, error) {
	<-l.release
	return l.mod, l.err
}

func drainPosted(t *testing.T, l *loop.Loop) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for l.Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for posted work")
		}
		time.Sleep(time.Millisecond)
	}
	l.Drain()
}

type fixture struct {
	loop *loop.Loop
	gate *capability.Gate
	sm   *surface.Manager
	mgr  *Manager
	ld   *gatedLoader
}

func newFixture(mod engine.Module, err error) *fixture {
	f := &fixture{
		loop: loop.New(),
		gate: capability.NewGate(),
		sm:   surface.NewManager(nil),
		ld:   &gatedLoader{release: make(chan struct{}), mod: mod, err: err},
	}
	f.mgr = New(f.gate, f.sm, f.loop, f.ld)
	return f
}

func TestStartAfterBindAndReady(t *testing.T) {
	rec := &recorder{}
	f := newFixture(rec.module(engine.StartRendering, engine.Main), nil)

	if err := f.mgr.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}
	if f.mgr.State() != Loading {
		t.Errorf("State() = %v, want loading", f.mgr.State())
	}
	f.sm.Bind(surface.Viewport{Width: 1024, Height: 768})
	if len(rec.calls) != 0 {
		t.Fatalf("engine called before ready: %v", rec.calls)
	}

	close(f.ld.release)
	drainPosted(t, f.loop)

	if f.mgr.State() != Ready {
		t.Fatalf("State() = %v, want ready", f.mgr.State())
	}
	select {
	case <-f.mgr.Ready():
	default:
		t.Error("Ready() not closed")
	}
	if rec.count(engine.StartRendering) != 1 || rec.count(engine.Main) != 0 {
		t.Errorf("calls = %v, want one start_rendering", rec.calls)
	}
	d := rec.args[0][0].(surface.Descriptor)
	if d.Width != 1024 || d.Height != 720 {
		t.Errorf("start descriptor = %dx%d", d.Width, d.Height)
	}
}

func TestStartDeferredUntilBind(t *testing.T) {
	rec := &recorder{}
	f := newFixture(rec.module(engine.Main), nil)
	started := 0
	f.mgr.OnStarted(func() { started++ })

	f.mgr.Initialize(context.Background())
	close(f.ld.release)
	drainPosted(t, f.loop)

	if f.mgr.Started() || len(rec.calls) != 0 {
		t.Fatalf("started without a surface: %v", rec.calls)
	}

	f.sm.Bind(surface.Viewport{Width: 320, Height: 240})
	f.sm.Bind(surface.Viewport{Width: 640, Height: 480})

	if rec.count(engine.Main) != 1 {
		t.Errorf("main calls = %d, want 1", rec.count(engine.Main))
	}
	if started != 1 {
		t.Errorf("OnStarted calls = %d, want 1", started)
	}
}

func TestLoadFailure(t *testing.T) {
	boom := errors.New("instantiate: out of memory")
	f := newFixture(nil, boom)
	var states []State
	f.mgr.OnStatus(func(s State, err error) { states = append(states, s) })

	f.sm.Bind(surface.Viewport{Width: 100, Height: 100})
	f.mgr.Initialize(context.Background())
	close(f.ld.release)
	drainPosted(t, f.loop)

	if f.mgr.State() != Failed {
		t.Fatalf("State() = %v, want failed", f.mgr.State())
	}
	if err := f.mgr.Err(); !errors.Is(err, ErrLoadFailed) || !errors.Is(err, boom) {
		t.Errorf("Err() = %v", err)
	}
	if err := f.mgr.Wait(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Wait() = %v", err)
	}
	if f.gate.Ready() {
		t.Error("gate ready after failed load")
	}
	if r := f.gate.Invoke(engine.ToggleWireframe); r.Outcome != capability.NotReady {
		t.Errorf("Invoke after failure = %v, want not_ready", r.Outcome)
	}
	if len(states) != 2 || states[0] != Loading || states[1] != Failed {
		t.Errorf("status transitions = %v", states)
	}
}

func TestLoadAfterLoopClosed(t *testing.T) {
	rec := &recorder{}
	f := newFixture(rec.module(engine.StartRendering), nil)
	if err := f.mgr.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}
	f.loop.Close()
	close(f.ld.release)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := f.mgr.Wait(ctx); !errors.Is(err, ErrLoopClosed) || !errors.Is(err, ErrLoadFailed) {
		t.Fatalf("Wait() = %v, want loop closed", err)
	}
	if f.mgr.State() != Failed {
		t.Errorf("State() = %v, want failed", f.mgr.State())
	}
	select {
	case <-f.mgr.Done():
	default:
		t.Error("Done() not closed")
	}
	if f.gate.Ready() {
		t.Error("gate ready after loop closed")
	}
}

func TestNilModuleFails(t *testing.T) {
	f := newFixture(nil, nil)
	f.mgr.Initialize(context.Background())
	close(f.ld.release)
	drainPosted(t, f.loop)
	if !errors.Is(f.mgr.Err(), capability.ErrNilModule) {
		t.Errorf("Err() = %v", f.mgr.Err())
	}
}

func TestPublishConflictFails(t *testing.T) {
	rec := &recorder{}
	f := newFixture(rec.module(engine.Main), nil)
	if _, err := f.gate.Publish(engine.Exports{}); err != nil {
		t.Fatal(err)
	}
	f.mgr.Initialize(context.Background())
	close(f.ld.release)
	drainPosted(t, f.loop)
	if !errors.Is(f.mgr.Err(), capability.ErrAlreadyPublished) {
		t.Errorf("Err() = %v", f.mgr.Err())
	}
}

func TestInitializeTwicePanics(t *testing.T) {
	f := newFixture(engine.Exports{}, nil)
	f.mgr.Initialize(context.Background())
	defer func() {
		if recover() == nil {
			t.Error("second Initialize did not panic")
		}
	}()
	f.mgr.Initialize(context.Background())
}

func TestNilLoader(t *testing.T) {
	m := New(capability.NewGate(), surface.NewManager(nil), loop.New(), nil)
	if err := m.Initialize(context.Background()); !errors.Is(err, ErrNilLoader) {
		t.Errorf("Initialize() = %v", err)
	}
	if m.State() != Failed {
		t.Errorf("State() = %v", m.State())
	}
}

func TestFrame(t *testing.T) {
	rec := &recorder{}
	f := newFixture(rec.module(engine.StartRendering, engine.RenderFrame), nil)
	if f.mgr.Frame() {
		t.Error("Frame() before start reported a call")
	}
	f.sm.Bind(surface.Viewport{Width: 10, Height: 60})
	f.mgr.Initialize(context.Background())
	close(f.ld.release)
	drainPosted(t, f.loop)

	for range 3 {
		if !f.mgr.Frame() {
			t.Fatal("Frame() = false after start")
		}
	}
	if rec.count(engine.RenderFrame) != 3 {
		t.Errorf("render_frame calls = %d", rec.count(engine.RenderFrame))
	}
}

func TestFrameWithoutExport(t *testing.T) {
	f := newFixture(engine.Exports{}, nil)
	f.sm.Bind(surface.Viewport{Width: 10, Height: 60})
	f.mgr.Initialize(context.Background())
	close(f.ld.release)
	drainPosted(t, f.loop)
	if !f.mgr.Started() {
		t.Fatal("Started() = false")
	}
	if f.mgr.Frame() {
		t.Error("Frame() = true without render_frame")
	}
}

func TestSessionID(t *testing.T) {
	id := uuid.MustParse("6f1c1a4e-8c1b-4a7e-9a43-2f5c7e0d1b22")
	m := New(capability.NewGate(), surface.NewManager(nil), loop.New(), engine.Static(engine.Exports{}), WithSessionID(id))
	if m.SessionID() != id.String() {
		t.Errorf("SessionID() = %q", m.SessionID())
	}
	if _, err := uuid.Parse(New(capability.NewGate(), surface.NewManager(nil), loop.New(), nil).SessionID()); err != nil {
		t.Errorf("generated SessionID is not a uuid: %v", err)
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{Absent: "absent", Loading: "loading", Ready: "ready", Failed: "failed", 9: "state(9)"} {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}
