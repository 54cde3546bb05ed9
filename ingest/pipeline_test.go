// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ingest

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gogpu/enginehost/capability"
	"github.com/gogpu/enginehost/engine"
	"github.com/gogpu/enginehost/internal/loop"
)

type fakeGate struct {
	texts []string
}

func (g *fakeGate) Invoke(name string, args ...any) capability.Result {
	if name == engine.ProcessFileContent {
		g.texts = append(g.texts, args[0].(string))
	}
	return capability.Result{Name: name, Outcome: capability.OK}
}

// blockingFile returns its data only after release is closed.
type blockingFile struct {
	name    string
	data    string
	release chan struct{}
}

func newBlockingFile(name, data string) *blockingFile {
	return &blockingFile{name: name, data: data, release: make(chan struct{})}
}

func (f *blockingFile) Name() string { return f.name }

func (f *blockingFile) Open() (io.ReadCloser, error) {
	<-f.release
	return io.NopCloser(strings.NewReader(f.data)), nil
}

type failingFile struct{ err error }

func (f failingFile) Name() string                 { return "broken.obj" }
func (f failingFile) Open() (io.ReadCloser, error) { return nil, f.err }

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

func newTestPipeline() (*Pipeline, *fakeGate, *loop.Loop, *[]Status) {
	g := &fakeGate{}
	l := loop.New()
	p := NewPipeline(g, l)
	var seen []Status
	p.OnStatus(func(s Status) { seen = append(seen, s) })
	return p, g, l, &seen
}

func terminal(seen []Status) []Status {
	var out []Status
	for _, s := range seen {
		if s.State.Terminal() {
			out = append(out, s)
		}
	}
	return out
}

func TestSubmitDelivers(t *testing.T) {
	p, g, l, seen := newTestPipeline()

	p.Submit(context.Background(), BytesFile("cube.obj", []byte("abc")))
	if !p.Pending() {
		t.Error("Pending() = false during read")
	}
	drainPosted(t, l)

	if len(g.texts) != 1 || g.texts[0] != "abc" {
		t.Fatalf("engine received %q, want one \"abc\"", g.texts)
	}
	got := terminal(*seen)
	if len(got) != 1 || got[0].State != Delivered || got[0].Bytes != 3 || got[0].Name != "cube.obj" {
		t.Errorf("terminal statuses = %+v", got)
	}
	if p.Pending() {
		t.Error("Pending() = true after delivery")
	}
}

func byID(seen []Status) map[uint64]Status {
	out := make(map[uint64]Status)
	for _, s := range terminal(seen) {
		out[s.ID] = s
	}
	return out
}

func TestSubmitSupersedes(t *testing.T) {
	tests := []struct {
		name  string
		aLast bool
	}{
		{"A completes last", true},
		{"A completes first", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, g, l, seen := newTestPipeline()
			a := newBlockingFile("a.obj", "AAA")
			b := newBlockingFile("b.obj", "BBB")

			idA := p.Submit(context.Background(), a)
			idB := p.Submit(context.Background(), b)

			first, second := b, a
			if !tt.aLast {
				first, second = a, b
			}
			close(first.release)
			drainPosted(t, l)
			close(second.release)
			p.Wait()
			l.Drain()

			if len(g.texts) != 1 || g.texts[0] != "BBB" {
				t.Fatalf("engine received %q, want only B", g.texts)
			}
			got := byID(*seen)
			if len(got) != 2 {
				t.Fatalf("terminal statuses = %+v", *seen)
			}
			if got[idB].State != Delivered {
				t.Errorf("B = %v, want delivered", got[idB].State)
			}
			if got[idA].State != Superseded {
				t.Errorf("A = %v, want superseded", got[idA].State)
			}
		})
	}
}

func TestSubmitNilFile(t *testing.T) {
	p, g, l, seen := newTestPipeline()
	a := newBlockingFile("a.obj", "AAA")
	p.Submit(context.Background(), a)

	if id := p.Submit(context.Background(), nil); id != 0 {
		t.Errorf("Submit(nil) id = %d", id)
	}
	if last := (*seen)[len(*seen)-1]; last.State != Cancelled {
		t.Errorf("last status = %+v, want cancelled", last)
	}

	close(a.release)
	p.Wait()
	l.Drain()
	if len(g.texts) != 1 || g.texts[0] != "AAA" {
		t.Errorf("dismissed selection disturbed in-flight read: %q", g.texts)
	}
}

func TestSubmitReadFailure(t *testing.T) {
	p, g, l, seen := newTestPipeline()
	boom := errors.New("permission denied")

	p.Submit(context.Background(), failingFile{boom})
	drainPosted(t, l)

	if len(g.texts) != 0 {
		t.Errorf("engine called on failure: %q", g.texts)
	}
	got := terminal(*seen)
	if len(got) != 1 || got[0].State != Failed || !errors.Is(got[0].Err, boom) {
		t.Errorf("terminal statuses = %+v", got)
	}
}

func TestSubmitContextCancelled(t *testing.T) {
	p, g, l, seen := newTestPipeline()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p.Submit(ctx, BytesFile("x", []byte("x")))
	drainPosted(t, l)

	if len(g.texts) != 0 {
		t.Errorf("engine called after cancel: %q", g.texts)
	}
	if got := terminal(*seen); len(got) != 1 || got[0].State != Cancelled {
		t.Errorf("terminal statuses = %+v", got)
	}
}

func TestSubmitAfterLoopClosed(t *testing.T) {
	p, g, l, seen := newTestPipeline()
	f := newBlockingFile("late.obj", "v 0 0 0")

	p.Submit(context.Background(), f)
	l.Close()
	close(f.release)
	p.Wait()

	if p.Pending() {
		t.Error("Pending() = true after the loop closed")
	}
	if len(g.texts) != 0 {
		t.Errorf("engine received %q after close", g.texts)
	}
	if got := terminal(*seen); len(got) != 0 {
		t.Errorf("terminal statuses = %+v", got)
	}
}

func TestFileSources(t *testing.T) {
	fsys := fstest.MapFS{"models/teapot.obj": {Data: []byte("v 0 0 0\n")}}
	text, err := readAll(context.Background(), FSFile(fsys, "models/teapot.obj"))
	if err != nil || text != "v 0 0 0\n" {
		t.Errorf("FSFile read = %q, %v", text, err)
	}

	if _, err := readAll(context.Background(), OSFile(t.TempDir()+"/missing.obj")); err == nil {
		t.Error("OSFile read of missing file succeeded")
	}
	if OSFile("/tmp/dir/teapot.obj").Name() != "teapot.obj" {
		t.Error("OSFile.Name() should be the base name")
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		Reading: "reading", Delivered: "delivered", Cancelled: "cancelled",
		Failed: "failed", Superseded: "superseded", 42: "state(42)",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("String() = %q, want %q", s.String(), want)
		}
	}
	if Reading.Terminal() || !Superseded.Terminal() {
		t.Error("Terminal() misclassifies states")
	}
}
