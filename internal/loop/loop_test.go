package loop

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestDrainRunsInOrder(t *testing.T) {
	l := New()
	var got []int
	for i := range 5 {
		l.Post(func() { got = append(got, i) })
	}
	if n := l.Len(); n != 5 {
		t.Fatalf("Len() = %d, want 5", n)
	}
	if n := l.Drain(); n != 5 {
		t.Errorf("Drain() = %d, want 5", n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("order = %v, want ascending", got)
		}
	}
}

func TestDrainIncludesNestedPosts(t *testing.T) {
	l := New()
	var ran []string
	l.Post(func() {
		ran = append(ran, "outer")
		l.Post(func() { ran = append(ran, "inner") })
	})
	if n := l.Drain(); n != 2 {
		t.Errorf("Drain() = %d, want 2", n)
	}
	if len(ran) != 2 || ran[1] != "inner" {
		t.Errorf("ran = %v", ran)
	}
}

func TestPostAfterClose(t *testing.T) {
	l := New()
	l.Close()
	l.Close() // idempotent
	if l.Post(func() {}) {
		t.Error("Post after Close should report false")
	}
	if l.Post(nil) {
		t.Error("Post(nil) should report false")
	}
	if !l.Closed() {
		t.Error("Closed() = false after Close")
	}
}

func TestWakeHook(t *testing.T) {
	calls := 0
	l := New(WithWakeHook(func() { calls++ }))
	l.Post(func() {})
	l.Post(func() {})
	if calls != 2 {
		t.Errorf("wake hook calls = %d, want 2", calls)
	}
}

func TestRunProcessesConcurrentPosts(t *testing.T) {
	l := New()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	const posters = 20
	var mu sync.Mutex
	count := 0
	done := make(chan struct{})

	var wg sync.WaitGroup
	for range posters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Post(func() {
				mu.Lock()
				count++
				if count == posters {
					close(done)
				}
				mu.Unlock()
			})
		}()
	}

	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()

	wg.Wait()
	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("timed out waiting for posted tasks")
	}
	l.Close()
	if err := <-errc; err != nil {
		t.Errorf("Run() = %v, want nil after Close", err)
	}
}

func TestRunStopsOnContext(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}
