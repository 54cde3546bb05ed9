// Package loop provides the cooperative task loop that confines all
// coordination state to one goroutine.
//
// Work that completes elsewhere (engine load, file reads) is posted back to
// the loop and runs on whichever goroutine drains it: Run in headless mode,
// or the window's draw callback via Drain.
package loop

import (
	"context"
	"sync"
	"sync/atomic"
)

// Loop is a FIFO of pending tasks.
//
// Thread safety: Post, Len and Close are safe for concurrent use. Drain and
// Run must be called from a single goroutine at a time.
type Loop struct {
	mu    sync.Mutex
	queue []func()

	// wake has capacity 1 so Post never blocks.
	wake chan struct{}

	closed atomic.Bool

	// onPost is called after every successful Post (e.g. request a redraw
	// so the window's draw callback drains the loop).
	onPost func()
}

// Option configures a Loop.
type Option func(*Loop)

// WithWakeHook installs fn to be called after each Post.
// fn runs on the posting goroutine and must not block.
func WithWakeHook(fn func()) Option {
	return func(l *Loop) {
		l.onPost = fn
	}
}

// New creates an empty loop.
func New(opts ...Option) *Loop {
	l := &Loop{wake: make(chan struct{}, 1)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Post queues fn. It reports false if the loop is closed or fn is nil.
func (l *Loop) Post(fn func()) bool {
	if fn == nil || l.closed.Load() {
		return false
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	if l.onPost != nil {
		l.onPost()
	}
	return true
}

// Len returns the number of queued tasks.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Drain runs queued tasks until the queue is empty, including tasks posted
// by the tasks themselves. It returns the number of tasks run.
func (l *Loop) Drain() int {
	n := 0
	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		if len(batch) == 0 {
			return n
		}
		for _, fn := range batch {
			fn()
			n++
		}
	}
}

// Run drains the loop whenever work is posted until ctx is done or the loop
// is closed. Remaining work is drained before returning.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			l.Drain()
			return ctx.Err()
		case <-l.wake:
			l.Drain()
			if l.closed.Load() {
				return nil
			}
		}
	}
}

// Close stops accepting work and wakes Run. Queued tasks still run on the
// next Drain. Close is idempotent.
func (l *Loop) Close() {
	if l.closed.Swap(true) {
		return
	}
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Closed reports whether Close has been called.
func (l *Loop) Closed() bool {
	return l.closed.Load()
}
