// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ingest

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/enginehost/internal/hostlog"
)

const defaultWatchDebounce = 250 * time.Millisecond

// ErrEmptyPath is returned by NewWatcher for an empty path.
var ErrEmptyPath = errors.New("ingest: watch path required")

// Watcher re-selects a file whenever it changes on disk.
// Bursts of events within the debounce window produce one callback.
type Watcher struct {
	path     string
	onChange func(File)
	logger   *slog.Logger
	debounce time.Duration

	mu       sync.Mutex
	timer    *time.Timer
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	stopOnce sync.Once
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets the debounce window.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithWatchLogger sets the logger.
func WithWatchLogger(l *slog.Logger) WatchOption {
	return func(w *Watcher) {
		w.logger = l
	}
}

// NewWatcher watches path and calls onChange from a timer goroutine.
// Callers post onChange's work to the loop.
func NewWatcher(path string, onChange func(File), opts ...WatchOption) (*Watcher, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	w := &Watcher{
		path:     filepath.Clean(path),
		onChange: onChange,
		debounce: defaultWatchDebounce,
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = hostlog.Or(w.logger)
	return w, nil
}

// Start begins watching. The watch stops when ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.watcher != nil {
		w.mu.Unlock()
		return nil
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	// Watch the directory so editors that replace the file are seen.
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		w.mu.Unlock()
		return err
	}
	w.watcher = fw
	w.mu.Unlock()

	go w.watchLoop(fw)
	go func() {
		select {
		case <-ctx.Done():
			w.Stop()
		case <-w.stopCh:
		}
	}()
	w.logger.Info("ingest: watching file", "path", w.path)
	return nil
}

// Stop ends the watch. It is idempotent.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
			w.timer = nil
		}
		if w.watcher != nil {
			_ = w.watcher.Close()
			w.watcher = nil
		}
		w.mu.Unlock()
	})
}

func (w *Watcher) watchLoop(fw *fsnotify.Watcher) {
	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("ingest: watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.stopCh:
			return
		default:
		}
		w.logger.Debug("ingest: watched file changed", "path", w.path)
		w.onChange(OSFile(w.path))
	})
}
