// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/enginehost/capability"
	"github.com/gogpu/enginehost/engine"
	"github.com/gogpu/enginehost/internal/hostlog"
)

// State is the phase of one file read.
type State uint8

const (
	// Reading means the content is being read.
	Reading State = iota

	// Delivered means the content was handed to the gate. Status.Outcome
	// tells whether the engine accepted it.
	Delivered

	// Cancelled means no file was chosen or the read was cancelled by the
	// caller's context.
	Cancelled

	// Failed means the file could not be read.
	Failed

	// Superseded means a newer selection replaced this one before it
	// finished. Its content is dropped.
	Superseded
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Reading:
		return "reading"
	case Delivered:
		return "delivered"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	case Superseded:
		return "superseded"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Terminal reports whether s ends a read.
func (s State) Terminal() bool { return s != Reading }

// Status reports the progress of one Submit.
type Status struct {
	ID      uint64
	Name    string
	State   State
	Bytes   int
	Outcome capability.Outcome
	Err     error
}

// Invoker is the part of capability.Gate that Pipeline needs.
type Invoker interface {
	Invoke(name string, args ...any) capability.Result
}

// Poster hands work to the loop goroutine.
type Poster interface {
	Post(fn func()) bool
}

// Pipeline reads selected files and passes their text to the engine.
//
// A newer Submit supersedes any read still in flight: the earlier read's
// context is cancelled and its result is dropped even if it completes later.
// Submit, OnStatus and completions run on the loop goroutine.
type Pipeline struct {
	gate   Invoker
	post   Poster
	logger *slog.Logger

	gen    uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// orphaned is set once a result could not be posted back. The loop is
	// closed by then and no later read can complete either.
	orphaned atomic.Bool

	onStatus []func(Status)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// NewPipeline creates a pipeline.
func NewPipeline(gate Invoker, post Poster, opts ...Option) *Pipeline {
	p := &Pipeline{gate: gate, post: post}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = hostlog.Or(p.logger)
	return p
}

// OnStatus registers fn to observe every status change.
func (p *Pipeline) OnStatus(fn func(Status)) {
	if fn != nil {
		p.onStatus = append(p.onStatus, fn)
	}
}

// Submit starts reading f and returns the read id.
//
// A nil f means the selection was dismissed: it reports Cancelled and
// leaves any in-flight read alone.
func (p *Pipeline) Submit(ctx context.Context, f File) uint64 {
	if f == nil {
		p.emit(Status{State: Cancelled})
		p.logger.Info("ingest: no file selected")
		return 0
	}

	p.gen++
	id := p.gen
	if p.cancel != nil {
		p.cancel()
	}
	rctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	name := f.Name()
	p.emit(Status{ID: id, Name: name, State: Reading})

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		text, err := readAll(rctx, f)
		if !p.post.Post(func() { p.finish(id, name, text, err) }) {
			p.orphaned.Store(true)
			cancel()
			p.logger.Debug("ingest: read finished after loop closed", "file", name, "id", id)
		}
	}()
	return id
}

func (p *Pipeline) finish(id uint64, name, text string, err error) {
	st := Status{ID: id, Name: name, Err: err}
	if id != p.gen {
		st.State = Superseded
		p.logger.Debug("ingest: dropped superseded read", "file", name, "id", id)
		p.emit(st)
		return
	}
	p.cancel()
	p.cancel = nil

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		st.State = Cancelled
		p.logger.Info("ingest: read cancelled", "file", name)
	case err != nil:
		st.State = Failed
		p.logger.Warn("ingest: read failed", "file", name, "error", err)
	default:
		r := p.gate.Invoke(engine.ProcessFileContent, text)
		st.State = Delivered
		st.Bytes = len(text)
		st.Outcome = r.Outcome
		st.Err = r.Err
		p.logger.Info("ingest: content delivered", "file", name, "bytes", len(text),
			"outcome", r.Outcome.String())
	}
	p.emit(st)
}

// Pending reports whether the latest read is still in flight. It is false
// once a result has been dropped because the loop closed.
func (p *Pipeline) Pending() bool {
	return p.cancel != nil && !p.orphaned.Load()
}

// Wait blocks until every reader goroutine has posted its result.
func (p *Pipeline) Wait() {
	p.wg.Wait()
}

func (p *Pipeline) emit(st Status) {
	for _, fn := range p.onStatus {
		fn(st)
	}
}
