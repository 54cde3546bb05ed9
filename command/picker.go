// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package command

import (
	"context"

	"github.com/gogpu/enginehost/ingest"
)

// FilePicker is the file-selection surface. Pick returns a nil File when
// the user dismisses it.
type FilePicker interface {
	Pick(ctx context.Context) (ingest.File, error)
}

// FilePickerFunc adapts a function to FilePicker.
type FilePickerFunc func(ctx context.Context) (ingest.File, error)

// Pick calls f(ctx).
func (f FilePickerFunc) Pick(ctx context.Context) (ingest.File, error) {
	return f(ctx)
}

// PathPicker picks from a fixed list of paths, one per call.
// Once the list is used up every Pick is a dismissal.
type PathPicker struct {
	paths []string
	next  int
}

// NewPathPicker returns a picker over paths.
func NewPathPicker(paths ...string) *PathPicker {
	return &PathPicker{paths: append([]string(nil), paths...)}
}

// Pick returns the next path as a File.
func (p *PathPicker) Pick(ctx context.Context) (ingest.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.next >= len(p.paths) {
		return nil, nil
	}
	path := p.paths[p.next]
	p.next++
	return ingest.OSFile(path), nil
}

// Remaining returns how many paths are left.
func (p *PathPicker) Remaining() int {
	return len(p.paths) - p.next
}
