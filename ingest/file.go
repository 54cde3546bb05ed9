// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ingest

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File is a user-selected file. Open is called once, on a reader goroutine.
type File interface {
	Name() string
	Open() (io.ReadCloser, error)
}

type osFile string

// OSFile returns a File for a path on the local file system.
func OSFile(path string) File { return osFile(path) }

func (f osFile) Name() string                 { return filepath.Base(string(f)) }
func (f osFile) Open() (io.ReadCloser, error) { return os.Open(string(f)) }

type fsFile struct {
	fsys fs.FS
	name string
}

// FSFile returns a File read from fsys.
func FSFile(fsys fs.FS, name string) File { return fsFile{fsys, name} }

func (f fsFile) Name() string                 { return f.name }
func (f fsFile) Open() (io.ReadCloser, error) { return f.fsys.Open(f.name) }

type memFile struct {
	name string
	data []byte
}

// BytesFile returns a File holding data in memory.
func BytesFile(name string, data []byte) File { return memFile{name, data} }

func (f memFile) Name() string { return f.name }
func (f memFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

// ctxReader stops reading once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// readAll reads the whole of f as text. Content is not validated.
func readAll(ctx context.Context, f File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var sb strings.Builder
	if _, err := io.Copy(&sb, ctxReader{ctx, rc}); err != nil {
		return "", err
	}
	return sb.String(), nil
}
