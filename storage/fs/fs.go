// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fs provides a backend-agnostic filesystem layer for archiving
// the raw tool output behind each upload.
package fs

import (
	"bytes"
	"errors"
	"io"
	"sort"
	"sync"

	"golang.org/x/net/context"
)

// An FS stores uploaded benchmark data files.
type FS interface {
	// NewWriter returns a Writer for a given file name.
	// When the Writer is closed, the file will be stored with the
	// given metadata.
	NewWriter(ctx context.Context, name string, metadata map[string]string) (Writer, error)
}

// Writer is the interface for writing to a file.
type Writer interface {
	io.WriteCloser

	// CloseWithError aborts the write. The file is not stored.
	CloseWithError(error) error
}

// MemFS is an in-memory filesystem implementing the FS interface.
type MemFS struct {
	mu      sync.Mutex
	content map[string]*memFile
}

// NewMemFS constructs a new, empty MemFS.
func NewMemFS() *MemFS {
	return &MemFS{
		content: make(map[string]*memFile),
	}
}

// NewWriter returns a Writer for a given file name. As a side effect,
// it associates the given metadata with the file.
func (fs *MemFS) NewWriter(_ context.Context, name string, metadata map[string]string) (Writer, error) {
	meta := make(map[string]string)
	for k, v := range metadata {
		meta[k] = v
	}
	return &memWriter{fs: fs, name: name, metadata: meta}, nil
}

// Files returns the names of the files written to fs, in sorted order.
func (fs *MemFS) Files() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var files []string
	for f := range fs.content {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// File returns the content and metadata of the named file.
// It reports false if the file was never stored.
func (fs *MemFS) File(name string) (content []byte, metadata map[string]string, ok bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	f, ok := fs.content[name]
	if !ok {
		return nil, nil, false
	}
	return f.content, f.metadata, true
}

// memFile represents a file in a MemFS. While the file is being
// written, fs.mu must not be held; the file is added to the MemFS
// only when it is closed.
type memFile struct {
	metadata map[string]string
	content  []byte
}

type memWriter struct {
	fs       *MemFS
	name     string
	metadata map[string]string
	buf      bytes.Buffer
	closed   bool
}

var errClosed = errors.New("write on closed file")

func (w *memWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errClosed
	}
	return w.buf.Write(p)
}

func (w *memWriter) Close() error {
	if w.closed {
		return errClosed
	}
	w.closed = true
	w.fs.mu.Lock()
	defer w.fs.mu.Unlock()
	w.fs.content[w.name] = &memFile{metadata: w.metadata, content: w.buf.Bytes()}
	return nil
}

func (w *memWriter) CloseWithError(error) error {
	w.closed = true
	w.buf.Reset()
	return nil
}
