// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package stream

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"sync"
)

// Handle owns a single native descriptor and exposes it as both a Source and
// a Sink. The descriptor is released exactly once.
type Handle struct {
	mu     sync.Mutex
	f      *os.File
	closed bool
}

// NewHandle takes ownership of f.
func NewHandle(f *os.File) *Handle {
	return &Handle{f: f}
}

// Read reads up to len(p) bytes. It returns io.EOF once the peer closed its
// end, and fs.ErrClosed after Close.
func (h *Handle) Read(p []byte) (n int, err error) {
	f, err := h.file()
	if err != nil {
		return 0, err
	}
	n, err = f.Read(p)
	if errors.Is(err, os.ErrClosed) {
		err = fs.ErrClosed
	}
	return
}

// Write writes all of p or fails; a partial write is reported as
// io.ErrShortWrite.
func (h *Handle) Write(p []byte) (n int, err error) {
	f, err := h.file()
	if err != nil {
		return 0, err
	}
	n, err = f.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return
}

// Flush is a no-op: writes go straight to the descriptor.
func (h *Handle) Flush() error {
	_, err := h.file()
	return err
}

// Close releases the descriptor. Subsequent calls return nil.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	return h.f.Close()
}

// Fd returns the underlying descriptor.
func (h *Handle) Fd() uintptr {
	return h.f.Fd()
}

func (h *Handle) file() (*os.File, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, fs.ErrClosed
	}
	return h.f, nil
}
