// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build darwin && !kqueue && cgo

package notify

// #cgo LDFLAGS: -framework CoreServices
// #include <stdlib.h>
// #include <CoreServices/CoreServices.h>
// #include <dispatch/dispatch.h>
//
// FSEventStreamRef fswatch_create(uintptr_t info, const char *path);
// int fswatch_start(FSEventStreamRef ref, dispatch_queue_t queue);
// void fswatch_stop(FSEventStreamRef ref);
// dispatch_queue_t fswatch_queue(void);
// void fswatch_release(dispatch_queue_t queue);
import "C"

import (
	"errors"
	"os"
	"path/filepath"
	"runtime/cgo"
	"sync"
	"unsafe"

	"go.uber.org/zap"
)

var (
	errCreate = errors.New("FSEventStreamCreate returned NULL")
	errStart  = errors.New("FSEventStreamStart failed")
)

// fsevents is the Darwin backend. Streams are scheduled on a private
// dispatch queue, their callbacks hand batches over to read.
type fsevents struct {
	log     *zap.SugaredLogger
	queue   C.dispatch_queue_t
	batches chan []rawEvent
	done    chan struct{}

	mu      sync.Mutex
	next    int
	streams map[int]*fsstream
	retired []*fsstream // stopped, but their callbacks may still be queued
	closed  bool
}

type fsstream struct {
	stream
	b      *fsevents
	ref    C.FSEventStreamRef
	handle cgo.Handle
}

func newNative(mask Event, log *zap.SugaredLogger) (backend, error) {
	return &fsevents{
		log:     log,
		queue:   C.fswatch_queue(),
		batches: make(chan []rawEvent),
		done:    make(chan struct{}),
		streams: make(map[int]*fsstream),
	}, nil
}

func (f *fsevents) traits() trait {
	return traitSubtreeOnly | traitDuplicateCreate
}

// add starts a stream for path. FSEvents always watches whole subtrees.
func (f *fsevents) add(path string, recursive bool) (int, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return -1, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return -1, errClosed
	}
	f.next++
	s := &fsstream{b: f}
	s.wd, s.path, s.real, s.log = f.next, path, resolved, f.log
	s.handle = cgo.NewHandle(s)

	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	if s.ref = C.fswatch_create(C.uintptr_t(s.handle), cpath); s.ref == nil {
		s.handle.Delete()
		return -1, &os.PathError{Op: "watch", Path: path, Err: errCreate}
	}
	if C.fswatch_start(s.ref, f.queue) == 0 {
		s.handle.Delete()
		return -1, &os.PathError{Op: "watch", Path: path, Err: errStart}
	}
	f.streams[s.wd] = s
	return s.wd, nil
}

func (f *fsevents) remove(wd int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.streams[wd]
	if !ok {
		return nil
	}
	delete(f.streams, wd)
	f.stop(s)
	return nil
}

// stop halts s. Its handle stays valid until the queue is drained on close.
// It expects f.mu to be held.
func (f *fsevents) stop(s *fsstream) {
	s.removed.Store(true)
	C.fswatch_stop(s.ref)
	f.retired = append(f.retired, s)
}

func (f *fsevents) read() ([]rawEvent, error) {
	select {
	case batch := <-f.batches:
		return batch, nil
	case <-f.done:
		return nil, errClosed
	}
}

func (f *fsevents) close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	close(f.done)
	for wd, s := range f.streams {
		delete(f.streams, wd)
		f.stop(s)
	}
	retired := f.retired
	f.retired = nil
	f.mu.Unlock()

	C.fswatch_release(f.queue)
	for _, s := range retired {
		s.handle.Delete()
	}
	return nil
}

//export gostream
func gostream(info C.uintptr_t, n C.size_t, paths **C.char, flags *C.uint32_t, fileids *C.uint64_t) {
	s := cgo.Handle(info).Value().(*fsstream)
	if s.removed.Load() || n == 0 {
		return
	}
	cpaths := unsafe.Slice(paths, int(n))
	cflags := unsafe.Slice(flags, int(n))
	cids := unsafe.Slice(fileids, int(n))
	batch := make([]rawEvent, 0, int(n))
	for i := range cpaths {
		batch = s.translate(batch, fseventsRecord{
			path:   C.GoString(cpaths[i]),
			flags:  uint32(cflags[i]),
			fileID: uint64(cids[i]),
		})
	}
	if len(batch) == 0 {
		return
	}
	select {
	case s.b.batches <- batch:
	case <-s.b.done:
	}
}
