// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build windows

package notify

import (
	"errors"
	"os"
	"sync"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

// readBufferSize is the size of the buffer ReadDirectoryChangesW fills in
// for each watched directory. It must not exceed 64KB for network shares.
const readBufferSize = 64 * 1024

// grip is a single watched directory. The buffer and the overlapped
// structure are owned by the system while a read is pending, so a grip is
// kept until the completion of its last read is dequeued.
type grip struct {
	wd        int
	path      string
	handle    windows.Handle
	recursive bool
	ov        windows.Overlapped
	buffer    [readBufferSize / 4]uint32 // DWORD-aligned
}

func (g *grip) bytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&g.buffer[0])), readBufferSize)
}

// readDirChanges asks the system to store changes in g's buffer and post a
// completion when any is available.
func (g *grip) readDirChanges(filter uint32) error {
	buf := g.bytes()
	err := windows.ReadDirectoryChanges(g.handle, &buf[0], uint32(len(buf)),
		g.recursive, filter, nil, &g.ov, 0)
	if err != nil {
		return &os.PathError{Op: "ReadDirectoryChangesW", Path: g.path, Err: err}
	}
	return nil
}

// readdcw is the Windows backend built on ReadDirectoryChangesW and an I/O
// completion port. Directories are watched natively with their subtrees.
type readdcw struct {
	port     windows.Handle
	filter   uint32
	modified Event // what FILE_ACTION_MODIFIED is reported as
	log      *zap.SugaredLogger

	mu      sync.Mutex
	next    int
	grips   map[int]*grip
	closing map[int]*grip // closed, waiting for the aborted read
	closed  bool
}

func newNative(mask Event, log *zap.SugaredLogger) (backend, error) {
	port, err := windows.CreateIoCompletionPort(windows.InvalidHandle, 0, 0, 0)
	if err != nil {
		return nil, os.NewSyscallError("CreateIoCompletionPort", err)
	}
	r := &readdcw{
		port:     port,
		filter:   encodeReaddcw(mask),
		modified: Modify,
		log:      log,
		grips:    make(map[int]*grip),
		closing:  make(map[int]*grip),
	}
	if mask&Modify == 0 && mask&Attributes != 0 {
		r.modified = Attributes
	}
	return r, nil
}

func (r *readdcw) add(path string, recursive bool) (int, error) {
	pathw, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return -1, err
	}
	h, err := windows.CreateFile(pathw,
		windows.FILE_LIST_DIRECTORY,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS|windows.FILE_FLAG_OVERLAPPED,
		0,
	)
	if err != nil {
		return -1, &os.PathError{Op: "CreateFile", Path: path, Err: err}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		windows.CloseHandle(h)
		return -1, errClosed
	}
	r.next++
	g := &grip{wd: r.next, path: path, handle: h, recursive: recursive}
	if _, err = windows.CreateIoCompletionPort(h, r.port, uintptr(g.wd), 0); err != nil {
		windows.CloseHandle(h)
		return -1, os.NewSyscallError("CreateIoCompletionPort", err)
	}
	if err = g.readDirChanges(r.filter); err != nil {
		windows.CloseHandle(h)
		return -1, err
	}
	r.grips[g.wd] = g
	return g.wd, nil
}

func (r *readdcw) remove(wd int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.grips[wd]
	if !ok {
		return nil
	}
	return r.release(g)
}

// release closes the handle of g, aborting its pending read. It expects r.mu
// to be held.
func (r *readdcw) release(g *grip) error {
	delete(r.grips, g.wd)
	r.closing[g.wd] = g
	if err := windows.CloseHandle(g.handle); err != nil {
		return os.NewSyscallError("CloseHandle", err)
	}
	return nil
}

func (r *readdcw) read() ([]rawEvent, error) {
	for {
		var (
			n   uint32
			key uintptr
			ov  *windows.Overlapped
		)
		err := windows.GetQueuedCompletionStatus(r.port, &n, &key, &ov, windows.INFINITE)

		r.mu.Lock()
		if r.closed {
			r.mu.Unlock()
			return nil, errClosed
		}
		if ov == nil {
			r.mu.Unlock()
			return nil, os.NewSyscallError("GetQueuedCompletionStatus", err)
		}
		wd := int(key)
		if _, ok := r.closing[wd]; ok {
			delete(r.closing, wd)
			r.mu.Unlock()
			continue
		}
		g, ok := r.grips[wd]
		if !ok {
			r.mu.Unlock()
			continue
		}
		batch, err := r.complete(g, n, err)
		r.mu.Unlock()
		if err != nil {
			return nil, err
		}
		if len(batch) != 0 {
			return batch, nil
		}
	}
}

// complete handles a dequeued completion of g and issues the next read. It
// expects r.mu to be held.
func (r *readdcw) complete(g *grip, n uint32, ioerr error) ([]rawEvent, error) {
	invalidated := []rawEvent{{wd: g.wd, invalidated: true}}
	switch {
	case errors.Is(ioerr, windows.ERROR_OPERATION_ABORTED):
		return nil, nil
	case errors.Is(ioerr, windows.ERROR_ACCESS_DENIED):
		// The directory itself was deleted.
		r.release(g)
		return invalidated, nil
	case ioerr != nil:
		return nil, &os.PathError{Op: "ReadDirectoryChangesW", Path: g.path, Err: ioerr}
	}

	var batch []rawEvent
	if n == 0 {
		r.log.Warnw("Change buffer overflowed, events were lost.", "path", g.path)
	} else {
		recs, err := readNotifyInformation(g.bytes()[:n])
		if err != nil {
			return nil, err
		}
		batch = make([]rawEvent, 0, len(recs))
		for _, rec := range recs {
			if e := decodeReaddcw(rec.action, r.modified); e != 0 {
				batch = append(batch, rawEvent{wd: g.wd, name: rec.name, kind: e})
			}
		}
	}
	if err := g.readDirChanges(r.filter); err != nil {
		r.log.Debugw("Failed to continue watching.", "path", g.path, "error", err)
		r.release(g)
		return append(batch, invalidated...), nil
	}
	return batch, nil
}

// close releases every directory and the completion port, waking up a
// blocked read.
func (r *readdcw) close() (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	for _, g := range r.grips {
		err = errors.Join(err, r.release(g))
	}
	if e := windows.CloseHandle(r.port); e != nil {
		err = errors.Join(err, os.NewSyscallError("CloseHandle", e))
	}
	return err
}
