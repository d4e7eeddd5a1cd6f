// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build linux

package notify

import (
	"errors"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// maxEventSize is the size of the largest struct inotify_event.
const maxEventSize = sizeofInotifyEvent + unix.PathMax + 1

// inotify is the Linux backend. The descriptor is non-blocking and read
// through the runtime poller, so closing the file wakes up a blocked read.
type inotify struct {
	fd   int
	file *os.File
	mask uint32
	log  *zap.SugaredLogger
	buf  [64 * maxEventSize]byte
}

func newNative(mask Event, log *zap.SugaredLogger) (backend, error) {
	return newInotify(mask, log)
}

func newInotify(mask Event, log *zap.SugaredLogger) (*inotify, error) {
	fd, err := unix.InotifyInit1(unix.IN_CLOEXEC | unix.IN_NONBLOCK)
	if err != nil {
		return nil, os.NewSyscallError("inotify_init1", err)
	}
	return &inotify{
		fd:   fd,
		file: os.NewFile(uintptr(fd), "inotify"),
		mask: encodeInotify(mask) | unix.IN_ONLYDIR,
		log:  log,
	}, nil
}

func (i *inotify) add(path string, recursive bool) (int, error) {
	if recursive {
		return -1, errNoNativeRecursion
	}
	wd, err := unix.InotifyAddWatch(i.fd, path, i.mask)
	if err != nil {
		return -1, &os.PathError{Op: "inotify_add_watch", Path: path, Err: err}
	}
	return wd, nil
}

func (i *inotify) remove(wd int) error {
	if _, err := unix.InotifyRmWatch(i.fd, uint32(wd)); err != nil {
		return os.NewSyscallError("inotify_rm_watch", err)
	}
	return nil
}

func (i *inotify) read() ([]rawEvent, error) {
	n, err := i.file.Read(i.buf[:])
	switch {
	case errors.Is(err, os.ErrClosed), errors.Is(err, io.EOF):
		return nil, errClosed
	case err != nil:
		return nil, os.NewSyscallError("read", err)
	}
	recs, err := readInotifyRecords(i.buf[:n])
	if err != nil {
		return nil, err
	}
	events := make([]rawEvent, 0, len(recs))
	for _, rec := range recs {
		if rec.mask&unix.IN_Q_OVERFLOW != 0 {
			i.log.Warnw("Inotify queue overflowed, events were lost.")
			continue
		}
		ev := rawEvent{
			wd:          int(rec.wd),
			name:        rec.name,
			kind:        decodeInotify(rec.mask),
			isDir:       boolean(rec.mask&unix.IN_ISDIR != 0),
			invalidated: rec.mask&unix.IN_IGNORED != 0,
		}
		if ev.kind == 0 && !ev.invalidated {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func (i *inotify) close() error {
	return i.file.Close()
}
