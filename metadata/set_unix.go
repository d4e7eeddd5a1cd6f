// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

package metadata

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

func set(path string, followLinks bool, a *attrs) error {
	if a.flags() {
		return unsupported("windows attributes")
	}
	flags := 0
	if !followLinks {
		flags = unix.AT_SYMLINK_NOFOLLOW
	}
	if a.mode != nil {
		err := unix.Fchmodat(unix.AT_FDCWD, path, uint32(a.mode.Permissions()), flags)
		if errors.Is(err, unix.EOPNOTSUPP) {
			return unsupported("mode of a symbolic link")
		}
		if err != nil {
			return &os.PathError{Op: "chmod", Path: path, Err: err}
		}
	}
	if a.owner != nil {
		if err := unix.Fchownat(unix.AT_FDCWD, path, a.owner.UID, a.owner.GID, flags); err != nil {
			return &os.PathError{Op: "chown", Path: path, Err: err}
		}
	}
	if a.modified != nil || a.accessed != nil {
		atime, err := omit(a.accessed)
		if err != nil {
			return &os.PathError{Op: "utimensat", Path: path, Err: err}
		}
		mtime, err := omit(a.modified)
		if err != nil {
			return &os.PathError{Op: "utimensat", Path: path, Err: err}
		}
		ts := []unix.Timespec{atime, mtime}
		if err := unix.UtimesNanoAt(unix.AT_FDCWD, path, ts, flags); err != nil {
			return &os.PathError{Op: "utimensat", Path: path, Err: err}
		}
	}
	if a.created != nil {
		return setCreationTime(path, followLinks, *a.created)
	}
	return nil
}

// omit converts t, leaving the time unchanged when t is nil. Times not
// representable by the platform fail with ERANGE.
func omit(t *time.Time) (unix.Timespec, error) {
	if t == nil {
		return unix.Timespec{Nsec: unix.UTIME_OMIT}, nil
	}
	return unix.TimeToTimespec(*t)
}
