// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build linux

package metadata

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

func stat(path string, followLinks bool) (FileMetadata, error) {
	md, err := statx(path, followLinks)
	if errors.Is(err, unix.ENOSYS) {
		return statUnix(path, followLinks)
	}
	return md, err
}

func statx(path string, followLinks bool) (*Unix, error) {
	flags := unix.AT_STATX_SYNC_AS_STAT
	if !followLinks {
		flags |= unix.AT_SYMLINK_NOFOLLOW
	}
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, flags, unix.STATX_BASIC_STATS|unix.STATX_BTIME, &stx)
	if err != nil {
		return nil, &os.PathError{Op: "statx", Path: path, Err: err}
	}
	return fromStatx(&stx), nil
}

func fromStatx(stx *unix.Statx_t) *Unix {
	mode := FileMode(stx.Mode)
	mtime := statxTime(stx.Mtime)
	created := mtime
	// Not every filesystem records a birth time.
	if stx.Mask&unix.STATX_BTIME != 0 {
		created = statxTime(stx.Btime)
	}
	return &Unix{
		Basic: Basic{
			Type:     kindOf(mode),
			Created:  created,
			Modified: mtime,
			Accessed: statxTime(stx.Atime),
			Length:   int64(stx.Size),
		},
		Dev:     unix.Mkdev(stx.Dev_major, stx.Dev_minor),
		Ino:     stx.Ino,
		Mode:    mode,
		Nlink:   uint64(stx.Nlink),
		UID:     stx.Uid,
		GID:     stx.Gid,
		Rdev:    unix.Mkdev(stx.Rdev_major, stx.Rdev_minor),
		Changed: statxTime(stx.Ctime),
	}
}

func statxTime(ts unix.StatxTimestamp) time.Time {
	return time.Unix(ts.Sec, int64(ts.Nsec))
}
