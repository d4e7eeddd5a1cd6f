// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package metadata

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

func statUnix(path string, followLinks bool) (*Unix, error) {
	var (
		st  unix.Stat_t
		err error
	)
	if followLinks {
		err = unix.Stat(path, &st)
	} else {
		err = unix.Lstat(path, &st)
	}
	if err != nil {
		return nil, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	return fromStat(&st), nil
}

func fromStat(st *unix.Stat_t) *Unix {
	mode := FileMode(st.Mode)
	return &Unix{
		Basic: Basic{
			Type:     kindOf(mode),
			Created:  birthTime(st),
			Modified: timespec(st.Mtim),
			Accessed: timespec(st.Atim),
			Length:   int64(st.Size),
		},
		Dev:     uint64(st.Dev),
		Ino:     uint64(st.Ino),
		Mode:    mode,
		Nlink:   uint64(st.Nlink),
		UID:     st.Uid,
		GID:     st.Gid,
		Rdev:    uint64(st.Rdev),
		Changed: timespec(st.Ctim),
	}
}

func timespec(ts unix.Timespec) time.Time {
	return time.Unix(ts.Unix())
}
