// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build !darwin && !dragonfly && !freebsd && !linux && !netbsd && !openbsd && !windows

package metadata

import (
	"io/fs"
	"os"
	"time"
)

func set(path string, followLinks bool, a *attrs) error {
	switch {
	case a.flags():
		return unsupported("windows attributes")
	case a.owner != nil:
		return unsupported("owner")
	case a.created != nil:
		return unsupported("creation time")
	}
	if !followLinks {
		fi, err := os.Lstat(path)
		if err != nil {
			return err
		}
		if fi.Mode()&fs.ModeSymlink != 0 {
			return unsupported("attributes of a symbolic link")
		}
	}
	if a.mode != nil {
		if err := os.Chmod(path, fs.FileMode(a.mode.Permissions())); err != nil {
			return err
		}
	}
	if a.modified != nil || a.accessed != nil {
		// Zero times are left unchanged by os.Chtimes.
		var atime, mtime time.Time
		if a.accessed != nil {
			atime = *a.accessed
		}
		if a.modified != nil {
			mtime = *a.modified
		}
		return os.Chtimes(path, atime, mtime)
	}
	return nil
}
