// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build darwin

package metadata

import (
	"os"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

func setCreationTime(path string, followLinks bool, t time.Time) error {
	list := unix.Attrlist{
		Bitmapcount: unix.ATTR_BIT_MAP_COUNT,
		Commonattr:  unix.ATTR_CMN_CRTIME,
	}
	ts, err := unix.TimeToTimespec(t)
	if err != nil {
		return &os.PathError{Op: "setattrlist", Path: path, Err: err}
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&ts)), unsafe.Sizeof(ts))
	opts := 0
	if !followLinks {
		opts = unix.FSOPT_NOFOLLOW
	}
	if err := unix.Setattrlist(path, &list, buf, opts); err != nil {
		return &os.PathError{Op: "setattrlist", Path: path, Err: err}
	}
	return nil
}
