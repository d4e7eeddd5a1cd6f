// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build windows

package metadata

import (
	"os"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

// fileBasicInfo mirrors FILE_BASIC_INFO. Zero fields are left unchanged.
type fileBasicInfo struct {
	CreationTime   int64
	LastAccessTime int64
	LastWriteTime  int64
	ChangeTime     int64
	FileAttributes uint32
}

// Number of 100ns intervals between 1601-01-01 and 1970-01-01.
const epochDelta = 116444736000000000

func fileTime(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.Unix()*1e7 + int64(t.Nanosecond()/100) + epochDelta
}

func set(path string, followLinks bool, a *attrs) error {
	switch {
	case a.mode != nil:
		return unsupported("mode")
	case a.owner != nil:
		return unsupported("owner")
	}
	h, err := open(path, fileReadAttributes|fileWriteAttributes, followLinks)
	if err != nil {
		return err
	}
	defer windows.CloseHandle(h)

	info := fileBasicInfo{
		CreationTime:   fileTime(a.created),
		LastAccessTime: fileTime(a.accessed),
		LastWriteTime:  fileTime(a.modified),
	}
	if a.flags() {
		var fi windows.ByHandleFileInformation
		if err = windows.GetFileInformationByHandle(h, &fi); err != nil {
			return &os.PathError{Op: "GetFileInformationByHandle", Path: path, Err: err}
		}
		info.FileAttributes = (fi.FileAttributes | a.set) &^ a.clear
		if info.FileAttributes == 0 {
			info.FileAttributes = windows.FILE_ATTRIBUTE_NORMAL
		}
	}
	err = windows.SetFileInformationByHandle(h, windows.FileBasicInfo,
		(*byte)(unsafe.Pointer(&info)), uint32(unsafe.Sizeof(info)))
	if err != nil {
		return &os.PathError{Op: "SetFileInformationByHandle", Path: path, Err: err}
	}
	return nil
}
