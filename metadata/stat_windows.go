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

// fileAttributeTagInfo mirrors FILE_ATTRIBUTE_TAG_INFO.
type fileAttributeTagInfo struct {
	FileAttributes uint32
	ReparseTag     uint32
}

func stat(path string, followLinks bool) (FileMetadata, error) {
	h, err := open(path, fileReadAttributes, followLinks)
	if err != nil {
		return nil, err
	}
	defer windows.CloseHandle(h)

	var fi windows.ByHandleFileInformation
	if err = windows.GetFileInformationByHandle(h, &fi); err != nil {
		return nil, &os.PathError{Op: "GetFileInformationByHandle", Path: path, Err: err}
	}
	var tag fileAttributeTagInfo
	if fi.FileAttributes&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0 {
		err = windows.GetFileInformationByHandleEx(h, windows.FileAttributeTagInfo,
			(*byte)(unsafe.Pointer(&tag)), uint32(unsafe.Sizeof(tag)))
		if err != nil {
			return nil, &os.PathError{Op: "GetFileInformationByHandleEx", Path: path, Err: err}
		}
	}
	return fromFileInformation(&fi, tag.ReparseTag), nil
}

func fromFileInformation(fi *windows.ByHandleFileInformation, reparseTag uint32) *Windows {
	attrs := fi.FileAttributes
	kind := KindRegular
	switch {
	case attrs&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0 && reparseTag == windows.IO_REPARSE_TAG_SYMLINK:
		kind = KindSymlink
	case attrs&windows.FILE_ATTRIBUTE_DIRECTORY != 0:
		kind = KindDirectory
	case attrs&windows.FILE_ATTRIBUTE_DEVICE != 0:
		kind = KindOther
	}
	return &Windows{
		Basic: Basic{
			Type:     kind,
			Created:  filetime(fi.CreationTime),
			Modified: filetime(fi.LastWriteTime),
			Accessed: filetime(fi.LastAccessTime),
			Length:   int64(fi.FileSizeHigh)<<32 | int64(fi.FileSizeLow),
		},
		ReadOnly: attrs&FlagReadOnly != 0,
		Archive:  attrs&FlagArchive != 0,
		System:   attrs&FlagSystem != 0,
		Hidden:   attrs&FlagHidden != 0,
	}
}

func filetime(ft windows.Filetime) time.Time {
	return time.Unix(0, ft.Nanoseconds())
}
