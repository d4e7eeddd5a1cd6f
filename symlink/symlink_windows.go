// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build windows

package symlink

import (
	"errors"
	"os"
	"path/filepath"

	"golang.org/x/sys/windows"
)

const allowUnprivilegedCreate = 0x2

func create(link, target string) error {
	l, err := windows.UTF16PtrFromString(link)
	if err != nil {
		return err
	}
	t, err := windows.UTF16PtrFromString(target)
	if err != nil {
		return err
	}
	resolved := target
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(link), target)
	}
	var flags uint32
	if fi, err := os.Stat(resolved); err == nil && fi.IsDir() {
		flags |= windows.SYMBOLIC_LINK_FLAG_DIRECTORY
	}
	if err = windows.CreateSymbolicLink(l, t, flags); err == nil {
		return nil
	}
	// Developer mode lets unprivileged users create links with this flag.
	if err = windows.CreateSymbolicLink(l, t, flags|allowUnprivilegedCreate); err != nil {
		return &os.LinkError{Op: "symlink", Old: target, New: link, Err: err}
	}
	return nil
}

func read(link string) (string, error) {
	p, err := windows.UTF16PtrFromString(link)
	if err != nil {
		return "", err
	}
	h, err := windows.CreateFile(p, 0, 0, nil, windows.OPEN_EXISTING,
		windows.FILE_FLAG_OPEN_REPARSE_POINT|windows.FILE_FLAG_BACKUP_SEMANTICS, 0)
	if err != nil {
		return "", &os.PathError{Op: "open", Path: link, Err: err}
	}
	defer windows.CloseHandle(h)

	buf := make([]byte, windows.MAXIMUM_REPARSE_DATA_BUFFER_SIZE)
	var n uint32
	err = windows.DeviceIoControl(h, windows.FSCTL_GET_REPARSE_POINT, nil, 0,
		&buf[0], uint32(len(buf)), &n, nil)
	if errors.Is(err, windows.ERROR_NOT_A_REPARSE_POINT) {
		return "", ErrNotSymlink
	}
	if err != nil {
		return "", &os.PathError{Op: "readlink", Path: link, Err: err}
	}
	return parseReparse(buf[:n])
}
