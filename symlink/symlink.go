// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

// Package symlink creates and reads symbolic links whose targets are kept
// exactly as written, including leading "./" segments that path cleaning
// would drop.
package symlink

import (
	"errors"
	"path/filepath"

	. "github.com/black-desk/lib/go/errwrap"
)

// ErrNotSymlink is returned when reading a file that is not a symbolic link.
var ErrNotSymlink = errors.New("not a symbolic link")

// CreateExact creates link pointing at the literal target string.
func CreateExact(link, target string) (err error) {
	defer Wrap(&err, "create symbolic link %q -> %q", link, target)
	return create(link, target)
}

// ReadExact returns the literal target string stored in link.
func ReadExact(link string) (target string, err error) {
	defer Wrap(&err, "read symbolic link %q", link)
	return read(link)
}

// Create creates link pointing at the cleaned target.
func Create(link, target string) error {
	return CreateExact(link, filepath.Clean(target))
}

// Read returns the cleaned target of link.
func Read(link string) (string, error) {
	target, err := ReadExact(link)
	if err != nil {
		return "", err
	}
	return filepath.Clean(target), nil
}
