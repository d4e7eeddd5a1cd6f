// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build !windows

package symlink

import (
	"errors"
	"os"
	"syscall"
)

func create(link, target string) error {
	return os.Symlink(target, link)
}

func read(link string) (string, error) {
	target, err := os.Readlink(link)
	if errors.Is(err, syscall.EINVAL) {
		return "", ErrNotSymlink
	}
	return target, err
}
