// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build darwin || dragonfly || freebsd || netbsd || openbsd || solaris

package metadata

func stat(path string, followLinks bool) (FileMetadata, error) {
	return statUnix(path, followLinks)
}
