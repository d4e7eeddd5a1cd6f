// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build dragonfly || freebsd || netbsd || openbsd

package notify

import "golang.org/x/sys/unix"

const openNotes = unix.O_RDONLY
