// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build dragonfly || linux || openbsd || solaris

package metadata

import (
	"time"

	"golang.org/x/sys/unix"
)

// birthTime falls back to the modification time where stat(2) has no
// birth time field.
func birthTime(st *unix.Stat_t) time.Time { return timespec(st.Mtim) }
