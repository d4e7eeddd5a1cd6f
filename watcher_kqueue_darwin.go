// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build kqueue || !cgo

package notify

import "golang.org/x/sys/unix"

// openNotes opens descriptors used for notifications only, so that watching
// does not prevent a volume from being unmounted.
const openNotes = unix.O_EVTONLY
