// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build (darwin && (kqueue || !cgo)) || dragonfly || freebsd || netbsd || openbsd

package notify

import "golang.org/x/sys/unix"

const (
	// noteDir is the filter registered for watched directories. Writes to a
	// directory mean its list of entries changed.
	noteDir = unix.NOTE_WRITE | unix.NOTE_ATTRIB | unix.NOTE_DELETE |
		unix.NOTE_RENAME | unix.NOTE_REVOKE
	// noteGone marks a directory whose registration is no longer valid.
	noteGone = unix.NOTE_DELETE | unix.NOTE_RENAME | unix.NOTE_REVOKE
	// noteFile is the filter registered for files within watched
	// directories.
	noteFile = unix.NOTE_WRITE | unix.NOTE_EXTEND | unix.NOTE_ATTRIB | unix.NOTE_LINK
)

// kqueueEvents maps Event values reported for files onto vnode notes.
// Creation and removal are never reported by a file itself, they are found
// by rescanning its directory.
var kqueueEvents = [...]struct {
	e     Event
	notes uint32
}{
	{Modify, unix.NOTE_WRITE | unix.NOTE_EXTEND},
	{Attributes, unix.NOTE_ATTRIB | unix.NOTE_LINK},
}

func decodeKqueue(notes uint32) (e Event) {
	for _, ke := range kqueueEvents {
		if notes&ke.notes != 0 {
			e |= ke.e
		}
	}
	return
}
