// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build linux

package notify

import "golang.org/x/sys/unix"

// inotifyEvents maps Event values onto inotify masks. A file moved into a
// watched directory is a Create, a file moved out of it is a Delete.
var inotifyEvents = [...]struct {
	e    Event
	mask uint32
}{
	{Create, unix.IN_CREATE | unix.IN_MOVED_TO},
	{Modify, unix.IN_MODIFY},
	{Attributes, unix.IN_ATTRIB},
	{Delete, unix.IN_DELETE | unix.IN_MOVED_FROM},
}

func encodeInotify(e Event) (mask uint32) {
	for _, ie := range inotifyEvents {
		if e&ie.e != 0 {
			mask |= ie.mask
		}
	}
	return
}

func decodeInotify(mask uint32) (e Event) {
	for _, ie := range inotifyEvents {
		if mask&ie.mask != 0 {
			e |= ie.e
		}
	}
	return
}
