// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build darwin && !kqueue && cgo

package notify

// FSEventStreamEventFlags values.
const (
	fsEventsMustScanSubDirs = 0x00001
	fsEventsUserDropped     = 0x00002
	fsEventsKernelDropped   = 0x00004
	fsEventsRootChanged     = 0x00020
	fsEventsCreated         = 0x00100
	fsEventsRemoved         = 0x00200
	fsEventsInodeMetaMod    = 0x00400
	fsEventsRenamed         = 0x00800
	fsEventsModified        = 0x01000
	fsEventsChangeOwner     = 0x04000
	fsEventsXattrMod        = 0x08000
	fsEventsIsFile          = 0x10000
	fsEventsIsDir           = 0x20000
	fsEventsIsSymlink       = 0x40000

	// fsEventsDropped means events were lost and the subtree must be rescanned.
	fsEventsDropped = fsEventsMustScanSubDirs | fsEventsUserDropped | fsEventsKernelDropped
)

// fseventsEvents maps Event values onto item flags. Renames are reported
// for both names with the same flag and correlated by file identifier.
var fseventsEvents = [...]struct {
	e     Event
	flags uint32
}{
	{Create, fsEventsCreated},
	{Modify, fsEventsModified},
	{Attributes, fsEventsInodeMetaMod | fsEventsChangeOwner | fsEventsXattrMod},
	{Delete, fsEventsRemoved},
}

func decodeFSEvents(flags uint32) (e Event) {
	for _, fe := range fseventsEvents {
		if flags&fe.flags != 0 {
			e |= fe.e
		}
	}
	return
}

func fseventsIsDir(flags uint32) tribool {
	switch {
	case flags&fsEventsIsDir != 0:
		return yes
	case flags&(fsEventsIsFile|fsEventsIsSymlink) != 0:
		return no
	}
	return unknown
}
