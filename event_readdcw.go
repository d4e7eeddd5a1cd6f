// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build windows

package notify

import "golang.org/x/sys/windows"

// fileNotifyChangeSecurity is missing from older headers.
const fileNotifyChangeSecurity = 0x00000100

// readdcwFilters maps Event values onto ReadDirectoryChangesW notify
// filters.
var readdcwFilters = [...]struct {
	e      Event
	filter uint32
}{
	{Create, windows.FILE_NOTIFY_CHANGE_FILE_NAME | windows.FILE_NOTIFY_CHANGE_DIR_NAME},
	{Modify, windows.FILE_NOTIFY_CHANGE_LAST_WRITE | windows.FILE_NOTIFY_CHANGE_SIZE},
	{Attributes, windows.FILE_NOTIFY_CHANGE_ATTRIBUTES | windows.FILE_NOTIFY_CHANGE_CREATION |
		fileNotifyChangeSecurity},
	{Delete, windows.FILE_NOTIFY_CHANGE_FILE_NAME | windows.FILE_NOTIFY_CHANGE_DIR_NAME},
}

func encodeReaddcw(e Event) (filter uint32) {
	for _, rf := range readdcwFilters {
		if e&rf.e != 0 {
			filter |= rf.filter
		}
	}
	return
}

// decodeReaddcw translates a FILE_NOTIFY_INFORMATION action. The old name
// of a rename is a Delete, the new one a Create. A modification does not
// tell whether contents or attributes changed, it is reported as modified.
func decodeReaddcw(action uint32, modified Event) Event {
	switch action {
	case windows.FILE_ACTION_ADDED, windows.FILE_ACTION_RENAMED_NEW_NAME:
		return Create
	case windows.FILE_ACTION_REMOVED, windows.FILE_ACTION_RENAMED_OLD_NAME:
		return Delete
	case windows.FILE_ACTION_MODIFIED:
		return modified
	}
	return 0
}
