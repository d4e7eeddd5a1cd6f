// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

import (
	"bytes"
	"os"
	"runtime"
	"strconv"
)

const sep = string(os.PathSeparator)

// joinevents sums the event set; no events means All.
func joinevents(events []Event) (e Event) {
	if len(events) == 0 {
		e = All
	} else {
		for _, event := range events {
			e |= event
		}
	}
	return
}

func split(s string) (string, string) {
	if i := lastIndexSep(s); i != -1 {
		return s[:i], s[i+1:]
	}
	return "", s
}

func indexSep(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == os.PathSeparator {
			return i
		}
	}
	return -1
}

func lastIndexSep(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == os.PathSeparator {
			return i
		}
	}
	return -1
}

// join appends a relative name reported by a backend to a registered path.
func join(dir, name string) string {
	switch {
	case name == "":
		return dir
	case dir == "" || dir[len(dir)-1] == os.PathSeparator:
		return dir + name
	}
	return dir + sep + name
}

// depth gives the number of path elements name has below root, or -1 when
// name is not within root.
func depth(root, name string) int {
	i := baseIndex(root, name)
	if i == -1 {
		return -1
	}
	if i == len(name) {
		if len(name) == len(root) {
			return 0
		}
		return 1
	}
	n := 1
	for j := indexSep(name[i:]); j != -1; j = indexSep(name[i:]) {
		n++
		i += j + 1
	}
	return n
}

// goid returns the id of the calling goroutine as printed in its stack
// trace, e.g. "goroutine 42 [running]:".
func goid() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i != -1 {
		b = b[:i]
	}
	id, _ := strconv.ParseUint(string(b), 10, 64)
	return id
}
