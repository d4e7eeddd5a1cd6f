// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

import "github.com/fsnotify/fsnotify"

// fsnotifyOps maps fsnotify operations onto the events they stand for. A
// rename is only reported for the old name, the new one comes as Create.
var fsnotifyOps = [...]struct {
	op fsnotify.Op
	e  Event
}{
	{fsnotify.Create, Create},
	{fsnotify.Write, Modify},
	{fsnotify.Chmod, Attributes},
	{fsnotify.Remove, Delete},
	{fsnotify.Rename, Delete},
}

func decodeFsnotify(op fsnotify.Op) (e Event) {
	for _, m := range fsnotifyOps {
		if op.Has(m.op) {
			e |= m.e
		}
	}
	return e
}
