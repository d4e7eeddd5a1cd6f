// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

import "errors"

var (
	ErrStarted      = errors.New("watcher already started")
	ErrStopped      = errors.New("watcher stopped")
	ErrNotDirectory = errors.New("not a directory")
	ErrNilFunc      = errors.New("nil event func")
	ErrUnknownEvent = errors.New("unknown event")

	// ErrShortRead is returned when a native event buffer ends in the middle
	// of a record. It is fatal to the watcher.
	ErrShortRead = errors.New("short read of native event buffer")
)
