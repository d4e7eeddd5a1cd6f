// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

import (
	"errors"

	"go.uber.org/zap"
)

// backend wraps a native filesystem event notification facility: inotify,
// kqueue, FSEvents, ReadDirectoryChangesW or fsnotify.
//
// Paths passed to add are absolute and clean. All methods but read and close
// are called with the Watcher's mutex held, read is only ever called from the
// dispatch goroutine, close may be called concurrently with a blocked read.
type backend interface {
	// add starts watching the direct children of path, or its whole subtree
	// when recursive is set. A backend that cannot watch a subtree with one
	// registration returns errNoNativeRecursion and registers nothing.
	add(path string, recursive bool) (wd int, err error)

	// remove stops the registration identified by wd. Removing a
	// registration the OS already dropped is not an error worth reporting.
	remove(wd int) error

	// read blocks until a batch of raw events is available. After close it
	// returns errClosed.
	read() ([]rawEvent, error)

	// close releases the native resource and wakes up a blocked read.
	close() error
}

// trait describes quirks of a backend the dispatcher compensates for.
type trait uint8

const (
	// traitDuplicateCreate: Create may be reported more than once for the
	// same path.
	traitDuplicateCreate trait = 1 << iota
	// traitSubtreeOnly: the backend always reports events from the whole
	// subtree, even for non-recursive registrations.
	traitSubtreeOnly
)

type traiter interface {
	traits() trait
}

func traitsOf(b backend) trait {
	if t, ok := b.(traiter); ok {
		return t.traits()
	}
	return 0
}

var (
	errNoNativeRecursion = errors.New("recursive watching is not supported natively")
	errClosed            = errors.New("backend closed")
)

// tribool is a boolean that may be unknown.
type tribool uint8

const (
	unknown tribool = iota
	yes
	no
)

func boolean(b bool) tribool {
	if b {
		return yes
	}
	return no
}

// rawEvent is a notification translated from the native format but not yet
// resolved against the registration table.
type rawEvent struct {
	wd   int
	name string // relative to the registration; empty for the directory itself
	kind Event  // may hold several values or none
	// isDir tells whether the subject is a directory, if the backend knows.
	isDir tribool
	// renameID correlates the two halves of a rename reported as separate
	// records; zero when not a rename.
	renameID uint64
	// invalidated is set when the OS dropped the registration itself.
	invalidated bool
}

// newBackend gives the backend for the platform, or the fsnotify one when
// portable is set. mask is the set of events the Watcher needs to see.
func newBackend(portable bool, mask Event, log *zap.SugaredLogger) (backend, error) {
	if portable {
		return newFsnotify(mask, log)
	}
	return newNative(mask, log)
}
