// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

import (
	"fmt"

	"go.uber.org/zap"
)

// Opt configures a Watcher in New.
type Opt func(w *Watcher) (ret *Watcher, err error)

// WithRecursive makes the Watcher report events from the whole subtree of
// its root, including directories created after Start.
func WithRecursive(recursive bool) Opt {
	return func(w *Watcher) (*Watcher, error) {
		w.recursive = recursive
		return w, nil
	}
}

// WithEvents limits reported events to the given set. No events means All.
func WithEvents(events ...Event) Opt {
	return func(w *Watcher) (*Watcher, error) {
		e := joinevents(events)
		if e&^All != 0 {
			return nil, fmt.Errorf("%w: %#x", ErrUnknownEvent, uint32(e&^All))
		}
		w.events = e
		return w, nil
	}
}

// WithLogger sets the logger used for debug output. Defaults to a no-op
// logger.
func WithLogger(log *zap.SugaredLogger) Opt {
	return func(w *Watcher) (*Watcher, error) {
		w.log = log
		return w, nil
	}
}

// WithErrorHandler sets a function called on the dispatch goroutine with the
// error that terminated event delivery.
func WithErrorHandler(fn func(error)) Opt {
	return func(w *Watcher) (*Watcher, error) {
		w.onError = fn
		return w, nil
	}
}

// WithPortableBackend makes the Watcher use fsnotify instead of the native
// facility of the platform.
func WithPortableBackend() Opt {
	return func(w *Watcher) (*Watcher, error) {
		w.portable = true
		return w, nil
	}
}
