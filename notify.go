// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

// Package notify implements access to the filesystem event notification
// facilities of the OS: inotify on Linux, FSEvents or kqueue on Darwin, kqueue
// on BSD, ReadDirectoryChangesW on Windows and fsnotify anywhere else.
//
// A Watcher reports Create, Modify, Attributes and Delete events for the
// children of a single directory, or for its whole subtree. Events are
// delivered by calling a Func on a goroutine owned by the Watcher, in the
// order the OS reported them.
package notify

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	. "github.com/black-desk/lib/go/errwrap"
	"go.uber.org/zap"
)

// Watcher watches a single root directory.
type Watcher struct {
	root      string
	fn        Func
	events    Event
	recursive bool
	portable  bool
	log       *zap.SugaredLogger
	onError   func(error)

	// mu guards the registration table and the backend registrations.
	mu      sync.Mutex
	backend backend
	traits  trait
	reg     *registry
	emulate bool // recursion is emulated by registering every directory
	started bool
	err     error

	stopped    atomic.Bool
	dispatcher atomic.Uint64 // id of the dispatch goroutine
	done       chan struct{}

	// Owned by the dispatch goroutine.
	created map[string]struct{}
	renames *correlator
}

// New creates a Watcher for the directory root calling fn for every event.
// The native resource is acquired here, watching begins with Start.
func New(root string, fn Func, opts ...Opt) (w *Watcher, err error) {
	defer Wrap(&err, "create watcher for %q", root)

	if fn == nil {
		return nil, ErrNilFunc
	}
	if root, err = filepath.Abs(root); err != nil {
		return nil, err
	}
	fi, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, &fs.PathError{Op: "watch", Path: root, Err: ErrNotDirectory}
	}

	w = &Watcher{
		root:    root,
		fn:      fn,
		events:  All,
		log:     zap.NewNop().Sugar(),
		done:    make(chan struct{}),
		created: make(map[string]struct{}),
		renames: newCorrelator(),
	}
	for i := range opts {
		w, err = opts[i](w)
		if err != nil {
			return nil, err
		}
	}

	mask := w.events
	if w.recursive {
		mask |= Create | Delete
	}
	if w.backend == nil {
		if w.backend, err = newBackend(w.portable, mask, w.log); err != nil {
			return nil, err
		}
	}
	w.traits = traitsOf(w.backend)
	w.reg = newRegistry(root)

	w.log.Debugw("Watcher created.",
		"root", w.root,
		"events", w.events,
		"recursive", w.recursive,
		"portable", w.portable,
	)
	return w, nil
}

// Start registers the root, and every directory below it when watching
// recursively without native support, then starts delivering events. A
// registration error is returned here and releases the Watcher.
func (w *Watcher) Start() (err error) {
	defer Wrap(&err, "start watching %q", w.root)

	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case w.stopped.Load():
		return ErrStopped
	case w.started:
		return ErrStarted
	}
	if err = w.watch(w.root); err != nil {
		w.stopped.Store(true)
		if cerr := w.backend.close(); cerr != nil {
			w.log.Warnw("Failed to release backend.", "root", w.root, "error", cerr)
		}
		return err
	}
	w.started = true
	go w.loop()

	w.log.Infow("Watcher started.", "root", w.root, "watches", w.reg.len())
	return nil
}

// Stop halts event delivery and releases the native resource. Unless called
// from the Func or the error handler it waits for the dispatch goroutine to
// exit, so no Func call is running once it returns. It returns the error
// that terminated delivery, if any. Stop is idempotent.
func (w *Watcher) Stop() (err error) {
	defer Wrap(&err, "stop watching %q", w.root)

	w.mu.Lock()
	if !w.stopped.CompareAndSwap(false, true) {
		w.mu.Unlock()
		return w.Err()
	}
	started := w.started
	w.reg = newRegistry(w.root)
	cerr := w.backend.close()
	w.mu.Unlock()

	if started && goid() != w.dispatcher.Load() {
		<-w.done
	}
	w.log.Infow("Watcher stopped.", "root", w.root)

	return errors.Join(w.Err(), cerr)
}

// Err returns the error that terminated event delivery, nil while healthy.
func (w *Watcher) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Root gives the absolute path of the watched directory.
func (w *Watcher) Root() string { return w.root }

// Watches lists the directories currently registered with the backend.
func (w *Watcher) Watches() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reg.paths()
}

// watch registers dir according to the recursion mode. It expects w.mu to be
// held.
func (w *Watcher) watch(dir string) error {
	if w.recursive && !w.emulate {
		wd, err := w.backend.add(dir, true)
		if err == nil {
			w.insert(&watchpoint{path: dir, wd: wd, recursive: true})
			return nil
		}
		if !errors.Is(err, errNoNativeRecursion) {
			return err
		}
		w.emulate = true
		w.log.Debugw("Emulating recursive watch.", "root", w.root)
	}
	if !w.emulate {
		wd, err := w.backend.add(dir, false)
		if err != nil {
			return err
		}
		w.insert(&watchpoint{path: dir, wd: wd})
		return nil
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Entries may vanish while walking.
			if path != dir && errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		wd, err := w.backend.add(path, false)
		if err != nil {
			if path != dir && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipDir
			}
			return err
		}
		w.insert(&watchpoint{path: path, wd: wd})
		return nil
	})
}

func (w *Watcher) insert(wp *watchpoint) {
	for _, old := range w.reg.insert(wp) {
		w.log.Debugw("Watch replaced.", "path", old.path, "wd", old.wd)
	}
	w.log.Debugw("Watch registered.", "path", wp.path, "wd", wp.wd, "recursive", wp.recursive)
}

// unwatch drops the registrations of path and everything below it. The
// registration of keep is not removed from the backend since the OS already
// dropped it. It expects w.mu to be held.
func (w *Watcher) unwatch(path string, keep *watchpoint) {
	for _, wp := range w.reg.removeTree(path) {
		if wp == keep {
			continue
		}
		if err := w.backend.remove(wp.wd); err != nil {
			w.log.Debugw("Failed to remove watch.", "path", wp.path, "wd", wp.wd, "error", err)
			continue
		}
		w.log.Debugw("Watch removed.", "path", wp.path, "wd", wp.wd)
	}
}
