// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

import (
	"errors"
	"io/fs"
	"os"
)

// loop delivers events until the backend is closed or fails.
func (w *Watcher) loop() {
	w.dispatcher.Store(goid())
	defer close(w.done)
	for {
		batch, err := w.backend.read()
		if err != nil {
			if w.stopped.Load() || errors.Is(err, errClosed) {
				return
			}
			w.fail(err)
			return
		}
		if err = w.dispatch(batch); err != nil {
			w.fail(err)
			return
		}
		if w.stopped.Load() {
			return
		}
	}
}

// fail terminates event delivery with err.
func (w *Watcher) fail(err error) {
	w.mu.Lock()
	w.err = err
	alreadyStopped := w.stopped.Swap(true)
	if !alreadyStopped {
		if cerr := w.backend.close(); cerr != nil {
			w.log.Warnw("Failed to release backend.", "root", w.root, "error", cerr)
		}
	}
	w.mu.Unlock()

	w.log.Errorw("Watcher failed.", "root", w.root, "error", err)
	if w.onError != nil {
		w.onError(err)
	}
}

// dispatch resolves a batch of raw events and calls the Func for each of the
// accepted ones, in batch order.
func (w *Watcher) dispatch(batch []rawEvent) error {
	for i := range batch {
		ev := &batch[i]
		wp, path, ok := w.resolve(ev)
		if !ok {
			continue
		}
		if ev.invalidated {
			w.invalidate(wp)
			continue
		}
		// Sub-directories report changes to themselves; their parents report
		// the same changes on their behalf.
		if ev.name == "" && wp.path != w.root {
			continue
		}
		if w.traits&traitSubtreeOnly != 0 && !w.recursive && depth(w.root, path) > 1 {
			continue
		}
		if ev.renameID != 0 {
			if old, ok := w.renames.pair(ev.renameID, path); ok {
				if err := w.emit(Delete, old, unknown, false); err != nil {
					return err
				}
				if err := w.emit(Create, path, ev.isDir, true); err != nil {
					return err
				}
			}
		}
		for _, e := range events {
			if ev.kind&e == 0 {
				continue
			}
			if err := w.emit(e, path, ev.isDir, false); err != nil {
				return err
			}
		}
	}
	for _, old := range w.renames.flush() {
		if err := w.emit(Delete, old, unknown, false); err != nil {
			return err
		}
	}
	return nil
}

func (w *Watcher) resolve(ev *rawEvent) (*watchpoint, string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	wp := w.reg.byWd(ev.wd)
	if wp == nil {
		return nil, "", false
	}
	return wp, join(wp.path, ev.name), true
}

func (w *Watcher) invalidate(wp *watchpoint) {
	w.mu.Lock()
	defer w.mu.Unlock()
	// The descriptor may have been reused by a newer registration.
	if w.reg.byWd(wp.wd) != wp {
		return
	}
	w.log.Debugw("Watch invalidated.", "path", wp.path, "wd", wp.wd)
	w.unwatch(wp.path, wp)
}

// emit applies the registration side effects of a single event and reports
// it when it was requested. Create of a path already marked created is
// dropped for backends repeating it, unless force is set.
func (w *Watcher) emit(e Event, path string, isDir tribool, force bool) error {
	switch e {
	case Create:
		if w.traits&traitDuplicateCreate != 0 {
			if _, ok := w.created[path]; ok && !force {
				return nil
			}
			w.created[path] = struct{}{}
		}
		if err := w.grow(path, isDir); err != nil {
			return err
		}
	case Delete:
		delete(w.created, path)
		w.shrink(path)
	}
	if w.events&e != 0 {
		w.call(e, path)
	}
	return nil
}

// grow registers a directory created within a recursive watch. Directories
// gone before they could be registered are skipped.
func (w *Watcher) grow(path string, isDir tribool) error {
	if !w.recursive {
		return nil
	}
	if isDir == unknown {
		fi, err := os.Lstat(path)
		if err != nil {
			return nil
		}
		isDir = boolean(fi.IsDir())
	}
	if isDir != yes {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped.Load() || !w.emulate {
		return nil
	}
	err := w.watch(path)
	if errors.Is(err, fs.ErrNotExist) {
		w.log.Debugw("Directory vanished before registration.", "path", path)
		return nil
	}
	return err
}

// shrink drops registrations of a deleted directory and its subtree.
func (w *Watcher) shrink(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.reg.byPath(path) == nil && !w.hasBelow(path) {
		return
	}
	w.unwatch(path, nil)
}

func (w *Watcher) hasBelow(path string) bool {
	nd, err := w.reg.tree.get(path)
	return err == nil && len(nd.child) != 0
}

func (w *Watcher) call(e Event, path string) {
	if w.stopped.Load() {
		return
	}
	w.fn(e, path)
}
