// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// maxPortableBatch bounds the number of queued fsnotify events drained into
// a single batch.
const maxPortableBatch = 64

// portable is the backend built on fsnotify. fsnotify identifies watches by
// path, descriptors handed out to the Watcher are made up here.
type portable struct {
	w    *fsnotify.Watcher
	mask Event
	log  *zap.SugaredLogger

	mu     sync.Mutex
	next   int
	byWd   map[int]string
	byPath map[string]int
	// gone holds registered directories reported removed, so the second
	// report fsnotify gives for them is not turned into another Delete.
	gone map[string]struct{}
}

func newFsnotify(mask Event, log *zap.SugaredLogger) (backend, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &portable{
		w:      w,
		mask:   mask,
		log:    log,
		byWd:   make(map[int]string),
		byPath: make(map[string]int),
		gone:   make(map[string]struct{}),
	}, nil
}

func (p *portable) add(path string, recursive bool) (int, error) {
	if recursive {
		return -1, errNoNativeRecursion
	}
	if err := p.w.Add(path); err != nil {
		return -1, &os.PathError{Op: "fsnotify_add", Path: path, Err: err}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.gone, path)
	if wd, ok := p.byPath[path]; ok {
		return wd, nil
	}
	p.next++
	p.byWd[p.next] = path
	p.byPath[path] = p.next
	return p.next, nil
}

func (p *portable) remove(wd int) error {
	p.mu.Lock()
	path, ok := p.byWd[wd]
	if ok {
		p.drop(wd, path)
	}
	p.mu.Unlock()
	if !ok {
		return nil
	}
	return p.w.Remove(path)
}

func (p *portable) drop(wd int, path string) {
	delete(p.byWd, wd)
	delete(p.byPath, path)
}

func (p *portable) read() ([]rawEvent, error) {
	select {
	case ev, ok := <-p.w.Events:
		if !ok {
			return nil, errClosed
		}
		batch := p.translate(nil, ev)
		for len(batch) < maxPortableBatch {
			select {
			case ev, ok := <-p.w.Events:
				if !ok {
					return batch, nil
				}
				batch = p.translate(batch, ev)
			default:
				return batch, nil
			}
		}
		return batch, nil
	case err, ok := <-p.w.Errors:
		if !ok {
			return nil, errClosed
		}
		if errors.Is(err, fsnotify.ErrEventOverflow) {
			p.log.Warnw("Fsnotify queue overflowed, events were lost.")
			return nil, nil
		}
		return nil, err
	}
}

// translate appends the raw events ev stands for to batch. Removal of a
// registered directory invalidates its registration, the Delete itself is
// reported through the parent.
func (p *portable) translate(batch []rawEvent, ev fsnotify.Event) []rawEvent {
	name := filepath.Clean(ev.Name)
	kind := decodeFsnotify(ev.Op) & p.mask

	p.mu.Lock()
	defer p.mu.Unlock()

	if ev.Op.Has(fsnotify.Create) {
		delete(p.gone, name)
	}
	if ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename) {
		if wd, ok := p.byPath[name]; ok {
			p.drop(wd, name)
			p.gone[name] = struct{}{}
			batch = append(batch, rawEvent{wd: wd, invalidated: true})
		} else if _, ok := p.gone[name]; ok {
			delete(p.gone, name)
			kind &^= Delete
		}
	}
	if kind == 0 {
		return batch
	}
	wd, ok := p.byPath[filepath.Dir(name)]
	if !ok {
		return batch
	}
	return append(batch, rawEvent{wd: wd, name: filepath.Base(name), kind: kind})
}

func (p *portable) close() error {
	return p.w.Close()
}
