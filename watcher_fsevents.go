// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build darwin && !kqueue && cgo

package notify

import (
	"os"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
)

// stream is a single FSEvents stream registered for a directory. FSEvents
// reports paths with symlinks resolved, so names are computed relative to
// either form of the registered path.
type stream struct {
	wd      int
	path    string
	real    string
	log     *zap.SugaredLogger
	removed atomic.Bool
}

// fseventsRecord is a single event of the extended FSEvents format.
type fseventsRecord struct {
	path   string
	flags  uint32
	fileID uint64
}

// translate appends the raw events rec stands for to batch.
func (s *stream) translate(batch []rawEvent, rec fseventsRecord) []rawEvent {
	if rec.flags&fsEventsDropped != 0 {
		s.log.Warnw("FSEvents dropped events, the subtree needs a rescan.",
			"path", s.path, "flags", rec.flags)
		return batch
	}
	if rec.flags&fsEventsRootChanged != 0 {
		return append(batch, rawEvent{wd: s.wd, invalidated: true})
	}
	name, ok := s.rel(rec.path)
	if !ok {
		return batch
	}
	ev := rawEvent{
		wd:    s.wd,
		name:  name,
		kind:  decodeFSEvents(rec.flags),
		isDir: fseventsIsDir(rec.flags),
	}
	if rec.flags&fsEventsRenamed != 0 {
		switch _, err := os.Lstat(rec.path); {
		case rec.fileID != 0:
			ev.renameID = rec.fileID
		case err == nil:
			ev.kind |= Create
		default:
			ev.kind |= Delete
		}
	}
	if ev.kind == 0 && ev.renameID == 0 {
		return batch
	}
	return append(batch, ev)
}

func (s *stream) rel(path string) (string, bool) {
	for _, root := range [...]string{s.real, s.path} {
		switch {
		case path == root:
			return "", true
		case strings.HasPrefix(path, root) && (strings.HasSuffix(root, "/") || path[len(root)] == '/'):
			return strings.TrimPrefix(path[len(root):], "/"), true
		}
	}
	return "", false
}
