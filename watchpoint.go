// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

import "sort"

// watchpoint is a single live registration of a directory with a backend.
type watchpoint struct {
	path      string
	wd        int
	recursive bool // the backend watches the whole subtree
}

// registry indexes watchpoints by native watch descriptor for dispatch and by
// path for subtree removal. It is not safe for concurrent use; the Watcher
// serializes access to it.
type registry struct {
	wds  map[int]*watchpoint
	tree *node
}

func newRegistry(root string) *registry {
	return &registry{
		wds:  make(map[int]*watchpoint),
		tree: newnode(root),
	}
}

// insert records wp, replacing a registration of the same descriptor or the
// same path. It returns the replaced registrations.
func (r *registry) insert(wp *watchpoint) (old []*watchpoint) {
	if prev, ok := r.wds[wp.wd]; ok && prev.path != wp.path {
		if nd, err := r.tree.get(prev.path); err == nil && nd.wp == prev {
			nd.wp = nil
		}
		old = append(old, prev)
	}
	nd := r.tree.add(wp.path)
	if nd == nil {
		return old
	}
	if nd.wp != nil && nd.wp.wd != wp.wd {
		delete(r.wds, nd.wp.wd)
		old = append(old, nd.wp)
	}
	nd.wp = wp
	r.wds[wp.wd] = wp
	return old
}

func (r *registry) byWd(wd int) *watchpoint {
	return r.wds[wd]
}

func (r *registry) byPath(path string) *watchpoint {
	nd, err := r.tree.get(path)
	if err != nil {
		return nil
	}
	return nd.wp
}

// removeTree drops path and every registration below it and returns them.
func (r *registry) removeTree(path string) []*watchpoint {
	nd, err := r.tree.del(path)
	if err != nil {
		return nil
	}
	wps := nd.watchpoints()
	for _, wp := range wps {
		if r.wds[wp.wd] == wp {
			delete(r.wds, wp.wd)
		}
	}
	return wps
}

func (r *registry) len() int { return len(r.wds) }

func (r *registry) paths() []string {
	s := make([]string, 0, len(r.wds))
	for _, wp := range r.wds {
		s = append(s, wp.path)
	}
	sort.Strings(s)
	return s
}
