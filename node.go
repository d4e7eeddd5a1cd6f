// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

import (
	"errors"
	"os"
)

// skip is returned by a walkFunc to prune the subtree of the current node.
var skip = errors.New("skip")

type walkFunc func(*node) error

func errnotexist(name string) error {
	return &os.PathError{
		Op:   "node",
		Path: name,
		Err:  os.ErrNotExist,
	}
}

// node is a directory in the tree of registrations kept by a Watcher. The tree
// is rooted at the watched path; intermediate nodes may have no watchpoint
// when a backend watches whole subtrees natively.
type node struct {
	name  string
	wp    *watchpoint
	child map[string]*node
}

func newnode(name string) *node {
	return &node{
		name:  name,
		child: make(map[string]*node),
	}
}

// baseIndex gives the offset of the first path element of name below root,
// len(name) if they are equal, or -1 when name is not within root.
func baseIndex(root, name string) int {
	n, m := len(root), len(name)
	switch {
	case m < n || name[:n] != root:
		return -1
	case n == m:
		return n
	case n > 0 && root[n-1] == os.PathSeparator:
		return n
	case name[n] == os.PathSeparator:
		return n + 1
	}
	return -1
}

func (nd *node) addchild(name, base string) *node {
	child, ok := nd.child[base]
	if !ok {
		child = newnode(name)
		nd.child[base] = child
	}
	return child
}

// add returns the node for name, creating it and every missing node on the
// way. It returns nil when name is not within the tree.
func (nd *node) add(name string) *node {
	i := baseIndex(nd.name, name)
	switch i {
	case -1:
		return nil
	case len(name):
		return nd
	}
	for j := indexSep(name[i:]); j != -1; j = indexSep(name[i:]) {
		nd = nd.addchild(name[:i+j], name[i:i+j])
		i += j + 1
	}
	return nd.addchild(name, name[i:])
}

func (nd *node) get(name string) (*node, error) {
	i := baseIndex(nd.name, name)
	switch i {
	case -1:
		return nil, errnotexist(name)
	case len(name):
		return nd, nil
	}
	ok := false
	for j := indexSep(name[i:]); j != -1; j = indexSep(name[i:]) {
		if nd, ok = nd.child[name[i:i+j]]; !ok {
			return nil, errnotexist(name)
		}
		i += j + 1
	}
	if nd, ok = nd.child[name[i:]]; !ok {
		return nil, errnotexist(name)
	}
	return nd, nil
}

// del detaches the node for name together with its subtree and returns it.
// Parents left without a watchpoint and children are pruned. Deleting the
// tree root detaches all of its children instead.
func (nd *node) del(name string) (*node, error) {
	i := baseIndex(nd.name, name)
	switch i {
	case -1:
		return nil, errnotexist(name)
	case len(name):
		detached := &node{name: nd.name, wp: nd.wp, child: nd.child}
		nd.wp, nd.child = nil, make(map[string]*node)
		return detached, nil
	}
	stack := []*node{nd}
	ok := false
	for j := indexSep(name[i:]); j != -1; j = indexSep(name[i:]) {
		if nd, ok = nd.child[name[i:i+j]]; !ok {
			return nil, errnotexist(name[:i+j])
		}
		stack = append(stack, nd)
		i += j + 1
	}
	base := name[i:]
	detached, ok := nd.child[base]
	if !ok {
		return nil, errnotexist(name)
	}
	delete(nd.child, base)
	for k := len(stack) - 1; k > 0; k-- {
		parent, cur := stack[k-1], stack[k]
		if cur.wp != nil || len(cur.child) != 0 {
			break
		}
		_, b := split(cur.name)
		delete(parent.child, b)
	}
	return detached, nil
}

// walk visits nd and every node below it, depth first.
func (nd *node) walk(fn walkFunc) error {
	stack := []*node{nd}
Traverse:
	for n := len(stack); n != 0; n = len(stack) {
		nd, stack = stack[n-1], stack[:n-1]
		switch err := fn(nd); err {
		case nil:
		case skip:
			continue Traverse
		default:
			return err
		}
		for _, child := range nd.child {
			stack = append(stack, child)
		}
	}
	return nil
}

// watchpoints collects every watchpoint at or below nd.
func (nd *node) watchpoints() (wps []*watchpoint) {
	nd.walk(func(nd *node) error {
		if nd.wp != nil {
			wps = append(wps, nd.wp)
		}
		return nil
	})
	return
}
