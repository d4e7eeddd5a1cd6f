// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
)

func p(s string) string { return filepath.FromSlash(s) }

func names(nd *node) (s []string) {
	nd.walk(func(nd *node) error {
		s = append(s, nd.name)
		return nil
	})
	sort.Strings(s)
	return s
}

func TestBaseIndex(t *testing.T) {
	cases := [...]struct {
		root string
		name string
		i    int
	}{
		{"/tmp/w", "/tmp/w", 6},
		{"/tmp/w", "/tmp/w/a", 7},
		{"/tmp/w/", "/tmp/w/a", 7},
		{"/tmp/w", "/tmp/wa", -1},
		{"/tmp/w", "/tmp", -1},
		{"/", "/a", 1},
	}
	for i, cas := range cases {
		if n := baseIndex(p(cas.root), p(cas.name)); n != cas.i {
			t.Errorf("want i=%d; got %d (i=%d)", cas.i, n, i)
		}
	}
}

func TestNodeAddGet(t *testing.T) {
	root := newnode(p("/tmp/w"))
	for _, name := range []string{"/tmp/w/a/b/c", "/tmp/w/a/d", "/tmp/w/e"} {
		if nd := root.add(p(name)); nd == nil || nd.name != p(name) {
			t.Fatalf("want node %s; got %v", name, nd)
		}
	}
	if nd := root.add(p("/tmp/x")); nd != nil {
		t.Fatalf("want nil node for path outside of the tree; got %v", nd)
	}
	want := []string{
		p("/tmp/w"), p("/tmp/w/a"), p("/tmp/w/a/b"), p("/tmp/w/a/b/c"),
		p("/tmp/w/a/d"), p("/tmp/w/e"),
	}
	if got := names(root); !reflect.DeepEqual(got, want) {
		t.Fatalf("want names=%v; got %v", want, got)
	}
	cases := [...]struct {
		name string
		ok   bool
	}{
		{"/tmp/w", true},
		{"/tmp/w/a/b", true},
		{"/tmp/w/a/b/c", true},
		{"/tmp/w/a/x", false},
		{"/tmp/w/e/f", false},
		{"/tmp/q", false},
	}
	for i, cas := range cases {
		nd, err := root.get(p(cas.name))
		if cas.ok {
			if err != nil || nd.name != p(cas.name) {
				t.Errorf("want node %s; got %v, %v (i=%d)", cas.name, nd, err, i)
			}
			continue
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("want err=%v; got %v (i=%d)", os.ErrNotExist, err, i)
		}
	}
}

func TestNodeDel(t *testing.T) {
	root := newnode(p("/tmp/w"))
	root.add(p("/tmp/w/a/b/c"))
	root.add(p("/tmp/w/e")).wp = &watchpoint{path: p("/tmp/w/e"), wd: 1}

	nd, err := root.del(p("/tmp/w/a/b"))
	if err != nil {
		t.Fatalf("del()=%v", err)
	}
	if want := []string{p("/tmp/w/a/b"), p("/tmp/w/a/b/c")}; !reflect.DeepEqual(names(nd), want) {
		t.Fatalf("want detached=%v; got %v", want, names(nd))
	}
	// /tmp/w/a has no watchpoint and no children left.
	if want := []string{p("/tmp/w"), p("/tmp/w/e")}; !reflect.DeepEqual(names(root), want) {
		t.Fatalf("want names=%v; got %v", want, names(root))
	}
	if _, err := root.del(p("/tmp/w/a")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want err=%v; got %v", os.ErrNotExist, err)
	}

	nd, err = root.del(p("/tmp/w"))
	if err != nil {
		t.Fatalf("del()=%v", err)
	}
	if n := len(nd.watchpoints()); n != 1 {
		t.Fatalf("want 1 detached watchpoint; got %d", n)
	}
	if n := len(root.child); n != 0 {
		t.Fatalf("want root without children; got %d", n)
	}
}

func TestNodeWalkSkip(t *testing.T) {
	root := newnode(p("/tmp/w"))
	root.add(p("/tmp/w/a/b"))
	root.add(p("/tmp/w/c"))
	var got []string
	err := root.walk(func(nd *node) error {
		got = append(got, nd.name)
		if nd.name == p("/tmp/w/a") {
			return skip
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk()=%v", err)
	}
	sort.Strings(got)
	if want := []string{p("/tmp/w"), p("/tmp/w/a"), p("/tmp/w/c")}; !reflect.DeepEqual(got, want) {
		t.Fatalf("want visited=%v; got %v", want, got)
	}
	errStop := errors.New("stop")
	if err := root.walk(func(*node) error { return errStop }); err != errStop {
		t.Fatalf("want err=%v; got %v", errStop, err)
	}
}
