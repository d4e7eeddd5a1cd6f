// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build (darwin && (kqueue || !cgo)) || dragonfly || freebsd || netbsd || openbsd

package notify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

func TestDecodeKqueue(t *testing.T) {
	cases := [...]struct {
		notes uint32
		e     Event
	}{
		{unix.NOTE_WRITE, Modify},
		{unix.NOTE_EXTEND, Modify},
		{unix.NOTE_ATTRIB, Attributes},
		{unix.NOTE_LINK, Attributes},
		{unix.NOTE_WRITE | unix.NOTE_ATTRIB, Modify | Attributes},
		{unix.NOTE_DELETE, 0},
		{unix.NOTE_RENAME, 0},
	}
	for i, cas := range cases {
		if e := decodeKqueue(cas.notes); e != cas.e {
			t.Errorf("want event=%v; got %v (i=%d)", cas.e, e, i)
		}
	}
}

func TestKqueueEvents(t *testing.T) {
	testBasicEvents(t)
}

func TestKqueueRecursive(t *testing.T) {
	testRecursiveEvents(t)
}

func TestKqueueFilter(t *testing.T) {
	testFilteredEvents(t)
}

func TestKqueueReplacedFile(t *testing.T) {
	c := watch(t, WithEvents(Create, Delete))
	writeFile(t, c.path("a.txt"), "a")
	writeFile(t, c.path("b.txt"), "b")
	c.await(t, rec{Create, c.path("a.txt")}, rec{Create, c.path("b.txt")})

	require.NoError(t, os.Rename(c.path("b.txt"), c.path("a.txt")))
	c.await(t, rec{Delete, c.path("a.txt")}, rec{Delete, c.path("b.txt")}, rec{Create, c.path("a.txt")})
}

func TestKqueueRemoveKeepsDescriptor(t *testing.T) {
	k, err := newKqueue(All, zap.NewNop().Sugar())
	require.NoError(t, err)
	defer k.close()

	dir := t.TempDir()
	a, b := filepath.Join(dir, "a"), filepath.Join(dir, "b")
	require.NoError(t, os.Mkdir(a, 0755))
	require.NoError(t, os.Mkdir(b, 0755))

	wa, err := k.add(a, false)
	require.NoError(t, err)
	require.NoError(t, k.remove(wa))
	wb, err := k.add(b, false)
	require.NoError(t, err)
	if wa == wb {
		t.Fatalf("want wd of %s distinct from removed %d; got %d", b, wa, wb)
	}
}

func TestKqueueReplacedDirectory(t *testing.T) {
	c := watch(t, WithRecursive(true))
	require.NoError(t, os.Mkdir(c.path("a"), 0755))
	c.await(t, rec{Create, c.path("a")})

	require.NoError(t, os.Remove(c.path("a")))
	require.NoError(t, os.Mkdir(c.path("b"), 0755))
	c.await(t, rec{Delete, c.path("a")}, rec{Create, c.path("b")})

	writeFile(t, c.path("b/x.txt"), "x")
	c.await(t, rec{Create, c.path("b/x.txt")})
	if !c.watching(c.path("b")) {
		t.Fatalf("want %s watched", c.path("b"))
	}
}
