// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// collector watches a temporary directory with a real backend.
type collector struct {
	w    *Watcher
	root string
	c    recorder
}

func watch(t *testing.T, opts ...Opt) *collector {
	t.Helper()
	// Resolve symlinks so that reported paths can be compared with the root.
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	c := &collector{root: root, c: make(recorder, 1024)}
	c.w, err = New(root, c.c.fn, opts...)
	require.NoError(t, err)
	require.NoError(t, c.w.Start())
	t.Cleanup(func() { require.NoError(t, c.w.Stop()) })
	return c
}

func (c *collector) path(name string) string {
	return filepath.Join(c.root, filepath.FromSlash(name))
}

// await consumes events until want is seen as a subsequence of them.
func (c *collector) await(t *testing.T, want ...rec) {
	t.Helper()
	var got []rec
	timeout := time.After(10 * time.Second)
	for i := 0; i < len(want); {
		select {
		case ev := <-c.c:
			got = append(got, ev)
			if ev == want[i] {
				i++
			}
		case <-timeout:
			t.Fatalf("want events=%v; got %v (timed out)", want, got)
		}
	}
}

// quiet fails if any event arrives within d.
func (c *collector) quiet(t *testing.T, d time.Duration) {
	t.Helper()
	select {
	case ev := <-c.c:
		t.Fatalf("want no events; got %v", ev)
	case <-time.After(d):
	}
}

func (c *collector) watching(path string) bool {
	for _, p := range c.w.Watches() {
		if p == path {
			return true
		}
	}
	return false
}

func (c *collector) emulated() bool {
	c.w.mu.Lock()
	defer c.w.mu.Unlock()
	return c.w.emulate
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// testBasicEvents runs the scenario every backend has to pass.
func testBasicEvents(t *testing.T, opts ...Opt) {
	c := watch(t, opts...)

	writeFile(t, c.path("a.txt"), "")
	c.await(t, rec{Create, c.path("a.txt")})

	writeFile(t, c.path("a.txt"), "notify")
	c.await(t, rec{Modify, c.path("a.txt")})

	// Attribute changes are indistinguishable from writes on Windows.
	if runtime.GOOS != "windows" {
		require.NoError(t, os.Chmod(c.path("a.txt"), 0600))
		c.await(t, rec{Attributes, c.path("a.txt")})
	}

	require.NoError(t, os.Rename(c.path("a.txt"), c.path("b.txt")))
	c.await(t, rec{Delete, c.path("a.txt")}, rec{Create, c.path("b.txt")})

	require.NoError(t, os.Remove(c.path("b.txt")))
	c.await(t, rec{Delete, c.path("b.txt")})
}

// testRecursiveEvents checks directories created after Start are watched.
func testRecursiveEvents(t *testing.T, opts ...Opt) {
	c := watch(t, append(opts, WithRecursive(true))...)

	require.NoError(t, os.MkdirAll(c.path("a/b"), 0755))
	c.await(t, rec{Create, c.path("a")})
	require.Eventually(t, func() bool { return !c.emulated() || c.watching(c.path("a/b")) },
		10*time.Second, 10*time.Millisecond)

	writeFile(t, c.path("a/b/c.txt"), "")
	c.await(t, rec{Create, c.path("a/b/c.txt")})

	require.NoError(t, os.RemoveAll(c.path("a")))
	c.await(t, rec{Delete, c.path("a")})
	require.Eventually(t, func() bool { return !c.watching(c.path("a")) },
		10*time.Second, 10*time.Millisecond)
}

// testFilteredEvents checks events outside of the requested set are dropped.
func testFilteredEvents(t *testing.T, opts ...Opt) {
	c := watch(t, append(opts, WithEvents(Delete))...)

	writeFile(t, c.path("a.txt"), "notify")
	require.NoError(t, os.Remove(c.path("a.txt")))
	c.c.expect(t, rec{Delete, c.path("a.txt")})
	c.quiet(t, 100*time.Millisecond)

	writeFile(t, c.path("b.txt"), "notify")
	require.NoError(t, os.Rename(c.path("b.txt"), c.path("c.txt")))
	c.c.expect(t, rec{Delete, c.path("b.txt")})
	c.quiet(t, 100*time.Millisecond)
}
