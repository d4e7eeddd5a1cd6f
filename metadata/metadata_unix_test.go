// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

package metadata

import (
	"errors"
	"io/fs"
	"math/bits"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatSymlink(t *testing.T) {
	path := basicFile(t)
	link := filepath.Join(filepath.Dir(path), "symlink.txt")
	require.NoError(t, os.Symlink(path, link))

	regular, err := Stat(path, false)
	require.NoError(t, err)
	followed, err := Stat(link, true)
	require.NoError(t, err)
	assert.Equal(t, regular, followed)

	md, err := Stat(link, false)
	require.NoError(t, err)
	assert.True(t, md.IsSymlink())
	assert.False(t, md.IsRegular())
	assert.Equal(t, int64(len(path)), md.Size())

	u, ok := md.(*Unix)
	require.True(t, ok, "want *Unix; got %T", md)
	assert.Equal(t, Symlink, u.Mode.Type())
}

func TestSetMode(t *testing.T) {
	path := basicFile(t)
	mode := NewFileMode(Regular, OwnerExecute)

	require.NoError(t, SetAttributes(path, true, ModeAttribute(mode)))
	md, err := Stat(path, true)
	require.NoError(t, err)
	u, ok := md.(*Unix)
	require.True(t, ok, "want *Unix; got %T", md)
	assert.Equal(t, mode, u.Mode)
}

func TestSetDistantTimes(t *testing.T) {
	if bits.UintSize < 64 {
		t.Skip("time_t is 32 bits wide")
	}
	path := basicFile(t)
	mtime := time.Date(2300, time.March, 1, 12, 0, 0, 500, time.UTC)
	atime := time.Date(2290, time.June, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, SetAttributes(path, true, LastModifiedTime(mtime), LastAccessTime(atime)))
	md, err := Stat(path, true)
	require.NoError(t, err)
	assert.Equal(t, mtime.Unix(), md.ModTime().Unix())
	assert.Equal(t, atime.Unix(), md.AccessTime().Unix())
}

func TestSetOwner(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root may change the owner to any id")
	}
	err := SetAttributes(basicFile(t), true, OwnerAttribute{UID: 12346, GID: 64321})
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestSetWindowsAttributeUnsupported(t *testing.T) {
	err := SetAttributes(basicFile(t), true, ReadOnly(true))
	assert.ErrorIs(t, err, errors.ErrUnsupported)
}

func TestFollowLoop(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a"), filepath.Join(dir, "b")
	require.NoError(t, os.Symlink("b", a))
	require.NoError(t, os.Symlink("a", b))

	_, err := follow(a)
	assert.ErrorIs(t, err, ErrTooManyLinks)
	_, err = statBasic(a, true)
	assert.ErrorIs(t, err, ErrTooManyLinks)
}

func TestStatBasic(t *testing.T) {
	path := basicFile(t)
	link := filepath.Join(filepath.Dir(path), "link")
	require.NoError(t, os.Symlink("./basic.txt", link))

	cases := [...]struct {
		path   string
		follow bool
		kind   Kind
	}{
		0: {path, false, KindRegular},
		1: {link, false, KindSymlink},
		2: {link, true, KindRegular},
		3: {filepath.Dir(path), true, KindDirectory},
	}
	for i, cas := range cases {
		b, err := statBasic(cas.path, cas.follow)
		if err != nil {
			t.Errorf("want err=nil; got %v (i=%d)", err, i)
			continue
		}
		if b.Kind() != cas.kind {
			t.Errorf("want kind=%v; got %v (i=%d)", cas.kind, b.Kind(), i)
		}
	}
}
