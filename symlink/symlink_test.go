// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package symlink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basicFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "basic.txt")
	require.NoError(t, os.WriteFile(path, []byte("Hello, world!"), 0o644))
	return path
}

func TestExact(t *testing.T) {
	path := basicFile(t)
	link := filepath.Join(filepath.Dir(path), "symlink.txt")
	target := "././basic.txt"

	require.NoError(t, CreateExact(link, target))
	got, err := ReadExact(link)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	data, err := os.ReadFile(link)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world!", string(data))
}

func TestCleaned(t *testing.T) {
	path := basicFile(t)
	link := filepath.Join(filepath.Dir(path), "symlink.txt")

	require.NoError(t, Create(link, "././basic.txt"))
	got, err := ReadExact(link)
	require.NoError(t, err)
	assert.Equal(t, "basic.txt", got)
	got, err = Read(link)
	require.NoError(t, err)
	assert.Equal(t, "basic.txt", got)
}

func TestReadNotSymlink(t *testing.T) {
	_, err := ReadExact(basicFile(t))
	assert.ErrorIs(t, err, ErrNotSymlink)
}
