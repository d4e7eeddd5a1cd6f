// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package stream

import (
	"io"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pipe(t *testing.T) (*Handle, *Handle) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	rh, wh := NewHandle(r), NewHandle(w)
	t.Cleanup(func() {
		rh.Close()
		wh.Close()
	})
	return rh, wh
}

func TestHandleReadUntilEOF(t *testing.T) {
	r, w := pipe(t)
	n, err := w.Write([]byte("Hello, world!"))
	require.NoError(t, err)
	assert.Equal(t, 13, n)
	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())

	p, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world!", string(p))

	n, err = r.Read(make([]byte, 8))
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestHandleClosed(t *testing.T) {
	r, w := pipe(t)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "second close must be a no-op")

	_, err := w.Write([]byte("x"))
	assert.ErrorIs(t, err, fs.ErrClosed)
	assert.ErrorIs(t, w.Flush(), fs.ErrClosed)

	require.NoError(t, r.Close())
	_, err = r.Read(make([]byte, 1))
	assert.ErrorIs(t, err, fs.ErrClosed)
	assert.NotErrorIs(t, err, io.EOF)
}

func TestEmpty(t *testing.T) {
	for i := 0; i < 3; i++ {
		n, err := Empty.Read(make([]byte, 4))
		if n != 0 || err != io.EOF {
			t.Errorf("want n=0, err=EOF; got n=%d, err=%v (i=%d)", n, err, i)
		}
	}
	if err := Empty.Close(); err != nil {
		t.Errorf("want err=nil; got %v", err)
	}
}
