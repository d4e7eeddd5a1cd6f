// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build unix

package process

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shell(command string) []string {
	return []string{"sh", "-c", command}
}

func readAll(t *testing.T, r io.Reader) string {
	t.Helper()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return strings.TrimRight(string(b), "\n")
}

func TestOutput(t *testing.T) {
	p, err := New(shell("echo Hello, world!"))
	require.NoError(t, err)
	assert.Positive(t, p.Pid())
	assert.Equal(t, "Hello, world!", readAll(t, p.Stdout()))

	code, err := p.Wait()
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.False(t, p.IsAlive())

	code, err = p.Wait()
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestInput(t *testing.T) {
	p, err := New(shell("echo Enter your name && read name && echo Hello, $name"))
	require.NoError(t, err)
	out := bufio.NewReader(p.Stdout())

	line, err := out.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "Enter your name\n", line)

	_, err = p.Stdin().Write([]byte("Gopher\n"))
	require.NoError(t, err)
	require.NoError(t, p.Stdin().Flush())

	line, err = out.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "Hello, Gopher\n", line)
	_, err = out.ReadByte()
	assert.ErrorIs(t, err, io.EOF)

	code, err := p.Wait()
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestStderr(t *testing.T) {
	cases := [...]struct {
		merged bool
		stdout string
		stderr string
	}{
		0: {false, "", "This is an error message."},
		1: {true, "This is an error message.", ""},
	}
	for i, cas := range cases {
		var opts []Opt
		if cas.merged {
			opts = append(opts, WithMergedStderr())
		}
		p, err := New(shell("echo This is an error message.>&2"), opts...)
		require.NoError(t, err, "i=%d", i)
		stdout, stderr := readAll(t, p.Stdout()), readAll(t, p.Stderr())
		if stdout != cas.stdout {
			t.Errorf("want stdout=%q; got %q (i=%d)", cas.stdout, stdout, i)
		}
		if stderr != cas.stderr {
			t.Errorf("want stderr=%q; got %q (i=%d)", cas.stderr, stderr, i)
		}
		code, err := p.Wait()
		require.NoError(t, err, "i=%d", i)
		assert.Equal(t, 0, code, "i=%d", i)
	}
}

func TestDir(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	p, err := New(shell("pwd"), WithDir(dir))
	require.NoError(t, err)
	assert.Equal(t, dir, readAll(t, p.Stdout()))
	_, err = p.Wait()
	require.NoError(t, err)
}

func TestEnv(t *testing.T) {
	p, err := New(shell("echo $RANDOM_ENV"), WithEnv(map[string]string{
		"RANDOM_ENV": "VALID_RANDOM_ENV",
		"PATH":       os.Getenv("PATH"),
	}))
	require.NoError(t, err)
	assert.Contains(t, readAll(t, p.Stdout()), "VALID_RANDOM_ENV")
	_, err = p.Wait()
	require.NoError(t, err)
}

func TestExitCode(t *testing.T) {
	cases := [...]struct {
		command string
		code    int
	}{
		0: {"exit 0", 0},
		1: {"exit 3", 3},
		2: {"kill -KILL $$", 137},
		3: {"kill -TERM $$", 143},
	}
	for i, cas := range cases {
		p, err := New(shell(cas.command))
		if err != nil {
			t.Errorf("want err=nil; got %v (i=%d)", err, i)
			continue
		}
		code, err := p.Wait()
		if err != nil {
			t.Errorf("want err=nil; got %v (i=%d)", err, i)
			continue
		}
		if code != cas.code {
			t.Errorf("want code=%d; got %d (i=%d)", cas.code, code, i)
		}
	}
}

func TestDestroy(t *testing.T) {
	p, err := New(shell("sleep 30"))
	require.NoError(t, err)
	assert.True(t, p.IsAlive())

	require.NoError(t, p.Destroy(true))
	code, err := p.Wait()
	require.NoError(t, err)
	assert.Equal(t, 137, code)

	_, err = p.Stdout().Read(make([]byte, 1))
	assert.ErrorIs(t, err, fs.ErrClosed)
}

func TestDestroyDuringWait(t *testing.T) {
	p, err := New(shell("sleep 30"))
	require.NoError(t, err)

	type result struct {
		code int
		err  error
	}
	waited := make(chan result, 1)
	go func() {
		code, err := p.Wait()
		waited <- result{code, err}
	}()

	alive := make(chan bool, 1)
	go func() { alive <- p.IsAlive() }()
	select {
	case <-alive:
	case <-time.After(2 * time.Second):
		t.Fatal("IsAlive blocked while another goroutine waits")
	}

	destroyed := make(chan error, 1)
	go func() { destroyed <- p.Destroy(true) }()
	select {
	case err := <-destroyed:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Destroy blocked while another goroutine waits")
	}

	select {
	case r := <-waited:
		require.NoError(t, r.err)
		assert.Equal(t, 137, r.code)
	case <-time.After(10 * time.Second):
		t.Fatal("Wait did not return after Destroy")
	}
	assert.False(t, p.IsAlive())

	code, err := p.Wait()
	require.NoError(t, err)
	assert.Equal(t, 137, code)
}

func TestConcurrentWait(t *testing.T) {
	p, err := New(shell("exit 7"))
	require.NoError(t, err)

	codes := make(chan int, 3)
	for i := 0; i < 3; i++ {
		go func() {
			code, err := p.Wait()
			assert.NoError(t, err)
			codes <- code
		}()
	}
	for i := 0; i < 3; i++ {
		select {
		case code := <-codes:
			assert.Equal(t, 7, code)
		case <-time.After(10 * time.Second):
			t.Fatal("Wait did not return")
		}
	}
}

func TestStartErrors(t *testing.T) {
	dir := t.TempDir()
	denied := filepath.Join(dir, "denied")
	require.NoError(t, os.WriteFile(denied, []byte("#!/bin/sh\n"), 0o644))

	cases := [...]struct {
		command []string
		env     map[string]string
		err     error
	}{
		0: {[]string{"no-such-program-xyz"}, nil, fs.ErrNotExist},
		1: {[]string{"denied"}, map[string]string{"PATH": dir}, fs.ErrPermission},
		2: {[]string{"denied"}, map[string]string{"PATH": "/nonexistent:" + dir}, fs.ErrPermission},
		3: {[]string{filepath.Join(dir, "missing")}, nil, fs.ErrNotExist},
		4: {nil, nil, ErrNoCommand},
	}
	for i, cas := range cases {
		var opts []Opt
		if cas.env != nil {
			opts = append(opts, WithEnv(cas.env))
		}
		_, err := New(cas.command, opts...)
		assert.ErrorIs(t, err, cas.err, "i=%d", i)
	}
}

func TestScriptFallback(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "script")
	require.NoError(t, os.WriteFile(script, []byte("echo Hello, world!\n"), 0o755))

	cases := [...][]string{
		0: {script},
		1: {"script"},
	}
	for i, command := range cases {
		p, err := New(command, WithEnv(map[string]string{"PATH": dir}))
		require.NoError(t, err, "i=%d", i)
		assert.Equal(t, "Hello, world!", readAll(t, p.Stdout()), "i=%d", i)
		code, err := p.Wait()
		require.NoError(t, err, "i=%d", i)
		assert.Equal(t, 0, code, "i=%d", i)
	}
}

func TestSearchPath(t *testing.T) {
	cases := [...]struct {
		environ []string
		path    string
	}{
		0: {[]string{"A=1"}, defaultPath},
		1: {[]string{"PATH=/x:/y"}, "/x:/y"},
		2: {[]string{"PATH=/x", "PATH=/z"}, "/z"},
		3: {[]string{"PATH="}, ""},
	}
	for i, cas := range cases {
		if path := searchPath(cas.environ); path != cas.path {
			t.Errorf("want path=%q; got %q (i=%d)", cas.path, path, i)
		}
	}
}
