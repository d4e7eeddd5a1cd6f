// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build linux || darwin

package process

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminal(t *testing.T) {
	p, err := New(shell("stty size; echo Hello, world!"), WithTerminal())
	if err != nil {
		t.Skipf("no pseudo-terminal: %v", err)
	}
	require.NoError(t, p.Resize(24, 80))

	out := bufio.NewReader(p.Stdout())
	var lines []string
	for len(lines) < 2 {
		line, err := out.ReadString('\n')
		if err != nil {
			break
		}
		lines = append(lines, strings.TrimRight(line, "\r\n"))
	}
	require.Len(t, lines, 2)
	assert.Equal(t, "Hello, world!", lines[1])

	code, err := p.Wait()
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestResizeWithoutTerminal(t *testing.T) {
	p, err := New(shell("exit 0"))
	require.NoError(t, err)
	assert.ErrorIs(t, p.Resize(24, 80), ErrNoTerminal)
	_, err = p.Wait()
	require.NoError(t, err)
}
