// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package process

import (
	"testing"

	"golang.org/x/sys/unix"
)

func TestExitCodeDecode(t *testing.T) {
	cases := [...]struct {
		status unix.WaitStatus
		code   int
	}{
		0: {0, 0},
		1: {1 << 8, 1},
		2: {255 << 8, 255},
		3: {unix.WaitStatus(unix.SIGKILL), 137},
		4: {unix.WaitStatus(unix.SIGTERM), 143},
		5: {unix.WaitStatus(unix.SIGINT), 130},
	}
	for i, cas := range cases {
		if code := ExitCode(cas.status); code != cas.code {
			t.Errorf("want code=%d; got %d (i=%d)", cas.code, code, i)
		}
	}
}
