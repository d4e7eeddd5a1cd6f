// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build unix

package process

import (
	"os"
	"syscall"

	"github.com/creack/pty"
	"github.com/notifyio/notify/stream"
)

func (p *Process) openTerminal(attr *os.ProcAttr) error {
	ptmx, tty, err := pty.Open()
	if err != nil {
		return err
	}
	attr.Files = []*os.File{tty, tty, tty}
	attr.Sys = &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
		Ctty:    0,
	}
	h := stream.NewHandle(ptmx)
	p.pty = ptmx
	p.stdin, p.stdout, p.stderr = h, h, stream.Empty
	return nil
}

func resize(ptmx *os.File, rows, cols uint16) error {
	return pty.Setsize(ptmx, &pty.Winsize{Rows: rows, Cols: cols})
}
