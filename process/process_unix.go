// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build unix

package process

import (
	"errors"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// child reaps the process itself with wait4(2) so that a non-blocking probe
// and a blocking wait can share one cached status. The blocking wait runs
// without mu held; done is closed once the status is published.
type child struct {
	pid int

	mu     sync.Mutex
	reaped bool
	status unix.WaitStatus
	done   chan struct{}
}

func attach(proc *os.Process) (native, error) {
	c := &child{pid: proc.Pid, done: make(chan struct{})}
	// The status is collected with wait4 from now on.
	if err := proc.Release(); err != nil {
		return nil, err
	}
	return c, nil
}

// publish records the status of the reaped child. It expects c.mu to be
// held.
func (c *child) publish(ws unix.WaitStatus) {
	if c.reaped {
		return
	}
	c.reaped, c.status = true, ws
	close(c.done)
}

func (c *child) alive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reaped {
		return false
	}
	var ws unix.WaitStatus
	pid, err := unix.Wait4(c.pid, &ws, unix.WNOHANG, nil)
	switch {
	case errors.Is(err, unix.ECHILD):
		// Reaped by a concurrent wait that has not published yet.
		return false
	case err != nil:
		return false
	case pid == 0:
		return true
	}
	c.publish(ws)
	return false
}

func (c *child) wait() (int, error) {
	for {
		c.mu.Lock()
		if c.reaped {
			c.mu.Unlock()
			return ExitCode(c.status), nil
		}
		c.mu.Unlock()

		var ws unix.WaitStatus
		_, err := unix.Wait4(c.pid, &ws, 0, nil)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.ECHILD):
			// Another goroutine reaped the child first.
			<-c.done
			continue
		case err != nil:
			return -1, os.NewSyscallError("wait4", err)
		}

		c.mu.Lock()
		c.publish(ws)
		c.mu.Unlock()
	}
}

func (c *child) terminate(force bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reaped {
		return nil
	}
	sig := unix.SIGTERM
	if force {
		sig = unix.SIGKILL
	}
	err := unix.Kill(c.pid, sig)
	if err == nil || errors.Is(err, unix.ESRCH) {
		return nil
	}
	return os.NewSyscallError("kill", err)
}

func (c *child) release() {}

// ExitCode decodes a wait status the way shells report it: the exit code of
// a normal exit, or 128 plus the signal number for a killed process.
func ExitCode(ws unix.WaitStatus) int {
	switch {
	case ws.Exited():
		return ws.ExitStatus()
	case ws.Signaled():
		return 128 + int(ws.Signal())
	default:
		return int(ws)
	}
}
