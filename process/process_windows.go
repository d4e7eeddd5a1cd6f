// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build windows

package process

import (
	"errors"
	"os"
	"os/exec"
	"sync"

	"golang.org/x/sys/windows"
)

func start(argv []string, attr *os.ProcAttr) (*os.Process, error) {
	path, err := exec.LookPath(argv[0])
	if err != nil && !errors.Is(err, exec.ErrDot) {
		return nil, err
	}
	return os.StartProcess(path, argv, attr)
}

// child owns a handle on the process. Blocking waits run without mu held;
// the handle is closed once it is released and no wait uses it anymore.
type child struct {
	mu       sync.Mutex
	handle   windows.Handle
	code     int
	exited   bool
	waiters  int
	released bool
}

func attach(proc *os.Process) (native, error) {
	h, err := windows.OpenProcess(
		windows.SYNCHRONIZE|windows.PROCESS_QUERY_LIMITED_INFORMATION|windows.PROCESS_TERMINATE,
		false,
		uint32(proc.Pid),
	)
	proc.Release()
	if err != nil {
		return nil, os.NewSyscallError("OpenProcess", err)
	}
	return &child{handle: h}, nil
}

func (c *child) alive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.exited || c.handle == windows.InvalidHandle {
		return false
	}
	ev, err := windows.WaitForSingleObject(c.handle, 0)
	return err == nil && ev != windows.WAIT_OBJECT_0
}

func (c *child) wait() (int, error) {
	c.mu.Lock()
	if c.exited {
		c.mu.Unlock()
		return c.code, nil
	}
	if c.handle == windows.InvalidHandle {
		c.mu.Unlock()
		return -1, os.ErrProcessDone
	}
	h := c.handle
	c.waiters++
	c.mu.Unlock()

	var code uint32
	_, err := windows.WaitForSingleObject(h, windows.INFINITE)
	if err != nil {
		err = os.NewSyscallError("WaitForSingleObject", err)
	} else if err = windows.GetExitCodeProcess(h, &code); err != nil {
		err = os.NewSyscallError("GetExitCodeProcess", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.waiters--
	if err == nil && !c.exited {
		c.code, c.exited = int(code), true
	}
	c.closeIdle()
	if err != nil {
		return -1, err
	}
	return c.code, nil
}

// terminate has no graceful variant on windows.
func (c *child) terminate(bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.exited || c.handle == windows.InvalidHandle {
		return nil
	}
	if err := windows.TerminateProcess(c.handle, 1); err != nil {
		return os.NewSyscallError("TerminateProcess", err)
	}
	return nil
}

func (c *child) release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.released = true
	c.closeIdle()
}

// closeIdle closes the handle once it is released and unused. It expects
// c.mu to be held.
func (c *child) closeIdle() {
	if c.released && c.waiters == 0 && c.handle != windows.InvalidHandle {
		windows.CloseHandle(c.handle)
		c.handle = windows.InvalidHandle
	}
}
