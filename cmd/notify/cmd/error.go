// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package cmd

import (
	"errors"
	"fmt"
	"os"
)

var (
	ErrDuplicateWatch = errors.New("path is watched more than once")
	ErrUnknownEvent   = errors.New("unknown event")
	ErrBadOutput      = errors.New("output format must be text or yaml")
)

type ErrCancelBySignal struct {
	os.Signal
}

func (e *ErrCancelBySignal) Error() string {
	return fmt.Sprintf("Cancelled by signal (%v).", e.Signal)
}

// ErrExitStatus carries the exit code of a child process up to Execute.
type ErrExitStatus struct {
	Code int
}

func (e *ErrExitStatus) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
