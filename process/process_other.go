// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build !unix && !windows

package process

import (
	"errors"
	"os"
)

func start([]string, *os.ProcAttr) (*os.Process, error) {
	return nil, errors.ErrUnsupported
}

func attach(*os.Process) (native, error) {
	return nil, errors.ErrUnsupported
}
