// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build !unix

package process

import (
	"errors"
	"os"
)

func (p *Process) openTerminal(*os.ProcAttr) error {
	return errors.ErrUnsupported
}

func resize(*os.File, uint16, uint16) error {
	return errors.ErrUnsupported
}
