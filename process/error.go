// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package process

import "errors"

var (
	ErrNoCommand  = errors.New("empty command")
	ErrNoTerminal = errors.New("process is not attached to a terminal")
)
