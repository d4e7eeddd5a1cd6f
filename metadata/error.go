// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package metadata

import (
	"errors"
	"fmt"
)

var (
	ErrNoAttributes = errors.New("no attributes given")
	ErrTooManyLinks = errors.New("too many levels of symbolic links")
)

func unsupported(what string) error {
	return fmt.Errorf("%s: %w", what, errors.ErrUnsupported)
}
