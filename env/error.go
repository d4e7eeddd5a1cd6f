// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package env

import (
	"errors"
	"fmt"
)

var errUnsupported = fmt.Errorf("environment is read-only on this platform: %w", errors.ErrUnsupported)
