// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build dragonfly || freebsd || linux || netbsd || openbsd

package metadata

import "time"

func setCreationTime(string, bool, time.Time) error {
	return unsupported("creation time")
}
