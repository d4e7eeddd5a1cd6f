// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd && !windows

package notify

import "go.uber.org/zap"

// newNative falls back to fsnotify where no native backend is implemented.
func newNative(mask Event, log *zap.SugaredLogger) (backend, error) {
	return newFsnotify(mask, log)
}
