// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

// Package platform resolves facts about the host operating system once per
// process.
package platform

import (
	"runtime"
	"sync"
)

// Info describes the host. It is immutable once resolved.
type Info struct {
	OS      string
	Arch    string
	Release string // kernel or OS build version, empty when unknown
}

// IsDarwin reports whether the host is macOS.
func (i Info) IsDarwin() bool { return i.OS == "darwin" }

// IsWindows reports whether the host is Windows.
func (i Info) IsWindows() bool { return i.OS == "windows" }

// Shell returns the command line prefix used to run a shell snippet.
func (i Info) Shell() []string {
	if i.IsWindows() {
		return []string{"cmd.exe", "/c"}
	}
	return []string{"/bin/sh", "-c"}
}

func (i Info) String() string {
	if i.Release == "" {
		return i.OS + "/" + i.Arch
	}
	return i.OS + "/" + i.Arch + " " + i.Release
}

var current = sync.OnceValue(func() Info {
	return Info{
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
		Release: release(),
	}
})

// Current returns the facts about the running host.
func Current() Info {
	return current()
}
