// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

// Package env reads and mutates the process environment.
package env

import (
	"os"
	"strings"

	. "github.com/black-desk/lib/go/errwrap"
)

// Get returns the value of the variable name, or "" when it is unset.
func Get(name string) string {
	return os.Getenv(name)
}

// Lookup returns the value of the variable name and whether it is set.
func Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// Set sets the variable name to value.
func Set(name, value string) (err error) {
	defer Wrap(&err, "set environment variable %q", name)
	if !mutable {
		return errUnsupported
	}
	return os.Setenv(name, value)
}

// Unset removes the variable name.
func Unset(name string) (err error) {
	defer Wrap(&err, "unset environment variable %q", name)
	if !mutable {
		return errUnsupported
	}
	return os.Unsetenv(name)
}

// Map returns a snapshot of the whole environment.
func Map() map[string]string {
	environ := os.Environ()
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		// Windows keeps per-drive working directories as "=C:=C:\dir".
		if k == "" {
			continue
		}
		m[k] = v
	}
	return m
}

// Environ turns m into a "key=value" list.
func Environ(m map[string]string) []string {
	s := make([]string, 0, len(m))
	for k, v := range m {
		s = append(s, k+"="+v)
	}
	return s
}
