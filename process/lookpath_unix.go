// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build unix

package process

import (
	"errors"
	"os"
	"strings"

	"github.com/notifyio/notify/internal/platform"
	"golang.org/x/sys/unix"
)

// defaultPath is used when PATH is not set at all.
const defaultPath = "/bin:/usr/bin"

// start runs argv[0] the way execvp(3) does, but honours the PATH of the
// environment given to the child.
func start(argv []string, attr *os.ProcAttr) (*os.Process, error) {
	file := argv[0]
	if strings.Contains(file, "/") {
		return startFile(file, argv, attr)
	}

	denied := false
	for _, dir := range strings.Split(searchPath(attr.Env), ":") {
		if dir == "" {
			dir = "."
		}
		proc, err := startFile(dir+"/"+file, argv, attr)
		switch {
		case err == nil:
			return proc, nil
		case errors.Is(err, unix.EACCES):
			denied = true
		case errors.Is(err, unix.ENOENT),
			errors.Is(err, unix.ENOTDIR),
			errors.Is(err, unix.EISDIR),
			errors.Is(err, unix.ELOOP),
			errors.Is(err, unix.ENAMETOOLONG),
			errors.Is(err, unix.ETIMEDOUT):
		default:
			return nil, err
		}
	}
	if denied {
		return nil, &os.PathError{Op: "exec", Path: file, Err: unix.EACCES}
	}
	return nil, &os.PathError{Op: "exec", Path: file, Err: unix.ENOENT}
}

// startFile executes path, falling back to the system shell for scripts the
// kernel refuses to execute directly.
func startFile(path string, argv []string, attr *os.ProcAttr) (*os.Process, error) {
	proc, err := os.StartProcess(path, argv, attr)
	if !errors.Is(err, unix.ENOEXEC) {
		return proc, err
	}
	sh := platform.Current().Shell()[0]
	return os.StartProcess(sh, append([]string{sh, path}, argv[1:]...), attr)
}

func searchPath(environ []string) string {
	if environ == nil {
		if path, ok := os.LookupEnv("PATH"); ok {
			return path
		}
		return defaultPath
	}
	for i := len(environ) - 1; i >= 0; i-- {
		if path, ok := strings.CutPrefix(environ[i], "PATH="); ok {
			return path
		}
	}
	return defaultPath
}
