// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package metadata

import (
	"io/fs"
	"os"
	"path/filepath"
)

const maxLinkHops = 40

// statBasic builds Basic metadata from the portable os.Lstat view, which has
// a single timestamp. Links are followed by hand.
func statBasic(path string, followLinks bool) (*Basic, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}
	if followLinks && fi.Mode()&fs.ModeSymlink != 0 {
		if fi, err = follow(path); err != nil {
			return nil, err
		}
	}
	b := &Basic{
		Type:     KindOther,
		Created:  fi.ModTime(),
		Modified: fi.ModTime(),
		Accessed: fi.ModTime(),
		Length:   fi.Size(),
	}
	switch m := fi.Mode(); {
	case m.IsRegular():
		b.Type = KindRegular
	case m.IsDir():
		b.Type = KindDirectory
	case m&fs.ModeSymlink != 0:
		b.Type = KindSymlink
	}
	return b, nil
}

func follow(path string) (fs.FileInfo, error) {
	visited := make(map[string]struct{})
	for i := 0; i < maxLinkHops; i++ {
		target, err := os.Readlink(path)
		if err != nil {
			return nil, err
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		path = filepath.Clean(target)
		if _, ok := visited[path]; ok {
			break
		}
		visited[path] = struct{}{}
		fi, err := os.Lstat(path)
		if err != nil {
			return nil, err
		}
		if fi.Mode()&fs.ModeSymlink == 0 {
			return fi, nil
		}
	}
	return nil, &fs.PathError{Op: "stat", Path: path, Err: ErrTooManyLinks}
}
