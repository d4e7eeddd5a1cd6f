// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

// Package metadata reads extended file metadata and applies file attributes
// using the richest native facility of the host.
package metadata

import (
	"time"

	. "github.com/black-desk/lib/go/errwrap"
)

// Kind classifies a file for the cross-platform view of its metadata.
type Kind uint8

// File kinds.
const (
	KindOther Kind = iota
	KindRegular
	KindDirectory
	KindSymlink
)

var kstr = map[Kind]string{
	KindOther:     "other",
	KindRegular:   "regular",
	KindDirectory: "directory",
	KindSymlink:   "symlink",
}

// String implements fmt.Stringer interface.
func (k Kind) String() string { return kstr[k] }

// FileMetadata is one of *Basic, *Unix or *Windows. Values are snapshots:
// every Stat call produces a new one.
type FileMetadata interface {
	Kind() Kind
	IsRegular() bool
	IsDir() bool
	IsSymlink() bool
	IsOther() bool
	CreationTime() time.Time
	ModTime() time.Time
	AccessTime() time.Time
	Size() int64

	basic() *Basic
}

// Basic is the cross-platform minimum every host can provide.
type Basic struct {
	Type     Kind
	Created  time.Time
	Modified time.Time
	Accessed time.Time
	Length   int64
}

func (b *Basic) Kind() Kind              { return b.Type }
func (b *Basic) IsRegular() bool         { return b.Type == KindRegular }
func (b *Basic) IsDir() bool             { return b.Type == KindDirectory }
func (b *Basic) IsSymlink() bool         { return b.Type == KindSymlink }
func (b *Basic) IsOther() bool           { return b.Type == KindOther }
func (b *Basic) CreationTime() time.Time { return b.Created }
func (b *Basic) ModTime() time.Time      { return b.Modified }
func (b *Basic) AccessTime() time.Time   { return b.Accessed }
func (b *Basic) Size() int64             { return b.Length }
func (b *Basic) basic() *Basic           { return b }

// Unix is the stat(2) view of a file.
type Unix struct {
	Basic
	Dev     uint64
	Ino     uint64
	Mode    FileMode
	Nlink   uint64
	UID     uint32
	GID     uint32
	Rdev    uint64
	Changed time.Time
}

// Windows is the attribute based view of a file.
type Windows struct {
	Basic
	ReadOnly bool
	Archive  bool
	System   bool
	Hidden   bool
}

// Stat returns the metadata of the file at path. When followLinks is false a
// symbolic link describes itself instead of its target.
func Stat(path string, followLinks bool) (md FileMetadata, err error) {
	defer Wrap(&err, "read metadata of %q", path)
	return stat(path, followLinks)
}

func kindOf(m FileMode) Kind {
	switch m.Type() {
	case Regular:
		return KindRegular
	case Directory:
		return KindDirectory
	case Symlink:
		return KindSymlink
	default:
		return KindOther
	}
}
