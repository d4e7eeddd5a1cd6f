// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package metadata

import (
	"strconv"
	"strings"
)

// FileMode is a packed st_mode style value: bits 12-15 select the file type,
// the low bits hold the permission set.
type FileMode uint32

// Type is the file type part of a FileMode. The zero Type means "no type".
type Type uint32

// File types.
const (
	Fifo        Type = 0x1000
	CharDevice  Type = 0x2000
	Directory   Type = 0x4000
	BlockDevice Type = 0x6000
	Regular     Type = 0x8000
	Symlink     Type = 0xA000
	Socket      Type = 0xC000
)

const typeMask = 0xF000

// Permission is a set of owner/group/others read/write/execute bits.
type Permission uint32

// Permission bits.
const (
	OwnerRead     Permission = 0x100
	OwnerWrite    Permission = 0x80
	OwnerExecute  Permission = 0x40
	GroupRead     Permission = 0x20
	GroupWrite    Permission = 0x10
	GroupExecute  Permission = 0x8
	OthersRead    Permission = 0x4
	OthersWrite   Permission = 0x2
	OthersExecute Permission = 0x1

	// AllPermissions is the union of every permission bit.
	AllPermissions Permission = 0x1FF
)

var types = [...]Type{Directory, CharDevice, BlockDevice, Regular, Fifo, Symlink, Socket}

var tstr = map[Type]string{
	Fifo:        "fifo",
	CharDevice:  "char-device",
	Directory:   "directory",
	BlockDevice: "block-device",
	Regular:     "regular",
	Symlink:     "symlink",
	Socket:      "socket",
}

// NewFileMode packs t and p into a FileMode.
func NewFileMode(t Type, p Permission) FileMode {
	return FileMode(uint32(t)&typeMask | uint32(p&AllPermissions))
}

// Type decodes the file type; an unknown bit pattern yields 0.
func (m FileMode) Type() Type {
	for _, t := range types {
		if uint32(m)&typeMask == uint32(t) {
			return t
		}
	}
	return 0
}

// Permissions decodes the permission set.
func (m FileMode) Permissions() Permission {
	return Permission(m) & AllPermissions
}

func (m FileMode) IsRegular() bool { return m.Type() == Regular }
func (m FileMode) IsDir() bool     { return m.Type() == Directory }
func (m FileMode) IsSymlink() bool { return m.Type() == Symlink }

// IsOther reports whether m is neither a regular file, a directory nor a
// symbolic link.
func (m FileMode) IsOther() bool {
	t := m.Type()
	return t != Regular && t != Directory && t != Symlink
}

// String implements fmt.Stringer interface.
func (m FileMode) String() string {
	return "FileMode(type=" + m.Type().String() + ", permissions=" +
		m.Permissions().String() + ", raw=" + strconv.FormatUint(uint64(m), 8) + ")"
}

// String implements fmt.Stringer interface.
func (t Type) String() string {
	if s, ok := tstr[t]; ok {
		return s
	}
	return "none"
}

// String returns the permission set in ls(1) notation, e.g. "rwxr-x---".
func (p Permission) String() string {
	const rwx = "rwxrwxrwx"
	var b strings.Builder
	for i := 0; i < 9; i++ {
		if p&(OwnerRead>>uint(i)) != 0 {
			b.WriteByte(rwx[i])
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
