// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package metadata

import (
	"fmt"
	"time"

	. "github.com/black-desk/lib/go/errwrap"
)

// Attribute is a settable property of a file. It is one of CreationTime,
// LastModifiedTime, LastAccessTime, ModeAttribute, OwnerAttribute or
// WindowsAttribute.
type Attribute interface {
	attribute()
}

type (
	CreationTime     time.Time
	LastModifiedTime time.Time
	LastAccessTime   time.Time

	// ModeAttribute replaces the permission bits of a file. The type part of
	// the mode is ignored. Unix only.
	ModeAttribute FileMode

	// OwnerAttribute changes the owning user and group of a file. A negative
	// id is left unchanged. Unix only.
	OwnerAttribute struct {
		UID int
		GID int
	}

	// WindowsAttribute turns a single DOS attribute flag on or off. Windows
	// only.
	WindowsAttribute struct {
		Flag    uint32
		Enabled bool
	}
)

// DOS attribute flags.
const (
	FlagReadOnly = 0x1
	FlagHidden   = 0x2
	FlagSystem   = 0x4
	FlagArchive  = 0x20
)

func ReadOnly(enabled bool) WindowsAttribute { return WindowsAttribute{FlagReadOnly, enabled} }
func Hidden(enabled bool) WindowsAttribute   { return WindowsAttribute{FlagHidden, enabled} }
func System(enabled bool) WindowsAttribute   { return WindowsAttribute{FlagSystem, enabled} }
func Archive(enabled bool) WindowsAttribute  { return WindowsAttribute{FlagArchive, enabled} }

func (CreationTime) attribute()     {}
func (LastModifiedTime) attribute() {}
func (LastAccessTime) attribute()   {}
func (ModeAttribute) attribute()    {}
func (OwnerAttribute) attribute()   {}
func (WindowsAttribute) attribute() {}

// attrs is a set of attributes grouped by the native call that applies them.
type attrs struct {
	created  *time.Time
	modified *time.Time
	accessed *time.Time
	mode     *FileMode
	owner    *OwnerAttribute
	// set and clear hold the DOS flags to turn on and off.
	set, clear uint32
}

func (a *attrs) times() bool {
	return a.created != nil || a.modified != nil || a.accessed != nil
}

func (a *attrs) flags() bool { return a.set|a.clear != 0 }

func collect(list []Attribute) (*attrs, error) {
	if len(list) == 0 {
		return nil, ErrNoAttributes
	}
	a := &attrs{}
	for _, attr := range list {
		switch v := attr.(type) {
		case CreationTime:
			t := time.Time(v)
			a.created = &t
		case LastModifiedTime:
			t := time.Time(v)
			a.modified = &t
		case LastAccessTime:
			t := time.Time(v)
			a.accessed = &t
		case ModeAttribute:
			m := FileMode(v)
			a.mode = &m
		case OwnerAttribute:
			a.owner = &v
		case WindowsAttribute:
			if v.Enabled {
				a.set |= v.Flag
				a.clear &^= v.Flag
			} else {
				a.clear |= v.Flag
				a.set &^= v.Flag
			}
		default:
			return nil, fmt.Errorf("unknown attribute %T", attr)
		}
	}
	return a, nil
}

// SetAttributes applies attrs to the file at path. Timestamps are written
// together in a single call where the host allows it. Attributes foreign to
// the host family fail with an error wrapping errors.ErrUnsupported.
func SetAttributes(path string, followLinks bool, attrs ...Attribute) (err error) {
	defer Wrap(&err, "set attributes of %q", path)

	a, err := collect(attrs)
	if err != nil {
		return err
	}
	return set(path, followLinks, a)
}
