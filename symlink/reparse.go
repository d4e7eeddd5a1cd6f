// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package symlink

import (
	"encoding/binary"
	"errors"
	"strings"
	"unicode/utf16"
)

const (
	tagMountPoint = 0xA0000003
	tagSymlink    = 0xA000000C
)

var errShortReparse = errors.New("truncated reparse buffer")

// parseReparse extracts the target from a REPARSE_DATA_BUFFER holding a
// symbolic link or a mount point. The NT namespace prefix is stripped.
func parseReparse(buf []byte) (string, error) {
	if len(buf) < 8 {
		return "", errShortReparse
	}
	tag := binary.LittleEndian.Uint32(buf)
	body := buf[8:]
	if n := int(binary.LittleEndian.Uint16(buf[4:])); n <= len(body) {
		body = body[:n]
	} else {
		return "", errShortReparse
	}
	var names []byte
	switch tag {
	case tagSymlink:
		// SubstituteName{Offset,Length}, PrintName{Offset,Length}, Flags.
		if len(body) < 12 {
			return "", errShortReparse
		}
		names = body[12:]
	case tagMountPoint:
		if len(body) < 8 {
			return "", errShortReparse
		}
		names = body[8:]
	default:
		return "", ErrNotSymlink
	}
	off := int(binary.LittleEndian.Uint16(body[0:]))
	n := int(binary.LittleEndian.Uint16(body[2:]))
	if off+n > len(names) || n%2 != 0 {
		return "", errShortReparse
	}
	target := decodeUTF16(names[off : off+n])
	return strings.TrimPrefix(target, `\??\`), nil
}

func decodeUTF16(b []byte) string {
	u := make([]uint16, len(b)/2)
	for i := range u {
		u[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	return string(utf16.Decode(u))
}
