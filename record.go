// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf16"
)

// inotifyRecord is a decoded struct inotify_event.
type inotifyRecord struct {
	wd     int32
	mask   uint32
	cookie uint32
	name   string
}

const sizeofInotifyEvent = 16

// readInotifyRecords decodes every struct inotify_event in buf. A record cut
// short by the end of buf yields ErrShortRead together with the records
// decoded before it.
func readInotifyRecords(buf []byte) ([]inotifyRecord, error) {
	var recs []inotifyRecord
	for off := 0; off < len(buf); {
		if len(buf)-off < sizeofInotifyEvent {
			return recs, fmt.Errorf("%w: %d bytes left of inotify header", ErrShortRead, len(buf)-off)
		}
		rec := inotifyRecord{
			wd:     int32(binary.NativeEndian.Uint32(buf[off:])),
			mask:   binary.NativeEndian.Uint32(buf[off+4:]),
			cookie: binary.NativeEndian.Uint32(buf[off+8:]),
		}
		n := int(binary.NativeEndian.Uint32(buf[off+12:]))
		off += sizeofInotifyEvent
		if n > len(buf)-off {
			return recs, fmt.Errorf("%w: name of %d bytes, %d left", ErrShortRead, n, len(buf)-off)
		}
		name := buf[off : off+n]
		if i := bytes.IndexByte(name, 0); i != -1 {
			name = name[:i]
		}
		rec.name = string(name)
		off += n
		recs = append(recs, rec)
	}
	return recs, nil
}

// notifyInformation is a decoded FILE_NOTIFY_INFORMATION.
type notifyInformation struct {
	action uint32
	name   string
}

const sizeofNotifyInformation = 12

// readNotifyInformation decodes the chain of FILE_NOTIFY_INFORMATION records
// filled in by ReadDirectoryChangesW.
func readNotifyInformation(buf []byte) ([]notifyInformation, error) {
	var recs []notifyInformation
	for off := 0; ; {
		if len(buf)-off < sizeofNotifyInformation {
			return recs, fmt.Errorf("%w: %d bytes left of record header", ErrShortRead, len(buf)-off)
		}
		next := int(binary.LittleEndian.Uint32(buf[off:]))
		action := binary.LittleEndian.Uint32(buf[off+4:])
		n := int(binary.LittleEndian.Uint32(buf[off+8:]))
		start := off + sizeofNotifyInformation
		if n > len(buf)-start || n%2 != 0 {
			return recs, fmt.Errorf("%w: name of %d bytes, %d left", ErrShortRead, n, len(buf)-start)
		}
		recs = append(recs, notifyInformation{
			action: action,
			name:   decodeUTF16(buf[start : start+n]),
		})
		if next == 0 {
			return recs, nil
		}
		if next < sizeofNotifyInformation+n || next > len(buf)-off {
			return recs, fmt.Errorf("%w: next record at %d", ErrShortRead, off+next)
		}
		off += next
	}
}

func decodeUTF16(b []byte) string {
	u := make([]uint16, len(b)/2)
	for i := range u {
		u[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	return string(utf16.Decode(u))
}
