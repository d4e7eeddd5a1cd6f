// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package metadata

import "testing"

func TestFileModeRoundTrip(t *testing.T) {
	for _, typ := range types {
		for p := Permission(0); p <= AllPermissions; p++ {
			m := NewFileMode(typ, p)
			if got := m.Type(); got != typ {
				t.Fatalf("want type=%v; got %v (mode=%o)", typ, got, uint32(m))
			}
			if got := m.Permissions(); got != p {
				t.Fatalf("want permissions=%v; got %v (mode=%o)", p, got, uint32(m))
			}
		}
	}
}

func TestFileModeType(t *testing.T) {
	cases := [...]struct {
		mode  FileMode
		typ   Type
		other bool
	}{
		0: {0100644, Regular, false},
		1: {040755, Directory, false},
		2: {0120777, Symlink, false},
		3: {020666, CharDevice, true},
		4: {060660, BlockDevice, true},
		5: {010644, Fifo, true},
		6: {0140755, Socket, true},
		7: {0644, 0, true},
		8: {0x3000 | 0644, 0, true},
		9: {0xF000 | 0755, 0, true},
	}
	for i, cas := range cases {
		if typ := cas.mode.Type(); typ != cas.typ {
			t.Errorf("want type=%v; got %v (i=%d)", cas.typ, typ, i)
		}
		if other := cas.mode.IsOther(); other != cas.other {
			t.Errorf("want other=%v; got %v (i=%d)", cas.other, other, i)
		}
	}
}

func TestPermissionString(t *testing.T) {
	cases := [...]struct {
		p Permission
		s string
	}{
		0: {0, "---------"},
		1: {AllPermissions, "rwxrwxrwx"},
		2: {0750, "rwxr-x---"},
		3: {OwnerExecute, "--x------"},
		4: {OthersWrite | GroupRead, "---r---w-"},
	}
	for i, cas := range cases {
		if s := cas.p.String(); s != cas.s {
			t.Errorf("want s=%s; got %s (i=%d)", cas.s, s, i)
		}
	}
}
