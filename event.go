// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

import "strings"

// Event represents the type of filesystem action. Every backend maps its
// native notifications onto these four values.
type Event uint32

// Create, Modify, Attributes and Delete are reported on all platforms. A file
// moved into a watched directory is reported as Create, a file moved out of
// it as Delete.
const (
	Create Event = 1 << iota
	Modify
	Attributes
	Delete

	// All is handful alias for all event values.
	All = Create | Modify | Attributes | Delete
)

// events lists event values in the order a single raw event that carries
// several of them is dispatched.
var events = [...]Event{Create, Modify, Attributes, Delete}

var estr = map[Event]string{
	Create:     "notify.Create",
	Modify:     "notify.Modify",
	Attributes: "notify.Attributes",
	Delete:     "notify.Delete",
}

// String implements fmt.Stringer interface.
func (e Event) String() string {
	var s []string
	for _, ev := range events {
		if e&ev == ev {
			s = append(s, estr[ev])
		}
	}
	return strings.Join(s, "|")
}

// ParseEvent parses a lower-case event name as used on the command line.
func ParseEvent(s string) (Event, bool) {
	switch strings.ToLower(s) {
	case "create":
		return Create, true
	case "modify":
		return Modify, true
	case "attributes", "attrib":
		return Attributes, true
	case "delete":
		return Delete, true
	case "all":
		return All, true
	}
	return 0, false
}

// Func is called by a Watcher for every reported event. The path is absolute
// and clean.
type Func func(e Event, path string)
