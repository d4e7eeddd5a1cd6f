// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

// Package stream adapts raw descriptors and handles into blocking byte
// streams.
//
// A Source reports the end of the stream with io.EOF and a released resource
// with fs.ErrClosed, so callers can tell "ended" from "failed" and "closed"
// from "unsupported".
package stream

import "io"

// Source is a readable end of a stream.
type Source interface {
	io.ReadCloser
}

// Sink is a writable end of a stream.
type Sink interface {
	io.WriteCloser
	Flush() error
}

// Empty is a Source that is always at its end. It stands in for an error
// stream that was merged into the output stream.
var Empty Source = empty{}

type empty struct{}

func (empty) Read([]byte) (int, error) { return 0, io.EOF }
func (empty) Close() error             { return nil }
