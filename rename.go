// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

// correlator pairs the two halves of renames reported as separate records
// sharing an identifier. It lives for one batch: halves left unpaired at the
// end of it are flushed.
type correlator struct {
	pending map[uint64]string
	order   []uint64
}

func newCorrelator() *correlator {
	return &correlator{pending: make(map[uint64]string)}
}

// pair records path as the old name for id, or, when id was seen before,
// returns the old name recorded for it.
func (c *correlator) pair(id uint64, path string) (old string, ok bool) {
	if old, ok = c.pending[id]; ok {
		delete(c.pending, id)
		return old, true
	}
	c.pending[id] = path
	c.order = append(c.order, id)
	return "", false
}

// flush returns unpaired old names in the order they were seen and resets c.
func (c *correlator) flush() (olds []string) {
	for _, id := range c.order {
		if old, ok := c.pending[id]; ok {
			olds = append(olds, old)
			delete(c.pending, id)
		}
	}
	c.order = c.order[:0]
	return olds
}
