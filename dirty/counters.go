// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dirty

// Counters tracks how many nodes are dirty in each category so that
// "is anything dirty?" is answered in O(1) without walking the tree.
// A counter changes only when a node's flags cross between clean and
// dirty for that category, which [Transition] detects; per-node flag
// updates must always be reported through Transition for the counts to
// remain equal to the true number of dirty nodes.
//
// Counters are main-thread only, like the tree they describe.
type Counters struct {
	any    int
	layout int
	text   int
	paint  int
}

// Transition informs the counters that a node's flags changed from old
// to new, adjusting each category count on clean <-> dirty crossings.
// Decrements saturate at zero.
func (c *Counters) Transition(old, new Flags) {
	c.any += crossing(old != 0, new != 0)
	c.layout += crossing(old.Has(LayoutGroup), new.Has(LayoutGroup))
	c.text += crossing(old.Has(TextGroup), new.Has(TextGroup))
	c.paint += crossing(old.Has(PaintGroup), new.Has(PaintGroup))
	c.saturate()
}

func crossing(old, new bool) int {
	switch {
	case !old && new:
		return 1
	case old && !new:
		return -1
	}
	return 0
}

func (c *Counters) saturate() {
	c.any = max(c.any, 0)
	c.layout = max(c.layout, 0)
	c.text = max(c.text, 0)
	c.paint = max(c.paint, 0)
}

// NodeRemoved informs the counters that a node with the given flags
// left the tree.
func (c *Counters) NodeRemoved(flags Flags) {
	c.Transition(flags, 0)
}

// HasAnyDirty reports whether any node is dirty in any category.
func (c *Counters) HasAnyDirty() bool { return c.any > 0 }

// HasLayoutDirty reports whether any node needs layout.
func (c *Counters) HasLayoutDirty() bool { return c.layout > 0 }

// HasTextDirty reports whether any node needs text reshaping.
func (c *Counters) HasTextDirty() bool { return c.text > 0 }

// HasPaintDirty reports whether any node needs repaint.
func (c *Counters) HasPaintDirty() bool { return c.paint > 0 }

// Reset zeroes all counters.
func (c *Counters) Reset() {
	*c = Counters{}
}
