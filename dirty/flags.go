// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dirty provides the fine-grained invalidation primitives for
// the retained UI: per-node dirty flag bitfields, O(1) category
// counters maintained by transition detection, and versioned values
// for cache invalidation.
package dirty

import "strings"

// Flags is a bitfield of per-node dirty flags indicating which
// downstream computations must be redone for a node.
type Flags uint32

const (
	// Style indicates a coarse style change. For counter purposes it
	// implies layout, since arbitrary style fields can affect layout.
	Style Flags = 1 << iota

	// Layout indicates the flexbox layout of the node is invalid.
	Layout

	// Geometry indicates a position or size change that affects paint
	// but not layout (for example a computed rounding change).
	Geometry

	// TextShaping indicates the node's text content must be reshaped.
	TextShaping

	// ColorOnly indicates only colors changed.
	ColorOnly

	// OpacityOnly indicates only opacity changed.
	OpacityOnly

	// Transform indicates a render transform change.
	Transform

	// ChildrenOrder indicates children were added, removed, or reordered.
	ChildrenOrder

	// Clip indicates the node's clip rectangle is invalid.
	Clip
)

// Flag groups used by the counters and the layout pass.
const (
	// LayoutGroup is the subset of flags that require a layout pass.
	LayoutGroup = Layout | TextShaping | ChildrenOrder | Style

	// TextGroup is the subset of flags that require text reshaping.
	TextGroup = TextShaping

	// PaintGroup is the subset of flags that require repaint only.
	PaintGroup = ColorOnly | OpacityOnly | Geometry

	// PropagateGroup is the subset of flags that are set on every
	// ancestor when marked on a node.
	PropagateGroup = Layout | ChildrenOrder

	// LayoutClearGroup is the subset cleared on all touched nodes when
	// a layout pass completes.
	LayoutClearGroup = Layout | TextShaping | ChildrenOrder
)

var flagNames = []string{"Style", "Layout", "Geometry", "TextShaping",
	"ColorOnly", "OpacityOnly", "Transform", "ChildrenOrder", "Clip"}

// Has reports whether any of the given flags are set.
func (f Flags) Has(of Flags) bool {
	return f&of != 0
}

// String returns a + separated list of the set flag names.
func (f Flags) String() string {
	if f == 0 {
		return "Clean"
	}
	var b strings.Builder
	for i, nm := range flagNames {
		if f&(1<<i) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('+')
		}
		b.WriteString(nm)
	}
	return b.String()
}
