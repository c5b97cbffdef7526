// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package styles defines the flexbox style model for UI widgets:
// direction, wrapping, alignment, spacing, sizing constraints, and the
// paint properties (colors, opacity, borders, corner radius), along
// with a change guard that maps style edits to precise dirty flags.
package styles

// Direction is the main axis of a flexbox container.
type Direction int32

const (
	// Row lays out children horizontally.
	Row Direction = iota

	// Column lays out children vertically.
	Column
)

// Axis returns the dimension index of the main axis: 0 = X, 1 = Y.
func (d Direction) Axis() int {
	if d == Row {
		return 0
	}
	return 1
}

// Cross returns the dimension index of the cross axis.
func (d Direction) Cross() int {
	return 1 - d.Axis()
}

// Justify is the distribution of children along the main axis.
type Justify int32

const (
	JustifyStart Justify = iota
	JustifyCenter
	JustifyEnd
	JustifySpaceBetween
	JustifySpaceAround
)

// Align is the alignment of children along the cross axis.
type Align int32

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

// Overflow is what happens to content that exceeds a node's bounds on
// one axis.
type Overflow int32

const (
	// OverflowVisible renders overflowing content without clipping.
	OverflowVisible Overflow = iota

	// OverflowHidden clips overflowing content to the node's rectangle.
	OverflowHidden

	// OverflowScroll clips and makes the node a scroll container.
	OverflowScroll
)

// Clips reports whether this overflow mode clips children.
func (o Overflow) Clips() bool {
	return o != OverflowVisible
}
