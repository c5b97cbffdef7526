// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dock

import (
	"github.com/kilnworks/kiln/dirty"
	"github.com/kilnworks/kiln/math32"
	"github.com/kilnworks/kiln/styles"
	"github.com/kilnworks/kiln/ui"
)

// DefaultSeparator is the separator thickness in logical pixels.
const DefaultSeparator float32 = 4

// Splitter divides its space between exactly two children along one
// axis, with a draggable separator between them. The ratio is the
// share of the first child, always in [0, 1] and clamped so that both
// children keep their minimum sizes whenever both minimums fit.
type Splitter struct {
	ui.WidgetBase

	// Dir is the split axis: Row is a horizontal split (children side
	// by side), Column a vertical one.
	Dir styles.Direction

	// Ratio is the first child's share of the space in [0, 1].
	Ratio float32

	// MinA and MinB are the children's minimum sizes in pixels along
	// the split axis.
	MinA, MinB float32

	// Separator is the separator thickness along the split axis.
	Separator float32
}

// NewSplitter returns a new splitter added to the given parent, split
// evenly.
func NewSplitter(parent ui.Widget) *Splitter {
	sp := ui.NewWidget[*Splitter](parent)
	sp.Ratio = 0.5
	sp.Separator = DefaultSeparator
	sp.Style(func(s *styles.Style) { s.Grow = 1 })
	return sp
}

// First returns the first (left or top) child, or nil.
func (sp *Splitter) First() ui.Widget {
	if sp.NumChildren() < 1 {
		return nil
	}
	return sp.Child(0).(ui.Widget)
}

// Second returns the second (right or bottom) child, or nil.
func (sp *Splitter) Second() ui.Widget {
	if sp.NumChildren() < 2 {
		return nil
	}
	return sp.Child(1).(ui.Widget)
}

// SetRatio sets the ratio, clamped to [0, 1] and to the children's
// minimum sizes when the splitter has a layout extent to clamp
// against. A ratio of exactly 0 or 1 collapses one child to its
// minimum, never below.
func (sp *Splitter) SetRatio(r float32) {
	r = math32.Clamp(r, 0, 1)
	if sp.HasRect() {
		r = sp.ClampRatio(r, sp.Rect.Size().Dim(sp.Dir.Axis()))
	}
	if r == sp.Ratio {
		return
	}
	sp.Ratio = r
	sp.Mark(dirty.Layout)
}

// ClampRatio clamps the given ratio so both children keep their
// minimum sizes within the given extent. When the minimums do not both
// fit, the first child's minimum wins.
func (sp *Splitter) ClampRatio(r, extent float32) float32 {
	avail := extent - sp.Separator
	if avail <= 0 {
		return math32.Clamp(r, 0, 1)
	}
	lo := sp.MinA / avail
	hi := 1 - sp.MinB/avail
	if lo > hi {
		hi = lo
	}
	return math32.Clamp(r, math32.Clamp(lo, 0, 1), math32.Clamp(hi, 0, 1))
}

// ChildSizes returns the two children's sizes along the split axis for
// the given extent. The sizes and the separator always sum to the
// extent, and each child gets at least its minimum whenever both
// minimums fit.
func (sp *Splitter) ChildSizes(extent float32) (a, b float32) {
	avail := math32.Max(extent-sp.Separator, 0)
	r := sp.ClampRatio(sp.Ratio, extent)
	a = r * avail
	b = avail - a
	return a, b
}

// SeparatorRect returns the separator's rectangle for hit testing.
func (sp *Splitter) SeparatorRect() math32.Box2 {
	axis := sp.Dir.Axis()
	a, _ := sp.ChildSizes(sp.Rect.Size().Dim(axis))
	min := sp.Rect.Min
	min.SetDim(axis, min.Dim(axis)+a)
	max := sp.Rect.Max
	max.SetDim(axis, min.Dim(axis)+sp.Separator)
	return math32.Box2{Min: min, Max: max}
}

// applyLayout positions the two children from the ratio, overriding
// the flexbox pass, and relays out their subtrees.
func (sp *Splitter) applyLayout(sc *ui.Scene) {
	first, second := sp.First(), sp.Second()
	if first == nil || second == nil || !sp.HasRect() {
		return
	}
	axis := sp.Dir.Axis()
	extent := sp.Rect.Size().Dim(axis)
	a, _ := sp.ChildSizes(extent)

	fb := first.AsWidget()
	fb.Rect = sp.Rect
	fb.Rect.Max.SetDim(axis, sp.Rect.Min.Dim(axis)+a)

	sb := second.AsWidget()
	sb.Rect = sp.Rect
	sb.Rect.Min.SetDim(axis, sp.Rect.Min.Dim(axis)+a+sp.Separator)

	sc.LayoutChildren(first)
	sc.LayoutChildren(second)
}
