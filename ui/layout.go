// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ui

import (
	"log/slog"

	"github.com/kilnworks/kiln/dirty"
	"github.com/kilnworks/kiln/math32"
	"github.com/kilnworks/kiln/styles"
	"github.com/kilnworks/kiln/styles/units"
	"github.com/kilnworks/kiln/tree"
)

// Measurer is implemented by content-sized widgets that can report an
// intrinsic size for the given available space. Text widgets delegate
// to the shaping cache.
type Measurer interface {
	// Measure returns the intrinsic size, or false if the widget
	// cannot measure itself in this context.
	Measure(available math32.Vector2) (math32.Vector2, bool)
}

// LayoutIfNeeded computes layout iff the layout-dirty counter is
// non-zero, reporting whether a pass ran. After a pass, the layout
// flags of every touched node are cleared, clip rectangles are
// repropagated, and plugin PostLayout hooks run.
func (sc *Scene) LayoutIfNeeded() bool {
	if !sc.Counters.HasLayoutDirty() {
		return false
	}
	sc.performLayout()
	return true
}

func (sc *Scene) performLayout() {
	sc.layoutPass++
	rb := sc.Root.AsWidget()
	rb.Rect = math32.Box2{Max: sc.Size}
	rb.layoutPass = sc.layoutPass
	sc.layoutChildren(sc.Root)

	rb.WalkDown(func(n tree.Node) bool {
		wb := n.(Widget).AsWidget()
		if wb.layoutPass == sc.layoutPass {
			wb.ClearFlags(dirty.LayoutClearGroup | dirty.Style)
		}
		return tree.Continue
	})

	for _, p := range sc.Plugins {
		p.PostLayout(sc)
	}
	sc.propagateClips()
}

// LayoutChildren recomputes the subtree layout of the given widget
// from its current Rect, for plugins and custom containers that
// position children outside the flexbox pass.
func (sc *Scene) LayoutChildren(w Widget) {
	sc.layoutChildren(w)
}

// flexItem is the per-child working state of one layout step.
type flexItem struct {
	w      Widget
	main   float32
	cross  float32
	margin styles.SideDots
	min    float32
	max    float32
	grow   float32
	shrink float32
	sized  math32.Vector2 // intrinsic size from Measure, if any
	meas   bool
}

// layoutChildren performs one flexbox step: resolve each child's basis
// along the main axis, grow or shrink into the free space, position by
// justify and align, then recurse.
func (sc *Scene) layoutChildren(w Widget) {
	wb := w.AsWidget()
	st := &wb.Styles
	size := wb.Rect.Size()

	wctx := units.Context{ViewW: sc.Size.X, ViewH: sc.Size.Y, Parent: size.X, HasParent: true}
	pad := st.Padding.Resolve(&wctx)
	wb.borderDots = st.BorderWidth.Resolve(&wctx)
	wb.radiusDots, _ = st.Radius.Resolve(&wctx)

	inner := math32.Box2{
		Min: wb.Rect.Min.Add(math32.Vec2(pad.Left, pad.Top)),
		Max: wb.Rect.Max.Sub(math32.Vec2(pad.Right, pad.Bottom)),
	}
	axis := st.Direction.Axis()
	cross := st.Direction.Cross()
	innerSize := inner.Size().Max(math32.Vector2{})

	var items []flexItem
	wb.WidgetChildren(func(kid Widget) bool {
		items = append(items, sc.resolveItem(kid, axis, cross, innerSize))
		return tree.Continue
	})
	if len(items) == 0 {
		return
	}

	gap, _ := st.Gap.Resolve(&units.Context{
		ViewW: sc.Size.X, ViewH: sc.Size.Y,
		Parent: innerSize.Dim(axis), HasParent: true,
	})

	total := gap * float32(len(items)-1)
	var totalGrow, totalShrinkWeight float32
	for i := range items {
		it := &items[i]
		total += it.main + it.margin.Dim(axis)
		totalGrow += it.grow
		totalShrinkWeight += it.shrink * it.main
	}
	free := innerSize.Dim(axis) - total

	switch {
	case free > 0 && totalGrow > 0:
		for i := range items {
			it := &items[i]
			it.main = clampMain(it.main+free*it.grow/totalGrow, it.min, it.max)
		}
		free = 0
	case free < 0 && totalShrinkWeight > 0:
		over := -free
		for i := range items {
			it := &items[i]
			shrunk := it.main - over*it.shrink*it.main/totalShrinkWeight
			it.main = math32.Max(shrunk, math32.Max(it.min, 0))
		}
		free = 0
	}

	lead, between := justifySpacing(st.Justify, math32.Max(free, 0), len(items))

	cursor := inner.Min.Dim(axis) + lead
	for i := range items {
		it := &items[i]
		kb := it.w.AsWidget()

		crossSize := it.cross
		crossLead := marginLead(it.margin, cross)
		crossAvail := innerSize.Dim(cross) - it.margin.Dim(cross)
		var crossPos float32
		switch st.Align {
		case styles.AlignStretch:
			crossSize = crossAvail
			crossPos = inner.Min.Dim(cross) + crossLead
		case styles.AlignCenter:
			crossPos = inner.Min.Dim(cross) + crossLead + (crossAvail-crossSize)/2
		case styles.AlignEnd:
			crossPos = inner.Max.Dim(cross) - marginTrail(it.margin, cross) - crossSize
		default:
			crossPos = inner.Min.Dim(cross) + crossLead
		}

		mainPos := cursor + marginLead(it.margin, axis)
		var pmin, psize math32.Vector2
		pmin.SetDim(axis, mainPos)
		pmin.SetDim(cross, crossPos)
		psize.SetDim(axis, it.main)
		psize.SetDim(cross, crossSize)
		kb.Rect = math32.Box2{Min: pmin, Max: pmin.Add(psize)}
		kb.layoutPass = sc.layoutPass

		sc.layoutChildren(it.w)

		cursor += it.main + it.margin.Dim(axis) + gap + between
	}

	wb.ContentSize = contentExtent(wb).Max.Sub(inner.Min).Max(math32.Vector2{})
}

// resolveItem computes a child's pre-flex main size and cross size.
// An unresolvable or auto main constraint falls back to the measure
// hook; widgets without one start at zero and rely on their grow
// factor. A constraint that was given but could not resolve is
// reported before the zero fallback.
func (sc *Scene) resolveItem(kid Widget, axis, cross int, inner math32.Vector2) flexItem {
	kb := kid.AsWidget()
	ks := &kb.Styles
	mctx := units.Context{ViewW: sc.Size.X, ViewH: sc.Size.Y, Parent: inner.Dim(axis), HasParent: true}
	cctx := units.Context{ViewW: sc.Size.X, ViewH: sc.Size.Y, Parent: inner.Dim(cross), HasParent: true}

	it := flexItem{
		w:      kid,
		margin: ks.Margin.Resolve(&mctx),
		grow:   ks.Grow,
		shrink: ks.Shrink,
		min:    -1,
		max:    -1,
	}
	if v, ok := minExpr(ks, axis).Resolve(&mctx); ok {
		it.min = v
	}
	if v, ok := maxExpr(ks, axis).Resolve(&mctx); ok {
		it.max = v
	}

	main, mainOK := sizeExpr(ks, axis, true).Resolve(&mctx)
	crossV, crossOK := sizeExpr(ks, cross, false).Resolve(&cctx)

	if !mainOK || !crossOK {
		if m, ok := kid.(Measurer); ok {
			avail := inner.Sub(math32.Vec2(it.margin.Horizontal(), it.margin.Vertical()))
			if sz, got := m.Measure(avail); got {
				it.sized, it.meas = sz, true
			}
		}
	}
	if !mainOK {
		if it.meas {
			main = it.sized.Dim(axis)
		} else {
			if !sizeExpr(ks, axis, true).IsZero() {
				slog.Debug("ui.layout: unresolvable size constraint treated as 0", "widget", kb.Path(), "axis", axis)
			}
			main = 0
		}
	}
	if !crossOK {
		if it.meas {
			crossV = it.sized.Dim(cross)
		} else {
			crossV = inner.Dim(cross) - it.margin.Dim(cross)
		}
	}

	it.main = clampMain(main, it.min, it.max)
	it.cross = math32.Max(crossV, 0)
	return it
}

// sizeExpr returns the sizing expression for the given dimension:
// Basis wins on the main axis, then Width or Height.
func sizeExpr(s *styles.Style, dim int, mainAxis bool) units.Expr {
	if mainAxis && !s.Basis.IsZero() {
		return s.Basis
	}
	if dim == 0 {
		return s.Width
	}
	return s.Height
}

func minExpr(s *styles.Style, dim int) units.Expr {
	if dim == 0 {
		return s.MinWidth
	}
	return s.MinHeight
}

func maxExpr(s *styles.Style, dim int) units.Expr {
	if dim == 0 {
		return s.MaxWidth
	}
	return s.MaxHeight
}

// clampMain applies min/max constraints; negative min/max mean unset.
func clampMain(v, min, max float32) float32 {
	if max >= 0 {
		v = math32.Min(v, max)
	}
	if min >= 0 {
		v = math32.Max(v, min)
	}
	return math32.Max(v, 0)
}

// justifySpacing returns the leading offset and extra spacing between
// children for distributing free main-axis space.
func justifySpacing(j styles.Justify, free float32, n int) (lead, between float32) {
	switch j {
	case styles.JustifyCenter:
		return free / 2, 0
	case styles.JustifyEnd:
		return free, 0
	case styles.JustifySpaceBetween:
		if n > 1 {
			return 0, free / float32(n-1)
		}
		return 0, 0
	case styles.JustifySpaceAround:
		per := free / float32(n)
		return per / 2, per
	}
	return 0, 0
}

func marginLead(m styles.SideDots, dim int) float32 {
	if dim == 0 {
		return m.Left
	}
	return m.Top
}

func marginTrail(m styles.SideDots, dim int) float32 {
	if dim == 0 {
		return m.Right
	}
	return m.Bottom
}

// contentExtent returns the union of the children's rectangles, for
// scroll-extent computation.
func contentExtent(wb *WidgetBase) math32.Box2 {
	ext := math32.Box2{Min: wb.Rect.Min, Max: wb.Rect.Min}
	wb.WidgetChildren(func(kid Widget) bool {
		ext = ext.Union(kid.AsWidget().Rect)
		return tree.Continue
	})
	return ext
}

// propagateClips walks the tree assigning each node the intersection
// of the clip rectangles of its clipping ancestors, clamped to the
// viewport. Clip flags are cleared along the way.
func (sc *Scene) propagateClips() {
	view := math32.Box2{Max: sc.Size}
	var walk func(w Widget, clip math32.Box2)
	walk = func(w Widget, clip math32.Box2) {
		wb := w.AsWidget()
		wb.Clip = clip.Intersect(view)
		wb.ClearFlags(dirty.Clip)
		childClip := clip
		if sc.clipsChildren(w) {
			childClip = clip.Intersect(wb.Rect)
		}
		wb.WidgetChildren(func(kid Widget) bool {
			walk(kid, childClip)
			return tree.Continue
		})
	}
	walk(sc.Root, view)
}
