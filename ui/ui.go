// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ui implements the retained widget tree: scenes with stable
// generational node ids, precise dirty tracking with O(1) counters, a
// flexbox layout pass that runs only when needed, clip propagation,
// widget-kind registries, plugins, and a middleware pipeline.
package ui

import (
	"github.com/kilnworks/kiln/dirty"
	"github.com/kilnworks/kiln/math32"
	"github.com/kilnworks/kiln/styles"
	"github.com/kilnworks/kiln/tree"
)

// Widget is the interface that all widget types satisfy by embedding
// [WidgetBase].
type Widget interface {
	tree.Node

	// AsWidget returns the [WidgetBase] of this widget.
	AsWidget() *WidgetBase
}

// WidgetBase is the base type for all widgets, embedded as the first
// field. It carries the node's style, dirty flags, stable id, and the
// rectangles computed by layout and clip propagation.
type WidgetBase struct {
	tree.NodeBase

	// Scene is the scene this widget lives in.
	Scene *Scene `copier:"-"`

	// ID is the widget's stable generational id in the scene arena.
	// It remains valid until the widget is deleted; stale ids resolve
	// to nil through [Scene.WidgetFor].
	ID Slot `copier:"-"`

	// Kind is the registered widget-kind token used for render-time
	// dispatch.
	Kind Kind `copier:"-"`

	// Styles is the widget's style. Mutate it only through
	// [WidgetBase.Style] so changes are converted to dirty flags.
	Styles styles.Style

	// Rect is the rectangle computed by the most recent layout pass.
	// It is defined only while [WidgetBase.HasRect] reports true.
	Rect math32.Box2 `copier:"-"`

	// Clip is the clip rectangle inherited from clipping ancestors,
	// clamped to the viewport.
	Clip math32.Box2 `copier:"-"`

	// Scroll is the scroll offset for scroll containers, clamped after
	// every layout pass to the content extent.
	Scroll math32.Vector2 `copier:"-"`

	// ContentSize is the union extent of the children, maintained for
	// scroll containers after layout.
	ContentSize math32.Vector2 `copier:"-"`

	flags      dirty.Flags
	layoutPass uint64

	// resolved at layout time for painting
	radiusDots float32
	borderDots styles.SideDots
}

// AsWidget returns the WidgetBase of this widget.
func (wb *WidgetBase) AsWidget() *WidgetBase {
	return wb
}

func (wb *WidgetBase) Init() {
	wb.Styles = styles.NewStyle()
}

// Flags returns the widget's current dirty flags.
func (wb *WidgetBase) Flags() dirty.Flags {
	return wb.flags
}

// Mark adds the given dirty flags to the widget, keeping the scene
// counters consistent. Flags in the propagate subset are also set on
// every ancestor up to the root; paint-only flags stay local.
func (wb *WidgetBase) Mark(f dirty.Flags) {
	wb.setFlags(wb.flags | f)
	if !f.Has(dirty.PropagateGroup) {
		return
	}
	up := f & dirty.PropagateGroup
	wb.WalkUpParent(func(n tree.Node) bool {
		ab := n.(Widget).AsWidget()
		ab.setFlags(ab.flags | up)
		return tree.Continue
	})
}

// ClearFlags removes the given dirty flags from the widget, keeping
// the scene counters consistent.
func (wb *WidgetBase) ClearFlags(f dirty.Flags) {
	wb.setFlags(wb.flags &^ f)
}

func (wb *WidgetBase) setFlags(new dirty.Flags) {
	old := wb.flags
	if new == old {
		return
	}
	wb.flags = new
	if wb.Scene != nil {
		wb.Scene.Counters.Transition(old, new)
	}
}

// Style exposes the widget's style for mutation and converts the edits
// into the precise dirty flags. All style mutation must go through
// here.
func (wb *WidgetBase) Style(edit func(s *styles.Style)) {
	g := styles.NewGuard(&wb.Styles)
	edit(g.Style())
	if fl := g.Commit(); fl != 0 {
		wb.Mark(fl)
	}
}

// HasRect reports whether the widget's Rect is defined, which is the
// case iff the widget survived the most recent layout pass.
func (wb *WidgetBase) HasRect() bool {
	return wb.Scene != nil && wb.layoutPass != 0 && wb.layoutPass == wb.Scene.layoutPass
}

// ScrollBy adjusts the scroll offset by the given delta, clamped to
// [0, content - viewport] per axis. Scrolling invalidates clipping and
// draw positioning but not layout.
func (wb *WidgetBase) ScrollBy(delta math32.Vector2) {
	if !wb.Styles.IsScrollContainer() {
		return
	}
	maxOff := wb.ContentSize.Sub(wb.Rect.Size()).Max(math32.Vector2{})
	next := wb.Scroll.Add(delta).Clamp(math32.Vector2{}, maxOff)
	if next == wb.Scroll {
		return
	}
	wb.Scroll = next
	wb.Mark(dirty.Clip)
}

// WidgetChildren calls the given function for each child that is a
// widget, stopping on [tree.Break].
func (wb *WidgetBase) WidgetChildren(fun func(w Widget) bool) {
	for _, k := range wb.Children {
		w, ok := k.(Widget)
		if !ok {
			continue
		}
		if fun(w) == tree.Break {
			return
		}
	}
}

// NewWidget creates a widget of the given type as a child of the given
// parent, registering it in the scene arena and marking the parent for
// relayout.
func NewWidget[T Widget](parent Widget) T {
	w := tree.New[T]()
	attach(w, parent)
	return w
}

func attach(w Widget, parent Widget) {
	pb := parent.AsWidget()
	sc := pb.Scene
	wb := w.AsWidget()
	wb.Scene = sc
	if sc != nil {
		wb.ID = sc.arena.Add(w)
		wb.Kind = sc.Registry.kindOf(w)
	}
	pb.AddChild(w)
	pb.Mark(dirty.ChildrenOrder | dirty.Layout)
}
