// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ui

import (
	"github.com/kilnworks/kiln/base/slotmap"
	"github.com/kilnworks/kiln/dirty"
	"github.com/kilnworks/kiln/events"
	"github.com/kilnworks/kiln/math32"
	"github.com/kilnworks/kiln/shaping"
	"github.com/kilnworks/kiln/tree"
)

// Slot is a stable generational widget id in a scene's arena.
type Slot = slotmap.Slot

// Scene owns one widget tree and everything needed to lay it out and
// paint it: the node arena for stable ids, the dirty counters, the
// widget-kind registry, the shaping cache, plugins, and the middleware
// pipeline. Scenes are main-thread only.
type Scene struct {
	// Root is the root container, sized to the viewport.
	Root *Frame

	// Size is the viewport size in logical pixels.
	Size math32.Vector2

	// Counters are the O(1) dirty counters for the whole tree.
	Counters dirty.Counters

	// Registry maps widget types to their kind descriptors.
	Registry *Registry

	// TextCache is the shaped-text cache used by text widgets.
	TextCache *shaping.Cache

	// TextShaper shapes text on cache misses. Text widgets measure as
	// zero when unset.
	TextShaper shaping.ShapeFunc

	// Plugins are invoked after every layout pass, in order.
	Plugins []Plugin

	// Middleware is the ordered middleware pipeline.
	Middleware Pipeline

	arena      slotmap.Arena[Widget]
	layoutPass uint64
}

// NewScene returns a scene with the given viewport size, the built-in
// widget kinds registered, and an empty root frame marked for layout.
func NewScene(size math32.Vector2) *Scene {
	sc := &Scene{
		Size:      size,
		Registry:  NewRegistry(),
		TextCache: shaping.NewCache(),
	}
	sc.Root = tree.New[*Frame]()
	rb := sc.Root.AsWidget()
	rb.SetName("root")
	rb.Scene = sc
	rb.ID = sc.arena.Add(sc.Root)
	rb.Kind = sc.Registry.kindOf(sc.Root)
	rb.Mark(dirty.Layout)
	return sc
}

// SetSize updates the viewport size and marks the root for relayout.
func (sc *Scene) SetSize(size math32.Vector2) {
	if size == sc.Size {
		return
	}
	sc.Size = size
	sc.Root.AsWidget().Mark(dirty.Layout)
}

// WidgetFor resolves a stable id to its widget, or nil if the id is
// stale.
func (sc *Scene) WidgetFor(id Slot) Widget {
	wp := sc.arena.Get(id)
	if wp == nil {
		return nil
	}
	return *wp
}

// NumWidgets returns the number of live widgets in the scene.
func (sc *Scene) NumWidgets() int {
	return sc.arena.Len()
}

// Delete removes the widget and its whole subtree from the scene:
// arena entries are released (invalidating any stored ids), the dirty
// counters are told about every removed node, and the parent is marked
// for relayout.
func (sc *Scene) Delete(w Widget) {
	wb := w.AsWidget()
	parent := wb.Parent
	wb.WalkDown(func(n tree.Node) bool {
		cb := n.(Widget).AsWidget()
		sc.Counters.NodeRemoved(cb.flags)
		cb.flags = 0
		sc.arena.Remove(cb.ID)
		return tree.Continue
	})
	wb.Delete()
	if parent != nil {
		parent.(Widget).AsWidget().Mark(dirty.ChildrenOrder | dirty.Layout)
	}
}

// Update runs one frame of the UI pipeline before rendering: key
// events are dispatched to middleware, then layout runs unless a
// middleware pauses it. When layout is paused the dirty counters are
// left untouched, so the next frame resumes where this one left off.
func (sc *Scene) Update(ctx *Context) {
	ctx.Scene = sc
	if ctx.Events != nil {
		ctx.Events.Dispatch(func(e *events.Event) events.Status {
			if e.Type != events.KeyInput {
				return events.Ignored
			}
			return sc.Middleware.KeyEvent(ctx, e)
		})
	}
	if sc.Middleware.PreLayout(ctx) {
		return
	}
	if sc.LayoutIfNeeded() {
		sc.Middleware.PostLayout(ctx)
	}
}
