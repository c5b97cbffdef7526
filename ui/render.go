// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ui

import (
	"github.com/kilnworks/kiln/dirty"
	"github.com/kilnworks/kiln/math32"
	"github.com/kilnworks/kiln/tree"
)

// Render walks the tree in paint order, dispatching each widget's kind
// descriptor into the draw list, then composites middleware overlays
// on top. Subtrees that missed the most recent layout pass are skipped
// rather than painted with stale rectangles. Paint flags are cleared
// as widgets are drawn.
func (sc *Scene) Render(ctx *Context, dl *DrawList) {
	ctx.Scene = sc
	sc.Middleware.PreRender(ctx)

	view := math32.Box2{Max: sc.Size}
	dl.Reset(view)
	sc.renderWalk(sc.Root, dl, math32.Vector2{})

	dl.SetClip(view)
	dl.SetOffset(math32.Vector2{})
	sc.Middleware.PostRender(ctx, dl)
}

func (sc *Scene) renderWalk(w Widget, dl *DrawList, off math32.Vector2) {
	wb := w.AsWidget()
	if !wb.HasRect() {
		return
	}
	dl.SetClip(wb.Clip)
	dl.SetOffset(off)
	sc.renderWidget(w, dl)
	wb.ClearFlags(dirty.PaintGroup | dirty.Transform | dirty.Clip)

	childOff := off.Sub(sc.scrollOf(w))
	wb.WidgetChildren(func(kid Widget) bool {
		sc.renderWalk(kid, dl, childOff)
		return tree.Continue
	})
}
