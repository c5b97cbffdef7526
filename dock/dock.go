// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dock implements the docking primitives: splitters with
// draggable separators, tab groups, the drag state machine, and drop
// zone detection for cross-container drags.
package dock

import (
	"github.com/kilnworks/kiln/math32"
	"github.com/kilnworks/kiln/ui"
)

// Zone is the region of a drop target a cursor is over. Center merges
// into the target tab group; the edges create a new split container on
// that side.
type Zone int32

const (
	// ZoneNone means the cursor is outside the target.
	ZoneNone Zone = iota

	ZoneLeft
	ZoneRight
	ZoneTop
	ZoneBottom

	// ZoneCenter merges the dragged panel into the target tab group.
	ZoneCenter
)

func (z Zone) String() string {
	switch z {
	case ZoneLeft:
		return "left"
	case ZoneRight:
		return "right"
	case ZoneTop:
		return "top"
	case ZoneBottom:
		return "bottom"
	case ZoneCenter:
		return "center"
	}
	return "none"
}

// DetectZone returns the drop zone for the cursor position relative to
// the target rectangle. A band of the given edge threshold (in pixels,
// clamped to half the rectangle) along each edge maps to that edge's
// zone; the interior is Center; outside is None. Corners resolve to
// whichever edge the cursor is deepest into.
func DetectZone(target math32.Box2, pos math32.Vector2, edge float32) Zone {
	if !target.ContainsPoint(pos) {
		return ZoneNone
	}
	size := target.Size()
	edge = math32.Min(edge, math32.Min(size.X, size.Y)/2)

	dl := pos.X - target.Min.X
	dr := target.Max.X - pos.X
	dt := pos.Y - target.Min.Y
	db := target.Max.Y - pos.Y

	depth := math32.Min(math32.Min(dl, dr), math32.Min(dt, db))
	if depth >= edge {
		return ZoneCenter
	}
	switch depth {
	case dl:
		return ZoneLeft
	case dr:
		return ZoneRight
	case dt:
		return ZoneTop
	}
	return ZoneBottom
}

// RegisterWidgets registers the docking widget kinds on the given
// registry. Call it once at engine build time, before building trees
// that use the widgets.
func RegisterWidgets(r *ui.Registry) error {
	if _, err := ui.Register[*Splitter](r, ui.Descriptor{
		Name:   "splitter",
		Render: renderSplitter,
	}); err != nil {
		return err
	}
	_, err := ui.Register[*TabGroup](r, ui.Descriptor{
		Name:          "tabgroup",
		Render:        renderTabGroup,
		ClipsChildren: func(ui.Widget) bool { return true },
	})
	return err
}

// renderSplitter paints the base style plus the separator bar.
func renderSplitter(w ui.Widget, dl *ui.DrawList) {
	sp := w.(*Splitter)
	st := &sp.Styles
	if st.Background.A > 0 {
		dl.FillRect(sp.Rect, st.Background.Scaled(st.Opacity), 0)
	}
	if st.BorderColor.A > 0 {
		dl.FillRect(sp.SeparatorRect(), st.BorderColor.Scaled(st.Opacity), 0)
	}
}

// renderTabGroup paints the tab strip: one tab per panel, the active
// one in the background color, titles in the foreground color.
func renderTabGroup(w ui.Widget, dl *ui.DrawList) {
	tg := w.(*TabGroup)
	st := &tg.Styles
	for i, title := range tg.Titles() {
		r := tg.TabRect(i)
		color := st.BorderColor
		if i == tg.Active {
			color = st.Background
		}
		if color.A > 0 {
			dl.FillRect(r, color.Scaled(st.Opacity), 0)
		}
		if st.Color.A > 0 {
			dl.Text(r.Min.Add(math32.Vec2(6, 4)), title, 0, st.FontSize, st.Color.Scaled(st.Opacity))
		}
	}
}

// Plugin owns the post-layout behavior of the docking widgets: it
// positions splitter children from their ratios and keeps tab groups
// showing only their active panel. Register it on the scene alongside
// the scroll plugin.
type Plugin struct{}

func (p *Plugin) Name() string { return "dock" }

func (p *Plugin) PostLayout(sc *ui.Scene) {
	applyDockLayout(sc, sc.Root)
}

func applyDockLayout(sc *ui.Scene, w ui.Widget) {
	switch d := w.(type) {
	case *Splitter:
		d.applyLayout(sc)
	case *TabGroup:
		d.applyLayout(sc)
	}
	w.AsWidget().WidgetChildren(func(kid ui.Widget) bool {
		applyDockLayout(sc, kid)
		return true
	})
}
