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

const (
	// TabBarHeight is the height of the tab strip in logical pixels.
	TabBarHeight float32 = 28

	// TabWidth is the fixed width of one tab in the strip.
	TabWidth float32 = 120
)

// TabGroup is an ordered set of panels with one active panel visible
// under a tab strip. A tab group always has at least one panel: closing
// the last tab collapses the group out of its parent.
type TabGroup struct {
	ui.WidgetBase

	// Active is the index of the visible panel.
	Active int
}

// NewTabGroup returns a new tab group added to the given parent with a
// single empty panel.
func NewTabGroup(parent ui.Widget, firstTitle string) *TabGroup {
	tg := ui.NewWidget[*TabGroup](parent)
	tg.Style(func(s *styles.Style) { s.Grow = 1 })
	tg.AddTab(firstTitle)
	return tg
}

// NumTabs returns the number of panels.
func (tg *TabGroup) NumTabs() int {
	return tg.NumChildren()
}

// Panel returns the panel at the given index, or nil.
func (tg *TabGroup) Panel(i int) ui.Widget {
	if i < 0 || i >= tg.NumChildren() {
		return nil
	}
	return tg.Child(i).(ui.Widget)
}

// ActivePanel returns the visible panel.
func (tg *TabGroup) ActivePanel() ui.Widget {
	return tg.Panel(tg.Active)
}

// Titles returns the tab titles in order.
func (tg *TabGroup) Titles() []string {
	ts := make([]string, 0, tg.NumChildren())
	tg.WidgetChildren(func(w ui.Widget) bool {
		ts = append(ts, w.AsTree().Name)
		return true
	})
	return ts
}

// AddTab appends a panel with the given title and returns its content
// frame. The new tab becomes active.
func (tg *TabGroup) AddTab(title string) *ui.Frame {
	f := ui.NewFrame(tg)
	f.SetName(title)
	tg.Active = tg.NumChildren() - 1
	return f
}

// SelectTab makes the panel at the given index active.
func (tg *TabGroup) SelectTab(i int) {
	if i < 0 || i >= tg.NumChildren() || i == tg.Active {
		return
	}
	tg.Active = i
	tg.Mark(dirty.Layout)
}

// CloseTab removes the panel at the given index. Closing the last
// panel collapses the whole group.
func (tg *TabGroup) CloseTab(i int) {
	p := tg.Panel(i)
	if p == nil {
		return
	}
	sc := tg.Scene
	if tg.NumChildren() == 1 {
		sc.Delete(tg)
		return
	}
	sc.Delete(p)
	if i < tg.Active {
		tg.Active--
	}
	if tg.Active >= tg.NumChildren() {
		tg.Active = tg.NumChildren() - 1
	}
}

// MoveTab moves the panel at index from to index to, shifting the
// panels in between and keeping the same panel active.
func (tg *TabGroup) MoveTab(from, to int) {
	if from == to {
		return
	}
	activePanel := tg.ActivePanel()
	if !tg.MoveChild(from, to) {
		return
	}
	for i := 0; i < tg.NumChildren(); i++ {
		if tg.Panel(i) == activePanel {
			tg.Active = i
			break
		}
	}
	tg.Mark(dirty.ChildrenOrder | dirty.Layout)
}

// TabRect returns the strip rectangle of the tab at the given index,
// for hit testing and reorder midpoint checks.
func (tg *TabGroup) TabRect(i int) math32.Box2 {
	min := tg.Rect.Min.Add(math32.Vec2(float32(i)*TabWidth, 0))
	return math32.Box2{Min: min, Max: min.Add(math32.Vec2(TabWidth, TabBarHeight))}
}

// ContentRect returns the panel area under the tab strip.
func (tg *TabGroup) ContentRect() math32.Box2 {
	r := tg.Rect
	r.Min.Y += TabBarHeight
	r.Max.Y = math32.Max(r.Max.Y, r.Min.Y)
	return r
}

// dragTabTo moves the dragged tab (currently at index cur) toward the
// cursor, swapping with a neighbor when the cursor crosses the
// neighbor's midpoint. It returns the tab's new index.
func (tg *TabGroup) dragTabTo(cur int, pos math32.Vector2) int {
	for cur > 0 && pos.X < tg.TabRect(cur-1).Center().X {
		tg.MoveTab(cur, cur-1)
		cur--
	}
	for cur < tg.NumChildren()-1 && pos.X > tg.TabRect(cur+1).Center().X {
		tg.MoveTab(cur, cur+1)
		cur++
	}
	return cur
}

// applyLayout gives the active panel the content rectangle and
// collapses the inactive ones, then relays out the visible subtree.
func (tg *TabGroup) applyLayout(sc *ui.Scene) {
	if !tg.HasRect() {
		return
	}
	content := tg.ContentRect()
	for i := 0; i < tg.NumChildren(); i++ {
		p := tg.Panel(i)
		pb := p.AsWidget()
		if i == tg.Active {
			pb.Rect = content
			sc.LayoutChildren(p)
		} else {
			pb.Rect = math32.Box2{Min: content.Min, Max: content.Min}
		}
	}
}
