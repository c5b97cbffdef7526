// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dock

import (
	"github.com/kilnworks/kiln/math32"
	"github.com/kilnworks/kiln/ui"
)

// DragThreshold is the cursor displacement in logical pixels that
// promotes a pending drag to an active one.
const DragThreshold float32 = 4

// DragType is what a drag manipulates.
type DragType int32

const (
	// DragSplitter resizes a splitter by its separator.
	DragSplitter DragType = iota

	// DragPanel moves a panel between containers.
	DragPanel

	// DragTab reorders tabs within a tab group.
	DragTab
)

// DragPhase is the state of the drag machine.
type DragPhase int32

const (
	// DragNone means no drag is in progress.
	DragNone DragPhase = iota

	// DragPending means a press happened but the cursor has not moved
	// past the threshold; releasing here is a click, not a drag.
	DragPending

	// DragActive means the drag is live and tracking the cursor.
	DragActive
)

// Drag is the docking drag state machine:
// None -> Pending(start, type, original value) -> Active(delta).
// Cancellation restores the original value through the owner.
type Drag struct {
	phase DragPhase
	typ   DragType
	start math32.Vector2
	pos   math32.Vector2

	// target resolves through the scene arena so a widget deleted
	// mid-drag cannot be dereferenced.
	target ui.Slot

	// originalRatio and originalIndex snapshot the pre-drag value for
	// cancellation; curIndex tracks the dragged tab as it swaps.
	originalRatio float32
	originalIndex int
	curIndex      int
}

// Phase returns the current drag phase.
func (d *Drag) Phase() DragPhase { return d.phase }

// Type returns the drag type; meaningful outside DragNone.
func (d *Drag) Type() DragType { return d.typ }

// Target returns the dragged widget's stable id.
func (d *Drag) Target() ui.Slot { return d.target }

// Delta returns the cursor displacement from the start position;
// zero outside DragActive.
func (d *Drag) Delta() math32.Vector2 {
	if d.phase != DragActive {
		return math32.Vector2{}
	}
	return d.pos.Sub(d.start)
}

// BeginSplitter starts a pending splitter-resize drag at the given
// cursor position, snapshotting the ratio for cancellation.
func (d *Drag) BeginSplitter(sp *Splitter, pos math32.Vector2) {
	*d = Drag{
		phase:         DragPending,
		typ:           DragSplitter,
		start:         pos,
		pos:           pos,
		target:        sp.ID,
		originalRatio: sp.Ratio,
	}
}

// BeginTab starts a pending tab-reorder drag, snapshotting the tab's
// index for cancellation.
func (d *Drag) BeginTab(tg *TabGroup, index int, pos math32.Vector2) {
	*d = Drag{
		phase:         DragPending,
		typ:           DragTab,
		start:         pos,
		pos:           pos,
		target:        tg.ID,
		originalIndex: index,
		curIndex:      index,
	}
}

// BeginPanel starts a pending panel-move drag.
func (d *Drag) BeginPanel(panel ui.Widget, pos math32.Vector2) {
	*d = Drag{
		phase:  DragPending,
		typ:    DragPanel,
		start:  pos,
		pos:    pos,
		target: panel.AsWidget().ID,
	}
}

// Move updates the cursor position, promoting Pending to Active once
// the displacement exceeds the threshold, and applies the drag to its
// target. It reports whether the drag is active.
func (d *Drag) Move(sc *ui.Scene, pos math32.Vector2) bool {
	switch d.phase {
	case DragNone:
		return false
	case DragPending:
		d.pos = pos
		if pos.Sub(d.start).Length() <= DragThreshold {
			return false
		}
		d.phase = DragActive
	case DragActive:
		d.pos = pos
	}
	d.apply(sc)
	return d.phase == DragActive
}

// apply pushes the active drag's delta into the target widget.
func (d *Drag) apply(sc *ui.Scene) {
	w := sc.WidgetFor(d.target)
	if w == nil {
		d.phase = DragNone
		return
	}
	switch d.typ {
	case DragSplitter:
		sp := w.(*Splitter)
		axis := sp.Dir.Axis()
		extent := sp.Rect.Size().Dim(axis)
		if extent <= 0 {
			return
		}
		delta := d.Delta().Dim(axis) / extent
		sp.SetRatio(d.originalRatio + delta)
	case DragTab:
		d.curIndex = w.(*TabGroup).dragTabTo(d.curIndex, d.pos)
	}
}

// End completes the drag, leaving the target at its dragged value. It
// reports whether an active drag was committed (a pending drag ends as
// a click).
func (d *Drag) End() bool {
	active := d.phase == DragActive
	d.phase = DragNone
	return active
}

// Cancel aborts the drag and restores the pre-drag ratio or order on
// the target.
func (d *Drag) Cancel(sc *ui.Scene) {
	if d.phase == DragNone {
		return
	}
	if w := sc.WidgetFor(d.target); w != nil {
		switch d.typ {
		case DragSplitter:
			w.(*Splitter).SetRatio(d.originalRatio)
		case DragTab:
			w.(*TabGroup).MoveTab(d.curIndex, d.originalIndex)
		}
	}
	d.phase = DragNone
}
