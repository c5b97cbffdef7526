// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ui

import (
	"github.com/kilnworks/kiln/dirty"
	"github.com/kilnworks/kiln/math32"
	"github.com/kilnworks/kiln/tree"
)

// Plugin observes the widget tree after every layout pass. State that
// spans widgets (the dragged scrollbar thumb, hover tracking) lives on
// the plugin, not on individual widgets.
type Plugin interface {
	// Name identifies the plugin.
	Name() string

	// PostLayout runs after every completed layout pass.
	PostLayout(sc *Scene)
}

// ScrollPlugin owns scroll-container behavior: after layout it
// computes each container's content extent and clamps its scroll
// offset to [0, content - viewport] per axis. Clamping marks the
// container's clip dirty, never its layout.
type ScrollPlugin struct {
	// Dragging is the container currently being scrollbar-dragged,
	// resolved through the scene arena so a deleted widget cannot be
	// dereferenced.
	Dragging Slot
}

func (p *ScrollPlugin) Name() string { return "scroll" }

func (p *ScrollPlugin) PostLayout(sc *Scene) {
	sc.Root.AsWidget().WalkDown(func(n tree.Node) bool {
		wb := n.(Widget).AsWidget()
		if !wb.Styles.IsScrollContainer() {
			return tree.Continue
		}
		maxOff := wb.ContentSize.Sub(wb.Rect.Size()).Max(math32.Vector2{})
		clamped := wb.Scroll.Clamp(math32.Vector2{}, maxOff)
		if clamped != wb.Scroll {
			wb.Scroll = clamped
			wb.Mark(dirty.Clip)
		}
		return tree.Continue
	})
}
