// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package styles

import (
	"reflect"

	"github.com/kilnworks/kiln/dirty"
	"github.com/kilnworks/kiln/styles/units"
)

// Guard wraps mutable access to a [Style] and, on [Guard.Commit],
// diffs the exposed fields against a snapshot taken at creation,
// returning the precise dirty subset for what changed: background or
// border color yields ColorOnly, opacity yields OpacityOnly, corner
// radius yields Geometry, font changes yield TextShaping, overflow
// yields Clip, and any other change yields Layout. No style change can
// escape without dirty marking as long as all mutation goes through a
// guard.
type Guard struct {
	style *Style
	saved Style
}

// NewGuard returns a guard exposing the given style for mutation.
func NewGuard(s *Style) *Guard {
	return &Guard{style: s, saved: *s}
}

// Style returns the guarded style for mutation.
func (g *Guard) Style() *Style {
	return g.style
}

// Commit diffs the style against the snapshot and returns the dirty
// flags for the changes. Committing with no changes returns 0.
func (g *Guard) Commit() dirty.Flags {
	var fl dirty.Flags
	cur := g.style

	if cur.Background != g.saved.Background || cur.BorderColor != g.saved.BorderColor ||
		cur.Color != g.saved.Color {
		fl |= dirty.ColorOnly
	}
	if cur.Opacity != g.saved.Opacity {
		fl |= dirty.OpacityOnly
	}
	if cur.Radius != g.saved.Radius {
		fl |= dirty.Geometry
	}
	if cur.FontID != g.saved.FontID || cur.FontSize != g.saved.FontSize {
		fl |= dirty.TextShaping
	}
	if cur.OverflowX != g.saved.OverflowX || cur.OverflowY != g.saved.OverflowY {
		fl |= dirty.Clip | dirty.Layout
	}
	if layoutFieldsChanged(cur, &g.saved) {
		fl |= dirty.Layout
	}

	g.saved = *cur
	return fl
}

// layoutFieldsChanged compares the layout-affecting remainder of the
// style: everything except the fields diffed individually above.
func layoutFieldsChanged(a, b *Style) bool {
	ac, bc := *a, *b
	for _, s := range []*Style{&ac, &bc} {
		s.Background = Color{}
		s.BorderColor = Color{}
		s.Color = Color{}
		s.Opacity = 0
		s.Radius = units.Value{}
		s.OverflowX = 0
		s.OverflowY = 0
		s.FontID = 0
		s.FontSize = 0
	}
	return !reflect.DeepEqual(ac, bc)
}
