// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package styles

import "github.com/kilnworks/kiln/styles/units"

// Sides is a set of per-side length values, used for padding, margin,
// and border widths.
type Sides struct {
	Top    units.Value
	Right  units.Value
	Bottom units.Value
	Left   units.Value
}

// NewSides returns Sides with all four sides set to the given value.
func NewSides(v units.Value) Sides {
	return Sides{v, v, v, v}
}

// SideDots is Sides resolved to pixels.
type SideDots struct {
	Top    float32
	Right  float32
	Bottom float32
	Left   float32
}

// Resolve resolves all four sides against the given context.
// Unresolvable sides resolve to 0.
func (s Sides) Resolve(uc *units.Context) SideDots {
	res := func(v units.Value) float32 {
		d, ok := v.Resolve(uc)
		if !ok {
			return 0
		}
		return d
	}
	return SideDots{res(s.Top), res(s.Right), res(s.Bottom), res(s.Left)}
}

// Horizontal returns left + right.
func (s SideDots) Horizontal() float32 { return s.Left + s.Right }

// Vertical returns top + bottom.
func (s SideDots) Vertical() float32 { return s.Top + s.Bottom }

// Dim returns the summed extent along the given axis: 0 = X, 1 = Y.
func (s SideDots) Dim(axis int) float32 {
	if axis == 0 {
		return s.Horizontal()
	}
	return s.Vertical()
}
