// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package units provides the length values used by styles: pixels,
// percentages, viewport-relative units, auto, and constraint
// expression trees (calc, min, max, clamp) resolved against a viewport
// context.
package units

import "strconv"

// Units is the unit of a length [Value].
type Units int32

const (
	// UnitPx is logical pixels.
	UnitPx Units = iota

	// UnitPercent is a percentage of the parent dimension on the same axis.
	UnitPercent

	// UnitAuto means the length is determined by layout (content or
	// available space). Auto is also the result of resolving an
	// expression with an unresolvable leaf.
	UnitAuto

	// UnitVw is a percentage of the viewport width.
	UnitVw

	// UnitVh is a percentage of the viewport height.
	UnitVh

	// UnitVmin is a percentage of the smaller viewport dimension.
	UnitVmin

	// UnitVmax is a percentage of the larger viewport dimension.
	UnitVmax
)

var unitNames = []string{"px", "%", "auto", "vw", "vh", "vmin", "vmax"}

func (u Units) String() string {
	if int(u) < len(unitNames) {
		return unitNames[u]
	}
	return "px"
}

// Value is a single length value with a unit.
type Value struct {
	Value float32
	Unit  Units
}

// Px returns a pixel value.
func Px(v float32) Value { return Value{v, UnitPx} }

// Percent returns a percent-of-parent value; 50 means 50%.
func Percent(v float32) Value { return Value{v, UnitPercent} }

// Auto returns the auto value.
func Auto() Value { return Value{0, UnitAuto} }

// Vw returns a viewport-width value; 50 means 50vw.
func Vw(v float32) Value { return Value{v, UnitVw} }

// Vh returns a viewport-height value.
func Vh(v float32) Value { return Value{v, UnitVh} }

// Vmin returns a value relative to the smaller viewport dimension.
func Vmin(v float32) Value { return Value{v, UnitVmin} }

// Vmax returns a value relative to the larger viewport dimension.
func Vmax(v float32) Value { return Value{v, UnitVmax} }

// IsAuto reports whether this is the auto value.
func (v Value) IsAuto() bool { return v.Unit == UnitAuto }

func (v Value) String() string {
	if v.IsAuto() {
		return "auto"
	}
	return strconv.FormatFloat(float64(v.Value), 'g', -1, 32) + v.Unit.String()
}

// Context carries the sizes that resolution is evaluated against.
type Context struct {
	// ViewW and ViewH are the viewport size in pixels.
	ViewW float32
	ViewH float32

	// Parent is the parent dimension on the resolving axis, for
	// percentages. HasParent is false when the parent dimension is not
	// yet known, in which case percentages are unresolvable.
	Parent    float32
	HasParent bool
}

// Resolve returns the value in pixels and true, or 0 and false if the
// value is not resolvable in this context (auto, or a percentage with
// no known parent dimension).
func (v Value) Resolve(uc *Context) (float32, bool) {
	switch v.Unit {
	case UnitPx:
		return v.Value, true
	case UnitPercent:
		if !uc.HasParent {
			return 0, false
		}
		return v.Value / 100 * uc.Parent, true
	case UnitVw:
		return v.Value / 100 * uc.ViewW, true
	case UnitVh:
		return v.Value / 100 * uc.ViewH, true
	case UnitVmin:
		return v.Value / 100 * min(uc.ViewW, uc.ViewH), true
	case UnitVmax:
		return v.Value / 100 * max(uc.ViewW, uc.ViewH), true
	}
	return 0, false
}
