// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package styles

import "github.com/kilnworks/kiln/styles/units"

// Style holds the full style of a UI widget: the flexbox layout
// properties and the paint properties. Widgets must mutate their style
// only through a [Guard] so that every change is converted into the
// precise set of dirty flags.
type Style struct {

	// Direction is the main axis for laying out children.
	Direction Direction

	// Wrap wraps children onto additional lines when they exceed the
	// main-axis extent.
	Wrap bool

	// Justify distributes children along the main axis.
	Justify Justify

	// Align aligns children along the cross axis.
	Align Align

	// Gap is the spacing between adjacent children.
	Gap units.Value

	// Padding is the space inside the border, around the content.
	Padding Sides

	// Margin is the space outside the border.
	Margin Sides

	// Grow is the flex grow factor: the share of extra main-axis space
	// this node receives.
	Grow float32

	// Shrink is the flex shrink factor applied when children overflow
	// the main axis.
	Shrink float32

	// Basis is the initial main-axis size before growing and
	// shrinking. The zero expression means auto.
	Basis units.Expr

	// Width and Height are the preferred size. The zero expression
	// means auto (content or flex determined).
	Width  units.Expr
	Height units.Expr

	// MinWidth, MinHeight, MaxWidth, and MaxHeight constrain the
	// computed size. Zero expressions are unset.
	MinWidth  units.Expr
	MinHeight units.Expr
	MaxWidth  units.Expr
	MaxHeight units.Expr

	// OverflowX and OverflowY control clipping and scrolling per axis.
	OverflowX Overflow
	OverflowY Overflow

	// Background is the fill color of the node's rectangle.
	Background Color

	// Color is the foreground (text) color.
	Color Color

	// BorderWidth is the border width per side.
	BorderWidth Sides

	// BorderColor is the border color.
	BorderColor Color

	// Radius is the SDF corner radius of the background rectangle.
	Radius units.Value

	// Opacity is the overall opacity multiplier in [0, 1].
	Opacity float32

	// FontID selects the font used for text content.
	FontID int32

	// FontSize is the font size in pixels.
	FontSize float32
}

// NewStyle returns a Style with the defaults: opaque, shrinkable,
// 16px font, transparent background.
func NewStyle() Style {
	return Style{
		Shrink:   1,
		Opacity:  1,
		FontSize: 16,
	}
}

// ClipsChildren reports whether either axis clips.
func (s *Style) ClipsChildren() bool {
	return s.OverflowX.Clips() || s.OverflowY.Clips()
}

// IsScrollContainer reports whether either axis scrolls.
func (s *Style) IsScrollContainer() bool {
	return s.OverflowX == OverflowScroll || s.OverflowY == OverflowScroll
}
