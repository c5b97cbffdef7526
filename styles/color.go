// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package styles

// Color is a straight-alpha RGBA color with float32 components in
// [0, 1]. The renderer premultiplies at instance-emission time.
type Color struct {
	R float32
	G float32
	B float32
	A float32
}

// RGBA returns an opaque color from the given components.
func RGBA(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}

// Transparent is the fully transparent color.
var Transparent = Color{}

// White is opaque white.
var White = Color{1, 1, 1, 1}

// Black is opaque black.
var Black = Color{0, 0, 0, 1}

// IsTransparent reports whether the color has zero alpha.
func (c Color) IsTransparent() bool {
	return c.A == 0
}

// Premultiplied returns the color with RGB multiplied by A.
func (c Color) Premultiplied() Color {
	return Color{c.R * c.A, c.G * c.A, c.B * c.A, c.A}
}

// Scaled returns the color with alpha scaled by the given opacity,
// applied before premultiplication.
func (c Color) Scaled(opacity float32) Color {
	c.A *= opacity
	return c
}
