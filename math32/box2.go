// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "image"

// Box2 is a 2D axis-aligned bounding box defined by its minimum and
// maximum corner points.
type Box2 struct {
	Min Vector2
	Max Vector2
}

// B2 returns a new [Box2] from the given minimum and maximum x and y
// coordinates.
func B2(x0, y0, x1, y1 float32) Box2 {
	return Box2{Vec2(x0, y0), Vec2(x1, y1)}
}

// B2Empty returns a new [Box2] that is empty (min at +Inf, max at -Inf),
// so that any point or box expanded into it produces a valid box.
func B2Empty() Box2 {
	return Box2{Vec2(Infinity, Infinity), Vec2(-Infinity, -Infinity)}
}

// B2FromRect returns a new [Box2] from the given [image.Rectangle].
func B2FromRect(rect image.Rectangle) Box2 {
	return Box2{Vector2FromPoint(rect.Min), Vector2FromPoint(rect.Max)}
}

// IsEmpty reports whether this box is empty (max < min on any coord).
func (b Box2) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y
}

// Size returns the width and height of the box. An empty box has zero size.
func (b Box2) Size() Vector2 {
	if b.IsEmpty() {
		return Vector2{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the box.
func (b Box2) Center() Vector2 {
	return b.Min.Add(b.Max).MulScalar(0.5)
}

// ContainsPoint reports whether the box contains the given point.
// Points on the minimum edges are inside; on the maximum edges outside.
func (b Box2) ContainsPoint(p Vector2) bool {
	return p.X >= b.Min.X && p.X < b.Max.X && p.Y >= b.Min.Y && p.Y < b.Max.Y
}

// ExpandByPoint returns the box grown to contain the given point.
func (b Box2) ExpandByPoint(p Vector2) Box2 {
	return Box2{b.Min.Min(p), b.Max.Max(p)}
}

// Union returns the smallest box containing both boxes.
func (b Box2) Union(o Box2) Box2 {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return Box2{b.Min.Min(o.Min), b.Max.Max(o.Max)}
}

// Intersect returns the intersection of the two boxes. If they do not
// overlap, the result is an empty box collapsed to the overlap boundary
// with non-negative size.
func (b Box2) Intersect(o Box2) Box2 {
	r := Box2{b.Min.Max(o.Min), b.Max.Min(o.Max)}
	r.Max = r.Max.Max(r.Min) // clamp to non-negative size
	return r
}

// Translate returns the box offset by the given vector.
func (b Box2) Translate(off Vector2) Box2 {
	return Box2{b.Min.Add(off), b.Max.Add(off)}
}
