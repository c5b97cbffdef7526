// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "image"

// Vector2 is a 2D vector or point with X and Y components.
type Vector2 struct {
	X float32
	Y float32
}

// Vec2 returns a new [Vector2] with the given x and y components.
func Vec2(x, y float32) Vector2 {
	return Vector2{x, y}
}

// Vector2FromPoint returns a new [Vector2] from the given [image.Point].
func Vector2FromPoint(pt image.Point) Vector2 {
	return Vec2(float32(pt.X), float32(pt.Y))
}

// Add returns the vector sum of v and o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vec2(v.X+o.X, v.Y+o.Y)
}

// Sub returns v minus o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vec2(v.X-o.X, v.Y-o.Y)
}

// Mul returns the component-wise product of v and o.
func (v Vector2) Mul(o Vector2) Vector2 {
	return Vec2(v.X*o.X, v.Y*o.Y)
}

// MulScalar returns v scaled by s.
func (v Vector2) MulScalar(s float32) Vector2 {
	return Vec2(v.X*s, v.Y*s)
}

// DivScalar returns v divided by s. Division by zero yields zero.
func (v Vector2) DivScalar(s float32) Vector2 {
	if s == 0 {
		return Vector2{}
	}
	return Vec2(v.X/s, v.Y/s)
}

// Negate returns -v.
func (v Vector2) Negate() Vector2 {
	return Vec2(-v.X, -v.Y)
}

// Min returns the component-wise minimum of v and o.
func (v Vector2) Min(o Vector2) Vector2 {
	return Vec2(Min(v.X, o.X), Min(v.Y, o.Y))
}

// Max returns the component-wise maximum of v and o.
func (v Vector2) Max(o Vector2) Vector2 {
	return Vec2(Max(v.X, o.X), Max(v.Y, o.Y))
}

// Clamp returns v with each component clamped to [lo, hi] of the
// corresponding components.
func (v Vector2) Clamp(lo, hi Vector2) Vector2 {
	return Vec2(Clamp(v.X, lo.X, hi.X), Clamp(v.Y, lo.Y, hi.Y))
}

// Length returns the Euclidean length of v.
func (v Vector2) Length() float32 {
	return Sqrt(v.X*v.X + v.Y*v.Y)
}

// DistanceTo returns the distance from v to o.
func (v Vector2) DistanceTo(o Vector2) float32 {
	return o.Sub(v).Length()
}

// Dim returns the component along the given axis: 0 = X, 1 = Y.
func (v Vector2) Dim(axis int) float32 {
	if axis == 0 {
		return v.X
	}
	return v.Y
}

// SetDim sets the component along the given axis: 0 = X, 1 = Y.
func (v *Vector2) SetDim(axis int, value float32) {
	if axis == 0 {
		v.X = value
	} else {
		v.Y = value
	}
}

// ToPoint returns the vector as an [image.Point], truncating.
func (v Vector2) ToPoint() image.Point {
	return image.Point{int(v.X), int(v.Y)}
}
