// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package math32 is a float32 based vector and geometry package for the
// 2D rendering and layout systems. Scalar functions are thin wrappers
// around chewxy/math32, which has optimized implementations.
package math32

import (
	"math"

	"github.com/chewxy/math32"
)

var (
	// Infinity is positive infinity.
	Infinity = float32(math.Inf(1))
)

// Sqrt returns the square root of x.
func Sqrt(x float32) float32 { return math32.Sqrt(x) }

// Abs returns the absolute value of x.
func Abs(x float32) float32 { return math32.Abs(x) }

// Floor returns the greatest integer value less than or equal to x.
func Floor(x float32) float32 { return math32.Floor(x) }

// Ceil returns the least integer value greater than or equal to x.
func Ceil(x float32) float32 { return math32.Ceil(x) }

// Round returns the nearest integer, rounding half away from zero.
func Round(x float32) float32 { return math32.Round(x) }

// Min returns the smaller of a and b.
func Min(a, b float32) float32 { return math32.Min(a, b) }

// Max returns the larger of a and b.
func Max(a, b float32) float32 { return math32.Max(a, b) }

// Clamp clamps x to the range [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 clamps x to the unit interval [0, 1].
func Clamp01(x float32) float32 { return Clamp(x, 0, 1) }
