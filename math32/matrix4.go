// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Matrix4 is a 4x4 matrix stored in column-major order, matching the
// WGSL mat4x4<f32> memory layout for direct upload to uniform buffers.
type Matrix4 [16]float32

// Identity4 returns the identity matrix.
func Identity4() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Ortho2D returns an orthographic projection mapping the pixel
// rectangle (0,0)..(width,height) to clip space with y down, and depth
// passed through unchanged (reverse-Z is applied by the depth values
// themselves, not the projection).
func Ortho2D(width, height float32) Matrix4 {
	m := Identity4()
	m[0] = 2 / width
	m[5] = -2 / height
	m[12] = -1
	m[13] = 1
	return m
}
