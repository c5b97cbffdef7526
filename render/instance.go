// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"unsafe"

	"github.com/kilnworks/kiln/math32"
)

// DrawKind tags an [Instance] with how the fragment stage shades it.
type DrawKind uint32

const (
	// KindQuad is a solid rounded rectangle with optional border,
	// shaded by a signed-distance function.
	KindQuad DrawKind = iota

	// KindText samples the R8 glyph atlas alpha and multiplies by color.
	KindText

	// KindImage samples an RGBA texture and multiplies by color as tint.
	KindImage
)

// InstanceSize is the exact byte size of one [Instance] as uploaded.
const InstanceSize = 96

// Instance is the unified per-primitive record shared by all render
// tiers. The layout is fixed at 96 bytes with 16-byte alignment and
// must match the vertex buffer layout declared in the shader; do not
// reorder fields.
type Instance struct {
	// Pos is the top-left corner in screen pixels.
	Pos [2]float32

	// Size is the extent in screen pixels.
	Size [2]float32

	// UVMin and UVMax are the texture coordinates of the sampled
	// region, in [0,1]. Unused for untextured quads.
	UVMin [2]float32
	UVMax [2]float32

	// Color is premultiplied RGBA.
	Color [4]float32

	// Radius is the SDF corner radius in pixels (quads only).
	Radius float32

	// Border is the border thickness in pixels; 0 fills the shape.
	Border float32

	// Tex indexes the frame texture table.
	Tex TextureID

	// Kind selects the fragment path.
	Kind DrawKind

	// ClipMin and ClipMax bound the screen-space clip rectangle;
	// fragments outside are discarded.
	ClipMin [2]float32
	ClipMax [2]float32

	// Depth is in [0,1] with reverse-Z convention: 1 is nearest.
	Depth float32

	_ [3]float32
}

// instanceBytes reinterprets instances as the raw bytes uploaded to
// the instance buffer, without copying.
func instanceBytes(insts []Instance) []byte {
	if len(insts) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&insts[0])), len(insts)*InstanceSize)
}

// commandBytes reinterprets indirect draw commands as upload bytes.
func commandBytes(cmds []drawCommand) []byte {
	if len(cmds) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&cmds[0])), len(cmds)*drawCommandSize)
}

// matrixBytes reinterprets a projection matrix as upload bytes.
func matrixBytes(m *math32.Matrix4) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(m)), 64)
}

// Opaque reports whether the instance can be drawn in the opaque
// partition: fully covered pixels with no blending against what is
// behind them. Anything with alpha, rounded corners, a border (the
// interior is uncovered), or texture sampling goes to the transparent
// partition.
func (in *Instance) Opaque() bool {
	return in.Kind == KindQuad && in.Color[3] >= 1 && in.Radius == 0 && in.Border == 0
}
