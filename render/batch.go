// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import "github.com/kilnworks/kiln/math32"

// Batch accumulates the instances for one frame. It is reused across
// frames to avoid reallocating; call [Batch.Reset] at frame start.
type Batch struct {
	Instances []Instance
}

// Reset empties the batch, keeping capacity.
func (b *Batch) Reset() {
	b.Instances = b.Instances[:0]
}

// Len returns the number of instances in the batch.
func (b *Batch) Len() int {
	return len(b.Instances)
}

// Add appends an instance.
func (b *Batch) Add(in Instance) {
	b.Instances = append(b.Instances, in)
}

// Quad appends a solid rounded rectangle.
func (b *Batch) Quad(rect, clip math32.Box2, color [4]float32, radius, border, depth float32) {
	b.Instances = append(b.Instances, Instance{
		Pos:     [2]float32{rect.Min.X, rect.Min.Y},
		Size:    [2]float32{rect.Max.X - rect.Min.X, rect.Max.Y - rect.Min.Y},
		UVMax:   [2]float32{1, 1},
		Color:   color,
		Radius:  radius,
		Border:  border,
		Tex:     WhiteTexture,
		Kind:    KindQuad,
		ClipMin: [2]float32{clip.Min.X, clip.Min.Y},
		ClipMax: [2]float32{clip.Max.X, clip.Max.Y},
		Depth:   depth,
	})
}

// Glyph appends a glyph atlas sample colored by color.
func (b *Batch) Glyph(rect, clip math32.Box2, uvMin, uvMax [2]float32, tex TextureID, color [4]float32, depth float32) {
	b.Instances = append(b.Instances, Instance{
		Pos:     [2]float32{rect.Min.X, rect.Min.Y},
		Size:    [2]float32{rect.Max.X - rect.Min.X, rect.Max.Y - rect.Min.Y},
		UVMin:   uvMin,
		UVMax:   uvMax,
		Color:   color,
		Tex:     tex,
		Kind:    KindText,
		ClipMin: [2]float32{clip.Min.X, clip.Min.Y},
		ClipMax: [2]float32{clip.Max.X, clip.Max.Y},
		Depth:   depth,
	})
}

// Image appends a textured rectangle tinted by color.
func (b *Batch) Image(rect, clip math32.Box2, tex TextureID, tint [4]float32, depth float32) {
	b.Instances = append(b.Instances, Instance{
		Pos:     [2]float32{rect.Min.X, rect.Min.Y},
		Size:    [2]float32{rect.Max.X - rect.Min.X, rect.Max.Y - rect.Min.Y},
		UVMax:   [2]float32{1, 1},
		Color:   tint,
		Tex:     tex,
		Kind:    KindImage,
		ClipMin: [2]float32{clip.Min.X, clip.Min.Y},
		ClipMax: [2]float32{clip.Max.X, clip.Max.Y},
		Depth:   depth,
	})
}
