// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

// TextureID identifies a texture registered with a [Device].
// [WhiteTexture] is always valid.
type TextureID int32

// WhiteTexture is the built-in 1x1 white texture every device
// provides. Solid quads sample it, and it fills unused bindless
// slots.
const WhiteTexture TextureID = 0

// TextureFormat is the pixel format of a registered texture.
type TextureFormat int32

const (
	// FormatRGBA8 is 8-bit premultiplied RGBA.
	FormatRGBA8 TextureFormat = iota

	// FormatR8 is single-channel 8-bit coverage, used by glyph
	// atlases.
	FormatR8
)

// BufferUsage declares what a buffer created through [Device] is for.
type BufferUsage int32

const (
	// BufferInstance holds per-instance vertex data.
	BufferInstance BufferUsage = iota

	// BufferIndirect holds indirect draw commands.
	BufferIndirect

	// BufferUniform holds shader uniform data.
	BufferUniform
)

// Buffer is a device buffer handle.
type Buffer interface {
	Release()
}

// BindGroup is a device bind group handle.
type BindGroup interface {
	Release()
}

// Pipeline is a device render pipeline handle.
type Pipeline interface {
	Release()
}

// Device is the boundary between the batch renderer and the GPU.
// The production implementation wraps a WebGPU device; tests use a
// recording implementation to verify submission behavior.
type Device interface {
	// Caps reports the detected device capabilities.
	Caps() Caps

	// CreateBuffer allocates a buffer of the given byte size.
	CreateBuffer(label string, size int, usage BufferUsage) (Buffer, error)

	// WriteBuffer uploads data into buf at the given byte offset.
	WriteBuffer(buf Buffer, offset int, data []byte) error

	// CreateTexture registers texture pixels and returns its id.
	CreateTexture(label string, width, height int, format TextureFormat, pixels []byte) (TextureID, error)

	// CreatePipeline builds the unified 2D pipeline for the given
	// blend state and tier.
	CreatePipeline(label string, blend Blend, tier Tier) (Pipeline, error)

	// CreateUniformBindGroup builds the group binding the projection
	// uniform buffer.
	CreateUniformBindGroup(label string, buf Buffer) (BindGroup, error)

	// CreateTextureBindGroup builds a group binding the given
	// textures. Single-texture tiers pass one id; the bindless tier
	// passes the whole frame texture set, and the device fills the
	// remaining array slots with [WhiteTexture].
	CreateTextureBindGroup(label string, textures []TextureID) (BindGroup, error)
}

// Pass records draw commands for one frame. It mirrors the subset of
// a WebGPU render pass encoder the batch renderer uses.
type Pass interface {
	SetPipeline(p Pipeline)
	SetBindGroup(index int, bg BindGroup)
	SetVertexBuffer(slot int, buf Buffer)

	// Draw issues instanceCount instances starting at firstInstance,
	// six vertices each.
	Draw(instanceCount, firstInstance uint32)

	// MultiDrawIndirect issues count commands from buf starting at
	// the given byte offset.
	MultiDrawIndirect(buf Buffer, offset int, count int)
}

// drawCommand matches the 16-byte indirect draw argument layout:
// vertexCount, instanceCount, firstVertex, firstInstance.
type drawCommand struct {
	VertexCount   uint32
	InstanceCount uint32
	FirstVertex   uint32
	FirstInstance uint32
}

// drawCommandSize is the byte size of one indirect draw command.
const drawCommandSize = 16
