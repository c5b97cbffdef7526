// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
)

// WGPUDevice implements [Device] over a WebGPU device. All wgpu
// specifics live here; the renderer proper only sees the [Device]
// interface.
type WGPUDevice struct {
	device *wgpu.Device
	queue  *wgpu.Queue
	caps   Caps

	// format is the surface color format pipelines target.
	format wgpu.TextureFormat

	sampler *wgpu.Sampler

	// views holds one texture view per TextureID, index 0 being the
	// white fallback.
	views []*wgpu.TextureView

	uniformLayout *wgpu.BindGroupLayout
	textureLayout *wgpu.BindGroupLayout
}

// NewWGPUDevice wraps an adapter/device pair. The surface format is
// what pipelines will render into.
func NewWGPUDevice(adapter *wgpu.Adapter, device *wgpu.Device, format wgpu.TextureFormat) (*WGPUDevice, error) {
	d := &WGPUDevice{
		device: device,
		queue:  device.GetQueue(),
		caps:   detectCaps(adapter),
		format: format,
	}
	var err error
	d.sampler, err = device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "batch2d",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, err
	}
	d.uniformLayout, err = device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "batch2d uniforms",
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex,
			Buffer: wgpu.BufferBindingLayout{
				Type: wgpu.BufferBindingTypeUniform,
			},
		}},
	})
	if err != nil {
		return nil, err
	}
	d.textureLayout, err = device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "batch2d textures",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}
	// TextureID 0 is the 1x1 white fallback.
	if _, err := d.CreateTexture("white", 1, 1, FormatRGBA8, []byte{255, 255, 255, 255}); err != nil {
		return nil, err
	}
	return d, nil
}

// detectCaps probes the adapter's features and limits. The bindless
// capabilities stay off: the binding-array layout extras are not
// exposed by the webgpu binding, so reporting them would promise a
// tier the backend cannot build. The indirect tier is detected and
// fully supported.
func detectCaps(adapter *wgpu.Adapter) Caps {
	feats := adapter.EnumerateFeatures()
	limits := adapter.GetLimits()
	return Caps{
		IndirectFirstInstance:   slices.Contains(feats, wgpu.FeatureNameIndirectFirstInstance),
		MaxBindingArrayElements: int(limits.Limits.MaxSampledTexturesPerShaderStage),
	}
}

// Caps reports the detected capabilities.
func (d *WGPUDevice) Caps() Caps { return d.caps }

type wgpuBuffer struct {
	buf *wgpu.Buffer
}

func (b *wgpuBuffer) Release() { b.buf.Release() }

func (d *WGPUDevice) CreateBuffer(label string, size int, usage BufferUsage) (Buffer, error) {
	var u wgpu.BufferUsage
	switch usage {
	case BufferInstance:
		u = wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst
	case BufferIndirect:
		u = wgpu.BufferUsageIndirect | wgpu.BufferUsageCopyDst
	case BufferUniform:
		u = wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst
	}
	buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(size),
		Usage: u,
	})
	if err != nil {
		return nil, err
	}
	return &wgpuBuffer{buf: buf}, nil
}

func (d *WGPUDevice) WriteBuffer(buf Buffer, offset int, data []byte) error {
	return d.queue.WriteBuffer(buf.(*wgpuBuffer).buf, uint64(offset), data)
}

func (d *WGPUDevice) CreateTexture(label string, width, height int, format TextureFormat, pixels []byte) (TextureID, error) {
	wf := wgpu.TextureFormatRGBA8Unorm
	bpp := 4
	if format == FormatR8 {
		wf = wgpu.TextureFormatR8Unorm
		bpp = 1
	}
	tex, err := d.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wf,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return 0, err
	}
	d.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(width * bpp),
			RowsPerImage: uint32(height),
		},
		&wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
	)
	view, err := tex.CreateView(nil)
	if err != nil {
		return 0, err
	}
	id := TextureID(len(d.views))
	d.views = append(d.views, view)
	return id, nil
}

type wgpuPipeline struct {
	pipe *wgpu.RenderPipeline
}

func (p *wgpuPipeline) Release() { p.pipe.Release() }

func (d *WGPUDevice) CreatePipeline(label string, blend Blend, tier Tier) (Pipeline, error) {
	if tier == TierBindless {
		return nil, fmt.Errorf("render: bindless pipelines not available on this backend")
	}
	module, err := d.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: ShaderSource(tier)},
	})
	if err != nil {
		return nil, err
	}
	defer module.Release()

	layout, err := d.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            label,
		BindGroupLayouts: []*wgpu.BindGroupLayout{d.uniformLayout, d.textureLayout},
	})
	if err != nil {
		return nil, err
	}
	defer layout.Release()

	bs := blendState(blend)
	pipe, err := d.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  label,
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{instanceLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    d.format,
				Blend:     &bs,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth32Float,
			DepthWriteEnabled: true,
			// Reverse-Z: near is 1, cleared to 0.
			DepthCompare: wgpu.CompareFunctionGreaterEqual,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return nil, err
	}
	return &wgpuPipeline{pipe: pipe}, nil
}

// instanceLayout is the vertex buffer layout matching [Instance]
// field for field.
func instanceLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: InstanceSize,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},   // pos
			{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},   // size
			{Format: wgpu.VertexFormatFloat32x2, Offset: 16, ShaderLocation: 2},  // uvMin
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 3},  // uvMax
			{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 4},  // color
			{Format: wgpu.VertexFormatFloat32, Offset: 48, ShaderLocation: 5},    // radius
			{Format: wgpu.VertexFormatFloat32, Offset: 52, ShaderLocation: 6},    // border
			{Format: wgpu.VertexFormatUint32, Offset: 56, ShaderLocation: 7},     // tex
			{Format: wgpu.VertexFormatUint32, Offset: 60, ShaderLocation: 8},     // kind
			{Format: wgpu.VertexFormatFloat32x2, Offset: 64, ShaderLocation: 9},  // clipMin
			{Format: wgpu.VertexFormatFloat32x2, Offset: 72, ShaderLocation: 10}, // clipMax
			{Format: wgpu.VertexFormatFloat32, Offset: 80, ShaderLocation: 11},   // depth
		},
	}
}

func blendState(b Blend) wgpu.BlendState {
	return wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: blendFactor(b.Color.Src),
			DstFactor: blendFactor(b.Color.Dst),
			Operation: blendOp(b.Color.Op),
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: blendFactor(b.Alpha.Src),
			DstFactor: blendFactor(b.Alpha.Dst),
			Operation: blendOp(b.Alpha.Op),
		},
	}
}

func blendFactor(f Factor) wgpu.BlendFactor {
	switch f {
	case FactorZero:
		return wgpu.BlendFactorZero
	case FactorOne:
		return wgpu.BlendFactorOne
	case FactorSrc:
		return wgpu.BlendFactorSrc
	case FactorOneMinusSrc:
		return wgpu.BlendFactorOneMinusSrc
	case FactorSrcAlpha:
		return wgpu.BlendFactorSrcAlpha
	case FactorOneMinusSrcAlpha:
		return wgpu.BlendFactorOneMinusSrcAlpha
	case FactorDst:
		return wgpu.BlendFactorDst
	case FactorOneMinusDst:
		return wgpu.BlendFactorOneMinusDst
	case FactorDstAlpha:
		return wgpu.BlendFactorDstAlpha
	case FactorOneMinusDstAlpha:
		return wgpu.BlendFactorOneMinusDstAlpha
	}
	return wgpu.BlendFactorOne
}

func blendOp(op BlendOp) wgpu.BlendOperation {
	switch op {
	case OpSubtract:
		return wgpu.BlendOperationSubtract
	case OpReverseSubtract:
		return wgpu.BlendOperationReverseSubtract
	case OpMin:
		return wgpu.BlendOperationMin
	case OpMax:
		return wgpu.BlendOperationMax
	}
	return wgpu.BlendOperationAdd
}

type wgpuBindGroup struct {
	bg *wgpu.BindGroup
}

func (b *wgpuBindGroup) Release() { b.bg.Release() }

func (d *WGPUDevice) CreateUniformBindGroup(label string, buf Buffer) (BindGroup, error) {
	bg, err := d.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label,
		Layout: d.uniformLayout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  buf.(*wgpuBuffer).buf,
			Size:    wgpu.WholeSize,
		}},
	})
	if err != nil {
		return nil, err
	}
	return &wgpuBindGroup{bg: bg}, nil
}

func (d *WGPUDevice) CreateTextureBindGroup(label string, textures []TextureID) (BindGroup, error) {
	if len(textures) != 1 {
		return nil, fmt.Errorf("render: this backend binds one texture per group, got %d", len(textures))
	}
	id := textures[0]
	if int(id) >= len(d.views) {
		return nil, fmt.Errorf("render: unknown texture id %d", id)
	}
	bg, err := d.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label,
		Layout: d.textureLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: d.views[id]},
			{Binding: 1, Sampler: d.sampler},
		},
	})
	if err != nil {
		return nil, err
	}
	return &wgpuBindGroup{bg: bg}, nil
}

// WGPUPass adapts a render pass encoder to [Pass].
type WGPUPass struct {
	Enc *wgpu.RenderPassEncoder
}

func (p *WGPUPass) SetPipeline(pipe Pipeline) {
	p.Enc.SetPipeline(pipe.(*wgpuPipeline).pipe)
}

func (p *WGPUPass) SetBindGroup(index int, bg BindGroup) {
	p.Enc.SetBindGroup(uint32(index), bg.(*wgpuBindGroup).bg, nil)
}

func (p *WGPUPass) SetVertexBuffer(slot int, buf Buffer) {
	p.Enc.SetVertexBuffer(uint32(slot), buf.(*wgpuBuffer).buf, 0, wgpu.WholeSize)
}

func (p *WGPUPass) Draw(instanceCount, firstInstance uint32) {
	p.Enc.Draw(6, instanceCount, 0, firstInstance)
}

// MultiDrawIndirect issues the count commands one DrawIndirect at a
// time; wgpu core has no multi-draw entry point, and the commands are
// already contiguous in the buffer.
func (p *WGPUPass) MultiDrawIndirect(buf Buffer, offset int, count int) {
	b := buf.(*wgpuBuffer).buf
	for i := 0; i < count; i++ {
		p.Enc.DrawIndirect(b, uint64(offset+i*drawCommandSize))
	}
}

// Release frees the device-owned texture views and sampler.
func (d *WGPUDevice) Release() {
	for _, v := range d.views {
		v.Release()
	}
	d.views = nil
	d.sampler.Release()
	d.uniformLayout.Release()
	d.textureLayout.Release()
}
