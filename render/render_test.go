// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordBuffer retains everything written to it so tests can inspect
// uploads.
type recordBuffer struct {
	label string
	data  []byte
}

func (b *recordBuffer) Release() {}

type recordBindGroup struct {
	textures []TextureID
	uniform  bool
}

func (b *recordBindGroup) Release() {}

type recordPipeline struct {
	blend Blend
	tier  Tier
}

func (p *recordPipeline) Release() {}

// call is one recorded pass command.
type call struct {
	op            string
	group         *recordBindGroup
	instanceCount uint32
	firstInstance uint32
	commands      []drawCommand
}

// recordDevice implements Device and Pass, recording every operation.
type recordDevice struct {
	caps       Caps
	calls      []call
	texGroups  int
	curTexture *recordBindGroup
	instBuf    *recordBuffer
}

func (d *recordDevice) Caps() Caps { return d.caps }

func (d *recordDevice) CreateBuffer(label string, size int, usage BufferUsage) (Buffer, error) {
	return &recordBuffer{label: label, data: make([]byte, size)}, nil
}

func (d *recordDevice) WriteBuffer(buf Buffer, offset int, data []byte) error {
	b := buf.(*recordBuffer)
	copy(b.data[offset:], data)
	return nil
}

func (d *recordDevice) CreateTexture(label string, w, h int, format TextureFormat, pixels []byte) (TextureID, error) {
	return 0, nil
}

func (d *recordDevice) CreatePipeline(label string, blend Blend, tier Tier) (Pipeline, error) {
	return &recordPipeline{blend: blend, tier: tier}, nil
}

func (d *recordDevice) CreateUniformBindGroup(label string, buf Buffer) (BindGroup, error) {
	return &recordBindGroup{uniform: true}, nil
}

func (d *recordDevice) CreateTextureBindGroup(label string, textures []TextureID) (BindGroup, error) {
	d.texGroups++
	return &recordBindGroup{textures: append([]TextureID{}, textures...)}, nil
}

func (d *recordDevice) SetPipeline(p Pipeline) {
	d.calls = append(d.calls, call{op: "pipeline"})
}

func (d *recordDevice) SetBindGroup(index int, bg BindGroup) {
	g := bg.(*recordBindGroup)
	if !g.uniform {
		d.curTexture = g
	}
	d.calls = append(d.calls, call{op: "bind", group: g})
}

func (d *recordDevice) SetVertexBuffer(slot int, buf Buffer) {
	d.instBuf = buf.(*recordBuffer)
}

func (d *recordDevice) Draw(instanceCount, firstInstance uint32) {
	d.calls = append(d.calls, call{
		op:            "draw",
		group:         d.curTexture,
		instanceCount: instanceCount,
		firstInstance: firstInstance,
	})
}

func (d *recordDevice) MultiDrawIndirect(buf Buffer, offset, count int) {
	b := buf.(*recordBuffer)
	if count == 0 {
		return
	}
	cmds := make([]drawCommand, count)
	raw := b.data[offset : offset+count*drawCommandSize]
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&cmds[0])), len(raw)), raw)
	d.calls = append(d.calls, call{op: "mdi", group: d.curTexture, commands: cmds})
}

// draws returns the recorded draw-type calls in order.
func (d *recordDevice) draws() []call {
	var out []call
	for _, c := range d.calls {
		if c.op == "draw" || c.op == "mdi" {
			out = append(out, c)
		}
	}
	return out
}

func TestInstanceSize(t *testing.T) {
	assert.Equal(t, uintptr(InstanceSize), unsafe.Sizeof(Instance{}))
	assert.Equal(t, uintptr(0), unsafe.Sizeof(Instance{})%16)
}

func TestTierDetection(t *testing.T) {
	assert.Equal(t, TierDirect, Caps{}.BestTier())

	indirect := Caps{IndirectFirstInstance: true}
	assert.Equal(t, TierIndirect, indirect.BestTier())

	bindless := Caps{
		IndirectFirstInstance:   true,
		TextureBindingArray:     true,
		PartiallyBound:          true,
		NonUniformIndexing:      true,
		MaxBindingArrayElements: 256,
	}
	assert.Equal(t, TierBindless, bindless.BestTier())

	few := bindless
	few.MaxBindingArrayElements = 255
	assert.Equal(t, TierIndirect, few.BestTier())
}

func TestTierOverrideValidated(t *testing.T) {
	dev := &recordDevice{}
	_, err := NewTier(dev, TierIndirect)
	assert.Error(t, err)

	r, err := NewTier(dev, TierDirect)
	require.NoError(t, err)
	assert.Equal(t, TierDirect, r.Tier())
}

func batchOf(n int, textures []TextureID) *Batch {
	b := &Batch{}
	for i := 0; i < n; i++ {
		b.Add(Instance{
			Pos:     [2]float32{float32(i), 0},
			Size:    [2]float32{10, 10},
			Color:   [4]float32{1, 1, 1, 0.5},
			Tex:     textures[i%len(textures)],
			Kind:    KindImage,
			ClipMax: [2]float32{800, 600},
			Depth:   float32(i%7) / 7,
		})
	}
	return b
}

func TestIndirectTierFallback(t *testing.T) {
	dev := &recordDevice{caps: Caps{IndirectFirstInstance: true}}
	r, err := New(dev)
	require.NoError(t, err)
	assert.Equal(t, TierIndirect, r.Tier())

	b := batchOf(1000, []TextureID{1, 2, 3})
	require.NoError(t, r.Prepare(b))
	require.NoError(t, r.Render(dev))

	draws := dev.draws()
	require.Len(t, draws, 3)
	assert.Equal(t, 3, r.Stats().DrawCalls)
	assert.Equal(t, 3, r.Stats().Textures)
	assert.Equal(t, 1000, r.Stats().Instances)

	// Each multi-draw covers one texture's contiguous run, and the
	// runs tile the whole batch.
	var total uint32
	for _, c := range draws {
		require.Len(t, c.commands, 1)
		require.Len(t, c.group.textures, 1)
		total += c.commands[0].InstanceCount
	}
	assert.Equal(t, uint32(1000), total)
}

func TestTierEquivalence(t *testing.T) {
	// The sorted instance stream uploaded to the GPU must be
	// identical across tiers for the same input batch.
	direct := &recordDevice{}
	indirect := &recordDevice{caps: Caps{IndirectFirstInstance: true}}
	bindless := &recordDevice{caps: Caps{
		IndirectFirstInstance:   true,
		TextureBindingArray:     true,
		PartiallyBound:          true,
		NonUniformIndexing:      true,
		MaxBindingArrayElements: 512,
	}}

	devs := []*recordDevice{direct, indirect, bindless}
	var streams [][]byte
	for _, dev := range devs {
		r, err := New(dev)
		require.NoError(t, err)
		b := batchOf(200, []TextureID{3, 1, 2})
		require.NoError(t, r.Prepare(b))
		require.NoError(t, r.Render(dev))
		streams = append(streams, append([]byte{}, dev.instBuf.data[:200*InstanceSize]...))
	}
	assert.Equal(t, streams[0], streams[1])
	assert.Equal(t, streams[0], streams[2])
}

func TestBindlessSingleDraw(t *testing.T) {
	dev := &recordDevice{caps: Caps{
		IndirectFirstInstance:   true,
		TextureBindingArray:     true,
		PartiallyBound:          true,
		NonUniformIndexing:      true,
		MaxBindingArrayElements: 512,
	}}
	r, err := New(dev)
	require.NoError(t, err)
	require.Equal(t, TierBindless, r.Tier())

	b := batchOf(300, []TextureID{1, 2, 3, 4})
	require.NoError(t, r.Prepare(b))
	require.NoError(t, r.Render(dev))

	draws := dev.draws()
	require.Len(t, draws, 1)
	assert.Equal(t, 1, r.Stats().DrawCalls)
	assert.ElementsMatch(t, []TextureID{1, 2, 3, 4}, draws[0].group.textures)
}

func TestBindlessGroupRebuiltOnlyOnTextureSetChange(t *testing.T) {
	dev := &recordDevice{caps: Caps{
		IndirectFirstInstance:   true,
		TextureBindingArray:     true,
		PartiallyBound:          true,
		NonUniformIndexing:      true,
		MaxBindingArrayElements: 512,
	}}
	r, err := New(dev)
	require.NoError(t, err)

	require.NoError(t, r.Prepare(batchOf(10, []TextureID{1, 2})))
	first := dev.texGroups
	require.NoError(t, r.Prepare(batchOf(20, []TextureID{2, 1})))
	assert.Equal(t, first, dev.texGroups, "same texture set should not rebuild")

	require.NoError(t, r.Prepare(batchOf(10, []TextureID{1, 2, 3})))
	assert.Equal(t, first+1, dev.texGroups)
}

func TestOpaqueTransparentPartition(t *testing.T) {
	dev := &recordDevice{}
	r, err := New(dev)
	require.NoError(t, err)

	b := &Batch{}
	// Transparent first in submission order; it must sort after the
	// opaque quad.
	b.Add(Instance{Size: [2]float32{5, 5}, Color: [4]float32{1, 0, 0, 0.5}, Kind: KindQuad, ClipMax: [2]float32{100, 100}})
	b.Add(Instance{Size: [2]float32{5, 5}, Color: [4]float32{0, 1, 0, 1}, Kind: KindQuad, ClipMax: [2]float32{100, 100}})
	b.Add(Instance{Size: [2]float32{5, 5}, Color: [4]float32{0, 0, 1, 1}, Radius: 2, Kind: KindQuad, ClipMax: [2]float32{100, 100}})

	require.NoError(t, r.Prepare(b))
	assert.Equal(t, 1, r.Stats().Opaque)
	assert.Equal(t, 2, r.Stats().Transparent)
	assert.True(t, b.Instances[0].Opaque())
	assert.False(t, b.Instances[1].Opaque())
	assert.False(t, b.Instances[2].Opaque())
}

func TestSortByKindTextureDepth(t *testing.T) {
	dev := &recordDevice{}
	r, err := New(dev)
	require.NoError(t, err)

	b := &Batch{}
	b.Add(Instance{Kind: KindImage, Tex: 2, Depth: 0.5, Color: [4]float32{1, 1, 1, 1}})
	b.Add(Instance{Kind: KindText, Tex: 1, Depth: 0.9, Color: [4]float32{1, 1, 1, 1}})
	b.Add(Instance{Kind: KindImage, Tex: 1, Depth: 0.1, Color: [4]float32{1, 1, 1, 1}})
	b.Add(Instance{Kind: KindText, Tex: 1, Depth: 0.2, Color: [4]float32{1, 1, 1, 1}})

	require.NoError(t, r.Prepare(b))
	got := make([]Instance, len(b.Instances))
	copy(got, b.Instances)
	assert.Equal(t, KindText, got[0].Kind)
	assert.InDelta(t, 0.2, got[0].Depth, 1e-6)
	assert.Equal(t, KindText, got[1].Kind)
	assert.Equal(t, KindImage, got[2].Kind)
	assert.Equal(t, TextureID(1), got[2].Tex)
	assert.Equal(t, TextureID(2), got[3].Tex)
}

func TestEmptyBatch(t *testing.T) {
	dev := &recordDevice{}
	r, err := New(dev)
	require.NoError(t, err)
	require.NoError(t, r.Prepare(&Batch{}))
	require.NoError(t, r.Render(dev))
	assert.Empty(t, dev.draws())
	assert.Equal(t, 0, r.Stats().DrawCalls)
}

func TestDirectDrawPerTextureRun(t *testing.T) {
	dev := &recordDevice{}
	r, err := New(dev)
	require.NoError(t, err)

	b := batchOf(90, []TextureID{5, 6, 7})
	require.NoError(t, r.Prepare(b))
	require.NoError(t, r.Render(dev))

	draws := dev.draws()
	require.Len(t, draws, 3)
	for _, c := range draws {
		assert.Equal(t, "draw", c.op)
		assert.Equal(t, uint32(30), c.instanceCount)
	}
	assert.Equal(t, 3, r.Stats().DrawCalls)
}

func TestStatsBindGroupSwitches(t *testing.T) {
	dev := &recordDevice{}
	r, err := New(dev)
	require.NoError(t, err)

	b := batchOf(30, []TextureID{1, 2, 3})
	require.NoError(t, r.Prepare(b))
	require.NoError(t, r.Render(dev))

	// One uniform bind plus one per texture run.
	assert.Equal(t, 4, r.Stats().BindGroupSwitches)
	assert.Equal(t, 1, r.Stats().PipelineSwitches)
}

func TestShaderSourcePerTier(t *testing.T) {
	single := ShaderSource(TierDirect)
	assert.Contains(t, single, "texture_2d<f32>")
	assert.NotContains(t, single, "binding_array")
	assert.Contains(t, ShaderSource(TierBindless), "binding_array<texture_2d<f32>>")
	assert.NotContains(t, ShaderSource(TierIndirect), "//KILN:TEXTURES")
}

func TestSetBlendCachesPipelines(t *testing.T) {
	dev := &recordDevice{}
	r, err := New(dev)
	require.NoError(t, err)
	require.NoError(t, r.SetBlend(BlendAdditive))
	require.NoError(t, r.SetBlend(BlendPremultiplied))
	require.NoError(t, r.SetBlend(BlendAdditive))
	assert.Len(t, r.pipelines, 2)
}
