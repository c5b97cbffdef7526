// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render is a tiered batched 2D renderer. Primitives are
// encoded as fixed 96-byte [Instance] records, sorted and uploaded
// once per frame, and submitted through the highest strategy the
// device supports: direct draws, per-texture multi-draw-indirect, or
// a single bindless multi-draw-indirect.
package render

import (
	"fmt"
	"slices"

	"github.com/kilnworks/kiln/math32"
)

// FrameStats reports what the last Prepare/Render pair did.
type FrameStats struct {
	Instances         int
	Opaque            int
	Transparent       int
	DrawCalls         int
	BindGroupSwitches int
	PipelineSwitches  int
	Textures          int
}

// drawGroup is a contiguous run of sorted instances sharing one
// texture within one partition.
type drawGroup struct {
	tex   TextureID
	start uint32
	count uint32
}

// Renderer owns the per-frame GPU state for the 2D batch pipeline.
// Construct with [New] or [NewTier]; then each frame call
// [Renderer.Prepare] with the batch and [Renderer.Render] inside the
// frame's pass.
type Renderer struct {
	dev   Device
	caps  Caps
	tier  Tier
	blend Blend

	pipelines map[Blend]Pipeline

	uniformBuf   Buffer
	uniformGroup BindGroup

	instBuf Buffer
	instCap int

	indirectBuf Buffer
	indirectCap int
	commands    []drawCommand

	groups []drawGroup

	// texGroups caches single-texture bind groups for tiers 1 and 2.
	texGroups map[TextureID]BindGroup

	// texSet is the sorted frame texture set the current bindless
	// group was built from.
	texSet        []TextureID
	bindlessGroup BindGroup

	stats FrameStats
}

// New creates a renderer on the device's best supported tier with
// premultiplied-alpha blending.
func New(dev Device) (*Renderer, error) {
	return NewTier(dev, dev.Caps().BestTier())
}

// NewTier creates a renderer forced to the given tier. It fails when
// the device does not support the tier.
func NewTier(dev Device, tier Tier) (*Renderer, error) {
	caps := dev.Caps()
	if !caps.Supports(tier) {
		return nil, fmt.Errorf("render: device does not support %v tier", tier)
	}
	r := &Renderer{
		dev:       dev,
		caps:      caps,
		tier:      tier,
		blend:     BlendPremultiplied,
		pipelines: map[Blend]Pipeline{},
		texGroups: map[TextureID]BindGroup{},
	}
	var err error
	r.uniformBuf, err = dev.CreateBuffer("projection", 64, BufferUniform)
	if err != nil {
		return nil, err
	}
	r.uniformGroup, err = dev.CreateUniformBindGroup("projection", r.uniformBuf)
	if err != nil {
		return nil, err
	}
	if _, err := r.pipeline(r.blend); err != nil {
		return nil, err
	}
	return r, nil
}

// Tier returns the submission tier in use.
func (r *Renderer) Tier() Tier { return r.tier }

// Stats returns statistics for the last frame.
func (r *Renderer) Stats() FrameStats { return r.stats }

// SetBlend switches the blend state for subsequent frames, building
// the pipeline for it on first use.
func (r *Renderer) SetBlend(b Blend) error {
	if _, err := r.pipeline(b); err != nil {
		return err
	}
	r.blend = b
	return nil
}

// SetViewport uploads the orthographic projection for a viewport of
// the given pixel size.
func (r *Renderer) SetViewport(width, height float32) error {
	proj := math32.Ortho2D(width, height)
	return r.dev.WriteBuffer(r.uniformBuf, 0, matrixBytes(&proj))
}

func (r *Renderer) pipeline(b Blend) (Pipeline, error) {
	if p, ok := r.pipelines[b]; ok {
		return p, nil
	}
	p, err := r.dev.CreatePipeline("batch2d", b, r.tier)
	if err != nil {
		return nil, err
	}
	r.pipelines[b] = p
	return p, nil
}

// Prepare sorts the batch, uploads the instance buffer, and builds
// the tier's submission state. The batch's instance slice is sorted
// in place. Prepare with an empty batch makes the next Render a
// no-op.
func (r *Renderer) Prepare(b *Batch) error {
	insts := b.Instances
	r.stats = FrameStats{Instances: len(insts)}
	r.groups = r.groups[:0]
	r.commands = r.commands[:0]
	if len(insts) == 0 {
		return nil
	}

	// Opaque draws first, then transparent; within each partition
	// order by (kind, texture, depth) so texture runs are contiguous.
	slices.SortStableFunc(insts, func(a, c Instance) int {
		oa, oc := 0, 0
		if !a.Opaque() {
			oa = 1
		}
		if !c.Opaque() {
			oc = 1
		}
		if n := oa - oc; n != 0 {
			return n
		}
		if n := int(a.Kind) - int(c.Kind); n != 0 {
			return n
		}
		if n := int(a.Tex) - int(c.Tex); n != 0 {
			return n
		}
		switch {
		case a.Depth < c.Depth:
			return -1
		case a.Depth > c.Depth:
			return 1
		}
		return 0
	})
	for i := range insts {
		if insts[i].Opaque() {
			r.stats.Opaque++
		}
	}
	r.stats.Transparent = len(insts) - r.stats.Opaque

	if err := r.uploadInstances(insts); err != nil {
		return err
	}
	r.buildGroups(insts)
	r.stats.Textures = r.countTextures()

	switch r.tier {
	case TierIndirect:
		for _, g := range r.groups {
			r.commands = append(r.commands, drawCommand{
				VertexCount:   6,
				InstanceCount: g.count,
				FirstVertex:   0,
				FirstInstance: g.start,
			})
		}
		return r.uploadCommands()
	case TierBindless:
		// One command per partition; the shader indexes the binding
		// array per instance, so textures need no grouping.
		if r.stats.Opaque > 0 {
			r.commands = append(r.commands, drawCommand{
				VertexCount:   6,
				InstanceCount: uint32(r.stats.Opaque),
			})
		}
		if r.stats.Transparent > 0 {
			r.commands = append(r.commands, drawCommand{
				VertexCount:   6,
				InstanceCount: uint32(r.stats.Transparent),
				FirstInstance: uint32(r.stats.Opaque),
			})
		}
		if err := r.uploadCommands(); err != nil {
			return err
		}
		return r.updateBindless()
	}
	return nil
}

func (r *Renderer) uploadInstances(insts []Instance) error {
	need := len(insts) * InstanceSize
	if r.instBuf == nil || r.instCap < need {
		if r.instBuf != nil {
			r.instBuf.Release()
		}
		sz := roundUpPow2(need)
		buf, err := r.dev.CreateBuffer("instances", sz, BufferInstance)
		if err != nil {
			return err
		}
		r.instBuf, r.instCap = buf, sz
	}
	return r.dev.WriteBuffer(r.instBuf, 0, instanceBytes(insts))
}

func (r *Renderer) uploadCommands() error {
	need := len(r.commands) * drawCommandSize
	if need == 0 {
		return nil
	}
	if r.indirectBuf == nil || r.indirectCap < need {
		if r.indirectBuf != nil {
			r.indirectBuf.Release()
		}
		sz := roundUpPow2(need)
		buf, err := r.dev.CreateBuffer("indirect", sz, BufferIndirect)
		if err != nil {
			return err
		}
		r.indirectBuf, r.indirectCap = buf, sz
	}
	return r.dev.WriteBuffer(r.indirectBuf, 0, commandBytes(r.commands))
}

// buildGroups records the contiguous (partition, texture) runs of the
// sorted instances.
func (r *Renderer) buildGroups(insts []Instance) {
	start := 0
	for i := 1; i <= len(insts); i++ {
		if i == len(insts) || insts[i].Tex != insts[start].Tex ||
			insts[i].Opaque() != insts[start].Opaque() {
			r.groups = append(r.groups, drawGroup{
				tex:   insts[start].Tex,
				start: uint32(start),
				count: uint32(i - start),
			})
			start = i
		}
	}
}

func (r *Renderer) countTextures() int {
	seen := map[TextureID]bool{}
	for _, g := range r.groups {
		seen[g.tex] = true
	}
	return len(seen)
}

// updateBindless rebuilds the bindless bind group only when the frame
// texture set changed.
func (r *Renderer) updateBindless() error {
	set := make([]TextureID, 0, len(r.groups))
	for _, g := range r.groups {
		set = append(set, g.tex)
	}
	slices.Sort(set)
	set = slices.Compact(set)
	if r.bindlessGroup != nil && slices.Equal(set, r.texSet) {
		return nil
	}
	bg, err := r.dev.CreateTextureBindGroup("bindless", set)
	if err != nil {
		return err
	}
	if r.bindlessGroup != nil {
		r.bindlessGroup.Release()
	}
	r.bindlessGroup = bg
	r.texSet = set
	return nil
}

func (r *Renderer) textureGroup(tex TextureID) (BindGroup, error) {
	if bg, ok := r.texGroups[tex]; ok {
		return bg, nil
	}
	bg, err := r.dev.CreateTextureBindGroup("texture", []TextureID{tex})
	if err != nil {
		return nil, err
	}
	r.texGroups[tex] = bg
	return bg, nil
}

// Render submits the prepared frame into the pass. Call after
// [Renderer.Prepare]; an empty prepared frame does nothing.
func (r *Renderer) Render(p Pass) error {
	if len(r.groups) == 0 {
		return nil
	}
	pipe, err := r.pipeline(r.blend)
	if err != nil {
		return err
	}
	p.SetPipeline(pipe)
	r.stats.PipelineSwitches++
	p.SetBindGroup(0, r.uniformGroup)
	r.stats.BindGroupSwitches++
	p.SetVertexBuffer(0, r.instBuf)

	switch r.tier {
	case TierDirect:
		for _, g := range r.groups {
			bg, err := r.textureGroup(g.tex)
			if err != nil {
				return err
			}
			p.SetBindGroup(1, bg)
			r.stats.BindGroupSwitches++
			p.Draw(g.count, g.start)
			r.stats.DrawCalls++
		}
	case TierIndirect:
		// Commands line up one-to-one with groups; issue one
		// multi-draw per texture run.
		for i, g := range r.groups {
			bg, err := r.textureGroup(g.tex)
			if err != nil {
				return err
			}
			p.SetBindGroup(1, bg)
			r.stats.BindGroupSwitches++
			p.MultiDrawIndirect(r.indirectBuf, i*drawCommandSize, 1)
			r.stats.DrawCalls++
		}
	case TierBindless:
		p.SetBindGroup(1, r.bindlessGroup)
		r.stats.BindGroupSwitches++
		p.MultiDrawIndirect(r.indirectBuf, 0, len(r.commands))
		r.stats.DrawCalls++
	}
	return nil
}

// Release frees all device resources the renderer created.
func (r *Renderer) Release() {
	for _, p := range r.pipelines {
		p.Release()
	}
	r.pipelines = map[Blend]Pipeline{}
	for _, bg := range r.texGroups {
		bg.Release()
	}
	r.texGroups = map[TextureID]BindGroup{}
	release(&r.bindlessGroup)
	releaseBuf(&r.instBuf)
	releaseBuf(&r.indirectBuf)
	release(&r.uniformGroup)
	releaseBuf(&r.uniformBuf)
}

func release(bg *BindGroup) {
	if *bg != nil {
		(*bg).Release()
		*bg = nil
	}
}

func releaseBuf(b *Buffer) {
	if *b != nil {
		(*b).Release()
		*b = nil
	}
}

func roundUpPow2(n int) int {
	p := 256
	for p < n {
		p <<= 1
	}
	return p
}
