// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import "fmt"

// Tier is the batch submission strategy. Higher tiers need more
// device capability but issue fewer API calls per frame; the shader,
// pipeline, and instance format are identical across tiers.
type Tier int32

const (
	// TierDirect issues one draw call per (texture, sub-range) and
	// requires no special capabilities.
	TierDirect Tier = 1 + iota

	// TierIndirect issues one multi-draw-indirect per texture group,
	// requiring indirect-first-instance.
	TierIndirect

	// TierBindless binds every frame texture in one binding array and
	// issues a single multi-draw-indirect for the whole frame.
	TierBindless
)

func (t Tier) String() string {
	switch t {
	case TierDirect:
		return "direct"
	case TierIndirect:
		return "indirect"
	case TierBindless:
		return "bindless"
	}
	return fmt.Sprintf("Tier(%d)", int32(t))
}

// bindlessMinElements is the minimum per-stage binding-array element
// count for the bindless tier to be worth having.
const bindlessMinElements = 256

// Caps records the device capabilities that tier selection depends
// on. A zero Caps supports only [TierDirect].
type Caps struct {
	// IndirectFirstInstance is true when indirect draw commands may
	// carry a non-zero first-instance.
	IndirectFirstInstance bool

	// TextureBindingArray is true when bind groups may hold arrays of
	// textures.
	TextureBindingArray bool

	// PartiallyBound is true when binding arrays may have unwritten
	// slots.
	PartiallyBound bool

	// NonUniformIndexing is true when shaders may index binding
	// arrays with non-uniform values.
	NonUniformIndexing bool

	// MaxBindingArrayElements is the per-stage limit on binding-array
	// elements.
	MaxBindingArrayElements int
}

// Supports reports whether the device can run the given tier.
func (c Caps) Supports(t Tier) bool {
	switch t {
	case TierDirect:
		return true
	case TierIndirect:
		return c.IndirectFirstInstance
	case TierBindless:
		return c.IndirectFirstInstance && c.TextureBindingArray &&
			c.PartiallyBound && c.NonUniformIndexing &&
			c.MaxBindingArrayElements >= bindlessMinElements
	}
	return false
}

// BestTier returns the highest tier the device supports.
func (c Caps) BestTier() Tier {
	for t := TierBindless; t > TierDirect; t-- {
		if c.Supports(t) {
			return t
		}
	}
	return TierDirect
}
