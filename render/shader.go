// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	_ "embed"
	"strings"
)

//go:embed shader.wgsl
var shaderSource string

// texturesSingle binds one texture + sampler, for the direct and
// indirect tiers.
const texturesSingle = `
@group(1) @binding(0) var tex0: texture_2d<f32>;
@group(1) @binding(1) var samp: sampler;

fn sample_tex(i: u32, uv: vec2<f32>) -> vec4<f32> {
	return textureSample(tex0, samp, uv);
}
`

// texturesBindless binds the whole frame texture set as a
// partially-bound array indexed per instance.
const texturesBindless = `
@group(1) @binding(0) var texs: binding_array<texture_2d<f32>>;
@group(1) @binding(1) var samp: sampler;

fn sample_tex(i: u32, uv: vec2<f32>) -> vec4<f32> {
	return textureSample(texs[i], samp, uv);
}
`

// ShaderSource returns the unified WGSL shader for the given tier.
func ShaderSource(tier Tier) string {
	block := texturesSingle
	if tier == TierBindless {
		block = texturesBindless
	}
	return strings.Replace(shaderSource, "//KILN:TEXTURES", block, 1)
}
