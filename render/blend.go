// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

// Factor is a blend factor applied to source or destination color.
type Factor int32

const (
	FactorZero Factor = iota
	FactorOne
	FactorSrc
	FactorOneMinusSrc
	FactorSrcAlpha
	FactorOneMinusSrcAlpha
	FactorDst
	FactorOneMinusDst
	FactorDstAlpha
	FactorOneMinusDstAlpha
)

// BlendOp combines the weighted source and destination terms.
type BlendOp int32

const (
	OpAdd BlendOp = iota
	OpSubtract
	OpReverseSubtract
	OpMin
	OpMax
)

// BlendComponent is one blend equation: Src*src Op Dst*dst.
type BlendComponent struct {
	Src Factor
	Dst Factor
	Op  BlendOp
}

// Blend is a full blend state for the color target. It is comparable
// so it can key the pipeline cache; any custom state beyond the
// presets works the same way.
type Blend struct {
	Color BlendComponent
	Alpha BlendComponent
}

var (
	// BlendReplace overwrites the destination.
	BlendReplace = Blend{
		Color: BlendComponent{Src: FactorOne, Dst: FactorZero, Op: OpAdd},
		Alpha: BlendComponent{Src: FactorOne, Dst: FactorZero, Op: OpAdd},
	}

	// BlendAlpha is classic post-multiplied alpha blending.
	BlendAlpha = Blend{
		Color: BlendComponent{Src: FactorSrcAlpha, Dst: FactorOneMinusSrcAlpha, Op: OpAdd},
		Alpha: BlendComponent{Src: FactorOne, Dst: FactorOneMinusSrcAlpha, Op: OpAdd},
	}

	// BlendPremultiplied is the default; instance colors are
	// premultiplied.
	BlendPremultiplied = Blend{
		Color: BlendComponent{Src: FactorOne, Dst: FactorOneMinusSrcAlpha, Op: OpAdd},
		Alpha: BlendComponent{Src: FactorOne, Dst: FactorOneMinusSrcAlpha, Op: OpAdd},
	}

	// BlendAdditive accumulates light-like contributions.
	BlendAdditive = Blend{
		Color: BlendComponent{Src: FactorOne, Dst: FactorOne, Op: OpAdd},
		Alpha: BlendComponent{Src: FactorOne, Dst: FactorOne, Op: OpAdd},
	}

	// BlendMultiply darkens the destination by the source.
	BlendMultiply = Blend{
		Color: BlendComponent{Src: FactorDst, Dst: FactorZero, Op: OpAdd},
		Alpha: BlendComponent{Src: FactorDstAlpha, Dst: FactorZero, Op: OpAdd},
	}
)
