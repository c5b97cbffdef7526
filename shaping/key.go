// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shaping provides the text shaping cache and pipeline: shape
// requests keyed by (font, size, content hash, bucketed wrap width)
// are processed by a pluggable shape function and shared across frames
// by reference. The default shape function is backed by
// go-text/typesetting's HarfBuzz implementation.
package shaping

import (
	"hash/fnv"

	"github.com/kilnworks/kiln/math32"
)

// FontID identifies a registered font.
type FontID int32

// WrapBucketSize is the granularity of wrap-width bucketing, in
// pixels. Bucketing trades imperceptible layout drift for a large
// cache hit-rate improvement.
const WrapBucketSize = 4

// Key is the cache key for shaped text. Equal keys must yield
// visually equivalent shaping.
type Key struct {
	// Font is the font the text is shaped with.
	Font FontID

	// SizePx is the font size rounded to integer pixels.
	SizePx int32

	// TextHash is a 32-bit FNV-1a hash of the text content.
	TextHash uint32

	// WrapBucket is the wrap width bucketed to [WrapBucketSize]
	// increments, or 0 for unbounded. A positive wrap width always
	// maps to a bucket >= 1, so "no wrap" never collides with any
	// bounded width.
	WrapBucket int32
}

// NewKey returns the cache key for the given shape parameters.
func NewKey(font FontID, size float32, text string, wrap float32) Key {
	h := fnv.New32a()
	h.Write([]byte(text))
	return Key{
		Font:       font,
		SizePx:     int32(math32.Round(size)),
		TextHash:   h.Sum32(),
		WrapBucket: wrapBucket(wrap),
	}
}

func wrapBucket(wrap float32) int32 {
	if wrap <= 0 {
		return 0
	}
	return max(1, int32(math32.Round(wrap/WrapBucketSize)))
}

// BucketedWrap returns the wrap width all members of this key's bucket
// are shaped with: 0 for unbounded, else the bucket center.
func (k Key) BucketedWrap() float32 {
	if k.WrapBucket == 0 {
		return 0
	}
	return float32(k.WrapBucket) * WrapBucketSize
}
