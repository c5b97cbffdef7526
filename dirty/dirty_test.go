// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dirty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagsGroups(t *testing.T) {
	assert.True(t, Style.Has(LayoutGroup))
	assert.True(t, TextShaping.Has(LayoutGroup))
	assert.True(t, ChildrenOrder.Has(LayoutGroup))
	assert.False(t, ColorOnly.Has(LayoutGroup))
	assert.True(t, ColorOnly.Has(PaintGroup))
	assert.True(t, OpacityOnly.Has(PaintGroup))
	assert.True(t, Geometry.Has(PaintGroup))
	assert.False(t, Layout.Has(PaintGroup))
}

func TestFlagsString(t *testing.T) {
	assert.Equal(t, "Clean", Flags(0).String())
	assert.Equal(t, "Layout+ColorOnly", (Layout | ColorOnly).String())
}

func TestCountersTransitions(t *testing.T) {
	c := &Counters{}
	assert.False(t, c.HasAnyDirty())

	// paint-only flag on one node
	c.Transition(0, ColorOnly)
	assert.True(t, c.HasPaintDirty())
	assert.True(t, c.HasAnyDirty())
	assert.False(t, c.HasLayoutDirty())

	// layout flag on a second node
	c.Transition(0, Layout)
	assert.True(t, c.HasLayoutDirty())
	assert.True(t, c.HasPaintDirty())

	// clearing both restores everything
	c.Transition(ColorOnly, 0)
	c.Transition(Layout, 0)
	assert.False(t, c.HasAnyDirty())
	assert.False(t, c.HasLayoutDirty())
	assert.False(t, c.HasPaintDirty())
	assert.False(t, c.HasTextDirty())
}

func TestCountersNoDoubleCount(t *testing.T) {
	c := &Counters{}
	// adding more flags in the same category must not double-count
	c.Transition(0, Layout)
	c.Transition(Layout, Layout|ChildrenOrder)
	c.Transition(Layout|ChildrenOrder, 0)
	assert.False(t, c.HasLayoutDirty())
}

func TestCountersSaturate(t *testing.T) {
	c := &Counters{}
	c.Transition(Layout, 0) // spurious clear must not go negative
	c.Transition(0, Layout)
	assert.True(t, c.HasLayoutDirty())
}

func TestCountersNodeRemoved(t *testing.T) {
	c := &Counters{}
	c.Transition(0, Layout|ColorOnly)
	c.NodeRemoved(Layout | ColorOnly)
	assert.False(t, c.HasAnyDirty())
}

func TestVersioned(t *testing.T) {
	v := NewVersioned(10)
	assert.Equal(t, uint32(0), v.Version())

	assert.True(t, v.Set(11))
	assert.Equal(t, uint32(1), v.Version())

	// equal-value write is silent: version bumps exactly once
	assert.False(t, v.Set(11))
	assert.Equal(t, uint32(1), v.Version())

	assert.True(t, v.IsNewerThan(0))
	assert.False(t, v.IsNewerThan(1))
	assert.Equal(t, 11, v.Get())
}
