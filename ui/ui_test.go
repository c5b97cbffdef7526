// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ui

import (
	"testing"

	"github.com/kilnworks/kiln/dirty"
	"github.com/kilnworks/kiln/math32"
	"github.com/kilnworks/kiln/shaping"
	"github.com/kilnworks/kiln/styles"
	"github.com/kilnworks/kiln/styles/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScene() *Scene {
	return NewScene(math32.Vec2(800, 600))
}

// settle runs layout so the scene starts clean.
func settle(sc *Scene) {
	sc.LayoutIfNeeded()
}

func TestCounterArithmetic(t *testing.T) {
	sc := newTestScene()
	c0 := NewFrame(sc.Root)
	c1 := NewFrame(sc.Root)
	settle(sc)
	require.False(t, sc.Counters.HasAnyDirty())

	c0.Mark(dirty.ColorOnly)
	assert.True(t, sc.Counters.HasPaintDirty())
	assert.False(t, sc.Counters.HasLayoutDirty())

	c1.Mark(dirty.Layout)
	assert.True(t, sc.Counters.HasLayoutDirty())
	assert.True(t, sc.Counters.HasPaintDirty())

	c0.ClearFlags(dirty.ColorOnly)
	c1.ClearFlags(dirty.Layout)
	// Layout propagated to the root as well
	sc.Root.AsWidget().ClearFlags(dirty.Layout)
	assert.False(t, sc.Counters.HasAnyDirty())
	assert.False(t, sc.Counters.HasLayoutDirty())
	assert.False(t, sc.Counters.HasPaintDirty())
	assert.False(t, sc.Counters.HasTextDirty())
}

func TestMarkPropagation(t *testing.T) {
	sc := newTestScene()
	mid := NewFrame(sc.Root)
	leaf := NewFrame(mid)
	settle(sc)

	leaf.Mark(dirty.Layout)
	assert.True(t, mid.Flags().Has(dirty.Layout))
	assert.True(t, sc.Root.AsWidget().Flags().Has(dirty.Layout))

	// paint-only flags stay local
	sc.LayoutIfNeeded()
	leaf.Mark(dirty.ColorOnly)
	assert.False(t, mid.Flags().Has(dirty.ColorOnly))
	assert.Equal(t, dirty.Flags(0), sc.Root.AsWidget().Flags())
}

func TestStyleGuardMarksDirty(t *testing.T) {
	sc := newTestScene()
	f := NewFrame(sc.Root)
	settle(sc)

	f.Style(func(s *styles.Style) {
		s.Background = styles.Color{R: 1, A: 1}
	})
	assert.True(t, f.Flags().Has(dirty.ColorOnly))
	assert.False(t, sc.Counters.HasLayoutDirty())

	f.Style(func(s *styles.Style) {
		s.Padding = styles.NewSides(units.Px(8))
	})
	assert.True(t, f.Flags().Has(dirty.Layout))
	assert.True(t, sc.Counters.HasLayoutDirty())
}

func TestDeleteInvalidatesID(t *testing.T) {
	sc := newTestScene()
	f := NewFrame(sc.Root)
	kid := NewFrame(f)
	settle(sc)

	id, kidID := f.ID, kid.ID
	require.NotNil(t, sc.WidgetFor(id))

	kid.Mark(dirty.ColorOnly)
	sc.Delete(f)

	assert.Nil(t, sc.WidgetFor(id))
	assert.Nil(t, sc.WidgetFor(kidID), "removal cascades")
	assert.False(t, sc.Counters.HasPaintDirty(), "removed nodes leave the counters")
	assert.True(t, sc.Counters.HasLayoutDirty(), "parent needs relayout")
	assert.Equal(t, 1, sc.NumWidgets())
}

func TestBuilderStableIDs(t *testing.T) {
	sc := newTestScene()

	b := sc.Build()
	b.OpenFrame("sidebar")
	title := b.Text("title", "Files")
	b.Close()
	id := title.ID

	// rebuilding with the same names reuses the widgets
	b = sc.Build()
	b.OpenFrame("sidebar")
	again := b.Text("title", "Files")
	b.Close()
	assert.Equal(t, id, again.ID)
	assert.Same(t, title, again)

	// a type change rebuilds under a fresh id
	b = sc.Build()
	b.OpenFrame("sidebar")
	repl := b.Frame("title")
	b.Close()
	assert.NotEqual(t, id, repl.ID)
	assert.Nil(t, sc.WidgetFor(id))
}

func TestBuilderPrune(t *testing.T) {
	sc := newTestScene()
	b := sc.Build()
	b.Frame("a")
	b.Frame("b")
	b.Frame("c")
	require.Equal(t, 3, sc.Root.NumChildren())

	b.Prune("a", "c")
	assert.Equal(t, 2, sc.Root.NumChildren())
	assert.Nil(t, sc.Root.ChildByName("b"))
}

func TestRegistryDispatch(t *testing.T) {
	sc := newTestScene()

	k, ok := sc.Registry.KindByName("text")
	require.True(t, ok)
	txt := NewText(sc.Root)
	assert.Equal(t, k, txt.Kind)

	// unregistered types fall back to the base widget kind
	_, err := Register[*Text](sc.Registry, Descriptor{Name: "text2"})
	assert.Error(t, err, "duplicate type")
	_, err = Register[*Frame](sc.Registry, Descriptor{Name: "frame"})
	assert.Error(t, err, "duplicate name")
}

func TestTextMeasure(t *testing.T) {
	sc := newTestScene()
	sc.TextShaper = func(text string, font shaping.FontID, size float32, wrap float32) shaping.Result {
		return shaping.Result{Size: math32.Vec2(float32(len(text))*8, size), Lines: 1}
	}
	txt := NewText(sc.Root).SetText("hello")
	settle(sc)

	assert.True(t, txt.HasRect())
	assert.Equal(t, float32(40), txt.Rect.Size().X)
	assert.Equal(t, float32(1), float32(txt.Shaped().Lines))

	// same content measures through the cache
	txt.Mark(dirty.Layout)
	settle(sc)
	assert.GreaterOrEqual(t, sc.TextCache.Stats().Hits, uint64(1))
}
