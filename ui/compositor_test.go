// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ui

import (
	"testing"

	"github.com/kilnworks/kiln/math32"
	"github.com/kilnworks/kiln/render"
	"github.com/kilnworks/kiln/shaping"
	"github.com/kilnworks/kiln/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runeShaper emits one 8x16 glyph per byte, advancing 8px.
func runeShaper(text string, font shaping.FontID, size float32, wrap float32) shaping.Result {
	res := shaping.Result{Size: math32.Vec2(float32(len(text))*8, size), Lines: 1}
	for i := range text {
		res.Glyphs = append(res.Glyphs, shaping.Glyph{
			ID:      uint32(text[i]),
			Pos:     math32.Vec2(float32(i)*8, 0),
			Advance: 8,
		})
	}
	return res
}

// gridAtlas places every glyph in an 8x16 cell of texture 1.
type gridAtlas struct{}

func (gridAtlas) Glyph(font shaping.FontID, glyph uint32, size float32) (GlyphQuad, bool) {
	return GlyphQuad{
		UVMin:  [2]float32{0, 0},
		UVMax:  [2]float32{0.5, 0.5},
		Offset: math32.Vec2(0, 2),
		Size:   math32.Vec2(8, 16),
		Tex:    render.TextureID(1),
	}, true
}

func newTestCompositor() *Compositor {
	return &Compositor{Atlas: gridAtlas{}, Cache: shaping.NewCache(), Shaper: runeShaper}
}

// nullDevice satisfies the render device boundary with no-op handles,
// enough to drive Prepare without a GPU.
type nullHandle struct{}

func (nullHandle) Release() {}

type nullDevice struct{}

func (nullDevice) Caps() render.Caps { return render.Caps{} }

func (nullDevice) CreateBuffer(label string, size int, usage render.BufferUsage) (render.Buffer, error) {
	return nullHandle{}, nil
}

func (nullDevice) WriteBuffer(buf render.Buffer, offset int, data []byte) error { return nil }

func (nullDevice) CreateTexture(label string, width, height int, format render.TextureFormat, pixels []byte) (render.TextureID, error) {
	return render.TextureID(1), nil
}

func (nullDevice) CreatePipeline(label string, blend render.Blend, tier render.Tier) (render.Pipeline, error) {
	return nullHandle{}, nil
}

func (nullDevice) CreateUniformBindGroup(label string, buf render.Buffer) (render.BindGroup, error) {
	return nullHandle{}, nil
}

func (nullDevice) CreateTextureBindGroup(label string, textures []render.TextureID) (render.BindGroup, error) {
	return nullHandle{}, nil
}

type nullPass struct{}

func (nullPass) SetPipeline(p render.Pipeline)                          {}
func (nullPass) SetBindGroup(index int, bg render.BindGroup)            {}
func (nullPass) SetVertexBuffer(slot int, buf render.Buffer)            {}
func (nullPass) Draw(instanceCount, firstInstance uint32)               {}
func (nullPass) MultiDrawIndirect(buf render.Buffer, offset, count int) {}

func TestComposeRectsAndLines(t *testing.T) {
	view := math32.B2(0, 0, 800, 600)
	dl := NewDrawList(view)
	dl.FillRect(math32.B2(10, 10, 110, 60), styles.RGBA(1, 0, 0, 1), 0)
	dl.StrokeRect(math32.B2(10, 10, 110, 60), styles.Black, 2, 4)
	dl.Line(math32.Vec2(0, 100), math32.Vec2(200, 100), styles.RGBA(0, 0, 1, 0.5), 4)

	var b render.Batch
	newTestCompositor().Compose(dl, &b)
	require.Equal(t, 3, b.Len())

	fill, stroke, line := b.Instances[0], b.Instances[1], b.Instances[2]
	assert.Equal(t, render.KindQuad, fill.Kind)
	assert.Equal(t, float32(0), fill.Border)
	assert.True(t, fill.Opaque())

	assert.Equal(t, float32(2), stroke.Border)
	assert.Equal(t, float32(4), stroke.Radius)
	assert.False(t, stroke.Opaque(), "border interiors blend")

	// the line expands by half its width on the perpendicular axis
	assert.Equal(t, [2]float32{0, 98}, line.Pos)
	assert.Equal(t, [2]float32{200, 4}, line.Size)
	assert.Equal(t, [4]float32{0, 0, 0.5, 0.5}, line.Color, "premultiplied")

	// clip carried from the list
	assert.Equal(t, [2]float32{800, 600}, fill.ClipMax)
}

func TestComposeDepthNormalized(t *testing.T) {
	dl := NewDrawList(math32.B2(0, 0, 100, 100))
	for i := 0; i < 5; i++ {
		dl.FillRect(math32.B2(0, 0, 10, 10), styles.White, 0)
	}

	var b render.Batch
	newTestCompositor().Compose(dl, &b)
	require.Equal(t, 5, b.Len())
	prev := float32(0)
	for _, in := range b.Instances {
		assert.Greater(t, in.Depth, prev, "paint order maps to increasing depth")
		assert.Less(t, in.Depth, float32(1))
		prev = in.Depth
	}
}

func TestComposeTextGlyphs(t *testing.T) {
	dl := NewDrawList(math32.B2(0, 0, 800, 600))
	dl.Text(math32.Vec2(10, 20), "hi", 0, 16, styles.Black)

	var b render.Batch
	newTestCompositor().Compose(dl, &b)
	require.Equal(t, 2, b.Len())

	for i, in := range b.Instances {
		assert.Equal(t, render.KindText, in.Kind)
		assert.Equal(t, render.TextureID(1), in.Tex)
		assert.Equal(t, [2]float32{10 + float32(i)*8, 22}, in.Pos, "pen plus bearing")
		assert.Equal(t, [2]float32{8, 16}, in.Size)
	}

	// repeated composition of the same text hits the shaping cache
	c := newTestCompositor()
	for i := 0; i < 3; i++ {
		b.Reset()
		c.Compose(dl, &b)
	}
	assert.GreaterOrEqual(t, c.Cache.Stats().Hits, uint64(2))
}

func TestComposeTextWithoutAtlasSkips(t *testing.T) {
	dl := NewDrawList(math32.B2(0, 0, 100, 100))
	dl.Text(math32.Vec2(0, 0), "hi", 0, 16, styles.Black)
	dl.FillRect(math32.B2(0, 0, 10, 10), styles.White, 0)

	c := newTestCompositor()
	c.Atlas = nil
	var b render.Batch
	c.Compose(dl, &b)
	assert.Equal(t, 1, b.Len(), "text skipped, rect kept")
}

// TestSceneRenderToRenderer walks the whole seam: widget tree to draw
// list to instance batch to prepared renderer.
func TestSceneRenderToRenderer(t *testing.T) {
	sc := newTestScene()
	sc.TextShaper = runeShaper
	sc.Root.Style(func(s *styles.Style) { s.Background = styles.White })
	solid := NewFrame(sc.Root)
	solid.Style(func(s *styles.Style) { s.Background = styles.RGBA(1, 0, 0, 1); s.Grow = 1 })
	tinted := NewFrame(sc.Root)
	tinted.Style(func(s *styles.Style) { s.Background = styles.RGBA(0, 0, 1, 0.5); s.Grow = 1 })
	txt := NewText(sc.Root).SetText("hi")
	txt.Style(func(s *styles.Style) { s.Color = styles.Black })
	settle(sc)

	dl := NewDrawList(math32.Box2{Max: sc.Size})
	sc.Render(&Context{}, dl)
	require.Len(t, dl.Cmds, 4, "three fills and one text run")

	var b render.Batch
	NewCompositor(sc, gridAtlas{}).Compose(dl, &b)
	require.Equal(t, 5, b.Len(), "three quads and two glyphs")

	r, err := render.New(nullDevice{})
	require.NoError(t, err)
	require.Equal(t, render.TierDirect, r.Tier())
	require.NoError(t, r.SetViewport(sc.Size.X, sc.Size.Y))
	require.NoError(t, r.Prepare(&b))
	require.NoError(t, r.Render(nullPass{}))

	stats := r.Stats()
	assert.Equal(t, 5, stats.Instances)
	assert.Equal(t, 2, stats.Opaque, "root and the solid frame")
	assert.Equal(t, 3, stats.Transparent, "tinted frame and glyphs")
	assert.Equal(t, 3, stats.DrawCalls, "opaque quads, tinted quad, glyph run")
	assert.Equal(t, 2, stats.Textures, "white plus the atlas")

	// sorted stream: opaque partition first, every depth in (0, 1)
	for i, in := range b.Instances {
		assert.Equal(t, i < stats.Opaque, in.Opaque())
		assert.Greater(t, in.Depth, float32(0))
		assert.Less(t, in.Depth, float32(1))
	}
}
