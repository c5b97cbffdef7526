// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ui

import (
	"github.com/kilnworks/kiln/math32"
	"github.com/kilnworks/kiln/render"
	"github.com/kilnworks/kiln/shaping"
	"github.com/kilnworks/kiln/styles"
)

// GlyphQuad locates a rasterized glyph in an atlas texture and places
// it relative to the pen position.
type GlyphQuad struct {
	// UVMin and UVMax bound the glyph's atlas region in [0,1].
	UVMin [2]float32
	UVMax [2]float32

	// Offset is from the pen position to the glyph rectangle's
	// top-left corner (bearing, with Y down).
	Offset math32.Vector2

	// Size is the glyph rectangle extent in pixels.
	Size math32.Vector2

	// Tex is the atlas texture.
	Tex render.TextureID
}

// GlyphAtlas resolves glyphs to atlas quads. An implementation
// typically rasterizes on first request and packs into an R8 texture.
type GlyphAtlas interface {
	// Glyph returns the atlas quad for a glyph at the given pixel
	// size, or false if the glyph cannot be rasterized.
	Glyph(font shaping.FontID, glyph uint32, size float32) (GlyphQuad, bool)
}

// Compositor converts a frame's [DrawList] into renderer instances.
// Rectangles and lines become SDF quads; text commands are shaped
// through the cache and resolved to atlas glyphs.
type Compositor struct {
	// Atlas resolves glyphs for text commands. Text is skipped when
	// unset.
	Atlas GlyphAtlas

	// Cache and Shaper shape text commands. The scene's cache is
	// shared here so compositing hits the entries layout warmed.
	Cache  *shaping.Cache
	Shaper shaping.ShapeFunc
}

// NewCompositor returns a compositor sharing the scene's shaping
// cache and shaper.
func NewCompositor(sc *Scene, atlas GlyphAtlas) *Compositor {
	return &Compositor{Atlas: atlas, Cache: sc.TextCache, Shaper: sc.TextShaper}
}

// Compose appends the draw list's commands to the batch. Paint order
// becomes depth: command i of n maps to (i+1)/(n+1), so later commands
// sit nearer under the reverse-Z convention and transparent instances
// sort back to front.
func (c *Compositor) Compose(dl *DrawList, b *render.Batch) {
	n := len(dl.Cmds)
	if n == 0 {
		return
	}
	step := 1 / float32(n+1)
	for i := range dl.Cmds {
		cmd := &dl.Cmds[i]
		depth := step * float32(i+1)
		switch cmd.Kind {
		case CmdFillRect:
			b.Quad(cmd.Rect, cmd.Clip, premul(cmd.Color), cmd.Radius, 0, depth)
		case CmdStrokeRect:
			b.Quad(cmd.Rect, cmd.Clip, premul(cmd.Color), cmd.Radius, cmd.Width, depth)
		case CmdLine:
			b.Quad(lineQuad(cmd.From, cmd.To, cmd.Width), cmd.Clip, premul(cmd.Color), 0, 0, depth)
		case CmdText:
			c.composeText(cmd, b, depth)
		}
	}
}

func (c *Compositor) composeText(cmd *Cmd, b *render.Batch, depth float32) {
	if c.Atlas == nil || c.Cache == nil || c.Shaper == nil {
		return
	}
	id := c.Cache.RequestShape(cmd.Text, cmd.Font, cmd.Size, 0)
	c.Cache.Process(c.Shaper)
	e, ok := c.Cache.TakeCompleted(id)
	if !ok {
		return
	}
	color := premul(cmd.Color)
	for _, g := range e.Result.Glyphs {
		q, ok := c.Atlas.Glyph(cmd.Font, g.ID, cmd.Size)
		if !ok {
			continue
		}
		pen := cmd.Rect.Min.Add(g.Pos).Add(q.Offset)
		b.Glyph(math32.Box2{Min: pen, Max: pen.Add(q.Size)}, cmd.Clip, q.UVMin, q.UVMax, q.Tex, color, depth)
	}
}

func premul(c styles.Color) [4]float32 {
	p := c.Premultiplied()
	return [4]float32{p.R, p.G, p.B, p.A}
}

// lineQuad thickens a segment into a quad. Axis-aligned segments
// expand by half the width on the perpendicular axis only; diagonal
// segments render as their thickened bounding rectangle.
func lineQuad(from, to math32.Vector2, width float32) math32.Box2 {
	half := width / 2
	box := math32.Box2{Min: from.Min(to), Max: from.Max(to)}
	if box.Min.X != box.Max.X && box.Min.Y != box.Max.Y {
		return math32.Box2{
			Min: box.Min.Sub(math32.Vec2(half, half)),
			Max: box.Max.Add(math32.Vec2(half, half)),
		}
	}
	if box.Min.X == box.Max.X {
		box.Min.X -= half
		box.Max.X += half
	}
	if box.Min.Y == box.Max.Y {
		box.Min.Y -= half
		box.Max.Y += half
	}
	return box
}
