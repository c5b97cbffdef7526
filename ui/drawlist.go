// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ui

import (
	"github.com/kilnworks/kiln/math32"
	"github.com/kilnworks/kiln/shaping"
	"github.com/kilnworks/kiln/styles"
)

// CmdKind identifies the kind of a draw command.
type CmdKind int32

const (
	// CmdFillRect is a filled, optionally rounded rectangle.
	CmdFillRect CmdKind = iota

	// CmdStrokeRect is a rectangle outline.
	CmdStrokeRect

	// CmdText is a run of shaped text anchored at Rect.Min.
	CmdText

	// CmdLine is a line segment from From to To.
	CmdLine
)

// Cmd is one draw command. Commands carry the clip rectangle they
// inherit and their paint-order index as Depth; [Compositor.Compose]
// normalizes it into the renderer's [0,1] reverse-Z range, so later
// commands composite over earlier ones.
type Cmd struct {
	Kind   CmdKind
	Rect   math32.Box2
	Clip   math32.Box2
	Color  styles.Color
	Radius float32
	Width  float32
	Depth  float32
	Text   string
	Font   shaping.FontID
	Size   float32
	From   math32.Vector2
	To     math32.Vector2
}

// DrawList accumulates draw commands for one frame: the main UI pass
// first, then middleware overlays composited on top. The list carries
// a current clip rectangle and translation offset applied to every
// pushed command (scroll containers translate their subtrees).
type DrawList struct {
	Cmds []Cmd

	clip   math32.Box2
	offset math32.Vector2
}

// NewDrawList returns a draw list clipped to the given viewport.
func NewDrawList(viewport math32.Box2) *DrawList {
	return &DrawList{clip: viewport}
}

// Reset empties the list for the next frame, preserving capacity.
func (dl *DrawList) Reset(viewport math32.Box2) {
	dl.Cmds = dl.Cmds[:0]
	dl.clip = viewport
	dl.offset = math32.Vector2{}
}

// SetClip sets the clip rectangle applied to subsequent commands.
func (dl *DrawList) SetClip(clip math32.Box2) {
	dl.clip = clip
}

// SetOffset sets the translation applied to subsequent commands.
func (dl *DrawList) SetOffset(off math32.Vector2) {
	dl.offset = off
}

func (dl *DrawList) push(c Cmd) {
	c.Clip = dl.clip
	c.Depth = float32(len(dl.Cmds))
	dl.Cmds = append(dl.Cmds, c)
}

// FillRect draws a filled rectangle with the given corner radius.
func (dl *DrawList) FillRect(rect math32.Box2, color styles.Color, radius float32) {
	dl.push(Cmd{Kind: CmdFillRect, Rect: rect.Translate(dl.offset), Color: color, Radius: radius})
}

// StrokeRect draws a rectangle outline with the given line width.
func (dl *DrawList) StrokeRect(rect math32.Box2, color styles.Color, width, radius float32) {
	dl.push(Cmd{Kind: CmdStrokeRect, Rect: rect.Translate(dl.offset), Color: color, Width: width, Radius: radius})
}

// Text draws a run of text with its top-left corner at pos.
func (dl *DrawList) Text(pos math32.Vector2, text string, font shaping.FontID, size float32, color styles.Color) {
	p := pos.Add(dl.offset)
	dl.push(Cmd{Kind: CmdText, Rect: math32.Box2{Min: p, Max: p}, Text: text, Font: font, Size: size, Color: color})
}

// Line draws a line segment with the given width.
func (dl *DrawList) Line(from, to math32.Vector2, color styles.Color, width float32) {
	dl.push(Cmd{Kind: CmdLine, From: from.Add(dl.offset), To: to.Add(dl.offset), Color: color, Width: width})
}
