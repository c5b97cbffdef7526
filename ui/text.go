// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ui

import (
	"github.com/kilnworks/kiln/dirty"
	"github.com/kilnworks/kiln/math32"
	"github.com/kilnworks/kiln/shaping"
)

// Text is a content-sized widget displaying a run of text. It measures
// through the scene's shaping cache, wrapping to the available width.
type Text struct {
	WidgetBase

	// Content is the displayed text. Set it with [Text.SetText].
	Content string

	shaped shaping.Result
}

// NewText returns a new text widget added to the given parent.
func NewText(parent Widget) *Text {
	return NewWidget[*Text](parent)
}

// SetText replaces the content, marking the widget for reshaping when
// it actually changed.
func (t *Text) SetText(content string) *Text {
	if content == t.Content {
		return t
	}
	t.Content = content
	t.Mark(dirty.TextShaping | dirty.Layout)
	return t
}

// Shaped returns the most recent shaping result for the content.
func (t *Text) Shaped() shaping.Result {
	return t.shaped
}

// Measure shapes the content at the available width through the
// scene's shaping cache and returns the measured size. Repeated
// measures of unchanged content hit the cache by key.
func (t *Text) Measure(available math32.Vector2) (math32.Vector2, bool) {
	sc := t.Scene
	if sc == nil || sc.TextShaper == nil || t.Content == "" {
		return math32.Vector2{}, false
	}
	st := &t.Styles
	font := shaping.FontID(st.FontID)
	id := sc.TextCache.RequestShape(t.Content, font, st.FontSize, available.X)
	sc.TextCache.Process(sc.TextShaper)
	e, ok := sc.TextCache.TakeCompleted(id)
	if !ok {
		return math32.Vector2{}, false
	}
	t.shaped = e.Result
	return e.Result.Size, true
}

// renderText paints the background per the base behavior and then the
// text anchored at the content origin.
func renderText(w Widget, dl *DrawList) {
	t := w.(*Text)
	renderBase(w, dl)
	st := &t.Styles
	if t.Content == "" || st.Color.A <= 0 {
		return
	}
	dl.Text(t.Rect.Min, t.Content, shaping.FontID(st.FontID), st.FontSize, st.Color.Scaled(st.Opacity))
}
