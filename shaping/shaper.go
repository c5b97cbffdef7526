// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shaping

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/kilnworks/kiln/math32"
)

// Shaper is the default HarfBuzz-backed shape function provider,
// built on go-text/typesetting. Fonts are registered from raw TTF/OTF
// data under a [FontID]; the parsed font.Font objects are read-only
// and shared, while font.Face instances and HarfbuzzShaper state are
// not concurrency-safe and so are created per call / pooled.
type Shaper struct {
	pool sync.Pool

	mu    sync.RWMutex
	fonts map[FontID]*font.Font
}

// NewShaper returns an empty Shaper.
func NewShaper() *Shaper {
	return &Shaper{
		pool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
		fonts: map[FontID]*font.Font{},
	}
}

// AddFont parses the given TTF/OTF data and registers it under the
// given id, replacing any previous font with that id.
func (s *Shaper) AddFont(id FontID, data []byte) error {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.fonts[id] = face.Font
	s.mu.Unlock()
	return nil
}

// Func returns the [ShapeFunc] for this shaper, for use with
// [Cache.Process].
func (s *Shaper) Func() ShapeFunc {
	return s.Shape
}

// Shape shapes the given text, wrapping at the given width (0 for
// unbounded), and returns the measured extent and glyph stream. An
// unknown font id yields an empty result.
func (s *Shaper) Shape(text string, fontID FontID, size float32, wrap float32) Result {
	s.mu.RLock()
	fnt := s.fonts[fontID]
	s.mu.RUnlock()
	if fnt == nil || text == "" {
		return Result{}
	}
	face := font.NewFace(fnt)
	runes := []rune(text)

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      fixed.Int26_6(size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	s.pool.Put(hb)

	if wrap <= 0 {
		return resultFromLines([]shaping.Line{{out}})
	}
	var wrapper shaping.LineWrapper
	lines, _ := wrapper.WrapParagraph(shaping.WrapConfig{}, int(wrap), runes,
		shaping.NewSliceIterator([]shaping.Output{out}))
	return resultFromLines(lines)
}

func resultFromLines(lines []shaping.Line) Result {
	var res Result
	res.Lines = len(lines)
	var y float32
	for _, line := range lines {
		var lineWidth, lineHeight float32
		var x float32
		for _, run := range line {
			ascent := fixedToFloat(run.LineBounds.Ascent)
			descent := fixedToFloat(run.LineBounds.Descent) // negative below baseline
			gap := fixedToFloat(run.LineBounds.Gap)
			lineHeight = math32.Max(lineHeight, ascent-descent+gap)
			for _, g := range run.Glyphs {
				res.Glyphs = append(res.Glyphs, Glyph{
					ID: uint32(g.GlyphID),
					Pos: math32.Vec2(
						x+fixedToFloat(g.XOffset),
						y+fixedToFloat(g.YOffset)),
					Advance: fixedToFloat(g.XAdvance),
					Cluster: int32(g.ClusterIndex),
				})
				x += fixedToFloat(g.XAdvance)
			}
			lineWidth += fixedToFloat(run.Advance)
		}
		res.Size.X = math32.Max(res.Size.X, lineWidth)
		y += lineHeight
	}
	res.Size.Y = y
	return res
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
