// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ui

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/kilnworks/kiln/dirty"
	"github.com/kilnworks/kiln/math32"
	"github.com/kilnworks/kiln/styles"
	"github.com/kilnworks/kiln/styles/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutRunsOnlyWhenDirty(t *testing.T) {
	sc := newTestScene()
	NewFrame(sc.Root)

	assert.True(t, sc.LayoutIfNeeded())
	assert.False(t, sc.LayoutIfNeeded(), "clean tree skips layout")
	assert.False(t, sc.Counters.HasLayoutDirty())
}

func TestLayoutClearsFlags(t *testing.T) {
	sc := newTestScene()
	f := NewFrame(sc.Root)
	settle(sc)

	f.Mark(dirty.Layout | dirty.TextShaping | dirty.ChildrenOrder)
	sc.LayoutIfNeeded()
	assert.Equal(t, dirty.Flags(0), f.Flags()&dirty.LayoutClearGroup)
	assert.Equal(t, dirty.Flags(0), sc.Root.AsWidget().Flags()&dirty.LayoutClearGroup)
}

func TestRowLayoutGrow(t *testing.T) {
	sc := newTestScene()
	left := NewFrame(sc.Root)
	left.Style(func(s *styles.Style) { s.Width = units.Lit(units.Px(200)) })
	right := NewFrame(sc.Root)
	right.Style(func(s *styles.Style) { s.Grow = 1 })
	settle(sc)

	assert.Equal(t, float32(200), left.Rect.Size().X)
	assert.Equal(t, float32(600), right.Rect.Size().X)
	assert.Equal(t, float32(200), right.Rect.Min.X)
	// cross axis fills by default for containers
	assert.Equal(t, float32(600), left.Rect.Size().Y)
}

func TestColumnLayoutGapAndPadding(t *testing.T) {
	sc := newTestScene()
	sc.Root.Style(func(s *styles.Style) {
		s.Direction = styles.Column
		s.Padding = styles.NewSides(units.Px(10))
		s.Gap = units.Px(20)
	})
	a := NewFrame(sc.Root)
	a.Style(func(s *styles.Style) { s.Height = units.Lit(units.Px(100)) })
	b := NewFrame(sc.Root)
	b.Style(func(s *styles.Style) { s.Height = units.Lit(units.Px(100)) })
	settle(sc)

	assert.Equal(t, float32(10), a.Rect.Min.Y)
	assert.Equal(t, float32(130), b.Rect.Min.Y)
	assert.Equal(t, float32(10), a.Rect.Min.X)
	assert.Equal(t, float32(780), a.Rect.Size().X)
}

func TestPercentAndCalc(t *testing.T) {
	sc := newTestScene()
	half := NewFrame(sc.Root)
	half.Style(func(s *styles.Style) { s.Width = units.Lit(units.Percent(50)) })
	clamped := NewFrame(sc.Root)
	clamped.Style(func(s *styles.Style) {
		s.Width = units.Clamp(units.Lit(units.Px(100)), units.Lit(units.Percent(80)), units.Lit(units.Px(300)))
	})
	settle(sc)

	assert.Equal(t, float32(400), half.Rect.Size().X)
	assert.Equal(t, float32(300), clamped.Rect.Size().X)
}

func TestShrinkRespectsMin(t *testing.T) {
	sc := newTestScene()
	a := NewFrame(sc.Root)
	a.Style(func(s *styles.Style) {
		s.Width = units.Lit(units.Px(600))
		s.MinWidth = units.Lit(units.Px(500))
	})
	b := NewFrame(sc.Root)
	b.Style(func(s *styles.Style) { s.Width = units.Lit(units.Px(600)) })
	settle(sc)

	assert.GreaterOrEqual(t, a.Rect.Size().X, float32(500))
	assert.Less(t, b.Rect.Size().X, float32(600))
}

func TestJustifyCenter(t *testing.T) {
	sc := newTestScene()
	sc.Root.Style(func(s *styles.Style) { s.Justify = styles.JustifyCenter })
	f := NewFrame(sc.Root)
	f.Style(func(s *styles.Style) { s.Width = units.Lit(units.Px(200)) })
	settle(sc)

	assert.Equal(t, float32(300), f.Rect.Min.X)
}

func TestClipPropagation(t *testing.T) {
	sc := newTestScene()
	clipper := NewFrame(sc.Root)
	clipper.Style(func(s *styles.Style) {
		s.Width = units.Lit(units.Px(100))
		s.Height = units.Lit(units.Px(100))
		s.OverflowX = styles.OverflowHidden
		s.OverflowY = styles.OverflowHidden
	})
	inner := NewFrame(clipper)
	inner.Style(func(s *styles.Style) {
		s.Width = units.Lit(units.Px(500))
		s.Height = units.Lit(units.Px(500))
	})
	settle(sc)

	assert.Equal(t, clipper.Rect, inner.Clip, "clip bound is the clipping ancestor's rect")
	// the clipper itself is clipped only by the viewport
	assert.Equal(t, math32.B2(0, 0, 800, 600), clipper.Clip)
	assert.False(t, inner.Clip.Size().X < 0 || inner.Clip.Size().Y < 0)
}

func TestClipClampedToViewport(t *testing.T) {
	sc := newTestScene()
	big := NewFrame(sc.Root)
	big.Style(func(s *styles.Style) {
		s.Width = units.Lit(units.Px(2000))
		s.OverflowX = styles.OverflowHidden
		s.OverflowY = styles.OverflowHidden
	})
	kid := NewFrame(big)
	settle(sc)

	assert.LessOrEqual(t, kid.Clip.Max.X, float32(800))
	assert.GreaterOrEqual(t, kid.Clip.Min.X, float32(0))
}

func TestScrollClampAndDirty(t *testing.T) {
	sc := newTestScene()
	sc.Plugins = append(sc.Plugins, &ScrollPlugin{})
	sv := NewFrame(sc.Root)
	sv.Style(func(s *styles.Style) {
		s.Direction = styles.Column
		s.Width = units.Lit(units.Px(200))
		s.Height = units.Lit(units.Px(200))
		s.OverflowY = styles.OverflowScroll
	})
	content := NewFrame(sv)
	content.Style(func(s *styles.Style) { s.Height = units.Lit(units.Px(1000)) })
	settle(sc)

	require.Equal(t, float32(1000), sv.ContentSize.Y)

	sv.ScrollBy(math32.Vec2(0, 5000))
	assert.Equal(t, float32(800), sv.Scroll.Y, "clamped to content - viewport")
	assert.True(t, sv.Flags().Has(dirty.Clip))
	assert.False(t, sc.Counters.HasLayoutDirty(), "scrolling never invalidates layout")

	sv.ScrollBy(math32.Vec2(0, -9999))
	assert.Equal(t, float32(0), sv.Scroll.Y)

	// plugin clamps offsets that layout shrank out of range
	sv.Scroll = math32.Vec2(0, 800)
	content.Style(func(s *styles.Style) { s.Height = units.Lit(units.Px(300)) })
	settle(sc)
	assert.Equal(t, float32(100), sv.Scroll.Y)
}

type pauseMW struct {
	MiddlewareBase
	pause bool
}

func (m *pauseMW) PreLayout(ctx *Context) bool { return m.pause }

func TestMiddlewarePausesLayout(t *testing.T) {
	sc := newTestScene()
	mw := &pauseMW{MiddlewareBase: MiddlewareBase{Nm: "pause"}, pause: true}
	sc.Middleware.Add(mw)
	f := NewFrame(sc.Root)
	f.Mark(dirty.Layout)

	ctx := &Context{}
	sc.Update(ctx)
	assert.True(t, sc.Counters.HasLayoutDirty(), "counters untouched while paused")
	assert.False(t, f.HasRect())

	mw.pause = false
	sc.Update(ctx)
	assert.False(t, sc.Counters.HasLayoutDirty(), "next frame picks up the work")
	assert.True(t, f.HasRect())
}

type overlayMW struct {
	MiddlewareBase
}

func (m *overlayMW) PostRender(ctx *Context, overlay *DrawList) {
	overlay.FillRect(math32.B2(0, 0, 10, 10), styles.Color{R: 1, A: 1}, 0)
}

func TestRenderOverlayCompositesLast(t *testing.T) {
	sc := newTestScene()
	sc.Middleware.Add(&overlayMW{MiddlewareBase{Nm: "overlay", Pri: 10}})
	f := NewFrame(sc.Root)
	f.Style(func(s *styles.Style) { s.Background = styles.Color{B: 1, A: 1} })
	settle(sc)

	dl := NewDrawList(math32.Box2{Max: sc.Size})
	sc.Render(&Context{}, dl)

	require.NotEmpty(t, dl.Cmds)
	last := dl.Cmds[len(dl.Cmds)-1]
	assert.Equal(t, CmdFillRect, last.Kind)
	assert.Equal(t, float32(1), last.Color.R, "overlay drawn after the UI")
	assert.False(t, sc.Counters.HasPaintDirty(), "paint flags cleared by render")

	// depth increases in paint order
	for i := 1; i < len(dl.Cmds); i++ {
		assert.Greater(t, dl.Cmds[i].Depth, dl.Cmds[i-1].Depth)
	}
}

func TestRenderSkipsUnlaidOutSubtrees(t *testing.T) {
	sc := newTestScene()
	f := NewFrame(sc.Root)
	f.Style(func(s *styles.Style) { s.Background = styles.Color{G: 1, A: 1} })
	settle(sc)

	// a widget added after layout has no rect yet and must be skipped
	late := NewFrame(f)
	late.Style(func(s *styles.Style) { s.Background = styles.Color{R: 1, A: 1} })
	assert.False(t, late.HasRect())

	dl := NewDrawList(math32.Box2{Max: sc.Size})
	sc.Render(&Context{}, dl)
	for _, c := range dl.Cmds {
		assert.NotEqual(t, float32(1), c.Color.R, "unlaid-out widget not painted")
	}
}

func TestUnresolvableConstraintFallsBackToZero(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer slog.SetDefault(prev)

	sc := newTestScene()
	f := NewFrame(sc.Root)
	f.Style(func(s *styles.Style) { s.Width = units.Lit(units.Auto()) })
	settle(sc)

	assert.Equal(t, float32(0), f.Rect.Size().X)
	assert.Contains(t, buf.String(), "unresolvable size constraint")

	// unset constraints are the common grow case and stay quiet
	buf.Reset()
	g := NewFrame(sc.Root)
	g.Style(func(s *styles.Style) { s.Grow = 1 })
	settle(sc)
	assert.NotContains(t, buf.String(), "unresolvable")
}
