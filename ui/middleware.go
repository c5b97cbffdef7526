// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ui

import (
	"slices"

	"github.com/kilnworks/kiln/events"
)

// Context carries the per-frame state handed to middleware hooks.
type Context struct {
	// Scene is the scene being updated.
	Scene *Scene

	// Events is this frame's event batch for the scene's window.
	Events *events.Batch

	// Delta is the frame delta time in seconds.
	Delta float32
}

// Middleware hooks into the UI pipeline around layout and rendering.
// Overlay drawing goes through the draw list handed to PostRender,
// composited after the main UI; middlewares never mutate the widget
// tree from their render hooks.
type Middleware interface {
	// Name identifies the middleware.
	Name() string

	// Priority orders the pipeline; higher priorities render later
	// (on top).
	Priority() int

	// Enabled reports whether the middleware participates this frame.
	Enabled() bool

	// PreLayout runs before layout; returning true pauses layout for
	// this frame, leaving the dirty counters untouched.
	PreLayout(ctx *Context) bool

	// PostLayout runs after a completed layout pass.
	PostLayout(ctx *Context)

	// PreRender runs before the main UI render.
	PreRender(ctx *Context)

	// PostRender runs after the main UI render; commands pushed to the
	// overlay draw list composite on top of the UI.
	PostRender(ctx *Context, overlay *DrawList)

	// KeyEvent observes key input; Consumed stops propagation to later
	// middleware and to the UI.
	KeyEvent(ctx *Context, e *events.Event) events.Status

	// Keybind handles a named key chord; returning true consumes it.
	Keybind(ctx *Context, chord string) bool
}

// MiddlewareBase is a no-op middleware for embedding; override the
// hooks you need.
type MiddlewareBase struct {
	// Nm is the middleware name.
	Nm string

	// Pri is the pipeline priority.
	Pri int

	// Off disables the middleware without removing it.
	Off bool
}

func (m *MiddlewareBase) Name() string                                  { return m.Nm }
func (m *MiddlewareBase) Priority() int                                 { return m.Pri }
func (m *MiddlewareBase) Enabled() bool                                 { return !m.Off }
func (m *MiddlewareBase) PreLayout(ctx *Context) bool                   { return false }
func (m *MiddlewareBase) PostLayout(ctx *Context)                       {}
func (m *MiddlewareBase) PreRender(ctx *Context)                        {}
func (m *MiddlewareBase) PostRender(ctx *Context, overlay *DrawList)    {}
func (m *MiddlewareBase) Keybind(ctx *Context, chord string) bool       { return false }
func (m *MiddlewareBase) KeyEvent(ctx *Context, e *events.Event) events.Status {
	return events.Ignored
}

// Pipeline is the ordered set of middleware, kept sorted by ascending
// priority so that higher priorities render later.
type Pipeline struct {
	list []Middleware
}

// Add inserts a middleware, preserving priority order. Insertion order
// breaks ties.
func (p *Pipeline) Add(m Middleware) {
	p.list = append(p.list, m)
	slices.SortStableFunc(p.list, func(a, b Middleware) int {
		return a.Priority() - b.Priority()
	})
}

// ByName returns the middleware with the given name, or nil.
func (p *Pipeline) ByName(name string) Middleware {
	for _, m := range p.list {
		if m.Name() == name {
			return m
		}
	}
	return nil
}

// PreLayout runs all enabled PreLayout hooks and reports whether any
// requested a layout pause. All hooks run even after one pauses.
func (p *Pipeline) PreLayout(ctx *Context) bool {
	pause := false
	for _, m := range p.list {
		if m.Enabled() && m.PreLayout(ctx) {
			pause = true
		}
	}
	return pause
}

// PostLayout runs all enabled PostLayout hooks in order.
func (p *Pipeline) PostLayout(ctx *Context) {
	for _, m := range p.list {
		if m.Enabled() {
			m.PostLayout(ctx)
		}
	}
}

// PreRender runs all enabled PreRender hooks in order.
func (p *Pipeline) PreRender(ctx *Context) {
	for _, m := range p.list {
		if m.Enabled() {
			m.PreRender(ctx)
		}
	}
}

// PostRender runs all enabled PostRender hooks in priority order, so
// higher-priority overlays draw on top.
func (p *Pipeline) PostRender(ctx *Context, overlay *DrawList) {
	for _, m := range p.list {
		if m.Enabled() {
			m.PostRender(ctx, overlay)
		}
	}
}

// KeyEvent offers a key event to the middleware in priority order,
// stopping at the first Consumed.
func (p *Pipeline) KeyEvent(ctx *Context, e *events.Event) events.Status {
	result := events.Ignored
	for _, m := range p.list {
		if !m.Enabled() {
			continue
		}
		switch m.KeyEvent(ctx, e) {
		case events.Consumed:
			return events.Consumed
		case events.Handled:
			result = events.Handled
		}
	}
	return result
}

// Keybind offers a named chord to the middleware in priority order,
// reporting whether any consumed it.
func (p *Pipeline) Keybind(ctx *Context, chord string) bool {
	for _, m := range p.list {
		if m.Enabled() && m.Keybind(ctx, chord) {
			return true
		}
	}
	return false
}
