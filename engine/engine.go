// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine ties the framework together: a typed resource
// container, a dependency-sorted plugin graph, and the single-threaded
// frame loop driving update and per-window render.
package engine

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/kilnworks/kiln/base/tasks"
	"github.com/kilnworks/kiln/events"
)

// FrameTime is the timing resource, updated before each frame's
// update.
type FrameTime struct {
	// Delta is the seconds elapsed since the previous frame.
	Delta float32

	// Elapsed is the seconds elapsed since the loop started.
	Elapsed float64

	// Frame counts frames, starting at 1 on the first update.
	Frame uint64
}

// Window is what the frame loop needs from a platform window. The
// platform package provides the GLFW implementation; tests use
// stubs.
type Window interface {
	// Poll pumps OS events into the window's queue.
	Poll()

	// Queue is the window's event queue, drained once per frame.
	Queue() *events.Queue

	// Render draws one frame given the frame's event batch.
	Render(e *Engine, b *events.Batch) error

	// Closed reports whether the window has been destroyed.
	Closed() bool
}

// App receives the per-frame callbacks.
type App interface {
	// Update runs once per frame before any window renders.
	Update(e *Engine, ft FrameTime)
}

// Engine owns the resources, plugins, task pool, and windows.
// Construct with [NewBuilder]; all methods are main-thread only
// except the task pool itself.
type Engine struct {
	// Resources is the typed resource container shared by plugins
	// and the app.
	Resources *Resources

	// Pool runs loaders, file watching, and background work.
	Pool *tasks.Pool

	plugins []Plugin
	windows []Window
	batches []*events.Batch

	start   time.Time
	last    time.Time
	frame   uint64
	running bool
}

// Builder collects plugins and constructs the engine.
type Builder struct {
	plugins  []Plugin
	poolSize int
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddPlugin registers a plugin. Duplicate names surface as an error
// at [Builder.Build].
func (b *Builder) AddPlugin(p Plugin) *Builder {
	b.plugins = append(b.plugins, p)
	return b
}

// PoolSize overrides the task pool size; zero or negative means the
// default of max(1, NumCPU-1).
func (b *Builder) PoolSize(n int) *Builder {
	b.poolSize = n
	return b
}

// Build sorts the plugin graph and runs each plugin's Build in
// dependency order. Duplicate names, unknown dependencies, and
// cycles fail here, before any Build callback runs.
func (b *Builder) Build() (*Engine, error) {
	sorted, err := sortPlugins(b.plugins)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		Resources: NewResources(),
		Pool:      tasks.NewPool(b.poolSize),
		plugins:   sorted,
	}
	for _, p := range sorted {
		if err := p.Build(e); err != nil {
			e.Pool.Release()
			return nil, err
		}
	}
	return e, nil
}

// AddWindow registers a window with the frame loop.
func (e *Engine) AddWindow(w Window) {
	e.windows = append(e.windows, w)
	e.batches = append(e.batches, &events.Batch{})
}

// Stop makes the frame loop exit after the current frame.
func (e *Engine) Stop() {
	e.running = false
}

// Run drives the frame loop until [Engine.Stop], an unconsumed close
// request, or the last window closing. Must be called on the main
// thread; GPU submission and UI mutation happen here.
func (e *Engine) Run(app App) error {
	runtime.LockOSThread()
	e.start = time.Now()
	e.last = e.start
	e.running = true
	for e.running {
		now := time.Now()
		e.frame++
		ft := FrameTime{
			Delta:   float32(now.Sub(e.last).Seconds()),
			Elapsed: now.Sub(e.start).Seconds(),
			Frame:   e.frame,
		}
		e.last = now
		Set(e.Resources, ft)

		app.Update(e, ft)

		open := 0
		for i, w := range e.windows {
			if w.Closed() {
				continue
			}
			open++
			w.Poll()
			b := e.batches[i]
			b.Reset()
			w.Queue().Drain(b)
			if err := w.Render(e, b); err != nil {
				return err
			}
			if b.HasCloseRequest() {
				e.running = false
			}
		}
		if open == 0 {
			e.running = false
		}
	}
	return nil
}

// Shutdown runs plugin cleanups in reverse build order and releases
// the task pool.
func (e *Engine) Shutdown() {
	for i := len(e.plugins) - 1; i >= 0; i-- {
		if cp, ok := e.plugins[i].(CleanupPlugin); ok {
			cp.Cleanup(e)
		}
	}
	e.Pool.Release()
	slog.Debug("engine shutdown", "frames", e.frame)
}
