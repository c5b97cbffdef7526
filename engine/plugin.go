// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import "fmt"

// Plugin is a unit of engine composition. Build runs once at engine
// construction, after every plugin it depends on has built.
type Plugin interface {
	// Name uniquely identifies the plugin; registering two plugins
	// with the same name is an error.
	Name() string

	// Dependencies lists the names of plugins that must build first.
	Dependencies() []string

	// Build wires the plugin into the engine: registering resources,
	// widgets, middleware, and background work.
	Build(e *Engine) error
}

// CleanupPlugin is implemented by plugins that need teardown.
// Cleanups run in reverse build order at shutdown.
type CleanupPlugin interface {
	Plugin
	Cleanup(e *Engine)
}

// sortPlugins topologically sorts plugins by their declared
// dependencies. Among plugins whose dependencies are equally
// satisfied, registration order is preserved, so the result is
// deterministic. A dependency cycle or a dependency on an
// unregistered name is an error.
func sortPlugins(plugins []Plugin) ([]Plugin, error) {
	byName := make(map[string]Plugin, len(plugins))
	for _, p := range plugins {
		if _, ok := byName[p.Name()]; ok {
			return nil, fmt.Errorf("engine: duplicate plugin %q", p.Name())
		}
		byName[p.Name()] = p
	}
	for _, p := range plugins {
		for _, dep := range p.Dependencies() {
			if _, ok := byName[dep]; !ok {
				return nil, fmt.Errorf("engine: plugin %q depends on unregistered plugin %q", p.Name(), dep)
			}
		}
	}

	sorted := make([]Plugin, 0, len(plugins))
	placed := make(map[string]bool, len(plugins))
	remaining := append([]Plugin{}, plugins...)
	for len(remaining) > 0 {
		progress := false
		rest := remaining[:0]
		for _, p := range remaining {
			ready := true
			for _, dep := range p.Dependencies() {
				if !placed[dep] {
					ready = false
					break
				}
			}
			if ready {
				sorted = append(sorted, p)
				placed[p.Name()] = true
				progress = true
			} else {
				rest = append(rest, p)
			}
		}
		if !progress {
			return nil, fmt.Errorf("engine: plugin dependency cycle involving %q", rest[0].Name())
		}
		remaining = rest
	}
	return sorted, nil
}
