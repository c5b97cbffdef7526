// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ui

import "github.com/kilnworks/kiln/base/errors"

// Frame is the basic container widget: it has no content of its own
// and lays out its children by its flexbox style.
type Frame struct {
	WidgetBase
}

// NewFrame returns a new frame added to the given parent.
func NewFrame(parent Widget) *Frame {
	return NewWidget[*Frame](parent)
}

// registerBuiltins registers the widget kinds the core ships with.
// Registration of fresh names into a fresh registry cannot collide.
func registerBuiltins(r *Registry) {
	errors.Log1(Register[*Frame](r, Descriptor{Name: "frame"}))
	errors.Log1(Register[*Text](r, Descriptor{Name: "text", Render: renderText}))
}
