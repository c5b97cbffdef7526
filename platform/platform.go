// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package platform creates desktop windows with WebGPU surfaces and
// translates OS events into the engine event model. It is the only
// package that touches glfw; everything above it sees [events] values
// and the [engine.Window] interface.
package platform

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Init initializes the windowing system. Must be called on the main
// thread before creating any window.
func Init() error {
	return glfw.Init()
}

// Terminate shuts the windowing system down. Call last, on the main
// thread.
func Terminate() {
	glfw.Terminate()
}

// Config configures a new window.
type Config struct {
	// Title is the window title.
	Title string

	// Width and Height are the initial logical size in pixels.
	Width  int
	Height int

	// ClearColor is the premultiplied RGBA the color attachment is
	// cleared to each frame.
	ClearColor [4]float32
}
