// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events defines the normalized window event model: OS-level
// events translated into engine values, accumulated on per-window
// queues, and drained into batches once per frame for dispatch.
package events

import "github.com/kilnworks/kiln/math32"

// Type identifies the kind of an [Event].
type Type int32

const (
	// WindowMove is a window position change.
	WindowMove Type = iota

	// WindowResize is a window logical-size change.
	WindowResize

	// ScaleFactorChange is a display scale factor change.
	ScaleFactorChange

	// Focus is a window focus gain or loss.
	Focus

	// CloseRequest is a request to close the window. If no handler
	// consumes it, the event loop exits.
	CloseRequest

	// MouseButtonDown is a mouse button press.
	MouseButtonDown

	// MouseButtonUp is a mouse button release.
	MouseButtonUp

	// MouseMove is a mouse position change in logical coordinates.
	MouseMove

	// MouseScroll is a mouse wheel or trackpad scroll.
	MouseScroll

	// MouseEnter is the cursor entering the window.
	MouseEnter

	// MouseLeave is the cursor leaving the window.
	MouseLeave

	// KeyInput is a keyboard key press or release.
	KeyInput
)

// Button is a mouse button.
type Button int32

const (
	Left Button = iota
	Right
	Middle
)

// KeyState is the state of a key in a [KeyInput] event.
type KeyState int32

const (
	Pressed KeyState = iota
	Released
)

// KeyLocation distinguishes duplicated keys (left/right shift, numpad).
type KeyLocation int32

const (
	LocationStandard KeyLocation = iota
	LocationLeft
	LocationRight
	LocationNumpad
)

// Key holds the keyboard details of a [KeyInput] event.
type Key struct {
	// Physical is the layout-independent scancode-level key.
	Physical int32

	// Logical is the layout-mapped key.
	Logical int32

	// Text is the text produced by the key, if any.
	Text string

	// Location distinguishes duplicated keys.
	Location KeyLocation

	// State is pressed or released.
	State KeyState

	// Repeat reports a held-key auto repeat.
	Repeat bool

	// Synthetic reports an event generated by the system rather than
	// the user (e.g. focus-change key releases).
	Synthetic bool
}

// Event is a single normalized window event. The zero Event is a
// WindowMove with no data; producers always set Type.
type Event struct {
	// Type is the event kind, determining which fields are meaningful.
	Type Type

	// Pos is the logical position for window-move, mouse-move, and
	// mouse-button events.
	Pos math32.Vector2

	// Size is the logical size for resize events.
	Size math32.Vector2

	// Scroll is the scroll delta for scroll events.
	Scroll math32.Vector2

	// ScaleFactor is the new scale for scale-factor events.
	ScaleFactor float64

	// Focused is the focus state for focus events.
	Focused bool

	// Button is the mouse button for button events.
	Button Button

	// Key holds keyboard details for key events.
	Key Key
}

// Status is a handler's disposition of an event.
type Status int32

const (
	// Ignored means the handler did not act on the event.
	Ignored Status = iota

	// Handled means the handler acted but propagation continues.
	Handled

	// Consumed means the handler acted and propagation stops.
	Consumed
)
