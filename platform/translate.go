// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/kilnworks/kiln/base/errors"
	"github.com/kilnworks/kiln/events"
	"github.com/kilnworks/kiln/math32"
)

// setCallbacks wires every glfw callback to a translated event on the
// window queue. Callbacks run on the main thread during Poll; the
// queue keeps arrival order.
func (w *Window) setCallbacks() {
	w.win.SetCloseCallback(func(*glfw.Window) {
		w.queue.Send(events.Event{Type: events.CloseRequest})
	})
	w.win.SetPosCallback(func(_ *glfw.Window, x, y int) {
		w.queue.Send(events.Event{
			Type: events.WindowMove,
			Pos:  math32.Vec2(float32(x), float32(y)),
		})
	})
	w.win.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		w.queue.Send(events.Event{
			Type: events.WindowResize,
			Size: math32.Vec2(float32(width), float32(height)),
		})
	})
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		errors.Log(w.configure(width, height))
	})
	w.win.SetContentScaleCallback(func(_ *glfw.Window, x, y float32) {
		w.queue.Send(events.Event{
			Type:        events.ScaleFactorChange,
			ScaleFactor: float64(x),
		})
	})
	w.win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		w.queue.Send(events.Event{
			Type:    events.Focus,
			Focused: focused,
		})
	})
	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.queue.Send(events.Event{
			Type: events.MouseMove,
			Pos:  math32.Vec2(float32(x), float32(y)),
		})
	})
	w.win.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		typ := events.MouseLeave
		if entered {
			typ = events.MouseEnter
		}
		w.queue.Send(events.Event{Type: typ})
	})
	w.win.SetMouseButtonCallback(func(win *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		typ := events.MouseButtonUp
		if action == glfw.Press {
			typ = events.MouseButtonDown
		}
		x, y := win.GetCursorPos()
		w.queue.Send(events.Event{
			Type:   typ,
			Pos:    math32.Vec2(float32(x), float32(y)),
			Button: translateButton(button),
		})
	})
	w.win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		w.queue.Send(events.Event{
			Type:   events.MouseScroll,
			Scroll: math32.Vec2(float32(xoff), float32(yoff)),
		})
	})
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		state := events.Released
		if action == glfw.Press || action == glfw.Repeat {
			state = events.Pressed
		}
		w.queue.Send(events.Event{
			Type: events.KeyInput,
			Key: events.Key{
				Physical: int32(scancode),
				Logical:  int32(key),
				Location: keyLocation(key),
				State:    state,
				Repeat:   action == glfw.Repeat,
			},
		})
	})
	w.win.SetCharCallback(func(_ *glfw.Window, r rune) {
		w.queue.Send(events.Event{
			Type: events.KeyInput,
			Key: events.Key{
				Text:  string(r),
				State: events.Pressed,
			},
		})
	})
}

func translateButton(b glfw.MouseButton) events.Button {
	switch b {
	case glfw.MouseButtonRight:
		return events.Right
	case glfw.MouseButtonMiddle:
		return events.Middle
	}
	return events.Left
}

func keyLocation(key glfw.Key) events.KeyLocation {
	switch key {
	case glfw.KeyLeftShift, glfw.KeyLeftControl, glfw.KeyLeftAlt, glfw.KeyLeftSuper:
		return events.LocationLeft
	case glfw.KeyRightShift, glfw.KeyRightControl, glfw.KeyRightAlt, glfw.KeyRightSuper:
		return events.LocationRight
	}
	if key >= glfw.KeyKP0 && key <= glfw.KeyKPEqual {
		return events.LocationNumpad
	}
	return events.LocationStandard
}
