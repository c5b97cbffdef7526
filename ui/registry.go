// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ui

import (
	"fmt"
	"reflect"

	"github.com/kilnworks/kiln/math32"
	"github.com/kilnworks/kiln/styles"
)

// Kind is a registered widget-kind token. Render-time dispatch goes
// through the kind's [Descriptor], never through name strings. The
// zero Kind is the base widget.
type Kind int32

// Descriptor is the function table for a registered widget kind.
// Nil entries fall back to the base widget behavior: paint background
// and border from the style, and take overflow, scroll offset, and
// child clipping from the style.
type Descriptor struct {
	// Name is the stable registration name, unique per registry.
	Name string

	// Render emits the widget's draw commands.
	Render func(w Widget, dl *DrawList)

	// Overflow returns the per-axis overflow policy.
	Overflow func(w Widget) (x, y styles.Overflow)

	// ScrollOffset returns the widget's scroll offset applied to its
	// children.
	ScrollOffset func(w Widget) math32.Vector2

	// ClipsChildren reports whether the widget clips its subtree to
	// its own rectangle.
	ClipsChildren func(w Widget) bool
}

// Registry maps widget Go types to kind tokens and their descriptors.
// Built-in kinds are registered by [NewRegistry]; user plugins add
// theirs at engine build time.
type Registry struct {
	kinds  []Descriptor
	byName map[string]Kind
	byType map[reflect.Type]Kind
}

// NewRegistry returns a registry with the base widget and the built-in
// widget kinds registered.
func NewRegistry() *Registry {
	r := &Registry{byName: map[string]Kind{}, byType: map[reflect.Type]Kind{}}
	r.kinds = append(r.kinds, Descriptor{Name: "widget", Render: renderBase})
	r.byName["widget"] = 0
	registerBuiltins(r)
	return r
}

// Register adds a descriptor for the given widget type and returns its
// kind token. Registering a duplicate name or type is an error.
func Register[T Widget](r *Registry, d Descriptor) (Kind, error) {
	typ := reflect.TypeFor[T]()
	if _, ok := r.byName[d.Name]; ok {
		return 0, fmt.Errorf("ui.Register: kind name %q already registered", d.Name)
	}
	if _, ok := r.byType[typ]; ok {
		return 0, fmt.Errorf("ui.Register: widget type %v already registered", typ)
	}
	k := Kind(len(r.kinds))
	r.kinds = append(r.kinds, d)
	r.byName[d.Name] = k
	r.byType[typ] = k
	return k, nil
}

// Describe returns the descriptor for the given kind token.
func (r *Registry) Describe(k Kind) *Descriptor {
	if k < 0 || int(k) >= len(r.kinds) {
		return &r.kinds[0]
	}
	return &r.kinds[k]
}

// KindByName returns the kind token registered under the given name.
func (r *Registry) KindByName(name string) (Kind, bool) {
	k, ok := r.byName[name]
	return k, ok
}

// kindOf returns the kind for the widget's concrete type, or the base
// kind for unregistered types.
func (r *Registry) kindOf(w Widget) Kind {
	if k, ok := r.byType[reflect.TypeOf(w)]; ok {
		return k
	}
	return 0
}

// Dispatch helpers resolving nil descriptor entries to style-derived
// defaults.

func (sc *Scene) renderWidget(w Widget, dl *DrawList) {
	d := sc.Registry.Describe(w.AsWidget().Kind)
	if d.Render != nil {
		d.Render(w, dl)
		return
	}
	renderBase(w, dl)
}

func (sc *Scene) overflowOf(w Widget) (x, y styles.Overflow) {
	d := sc.Registry.Describe(w.AsWidget().Kind)
	if d.Overflow != nil {
		return d.Overflow(w)
	}
	st := &w.AsWidget().Styles
	return st.OverflowX, st.OverflowY
}

func (sc *Scene) scrollOf(w Widget) math32.Vector2 {
	d := sc.Registry.Describe(w.AsWidget().Kind)
	if d.ScrollOffset != nil {
		return d.ScrollOffset(w)
	}
	return w.AsWidget().Scroll
}

func (sc *Scene) clipsChildren(w Widget) bool {
	d := sc.Registry.Describe(w.AsWidget().Kind)
	if d.ClipsChildren != nil {
		return d.ClipsChildren(w)
	}
	return w.AsWidget().Styles.ClipsChildren()
}

// renderBase paints the widget's background fill and border from its
// style.
func renderBase(w Widget, dl *DrawList) {
	wb := w.AsWidget()
	st := &wb.Styles
	radius := wb.radiusDots
	if st.Background.A > 0 {
		dl.FillRect(wb.Rect, st.Background.Scaled(st.Opacity), radius)
	}
	if bw := wb.borderDots.Top; bw > 0 && st.BorderColor.A > 0 {
		dl.StrokeRect(wb.Rect, st.BorderColor.Scaled(st.Opacity), bw, radius)
	}
}
