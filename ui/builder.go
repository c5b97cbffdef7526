// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ui

import "github.com/kilnworks/kiln/tree"

// Builder builds and mutates the widget tree declaratively. Children
// are addressed by name under a cursor stack; a child that already
// exists with the same name and type is reused, so its stable id is
// preserved across builds and unchanged subtrees stay clean.
type Builder struct {
	sc    *Scene
	stack []Widget
}

// Build returns a builder with its cursor at the scene root.
func (sc *Scene) Build() *Builder {
	return &Builder{sc: sc, stack: []Widget{sc.Root}}
}

// Current returns the widget the cursor points at.
func (b *Builder) Current() Widget {
	return b.stack[len(b.stack)-1]
}

// Open moves the cursor into the given widget; subsequent children are
// added under it.
func (b *Builder) Open(w Widget) *Builder {
	b.stack = append(b.stack, w)
	return b
}

// Close moves the cursor back to the parent. Closing at the root is a
// no-op.
func (b *Builder) Close() *Builder {
	if len(b.stack) > 1 {
		b.stack = b.stack[:len(b.stack)-1]
	}
	return b
}

// Child returns the named child of the cursor widget, creating it if
// missing and rebuilding it if its type changed. Reuse preserves the
// child's stable id.
func Child[T Widget](b *Builder, name string) T {
	parent := b.Current()
	if existing := parent.AsTree().ChildByName(name); existing != nil {
		if t, ok := existing.(T); ok {
			return t
		}
		b.sc.Delete(existing.(Widget))
	}
	w := tree.New[T]()
	w.AsTree().SetName(name)
	attach(w, parent)
	return w
}

// Frame returns the named child frame, creating it if needed.
func (b *Builder) Frame(name string) *Frame {
	return Child[*Frame](b, name)
}

// OpenFrame returns the named child frame and moves the cursor into
// it.
func (b *Builder) OpenFrame(name string) *Frame {
	f := b.Frame(name)
	b.Open(f)
	return f
}

// Text returns the named child text widget with the given content.
func (b *Builder) Text(name, content string) *Text {
	t := Child[*Text](b, name)
	t.SetText(content)
	return t
}

// Prune deletes children of the cursor widget whose names are not in
// keep, for builds that shrink a container.
func (b *Builder) Prune(keep ...string) {
	parent := b.Current().AsWidget()
	kept := map[string]bool{}
	for _, k := range keep {
		kept[k] = true
	}
	var doomed []Widget
	parent.WidgetChildren(func(w Widget) bool {
		if !kept[w.AsTree().Name] {
			doomed = append(doomed, w)
		}
		return tree.Continue
	})
	for _, w := range doomed {
		b.sc.Delete(w)
	}
}
