// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/kilnworks/kiln/tree"
)

type testNode struct {
	NodeBase
	Value int
}

func newTree(t *testing.T) (root, a, b, c *testNode) {
	root = New[*testNode]()
	root.SetName("root")
	a = &testNode{Value: 1}
	a.SetName("a")
	root.AddChild(a)
	b = &testNode{Value: 2}
	b.SetName("b")
	root.AddChild(b)
	c = &testNode{Value: 3}
	c.SetName("c")
	b.AddChild(c)
	return
}

func TestAddChild(t *testing.T) {
	root, a, _, c := newTree(t)
	assert.Equal(t, 2, root.NumChildren())
	assert.Equal(t, root.This, a.Parent)
	assert.Equal(t, "/root/a", a.Path())
	assert.Equal(t, "/root/b/c", c.Path())
}

func TestChildByNameAndPath(t *testing.T) {
	root, _, b, c := newTree(t)
	assert.Equal(t, b.This, root.ChildByName("b"))
	assert.Nil(t, root.ChildByName("missing"))
	assert.Equal(t, c.This, root.FindPath("b/c"))
	assert.Nil(t, root.FindPath("b/x"))
}

func TestInsertMoveChild(t *testing.T) {
	root, a, b, _ := newTree(t)
	d := &testNode{Value: 4}
	d.SetName("d")
	root.InsertChild(d, 0)
	assert.Equal(t, d.This, root.Child(0))
	assert.Equal(t, a.This, root.Child(1))

	require.True(t, root.MoveChild(0, 2))
	assert.Equal(t, a.This, root.Child(0))
	assert.Equal(t, b.This, root.Child(1))
	assert.Equal(t, d.This, root.Child(2))
	assert.False(t, root.MoveChild(0, 9))
}

func TestDeleteCascades(t *testing.T) {
	root, _, b, c := newTree(t)
	require.True(t, root.DeleteChild(b))
	assert.Equal(t, 1, root.NumChildren())
	assert.True(t, b.IsDestroyed())
	assert.True(t, c.IsDestroyed())
	// deleting again is a no-op
	assert.False(t, root.DeleteChild(b))
}

func TestWalkDownOrder(t *testing.T) {
	root, _, _, _ := newTree(t)
	var names []string
	root.WalkDown(func(n Node) bool {
		names = append(names, n.AsTree().Name)
		return Continue
	})
	assert.Equal(t, []string{"root", "a", "b", "c"}, names)
}

func TestWalkDownBreak(t *testing.T) {
	root, _, b, _ := newTree(t)
	var names []string
	root.WalkDown(func(n Node) bool {
		names = append(names, n.AsTree().Name)
		return n.AsTree().This != b.This // don't descend into b
	})
	assert.Equal(t, []string{"root", "a", "b"}, names)
}

func TestWalkDownPost(t *testing.T) {
	root, _, _, _ := newTree(t)
	var names []string
	root.WalkDownPost(
		func(n Node) bool { return Continue },
		func(n Node) bool {
			names = append(names, n.AsTree().Name)
			return Continue
		})
	assert.Equal(t, []string{"a", "c", "b", "root"}, names)
}

func TestWalkDownBreadth(t *testing.T) {
	root, _, _, _ := newTree(t)
	var names []string
	root.WalkDownBreadth(func(n Node) bool {
		names = append(names, n.AsTree().Name)
		return Continue
	})
	assert.Equal(t, []string{"root", "a", "b", "c"}, names)
}

func TestWalkUp(t *testing.T) {
	_, _, _, c := newTree(t)
	var names []string
	c.WalkUp(func(n Node) bool {
		names = append(names, n.AsTree().Name)
		return Continue
	})
	assert.Equal(t, []string{"c", "b", "root"}, names)
}

func TestRootAndIndex(t *testing.T) {
	root, a, b, c := newTree(t)
	assert.Equal(t, root.This, Root(c))
	assert.True(t, IsRoot(root))
	assert.False(t, IsRoot(a))
	assert.Equal(t, 1, b.IndexInParent())
	assert.Equal(t, 0, a.IndexInParent())
}

func TestMoveToParent(t *testing.T) {
	root, a, b, c := newTree(t)
	MoveToParent(c, a)
	assert.Equal(t, 0, b.NumChildren())
	assert.Equal(t, 1, a.NumChildren())
	assert.Equal(t, "/root/a/c", c.Path())
	assert.False(t, c.IsDestroyed())
	_ = root
}

func TestCopyFieldsFrom(t *testing.T) {
	src := New[*testNode]()
	src.Value = 42
	dst := New[*testNode]()
	dst.CopyFieldsFrom(src)
	assert.Equal(t, 42, dst.Value)
}
