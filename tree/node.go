// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tree provides the generic persistent tree substrate that the
// UI widget tree builds on: nodes with stable parent/child links,
// ordered children, cascading destruction, and non-recursive walking.
package tree

import "reflect"

// Node is the interface that all tree node types satisfy by embedding
// [NodeBase]. The This field gives base-type methods access to the
// node as its true underlying type.
type Node interface {
	// AsTree returns the [NodeBase] of this node.
	AsTree() *NodeBase

	// Init is called when the node is first attached to a tree.
	Init()

	// OnAdd is called when the node is added to a parent.
	OnAdd()

	// Destroy recursively destroys the node and all of its children.
	Destroy()
}

// New returns a new initialized node of the given type, applying any
// given init functions.
func New[T Node](init ...func(n T)) T {
	n := reflect.New(reflect.TypeFor[T]().Elem()).Interface().(T)
	InitNode(n)
	for _, f := range init {
		f(n)
	}
	return n
}

// InitNode initializes the node: sets its This pointer and calls Init.
// It is called implicitly by all the child-adding functions and [New];
// call it directly only for nodes constructed as literals.
func InitNode(n Node) {
	nb := n.AsTree()
	if nb.This != n {
		nb.This = n
		n.Init()
	}
}

// SetParent sets the parent of the given node and calls OnAdd.
// It does not add the node to the parent's children list; use
// [NodeBase.AddChild] for that.
func SetParent(kid Node, parent *NodeBase) {
	kid.AsTree().Parent = parent.This
	kid.OnAdd()
	if parent.OnChildAdded != nil {
		parent.OnChildAdded(kid)
	}
}

// MoveToParent removes the given node from its current parent (without
// destroying it) and adds it as a child of the given new parent.
func MoveToParent(kid Node, parent Node) {
	kb := kid.AsTree()
	if kb.Parent != nil {
		pb := kb.Parent.AsTree()
		idx := IndexOf(pb.Children, kid)
		if idx >= 0 {
			pb.Children = append(pb.Children[:idx], pb.Children[idx+1:]...)
		}
		kb.Parent = nil
	}
	parent.AsTree().AddChild(kid)
}

// IsRoot reports whether the given node has no parent.
func IsRoot(n Node) bool {
	return n.AsTree().Parent == nil
}

// Root returns the root of the tree containing the given node.
func Root(n Node) Node {
	nb := n.AsTree()
	for nb.Parent != nil {
		nb = nb.Parent.AsTree()
	}
	return nb.This
}

// IndexOf returns the index of the given child in the given slice,
// or -1 if not found. The optional startIndex gives a hint for an
// optimized bidirectional search.
func IndexOf(children []Node, child Node, startIndex ...int) int {
	if len(children) == 0 {
		return -1
	}
	start := len(children) / 2
	if len(startIndex) > 0 {
		start = startIndex[0]
	}
	start = min(max(start, 0), len(children)-1)
	up, down := start, start-1
	for up < len(children) || down >= 0 {
		if up < len(children) {
			if children[up] == child {
				return up
			}
			up++
		}
		if down >= 0 {
			if children[down] == child {
				return down
			}
			down--
		}
	}
	return -1
}
