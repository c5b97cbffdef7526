// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

const (
	// Continue can be returned from tree walking functions to continue
	// processing down the tree.
	Continue = true

	// Break can be returned from tree walking functions to stop
	// processing this branch of the tree.
	Break = false
)

// WalkUp calls the given function on this node and all of its parents,
// stopping if the function returns [Break]. It returns whether walking
// finished without a Break.
func (n *NodeBase) WalkUp(fun func(n Node) bool) bool {
	cur := n.This
	for {
		if !fun(cur) {
			return false
		}
		parent := cur.AsTree().Parent
		if parent == nil || parent == cur {
			return true
		}
		cur = parent
	}
}

// WalkUpParent calls the given function on all of this node's parents,
// but not the node itself, stopping on [Break]. It returns whether
// walking finished without a Break.
func (n *NodeBase) WalkUpParent(fun func(n Node) bool) bool {
	if n.Parent == nil {
		return true
	}
	return n.Parent.AsTree().WalkUp(fun)
}

// WalkDown calls the given function on this node and all of its
// children in depth-first pre-order, using an explicit stack. It does
// not descend into the children of a node for which the function
// returns [Break]. The function may destroy nodes it visits; destroyed
// subtrees are skipped.
func (n *NodeBase) WalkDown(fun func(n Node) bool) {
	if n.This == nil {
		return
	}
	stack := []Node{n.This}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cb := cur.AsTree()
		if cb.This == nil {
			continue
		}
		if !fun(cur) || cb.This == nil {
			continue
		}
		// push children in reverse so the first child is visited first
		for i := cb.NumChildren() - 1; i >= 0; i-- {
			if kid := cb.Child(i); kid != nil && kid.AsTree().This != nil {
				stack = append(stack, kid)
			}
		}
	}
}

// WalkDownPost calls the given function on this node and all of its
// children in depth-first post-order: children before parents.
// shouldContinue is tested in pre-order to prune branches.
func (n *NodeBase) WalkDownPost(shouldContinue func(n Node) bool, fun func(n Node) bool) {
	if n.This == nil || !shouldContinue(n.This) {
		return
	}
	for _, kid := range n.Children {
		if kid != nil && kid.AsTree().This != nil {
			kid.AsTree().WalkDownPost(shouldContinue, fun)
		}
	}
	fun(n.This)
}

// WalkDownBreadth calls the given function on this node and all of its
// children in breadth-first order, not descending into the children of
// a node for which the function returns [Break].
func (n *NodeBase) WalkDownBreadth(fun func(n Node) bool) {
	queue := []Node{n.This}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.AsTree().This == nil || !fun(cur) {
			continue
		}
		for _, kid := range cur.AsTree().Children {
			if kid != nil && kid.AsTree().This != nil {
				queue = append(queue, kid)
			}
		}
	}
}
