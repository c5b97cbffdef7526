// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"log/slog"
	"reflect"
	"slices"
	"strings"

	"github.com/jinzhu/copier"
)

// NodeBase implements the [Node] interface and provides the core tree
// functionality. It must be used as an embedded struct in all
// higher-level tree types. All nodes must be initialized through
// [New], [NodeBase.AddChild], [NodeBase.InsertChild], or [InitNode],
// which set the [NodeBase.This] field correctly.
type NodeBase struct {

	// Name is the name of this node, typically unique relative to
	// other children of the same parent. It is used for path lookup.
	Name string `copier:"-"`

	// This is the value of this node as its true underlying type,
	// which allows methods defined on base types to call methods
	// defined on higher-level types. It is nil after the node is
	// destroyed.
	This Node `copier:"-"`

	// Parent is the parent of this node, set automatically when the
	// node is added as a child. Nodes have at most one parent.
	Parent Node `copier:"-"`

	// Children is the ordered list of children of this node.
	Children []Node `copier:"-"`

	// OnChildAdded is called on this node when a node is added as a
	// direct child.
	OnChildAdded func(n Node) `copier:"-"`

	// index is the last known index in the parent's children list,
	// used as a search hint. Not guaranteed accurate.
	index int
}

// AsTree returns the [NodeBase] for this node.
func (n *NodeBase) AsTree() *NodeBase {
	return n
}

// Init is a placeholder implementation of [Node.Init].
func (n *NodeBase) Init() {}

// OnAdd is a placeholder implementation of [Node.OnAdd].
func (n *NodeBase) OnAdd() {}

// SetName sets the name of this node.
func (n *NodeBase) SetName(name string) {
	n.Name = name
}

// String implements [fmt.Stringer] by returning the node's path.
func (n *NodeBase) String() string {
	if n == nil || n.This == nil {
		return "nil"
	}
	return n.Path()
}

// Path returns the path to this node from the tree root, using names
// separated by / delimiters.
func (n *NodeBase) Path() string {
	if n.Parent != nil {
		return n.Parent.AsTree().Path() + "/" + n.Name
	}
	return "/" + n.Name
}

// IndexInParent returns our index within our parent node, caching the
// last value for an optimized search. Returns -1 if there is no parent.
func (n *NodeBase) IndexInParent() int {
	if n.Parent == nil {
		return -1
	}
	idx := IndexOf(n.Parent.AsTree().Children, n.This, n.index)
	n.index = idx
	return idx
}

// Children:

// HasChildren reports whether this node has any children.
func (n *NodeBase) HasChildren() bool {
	return len(n.Children) > 0
}

// NumChildren returns the number of children this node has.
func (n *NodeBase) NumChildren() int {
	return len(n.Children)
}

// Child returns the child at the given index, or nil if the index is
// out of range.
func (n *NodeBase) Child(i int) Node {
	if i >= len(n.Children) || i < 0 {
		return nil
	}
	return n.Children[i]
}

// ChildByName returns the first child with the given name, or nil.
func (n *NodeBase) ChildByName(name string) Node {
	for _, k := range n.Children {
		if k.AsTree().Name == name {
			return k
		}
	}
	return nil
}

// FindPath returns the node at the given / separated path of names
// below this node, or nil if not found.
func (n *NodeBase) FindPath(path string) Node {
	cur := n.This
	for _, pe := range strings.Split(path, "/") {
		if pe == "" {
			continue
		}
		next := cur.AsTree().ChildByName(pe)
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// AddChild adds the given child at the end of the children list.
// The child is assumed to not be on another tree (see [MoveToParent]).
func (n *NodeBase) AddChild(kid Node) {
	InitNode(kid)
	n.Children = append(n.Children, kid)
	SetParent(kid, n)
}

// InsertChild adds the given child at the given position in the
// children list.
func (n *NodeBase) InsertChild(kid Node, index int) {
	InitNode(kid)
	n.Children = slices.Insert(n.Children, index, kid)
	SetParent(kid, n)
}

// DeleteChildAt deletes the child at the given index, destroying it.
// It returns false if there is no child at the given index.
func (n *NodeBase) DeleteChildAt(index int) bool {
	child := n.Child(index)
	if child == nil {
		return false
	}
	n.Children = slices.Delete(n.Children, index, index+1)
	child.Destroy()
	return true
}

// DeleteChild deletes the given child node, returning false if it can
// not find it.
func (n *NodeBase) DeleteChild(child Node) bool {
	if child == nil {
		return false
	}
	idx := IndexOf(n.Children, child)
	if idx < 0 {
		return false
	}
	return n.DeleteChildAt(idx)
}

// DeleteChildren deletes all children nodes.
func (n *NodeBase) DeleteChildren() {
	kids := n.Children
	n.Children = n.Children[:0] // preserves capacity
	for _, kid := range kids {
		if kid == nil {
			continue
		}
		kid.Destroy()
	}
}

// MoveChild moves the child at the given index to the given target
// index, shifting the children in between. It returns false for
// out-of-range indexes.
func (n *NodeBase) MoveChild(from, to int) bool {
	if from == to {
		return from >= 0 && from < len(n.Children)
	}
	if from < 0 || from >= len(n.Children) || to < 0 || to >= len(n.Children) {
		return false
	}
	kid := n.Children[from]
	n.Children = slices.Delete(n.Children, from, from+1)
	n.Children = slices.Insert(n.Children, to, kid)
	return true
}

// Delete deletes this node from its parent's children list and then
// destroys it.
func (n *NodeBase) Delete() {
	if n.Parent == nil {
		n.This.Destroy()
	} else {
		n.Parent.AsTree().DeleteChild(n.This)
	}
}

// Destroy recursively destroys the node and all of its children.
func (n *NodeBase) Destroy() {
	if n.This == nil { // already destroyed
		return
	}
	n.DeleteChildren()
	n.This = nil
}

// IsDestroyed reports whether the node has been destroyed.
func (n *NodeBase) IsDestroyed() bool {
	return n.This == nil
}

// Deep copy:

// CopyFieldsFrom copies the fields of this node from the given node,
// doing a deep copy of all fields that do not have a `copier:"-"`
// struct tag. Node types with fields needing special copying logic
// should override this, call the base version first, and then handle
// the specific fields.
func (n *NodeBase) CopyFieldsFrom(from Node) {
	err := copier.CopyWithOption(n.This, from.AsTree().This,
		copier.Option{CaseSensitive: true, DeepCopy: true})
	if err != nil {
		slog.Error("tree.NodeBase.CopyFieldsFrom", "err", err)
	}
}

// NewInstance returns a new uninitialized instance of this node's type.
func (n *NodeBase) NewInstance() Node {
	return reflect.New(reflect.TypeOf(n.This).Elem()).Interface().(Node)
}
