// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"slices"

	"cogentcore.org/vrmview/math32"
)

// Return values for WalkDown functions.
const (
	// Continue descends into the children of the current node.
	Continue = true

	// Break skips the children of the current node.
	Break = false
)

// Node is an element of the 3D scene graph. Its Pose is relative to
// its parent, and it optionally carries a [Mesh] to render.
type Node struct {

	// Name is the name of the node, typically the glTF node name.
	Name string

	// Pose is the local transform relative to the parent.
	Pose Pose

	// Mesh is optional geometry rendered at this node's world transform.
	Mesh *Mesh

	parent   *Node
	children []*Node
}

// NewNode returns a new detached node with the given name and a default pose.
func NewNode(name string) *Node {
	n := &Node{Name: name}
	n.Pose.Defaults()
	return n
}

// Parent returns the parent of this node, or nil if it is a root or detached.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the children of this node. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// AddChild adds the given node as the last child of this one,
// first removing it from any existing parent.
func (n *Node) AddChild(kid *Node) {
	kid.Detach()
	kid.parent = n
	n.children = append(n.children, kid)
}

// RemoveChild removes the given child node, returning false if it is
// not a child of this node.
func (n *Node) RemoveChild(kid *Node) bool {
	idx := slices.Index(n.children, kid)
	if idx < 0 {
		return false
	}
	n.children = slices.Delete(n.children, idx, idx+1)
	kid.parent = nil
	return true
}

// Detach removes this node from its parent, returning false if it had none.
func (n *Node) Detach() bool {
	if n.parent == nil {
		return false
	}
	return n.parent.RemoveChild(n)
}

// ChildByName returns the first direct child with the given name, or nil.
func (n *Node) ChildByName(name string) *Node {
	for _, k := range n.children {
		if k.Name == name {
			return k
		}
	}
	return nil
}

// IsDescendantOf returns true if the given node is this node or
// one of its ancestors.
func (n *Node) IsDescendantOf(anc *Node) bool {
	for p := n; p != nil; p = p.parent {
		if p == anc {
			return true
		}
	}
	return false
}

// WalkDown calls the given function on this node and all of its
// descendants in depth-first order. Returning [Break] from the function
// skips the children of that node.
func (n *Node) WalkDown(fun func(n *Node) bool) {
	if !fun(n) {
		return
	}
	for _, k := range n.children {
		k.WalkDown(fun)
	}
}

// UpdateWorldMatrices updates the local and world matrices of this node
// and all of its descendants, given the world matrix of the parent
// (nil for a root).
func (n *Node) UpdateWorldMatrices(parWorld *math32.Matrix4) {
	n.Pose.UpdateMatrix()
	n.Pose.UpdateWorldMatrix(parWorld)
	for _, k := range n.children {
		k.UpdateWorldMatrices(&n.Pose.WorldMatrix)
	}
}

// WorldMatrix returns the world matrix of this node, freshly composed
// from the local transforms of all of its ancestors. It does not depend
// on any cached world matrix.
func (n *Node) WorldMatrix() math32.Matrix4 {
	n.Pose.UpdateMatrix()
	if n.parent == nil {
		return n.Pose.Matrix
	}
	pw := n.parent.WorldMatrix()
	return *pw.Mul(&n.Pose.Matrix)
}

// WorldPosition returns the world-space position of this node's origin,
// composed from all ancestor transforms.
func (n *Node) WorldPosition() math32.Vector3 {
	wm := n.WorldMatrix()
	return wm.Position()
}
