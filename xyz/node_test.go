// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"testing"

	"cogentcore.org/vrmview/math32"
	"github.com/stretchr/testify/assert"
)

func tolAssertVector(t *testing.T, expect, got math32.Vector3) {
	t.Helper()
	assert.True(t, expect.IsEqualTol(got, 1e-5), "expected %v, got %v", expect, got)
}

func TestNodeTree(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	b := NewNode("b")
	root.AddChild(a)
	a.AddChild(b)

	assert.Equal(t, root, a.Parent())
	assert.Equal(t, a, b.Parent())
	assert.True(t, b.IsDescendantOf(root))
	assert.Equal(t, a, root.ChildByName("a"))
	assert.Nil(t, root.ChildByName("b"))

	// reparenting detaches from the old parent
	root.AddChild(b)
	assert.Equal(t, 0, a.NumChildren())
	assert.Equal(t, 2, root.NumChildren())
	assert.Equal(t, root, b.Parent())

	assert.True(t, b.Detach())
	assert.False(t, b.Detach())
	assert.False(t, root.RemoveChild(b))
	assert.Nil(t, b.Parent())
	assert.False(t, b.IsDescendantOf(root))
}

func TestWalkDown(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")
	root.AddChild(a)
	a.AddChild(b)
	root.AddChild(c)

	var names []string
	root.WalkDown(func(n *Node) bool {
		names = append(names, n.Name)
		return Continue
	})
	assert.Equal(t, []string{"root", "a", "b", "c"}, names)

	names = nil
	root.WalkDown(func(n *Node) bool {
		names = append(names, n.Name)
		if n == a {
			return Break
		}
		return Continue
	})
	assert.Equal(t, []string{"root", "a", "c"}, names)
}

func TestWorldPosition(t *testing.T) {
	root := NewNode("root")
	hips := NewNode("hips")
	head := NewNode("head")
	root.AddChild(hips)
	hips.AddChild(head)

	hips.Pose.Pos.Set(0, 0.5, 0)
	head.Pose.Pos.Set(0, 0.5, 0)
	tolAssertVector(t, math32.Vec3(0, 1, 0), head.WorldPosition())

	// moving an ancestor moves the descendant, without any cached update
	root.Pose.Pos.Set(1, 0, 0)
	tolAssertVector(t, math32.Vec3(1, 1, 0), head.WorldPosition())

	// rotating the root 180 degrees about Y mirrors X and Z offsets
	root.Pose.Pos = math32.Vector3Zero
	head.Pose.Pos.Set(0, 0.5, 0.2)
	root.Pose.SetAxisRotation(0, 1, 0, 180)
	tolAssertVector(t, math32.Vec3(0, 1, -0.2), head.WorldPosition())

	root.UpdateWorldMatrices(nil)
	tolAssertVector(t, head.WorldPosition(), head.Pose.WorldPos())
}

func TestPoseMatrix(t *testing.T) {
	var ps Pose
	ps.Defaults()
	ps.Pos.Set(1, 2, 3)
	ps.SetAxisRotation(0, 0, 1, 90)
	ps.UpdateMatrix()

	var other Pose
	other.SetMatrix(&ps.Matrix)
	tolAssertVector(t, ps.Pos, other.Pos)
	tolAssertVector(t, math32.Vector3Scalar(1), other.Scale)
	tolAssertVector(t, math32.Vector3Y, math32.Vector3X.MulQuat(other.Quat))

	other.MoveOnAxis(1, 0, 0, 2)
	tolAssertVector(t, math32.Vec3(1, 4, 3), other.Pos)
}
