// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image/color"

	"cogentcore.org/vrmview/base/ordmap"
)

// Scene is the overall scenegraph containing nodes as children.
// It holds the camera, the lights and the background color.
// It is not safe for concurrent use; owners serialize access.
type Scene struct {

	// Root is the top of the scene graph. Avatars and other content are
	// attached as its children.
	Root *Node

	// Background is the color the frame is cleared to.
	Background color.RGBA

	// Camera for viewing the scene
	Camera Camera

	// all lights used in the scene
	Lights ordmap.Map[string, Light]
}

// NewScene returns a new empty Scene with default camera and no lights.
func NewScene() *Scene {
	sc := &Scene{}
	sc.Defaults()
	return sc
}

// Defaults resets the root, background, camera and lights.
func (sc *Scene) Defaults() {
	sc.Root = NewNode("scene")
	sc.Background = color.RGBA{32, 32, 40, 255}
	sc.Camera.Defaults()
	sc.Lights.Reset()
	sc.Lights.Init()
}

// Add attaches the given node as a child of the scene root.
func (sc *Scene) Add(n *Node) {
	sc.Root.AddChild(n)
}

// Remove detaches the given node from the scene root,
// returning false if it was not attached there.
func (sc *Scene) Remove(n *Node) bool {
	return sc.Root.RemoveChild(n)
}

// Contains returns true if the given node is somewhere in the scene graph.
func (sc *Scene) Contains(n *Node) bool {
	return n != nil && n.IsDescendantOf(sc.Root)
}

// AddLight adds given light to lights, replacing any with the same name.
func (sc *Scene) AddLight(lt Light) {
	sc.Lights.Add(lt.AsLightBase().Name, lt)
}

// NumMeshes returns the number of unreleased meshes in the scene graph.
func (sc *Scene) NumMeshes() int {
	n := 0
	sc.Root.WalkDown(func(nd *Node) bool {
		if nd.Mesh != nil && !nd.Mesh.IsReleased() {
			n++
		}
		return Continue
	})
	return n
}

// Destroy releases all meshes in the scene graph, detaches all content
// from the root and removes all lights. The scene can be reused after
// calling Defaults.
func (sc *Scene) Destroy() {
	if sc.Root != nil {
		ReleaseMeshes(sc.Root)
		for sc.Root.NumChildren() > 0 {
			sc.Root.Children()[0].Detach()
		}
	}
	sc.Lights.Reset()
}

// ReleaseMeshes releases the meshes of the given node
// and all of its descendants.
func ReleaseMeshes(n *Node) {
	n.WalkDown(func(nd *Node) bool {
		if nd.Mesh != nil {
			nd.Mesh.Release()
		}
		return Continue
	})
}
