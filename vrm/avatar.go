// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrm

import (
	"github.com/Masterminds/semver/v3"

	"cogentcore.org/vrmview/xyz"
)

// Meta describes where an avatar came from and how it was normalized.
type Meta struct {

	// Extension is the glTF extension the rig was read from.
	Extension string

	// SpecVersion is the VRM specification version of the asset.
	SpecVersion *semver.Version

	// LegacyForward is set for VRM 0.x avatars, which face -Z and were
	// rotated 180 degrees about +Y to face +Z like VRM 1.0 ones.
	LegacyForward bool

	// Title is the avatar title from the asset metadata.
	Title string

	// Authors are the avatar authors from the asset metadata.
	Authors []string
}

// Avatar is a fully decoded, normalized avatar ready to be attached to a scene.
type Avatar struct {

	// Name is the display name of the asset it was loaded from.
	Name string

	// Root is the top of the avatar scene graph.
	Root *xyz.Node

	// Humanoid is the skeletal rig.
	Humanoid *Humanoid

	// Meta is the normalization metadata.
	Meta Meta

	released bool
}

// Release frees the mesh buffers and rig data. It does not detach the
// root from any scene. It is safe to call more than once.
func (av *Avatar) Release() {
	if av == nil || av.released {
		return
	}
	av.released = true
	if av.Root != nil {
		xyz.ReleaseMeshes(av.Root)
	}
	av.Humanoid.Release()
}

// Released returns true if Release has been called.
func (av *Avatar) Released() bool {
	return av.released
}

// NumMeshes returns the number of nodes with unreleased meshes.
func (av *Avatar) NumMeshes() int {
	n := 0
	if av.Root == nil {
		return 0
	}
	av.Root.WalkDown(func(nd *xyz.Node) bool {
		if nd.Mesh != nil && !nd.Mesh.IsReleased() {
			n++
		}
		return xyz.Continue
	})
	return n
}
