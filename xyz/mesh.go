// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image/color"

	"cogentcore.org/vrmview/math32"
)

// Mesh holds the triangle geometry for one node: vertex positions in the
// local space of the node, and triangle indices into them.
type Mesh struct {

	// Name of the mesh
	Name string

	// Positions are the vertex positions, in node-local coordinates.
	Positions []math32.Vector3

	// Indices are triples of indices into Positions, one per triangle.
	// If empty, Positions is taken as a flat list of triangles.
	Indices []uint32

	// Color is the base color applied to all triangles.
	Color color.RGBA

	released bool
}

// NewMesh returns a new mesh with the given geometry and a light gray color.
func NewMesh(name string, pos []math32.Vector3, idx []uint32) *Mesh {
	return &Mesh{Name: name, Positions: pos, Indices: idx, Color: color.RGBA{200, 200, 200, 255}}
}

// NumTriangles returns the number of triangles in the mesh.
func (ms *Mesh) NumTriangles() int {
	if len(ms.Indices) > 0 {
		return len(ms.Indices) / 3
	}
	return len(ms.Positions) / 3
}

// Triangle returns the vertex positions of triangle i.
// ok is false if any index is out of range.
func (ms *Mesh) Triangle(i int) (a, b, c math32.Vector3, ok bool) {
	n := len(ms.Positions)
	if len(ms.Indices) == 0 {
		j := 3 * i
		if j+2 >= n {
			return
		}
		return ms.Positions[j], ms.Positions[j+1], ms.Positions[j+2], true
	}
	j := 3 * i
	if j+2 >= len(ms.Indices) {
		return
	}
	ia, ib, ic := int(ms.Indices[j]), int(ms.Indices[j+1]), int(ms.Indices[j+2])
	if ia >= n || ib >= n || ic >= n {
		return
	}
	return ms.Positions[ia], ms.Positions[ib], ms.Positions[ic], true
}

// Release frees the geometry buffers. It is safe to call more than once.
func (ms *Mesh) Release() {
	if ms.released {
		return
	}
	ms.released = true
	ms.Positions = nil
	ms.Indices = nil
}

// IsReleased returns true if Release has been called.
func (ms *Mesh) IsReleased() bool {
	return ms.released
}
