// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrm

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/Masterminds/semver/v3"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"cogentcore.org/vrmview/math32"
	"cogentcore.org/vrmview/xyz"
)

// Build converts a decoded glTF document carrying a VRM extension into
// an [Avatar], with the given display name. It fails with
// [ErrAssetIncompatible] if the rig is missing or incomplete, and with
// [ErrAssetParse] if the node graph or geometry is malformed.
func Build(name string, doc *gltf.Document) (*Avatar, error) {
	rg, ok := readRig(doc)
	if !ok {
		return nil, fmt.Errorf("%w: no %s or %s extension", ErrAssetIncompatible, ExtensionVRM1, ExtensionVRM0)
	}
	ver, err := semver.NewVersion(rg.specVersion)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid spec version %q: %w", ErrAssetIncompatible, rg.specVersion, err)
	}
	if len(rg.unknown) > 0 {
		slog.Debug("ignoring unknown humanoid bones", "asset", name, "bones", rg.unknown)
	}

	roots, nodes, err := buildGraph(doc)
	if err != nil {
		return nil, err
	}
	root := xyz.NewNode(name)
	for _, r := range roots {
		root.AddChild(r)
	}

	hum := NewHumanoid()
	for _, bn := range rg.bones {
		if bn.node < 0 || bn.node >= len(nodes) || !nodes[bn.node].IsDescendantOf(root) {
			slog.Debug("ignoring humanoid bone with invalid node", "asset", name, "bone", bn.bone, "node", bn.node)
			continue
		}
		hum.Set(bn.bone, nodes[bn.node])
	}
	if miss := hum.Missing(RequiredBones); len(miss) > 0 {
		xyz.ReleaseMeshes(root)
		return nil, fmt.Errorf("%w: missing required bones %v", ErrAssetIncompatible, miss)
	}

	av := &Avatar{
		Name:     name,
		Root:     root,
		Humanoid: hum,
		Meta: Meta{
			Extension:   rg.extension,
			SpecVersion: ver,
			Title:       rg.title,
			Authors:     rg.authors,
		},
	}
	if ver.Major() == 0 {
		av.Meta.LegacyForward = true
		root.Pose.SetAxisRotation(0, 1, 0, 180)
	}
	return av, nil
}

// buildGraph creates one node per glTF node, links the hierarchy and
// returns the roots of the default scene along with all nodes by index.
func buildGraph(doc *gltf.Document) (roots, nodes []*xyz.Node, err error) {
	nodes = make([]*xyz.Node, len(doc.Nodes))
	for i, gn := range doc.Nodes {
		if gn == nil {
			return nil, nil, fmt.Errorf("%w: node %d is null", ErrAssetParse, i)
		}
		name := gn.Name
		if name == "" {
			name = fmt.Sprintf("node%d", i)
		}
		n := xyz.NewNode(name)
		setPose(&n.Pose, gn)
		if gn.Mesh != nil {
			n.Mesh, err = buildMesh(doc, *gn.Mesh)
			if err != nil {
				return nil, nil, err
			}
		}
		nodes[i] = n
	}

	hasParent := make([]bool, len(nodes))
	for i, gn := range doc.Nodes {
		for _, c := range gn.Children {
			switch {
			case c < 0 || c >= len(nodes):
				return nil, nil, fmt.Errorf("%w: node %d has invalid child %d", ErrAssetParse, i, c)
			case hasParent[c]:
				return nil, nil, fmt.Errorf("%w: node %d has more than one parent", ErrAssetParse, c)
			case nodes[i].IsDescendantOf(nodes[c]):
				return nil, nil, fmt.Errorf("%w: node hierarchy has a cycle at node %d", ErrAssetParse, c)
			}
			hasParent[c] = true
			nodes[i].AddChild(nodes[c])
		}
	}

	if len(doc.Scenes) == 0 {
		for i, n := range nodes {
			if !hasParent[i] {
				roots = append(roots, n)
			}
		}
		return roots, nodes, nil
	}
	si := 0
	if doc.Scene != nil {
		si = *doc.Scene
	}
	if si < 0 || si >= len(doc.Scenes) || doc.Scenes[si] == nil {
		return nil, nil, fmt.Errorf("%w: invalid default scene %d", ErrAssetParse, si)
	}
	for _, r := range doc.Scenes[si].Nodes {
		if r < 0 || r >= len(nodes) || hasParent[r] {
			return nil, nil, fmt.Errorf("%w: invalid scene root node %d", ErrAssetParse, r)
		}
		roots = append(roots, nodes[r])
	}
	return roots, nodes, nil
}

// setPose sets the local transform from the node matrix if it is
// given, and otherwise from its translation, rotation and scale.
func setPose(ps *xyz.Pose, gn *gltf.Node) {
	m := math32.Matrix4FromArray(gn.Matrix)
	if !m.IsZero() && !m.IsIdentity() {
		ps.SetMatrix(&m)
		return
	}
	ps.Pos = math32.Vector3FromArray(gn.Translation)
	ps.Quat = math32.QuatFromArray(gn.Rotation)
	ps.Quat.Normalize()
	ps.Scale = math32.Vector3FromArray(gn.Scale)
	if ps.Scale.IsNil() {
		ps.Scale = math32.Vector3Scalar(1)
	}
}

// buildMesh merges the triangle primitives of the given glTF mesh into
// one [xyz.Mesh]. It returns nil if the mesh has no triangle geometry.
func buildMesh(doc *gltf.Document, idx int) (ms *xyz.Mesh, err error) {
	if idx < 0 || idx >= len(doc.Meshes) || doc.Meshes[idx] == nil {
		return nil, fmt.Errorf("%w: invalid mesh %d", ErrAssetParse, idx)
	}
	// the glTF accessor readers index buffers directly
	defer func() {
		if r := recover(); r != nil {
			ms = nil
			err = fmt.Errorf("%w: mesh %d: %v", ErrAssetParse, idx, r)
		}
	}()
	gm := doc.Meshes[idx]
	ms = xyz.NewMesh(gm.Name, nil, nil)
	colorSet := false
	for pi, prim := range gm.Primitives {
		if prim == nil || prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		ai, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		acr, err := accessor(doc, ai)
		if err != nil {
			return nil, err
		}
		pos, err := modeler.ReadPosition(doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: mesh %d primitive %d positions: %w", ErrAssetParse, idx, pi, err)
		}
		base := uint32(len(ms.Positions))
		for _, p := range pos {
			ms.Positions = append(ms.Positions, math32.Vec3(p[0], p[1], p[2]))
		}
		if prim.Indices != nil {
			acr, err := accessor(doc, *prim.Indices)
			if err != nil {
				return nil, err
			}
			ind, err := modeler.ReadIndices(doc, acr, nil)
			if err != nil {
				return nil, fmt.Errorf("%w: mesh %d primitive %d indices: %w", ErrAssetParse, idx, pi, err)
			}
			for _, i := range ind {
				ms.Indices = append(ms.Indices, base+i)
			}
		} else {
			for i := range uint32(len(pos)) {
				ms.Indices = append(ms.Indices, base+i)
			}
		}
		if !colorSet && prim.Material != nil {
			if clr, ok := baseColor(doc, *prim.Material); ok {
				ms.Color = clr
				colorSet = true
			}
		}
	}
	if len(ms.Positions) == 0 {
		return nil, nil
	}
	return ms, nil
}

// accessor returns the accessor at the given index, checking that its
// buffer view and buffer exist.
func accessor(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) || doc.Accessors[idx] == nil {
		return nil, fmt.Errorf("%w: invalid accessor %d", ErrAssetParse, idx)
	}
	acr := doc.Accessors[idx]
	if acr.BufferView == nil {
		return nil, fmt.Errorf("%w: accessor %d has no buffer view", ErrAssetParse, idx)
	}
	bvi := *acr.BufferView
	if bvi < 0 || bvi >= len(doc.BufferViews) || doc.BufferViews[bvi] == nil {
		return nil, fmt.Errorf("%w: accessor %d has invalid buffer view %d", ErrAssetParse, idx, bvi)
	}
	bv := doc.BufferViews[bvi]
	if bv.Buffer < 0 || bv.Buffer >= len(doc.Buffers) || doc.Buffers[bv.Buffer] == nil {
		return nil, fmt.Errorf("%w: buffer view %d has invalid buffer %d", ErrAssetParse, bvi, bv.Buffer)
	}
	if end := bv.ByteOffset + bv.ByteLength; end > len(doc.Buffers[bv.Buffer].Data) {
		return nil, fmt.Errorf("%w: buffer view %d is out of range", ErrAssetParse, bvi)
	}
	return acr, nil
}

// baseColor returns the PBR base color factor of the given material.
func baseColor(doc *gltf.Document, idx int) (color.RGBA, bool) {
	if idx < 0 || idx >= len(doc.Materials) || doc.Materials[idx] == nil {
		return color.RGBA{}, false
	}
	pbr := doc.Materials[idx].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorFactor == nil {
		return color.RGBA{}, false
	}
	f := pbr.BaseColorFactor
	ch := func(v float64) uint8 {
		return uint8(math32.Clamp(float32(v), 0, 1) * 255)
	}
	return color.RGBA{ch(f[0]), ch(f[1]), ch(f[2]), ch(f[3])}, true
}
