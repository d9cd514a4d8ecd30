// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vrmtest builds small synthetic .vrm files for tests.
//
// The skeleton stands at the origin facing +Z, with the head at
// (0, 1, 0) in world space:
//
//	Armature
//	  hips (0, 0.5, 0)
//	    spine (0, 0.25, 0)
//	      head (0, 0.25, 0) + HeadOffset
//	      left/right upper arm, lower arm, hand, thumb
//	    left/right upper leg, lower leg, foot
//	  Body (mesh)
package vrmtest

import (
	"bytes"
	"slices"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"cogentcore.org/vrmview/math32"
	"cogentcore.org/vrmview/vrm"
)

// Options configure the generated avatar.
type Options struct {

	// Version is the VRM major version: 0 or 1.
	Version int

	// Title is the avatar title in the metadata.
	Title string

	// NoExtension omits the VRM extension, making a plain glTF file.
	NoExtension bool

	// Omit lists bones left out of the humanoid mapping.
	Omit []vrm.HumanBone

	// HeadOffset is added to the local position of the head.
	HeadOffset math32.Vector3

	// NoMesh leaves out the body mesh.
	NoMesh bool
}

type bone struct {
	name   vrm.HumanBone
	vrm0   string
	parent vrm.HumanBone
	pos    math32.Vector3
}

var skeleton = []bone{
	{vrm.Hips, "hips", "", math32.Vec3(0, 0.5, 0)},
	{vrm.Spine, "spine", vrm.Hips, math32.Vec3(0, 0.25, 0)},
	{vrm.Head, "head", vrm.Spine, math32.Vec3(0, 0.25, 0)},
	{vrm.LeftUpperArm, "leftUpperArm", vrm.Spine, math32.Vec3(0.125, 0.125, 0)},
	{vrm.LeftLowerArm, "leftLowerArm", vrm.LeftUpperArm, math32.Vec3(0.25, 0, 0)},
	{vrm.LeftHand, "leftHand", vrm.LeftLowerArm, math32.Vec3(0.25, 0, 0)},
	{vrm.LeftThumbMetacarpal, "leftThumbProximal", vrm.LeftHand, math32.Vec3(0.03125, 0, 0.03125)},
	{vrm.LeftThumbProximal, "leftThumbIntermediate", vrm.LeftThumbMetacarpal, math32.Vec3(0.03125, 0, 0)},
	{vrm.RightUpperArm, "rightUpperArm", vrm.Spine, math32.Vec3(-0.125, 0.125, 0)},
	{vrm.RightLowerArm, "rightLowerArm", vrm.RightUpperArm, math32.Vec3(-0.25, 0, 0)},
	{vrm.RightHand, "rightHand", vrm.RightLowerArm, math32.Vec3(-0.25, 0, 0)},
	{vrm.RightThumbMetacarpal, "rightThumbProximal", vrm.RightHand, math32.Vec3(-0.03125, 0, 0.03125)},
	{vrm.RightThumbProximal, "rightThumbIntermediate", vrm.RightThumbMetacarpal, math32.Vec3(-0.03125, 0, 0)},
	{vrm.LeftUpperLeg, "leftUpperLeg", vrm.Hips, math32.Vec3(0.125, 0, 0)},
	{vrm.LeftLowerLeg, "leftLowerLeg", vrm.LeftUpperLeg, math32.Vec3(0, -0.25, 0)},
	{vrm.LeftFoot, "leftFoot", vrm.LeftLowerLeg, math32.Vec3(0, -0.25, 0)},
	{vrm.RightUpperLeg, "rightUpperLeg", vrm.Hips, math32.Vec3(-0.125, 0, 0)},
	{vrm.RightLowerLeg, "rightLowerLeg", vrm.RightUpperLeg, math32.Vec3(0, -0.25, 0)},
	{vrm.RightFoot, "rightFoot", vrm.RightLowerLeg, math32.Vec3(0, -0.25, 0)},
}

func newNode(name string, pos math32.Vector3) *gltf.Node {
	return &gltf.Node{
		Name:        name,
		Matrix:      gltf.DefaultMatrix,
		Rotation:    gltf.DefaultRotation,
		Scale:       gltf.DefaultScale,
		Translation: [3]float64{float64(pos.X), float64(pos.Y), float64(pos.Z)},
	}
}

// Doc returns the glTF document for the given options.
func Doc(opts Options) *gltf.Document {
	doc := &gltf.Document{
		Asset:  gltf.Asset{Version: "2.0", Generator: "vrmtest"},
		Scene:  gltf.Index(0),
		Scenes: []*gltf.Scene{{Name: "Scene", Nodes: []int{0}}},
	}
	doc.Nodes = append(doc.Nodes, newNode("Armature", math32.Vector3{}))
	index := map[vrm.HumanBone]int{}
	for _, b := range skeleton {
		pos := b.pos
		if b.name == vrm.Head {
			pos = pos.Add(opts.HeadOffset)
		}
		ni := len(doc.Nodes)
		doc.Nodes = append(doc.Nodes, newNode("J_"+string(b.name), pos))
		index[b.name] = ni
		parent := 0
		if b.parent != "" {
			parent = index[b.parent]
		}
		doc.Nodes[parent].Children = append(doc.Nodes[parent].Children, ni)
	}
	if !opts.NoMesh {
		addBody(doc)
	}
	if opts.NoExtension {
		return doc
	}

	title := opts.Title
	if title == "" {
		title = "Test Avatar"
	}
	omit := func(b vrm.HumanBone) bool { return slices.Contains(opts.Omit, b) }
	if opts.Version == 0 {
		ext := &vrm.VRM0{SpecVersion: "0.0", ExporterVersion: "vrmtest"}
		ext.Meta = vrm.VRM0Meta{Title: title, Version: "1", Author: "vrmtest"}
		for _, b := range skeleton {
			if !omit(b.name) {
				ext.Humanoid.HumanBones = append(ext.Humanoid.HumanBones, vrm.VRM0HumanBone{Bone: b.vrm0, Node: index[b.name]})
			}
		}
		doc.Extensions = gltf.Extensions{vrm.ExtensionVRM0: ext}
		doc.ExtensionsUsed = []string{vrm.ExtensionVRM0}
		return doc
	}
	ext := &vrm.VRM1{SpecVersion: "1.0"}
	ext.Meta = vrm.VRM1Meta{Name: title, Version: "1", Authors: []string{"vrmtest"}}
	ext.Humanoid.HumanBones = map[string]vrm.VRM1HumanBone{}
	for _, b := range skeleton {
		if !omit(b.name) {
			ext.Humanoid.HumanBones[string(b.name)] = vrm.VRM1HumanBone{Node: index[b.name]}
		}
	}
	doc.Extensions = gltf.Extensions{vrm.ExtensionVRM1: ext}
	doc.ExtensionsUsed = []string{vrm.ExtensionVRM1}
	return doc
}

// addBody adds a mesh node with a single quad facing +Z at chest height.
func addBody(doc *gltf.Document) {
	pos := modeler.WritePosition(doc, [][3]float32{
		{-0.25, 0.5, 0}, {0.25, 0.5, 0}, {0.25, 1, 0}, {-0.25, 1, 0},
	})
	ind := modeler.WriteIndices(doc, []uint32{0, 1, 2, 0, 2, 3})
	doc.Materials = append(doc.Materials, &gltf.Material{
		Name:                 "Skin",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float64{1, 0.8, 0.6, 1}},
	})
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: "Body",
		Primitives: []*gltf.Primitive{{
			Attributes: map[string]int{gltf.POSITION: pos},
			Indices:    gltf.Index(ind),
			Material:   gltf.Index(len(doc.Materials) - 1),
		}},
	})
	body := newNode("Body", math32.Vector3{})
	body.Mesh = gltf.Index(len(doc.Meshes) - 1)
	doc.Nodes = append(doc.Nodes, body)
	doc.Nodes[0].Children = append(doc.Nodes[0].Children, len(doc.Nodes)-1)
}

// Encode returns the binary glTF encoding of the given document.
func Encode(doc *gltf.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := gltf.NewEncoder(&buf)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GLB returns the .vrm file bytes for the given options.
// It panics if encoding fails.
func GLB(opts Options) []byte {
	b, err := Encode(Doc(opts))
	if err != nil {
		panic(err)
	}
	return b
}

// Asset returns a fresh asset with the given name for the given options.
func Asset(name string, opts Options) *vrm.Asset {
	return vrm.AssetFromBytes(name, GLB(opts))
}

// NotGLB is an asset header that does not match binary glTF.
var NotGLB = []byte("PK\x03\x04 this is a zip archive, not a glTF binary")
