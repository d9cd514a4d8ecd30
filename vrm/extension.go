// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrm

import (
	"encoding/json"
	"slices"

	"github.com/qmuntal/gltf"
)

const (
	// ExtensionVRM0 is the glTF extension name used by VRM 0.x.
	ExtensionVRM0 = "VRM"

	// ExtensionVRM1 is the glTF extension name used by VRM 1.0.
	ExtensionVRM1 = "VRMC_vrm"
)

func init() {
	gltf.RegisterExtension(ExtensionVRM0, unmarshalVRM0)
	gltf.RegisterExtension(ExtensionVRM1, unmarshalVRM1)
}

// VRM0 is the subset of the VRM 0.x extension that is used here.
type VRM0 struct {
	ExporterVersion string   `json:"exporterVersion,omitempty"`
	SpecVersion     string   `json:"specVersion,omitempty"`
	Meta            VRM0Meta `json:"meta"`
	Humanoid        struct {
		HumanBones []VRM0HumanBone `json:"humanBones"`
	} `json:"humanoid"`
}

// VRM0Meta is the VRM 0.x avatar information.
type VRM0Meta struct {
	Title   string `json:"title,omitempty"`
	Version string `json:"version,omitempty"`
	Author  string `json:"author,omitempty"`
}

// VRM0HumanBone maps one VRM 0.x bone name to a node index.
type VRM0HumanBone struct {
	Bone string `json:"bone"`
	Node int    `json:"node"`
}

// VRM1 is the subset of the VRMC_vrm extension that is used here.
type VRM1 struct {
	SpecVersion string   `json:"specVersion"`
	Meta        VRM1Meta `json:"meta"`
	Humanoid    struct {
		HumanBones map[string]VRM1HumanBone `json:"humanBones"`
	} `json:"humanoid"`
}

// VRM1Meta is the VRM 1.0 avatar information.
type VRM1Meta struct {
	Name    string   `json:"name,omitempty"`
	Version string   `json:"version,omitempty"`
	Authors []string `json:"authors,omitempty"`
}

// VRM1HumanBone is the node index of one VRM 1.0 bone.
type VRM1HumanBone struct {
	Node int `json:"node"`
}

func unmarshalVRM0(data []byte) (any, error) {
	v := &VRM0{}
	err := json.Unmarshal(data, v)
	return v, err
}

func unmarshalVRM1(data []byte) (any, error) {
	v := &VRM1{}
	err := json.Unmarshal(data, v)
	return v, err
}

// rig is the version-independent result of reading either extension.
type rig struct {
	extension   string
	specVersion string
	title       string
	authors     []string

	// bones maps canonical bones to glTF node indexes, in document order.
	bones []boneNode

	// unknown lists bone names that did not normalize.
	unknown []string
}

type boneNode struct {
	bone HumanBone
	node int
}

// readRig extracts the humanoid rig from the document extensions,
// preferring VRM 1.0 when both are present. ok is false if neither
// extension is present.
func readRig(doc *gltf.Document) (rg *rig, ok bool) {
	if v, has := doc.Extensions[ExtensionVRM1].(*VRM1); has {
		rg = &rig{extension: ExtensionVRM1, specVersion: v.SpecVersion, title: v.Meta.Name, authors: v.Meta.Authors}
		if rg.specVersion == "" {
			rg.specVersion = "1.0"
		}
		nodes := make(map[HumanBone]int, len(v.Humanoid.HumanBones))
		for name, hb := range v.Humanoid.HumanBones {
			nb, ok := NormalizeBone(name)
			if !ok {
				rg.unknown = append(rg.unknown, name)
				continue
			}
			nodes[nb] = hb.Node
		}
		// map iteration is unordered, so go by canonical order
		for _, b := range AllBones {
			if n, has := nodes[b]; has {
				rg.bones = append(rg.bones, boneNode{bone: b, node: n})
			}
		}
		slices.Sort(rg.unknown)
		return rg, true
	}
	if v, has := doc.Extensions[ExtensionVRM0].(*VRM0); has {
		rg = &rig{extension: ExtensionVRM0, specVersion: v.SpecVersion, title: v.Meta.Title}
		if rg.specVersion == "" {
			rg.specVersion = "0.0"
		}
		if v.Meta.Author != "" {
			rg.authors = []string{v.Meta.Author}
		}
		for _, hb := range v.Humanoid.HumanBones {
			nb, ok := NormalizeVRM0Bone(hb.Bone)
			if !ok {
				rg.unknown = append(rg.unknown, hb.Bone)
				continue
			}
			rg.bones = append(rg.bones, boneNode{bone: nb, node: hb.Node})
		}
		return rg, true
	}
	return nil, false
}
