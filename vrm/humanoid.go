// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrm

import (
	"cogentcore.org/vrmview/base/ordmap"
	"cogentcore.org/vrmview/xyz"
)

// Humanoid is the skeletal rig of an avatar: the scene graph node for
// each mapped canonical bone.
type Humanoid struct {
	bones ordmap.Map[HumanBone, *xyz.Node]
}

// NewHumanoid returns an empty rig.
func NewHumanoid() *Humanoid {
	h := &Humanoid{}
	h.bones.Init()
	return h
}

// Set maps the given bone to a node, replacing any existing mapping.
func (h *Humanoid) Set(bone HumanBone, n *xyz.Node) {
	h.bones.Add(bone, n)
}

// Node returns the node for the given bone name, which is normalized
// to a canonical bone first. It returns nil for unknown or unmapped bones.
func (h *Humanoid) Node(name string) *xyz.Node {
	if h == nil {
		return nil
	}
	b, ok := NormalizeBone(name)
	if !ok {
		return nil
	}
	return h.bones.ValueByKey(b)
}

// Has returns true if the given canonical bone is mapped.
func (h *Humanoid) Has(bone HumanBone) bool {
	if h == nil {
		return false
	}
	_, ok := h.bones.ValueByKeyTry(bone)
	return ok
}

// Bones returns the mapped bones in order.
func (h *Humanoid) Bones() []HumanBone {
	if h == nil {
		return nil
	}
	return h.bones.Keys()
}

// Len returns the number of mapped bones.
func (h *Humanoid) Len() int {
	if h == nil {
		return 0
	}
	return h.bones.Len()
}

// Missing returns those of the given bones that are not mapped.
func (h *Humanoid) Missing(bones []HumanBone) []HumanBone {
	var miss []HumanBone
	for _, b := range bones {
		if !h.Has(b) {
			miss = append(miss, b)
		}
	}
	return miss
}

// Release drops all bone mappings.
func (h *Humanoid) Release() {
	if h == nil {
		return
	}
	h.bones.Reset()
}
