// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrm

import "strings"

// HumanBone is a canonical humanoid bone name, as defined by VRM 1.0.
type HumanBone string

// The canonical humanoid bones.
const (
	Hips       HumanBone = "hips"
	Spine      HumanBone = "spine"
	Chest      HumanBone = "chest"
	UpperChest HumanBone = "upperChest"
	Neck       HumanBone = "neck"

	Head     HumanBone = "head"
	LeftEye  HumanBone = "leftEye"
	RightEye HumanBone = "rightEye"
	Jaw      HumanBone = "jaw"

	LeftUpperLeg  HumanBone = "leftUpperLeg"
	LeftLowerLeg  HumanBone = "leftLowerLeg"
	LeftFoot      HumanBone = "leftFoot"
	LeftToes      HumanBone = "leftToes"
	RightUpperLeg HumanBone = "rightUpperLeg"
	RightLowerLeg HumanBone = "rightLowerLeg"
	RightFoot     HumanBone = "rightFoot"
	RightToes     HumanBone = "rightToes"

	LeftShoulder  HumanBone = "leftShoulder"
	LeftUpperArm  HumanBone = "leftUpperArm"
	LeftLowerArm  HumanBone = "leftLowerArm"
	LeftHand      HumanBone = "leftHand"
	RightShoulder HumanBone = "rightShoulder"
	RightUpperArm HumanBone = "rightUpperArm"
	RightLowerArm HumanBone = "rightLowerArm"
	RightHand     HumanBone = "rightHand"

	LeftThumbMetacarpal    HumanBone = "leftThumbMetacarpal"
	LeftThumbProximal      HumanBone = "leftThumbProximal"
	LeftThumbDistal        HumanBone = "leftThumbDistal"
	LeftIndexProximal      HumanBone = "leftIndexProximal"
	LeftIndexIntermediate  HumanBone = "leftIndexIntermediate"
	LeftIndexDistal        HumanBone = "leftIndexDistal"
	LeftMiddleProximal     HumanBone = "leftMiddleProximal"
	LeftMiddleIntermediate HumanBone = "leftMiddleIntermediate"
	LeftMiddleDistal       HumanBone = "leftMiddleDistal"
	LeftRingProximal       HumanBone = "leftRingProximal"
	LeftRingIntermediate   HumanBone = "leftRingIntermediate"
	LeftRingDistal         HumanBone = "leftRingDistal"
	LeftLittleProximal     HumanBone = "leftLittleProximal"
	LeftLittleIntermediate HumanBone = "leftLittleIntermediate"
	LeftLittleDistal       HumanBone = "leftLittleDistal"

	RightThumbMetacarpal    HumanBone = "rightThumbMetacarpal"
	RightThumbProximal      HumanBone = "rightThumbProximal"
	RightThumbDistal        HumanBone = "rightThumbDistal"
	RightIndexProximal      HumanBone = "rightIndexProximal"
	RightIndexIntermediate  HumanBone = "rightIndexIntermediate"
	RightIndexDistal        HumanBone = "rightIndexDistal"
	RightMiddleProximal     HumanBone = "rightMiddleProximal"
	RightMiddleIntermediate HumanBone = "rightMiddleIntermediate"
	RightMiddleDistal       HumanBone = "rightMiddleDistal"
	RightRingProximal       HumanBone = "rightRingProximal"
	RightRingIntermediate   HumanBone = "rightRingIntermediate"
	RightRingDistal         HumanBone = "rightRingDistal"
	RightLittleProximal     HumanBone = "rightLittleProximal"
	RightLittleIntermediate HumanBone = "rightLittleIntermediate"
	RightLittleDistal       HumanBone = "rightLittleDistal"
)

// AllBones lists every canonical bone, in hierarchy order.
var AllBones = []HumanBone{
	Hips, Spine, Chest, UpperChest, Neck,
	Head, LeftEye, RightEye, Jaw,
	LeftUpperLeg, LeftLowerLeg, LeftFoot, LeftToes,
	RightUpperLeg, RightLowerLeg, RightFoot, RightToes,
	LeftShoulder, LeftUpperArm, LeftLowerArm, LeftHand,
	RightShoulder, RightUpperArm, RightLowerArm, RightHand,
	LeftThumbMetacarpal, LeftThumbProximal, LeftThumbDistal,
	LeftIndexProximal, LeftIndexIntermediate, LeftIndexDistal,
	LeftMiddleProximal, LeftMiddleIntermediate, LeftMiddleDistal,
	LeftRingProximal, LeftRingIntermediate, LeftRingDistal,
	LeftLittleProximal, LeftLittleIntermediate, LeftLittleDistal,
	RightThumbMetacarpal, RightThumbProximal, RightThumbDistal,
	RightIndexProximal, RightIndexIntermediate, RightIndexDistal,
	RightMiddleProximal, RightMiddleIntermediate, RightMiddleDistal,
	RightRingProximal, RightRingIntermediate, RightRingDistal,
	RightLittleProximal, RightLittleIntermediate, RightLittleDistal,
}

// RequiredBones must all be mapped for an avatar to be usable.
var RequiredBones = []HumanBone{
	Hips, Spine, Head,
	LeftUpperLeg, LeftLowerLeg, LeftFoot,
	RightUpperLeg, RightLowerLeg, RightFoot,
	LeftUpperArm, LeftLowerArm, LeftHand,
	RightUpperArm, RightLowerArm, RightHand,
}

// boneByLower maps lower-cased names to canonical bones.
var boneByLower = func() map[string]HumanBone {
	m := make(map[string]HumanBone, len(AllBones))
	for _, b := range AllBones {
		m[strings.ToLower(string(b))] = b
	}
	return m
}()

// NormalizeBone returns the canonical bone for the given name,
// matching case-insensitively. ok is false for unknown names.
func NormalizeBone(name string) (bone HumanBone, ok bool) {
	bone, ok = boneByLower[strings.ToLower(strings.TrimSpace(name))]
	return
}

// vrm0Thumbs maps VRM 0.x thumb bone names to VRM 1.0 ones.
// VRM 0.x has no metacarpal, so its thumb chain is shifted one bone up.
var vrm0Thumbs = map[string]HumanBone{
	"leftthumbproximal":      LeftThumbMetacarpal,
	"leftthumbintermediate":  LeftThumbProximal,
	"rightthumbproximal":     RightThumbMetacarpal,
	"rightthumbintermediate": RightThumbProximal,
}

// NormalizeVRM0Bone returns the canonical bone for the given VRM 0.x
// bone name, remapping the thumb chain.
func NormalizeVRM0Bone(name string) (HumanBone, bool) {
	if b, ok := vrm0Thumbs[strings.ToLower(strings.TrimSpace(name))]; ok {
		return b, true
	}
	return NormalizeBone(name)
}
