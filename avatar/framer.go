// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package avatar

import (
	"cogentcore.org/vrmview/math32"
	"cogentcore.org/vrmview/xyzview"
)

// DefaultOffset is the default camera offset from the framed joint:
// slightly above and in front of it.
var DefaultOffset = math32.Vec3(0, 0.5, 1.5)

// CameraFrame is a camera placement.
type CameraFrame struct {

	// Position is the camera position.
	Position math32.Vector3

	// Target is the point the camera looks at and orbits around.
	Target math32.Vector3
}

// Framer places the camera relative to a humanoid joint.
type Framer struct {

	// Offset is added to the joint world position to get the camera position.
	Offset math32.Vector3
}

// Compute returns the camera frame for the given joint of the avatar
// in the given state. It returns false if there is no avatar, or the
// avatar has no such joint. Joint names are normalized, so "Head" and
// "head" are the same joint.
func (fr *Framer) Compute(st State, joint string) (CameraFrame, bool) {
	switch st := st.(type) {
	case Loaded:
		av := st.Avatar
		if av == nil || av.Released() {
			return CameraFrame{}, false
		}
		n := av.Humanoid.Node(joint)
		if n == nil {
			return CameraFrame{}, false
		}
		p := n.WorldPosition()
		return CameraFrame{Position: p.Add(fr.Offset), Target: p}, true
	case Empty:
		return CameraFrame{}, false
	}
	return CameraFrame{}, false
}

// FrameOnJoint moves the camera of the given controls to the frame
// computed for the given joint, looking at the joint with the world up
// direction, and makes the joint the orbit target. The camera is left
// unchanged if there is no frame.
func (fr *Framer) FrameOnJoint(st State, joint string, ctrl *xyzview.Controls) (CameraFrame, bool) {
	cf, ok := fr.Compute(st, joint)
	if !ok || ctrl == nil || ctrl.Camera == nil {
		return cf, false
	}
	cam := ctrl.Camera
	cam.Pose.Pos = cf.Position
	cam.UpDir = math32.Vector3Y
	ctrl.SetTarget(cf.Target)
	return cf, true
}
