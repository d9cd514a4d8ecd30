// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import "cogentcore.org/vrmview/math32"

// Pose contains the full specification of position and orientation,
// always relevant to the parent element.
type Pose struct {

	// position of center of element (relative to parent)
	Pos math32.Vector3

	// scale (relative to parent)
	Scale math32.Vector3

	// node rotation specified as a Quat (relative to parent)
	Quat math32.Quat

	// Local matrix. Contains all position/rotation/scale information (relative to parent)
	Matrix math32.Matrix4 `display:"-"`

	// World matrix. Contains all absolute position/rotation/scale information
	// (i.e. relative to very top parent, generally the scene).
	// Only valid after the most recent call to UpdateWorldMatrix.
	WorldMatrix math32.Matrix4 `display:"-"`
}

// Defaults sets defaults only if current values are nil
func (ps *Pose) Defaults() {
	if ps.Scale.IsNil() {
		ps.Scale.Set(1, 1, 1)
	}
	if ps.Quat.IsNil() {
		ps.Quat.SetIdentity()
	}
}

// CopyFrom copies just the pose information from the other pose.
func (ps *Pose) CopyFrom(op *Pose) {
	ps.Pos = op.Pos
	ps.Scale = op.Scale
	ps.Quat = op.Quat
	ps.UpdateMatrix()
}

// UpdateMatrix updates the local transform matrix based on its position, quaternion, and scale.
// Also checks for degenerate nil values.
func (ps *Pose) UpdateMatrix() {
	ps.Defaults()
	ps.Matrix.SetTransform(ps.Pos, ps.Quat, ps.Scale)
}

// UpdateWorldMatrix updates the world transform matrix based on Matrix and parent's WorldMatrix.
// A nil parent means this is a root, and the world matrix is just the local one.
// Does NOT call UpdateMatrix so that can include other factors as needed.
func (ps *Pose) UpdateWorldMatrix(parWorld *math32.Matrix4) {
	if parWorld == nil {
		ps.WorldMatrix = ps.Matrix
		return
	}
	ps.WorldMatrix.MulMatrices(parWorld, &ps.Matrix)
}

// SetMatrix sets the local transformation matrix and updates Pos, Scale, Quat.
func (ps *Pose) SetMatrix(m *math32.Matrix4) {
	ps.Matrix = *m
	ps.Pos, ps.Quat, ps.Scale = ps.Matrix.Decompose()
}

// MoveOnAxis moves (translates) the specified distance on the specified local axis,
// relative to the current rotation orientation.
func (ps *Pose) MoveOnAxis(x, y, z, dist float32) {
	ps.Pos.SetAdd(math32.Vec3(x, y, z).Normal().MulQuat(ps.Quat).MulScalar(dist))
}

// SetAxisRotation sets rotation from local axis and angle in degrees.
func (ps *Pose) SetAxisRotation(x, y, z, angle float32) {
	ps.Quat.SetFromAxisAngle(math32.Vec3(x, y, z).Normal(), math32.DegToRad(angle))
}

// RotateOnAxis rotates around the specified local axis the specified angle in degrees.
func (ps *Pose) RotateOnAxis(x, y, z, angle float32) {
	ps.Quat.SetMul(math32.NewQuatAxisAngle(math32.Vec3(x, y, z).Normal(), math32.DegToRad(angle)))
}

// LookAt points the element at given target location using given up direction.
func (ps *Pose) LookAt(target, upDir math32.Vector3) {
	var m math32.Matrix4
	m.LookAt(ps.Pos, target, upDir)
	ps.Quat.SetFromRotationMatrix(&m)
}

// WorldPos returns the current world position, as of the last UpdateWorldMatrix.
func (ps *Pose) WorldPos() math32.Vector3 {
	return ps.WorldMatrix.Position()
}

// WorldQuat returns the current world quaternion.
func (ps *Pose) WorldQuat() math32.Quat {
	_, quat, _ := ps.WorldMatrix.Decompose()
	return quat
}
