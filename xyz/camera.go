// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import "cogentcore.org/vrmview/math32"

// Camera defines the properties of the camera.
// It is not safe for concurrent use; owners serialize access.
type Camera struct {

	// overall orientation and direction of the camera, relative to pointing at negative Z axis with up (positive Y) direction
	Pose Pose

	// target location for the camera, where it is pointing at. It defaults to the origin,
	// moves with panning movements, and is reset by a call to LookAt.
	Target math32.Vector3

	// up direction for camera, which way is up. Defaults to positive Y axis,
	// and is reset by a call to LookAt.
	UpDir math32.Vector3

	// field of view in degrees
	FOV float32

	// aspect ratio (width/height)
	Aspect float32

	// near plane z coordinate
	Near float32

	// far plane z coordinate
	Far float32

	// view matrix (inverse of the Pose.Matrix)
	ViewMatrix math32.Matrix4 `display:"-"`

	// projection matrix, defining the camera perspective transform
	ProjectionMatrix math32.Matrix4 `display:"-"`

	// ViewProjection is ProjectionMatrix * ViewMatrix
	ViewProjection math32.Matrix4 `display:"-"`
}

// Defaults sets the default perspective and a pose looking at the origin
// from slightly above and in front of it.
func (cm *Camera) Defaults() {
	cm.FOV = 30
	cm.Aspect = 1
	cm.Near = .1
	cm.Far = 20
	cm.DefaultPose()
}

// DefaultPose resets the camera pose to default location and orientation, looking
// at the origin from 0,1,5, with up Y axis
func (cm *Camera) DefaultPose() {
	cm.Pose = Pose{}
	cm.Pose.Defaults()
	cm.Pose.Pos.Set(0, 1, 5)
	cm.LookAtOrigin()
}

// UpdateMatrix updates the view and projection matrices.
func (cm *Camera) UpdateMatrix() {
	cm.Pose.UpdateMatrix()
	inv := cm.Pose.Quat.Conjugate()
	t := cm.Pose.Pos.MulQuat(inv).Negate()
	cm.ViewMatrix.SetTransform(t, inv, math32.Vector3Scalar(1))
	aspect := cm.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	cm.ProjectionMatrix.SetPerspective(cm.FOV, aspect, cm.Near, cm.Far)
	cm.ViewProjection.MulMatrices(&cm.ProjectionMatrix, &cm.ViewMatrix)
}

// LookAt points the camera at given target location, using given up direction,
// and sets the Target, UpDir fields for future camera movements.
func (cm *Camera) LookAt(target, upDir math32.Vector3) {
	cm.Target = target
	if upDir.IsNil() {
		upDir = math32.Vector3Y
	}
	cm.UpDir = upDir
	cm.Pose.LookAt(target, upDir)
	cm.UpdateMatrix()
}

// LookAtOrigin points the camera at origin with Y axis pointing Up (i.e., standard)
func (cm *Camera) LookAtOrigin() {
	cm.LookAt(math32.Vector3Zero, math32.Vector3Y)
}

// LookAtTarget points the camera at current target using current up direction
func (cm *Camera) LookAtTarget() {
	cm.LookAt(cm.Target, cm.UpDir)
}

// ViewVector is the vector between the camera position and target
func (cm *Camera) ViewVector() math32.Vector3 {
	return cm.Pose.Pos.Sub(cm.Target)
}

// Orbit moves the camera along the given 2D axes in degrees
// (delX = left/right, delY = up/down),
// relative to current position and orientation,
// keeping the same distance from the Target, and rotating the camera and
// the Up direction vector to keep looking at the target.
func (cm *Camera) Orbit(delX, delY float32) {
	ctdir := cm.ViewVector()
	if ctdir.IsNil() {
		ctdir.Set(0, 0, 1)
	}
	dir := ctdir.Normal()

	up := cm.UpDir
	right := cm.UpDir.Cross(dir).Normal()

	// delX rotates around the up vector
	dxq := math32.NewQuatAxisAngle(up, math32.DegToRad(delX))
	dx := ctdir.MulQuat(dxq).Sub(ctdir)
	// delY rotates around the right vector
	dyq := math32.NewQuatAxisAngle(right, math32.DegToRad(delY))
	dy := ctdir.MulQuat(dyq).Sub(ctdir)

	cm.Pose.Pos = cm.Pose.Pos.Add(dx).Add(dy)
	cm.UpDir.SetMulQuat(dyq) // this is only one that affects up

	cm.LookAtTarget()
}

// Pan moves the camera along the given 2D axes (left/right, up/down),
// relative to current position and orientation (i.e., in the plane of the
// current window view)
// and it moves the target by the same increment, changing the target position.
func (cm *Camera) Pan(delX, delY float32) {
	dx := math32.Vec3(-delX, 0, 0).MulQuat(cm.Pose.Quat)
	dy := math32.Vec3(0, -delY, 0).MulQuat(cm.Pose.Quat)
	td := dx.Add(dy)
	cm.Pose.Pos.SetAdd(td)
	cm.Target.SetAdd(td)
	cm.UpdateMatrix()
}

// PanAxis moves the camera and target along world X,Y axes
func (cm *Camera) PanAxis(delX, delY float32) {
	td := math32.Vec3(-delX, -delY, 0)
	cm.Pose.Pos.SetAdd(td)
	cm.Target.SetAdd(td)
	cm.UpdateMatrix()
}

// Zoom moves along axis given pct closer or further from the target
// it always moves the target back also if it distance is < 1
func (cm *Camera) Zoom(zoomPct float32) {
	ctaxis := cm.ViewVector()
	if ctaxis.IsNil() {
		ctaxis.Set(0, 0, 1)
	}
	dist := ctaxis.Length()
	del := ctaxis.MulScalar(zoomPct)
	cm.Pose.Pos.SetAdd(del)
	if zoomPct < 0 && dist < 1 {
		cm.Target.SetAdd(del)
	}
	cm.UpdateMatrix()
}
