// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyzview

import (
	"testing"

	"cogentcore.org/vrmview/math32"
	"cogentcore.org/vrmview/xyz"
	"github.com/stretchr/testify/assert"
)

func newCamera() *xyz.Camera {
	cm := &xyz.Camera{}
	cm.Defaults()
	return cm
}

func TestUndampedOrbit(t *testing.T) {
	cm := newCamera()
	vc := NewControls(cm, 60, 0)
	assert.False(t, vc.Damping)
	assert.False(t, vc.Update())

	vc.Orbit(90, 0)
	assert.False(t, vc.Idle())
	assert.True(t, vc.Update())
	assert.True(t, vc.Idle())
	assert.InDelta(t, 5, cm.Pose.Pos.X, 1e-4)
	assert.False(t, vc.Update())
}

func TestDampedOrbitSettles(t *testing.T) {
	cm := newCamera()
	vc := NewControls(cm, 60, 6)
	assert.True(t, vc.Damping)
	dist := cm.ViewVector().Length()

	vc.Orbit(10, 0)
	frames := 0
	for vc.Update() {
		frames++
		if frames > 1000 {
			break
		}
	}
	assert.Greater(t, frames, 1)
	assert.Less(t, frames, 1000)
	assert.True(t, vc.Idle())
	assert.InDelta(t, dist, cm.ViewVector().Length(), 1e-3)
	assert.Equal(t, math32.Vector3Zero, cm.Target)
}

func TestPanModes(t *testing.T) {
	cm := newCamera()
	vc := NewControls(cm, 60, 0)
	vc.ScreenSpacePanning = false
	vc.Pan(1, 0)
	vc.Update()
	assert.InDelta(t, -1, cm.Target.X, 1e-5)
	assert.InDelta(t, 0, cm.Target.Y, 1e-5)

	cm = newCamera()
	vc = NewControls(cm, 60, 0)
	before := cm.ViewVector()
	vc.Pan(0, 1)
	vc.Update()
	assert.True(t, before.IsEqualTol(cm.ViewVector(), 1e-4))
	assert.Less(t, cm.Target.Y, float32(0))
}

func TestZoomMinDistance(t *testing.T) {
	cm := newCamera()
	vc := NewControls(cm, 60, 0)
	dist := cm.ViewVector().Length()
	vc.Zoom(-0.5)
	vc.Update()
	assert.InDelta(t, dist*0.5, cm.ViewVector().Length(), 1e-4)

	vc.Zoom(-0.999)
	vc.Update()
	assert.InDelta(t, dist*0.5, cm.ViewVector().Length(), 1e-4)
}

func TestSetTargetClearsMotion(t *testing.T) {
	cm := newCamera()
	vc := NewControls(cm, 60, 6)
	vc.Orbit(30, 10)
	vc.SetTarget(math32.Vec3(0, 1, 0))
	assert.True(t, vc.Idle())
	assert.Equal(t, math32.Vec3(0, 1, 0), vc.Target())
	pos := cm.Pose.Pos
	assert.False(t, vc.Update())
	assert.Equal(t, pos, cm.Pose.Pos)
}
