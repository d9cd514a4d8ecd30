// Copyright 2021 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const StandardTol = float32(1.0e-6)

func TolAssertEqualVector(t *testing.T, tol float32, vt, va Vector3) {
	t.Helper()
	assert.InDelta(t, vt.X, va.X, float64(tol), "X of %v vs %v", vt, va)
	assert.InDelta(t, vt.Y, va.Y, float64(tol), "Y of %v vs %v", vt, va)
	assert.InDelta(t, vt.Z, va.Z, float64(tol), "Z of %v vs %v", vt, va)
}

func TestVector3(t *testing.T) {
	a := Vec3(1, 2, 3)
	b := Vec3(4, 5, 6)
	assert.Equal(t, Vec3(5, 7, 9), a.Add(b))
	assert.Equal(t, Vec3(3, 3, 3), b.Sub(a))
	assert.Equal(t, float32(32), a.Dot(b))
	assert.Equal(t, Vec3(-3, 6, -3), a.Cross(b))
	assert.Equal(t, Vector3Z, Vector3X.Cross(Vector3Y))
	assert.Equal(t, float32(5), Vec3(3, 4, 0).Length())
	assert.Equal(t, Vector3Zero, Vector3Zero.Normal())
	TolAssertEqualVector(t, StandardTol, Vec3(0.6, 0.8, 0), Vec3(3, 4, 0).Normal())
}

func TestQuatRotation(t *testing.T) {
	q := NewQuatAxisAngle(Vector3Y, DegToRad(180))
	TolAssertEqualVector(t, 1e-6, Vec3(-1, 0, 0), Vector3X.MulQuat(q))
	TolAssertEqualVector(t, 1e-6, Vec3(0, 0, -1), Vector3Z.MulQuat(q))
	TolAssertEqualVector(t, 1e-6, Vector3Y, Vector3Y.MulQuat(q))

	q90 := NewQuatAxisAngle(Vector3Y, DegToRad(90))
	TolAssertEqualVector(t, 1e-6, Vec3(-1, 0, 0), Vector3X.MulQuat(q90.Mul(q90)))

	inv := q90.Conjugate()
	TolAssertEqualVector(t, 1e-6, Vector3X, Vector3X.MulQuat(q90).MulQuat(inv))
}

func TestMatrix4Transform(t *testing.T) {
	pos := Vec3(1, 2, 3)
	quat := NewQuatAxisAngle(Vec3(1, 1, 0).Normal(), DegToRad(30))
	scale := Vec3(2, 2, 2)

	var m Matrix4
	m.SetTransform(pos, quat, scale)

	p := Vec3(0.5, -1, 2)
	expect := p.Mul(scale).MulQuat(quat).Add(pos)
	TolAssertEqualVector(t, 1e-5, expect, p.MulMatrix4AsPoint(&m))

	dp, dq, ds := m.Decompose()
	TolAssertEqualVector(t, 1e-5, pos, dp)
	TolAssertEqualVector(t, 1e-5, scale, ds)
	assert.InDelta(t, quat.W, dq.W, 1e-5)
	assert.InDelta(t, quat.X, dq.X, 1e-5)
	assert.InDelta(t, quat.Y, dq.Y, 1e-5)
	assert.InDelta(t, quat.Z, dq.Z, 1e-5)
}

func TestMatrix4Mul(t *testing.T) {
	var parent, child Matrix4
	parent.SetTransform(Vec3(0, 1, 0), NewQuatAxisAngle(Vector3Y, DegToRad(90)), Vector3Scalar(1))
	child.SetTransform(Vec3(1, 0, 0), Quat{W: 1}, Vector3Scalar(1))

	world := parent.Mul(&child)
	// child offset +X rotated 90 degrees about Y becomes -Z
	TolAssertEqualVector(t, 1e-6, Vec3(0, 1, -1), world.Position())

	id := Identity4()
	assert.True(t, id.IsIdentity())
	assert.Equal(t, child, *id.Mul(&child))
}

func TestMatrix4LookAt(t *testing.T) {
	var m Matrix4
	m.LookAt(Vec3(0, 0, 5), Vector3Zero, Vector3Y)
	assert.True(t, m.IsIdentity())

	m.LookAt(Vec3(5, 0, 0), Vector3Zero, Vector3Y)
	var q Quat
	q.SetFromRotationMatrix(&m)
	// forward (-Z) must point from the eye towards the target
	TolAssertEqualVector(t, 1e-6, Vec3(-1, 0, 0), Vec3(0, 0, -1).MulQuat(q))
}

func TestMatrix4Perspective(t *testing.T) {
	var m Matrix4
	m.SetPerspective(90, 1, 1, 10)
	near, w := Vec3(0, 0, -1).MulProjection(&m)
	assert.InDelta(t, -1, near.Z, 1e-6)
	assert.InDelta(t, 1, w, 1e-6)
	far, _ := Vec3(0, 0, -10).MulProjection(&m)
	assert.InDelta(t, 1, far.Z, 1e-5)
	edge, _ := Vec3(1, 1, -1).MulProjection(&m)
	assert.InDelta(t, 1, edge.X, 1e-6)
	assert.InDelta(t, 1, edge.Y, 1e-6)
	_, behind := Vec3(0, 0, 1).MulProjection(&m)
	assert.Less(t, behind, float32(0))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(1), Clamp(float32(3), 0, 1))
	assert.Equal(t, 0, Clamp(-2, 0, 5))
	assert.InDelta(t, 180, RadToDeg(Pi), 1e-4)
}
