// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit vrmview functionality.

package math32

// Quat is quaternion with X,Y,Z and W components.
type Quat struct {
	X float32
	Y float32
	Z float32
	W float32
}

// NewQuat returns a new quaternion from the specified components.
func NewQuat(x, y, z, w float32) Quat {
	return Quat{X: x, Y: y, Z: z, W: w}
}

// NewQuatAxisAngle returns a new quaternion from given axis and angle rotation (radians).
func NewQuatAxisAngle(axis Vector3, angle float32) Quat {
	nq := Quat{}
	nq.SetFromAxisAngle(axis, angle)
	return nq
}

// QuatFromArray returns a new quaternion from a float64 x, y, z, w
// quadruple, which is how glTF stores rotations.
func QuatFromArray(a [4]float64) Quat {
	return Quat{X: float32(a[0]), Y: float32(a[1]), Z: float32(a[2]), W: float32(a[3])}
}

// SetIdentity sets this quanternion to the identity quaternion.
func (q *Quat) SetIdentity() {
	q.X = 0
	q.Y = 0
	q.Z = 0
	q.W = 1
}

// IsIdentity returns if this is an identity quaternion.
func (q *Quat) IsIdentity() bool {
	return q.X == 0 && q.Y == 0 && q.Z == 0 && q.W == 1
}

// IsNil returns true if all values are 0 (uninitialized).
func (q *Quat) IsNil() bool {
	return q.X == 0 && q.Y == 0 && q.Z == 0 && q.W == 0
}

// SetFromAxisAngle sets this quaternion with the rotation
// specified by the given axis and angle.
func (q *Quat) SetFromAxisAngle(axis Vector3, angle float32) {
	halfAngle := angle / 2
	s := Sin(halfAngle)
	q.X = axis.X * s
	q.Y = axis.Y * s
	q.Z = axis.Z * s
	q.W = Cos(halfAngle)
}

// SetFromRotationMatrix sets this quaternion from the specified rotation matrix.
func (q *Quat) SetFromRotationMatrix(m *Matrix4) {
	m11 := m[0]
	m12 := m[4]
	m13 := m[8]
	m21 := m[1]
	m22 := m[5]
	m23 := m[9]
	m31 := m[2]
	m32 := m[6]
	m33 := m[10]
	trace := m11 + m22 + m33

	var s float32
	if trace > 0 {
		s = 0.5 / Sqrt(trace+1.0)
		q.W = 0.25 / s
		q.X = (m32 - m23) * s
		q.Y = (m13 - m31) * s
		q.Z = (m21 - m12) * s
	} else if m11 > m22 && m11 > m33 {
		s = 2.0 * Sqrt(1.0+m11-m22-m33)
		q.W = (m32 - m23) / s
		q.X = 0.25 * s
		q.Y = (m12 + m21) / s
		q.Z = (m13 + m31) / s
	} else if m22 > m33 {
		s = 2.0 * Sqrt(1.0+m22-m11-m33)
		q.W = (m13 - m31) / s
		q.X = (m12 + m21) / s
		q.Y = 0.25 * s
		q.Z = (m23 + m32) / s
	} else {
		s = 2.0 * Sqrt(1.0+m33-m11-m22)
		q.W = (m21 - m12) / s
		q.X = (m13 + m31) / s
		q.Y = (m23 + m32) / s
		q.Z = 0.25 * s
	}
}

// SetConjugate sets this quaternion to its conjugate.
func (q *Quat) SetConjugate() {
	q.X *= -1
	q.Y *= -1
	q.Z *= -1
}

// Conjugate returns the conjugate of this quaternion.
func (q Quat) Conjugate() Quat {
	q.SetConjugate()
	return q
}

// Length returns the length of this quaternion
func (q Quat) Length() float32 {
	return Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize normalizes this quaternion.
func (q *Quat) Normalize() {
	l := q.Length()
	if l == 0 {
		q.SetIdentity()
		return
	}
	l = 1 / l
	q.X *= l
	q.Y *= l
	q.Z *= l
	q.W *= l
}

// MulQuats set this quaternion to the multiplication of a by b.
func (q *Quat) MulQuats(a, b Quat) {
	// from http://www.euclideanspace.com/maths/algebra/realNormedAlgebra/quaternions/code/index.htm
	qax := a.X
	qay := a.Y
	qaz := a.Z
	qaw := a.W
	qbx := b.X
	qby := b.Y
	qbz := b.Z
	qbw := b.W

	q.X = qax*qbw + qaw*qbx + qay*qbz - qaz*qby
	q.Y = qay*qbw + qaw*qby + qaz*qbx - qax*qbz
	q.Z = qaz*qbw + qaw*qbz + qax*qby - qay*qbx
	q.W = qaw*qbw - qax*qbx - qay*qby - qaz*qbz
}

// SetMul sets this quaternion to the multiplication of itself by other.
func (q *Quat) SetMul(other Quat) {
	q.MulQuats(*q, other)
}

// Mul returns returns multiplication of this quaternion with other
func (q Quat) Mul(other Quat) Quat {
	q.SetMul(other)
	return q
}
