// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit vrmview functionality.

package math32

import "fmt"

// Vector3 is a 3D vector/point with X, Y and Z components.
type Vector3 struct {
	X float32
	Y float32
	Z float32
}

// Vec3 returns a new [Vector3] with the given x, y and z components.
func Vec3(x, y, z float32) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Vector3Scalar returns a new [Vector3] with all components set to the given scalar value.
func Vector3Scalar(scalar float32) Vector3 {
	return Vector3{X: scalar, Y: scalar, Z: scalar}
}

// Vector3FromArray returns a new [Vector3] from a float64 triple,
// which is how glTF stores translations and scales.
func Vector3FromArray(a [3]float64) Vector3 {
	return Vector3{X: float32(a[0]), Y: float32(a[1]), Z: float32(a[2])}
}

var (
	// Vector3Zero is the zero vector.
	Vector3Zero = Vector3{}

	// Vector3X is the unit vector along +X.
	Vector3X = Vector3{1, 0, 0}

	// Vector3Y is the unit vector along +Y, the up direction.
	Vector3Y = Vector3{0, 1, 0}

	// Vector3Z is the unit vector along +Z.
	Vector3Z = Vector3{0, 0, 1}
)

// Set sets this vector X, Y and Z components.
func (v *Vector3) Set(x, y, z float32) {
	v.X = x
	v.Y = y
	v.Z = z
}

// String implements the [fmt.Stringer] interface.
func (v Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// IsNil returns true if all values are 0 (uninitialized).
func (v Vector3) IsNil() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Add adds other vector to this one and returns result in a new vector.
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// SetAdd sets this to addition with other vector (i.e., += or plus-equals).
func (v *Vector3) SetAdd(other Vector3) {
	v.X += other.X
	v.Y += other.Y
	v.Z += other.Z
}

// Sub subtracts other vector from this one and returns result in new vector.
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// MulScalar multiplies each component of this vector by the scalar s and returns resulting vector.
func (v Vector3) MulScalar(s float32) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Mul multiplies each component of this vector by the corresponding one from other
// and returns resulting vector.
func (v Vector3) Mul(other Vector3) Vector3 {
	return Vector3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Negate returns vector with each component negated.
func (v Vector3) Negate() Vector3 {
	return Vector3{-v.X, -v.Y, -v.Z}
}

// Abs returns vector with Abs of each component.
func (v Vector3) Abs() Vector3 {
	return Vector3{Abs(v.X), Abs(v.Y), Abs(v.Z)}
}

// Dot returns the dot product of this vector with other.
func (v Vector3) Dot(other Vector3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// LengthSquared returns the length squared of this vector.
// LengthSquared can be used to compare the lengths of vectors.
func (v Vector3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the length of this vector.
func (v Vector3) Length() float32 {
	return Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normal returns this vector divided by its length (its unit vector).
// The zero vector is returned unchanged.
func (v Vector3) Normal() Vector3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.MulScalar(1 / l)
}

// DistanceTo returns the distance of this point to other.
func (v Vector3) DistanceTo(other Vector3) float32 {
	return v.Sub(other).Length()
}

// Cross returns the cross product of this vector with other.
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{v.Y*other.Z - v.Z*other.Y, v.Z*other.X - v.X*other.Z, v.X*other.Y - v.Y*other.X}
}

// MulQuat returns vector multiplied by specified quaternion and
// then by the quaternion inverse.
// It basically applies the rotation encoded in the quaternion to this vector.
func (v Vector3) MulQuat(q Quat) Vector3 {
	qx := q.X
	qy := q.Y
	qz := q.Z
	qw := q.W
	// calculate quat * vector
	ix := qw*v.X + qy*v.Z - qz*v.Y
	iy := qw*v.Y + qz*v.X - qx*v.Z
	iz := qw*v.Z + qx*v.Y - qy*v.X
	iw := -qx*v.X - qy*v.Y - qz*v.Z
	// calculate result * inverse quat
	return Vector3{ix*qw + iw*-qx + iy*-qz - iz*-qy,
		iy*qw + iw*-qy + iz*-qx - ix*-qz,
		iz*qw + iw*-qz + ix*-qy - iy*-qx}
}

// SetMulQuat multiplies this vector by the specified quaternion,
// applying the rotation it encodes.
func (v *Vector3) SetMulQuat(q Quat) {
	*v = v.MulQuat(q)
}

// MulMatrix4AsPoint returns this vector, treated as a point (w = 1),
// transformed by the given matrix, without the perspective divide.
func (v Vector3) MulMatrix4AsPoint(m *Matrix4) Vector3 {
	return Vector3{m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12],
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13],
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]}
}

// MulMatrix4AsVector returns this vector, treated as a direction (w = 0),
// transformed by the given matrix.
func (v Vector3) MulMatrix4AsVector(m *Matrix4) Vector3 {
	return Vector3{m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z}
}

// MulProjection returns this point projected by the given
// view-projection matrix into normalized device coordinates,
// along with the clip-space w, which is <= 0 for points behind the camera.
func (v Vector3) MulProjection(m *Matrix4) (Vector3, float32) {
	w := m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]
	p := v.MulMatrix4AsPoint(m)
	if w == 0 {
		return p, w
	}
	return p.MulScalar(1 / w), w
}

// IsEqualTol returns true if all components of this vector are within
// tol of those of other.
func (v Vector3) IsEqualTol(other Vector3, tol float32) bool {
	return Abs(v.X-other.X) <= tol && Abs(v.Y-other.Y) <= tol && Abs(v.Z-other.Z) <= tol
}
