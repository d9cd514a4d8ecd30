// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit vrmview functionality.

package math32

// Matrix4 is 4x4 matrix organized internally as column matrix.
type Matrix4 [16]float32

// Identity4 returns a new identity [Matrix4] matrix.
func Identity4() *Matrix4 {
	m := &Matrix4{}
	m.SetIdentity()
	return m
}

// Matrix4FromArray returns a new [Matrix4] from a column-major float64
// array, which is how glTF stores node matrices.
func Matrix4FromArray(a [16]float64) Matrix4 {
	var m Matrix4
	for i := range a {
		m[i] = float32(a[i])
	}
	return m
}

// Set sets all the elements of this matrix row by row starting at row1, column1,
// row1, column2, row1, column3 and so forth.
func (m *Matrix4) Set(n11, n12, n13, n14, n21, n22, n23, n24, n31, n32, n33, n34, n41, n42, n43, n44 float32) {
	m[0] = n11
	m[4] = n12
	m[8] = n13
	m[12] = n14
	m[1] = n21
	m[5] = n22
	m[9] = n23
	m[13] = n24
	m[2] = n31
	m[6] = n32
	m[10] = n33
	m[14] = n34
	m[3] = n41
	m[7] = n42
	m[11] = n43
	m[15] = n44
}

// SetIdentity sets this matrix as the identity matrix.
func (m *Matrix4) SetIdentity() {
	m.Set(
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	)
}

// IsIdentity returns true if this matrix is the identity matrix.
func (m *Matrix4) IsIdentity() bool {
	return *m == *Identity4()
}

// IsZero returns true if all elements are 0, as for an unset matrix.
func (m *Matrix4) IsZero() bool {
	return *m == Matrix4{}
}

// CopyFrom copies from another matrix.
func (m *Matrix4) CopyFrom(src *Matrix4) {
	copy(m[:], src[:])
}

// MulMatrices sets this matrix as matrix multiplication a by b (i.e., b*a).
func (m *Matrix4) MulMatrices(a, b *Matrix4) {
	a11 := a[0]
	a12 := a[4]
	a13 := a[8]
	a14 := a[12]
	a21 := a[1]
	a22 := a[5]
	a23 := a[9]
	a24 := a[13]
	a31 := a[2]
	a32 := a[6]
	a33 := a[10]
	a34 := a[14]
	a41 := a[3]
	a42 := a[7]
	a43 := a[11]
	a44 := a[15]

	b11 := b[0]
	b12 := b[4]
	b13 := b[8]
	b14 := b[12]
	b21 := b[1]
	b22 := b[5]
	b23 := b[9]
	b24 := b[13]
	b31 := b[2]
	b32 := b[6]
	b33 := b[10]
	b34 := b[14]
	b41 := b[3]
	b42 := b[7]
	b43 := b[11]
	b44 := b[15]

	m[0] = a11*b11 + a12*b21 + a13*b31 + a14*b41
	m[4] = a11*b12 + a12*b22 + a13*b32 + a14*b42
	m[8] = a11*b13 + a12*b23 + a13*b33 + a14*b43
	m[12] = a11*b14 + a12*b24 + a13*b34 + a14*b44

	m[1] = a21*b11 + a22*b21 + a23*b31 + a24*b41
	m[5] = a21*b12 + a22*b22 + a23*b32 + a24*b42
	m[9] = a21*b13 + a22*b23 + a23*b33 + a24*b43
	m[13] = a21*b14 + a22*b24 + a23*b34 + a24*b44

	m[2] = a31*b11 + a32*b21 + a33*b31 + a34*b41
	m[6] = a31*b12 + a32*b22 + a33*b32 + a34*b42
	m[10] = a31*b13 + a32*b23 + a33*b33 + a34*b43
	m[14] = a31*b14 + a32*b24 + a33*b34 + a34*b44

	m[3] = a41*b11 + a42*b21 + a43*b31 + a44*b41
	m[7] = a41*b12 + a42*b22 + a43*b32 + a44*b42
	m[11] = a41*b13 + a42*b23 + a43*b33 + a44*b43
	m[15] = a41*b14 + a42*b24 + a43*b34 + a44*b44
}

// Mul returns this matrix times other matrix (this matrix is unchanged)
func (m *Matrix4) Mul(other *Matrix4) *Matrix4 {
	nm := &Matrix4{}
	nm.MulMatrices(m, other)
	return nm
}

// SetTransform sets this matrix to a transformation matrix for the specified position,
// rotation specified by the quaternion and scale.
func (m *Matrix4) SetTransform(pos Vector3, quat Quat, scale Vector3) {
	x := quat.X
	y := quat.Y
	z := quat.Z
	w := quat.W

	x2 := x + x
	y2 := y + y
	z2 := z + z
	xx := x * x2
	xy := x * y2
	xz := x * z2
	yy := y * y2
	yz := y * z2
	zz := z * z2
	wx := w * x2
	wy := w * y2
	wz := w * z2

	m[0] = (1 - (yy + zz)) * scale.X
	m[1] = (xy + wz) * scale.X
	m[2] = (xz - wy) * scale.X
	m[3] = 0

	m[4] = (xy - wz) * scale.Y
	m[5] = (1 - (xx + zz)) * scale.Y
	m[6] = (yz + wx) * scale.Y
	m[7] = 0

	m[8] = (xz + wy) * scale.Z
	m[9] = (yz - wx) * scale.Z
	m[10] = (1 - (xx + yy)) * scale.Z
	m[11] = 0

	m[12] = pos.X
	m[13] = pos.Y
	m[14] = pos.Z
	m[15] = 1
}

// Decompose returns the position, rotation quaternion and scale
// encoded in this transformation matrix.
func (m *Matrix4) Decompose() (pos Vector3, quat Quat, scale Vector3) {
	sx := Vec3(m[0], m[1], m[2]).Length()
	sy := Vec3(m[4], m[5], m[6]).Length()
	sz := Vec3(m[8], m[9], m[10]).Length()

	// a negative determinant means one axis is mirrored
	det := m[0]*(m[5]*m[10]-m[9]*m[6]) - m[4]*(m[1]*m[10]-m[9]*m[2]) + m[8]*(m[1]*m[6]-m[5]*m[2])
	if det < 0 {
		sx = -sx
	}

	pos = Vec3(m[12], m[13], m[14])
	scale = Vec3(sx, sy, sz)

	rot := *m
	if sx != 0 {
		rot[0] /= sx
		rot[1] /= sx
		rot[2] /= sx
	}
	if sy != 0 {
		rot[4] /= sy
		rot[5] /= sy
		rot[6] /= sy
	}
	if sz != 0 {
		rot[8] /= sz
		rot[9] /= sz
		rot[10] /= sz
	}
	quat.SetFromRotationMatrix(&rot)
	return
}

// Position returns the translation component of this matrix.
func (m *Matrix4) Position() Vector3 {
	return Vec3(m[12], m[13], m[14])
}

// LookAt sets this matrix to a rotation matrix from the eye point to the
// target, with the given up direction. The -Z axis ends up pointing
// from eye to target.
func (m *Matrix4) LookAt(eye, target, up Vector3) {
	z := eye.Sub(target)
	if z.LengthSquared() == 0 {
		// eye and target are in the same position
		z.Z = 1
	}
	z = z.Normal()
	x := up.Cross(z)
	if x.LengthSquared() == 0 {
		// up and z are parallel
		if Abs(up.Z) == 1 {
			z.X += 0.0001
		} else {
			z.Z += 0.0001
		}
		z = z.Normal()
		x = up.Cross(z)
	}
	x = x.Normal()
	y := z.Cross(x)

	m.SetIdentity()
	m[0] = x.X
	m[1] = x.Y
	m[2] = x.Z
	m[4] = y.X
	m[5] = y.Y
	m[6] = y.Z
	m[8] = z.X
	m[9] = z.Y
	m[10] = z.Z
}

// SetPerspective sets this matrix to a perspective projection matrix
// with the specified vertical field of view in degrees,
// aspect ratio (width / height) and near and far planes.
func (m *Matrix4) SetPerspective(fov, aspect, near, far float32) {
	f := 1 / Tan(DegToRad(fov)*0.5)
	nf := 1 / (near - far)
	m.Set(
		f/aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far+near)*nf, 2*far*near*nf,
		0, 0, -1, 0,
	)
}
