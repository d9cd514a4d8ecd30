// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit vrmview functionality.

// Package math32 is a float32 based vector, quaternion and matrix package
// for placing avatars, joints and cameras in 3D space.
package math32

import (
	"cmp"
	"math"

	"github.com/chewxy/math32"
)

// These are mostly just wrappers around chewxy/math32, which has
// some optimized implementations.

// Mathematical constants.
const (
	Pi = math.Pi

	// DegToRadFactor is the number of radians per degree.
	DegToRadFactor = Pi / 180

	// RadToDegFactor is the number of degrees per radian.
	RadToDegFactor = 180 / Pi
)

// DegToRad converts a number from degrees to radians
func DegToRad(degrees float32) float32 {
	return degrees * DegToRadFactor
}

// RadToDeg converts a number from radians to degrees
func RadToDeg(radians float32) float32 {
	return radians * RadToDegFactor
}

// Abs returns the absolute value of x.
func Abs(x float32) float32 {
	return math32.Abs(x)
}

// Sign returns -1 if x < 0 and 1 otherwise.
func Sign(x float32) float32 {
	if x < 0 {
		return -1
	}
	return 1
}

// Atan2 returns the arc tangent of y/x, using
// the signs of the two to determine the quadrant
// of the return value.
func Atan2(y, x float32) float32 {
	return math32.Atan2(y, x)
}

// Cos returns the cosine of the radian argument x.
func Cos(x float32) float32 {
	return math32.Cos(x)
}

// Sin returns the sine of the radian argument x.
func Sin(x float32) float32 {
	return math32.Sin(x)
}

// Sqrt returns the square root of x.
//
// Special cases are:
//
//	Sqrt(+Inf) = +Inf
//	Sqrt(±0) = ±0
//	Sqrt(x < 0) = NaN
//	Sqrt(NaN) = NaN
func Sqrt(x float32) float32 {
	return math32.Sqrt(x)
}

// Tan returns the tangent of the radian argument x.
func Tan(x float32) float32 {
	return math32.Tan(x)
}

// Floor returns the greatest integer value less than or equal to x.
func Floor(x float32) float32 {
	return math32.Floor(x)
}

// Ceil returns the least integer value greater than or equal to x.
func Ceil(x float32) float32 {
	return math32.Ceil(x)
}

// Max returns the larger of x or y.
func Max(x, y float32) float32 {
	return math32.Max(x, y)
}

// Min returns the smaller of x or y.
func Min(x, y float32) float32 {
	return math32.Min(x, y)
}

//////////////////////////////////////////////////////////////
// Special additions to math. functions

// Clamp clamps x to the provided closed interval [a, b]
func Clamp[T cmp.Ordered](x, a, b T) T {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}
