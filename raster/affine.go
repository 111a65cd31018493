// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import "github.com/chewxy/math32"

// Vec2 is a 2D point or vector.
type Vec2 struct {
	X, Y float32
}

// Mat3 is a 2D affine transform stored as a 3x3 matrix in row-major
// order, the third row always implicitly (0, 0, 1). Its method set
// mirrors the Translate2D/Rotate2D/Scale2D/Mul/MulVec2AsPoint shape of
// cogentcore's mat32.Matrix2, built here over chewxy/math32's scalar
// trig functions rather than vendoring a second vector-math package.
type Mat3 struct {
	XX, YX float32
	XY, YY float32
	X0, Y0 float32
}

// Identity3 is the identity transform.
func Identity3() Mat3 {
	return Mat3{XX: 1, YY: 1}
}

// Translate2D returns the identity transform translated by (x, y).
func Translate2D(x, y float32) Mat3 {
	m := Identity3()
	m.X0, m.Y0 = x, y
	return m
}

// Scale2D returns the identity transform scaled by (sx, sy) about the origin.
func Scale2D(sx, sy float32) Mat3 {
	return Mat3{XX: sx, YY: sy}
}

// Rotate2D returns the identity transform rotated by angle radians
// counterclockwise about the origin.
func Rotate2D(angle float32) Mat3 {
	s, c := math32.Sin(angle), math32.Cos(angle)
	return Mat3{XX: c, YX: s, XY: -s, YY: c}
}

// Shear2D returns the identity transform sheared by (shx, shy).
func Shear2D(shx, shy float32) Mat3 {
	return Mat3{XX: 1, YY: 1, XY: shx, YX: shy}
}

// Mul returns a.Mul(b), the transform that applies b first, then a.
func (a Mat3) Mul(b Mat3) Mat3 {
	return Mat3{
		XX: a.XX*b.XX + a.XY*b.YX,
		YX: a.YX*b.XX + a.YY*b.YX,
		XY: a.XX*b.XY + a.XY*b.YY,
		YY: a.YX*b.XY + a.YY*b.YY,
		X0: a.XX*b.X0 + a.XY*b.Y0 + a.X0,
		Y0: a.YX*b.X0 + a.YY*b.Y0 + a.Y0,
	}
}

// MulVec2AsPoint transforms p as a point (translation applies).
func (a Mat3) MulVec2AsPoint(p Vec2) Vec2 {
	return Vec2{
		X: a.XX*p.X + a.XY*p.Y + a.X0,
		Y: a.YX*p.X + a.YY*p.Y + a.Y0,
	}
}

// MulVec2AsVector transforms p as a direction (translation does not apply).
func (a Mat3) MulVec2AsVector(p Vec2) Vec2 {
	return Vec2{
		X: a.XX*p.X + a.XY*p.Y,
		Y: a.YX*p.X + a.YY*p.Y,
	}
}
