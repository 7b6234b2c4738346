// SPDX-License-Identifier: GPL-2.0-or-later

// Package mat holds the 4x4 transforms used to place world geometry.
// Matrices are column major mgl64 values and are copied, never aliased.
package mat

import (
	"github.com/go-gl/mathgl/mgl64"

	"quakemove/math/vec"
)

type Mat4 = mgl64.Mat4

func Identity() Mat4 {
	return mgl64.Ident4()
}

func Translate(t vec.Vec3) Mat4 {
	return mgl64.Translate3D(t[0], t[1], t[2])
}

func Scale(s vec.Vec3) Mat4 {
	return mgl64.Scale3D(s[0], s[1], s[2])
}

// Rotate returns a rotation of angle radians around axis.
func Rotate(axis vec.Vec3, angle float64) Mat4 {
	a := axis.Normalize()
	if a == (vec.Vec3{}) {
		return mgl64.Ident4()
	}
	return mgl64.HomogRotate3D(angle, mgl64.Vec3{a[0], a[1], a[2]})
}

func RotateX(angle float64) Mat4 { return mgl64.HomogRotate3DX(angle) }
func RotateY(angle float64) Mat4 { return mgl64.HomogRotate3DY(angle) }
func RotateZ(angle float64) Mat4 { return mgl64.HomogRotate3DZ(angle) }

// TRS composes translate * rotation * scale.
func TRS(t vec.Vec3, r Mat4, s vec.Vec3) Mat4 {
	return Translate(t).Mul4(r).Mul4(Scale(s))
}

// TransformPoint applies m to p including translation and the w divide.
func TransformPoint(m Mat4, p vec.Vec3) vec.Vec3 {
	r := m.Mul4x1(mgl64.Vec4{p[0], p[1], p[2], 1})
	if r[3] != 0 && r[3] != 1 {
		return vec.Vec3{r[0] / r[3], r[1] / r[3], r[2] / r[3]}
	}
	return vec.Vec3{r[0], r[1], r[2]}
}

// TransformDirection applies the rotation/scale part of m to d.
func TransformDirection(m Mat4, d vec.Vec3) vec.Vec3 {
	r := m.Mat3().Mul3x1(mgl64.Vec3{d[0], d[1], d[2]})
	return vec.Vec3{r[0], r[1], r[2]}
}

// Inverse returns the inverse of m, or the zero matrix if m is singular.
func Inverse(m Mat4) Mat4 {
	return m.Inv()
}

// LookAt returns the matrix placing an object at eye facing target.
// It is the inverse of the view matrix returned by View.
func LookAt(eye, target, up vec.Vec3) Mat4 {
	z := vec.Sub(eye, target).Normalize()
	x := vec.Cross(up, z).Normalize()
	y := vec.Cross(z, x)
	return Mat4{
		x[0], x[1], x[2], 0,
		y[0], y[1], y[2], 0,
		z[0], z[1], z[2], 0,
		eye[0], eye[1], eye[2], 1,
	}
}

// View returns the world to camera matrix for an eye at eye looking at target.
func View(eye, target, up vec.Vec3) Mat4 {
	return mgl64.LookAtV(
		mgl64.Vec3{eye[0], eye[1], eye[2]},
		mgl64.Vec3{target[0], target[1], target[2]},
		mgl64.Vec3{up[0], up[1], up[2]})
}
