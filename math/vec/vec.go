// SPDX-License-Identifier: GPL-2.0-or-later

package vec

import (
	"math"
)

// Vec3 is a value type. Indices follow the world axes: 0 side, 1 up, 2 forward.
type Vec3 [3]float64

var (
	Up      = Vec3{0, 1, 0}
	Right   = Vec3{1, 0, 0}
	Forward = Vec3{0, 0, -1}
)

func FromFloat32(a [3]float32) Vec3 {
	return Vec3{float64(a[0]), float64(a[1]), float64(a[2])}
}

func (v Vec3) Float32() [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}

// Length returns the length of the vector
func (v Vec3) Length() float64 {
	return math.Sqrt(Dot(v, v))
}

// Add returns a + b
func Add(a, b Vec3) Vec3 {
	return Vec3{
		a[0] + b[0],
		a[1] + b[1],
		a[2] + b[2],
	}
}

// Sub returns a - b
func Sub(a, b Vec3) Vec3 {
	return Vec3{
		a[0] - b[0],
		a[1] - b[1],
		a[2] - b[2],
	}
}

// Scale returns the vector multiplied by the skalar s
func Scale(s float64, v Vec3) Vec3 {
	return Vec3{
		v[0] * s,
		v[1] * s,
		v[2] * s,
	}
}

// MA returns a + s*b
func MA(a Vec3, s float64, b Vec3) Vec3 {
	return Vec3{
		a[0] + s*b[0],
		a[1] + s*b[1],
		a[2] + s*b[2],
	}
}

// Normalize returns the normalized vector. The null vector stays null.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Scale(1/l, v)
}

// Dot returns a dot b
func Dot(a, b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross returns a cross b
func Cross(a, b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Lerp computes a weighted average between two points
func Lerp(a, b Vec3, frac float64) Vec3 {
	fi := 1 - frac
	return Vec3{
		fi*a[0] + frac*b[0],
		fi*a[1] + frac*b[1],
		fi*a[2] + frac*b[2],
	}
}

// Horizontal drops the up component.
func (v Vec3) Horizontal() Vec3 {
	return Vec3{v[0], 0, v[2]}
}

// Finite reports whether no component is NaN or Inf.
func (v Vec3) Finite() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func minmax(a, b float64) (float64, float64) {
	if a < b {
		return a, b
	}
	return b, a
}

// MinMax returns the component wise minimum and maximum of a and b.
func MinMax(a, b Vec3) (Vec3, Vec3) {
	var r, s Vec3
	r[0], s[0] = minmax(a[0], b[0])
	r[1], s[1] = minmax(a[1], b[1])
	r[2], s[2] = minmax(a[2], b[2])
	return r, s
}
