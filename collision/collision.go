// SPDX-License-Identifier: GPL-2.0-or-later

// Package collision implements the segment vs triangle test the world
// queries are built on.
package collision

import (
	"quakemove/math/vec"
)

// Epsilon is the tolerance for the parallel check and the near hit rejection.
const Epsilon = 1e-6

// Ray is a finite segment. Vector is a displacement, not a unit direction.
type Ray struct {
	Origin vec.Vec3
	Vector vec.Vec3
}

// End returns the point at fraction 1.
func (r Ray) End() vec.Vec3 {
	return vec.Add(r.Origin, r.Vector)
}

// At returns the point at the given fraction of the segment.
func (r Ray) At(frac float64) vec.Vec3 {
	return vec.MA(r.Origin, frac, r.Vector)
}

// Triangle is one face of the world in world space.
type Triangle struct {
	V0, V1, V2 vec.Vec3
}

// Normal returns the winding dependent unit normal. Degenerate triangles
// have a null normal.
func (t Triangle) Normal() vec.Vec3 {
	return vec.Cross(vec.Sub(t.V1, t.V0), vec.Sub(t.V2, t.V0)).Normalize()
}

// Bounds returns the axis aligned box around the triangle.
func (t Triangle) Bounds() (mins, maxs vec.Vec3) {
	mins, maxs = vec.MinMax(t.V0, t.V1)
	mins, _ = vec.MinMax(mins, t.V2)
	_, maxs = vec.MinMax(maxs, t.V2)
	return mins, maxs
}

// Intersection is a ray hit: where along the ray, what and the face normal.
type Intersection struct {
	// Fraction is the hit position along the ray, 0 start, 1 end.
	Fraction float64
	Triangle Triangle
	Normal   vec.Vec3
}

// Intersect is a non culling Möller–Trumbore test. Back faces are hit too.
// A hit beyond the end of the segment or at its very start is no hit,
// and so is anything computed from NaN or Inf input.
func Intersect(r Ray, t Triangle) (Intersection, bool) {
	edge1 := vec.Sub(t.V1, t.V0)
	edge2 := vec.Sub(t.V2, t.V0)
	h := vec.Cross(r.Vector, edge2)
	a := vec.Dot(edge1, h)
	if a > -Epsilon && a < Epsilon {
		// parallel
		return Intersection{}, false
	}
	f := 1 / a
	s := vec.Sub(r.Origin, t.V0)
	u := f * vec.Dot(s, h)
	if !(u >= 0 && u <= 1) {
		return Intersection{}, false
	}
	q := vec.Cross(s, edge1)
	v := f * vec.Dot(r.Vector, q)
	if !(v >= 0 && u+v <= 1) {
		return Intersection{}, false
	}
	frac := f * vec.Dot(edge2, q)
	if !(frac > Epsilon && frac <= 1) {
		return Intersection{}, false
	}
	return Intersection{
		Fraction: frac,
		Triangle: t,
		Normal:   vec.Cross(edge1, edge2).Normalize(),
	}, true
}
