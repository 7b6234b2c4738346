// SPDX-License-Identifier: GPL-2.0-or-later

// Package ballistic moves free falling points that bounce off the world.
package ballistic

import (
	"github.com/google/uuid"

	"quakemove/collision"
	"quakemove/math/vec"
)

const Radius = 0.2

var DefaultGravity = vec.Vec3{0, -9.8, 0}

// Tracer answers ray queries against the world. *world.World implements it.
type Tracer interface {
	Query(r collision.Ray, tag string) (collision.Intersection, bool)
}

type Body struct {
	ID       uuid.UUID
	Position vec.Vec3
	Velocity vec.Vec3
	Gravity  vec.Vec3
	// Radius is only used for drawing, collisions treat the body as a point.
	Radius float64
}

func New(pos vec.Vec3) *Body {
	return &Body{
		ID:       uuid.New(),
		Position: pos,
		Gravity:  DefaultGravity,
		Radius:   Radius,
	}
}

// Step advances the body by dt and reports whether it bounced.
func (b *Body) Step(dt float64, w Tracer) bool {
	gravityDv := vec.Scale(dt, b.Gravity)
	newVelocity := vec.Add(b.Velocity, gravityDv)
	r := collision.Ray{
		Origin: b.Position,
		Vector: vec.Scale(dt, newVelocity),
	}
	t, hit := w.Query(r, "ball")
	if !hit {
		b.Position = r.End()
		b.Velocity = newVelocity
		return false
	}
	b.Velocity, b.Position = reflect(r, b.Velocity, gravityDv, t, dt)
	return true
}

// reflect mirrors the velocity at the moment of impact across the hit plane
// and moves the rest of the frame along the mirrored velocity.
func reflect(r collision.Ray, velocity, gravityDv vec.Vec3, t collision.Intersection, dt float64) (vec.Vec3, vec.Vec3) {
	atCollision := vec.MA(velocity, t.Fraction, gravityDv)
	point := r.At(t.Fraction)

	n := t.Normal
	if vec.Dot(n, r.Vector) > 0 {
		n = vec.Scale(-1, n)
	}
	reflected := atCollision
	if d := vec.Dot(atCollision, n); d < 0 {
		// only bounce off of a plane it moves into
		reflected = vec.MA(atCollision, -2*d, n)
	}

	v := vec.MA(reflected, 1-t.Fraction, gravityDv)
	p := vec.MA(point, dt*(1-t.Fraction), reflected)
	return v, p
}
