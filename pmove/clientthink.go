// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"math"

	"quakemove/collision"
	"quakemove/math/mat"
	"quakemove/math/vec"
)

// angleVectors rotates the basis by yaw around UP, then by pitch around the
// rotated side axis.
func (m *mover) angleVectors() {
	r := mat.RotateY(m.f.ViewAngles[YAW]).Mul4(mat.RotateX(m.f.ViewAngles[PITCH]))
	m.s.Forward = mat.TransformDirection(r, vec.Forward)
	m.s.Right = mat.TransformDirection(r, vec.Right)
	m.s.Up = mat.TransformDirection(r, vec.Up)
}

// addCorrectGravity applies the first half of gravity before moving.
func (m *mover) addCorrectGravity() {
	m.s.Velocity[UP] -= m.p.Gravity * 0.5 * m.f.Dt
	m.s.Velocity[UP] += m.s.BaseVelocity[UP] * m.f.Dt
	m.s.BaseVelocity[UP] = 0
}

// fixupGravityVelocity applies the second half of gravity after moving.
func (m *mover) fixupGravityVelocity() {
	m.s.Velocity[UP] -= m.p.Gravity * 0.5 * m.f.Dt
}

func (m *mover) checkJump() {
	if !m.f.Jump {
		m.s.WasJumpPressed = false
		return
	}
	if !m.s.OnGround || m.s.WasJumpPressed {
		// in air or still holding the key from the last jump
		return
	}
	m.s.OnGround = false
	m.s.Ground = nil
	m.s.Velocity[UP] = m.p.JumpVelocity
	m.fixupGravityVelocity()
	m.s.WasJumpPressed = true
}

// friction slows a grounded player. If the leading edge is over a dropoff
// the friction is increased.
func (m *mover) friction() {
	v := m.s.Velocity
	speed := v.Length()
	if speed < m.p.SmallestSpeed {
		return
	}

	ahead := m.p.FrictionLookAhead / speed
	start := vec.Vec3{
		m.s.Origin[SIDE] + v[SIDE]*ahead,
		m.s.Origin[UP] - m.p.CoreHeight + m.p.ContactOffset,
		m.s.Origin[FORWARD] + v[FORWARD]*ahead,
	}
	r := collision.Ray{
		Origin: start,
		Vector: vec.Vec3{0, -(m.p.FrictionTraceRadius + m.p.ContactOffset), 0},
	}
	friction := m.p.Friction
	if _, ok := m.trace(r, "friction"); !ok {
		friction *= m.p.EdgeFriction
	}
	friction *= m.s.Friction

	control := math.Max(speed, m.p.SmallestSpeed)
	newspeed := speed - control*friction*m.f.Dt
	if newspeed <= 0 {
		m.s.Velocity = vec.Vec3{}
		return
	}
	m.s.Velocity = vec.Scale(newspeed/speed, v)
}

// accelerate is the ground acceleration. It replaces the velocity with the
// wish direction scaled to the accelerated speed.
func (m *mover) accelerate(wishdir vec.Vec3, wishspeed, accel float64) {
	currentspeed := vec.Dot(m.s.Velocity, wishdir)
	addspeed := wishspeed - currentspeed
	if addspeed <= 0 {
		return
	}
	accelspeed := math.Min(accel*m.f.Dt*wishspeed*m.s.Friction, addspeed)
	m.s.Velocity = vec.Scale(accelspeed, wishdir)
}

func (m *mover) airAccelerate(wishdir vec.Vec3, wishspeed, accel float64) {
	wishspd := math.Min(wishspeed, m.p.MaxWishSpeed)
	addspeed := wishspd - vec.Dot(m.s.Velocity, wishdir)
	if addspeed <= 0 {
		return
	}
	accelspeed := math.Min(accel*wishspd*m.f.Dt*m.s.Friction, addspeed)
	m.s.Velocity = vec.MA(m.s.Velocity, accelspeed, wishdir)
}

func (m *mover) airMove() {
	wishvel := m.f.Move
	wishspeed := wishvel.Length() * m.p.MaxWishSpeed
	m.airAccelerate(wishvel.Normalize(), wishspeed, m.p.AirAccelerate)
	m.s.Velocity = vec.Add(m.s.Velocity, m.s.BaseVelocity)
	m.flyMove()
}

// noclipMove flies along the view without touching the world.
func (m *mover) noclipMove() {
	fmove := vec.Dot(m.f.Move, flat(m.s.Forward))
	smove := vec.Dot(m.f.Move, flat(m.s.Right))
	wish := vec.Add(vec.Scale(fmove, m.s.Forward), vec.Scale(smove, m.s.Right))

	scale := m.f.NoClipScale
	if scale == 0 {
		scale = 1
	}
	m.s.Origin = vec.MA(m.s.Origin, scale*m.p.NoClipSpeed, wish)
	m.s.Velocity = vec.Vec3{}
	m.s.OnGround = false
	m.s.Ground = nil
}

// flat returns the horizontal unit direction of v.
func flat(v vec.Vec3) vec.Vec3 {
	return v.Horizontal().Normalize()
}
