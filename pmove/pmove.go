// SPDX-License-Identifier: GPL-2.0-or-later

// Package pmove advances a player through a static triangle world.
//
// Move is a pure function of the frame, the state and the world: it works on
// a copy of the state and returns the result. The world is only read.
package pmove

import (
	"quakemove/collision"
	"quakemove/math/vec"
)

type MoveType int

const (
	Walk MoveType = iota
	Fly
)

func (t MoveType) String() string {
	switch t {
	case Walk:
		return "walk"
	case Fly:
		return "fly"
	}
	return "unknown"
}

// axis indices
const (
	SIDE    = 0
	UP      = 1
	FORWARD = 2
)

// angle indices
const (
	PITCH = SIDE
	YAW   = UP
	ROLL  = FORWARD
)

const (
	// minimum normal up component to stand on after categorizing
	groundNormal = 0.71
	// minimum normal up component of a walkable surface for clipping and stepping
	walkableNormal = 0.7
)

// Tracer answers ray queries against the world. *world.World implements it.
type Tracer interface {
	Query(r collision.Ray, tag string) (collision.Intersection, bool)
}

// State is the per player simulation state carried between ticks.
type State struct {
	Origin   vec.Vec3
	Velocity vec.Vec3
	// BaseVelocity is an external push like a conveyor.
	BaseVelocity vec.Vec3
	// Friction is a per entity multiplier, normally 1.
	Friction float64
	MoveType MoveType

	Forward vec.Vec3
	Right   vec.Vec3
	Up      vec.Vec3

	OnGround bool
	// Ground is the last downward probe hit, nil if nothing was below.
	Ground *collision.Intersection

	WasJumpPressed bool
	NoClip         bool
	DuckTime       float64
}

// NewState returns a walking player at origin.
func NewState(origin vec.Vec3) State {
	return State{
		Origin:   origin,
		Friction: 1,
		MoveType: Walk,
		Forward:  vec.Forward,
		Right:    vec.Right,
		Up:       vec.Up,
	}
}

// Frame is the input of one tick.
type Frame struct {
	Dt float64
	// Move is the desired world space walk direction, not yet scaled to speed.
	Move vec.Vec3
	// ViewAngles holds pitch, yaw and roll in radians indexed by PITCH, YAW, ROLL.
	ViewAngles vec.Vec3
	Jump       bool
	Duck       bool
	// NoClipScale scales the free flight speed, 0 means 1.
	NoClipScale float64
}

// Params are the tunables of the movement model.
type Params struct {
	Gravity             float64
	Friction            float64
	EdgeFriction        float64
	CoreHeight          float64
	Accelerate          float64
	AirAccelerate       float64
	MaxWishSpeed        float64
	JumpVelocity        float64
	StepHeight          float64
	FastUpLimit         float64
	GroundTraceMargin   float64
	FrictionTraceRadius float64
	FrictionLookAhead   float64
	FeetProbe           float64
	MaxBumps            int
	ContactOffset       float64
	SmallestSpeed       float64
	NoClipSpeed         float64
}

func DefaultParams() Params {
	return Params{
		Gravity:             9.8,
		Friction:            4,
		EdgeFriction:        2,
		CoreHeight:          0.7,
		Accelerate:          2,
		AirAccelerate:       2,
		MaxWishSpeed:        4,
		JumpVelocity:        4,
		StepHeight:          0.1,
		FastUpLimit:         1,
		GroundTraceMargin:   0.1,
		FrictionTraceRadius: 0.1,
		FrictionLookAhead:   16,
		FeetProbe:           0.1,
		MaxBumps:            4,
		ContactOffset:       0.001,
		SmallestSpeed:       1e-4,
		NoClipSpeed:         0.05,
	}
}

// mover carries one tick. Trial moves copy it.
type mover struct {
	s State
	f Frame
	p Params
	w Tracer
}

// Move runs one tick of player movement and returns the new state.
func Move(f Frame, s State, w Tracer, p Params) State {
	m := mover{s: s, f: f, p: p, w: w}
	m.playerMove()
	return m.s
}

func (m *mover) playerMove() {
	m.reduceTimers()
	m.angleVectors()

	if m.s.NoClip {
		m.noclipMove()
		return
	}

	m.categorizePosition()

	switch m.s.MoveType {
	case Fly:
		m.checkJump()
		m.s.Velocity = vec.Add(m.s.Velocity, m.s.BaseVelocity)
		m.flyMove()
		m.s.Velocity = vec.Sub(m.s.Velocity, m.s.BaseVelocity)

	case Walk:
		m.addCorrectGravity()
		m.checkJump()
		if m.s.OnGround {
			m.s.Velocity[UP] = 0
			m.friction()
		}
		if m.s.OnGround {
			m.walkMove()
		} else {
			m.airMove()
		}
		m.categorizePosition()
		m.s.Velocity = vec.Sub(m.s.Velocity, m.s.BaseVelocity)
		m.fixupGravityVelocity()
		if m.s.OnGround {
			m.s.Velocity[UP] = 0
		}
	}
}

// trace queries the world and turns the hit normal against the ray.
func (m *mover) trace(r collision.Ray, tag string) (collision.Intersection, bool) {
	t, ok := m.w.Query(r, tag)
	if ok && vec.Dot(t.Normal, r.Vector) > 0 {
		t.Normal = vec.Scale(-1, t.Normal)
	}
	return t, ok
}

// feet is the bottom of the player core.
func (m *mover) feet() vec.Vec3 {
	f := m.s.Origin
	f[UP] -= m.p.CoreHeight
	return f
}

func (m *mover) reduceTimers() {
	m.s.DuckTime -= m.f.Dt
	if m.s.DuckTime < 0 {
		m.s.DuckTime = 0
	}
}

func (m *mover) categorizePosition() {
	if m.s.Velocity[UP] > m.p.FastUpLimit {
		// launching
		m.s.OnGround = false
		m.s.Ground = nil
		return
	}
	r := collision.Ray{
		Origin: m.s.Origin,
		Vector: vec.Vec3{0, -(m.p.CoreHeight + m.p.GroundTraceMargin), 0},
	}
	t, ok := m.trace(r, "categorize")
	if !ok || t.Normal[UP] < groundNormal {
		// nothing below or too steep
		m.s.OnGround = false
		m.s.Ground = nil
		return
	}
	m.s.OnGround = true
	m.s.Ground = &t
}
