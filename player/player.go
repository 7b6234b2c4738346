// SPDX-License-Identifier: GPL-2.0-or-later

// Package player turns button and mouse input into movement frames and
// keeps the view of the local player.
package player

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"quakemove/input"
	qmath "quakemove/math"
	"quakemove/math/mat"
	"quakemove/math/vec"
	"quakemove/pmove"
)

const (
	// mouse pixels per radian
	lookScale = 300
	// keeps the view off the poles
	pitchLimit = math32.Pi/2 - 1e-4

	noClipSlow    = 0.1
	noClipFast    = 5
	noClipDefault = 0.5
)

type Player struct {
	// radians, yaw in [0, 2π)
	Pitch float32
	Yaw   float32

	State pmove.State
}

func New(origin vec.Vec3, pitch, yaw float64) *Player {
	p := &Player{State: pmove.NewState(origin)}
	p.setView(float32(pitch), float32(yaw))
	return p
}

func (p *Player) setView(pitch, yaw float32) {
	p.Pitch = math32.Min(math32.Max(pitch, -pitchLimit), pitchLimit)
	p.Yaw = qmath.RadMod32(yaw)
}

// Look applies mouse motion in pixels.
func (p *Player) Look(dx, dy float64) {
	p.setView(p.Pitch-float32(dy/lookScale), p.Yaw-float32(dx/lookScale))
}

// ViewAngles returns pitch, yaw and roll indexed by pmove.PITCH, YAW, ROLL.
func (p *Player) ViewAngles() vec.Vec3 {
	var a vec.Vec3
	a[pmove.PITCH] = float64(p.Pitch)
	a[pmove.YAW] = float64(p.Yaw)
	return a
}

// Frame builds the movement input for one tick. The move intent is the
// button direction turned by the view yaw only.
func (p *Player) Frame(dt float64, in input.Sample) pmove.Frame {
	var x, z float64
	if in.Left {
		x--
	}
	if in.Right {
		x++
	}
	if in.Forward {
		z--
	}
	if in.Back {
		z++
	}
	move := mat.TransformDirection(mat.RotateY(float64(p.Yaw)), vec.Vec3{x, 0, z})

	scale := noClipDefault
	switch {
	case in.Slow:
		scale = noClipSlow
	case in.Fast:
		scale = noClipFast
	}
	return pmove.Frame{
		Dt:          dt,
		Move:        move,
		ViewAngles:  p.ViewAngles(),
		Jump:        in.Jump,
		NoClipScale: scale,
	}
}

// Prepare applies the look and noclip input of one tick and returns the
// frame to move with.
func (p *Player) Prepare(dt float64, in input.Sample) pmove.Frame {
	p.Look(in.LookX, in.LookY)
	if in.NoClip {
		p.State.NoClip = !p.State.NoClip
	}
	return p.Frame(dt, in)
}

// Move runs the movement for a prepared frame.
func (p *Player) Move(f pmove.Frame, w pmove.Tracer, params pmove.Params) {
	p.State = pmove.Move(f, p.State, w, params)
}

// Update is Prepare followed by Move.
func (p *Player) Update(dt float64, in input.Sample, w pmove.Tracer, params pmove.Params) pmove.Frame {
	f := p.Prepare(dt, in)
	p.Move(f, w, params)
	return f
}

func (p *Player) Origin() vec.Vec3 {
	return p.State.Origin
}

// LookAt is the point one unit in front of the eye along the view.
func (p *Player) LookAt() vec.Vec3 {
	view := mat.RotateY(float64(p.Yaw)).Mul4(mat.RotateX(float64(p.Pitch)))
	return vec.Add(p.State.Origin, mat.TransformDirection(view, vec.Forward))
}

// Camera returns the world to view matrix.
func (p *Player) Camera() mgl32.Mat4 {
	e := p.State.Origin.Float32()
	c := p.LookAt().Float32()
	u := vec.Up.Float32()
	return mgl32.LookAtV(mgl32.Vec3(e), mgl32.Vec3(c), mgl32.Vec3(u))
}
