// SPDX-License-Identifier: GPL-2.0-or-later

// Package cvars registers the movement and host variables.
package cvars

import (
	"strconv"

	"quakemove/cvar"
	"quakemove/pmove"
)

var (
	HostFrameRate    *cvar.Cvar
	HostMaxFrameTime *cvar.Cvar
	HostTimeScale    *cvar.Cvar
	SvAccelerate     *cvar.Cvar
	SvAirAccelerate  *cvar.Cvar
	SvEdgeFriction   *cvar.Cvar
	SvFriction       *cvar.Cvar
	SvGravity        *cvar.Cvar
	SvJumpSpeed      *cvar.Cvar
	SvMaxSpeed       *cvar.Cvar
	SvNoClipSpeed    *cvar.Cvar
	SvStepSize       *cvar.Cvar
)

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func init() {
	d := pmove.DefaultParams()
	HostFrameRate = cvar.MustRegister("host_framerate", "0", cvar.NONE)
	HostMaxFrameTime = cvar.MustRegister("host_maxframetime", "0.1", cvar.ARCHIVE)
	HostTimeScale = cvar.MustRegister("host_timescale", "0", cvar.NONE)
	SvAccelerate = cvar.MustRegister("sv_accelerate", ftoa(d.Accelerate), cvar.NOTIFY)
	SvAirAccelerate = cvar.MustRegister("sv_airaccelerate", ftoa(d.AirAccelerate), cvar.NOTIFY)
	SvEdgeFriction = cvar.MustRegister("sv_edgefriction", ftoa(d.EdgeFriction), cvar.NOTIFY)
	SvFriction = cvar.MustRegister("sv_friction", ftoa(d.Friction), cvar.NOTIFY)
	SvGravity = cvar.MustRegister("sv_gravity", ftoa(d.Gravity), cvar.NOTIFY)
	SvJumpSpeed = cvar.MustRegister("sv_jumpspeed", ftoa(d.JumpVelocity), cvar.NOTIFY)
	SvMaxSpeed = cvar.MustRegister("sv_maxspeed", ftoa(d.MaxWishSpeed), cvar.NOTIFY)
	SvNoClipSpeed = cvar.MustRegister("sv_noclipspeed", ftoa(d.NoClipSpeed), cvar.NOTIFY)
	SvStepSize = cvar.MustRegister("sv_stepsize", ftoa(d.StepHeight), cvar.NOTIFY)
}

// MoveParams returns the movement parameters with the current values of
// the sv_ variables.
func MoveParams() pmove.Params {
	p := pmove.DefaultParams()
	p.Accelerate = SvAccelerate.Value()
	p.AirAccelerate = SvAirAccelerate.Value()
	p.EdgeFriction = SvEdgeFriction.Value()
	p.Friction = SvFriction.Value()
	p.Gravity = SvGravity.Value()
	p.JumpVelocity = SvJumpSpeed.Value()
	p.MaxWishSpeed = SvMaxSpeed.Value()
	p.NoClipSpeed = SvNoClipSpeed.Value()
	p.StepHeight = SvStepSize.Value()
	return p
}
