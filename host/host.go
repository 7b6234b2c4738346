// SPDX-License-Identifier: GPL-2.0-or-later

// Package host runs the frame loop: console, balls, player and the
// sanity checks around them.
package host

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"quakemove/alias"
	"quakemove/ballistic"
	"quakemove/cbuf"
	"quakemove/cmd"
	"quakemove/conlog"
	"quakemove/cvar"
	"quakemove/cvars"
	"quakemove/gametime"
	"quakemove/input"
	"quakemove/player"
	"quakemove/pmove"
	"quakemove/scene"
	"quakemove/trace"
	"quakemove/world"
)

// FallLimit is the height below which the player is considered lost.
const FallLimit = -10

var ErrPlayerFell = errors.New("player fell out of the world")

type Options struct {
	AreaIndex bool
	// Recorder receives frames, state changes and world queries if set.
	Recorder *trace.Recorder
	// Vars defaults to the process wide registry.
	Vars *cvar.Registry
}

type Host struct {
	World    *world.World
	Balls    []*ballistic.Body
	Player   *player.Player
	Recorder *trace.Recorder

	Buttons input.Buttons
	Console cbuf.CommandBuffer

	commands *cmd.Commands
	time     gametime.GameTime
	tick     uint64
}

// New builds the world of s and places the player and balls.
func New(s *scene.Scene, o Options) (*Host, error) {
	h := &Host{
		World:    world.New(world.Options{AreaIndex: o.AreaIndex}),
		Player:   player.New(s.PlayerOrigin, s.PlayerPitch, s.PlayerYaw),
		Recorder: o.Recorder,
		commands: cmd.New(),
	}
	h.World.Rebuild(s.Objects...)
	for _, b := range s.Balls {
		h.Balls = append(h.Balls, ballistic.New(b))
	}
	if h.Recorder != nil {
		h.World.SetTracer(trace.Tee(h.Recorder, trace.LogSink{L: zap.L()}))
	}

	vars := o.Vars
	if vars == nil {
		vars = cvar.Default()
	}
	if err := h.Buttons.Commands(h.commands); err != nil {
		return nil, err
	}
	if err := vars.AddCommands(h.commands); err != nil {
		return nil, err
	}
	aliases := alias.New()
	if err := aliases.Register(h.commands); err != nil {
		return nil, err
	}
	if err := h.addCommands(); err != nil {
		return nil, err
	}
	h.Console.SetCommandExecutors([]cbuf.Efunc{h.commands.Execute, aliases.Execute, vars.Execute})
	conlog.DPrintf("scene %s: %d triangles, checksum %x\n", s.Name, h.World.Len(), h.World.Checksum())
	return h, nil
}

func (h *Host) addCommands() error {
	if err := h.commands.AddListCommand(); err != nil {
		return err
	}
	if err := h.commands.Add("echo", func(a cbuf.Arguments) error {
		conlog.Printf("%s\n", a.ArgumentString())
		return nil
	}); err != nil {
		return err
	}
	if err := h.commands.Add("tracepause", func(cbuf.Arguments) error {
		if h.Recorder != nil {
			h.Recorder.Pause()
		}
		return nil
	}); err != nil {
		return err
	}
	return h.commands.Add("traceresume", func(cbuf.Arguments) error {
		if h.Recorder != nil {
			h.Recorder.Resume()
		}
		return nil
	})
}

func (h *Host) Tick() uint64 {
	return h.tick
}

func (h *Host) Time() float64 {
	return h.time.Time()
}

// Frame runs one tick with realDt seconds of wall time and the given input.
// It returns ErrPlayerFell once the player dropped below FallLimit.
func (h *Host) Frame(realDt float64, in input.Sample) error {
	dt := h.time.Advance(realDt)
	h.tick++

	before := h.Player.State
	f := h.Player.Prepare(dt, in)
	if h.Recorder != nil {
		h.Recorder.LogFrame(trace.Frame{
			Tick:  h.tick,
			Dt:    dt,
			Move:  f.Move,
			Jump:  f.Jump,
			State: snapshot(before),
		})
	}

	for _, b := range h.Balls {
		b.Step(dt, h.World)
	}

	h.Player.Move(f, h.World, cvars.MoveParams())
	if h.Recorder != nil {
		h.logChanges(before, h.Player.State)
	}

	if o := h.Player.Origin(); o[pmove.UP] < FallLimit {
		conlog.Warnf("player fell at %v on tick %d\n", o, h.tick)
		return errors.Wrapf(ErrPlayerFell, "tick %d at %v", h.tick, o)
	}
	return nil
}

func snapshot(s pmove.State) trace.Snapshot {
	return trace.Snapshot{
		Origin:   s.Origin,
		Velocity: s.Velocity,
		OnGround: s.OnGround,
		Fly:      s.MoveType == pmove.Fly,
		NoClip:   s.NoClip,
		Jumped:   s.WasJumpPressed,
	}
}

func (h *Host) logChanges(from, to pmove.State) {
	change := func(field string, a, b bool) {
		if a != b {
			h.Recorder.LogChange(trace.Change{
				Field: field,
				From:  strconv.FormatBool(a),
				To:    strconv.FormatBool(b),
			})
		}
	}
	change("on_ground", from.OnGround, to.OnGround)
	change("no_clip", from.NoClip, to.NoClip)
	change("jump_pressed", from.WasJumpPressed, to.WasJumpPressed)
	if from.MoveType != to.MoveType {
		h.Recorder.LogChange(trace.Change{Field: "move_type", From: from.MoveType.String(), To: to.MoveType.String()})
	}
}

// Run simulates ticks frames of realDt each. The script lines are queued
// on the console first; a wait line holds the rest for one frame. A
// negative tick count runs until ctx is done.
func (h *Host) Run(ctx context.Context, ticks int, realDt float64, script []string) error {
	for _, l := range script {
		h.Console.AddText(l + "\n")
	}
	for i := 0; ticks < 0 || i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := h.Console.Execute(); err != nil {
			return errors.Wrapf(err, "console on tick %d", h.tick+1)
		}
		if err := h.Frame(realDt, h.Buttons.Sample()); err != nil {
			return err
		}
	}
	return nil
}
