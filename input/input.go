// SPDX-License-Identifier: GPL-2.0-or-later

// Package input tracks the movement buttons driven by +/- console commands.
package input

import (
	"quakemove/cbuf"
	"quakemove/cmd"
)

type button struct {
	// key nums holding it down, can handle 2 keys with the same action
	holdingDown [2]int
	down        bool
	impulseDown bool
}

func (b button) Down() bool {
	return b.down
}

// WentDown reports whether the button was pressed since the last call.
func (b *button) WentDown() bool {
	r := b.impulseDown
	b.impulseDown = false
	return r
}

func (b *button) upKey(k int) {
	if b.holdingDown[0] == k {
		b.holdingDown[0] = 0
	} else if b.holdingDown[1] == k {
		b.holdingDown[1] = 0
	} else {
		return
	}
	if b.holdingDown[0] != 0 || b.holdingDown[1] != 0 {
		// some other key is still holding it down
		return
	}
	b.down = false
}

func (b *button) downKey(k int) {
	if b.holdingDown[0] == k || b.holdingDown[1] == k {
		return
	}
	if b.holdingDown[0] == 0 {
		b.holdingDown[0] = k
	} else if b.holdingDown[1] == 0 {
		b.holdingDown[1] = k
	} else {
		return
	}
	if b.down {
		return
	}
	b.down = true
	b.impulseDown = true
}

func (b *button) upCmd() cmd.QFunc {
	return func(a cbuf.Arguments) error {
		if len(a.Args()) < 2 {
			// typed manually
			b.holdingDown = [2]int{}
			b.down = false
			return nil
		}
		b.upKey(a.Argv(1).Int())
		return nil
	}
}

func (b *button) downCmd() cmd.QFunc {
	return func(a cbuf.Arguments) error {
		if len(a.Args()) < 2 {
			b.downKey(-1)
			return nil
		}
		b.downKey(a.Argv(1).Int())
		return nil
	}
}

// Sample is the input of one frame.
type Sample struct {
	Forward, Back, Left, Right bool
	Jump                       bool
	Fast, Slow                 bool
	// NoClip is set on the frame the noclip button went down.
	NoClip bool
	// Look is the accumulated mouse motion in pixels.
	LookX, LookY float64
}

type Buttons struct {
	Forward   button
	Back      button
	MoveLeft  button
	MoveRight button
	Jump      button
	Speed     button
	Slow      button
	NoClip    button

	lookX, lookY float64
}

// Look adds mouse motion to the next sample.
func (b *Buttons) Look(dx, dy float64) {
	b.lookX += dx
	b.lookY += dy
}

// Sample returns the current state and consumes press edges and motion.
func (b *Buttons) Sample() Sample {
	s := Sample{
		Forward: b.Forward.Down(),
		Back:    b.Back.Down(),
		Left:    b.MoveLeft.Down(),
		Right:   b.MoveRight.Down(),
		Jump:    b.Jump.Down(),
		Fast:    b.Speed.Down(),
		Slow:    b.Slow.Down(),
		NoClip:  b.NoClip.WentDown(),
		LookX:   b.lookX,
		LookY:   b.lookY,
	}
	b.lookX, b.lookY = 0, 0
	return s
}

// Commands registers +name/-name pairs for every button and look.
// Key events pass the key number as argument, without one the command is
// treated as typed on the console.
func (b *Buttons) Commands(c *cmd.Commands) error {
	for _, e := range []struct {
		name string
		b    *button
	}{
		{"forward", &b.Forward},
		{"back", &b.Back},
		{"moveleft", &b.MoveLeft},
		{"moveright", &b.MoveRight},
		{"jump", &b.Jump},
		{"speed", &b.Speed},
		{"slow", &b.Slow},
		{"noclip", &b.NoClip},
	} {
		if err := c.Add("+"+e.name, e.b.downCmd()); err != nil {
			return err
		}
		if err := c.Add("-"+e.name, e.b.upCmd()); err != nil {
			return err
		}
	}
	return c.Add("look", func(a cbuf.Arguments) error {
		b.Look(a.Argv(1).Float64(), a.Argv(2).Float64())
		return nil
	})
}
