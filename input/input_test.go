// SPDX-License-Identifier: GPL-2.0-or-later

package input

import (
	"testing"

	"quakemove/cbuf"
	"quakemove/cmd"
)

func console(t *testing.T, b *Buttons) func(string) {
	c := cmd.New()
	if err := b.Commands(c); err != nil {
		t.Fatal(err)
	}
	return func(text string) {
		t.Helper()
		if ok, err := c.Execute(nil, cbuf.Parse(text)); !ok || err != nil {
			t.Fatalf("%q: %v %v", text, ok, err)
		}
	}
}

func TestTwoKeys(t *testing.T) {
	var b Buttons
	run := console(t, &b)
	run("+forward 10")
	run("+forward 11")
	run("-forward 10")
	if !b.Sample().Forward {
		t.Errorf("forward released while a key still holds it")
	}
	run("-forward 11")
	if b.Sample().Forward {
		t.Errorf("forward still down")
	}
	run("+forward 10")
	run("-forward")
	if b.Sample().Forward || b.Forward.holdingDown != [2]int{} {
		t.Errorf("manual release did not clear the button")
	}
}

func TestNoClipEdge(t *testing.T) {
	var b Buttons
	run := console(t, &b)
	run("+noclip")
	if !b.Sample().NoClip {
		t.Errorf("no press edge")
	}
	if b.Sample().NoClip {
		t.Errorf("held button fired twice")
	}
	run("-noclip")
	run("+noclip")
	if !b.Sample().NoClip {
		t.Errorf("second press lost")
	}
}

func TestLook(t *testing.T) {
	var b Buttons
	run := console(t, &b)
	run("look 3 -2")
	b.Look(1, 1)
	s := b.Sample()
	if s.LookX != 4 || s.LookY != -1 {
		t.Errorf("look = %v %v", s.LookX, s.LookY)
	}
	if s := b.Sample(); s.LookX != 0 || s.LookY != 0 {
		t.Errorf("look not consumed: %v %v", s.LookX, s.LookY)
	}
}

func TestAllButtons(t *testing.T) {
	var b Buttons
	run := console(t, &b)
	for _, n := range []string{"forward", "back", "moveleft", "moveright", "jump", "speed", "slow"} {
		run("+" + n)
	}
	s := b.Sample()
	if !(s.Forward && s.Back && s.Left && s.Right && s.Jump && s.Fast && s.Slow) {
		t.Errorf("Sample() = %+v", s)
	}
}
