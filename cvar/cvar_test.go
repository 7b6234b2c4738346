// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"testing"

	"quakemove/cbuf"
	"quakemove/cmd"
)

func run(t *testing.T, r *Registry, c *cmd.Commands, text string) {
	t.Helper()
	var b cbuf.CommandBuffer
	b.SetCommandExecutors([]cbuf.Efunc{c.Execute, r.Execute})
	b.AddText(text)
	if err := b.Execute(); err != nil {
		t.Fatalf("Execute(%q): %v", text, err)
	}
}

func newConsole(t *testing.T) (*Registry, *cmd.Commands) {
	r := NewRegistry()
	c := cmd.New()
	if err := r.AddCommands(c); err != nil {
		t.Fatal(err)
	}
	return r, c
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	g := r.MustRegister("sv_gravity", "20", NONE)
	if g.Value() != 20 || g.String() != "20" || g.Default() != "20" {
		t.Errorf("sv_gravity = %q %v", g.String(), g.Value())
	}
	if _, err := r.Register("sv_gravity", "1", NONE); err == nil {
		t.Errorf("registered sv_gravity twice")
	}
	r.MustRegister("a", "x", ARCHIVE)
	r.MustRegister("b", "0.25", NOTIFY)
	var names []string
	for _, cv := range r.All() {
		names = append(names, cv.Name())
	}
	if len(names) != 3 || names[0] != "sv_gravity" || names[1] != "a" || names[2] != "b" {
		t.Errorf("All() order = %v", names)
	}
	if v, _ := r.Get("b"); v.Value() != 0.25 {
		t.Errorf("b = %v", v.Value())
	}
	if v, _ := r.Get("a"); v.Value() != 0 || !v.Archive() {
		t.Errorf("a = %v archive %v", v.Value(), v.Archive())
	}
}

func TestReadOnly(t *testing.T) {
	r := NewRegistry()
	v := r.MustRegister("version", "1", ROM)
	v.SetByString("2")
	if v.String() != "1" {
		t.Errorf("read only variable changed to %q", v.String())
	}
	if err := r.Set("version", "3"); err == nil {
		t.Errorf("Set on a read only variable succeeded")
	}
	if err := r.Set("nope", "3"); err == nil {
		t.Errorf("Set on a missing variable succeeded")
	}
}

func TestCallback(t *testing.T) {
	r := NewRegistry()
	v := r.MustRegister("host_framerate", "0", NONE)
	var got []float64
	v.SetCallback(func(cv *Cvar) { got = append(got, cv.Value()) })
	v.SetValue(0.015625)
	v.Reset()
	if len(got) != 2 || got[0] != 0.015625 || got[1] != 0 {
		t.Errorf("callback saw %v", got)
	}
}

func TestCommands(t *testing.T) {
	r, c := newConsole(t)
	fr := r.MustRegister("host_framerate", "0", NONE)
	nc := r.MustRegister("noclip_mode", "0", NONE)
	mode := r.MustRegister("mode", "a", NONE)

	for _, tc := range []struct {
		text string
		cv   *Cvar
		want string
	}{
		{"host_framerate 0.5", fr, "0.5"},
		{"inc host_framerate", fr, "1.5"},
		{"inc host_framerate -2", fr, "-0.5"},
		{"reset host_framerate", fr, "0"},
		{"toggle noclip_mode", nc, "1"},
		{"toggle noclip_mode", nc, "0"},
		{"cycle mode a b c", mode, "b"},
		{"cycle mode a b c", mode, "c"},
		{"cycle mode a b c", mode, "a"},
		{"cycle mode x y", mode, "x"},
		{"set mode z", mode, "z"},
		{"resetall", mode, "a"},
	} {
		run(t, r, c, tc.text)
		if tc.cv.String() != tc.want {
			t.Errorf("after %q %s = %q, want %q", tc.text, tc.cv.Name(), tc.cv.String(), tc.want)
		}
	}
}

func TestSetCreates(t *testing.T) {
	r, c := newConsole(t)
	run(t, r, c, "set sv_custom 3; set toggle 1")
	v, ok := r.Get("sv_custom")
	if !ok || v.Value() != 3 || !v.UserDefined() {
		t.Errorf("set did not create sv_custom: %v %+v", ok, v)
	}
	if _, ok := r.Get("toggle"); ok {
		t.Errorf("set created a variable shadowing a command")
	}
}

func TestDefaultRegistry(t *testing.T) {
	v := MustRegister("cvar_test_default", "1", NONE)
	if got, ok := Get("cvar_test_default"); !ok || got != v {
		t.Errorf("Get() = %v %v", got, ok)
	}
	if err := Set("cvar_test_default", "2"); err != nil || v.Value() != 2 {
		t.Errorf("Set() = %v, value %v", err, v.Value())
	}
	if len(All()) == 0 || Default() != std {
		t.Errorf("default registry not shared")
	}
}
