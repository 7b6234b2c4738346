// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"errors"
	"strings"
	"testing"

	"quakemove/cbuf"
	"quakemove/conlog"
)

func TestAdd(t *testing.T) {
	c := New()
	if err := c.Add("Noclip", func(cbuf.Arguments) error { return nil }); err != nil {
		t.Fatal(err)
	}
	if err := c.Add("noclip", func(cbuf.Arguments) error { return nil }); err == nil {
		t.Errorf("adding noclip twice succeeded")
	}
	if !c.Exists("NOCLIP") {
		t.Errorf("Exists is case sensitive")
	}
}

func TestExecute(t *testing.T) {
	c := New()
	var got string
	Must(c.Add("echo", func(a cbuf.Arguments) error {
		got = a.ArgumentString()
		return nil
	}))
	boom := errors.New("boom")
	Must(c.Add("fail", func(cbuf.Arguments) error { return boom }))

	if ok, err := c.Execute(nil, cbuf.Parse(`ECHO "hi there"`)); !ok || err != nil {
		t.Errorf("Execute(echo) = %v, %v", ok, err)
	}
	if got != "hi there" {
		t.Errorf("echo got %q", got)
	}
	if ok, _ := c.Execute(nil, cbuf.Parse("unknown")); ok {
		t.Errorf("unknown command ran")
	}
	if _, err := c.Execute(nil, cbuf.Parse("fail")); err == nil || !strings.Contains(err.Error(), "fail: boom") {
		t.Errorf("Execute(fail) error = %v", err)
	}
}

func TestListCommand(t *testing.T) {
	var out []string
	conlog.SetPrintf(func(f string, v ...interface{}) { out = append(out, f) })
	defer conlog.Reset()

	c := New()
	Must(c.Add("+jump", func(cbuf.Arguments) error { return nil }))
	Must(c.Add("+forward", func(cbuf.Arguments) error { return nil }))
	Must(c.Add("noclip", func(cbuf.Arguments) error { return nil }))
	Must(c.AddListCommand())
	want := []string{"+forward", "+jump", "cmdlist", "noclip"}
	l := c.List()
	if strings.Join(l, " ") != strings.Join(want, " ") {
		t.Errorf("List() = %v, want %v", l, want)
	}
	if ok, err := c.Execute(nil, cbuf.Parse("cmdlist +")); !ok || err != nil {
		t.Fatalf("cmdlist failed: %v", err)
	}
	if len(out) != 3 {
		t.Errorf("cmdlist printed %d lines, want 3", len(out))
	}
}
