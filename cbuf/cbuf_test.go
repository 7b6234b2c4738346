// SPDX-License-Identifier: GPL-2.0-or-later

package cbuf

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		in     string
		wantF  string
		wantAS string
		wantA  []QArg
	}{
		{
			in:     `set sv_gravity 20`,
			wantF:  `set sv_gravity 20`,
			wantAS: `sv_gravity 20`,
			wantA:  []QArg{{"set"}, {"sv_gravity"}, {"20"}},
		},
		{
			in:     `echo "hello world"`,
			wantF:  `echo "hello world"`,
			wantAS: `hello world`,
			wantA:  []QArg{{"echo"}, {"hello world"}},
		},
		{
			in:     ` +forward  7 `,
			wantF:  `+forward  7`,
			wantAS: `7`,
			wantA:  []QArg{{"+forward"}, {"7"}},
		},
		{
			in:     `look 10 -3 // turn a bit`,
			wantF:  `look 10 -3 // turn a bit`,
			wantAS: `10 -3 // turn a bit`,
			wantA:  []QArg{{"look"}, {"10"}, {"-3"}},
		},
		{
			in:    `echo "open`,
			wantF: `echo "open`,
			// ArgumentString needs two tokens
			wantAS: ``,
			wantA:  []QArg{{"echo"}},
		},
	} {
		arg := Parse(tc.in)
		if tc.wantF != arg.Full() {
			t.Errorf("Parse(%q).Full()=%q, want %q", tc.in, arg.Full(), tc.wantF)
		}
		if tc.wantAS != arg.ArgumentString() {
			t.Errorf("Parse(%q).ArgumentString()=%q, want %q", tc.in, arg.ArgumentString(), tc.wantAS)
		}
		as := arg.Args()
		if len(tc.wantA) != len(as) {
			t.Fatalf("Parse(%q).Args() has len(%d), want %d", tc.in, len(as), len(tc.wantA))
		}
		for i := range tc.wantA {
			if tc.wantA[i] != as[i] {
				t.Errorf("Arg[%d]=%q, want %q", i, as[i], tc.wantA[i])
			}
		}
	}
}

func TestQArg(t *testing.T) {
	a := Parse(`x 3 0.5 on nope`)
	if a.Argv(1).Int() != 3 || a.Argv(2).Float64() != 0.5 || a.Argv(2).Float32() != 0.5 {
		t.Errorf("numbers %v", a.Args())
	}
	if !a.Argv(3).Bool() || a.Argv(4).Bool() || a.Argv(4).Int() != 0 {
		t.Errorf("bools %v", a.Args())
	}
	if a.Argv(9).String() != "" || a.Argv(-1).String() != "" {
		t.Errorf("out of range Argv not empty")
	}
}

func TestWait(t *testing.T) {
	c := CommandBuffer{}
	runCount := 0
	c.SetCommandExecutors([]Efunc{
		func(cb *CommandBuffer, a Arguments) (bool, error) {
			runCount++
			return true, nil
		}})
	c.AddText("wait\n")
	c.AddText("test\n")
	c.AddText("test; test \"a;b\"\n")
	c.AddText("wait\n")
	c.AddText("test\n")
	c.Execute()
	if runCount != 0 {
		t.Errorf("runCount=%v, want %v", runCount, 0)
	}
	c.Execute()
	if runCount != 3 {
		t.Errorf("runCount=%v, want %v", runCount, 3)
	}
	if c.Empty() {
		t.Errorf("buffer empty before the last line")
	}
	c.Execute()
	if runCount != 4 {
		t.Errorf("runCount=%v, want %v", runCount, 4)
	}
	if !c.Empty() {
		t.Errorf("buffer not empty")
	}
}

func TestExecutorOrder(t *testing.T) {
	var got []string
	c := CommandBuffer{}
	c.SetCommandExecutors([]Efunc{
		func(_ *CommandBuffer, a Arguments) (bool, error) {
			if a.Argv(0).String() != "first" {
				return false, nil
			}
			got = append(got, "first")
			return true, nil
		},
		func(_ *CommandBuffer, a Arguments) (bool, error) {
			got = append(got, "second:"+a.Argv(0).String())
			return true, nil
		},
	})
	c.AddText("first\nother\n")
	c.InsertText("early")
	if err := c.Execute(); err != nil {
		t.Fatal(err)
	}
	want := []string{"second:early", "first", "second:other"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestExecuteError(t *testing.T) {
	boom := errors.New("boom")
	c := CommandBuffer{}
	c.SetCommandExecutors([]Efunc{
		func(_ *CommandBuffer, a Arguments) (bool, error) { return false, boom },
	})
	c.AddText("a\nb\n")
	if err := c.Execute(); err != boom {
		t.Errorf("Execute() = %v, want %v", err, boom)
	}
	if c.Empty() {
		t.Errorf("lines after the failure were dropped")
	}
}
