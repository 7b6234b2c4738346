// SPDX-License-Identifier: GPL-2.0-or-later

// Package cvar holds named console variables. Values are kept as strings,
// the numeric value is derived.
package cvar

import (
	"strconv"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/pkg/errors"

	"quakemove/cbuf"
	"quakemove/cmd"
	"quakemove/conlog"
)

type flag uint64

const (
	NONE    flag = 0
	ARCHIVE flag = 1
	NOTIFY  flag = 1 << 1
	ROM     flag = 1 << 6
)

type CallbackFunc func(cv *Cvar)

type Cvar struct {
	archive  bool
	notify   bool
	rom      bool
	user     bool
	callback CallbackFunc
	name     string
	// stringValue is the truth, value the derived one
	stringValue  string
	value        float64
	defaultValue string
}

func (cv *Cvar) Archive() bool {
	return cv.archive
}

func (cv *Cvar) Notify() bool {
	return cv.notify
}

// UserDefined reports whether the variable was created by set.
func (cv *Cvar) UserDefined() bool {
	return cv.user
}

func (cv *Cvar) SetCallback(cb CallbackFunc) {
	cv.callback = cb
}

func (cv *Cvar) SetByString(s string) {
	if cv.rom {
		return
	}
	cv.set(s)
}

func (cv *Cvar) set(s string) {
	cv.stringValue = s
	pf, _ := strconv.ParseFloat(cv.stringValue, 64)
	cv.value = pf
	if cv.notify {
		conlog.Printf("\"%s\" changed to \"%s\"\n", cv.name, s)
	}
	if cv.callback != nil {
		cv.callback(cv)
	}
}

func (cv *Cvar) Reset() {
	cv.SetByString(cv.defaultValue)
}

func (cv *Cvar) String() string {
	return cv.stringValue
}

func (cv *Cvar) Default() string {
	return cv.defaultValue
}

func (cv *Cvar) Name() string {
	return cv.name
}

func (cv *Cvar) Value() float64 {
	return cv.value
}

func (cv *Cvar) SetValue(value float64) {
	cv.SetByString(strconv.FormatFloat(value, 'f', -1, 64))
}

func (cv *Cvar) Toggle() {
	if cv.String() == "1" {
		cv.SetByString("0")
	} else {
		cv.SetByString("1")
	}
}

func (cv *Cvar) Bool() bool {
	return cv.stringValue != "0" && cv.stringValue != ""
}

// Registry keeps variables in registration order.
type Registry struct {
	vars *orderedmap.OrderedMap[string, *Cvar]
}

func NewRegistry() *Registry {
	return &Registry{vars: orderedmap.NewOrderedMap[string, *Cvar]()}
}

func (r *Registry) All() []*Cvar {
	all := make([]*Cvar, 0, r.vars.Len())
	for el := r.vars.Front(); el != nil; el = el.Next() {
		all = append(all, el.Value)
	}
	return all
}

func (r *Registry) Get(name string) (*Cvar, bool) {
	return r.vars.Get(name)
}

func (r *Registry) create(name, value string) *Cvar {
	cv := &Cvar{name: name, defaultValue: value}
	cv.set(value)
	r.vars.Set(name, cv)
	return cv
}

func (r *Registry) Register(name, value string, flags flag) (*Cvar, error) {
	if _, ok := r.vars.Get(name); ok {
		return nil, errors.Errorf("can't register variable %s, already defined", name)
	}
	cv := r.create(name, value)
	cv.archive = flags&ARCHIVE != 0
	cv.notify = flags&NOTIFY != 0
	cv.rom = flags&ROM != 0
	return cv, nil
}

func (r *Registry) MustRegister(n, v string, flags flag) *Cvar {
	cv, err := r.Register(n, v, flags)
	if err != nil {
		panic(err)
	}
	return cv
}

// Set changes an existing variable.
func (r *Registry) Set(name, value string) error {
	cv, ok := r.Get(name)
	if !ok {
		return errors.Errorf("variable %s not found", name)
	}
	if cv.rom {
		return errors.Errorf("variable %s is read only", name)
	}
	cv.SetByString(value)
	return nil
}

// Execute is a cbuf.Efunc: "name" prints the variable, "name value" sets it.
func (r *Registry) Execute(_ *cbuf.CommandBuffer, a cbuf.Arguments) (bool, error) {
	args := a.Args()
	if len(args) == 0 {
		return false, nil
	}
	cv, ok := r.Get(args[0].String())
	if !ok {
		return false, nil
	}
	if len(args) == 1 {
		conlog.Printf("\"%s\" is \"%s\"\n", cv.Name(), cv.String())
		return true, nil
	}
	cv.SetByString(args[1].String())
	return true, nil
}

// AddCommands registers the variable handling commands.
func (r *Registry) AddCommands(c *cmd.Commands) error {
	for _, e := range []struct {
		name string
		f    cmd.QFunc
	}{
		{"cvarlist", r.list},
		{"cycle", r.cycle},
		{"inc", r.inc},
		{"reset", r.reset},
		{"resetall", r.resetAll},
		{"set", r.setCmd(c)},
		{"toggle", r.toggle},
	} {
		if err := c.Add(e.name, e.f); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) setCmd(c *cmd.Commands) cmd.QFunc {
	return func(a cbuf.Arguments) error {
		args := a.Args()[1:]
		if len(args) < 2 {
			conlog.Printf("set <cvar> <value>\n")
			return nil
		}
		name := args[0].String()
		if c.Exists(name) {
			conlog.Printf("%s conflicts with a command\n", name)
			return nil
		}
		if cv, ok := r.Get(name); ok {
			cv.SetByString(args[1].String())
		} else {
			cv := r.create(name, args[1].String())
			cv.user = true
		}
		return nil
	}
}

func (r *Registry) toggle(a cbuf.Arguments) error {
	args := a.Args()[1:]
	if len(args) != 1 {
		conlog.Printf("toggle <cvar> : toggle cvar\n")
		return nil
	}
	if cv, ok := r.Get(args[0].String()); ok {
		cv.Toggle()
	} else {
		conlog.Printf("toggle: variable %v not found\n", args[0].String())
	}
	return nil
}

func (r *Registry) inc(a cbuf.Arguments) error {
	args := a.Args()[1:]
	v := 1.0
	switch len(args) {
	case 1:
	case 2:
		v = args[1].Float64()
	default:
		conlog.Printf("inc <cvar> [amount] : increment cvar\n")
		return nil
	}
	if cv, ok := r.Get(args[0].String()); ok {
		cv.SetValue(cv.Value() + v)
	} else {
		conlog.Printf("inc: variable %v not found\n", args[0].String())
	}
	return nil
}

func (r *Registry) reset(a cbuf.Arguments) error {
	args := a.Args()[1:]
	if len(args) != 1 {
		conlog.Printf("reset <cvar> : reset cvar to default\n")
		return nil
	}
	if cv, ok := r.Get(args[0].String()); ok {
		cv.Reset()
	} else {
		conlog.Printf("reset: variable %v not found\n", args[0].String())
	}
	return nil
}

func (r *Registry) resetAll(_ cbuf.Arguments) error {
	for _, cv := range r.All() {
		cv.Reset()
	}
	return nil
}

func (r *Registry) list(_ cbuf.Arguments) error {
	all := r.All()
	for _, v := range all {
		archive, notify := " ", " "
		if v.Archive() {
			archive = "*"
		}
		if v.Notify() {
			notify = "s"
		}
		conlog.Printf("%s%s %s \"%s\"\n", archive, notify, v.Name(), v.String())
	}
	conlog.Printf("%v cvars\n", len(all))
	return nil
}

func (r *Registry) cycle(a cbuf.Arguments) error {
	args := a.Args()[1:]
	if len(args) < 2 {
		conlog.Printf("cycle <cvar> <value list>: cycle cvar through a list of values\n")
		return nil
	}
	cv, ok := r.Get(args[0].String())
	if !ok {
		conlog.Printf("cycle: variable %v not found\n", args[0].String())
		return nil
	}
	values := args[1:]
	next := 0
	for i, v := range values {
		if v.String() == cv.String() {
			next = (i + 1) % len(values)
			break
		}
	}
	cv.SetByString(values[next].String())
	return nil
}

var std = NewRegistry()

// Default returns the process wide registry.
func Default() *Registry {
	return std
}

func All() []*Cvar {
	return std.All()
}

func Get(name string) (*Cvar, bool) {
	return std.Get(name)
}

func Register(name, value string, flags flag) (*Cvar, error) {
	return std.Register(name, value, flags)
}

func MustRegister(n, v string, flags flag) *Cvar {
	return std.MustRegister(n, v, flags)
}

func Set(name, value string) error {
	return std.Set(name, value)
}
