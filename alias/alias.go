// SPDX-License-Identifier: GPL-2.0-or-later

// Package alias lets the console name a sequence of commands.
package alias

import (
	"strings"

	"github.com/elliotchance/orderedmap/v2"

	"quakemove/cbuf"
	"quakemove/cmd"
	"quakemove/conlog"
)

type Aliases struct {
	m *orderedmap.OrderedMap[string, string]
}

func New() *Aliases {
	return &Aliases{m: orderedmap.NewOrderedMap[string, string]()}
}

// Register adds alias, unalias and unaliasall to c.
func (al *Aliases) Register(c *cmd.Commands) error {
	if err := c.Add("alias", al.alias); err != nil {
		return err
	}
	if err := c.Add("unalias", al.unalias); err != nil {
		return err
	}
	return c.Add("unaliasall", func(cbuf.Arguments) error {
		al.m = orderedmap.NewOrderedMap[string, string]()
		return nil
	})
}

func (al *Aliases) alias(a cbuf.Arguments) error {
	args := a.Args()[1:]
	switch len(args) {
	case 0:
		al.list()
	case 1:
		if v, ok := al.Get(args[0].String()); ok {
			conlog.Printf("  %s: %s\n", args[0].String(), v)
		}
	default:
		parts := make([]string, 0, len(args)-1)
		for _, p := range args[1:] {
			parts = append(parts, p.String())
		}
		al.m.Set(args[0].String(), strings.TrimSpace(strings.Join(parts, " ")))
	}
	return nil
}

func (al *Aliases) list() {
	if al.m.Len() == 0 {
		conlog.Printf("no alias commands found\n")
		return
	}
	for el := al.m.Front(); el != nil; el = el.Next() {
		conlog.Printf("  %s: %s\n", el.Key, el.Value)
	}
	conlog.Printf("%v alias command(s)\n", al.m.Len())
}

func (al *Aliases) unalias(a cbuf.Arguments) error {
	if len(a.Args()) != 2 {
		conlog.Printf("unalias <name> : delete alias\n")
		return nil
	}
	name := a.Argv(1).String()
	if !al.m.Delete(name) {
		conlog.Printf("No alias named %s\n", name)
	}
	return nil
}

func (al *Aliases) Get(name string) (string, bool) {
	return al.m.Get(name)
}

// Execute is a cbuf.Efunc putting the commands of an alias in front of
// the buffer.
func (al *Aliases) Execute(cb *cbuf.CommandBuffer, a cbuf.Arguments) (bool, error) {
	if len(a.Args()) == 0 {
		return false, nil
	}
	v, ok := al.Get(a.Argv(0).String())
	if !ok {
		return false, nil
	}
	cb.InsertText(v)
	return true, nil
}
