// SPDX-License-Identifier: GPL-2.0-or-later

// Package cmd maps console command names to functions.
package cmd

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"quakemove/cbuf"
	"quakemove/conlog"
)

type QFunc func(a cbuf.Arguments) error

type Commands map[string]QFunc

func New() *Commands {
	c := make(Commands)
	return &c
}

func (c *Commands) Add(name string, f QFunc) error {
	ln := strings.ToLower(name)
	if _, ok := (*c)[ln]; ok {
		return errors.Errorf("command %s already defined", ln)
	}
	(*c)[ln] = f
	return nil
}

func (c *Commands) Exists(cmdName string) bool {
	_, ok := (*c)[strings.ToLower(cmdName)]
	return ok
}

func (c *Commands) List() []string {
	cmds := make([]string, 0, len(*c))
	for cmd := range *c {
		cmds = append(cmds, cmd)
	}
	sort.Strings(cmds)
	return cmds
}

// Execute is a cbuf.Efunc running registered commands.
func (c *Commands) Execute(_ *cbuf.CommandBuffer, a cbuf.Arguments) (bool, error) {
	n := a.Args()
	if len(n) == 0 {
		return false, nil
	}
	name := strings.ToLower(n[0].String())
	cmd, ok := (*c)[name]
	if !ok {
		return false, nil
	}
	if err := cmd(a); err != nil {
		return false, errors.Wrap(err, name)
	}
	return true, nil
}

// AddListCommand registers cmdlist, which prints all commands starting
// with the optional argument.
func (c *Commands) AddListCommand() error {
	return c.Add("cmdlist", func(a cbuf.Arguments) error {
		part := a.Argv(1).String()
		count := 0
		for _, n := range c.List() {
			if strings.HasPrefix(n, part) {
				conlog.Printf("  %s\n", n)
				count++
			}
		}
		if part != "" {
			conlog.Printf("%v commands beginning with \"%v\"\n", count, part)
		} else {
			conlog.Printf("%v commands\n", count)
		}
		return nil
	})
}

func Must(err error) {
	if err != nil {
		panic(err.Error())
	}
}
