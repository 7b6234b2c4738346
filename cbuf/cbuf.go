// SPDX-License-Identifier: GPL-2.0-or-later

// Package cbuf buffers console text and runs it line by line through a
// chain of executors.
package cbuf

import (
	"strings"

	"quakemove/conlog"
)

// Efunc tries to run a line. It reports false if the line is not one of
// its commands.
type Efunc func(*CommandBuffer, Arguments) (bool, error)

type CommandBuffer struct {
	buf string
	// set by wait, defers the rest of the buffer to the next Execute
	wait      bool
	executors []Efunc
}

func (c *CommandBuffer) SetCommandExecutors(e []Efunc) {
	c.executors = e
}

// AddText appends text to the end of the buffer.
func (c *CommandBuffer) AddText(text string) {
	c.buf += text
}

// InsertText puts text in front of the buffer, to run before the rest.
func (c *CommandBuffer) InsertText(text string) {
	c.buf = text + "\n" + c.buf
}

// Wait stops Execute after the current line.
func (c *CommandBuffer) Wait() {
	c.wait = true
}

// Empty reports whether nothing is left to run.
func (c *CommandBuffer) Empty() bool {
	return strings.TrimSpace(c.buf) == ""
}

// Execute runs lines until the buffer is empty, a wait is hit or an
// executor fails.
func (c *CommandBuffer) Execute() error {
	for len(c.buf) != 0 {
		line := c.nextLine()
		if err := c.execute(line); err != nil {
			return err
		}
		if c.wait {
			c.wait = false
			return nil
		}
	}
	return nil
}

// nextLine cuts the next command off the buffer. Lines end at a newline or
// at a ';' outside of quotes.
func (c *CommandBuffer) nextLine() string {
	quote := false
	i := 0
Loop:
	for ; i < len(c.buf); i++ {
		switch c.buf[i] {
		case '"':
			quote = !quote
		case ';':
			if !quote {
				break Loop
			}
		case '\n':
			break Loop
		}
	}
	line := c.buf[:i]
	if i < len(c.buf) {
		i++
	}
	c.buf = c.buf[i:]
	return line
}

func (c *CommandBuffer) execute(s string) error {
	a := Parse(s)
	args := a.Args()
	if len(args) == 0 {
		return nil
	}
	if args[0].String() == "wait" {
		c.wait = true
		return nil
	}
	for _, e := range c.executors {
		if ok, err := e(c, a); err != nil {
			return err
		} else if ok {
			return nil
		}
	}
	conlog.Printf("Unknown command \"%s\"\n", args[0].String())
	return nil
}
