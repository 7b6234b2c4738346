// SPDX-License-Identifier: GPL-2.0-or-later

// Package config reads the yaml run configuration.
package config

import (
	"bytes"
	"io/fs"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"quakemove/cvar"
)

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type Config struct {
	// Scene is a scene file, empty selects the built in demo.
	Scene string `yaml:"scene"`
	Log   Log    `yaml:"log"`
	// Vars are console variables set before the first frame.
	Vars map[string]string `yaml:"vars"`
	// Ticks is the number of frames a headless run simulates.
	Ticks int `yaml:"ticks"`
	// FrameTime is the real time fed to every frame.
	FrameTime float64 `yaml:"frame_time"`
	// Script holds console lines, one per entry.
	Script    []string `yaml:"script"`
	AreaIndex bool     `yaml:"area_index"`
	Record    string   `yaml:"record"`
}

func Default() Config {
	return Config{
		Log:       Log{Level: "info"},
		Ticks:     600,
		FrameTime: 1.0 / 60,
	}
}

// Load reads name from fsys on top of the defaults.
func Load(fsys fs.FS, name string) (Config, error) {
	c := Default()
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return c, errors.Wrapf(err, "config %s", name)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return c, errors.Wrapf(err, "config %s", name)
	}
	if c.Ticks < 0 {
		return c, errors.Errorf("config %s: negative ticks %d", name, c.Ticks)
	}
	if !(c.FrameTime > 0) {
		return c, errors.Errorf("config %s: frame_time must be positive", name)
	}
	return c, nil
}

// Apply sets Vars in r in name order.
func (c Config) Apply(r *cvar.Registry) error {
	names := make([]string, 0, len(c.Vars))
	for n := range c.Vars {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		if err := r.Set(n, c.Vars[n]); err != nil {
			return errors.Wrap(err, "config")
		}
	}
	return nil
}
