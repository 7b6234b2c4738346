// SPDX-License-Identifier: GPL-2.0-or-later

package scene

import (
	"bytes"
	"embed"
	"io/fs"
	"math"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"quakemove/math/mat"
	"quakemove/math/vec"
	"quakemove/world"
)

// Files holds the built in scenes.
//
//go:embed demo.yaml
var Files embed.FS

var ErrInvalid = errors.New("invalid scene")

type file struct {
	Name    string       `yaml:"name"`
	Objects []objectSpec `yaml:"objects"`
	Player  struct {
		Position []float64 `yaml:"position"`
		Pitch    float64   `yaml:"pitch"`
		Yaw      float64   `yaml:"yaw"`
	} `yaml:"player"`
	Balls [][]float64 `yaml:"balls"`
}

type objectSpec struct {
	Kind     string    `yaml:"kind"`
	Size     []float64 `yaml:"size"`
	Position []float64 `yaml:"position"`
	Rotate   *struct {
		Axis    []float64 `yaml:"axis"`
		Degrees float64   `yaml:"degrees"`
	} `yaml:"rotate"`
}

// Load reads the scene name from fsys. Angles in the file are in degrees.
func Load(fsys fs.FS, name string) (*Scene, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Wrapf(err, "scene %s", name)
	}
	s, err := Parse(b)
	if err != nil {
		return nil, errors.Wrapf(err, "scene %s", name)
	}
	return s, nil
}

// Parse decodes a yaml scene description.
func Parse(b []byte) (*Scene, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(err, "decode")
	}

	s := &Scene{
		Name:        f.Name,
		PlayerPitch: radians(f.Player.Pitch),
		PlayerYaw:   radians(f.Player.Yaw),
	}
	var err error
	if s.PlayerOrigin, err = vector(f.Player.Position); err != nil {
		return nil, errors.Wrap(err, "player position")
	}
	for i, o := range f.Objects {
		obj, err := o.object()
		if err != nil {
			return nil, errors.Wrapf(err, "object %d", i)
		}
		s.Objects = append(s.Objects, obj)
	}
	for i, b := range f.Balls {
		p, err := vector(b)
		if err != nil {
			return nil, errors.Wrapf(err, "ball %d", i)
		}
		s.Balls = append(s.Balls, p)
	}
	return s, nil
}

func (o objectSpec) placement() (Placement, error) {
	p := Placement{Rotation: mat.Identity()}
	if o.Position != nil {
		v, err := vector(o.Position)
		if err != nil {
			return p, errors.Wrap(err, "position")
		}
		p.Position = v
	}
	if o.Rotate != nil {
		axis, err := vector(o.Rotate.Axis)
		if err != nil {
			return p, errors.Wrap(err, "rotation axis")
		}
		if axis == (vec.Vec3{}) {
			return p, errors.Wrap(ErrInvalid, "null rotation axis")
		}
		p.Rotation = mat.Rotate(axis, radians(o.Rotate.Degrees))
	}
	return p, nil
}

func (o objectSpec) object() (world.Object, error) {
	p, err := o.placement()
	if err != nil {
		return nil, err
	}
	for _, s := range o.Size {
		if !(s > 0) || math.IsInf(s, 0) {
			return nil, errors.Wrapf(ErrInvalid, "size %v", o.Size)
		}
	}
	switch o.Kind {
	case "plane":
		if len(o.Size) != 2 {
			return nil, errors.Wrapf(ErrInvalid, "plane size needs 2 values, got %d", len(o.Size))
		}
		return &Plane{Placement: p, Width: o.Size[0], Depth: o.Size[1]}, nil
	case "cube":
		if len(o.Size) != 3 {
			return nil, errors.Wrapf(ErrInvalid, "cube size needs 3 values, got %d", len(o.Size))
		}
		return &Cube{Placement: p, Width: o.Size[0], Height: o.Size[1], Depth: o.Size[2]}, nil
	}
	return nil, errors.Wrapf(ErrInvalid, "unknown kind %q", o.Kind)
}

func vector(a []float64) (vec.Vec3, error) {
	if len(a) != 3 {
		return vec.Vec3{}, errors.Wrapf(ErrInvalid, "need 3 values, got %d", len(a))
	}
	v := vec.Vec3{a[0], a[1], a[2]}
	if !v.Finite() {
		return vec.Vec3{}, errors.Wrapf(ErrInvalid, "%v is not finite", a)
	}
	return v, nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
