// SPDX-License-Identifier: GPL-2.0-or-later

// Package scene holds the static world primitives and the scene
// descriptions that place them.
package scene

import (
	"quakemove/math/mat"
	"quakemove/math/vec"
	"quakemove/world"
)

// unit plane in the xz plane, facing up
var planeVertexes = []float32{
	-0.5, 0, -0.5,
	-0.5, 0, 0.5,
	0.5, 0, -0.5,
	0.5, 0, -0.5,
	-0.5, 0, 0.5,
	0.5, 0, 0.5,
}

// unit cube around the origin
var cubeVertexes = []float32{
	// top
	-0.5, 0.5, -0.5,
	-0.5, 0.5, 0.5,
	0.5, 0.5, -0.5,
	0.5, 0.5, -0.5,
	-0.5, 0.5, 0.5,
	0.5, 0.5, 0.5,
	// bottom
	-0.5, -0.5, -0.5,
	0.5, -0.5, -0.5,
	-0.5, -0.5, 0.5,
	-0.5, -0.5, 0.5,
	0.5, -0.5, -0.5,
	0.5, -0.5, 0.5,
	// left
	-0.5, -0.5, -0.5,
	-0.5, -0.5, 0.5,
	-0.5, 0.5, -0.5,
	-0.5, 0.5, -0.5,
	-0.5, -0.5, 0.5,
	-0.5, 0.5, 0.5,
	// right
	0.5, -0.5, -0.5,
	0.5, 0.5, -0.5,
	0.5, -0.5, 0.5,
	0.5, -0.5, 0.5,
	0.5, 0.5, -0.5,
	0.5, 0.5, 0.5,
	// front
	-0.5, -0.5, -0.5,
	-0.5, 0.5, -0.5,
	0.5, -0.5, -0.5,
	0.5, -0.5, -0.5,
	-0.5, 0.5, -0.5,
	0.5, 0.5, -0.5,
	// back
	-0.5, -0.5, 0.5,
	0.5, -0.5, 0.5,
	-0.5, 0.5, 0.5,
	-0.5, 0.5, 0.5,
	0.5, -0.5, 0.5,
	0.5, 0.5, 0.5,
}

// Placement puts a unit primitive into the world. A zero Rotation means
// no rotation.
type Placement struct {
	Position vec.Vec3
	Rotation mat.Mat4
}

func (p Placement) matrix(size vec.Vec3) mat.Mat4 {
	r := p.Rotation
	if r == (mat.Mat4{}) {
		r = mat.Identity()
	}
	return mat.TRS(p.Position, r, size)
}

// Plane is a Width by Depth rectangle with y as its normal before rotation.
type Plane struct {
	Placement
	Width, Depth float64
}

func (p *Plane) WorldMatrix() mat.Mat4 {
	return p.matrix(vec.Vec3{p.Width, 1, p.Depth})
}

func (p *Plane) Vertexes() []float32 {
	return planeVertexes
}

type Cube struct {
	Placement
	Width, Height, Depth float64
}

func (c *Cube) WorldMatrix() mat.Mat4 {
	return c.matrix(vec.Vec3{c.Width, c.Height, c.Depth})
}

func (c *Cube) Vertexes() []float32 {
	return cubeVertexes
}

// Scene is everything needed to start a session.
type Scene struct {
	Name    string
	Objects []world.Object
	// Player spawn with view pitch and yaw in radians.
	PlayerOrigin vec.Vec3
	PlayerPitch  float64
	PlayerYaw    float64
	Balls        []vec.Vec3
}

// Demo returns the built in demo scene.
func Demo() *Scene {
	s, err := Load(Files, "demo.yaml")
	if err != nil {
		panic(err)
	}
	return s
}
