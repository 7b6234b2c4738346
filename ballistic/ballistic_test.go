// SPDX-License-Identifier: GPL-2.0-or-later

package ballistic

import (
	"math"
	"testing"

	"github.com/google/uuid"

	"quakemove/collision"
	"quakemove/math/mat"
	"quakemove/math/vec"
	"quakemove/world"
)

const floorY = -1

type soup []float32

func (s soup) WorldMatrix() mat.Mat4 { return mat.Identity() }
func (s soup) Vertexes() []float32   { return s }

func floorWorld() *world.World {
	w := world.New(world.Options{})
	w.Rebuild(soup{
		-25, floorY, -250,
		-25, floorY, 250,
		25, floorY, -250,
		25, floorY, -250,
		-25, floorY, 250,
		25, floorY, 250,
	})
	return w
}

func TestNew(t *testing.T) {
	b := New(vec.Vec3{0, 3.9, -10})
	if b.ID == uuid.Nil {
		t.Errorf("body has no id")
	}
	if b.Gravity != DefaultGravity || b.Radius != Radius || b.Velocity != (vec.Vec3{}) {
		t.Errorf("unexpected defaults %+v", b)
	}
	if New(vec.Vec3{}).ID == b.ID {
		t.Errorf("two bodies share an id")
	}
}

func TestFreeFall(t *testing.T) {
	w := floorWorld()
	b := New(vec.Vec3{0, 100, 0})
	const dt = 1.0 / 64
	if b.Step(dt, w) {
		t.Fatalf("bounced in free fall")
	}
	wantV := vec.Scale(dt, DefaultGravity)
	if b.Velocity != wantV {
		t.Errorf("Velocity = %v, want %v", b.Velocity, wantV)
	}
	if want := 100 + wantV[1]*dt; b.Position[1] != want {
		t.Errorf("Position = %v, want y %v", b.Position, want)
	}
}

func TestBounce(t *testing.T) {
	w := floorWorld()
	b := New(vec.Vec3{0, floorY + 0.05, 0})
	b.Velocity = vec.Vec3{1, -10, 0}
	const dt = 1.0 / 60
	if !b.Step(dt, w) {
		t.Fatalf("no bounce")
	}
	if b.Velocity[1] <= 0 {
		t.Errorf("Velocity = %v, want upwards", b.Velocity)
	}
	if b.Velocity[0] != 1 {
		t.Errorf("Velocity = %v, want the side speed kept", b.Velocity)
	}
	if b.Position[1] <= floorY {
		t.Errorf("Position = %v, want above the floor", b.Position)
	}
}

func TestNoBounceWhenLeaving(t *testing.T) {
	r := collision.Ray{Origin: vec.Vec3{0, 0, 0}, Vector: vec.Vec3{0, -1, 0}}
	hit := collision.Intersection{Fraction: 0.5, Normal: vec.Vec3{0, 1, 0}}
	// moving up at the moment of impact
	v, _ := reflect(r, vec.Vec3{0, 3, 0}, vec.Vec3{0, -4, 0}, hit, 1)
	if want := (vec.Vec3{0, -1, 0}); v != want {
		t.Errorf("reflect = %v, want %v", v, want)
	}
	// a normal facing away from the ray is turned around
	hit.Normal = vec.Vec3{0, -1, 0}
	v, _ = reflect(r, vec.Vec3{0, -1, 0}, vec.Vec3{}, hit, 1)
	if v != (vec.Vec3{0, 1, 0}) {
		t.Errorf("reflect = %v, want [0 1 0]", v)
	}
}

func TestNeverPassesTheFloor(t *testing.T) {
	w := floorWorld()
	b := New(vec.Vec3{0, 3.9, -10})
	const dt = 1.0 / 60
	var apexes []float64
	rising := false
	for i := 0; i < 10000; i++ {
		b.Step(dt, w)
		if b.Position[1] < floorY-1e-6 {
			t.Fatalf("tick %d: below the floor at %v", i, b.Position)
		}
		if !b.Position.Finite() || !b.Velocity.Finite() {
			t.Fatalf("tick %d: not finite %+v", i, b)
		}
		if b.Velocity[1] > 0 {
			rising = true
		} else if rising {
			rising = false
			apexes = append(apexes, b.Position[1])
		}
	}
	if len(apexes) < 3 {
		t.Fatalf("only %d bounces", len(apexes))
	}
	for i := 1; i < len(apexes); i++ {
		if apexes[i-1]-floorY < 0.05 {
			break
		}
		if apexes[i] > apexes[i-1] {
			t.Errorf("bounce %d rose higher: %v > %v", i, apexes[i], apexes[i-1])
		}
	}
	if math.Abs(b.Position[0]) > 0 || b.Position[2] != -10 {
		t.Errorf("drifted sideways to %v", b.Position)
	}
}
