// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"math"

	"quakemove/collision"
	"quakemove/math/vec"
)

// blocked flags returned by ClipVelocity and flyMove
const (
	BlockedFloor = 1 << iota
	BlockedSlope
	BlockedWall
)

// ClipVelocity slides in off of a plane with the given normal. Components
// closer to zero than the snap threshold become exactly zero.
// It returns the blocked flags and the clipped velocity.
func ClipVelocity(in, normal vec.Vec3, overbounce float64) (int, vec.Vec3) {
	blocked := blockedBy(normal)
	backoff := vec.Dot(in, normal) * overbounce

	e := func(x float64) float64 {
		const EPSILON = 1e-4
		if x > -EPSILON && x < EPSILON {
			return 0
		}
		return x
	}

	out := vec.Vec3{
		e(in[0] - normal[0]*backoff),
		e(in[1] - normal[1]*backoff),
		e(in[2] - normal[2]*backoff),
	}
	return blocked, out
}

func blockedBy(normal vec.Vec3) int {
	switch {
	case normal[UP] == 1:
		return BlockedFloor
	case normal[UP] > 0:
		return BlockedSlope
	case normal[UP] == 0:
		return BlockedWall
	default:
		return 0
	}
}

// flyMove slides the player along velocity for the frame time, clipping
// against everything it runs into. It returns the accumulated blocked flags.
func (m *mover) flyMove() int {
	planes := make([]vec.Vec3, 0, max(m.p.MaxBumps, 0))
	blocked := 0
	originalVelocity := m.s.Velocity
	primalVelocity := m.s.Velocity
	allFraction := 0.0
	timeLeft := m.f.Dt

	for bumpcount := 0; bumpcount < m.p.MaxBumps; bumpcount++ {
		if m.s.Velocity.Length() < m.p.SmallestSpeed {
			break
		}

		r := collision.Ray{
			Origin: m.feet(),
			Vector: vec.Scale(timeLeft, m.s.Velocity),
		}
		t, hit := m.trace(r, "flymove")
		fraction := 1.0
		if hit {
			fraction = t.Fraction
		}
		allFraction += fraction

		if fraction > 0 {
			// actually covered some distance
			advance := fraction
			if hit {
				// stop short of the plane
				advance = math.Max(0, fraction-m.p.ContactOffset/r.Vector.Length())
			}
			m.s.Origin = vec.MA(m.s.Origin, advance, r.Vector)
			m.unstick()
			originalVelocity = m.s.Velocity
			planes = planes[:0]
		}
		if !hit {
			// moved the entire distance
			break
		}

		blocked |= blockedBy(t.Normal)
		timeLeft -= timeLeft * fraction

		if len(planes) == cap(planes) {
			// this shouldn't really happen
			m.s.Velocity = vec.Vec3{}
			break
		}
		planes = append(planes, t.Normal)

		if m.s.MoveType == Walk && (m.s.OnGround || m.s.Friction != 1) {
			var newVelocity vec.Vec3
			for _, p := range planes {
				if p[UP] > walkableNormal {
					_, newVelocity = ClipVelocity(originalVelocity, p, 1)
					originalVelocity = newVelocity
				} else {
					_, newVelocity = ClipVelocity(originalVelocity, p, 1.1)
				}
			}
			m.s.Velocity = newVelocity
			originalVelocity = newVelocity
			continue
		}

		// modify original_velocity so it parallels all of the clip planes
		i := 0
		for ; i < len(planes); i++ {
			_, newVelocity := ClipVelocity(originalVelocity, planes[i], 1)
			j := 0
			for ; j < len(planes); j++ {
				if j != i && vec.Dot(newVelocity, planes[j]) < 0 {
					break // not ok
				}
			}
			if j == len(planes) {
				m.s.Velocity = newVelocity
				break
			}
		}
		if i == len(planes) {
			// go along the crease
			if len(planes) != 2 {
				m.s.Velocity = vec.Vec3{}
				break
			}
			dir := vec.Cross(planes[0], planes[1]).Normalize()
			d := vec.Dot(dir, m.s.Velocity)
			m.s.Velocity = vec.Scale(d, dir)
		}

		// if velocity is against the original velocity, stop dead
		// to avoid tiny occilations in sloping corners
		if vec.Dot(m.s.Velocity, primalVelocity) <= 0 {
			m.s.Velocity = vec.Vec3{}
			break
		}
	}

	if allFraction == 0 {
		m.s.Velocity = vec.Vec3{}
	}
	return blocked
}

// unstick lifts the core out of anything it ended up inside of.
func (m *mover) unstick() {
	for i := 0; i < m.p.MaxBumps; i++ {
		if !m.liftCore() {
			return
		}
	}
}

// liftCore pushes the origin up if the core ray from the origin to the feet
// is inside geometry. It reports whether the origin moved.
func (m *mover) liftCore() bool {
	r := collision.Ray{
		Origin: m.s.Origin,
		Vector: vec.Vec3{0, -m.p.CoreHeight, 0},
	}
	t, ok := m.trace(r, "core")
	if !ok {
		return false
	}
	lift := m.p.CoreHeight * (1 - t.Fraction)
	if lift <= 0 {
		return false
	}
	m.s.Origin[UP] += lift
	return true
}

// walkMove moves a grounded player, stepping up onto low obstacles.
func (m *mover) walkMove() {
	wishvel := m.f.Move
	wishvel[UP] = 0
	wishdir := wishvel.Normalize()
	wishspeed := math.Min(wishvel.Length()*m.p.MaxWishSpeed, m.p.MaxWishSpeed)

	m.accelerate(wishdir, wishspeed, m.p.Accelerate)
	m.s.Velocity = vec.Add(m.s.Velocity, m.s.BaseVelocity)
	if m.s.Velocity.Length() < m.p.SmallestSpeed {
		m.s.Velocity = vec.Vec3{}
	}

	oldOnGround := m.s.OnGround

	r := collision.Ray{
		Origin: m.feet(),
		Vector: vec.Scale(m.f.Dt, m.s.Velocity),
	}
	if _, hit := m.trace(r, "walkmove"); !hit {
		m.s.Origin = vec.Add(m.s.Origin, r.Vector)
		m.fixOrigin()
		return
	}

	if !oldOnGround {
		// don't stair up while jumping
		return
	}

	m.s = m.stepMove(m.s)
	m.fixOrigin()
}

// stepMove tries a plain slide and a step up, slide, step down from the
// snapshot start and returns the better of the two.
func (m *mover) stepMove(start State) State {
	slide := *m
	slide.s = start
	slide.flyMove()

	step := *m
	step.s = start
	walkable := step.stepUpAndDown()

	// Biased toward the step: it is taken whenever it lands on walkable
	// ground, whatever the slope of the face that blocked the slide. A
	// vertical step face would otherwise always force the slide.
	if !walkable {
		return slide.s
	}
	slideDist := vec.Sub(slide.s.Origin, start.Origin).Horizontal().Length()
	stepDist := vec.Sub(step.s.Origin, start.Origin).Horizontal().Length()
	if slideDist > stepDist {
		return slide.s
	}
	return step.s
}

// stepUpAndDown raises the player by the step height, slides and presses
// back down. It reports whether it landed on walkable ground.
func (m *mover) stepUpAndDown() bool {
	up := vec.Vec3{0, m.p.StepHeight, 0}
	if _, hit := m.trace(collision.Ray{Origin: m.feet(), Vector: up}, "stepup"); !hit {
		m.s.Origin = vec.Add(m.s.Origin, up)
	}

	m.flyMove()

	down := collision.Ray{
		Origin: m.feet(),
		Vector: vec.Vec3{0, -m.p.StepHeight, 0},
	}
	t, hit := m.trace(down, "stepdown")
	if !hit {
		m.s.Origin = vec.Add(m.s.Origin, down.Vector)
		return false
	}
	advance := math.Max(0, t.Fraction-m.p.ContactOffset/m.p.StepHeight)
	m.s.Origin = vec.MA(m.s.Origin, advance, down.Vector)
	return t.Normal[UP] >= walkableNormal
}

// fixOrigin keeps the feet out of walls ahead and lifts the core out of the
// floor after a position update.
func (m *mover) fixOrigin() {
	dir := m.s.Velocity.Normalize()
	if dir != (vec.Vec3{}) {
		probe := vec.Scale(m.p.FeetProbe, dir)
		r := collision.Ray{Origin: m.feet(), Vector: probe}
		if t, hit := m.trace(r, "feet"); hit && !m.canStepOver(probe) {
			// push out along the normal by the depth the probe reached past the plane
			depth := -vec.Dot(vec.Scale(1-t.Fraction, probe), t.Normal)
			if depth > 0 {
				m.s.Origin = vec.MA(m.s.Origin, depth, t.Normal)
			}
			_, m.s.Velocity = ClipVelocity(m.s.Velocity, t.Normal, 1)
		}
	}
	m.liftCore()
}

// canStepOver reports whether the feet probe is clear one step height up.
func (m *mover) canStepOver(probe vec.Vec3) bool {
	start := m.feet()
	start[UP] += m.p.StepHeight
	_, hit := m.trace(collision.Ray{Origin: start, Vector: probe}, "stepover")
	return !hit
}
