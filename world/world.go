// SPDX-License-Identifier: GPL-2.0-or-later

// Package world holds the static collision geometry of a scene and answers
// nearest hit queries against it.
package world

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/zeebo/xxh3"

	"quakemove/collision"
	"quakemove/conlog"
	"quakemove/math/mat"
	"quakemove/math/vec"
	"quakemove/trace"
)

// Epsilon is the fraction of the ray a query reaches back behind its origin
// to catch rays starting inside geometry.
const Epsilon = 1e-4

// A probe hit this close to Epsilon started on the surface, not in front of it.
const touchTolerance = 1e-8

// Object is a source of static collision geometry: a local triangle soup,
// 9 floats per triangle, and the transform placing it in the world.
type Object interface {
	WorldMatrix() mat.Mat4
	Vertexes() []float32
}

type Options struct {
	// AreaIndex enables the static area tree. Query results do not change.
	AreaIndex bool
}

// World is built once per scene and then only read. Rebuild must not run
// concurrently with queries of the same tick.
type World struct {
	mu        sync.RWMutex
	opts      Options
	triangles []collision.Triangle
	area      *areaNode
	checksum  uint64
	tracer    trace.Sink
}

func New(opts Options) *World {
	return &World{opts: opts}
}

// SetTracer installs the sink receiving tagged query records.
func (w *World) SetTracer(s trace.Sink) {
	w.mu.Lock()
	w.tracer = s
	w.mu.Unlock()
}

// Rebuild replaces all triangles with the transformed geometry of objects.
// Trailing floats that do not make a whole triangle are dropped.
func (w *World) Rebuild(objects ...Object) {
	var tris []collision.Triangle
	for i, o := range objects {
		vs := o.Vertexes()
		m := o.WorldMatrix()
		if r := len(vs) % 9; r != 0 {
			conlog.Warnf("world object %d: %d trailing vertex floats ignored\n", i, r)
			vs = vs[:len(vs)-r]
		}
		p := func(j int) vec.Vec3 {
			return mat.TransformPoint(m, vec.Vec3{float64(vs[j]), float64(vs[j+1]), float64(vs[j+2])})
		}
		for j := 0; j < len(vs); j += 9 {
			tris = append(tris, collision.Triangle{
				V0: p(j),
				V1: p(j + 3),
				V2: p(j + 6),
			})
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.triangles = tris
	w.checksum = checksum(tris)
	w.area = nil
	if w.opts.AreaIndex && len(tris) > 0 {
		w.area = buildArea(tris)
	}
	conlog.DPrintf("world rebuilt: %d objects, %d triangles, checksum %016x\n", len(objects), len(tris), w.checksum)
}

func checksum(tris []collision.Triangle) uint64 {
	h := xxh3.New()
	var buf [8]byte
	for _, t := range tris {
		for _, v := range [3]vec.Vec3{t.V0, t.V1, t.V2} {
			for _, c := range v {
				binary.LittleEndian.PutUint64(buf[:], math.Float64bits(c))
				h.Write(buf[:])
			}
		}
	}
	return h.Sum64()
}

// Triangles returns a copy of the world space triangles.
func (w *World) Triangles() []collision.Triangle {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]collision.Triangle(nil), w.triangles...)
}

func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.triangles)
}

// Checksum identifies the triangle buffer of the last Rebuild.
func (w *World) Checksum() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.checksum
}

// Query returns the nearest triangle hit along r.
//
// Candidates are the triangles hit by a probe starting Epsilon*r.Vector
// behind r.Origin. A candidate the real ray misses although the probe found
// it in front of the origin is touching: it counts as a hit at depth Epsilon
// and is returned with the probe's intersection. The smallest depth wins,
// equal depths keep the lower triangle index.
//
// A non empty tag forwards the query to the tracer.
func (w *World) Query(r collision.Ray, tag string) (collision.Intersection, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	hit, ok := w.query(r)
	if tag != "" && w.tracer != nil {
		w.tracer.Trace(trace.Record{Tag: tag, Ray: r, Hit: ok, Result: hit})
	}
	return hit, ok
}

func (w *World) query(r collision.Ray) (collision.Intersection, bool) {
	probe := collision.Ray{
		Origin: vec.MA(r.Origin, -Epsilon, r.Vector),
		Vector: r.Vector,
	}
	var (
		best      collision.Intersection
		found     bool
		bestDepth = 1 + Epsilon
	)
	test := func(t collision.Triangle) {
		p, ok := collision.Intersect(probe, t)
		if !ok {
			return
		}
		hit, ok := collision.Intersect(r, t)
		depth := hit.Fraction
		if !ok {
			if p.Fraction <= Epsilon+touchTolerance {
				// on or behind the origin
				return
			}
			hit = p
			depth = Epsilon
		}
		if depth < bestDepth {
			best = hit
			bestDepth = depth
			found = true
		}
	}
	if w.area == nil {
		for _, t := range w.triangles {
			test(t)
		}
		return best, found
	}
	for _, i := range w.area.candidates(probe) {
		test(w.triangles[i])
	}
	return best, found
}
