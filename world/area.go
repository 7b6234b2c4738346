// SPDX-License-Identifier: GPL-2.0-or-later

package world

import (
	"slices"

	"quakemove/collision"
	"quakemove/math/vec"
)

const (
	areaDepth = 4
	// query boxes grow by this much to cover rounding in the triangle test
	areaPad = 1e-3
)

// areaNode splits the world on the horizontal axes. A triangle lives in the
// deepest node whose half space fully contains it.
type areaNode struct {
	axis     int // -1 for leafs
	dist     float64
	children [2]*areaNode
	tris     []int
}

func createAreaNode(depth int, mins, maxs vec.Vec3) *areaNode {
	if depth == areaDepth {
		return &areaNode{axis: -1}
	}
	an := &areaNode{}
	s := vec.Sub(maxs, mins)
	an.axis = func() int {
		if s[0] > s[2] {
			return 0
		}
		return 2
	}()
	an.dist = 0.5 * (maxs[an.axis] + mins[an.axis])

	mins1, maxs1 := mins, maxs
	mins2, maxs2 := mins, maxs
	maxs1[an.axis] = an.dist
	mins2[an.axis] = an.dist

	an.children[0] = createAreaNode(depth+1, mins2, maxs2)
	an.children[1] = createAreaNode(depth+1, mins1, maxs1)
	return an
}

func buildArea(tris []collision.Triangle) *areaNode {
	mins, maxs := tris[0].Bounds()
	for _, t := range tris[1:] {
		tmin, tmax := t.Bounds()
		mins, _ = vec.MinMax(mins, tmin)
		_, maxs = vec.MinMax(maxs, tmax)
	}
	root := createAreaNode(0, mins, maxs)
	for i, t := range tris {
		root.link(i, t)
	}
	return root
}

func (a *areaNode) link(i int, t collision.Triangle) {
	absMin, absMax := t.Bounds()
	n := a
	for n.axis != -1 {
		if absMin[n.axis] > n.dist {
			n = n.children[0]
		} else if absMax[n.axis] < n.dist {
			n = n.children[1]
		} else {
			break
		}
	}
	n.tris = append(n.tris, i)
}

// candidates returns, in ascending order, the indices of all triangles whose
// node touches the bounds of the segment.
func (a *areaNode) candidates(r collision.Ray) []int {
	boxmins, boxmaxs := vec.MinMax(r.Origin, r.End())
	for i := range boxmins {
		boxmins[i] -= areaPad
		boxmaxs[i] += areaPad
	}
	var out []int
	var walk func(n *areaNode)
	walk = func(n *areaNode) {
		out = append(out, n.tris...)
		if n.axis == -1 {
			return
		}
		if boxmaxs[n.axis] > n.dist {
			walk(n.children[0])
		}
		if boxmins[n.axis] < n.dist {
			walk(n.children[1])
		}
	}
	walk(a)
	slices.Sort(out)
	return out
}
