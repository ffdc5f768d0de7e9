// Package raycast is the batched intersection kernel: every ray of a
// wavefront against every segment and every arc of the scene snapshot.
//
// The cost is O(rays × primitives) per call. There is no spatial index; a
// single screen-sized level keeps both counts small.
package raycast

import (
	"math"

	"github.com/vovakirdan/illumi/internal/core"
	"github.com/vovakirdan/illumi/internal/geom"
)

// NoHit is the index reported for a ray that hit nothing.
const NoHit = -1

// Rays is a batch of ray origins and unit directions.
type Rays struct {
	Origin []core.Vec2
	Dir    []core.Vec2
}

// Len returns the number of rays in the batch.
func (r *Rays) Len() int {
	return len(r.Origin)
}

// Reset empties the batch, keeping its capacity.
func (r *Rays) Reset() {
	r.Origin = r.Origin[:0]
	r.Dir = r.Dir[:0]
}

// Push appends one ray.
func (r *Rays) Push(origin, dir core.Vec2) {
	r.Origin = append(r.Origin, origin)
	r.Dir = append(r.Dir, dir)
}

// SegmentTable is the flattened endpoint arrays of all segments.
type SegmentTable struct {
	P1 []core.Vec2
	P2 []core.Vec2
}

// Len returns the number of segments.
func (t *SegmentTable) Len() int {
	return len(t.P1)
}

// Reset empties the table, keeping its capacity.
func (t *SegmentTable) Reset() {
	t.P1 = t.P1[:0]
	t.P2 = t.P2[:0]
}

// Push appends one segment.
func (t *SegmentTable) Push(p1, p2 core.Vec2) {
	t.P1 = append(t.P1, p1)
	t.P2 = append(t.P2, p2)
}

// ArcTable is the flattened center, radius and span arrays of all arcs.
type ArcTable struct {
	Center []core.Vec2
	Radius []float64
	Start  []float64
	End    []float64
}

// Len returns the number of arcs.
func (t *ArcTable) Len() int {
	return len(t.Center)
}

// Reset empties the table, keeping its capacity.
func (t *ArcTable) Reset() {
	t.Center = t.Center[:0]
	t.Radius = t.Radius[:0]
	t.Start = t.Start[:0]
	t.End = t.End[:0]
}

// Push appends one arc.
func (t *ArcTable) Push(a geom.Arc) {
	t.Center = append(t.Center, a.Center)
	t.Radius = append(t.Radius, a.Radius)
	t.Start = append(t.Start, a.Start)
	t.End = append(t.End, a.End)
}

// Hits holds the per-ray nearest distance and primitive index of one query.
type Hits struct {
	Dist  []float64
	Index []int
}

// resize sizes the buffers for n rays and marks every ray as a miss.
func (h *Hits) resize(n int) {
	if cap(h.Dist) < n {
		h.Dist = make([]float64, n)
		h.Index = make([]int, n)
	}
	h.Dist = h.Dist[:n]
	h.Index = h.Index[:n]
	inf := math.Inf(1)
	for i := range h.Dist {
		h.Dist[i] = inf
		h.Index[i] = NoHit
	}
}

// CastSegments finds, for every ray, the nearest segment it crosses.
//
// For each pair it solves P1 + t(P2-P1) = O + uD. The pair is rejected when
// the system is degenerate (parallel or collinear), when t is outside [0, 1],
// or when u < 0. Equal distances keep the lower segment index.
func CastSegments(rays *Rays, segs *SegmentTable, out *Hits) {
	out.resize(rays.Len())
	for i := range rays.Origin {
		o, d := rays.Origin[i], rays.Dir[i]
		for j := range segs.P1 {
			p1 := segs.P1[j]
			e := segs.P2[j].Sub(p1)

			den := e.Cross(d)
			if den == 0 {
				continue
			}
			w := o.Sub(p1)
			t := w.Cross(d) / den
			if t < 0 || t > 1 {
				continue
			}
			u := w.Cross(e) / den
			if u < 0 {
				continue
			}
			if u < out.Dist[i] {
				out.Dist[i] = u
				out.Index[i] = j
			}
		}
	}
}

// CastArcs finds, for every ray, the nearest arc it crosses.
//
// Both roots of |O + uD - C|² = r² are considered. A root counts when u > 0
// and the hit point's angle about C lies inside the arc's span, including
// spans that wrap across the ±π seam. Equal distances keep the lower arc
// index.
func CastArcs(rays *Rays, arcs *ArcTable, out *Hits) {
	out.resize(rays.Len())
	for i := range rays.Origin {
		o, d := rays.Origin[i], rays.Dir[i]
		for j := range arcs.Center {
			c := arcs.Center[j]
			r := arcs.Radius[j]

			oc := o.Sub(c)
			b := d.Dot(oc)
			disc := b*b - (oc.LenSq() - r*r)
			if disc < 0 {
				continue
			}
			sq := math.Sqrt(disc)
			for _, u := range [2]float64{-b - sq, -b + sq} {
				if u <= 0 || u >= out.Dist[i] {
					continue
				}
				p := oc.Add(d.Scale(u))
				if !geom.SpanContains(arcs.Start[j], arcs.End[j], p.Angle()) {
					continue
				}
				out.Dist[i] = u
				out.Index[i] = j
			}
		}
	}
}
