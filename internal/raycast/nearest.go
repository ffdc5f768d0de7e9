package raycast

import "math"

// Class names the primitive family that produced a hit.
type Class uint8

const (
	ClassNone Class = iota
	ClassSegment
	ClassArc
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassSegment:
		return "segment"
	case ClassArc:
		return "arc"
	default:
		return "unknown"
	}
}

// Hit is the combined nearest hit of one ray.
type Hit struct {
	Dist  float64
	Class Class
	Index int
}

// Nearest combines the segment and arc results for ray i.
// The smaller distance wins; exact ties go to the segment.
func Nearest(segs, arcs *Hits, i int) Hit {
	sd, ad := segs.Dist[i], arcs.Dist[i]
	switch {
	case math.IsInf(sd, 1) && math.IsInf(ad, 1):
		return Hit{Dist: math.Inf(1), Class: ClassNone, Index: NoHit}
	case sd <= ad:
		return Hit{Dist: sd, Class: ClassSegment, Index: segs.Index[i]}
	default:
		return Hit{Dist: ad, Class: ClassArc, Index: arcs.Index[i]}
	}
}
