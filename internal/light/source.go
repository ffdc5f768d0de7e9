package light

import (
	"github.com/vovakirdan/illumi/internal/core"
	"github.com/vovakirdan/illumi/internal/geom"
)

// SourceKind selects how a source lays out its rays.
type SourceKind uint8

const (
	// Radial fans rays over an angular spread from one point.
	Radial SourceKind = iota
	// Parallel starts rays along a baseline, all sharing one direction.
	Parallel
)

// String returns the kind name.
func (k SourceKind) String() string {
	if k == Parallel {
		return "parallel"
	}
	return "radial"
}

// Source owns a fixed set of root rays.
type Source struct {
	Kind   SourceKind
	Owner  geom.Handle
	Pos    core.Vec2
	Rot    float64
	Spread float64 // radial only
	Width  float64 // parallel only
	Rays   []Ray
}

// NewRadial creates a radial source with count rays.
func NewRadial(owner geom.Handle, pos core.Vec2, rot, spread float64, count int) *Source {
	s := &Source{Kind: Radial, Owner: owner, Spread: spread, Rays: make([]Ray, max(count, 1))}
	s.Place(pos, rot)
	return s
}

// NewParallel creates a parallel source with count rays over width.
func NewParallel(owner geom.Handle, pos core.Vec2, rot, width float64, count int) *Source {
	s := &Source{Kind: Parallel, Owner: owner, Width: width, Rays: make([]Ray, max(count, 1))}
	s.Place(pos, rot)
	return s
}

// Place moves the source and recomputes every root ray.
//
// Radial ray n of N points at (n/N)(rot - s/2) + (1 - n/N)(rot + s/2).
// Parallel ray n starts at pos - width(n/(N-1) - 1/2)·perp(rot).
func (s *Source) Place(pos core.Vec2, rot float64) {
	s.Pos = pos
	s.Rot = rot
	n := len(s.Rays)

	switch s.Kind {
	case Parallel:
		dir := core.FromAngle(rot)
		perp := dir.Perp()
		for i := range s.Rays {
			var off float64
			if n > 1 {
				off = float64(i)/float64(n-1) - 0.5
			}
			s.Rays[i].Aim(pos.Sub(perp.Scale(s.Width*off)), dir)
		}
	default:
		lo, hi := rot-s.Spread/2, rot+s.Spread/2
		for i := range s.Rays {
			f := float64(i) / float64(n)
			s.Rays[i].Aim(pos, core.FromAngle(f*lo+(1-f)*hi))
		}
	}
}

// Move applies a pose delta: rotate by dRot, then translate by dp.
func (s *Source) Move(dp core.Vec2, dRot float64) {
	s.Place(s.Pos.Add(dp), s.Rot+dRot)
}
