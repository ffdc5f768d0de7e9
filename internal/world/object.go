// Package world owns the scene: world objects, their light-participating
// geometry, receivers, enemies and actors, and the per-tick update that
// animates, flattens and propagates light through them.
package world

import (
	"math"

	"github.com/vovakirdan/illumi/internal/core"
	"github.com/vovakirdan/illumi/internal/geom"
	"github.com/vovakirdan/illumi/internal/light"
)

// Kind identifies a world object type.
type Kind uint8

const (
	KindWall Kind = iota
	KindMirror
	KindLens
	KindRadialSource
	KindParallelSource
	KindReceiver
	KindEnemy
	KindActor
)

// String returns the kind name used in level files.
func (k Kind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindMirror:
		return "mirror"
	case KindLens:
		return "lens"
	case KindRadialSource:
		return "radial_source"
	case KindParallelSource:
		return "parallel_source"
	case KindReceiver:
		return "receiver"
	case KindEnemy:
		return "enemy"
	case KindActor:
		return "actor"
	default:
		return "unknown"
	}
}

// IsSource reports whether the kind emits light.
func (k Kind) IsSource() bool {
	return k == KindRadialSource || k == KindParallelSource
}

// Blocker is anything a moving object must not overlap.
type Blocker interface {
	Box() core.Box
}

// Object is a positioned, rotatable entity owning geometry primitives.
type Object struct {
	Handle      geom.Handle
	Kind        Kind
	Name        string
	Pos         core.Vec2
	Rot         float64
	HalfW       float64
	HalfH       float64
	Interactive bool

	Segments []geom.Segment
	Arcs     []geom.Arc
	Source   *light.Source // light sources only

	Charge  float64 // receivers only
	Alerted bool    // enemies only

	Anim *Animation
}

// Footprint returns the oriented collision rectangle at the current pose.
func (o *Object) Footprint() core.Footprint {
	return core.Footprint{Center: o.Pos, HalfW: o.HalfW, HalfH: o.HalfH, Rotation: o.Rot}
}

// Box returns the axis-aligned bounds of the footprint.
func (o *Object) Box() core.Box {
	return o.Footprint().Bounds()
}

// MoveGeometry rotates every owned primitive by dRot about the current
// position, translates it by dp, and updates the pose.
func (o *Object) MoveGeometry(dp core.Vec2, dRot float64) {
	for i := range o.Segments {
		o.Segments[i].Move(o.Pos, dp, dRot)
	}
	for i := range o.Arcs {
		o.Arcs[i].Move(o.Pos, dp, dRot)
	}
	o.Pos = o.Pos.Add(dp)
	o.Rot += dRot
	if o.Source != nil {
		o.Source.Place(o.Pos, o.Rot)
	}
}

// MoveIfSafe applies the move only when the moved footprint overlaps none
// of the blockers. It reports whether the move happened.
func (o *Object) MoveIfSafe(dp core.Vec2, dRot float64, blockers []Blocker) bool {
	moved := core.Footprint{
		Center:   o.Pos.Add(dp),
		HalfW:    o.HalfW,
		HalfH:    o.HalfH,
		Rotation: o.Rot + dRot,
	}
	for _, b := range blockers {
		if b == Blocker(o) {
			continue
		}
		if moved.Overlaps(b.Box()) {
			return false
		}
	}
	o.MoveGeometry(dp, dRot)
	return true
}

// Satisfied reports whether a receiver's charge reached threshold.
func (o *Object) Satisfied(threshold float64) bool {
	return o.Kind == KindReceiver && o.Charge >= threshold
}

// Level returns the receiver's charge as a fraction of threshold, capped at 1.
func (o *Object) Level(threshold float64) float64 {
	if threshold <= 0 {
		return 0
	}
	return math.Min(o.Charge/threshold, 1)
}

// diagonals returns the two corner-to-corner segments of f.
func diagonals(owner geom.Handle, f core.Footprint, m geom.Material) []geom.Segment {
	c := f.Corners()
	return []geom.Segment{
		geom.NewSegment(owner, c[0], c[2], m),
		geom.NewSegment(owner, c[3], c[1], m),
	}
}

// borders returns the four edges of f. Edges 0 and 2 run along the local Y
// axis, edges 1 and 3 along the local X axis.
func borders(owner geom.Handle, f core.Footprint, sides, ends geom.Material) []geom.Segment {
	c := f.Corners()
	return []geom.Segment{
		geom.NewSegment(owner, c[0], c[3], sides),
		geom.NewSegment(owner, c[3], c[2], ends),
		geom.NewSegment(owner, c[2], c[1], sides),
		geom.NewSegment(owner, c[1], c[0], ends),
	}
}
