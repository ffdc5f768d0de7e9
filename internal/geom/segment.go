package geom

import "github.com/vovakirdan/illumi/internal/core"

// Segment is a straight line primitive between two mutable endpoints.
type Segment struct {
	P1, P2   core.Vec2
	Normal   core.Vec2 // unit, (P2-P1) rotated by -90 degrees
	Material Material
	Owner    Handle
}

// NewSegment creates a segment and derives its normal.
func NewSegment(owner Handle, p1, p2 core.Vec2, m Material) Segment {
	s := Segment{P1: p1, P2: p2, Material: m, Owner: owner}
	s.Recalculate()
	return s
}

// Recalculate refreshes the derived normal after the endpoints moved.
// A zero-length segment gets a zero normal.
func (s *Segment) Recalculate() {
	d := s.P2.Sub(s.P1)
	s.Normal = core.Vec2{X: d.Y, Y: -d.X}.Normalize()
}

// Move rotates both endpoints by angle about pivot, then translates by delta.
func (s *Segment) Move(pivot, delta core.Vec2, angle float64) {
	s.P1 = s.P1.RotateAround(pivot, angle).Add(delta)
	s.P2 = s.P2.RotateAround(pivot, angle).Add(delta)
	s.Recalculate()
}

// Midpoint returns the segment center.
func (s Segment) Midpoint() core.Vec2 {
	return s.P1.Lerp(s.P2, 0.5)
}
