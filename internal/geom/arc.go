package geom

import (
	"math"

	"github.com/vovakirdan/illumi/internal/core"
)

// tangentCos is the smallest |cos| between ray and surface normal that still
// counts as crossing the surface rather than grazing it.
const tangentCos = 1e-9

// Arc is a circular arc primitive. The span runs counter-clockwise from Start
// to End; both are kept in (-π, π], so a span crossing the ±π seam has
// Start > End.
type Arc struct {
	Center   core.Vec2
	Radius   float64
	Start    float64
	End      float64
	Material Material
	Owner    Handle
	Index    float64 // refractive index of the glass inside the circle
}

// NewArc creates an arc of the given angular coverage centered on facing.
func NewArc(owner Handle, center core.Vec2, radius, facing, coverage float64, m Material, index float64) Arc {
	return Arc{
		Center:   center,
		Radius:   radius,
		Start:    core.NormalizeAngle(facing - coverage/2),
		End:      core.NormalizeAngle(facing + coverage/2),
		Material: m,
		Owner:    owner,
		Index:    index,
	}
}

// Wraps reports whether the span crosses the ±π seam.
func (a Arc) Wraps() bool {
	return a.Start > a.End
}

// Contains reports whether an angle in (-π, π] falls inside the span.
func (a Arc) Contains(angle float64) bool {
	return SpanContains(a.Start, a.End, angle)
}

// SpanContains is the span test shared with the batched kernel.
// A wrapped span is the union of [start, π] and (-π, end].
func SpanContains(start, end, angle float64) bool {
	if start <= end {
		return angle >= start && angle <= end
	}
	return angle >= start || angle <= end
}

// Move rotates the arc about pivot, then translates it by delta.
func (a *Arc) Move(pivot, delta core.Vec2, angle float64) {
	a.Center = a.Center.RotateAround(pivot, angle).Add(delta)
	a.Start = core.NormalizeAngle(a.Start + angle)
	a.End = core.NormalizeAngle(a.End + angle)
}

// Endpoints returns the points at Start and End.
func (a Arc) Endpoints() (core.Vec2, core.Vec2) {
	return a.PointAt(a.Start), a.PointAt(a.End)
}

// PointAt returns the point on the circle at angle.
func (a Arc) PointAt(angle float64) core.Vec2 {
	return a.Center.Add(core.FromAngle(angle).Scale(a.Radius))
}

// Sweep returns the angular length of the span in [0, 2π).
func (a Arc) Sweep() float64 {
	s := a.End - a.Start
	if s < 0 {
		s += 2 * math.Pi
	}
	return s
}

// RefractedDirection bends dir crossing the arc at hit.
// The glass is the inside of the circle: a ray moving against the outward
// normal enters (η = 1/Index), otherwise it exits (η = Index).
// It fails on grazing incidence and on total internal reflection.
func (a Arc) RefractedDirection(dir, hit core.Vec2) (core.Vec2, bool) {
	if a.Radius <= 0 || a.Index <= 0 {
		return core.Vec2{}, false
	}
	n := hit.Sub(a.Center).Scale(1 / a.Radius)
	eta := a.Index
	if dir.Dot(n) < 0 {
		eta = 1 / a.Index
	}
	return Refract(dir, n, eta)
}
