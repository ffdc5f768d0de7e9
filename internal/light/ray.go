// Package light propagates rays from light sources through a scene snapshot.
//
// Propagation is breadth-first: every live ray of one generation forms a
// wavefront that is cast against all segments and arcs in one batch, and the
// children spawned by that wavefront form the next one. Rays and their
// children are kept between ticks and overwritten in place.
package light

import (
	"math"

	"github.com/vovakirdan/illumi/internal/core"
	"github.com/vovakirdan/illumi/internal/raycast"
)

// Outcome is the terminal classification of a ray after a pass.
type Outcome uint8

const (
	Active Outcome = iota
	Absorbed
	Reflected
	Refracted
	Received
	Triggered

	numOutcomes
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Active:
		return "active"
	case Absorbed:
		return "absorbed"
	case Reflected:
		return "reflected"
	case Refracted:
		return "refracted"
	case Received:
		return "received"
	case Triggered:
		return "triggered"
	default:
		return "unknown"
	}
}

// Ray is one link of a ray chain.
type Ray struct {
	Origin     core.Vec2
	Dir        core.Vec2
	End        core.Vec2
	Dist       float64 // +Inf when nothing was hit
	Generation int
	Outcome    Outcome

	HitClass raycast.Class
	HitIndex int

	child   *Ray
	spawned bool
}

// Child returns the ray spawned by r during the last pass, or nil.
func (r *Ray) Child() *Ray {
	if !r.spawned {
		return nil
	}
	return r.child
}

// Aim sets a new origin and direction and clears the previous result.
func (r *Ray) Aim(origin, dir core.Vec2) {
	r.Origin = origin
	r.Dir = dir
	r.reset(0)
}

func (r *Ray) reset(gen int) {
	r.End = r.Origin
	r.Dist = math.Inf(1)
	r.Generation = gen
	r.Outcome = Active
	r.HitClass = raycast.ClassNone
	r.HitIndex = raycast.NoHit
	r.spawned = false
}

// spawn readies r's child for the next generation, allocating it only the
// first time the chain grows this deep.
func (r *Ray) spawn(origin, dir core.Vec2) *Ray {
	if r.child == nil {
		r.child = &Ray{}
	}
	c := r.child
	c.Origin = origin
	c.Dir = dir
	c.reset(r.Generation + 1)
	r.spawned = true
	return c
}

// Chain calls fn for r and every descendant in generation order.
func (r *Ray) Chain(fn func(*Ray)) {
	for cur := r; cur != nil; cur = cur.Child() {
		fn(cur)
	}
}

// Depth returns the number of links in the chain starting at r.
func (r *Ray) Depth() int {
	n := 0
	r.Chain(func(*Ray) { n++ })
	return n
}
