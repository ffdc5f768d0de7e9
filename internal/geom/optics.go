package geom

import (
	"math"

	"github.com/vovakirdan/illumi/internal/core"
)

// Reflect mirrors d about the unit normal n: d - 2n(n·d).
// The sign of n does not matter.
func Reflect(d, n core.Vec2) core.Vec2 {
	return d.Sub(n.Scale(2 * n.Dot(d)))
}

// Refract bends the unit direction d through a surface with unit normal n,
// where eta is n1/n2. The normal may face either side.
// Returns false on grazing incidence or total internal reflection.
func Refract(d, n core.Vec2, eta float64) (core.Vec2, bool) {
	cosi := d.Dot(n)
	if cosi > 0 {
		n = n.Neg()
	} else {
		cosi = -cosi
	}
	if cosi < tangentCos {
		return core.Vec2{}, false
	}
	if cosi > 1 {
		cosi = 1
	}
	k := 1 - eta*eta*(1-cosi*cosi)
	if k < 0 {
		return core.Vec2{}, false
	}
	t := d.Scale(eta).Add(n.Scale(eta*cosi - math.Sqrt(k)))
	return t.Normalize(), true
}
