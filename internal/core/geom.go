// Package core provides fundamental types and utilities shared by the light
// engine, the world model and the terminal front end.
// It contains no external dependencies (especially no Bubble Tea) to keep
// simulation logic pure and testable.
package core

import "math"

// Rect represents an integer cell rectangle on a Screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is an axis-aligned bounding box in world space.
type Box struct {
	Min, Max Vec2
}

// BoxAround returns the box of the given size centered on c.
func BoxAround(c Vec2, w, h float64) Box {
	return Box{
		Min: Vec2{c.X - w/2, c.Y - h/2},
		Max: Vec2{c.X + w/2, c.Y + h/2},
	}
}

// Center returns the box center.
func (b Box) Center() Vec2 {
	return b.Min.Lerp(b.Max, 0.5)
}

// Contains reports whether p lies inside the box (edges inclusive).
func (b Box) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Intersects reports whether two boxes overlap with positive area.
func (b Box) Intersects(o Box) bool {
	if b.Min.X >= o.Max.X || o.Min.X >= b.Max.X {
		return false
	}
	if b.Min.Y >= o.Max.Y || o.Min.Y >= b.Max.Y {
		return false
	}
	return true
}

// Footprint is an oriented rectangle: a center, two half extents and a rotation.
// World objects use it for collision against blockers.
type Footprint struct {
	Center   Vec2
	HalfW    float64 // along the rotated X axis
	HalfH    float64 // along the rotated Y axis
	Rotation float64
}

// Corners returns the four corners in counter-clockwise order.
func (f Footprint) Corners() [4]Vec2 {
	ax := FromAngle(f.Rotation).Scale(f.HalfW)
	ay := FromAngle(f.Rotation).Perp().Scale(f.HalfH)
	return [4]Vec2{
		f.Center.Sub(ax).Sub(ay),
		f.Center.Add(ax).Sub(ay),
		f.Center.Add(ax).Add(ay),
		f.Center.Sub(ax).Add(ay),
	}
}

// Bounds returns the axis-aligned box enclosing the footprint.
func (f Footprint) Bounds() Box {
	c := f.Corners()
	b := Box{Min: c[0], Max: c[0]}
	for _, p := range c[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}

// Contains reports whether p lies inside the footprint (edges inclusive).
func (f Footprint) Contains(p Vec2) bool {
	d := p.Sub(f.Center).Rotate(-f.Rotation)
	return math.Abs(d.X) <= f.HalfW && math.Abs(d.Y) <= f.HalfH
}

// Overlaps tests the footprint against an axis-aligned box using the
// separating axis theorem. Touching edges do not count as overlap.
func (f Footprint) Overlaps(b Box) bool {
	corners := f.Corners()
	boxCorners := [4]Vec2{
		b.Min, {b.Max.X, b.Min.Y}, b.Max, {b.Min.X, b.Max.Y},
	}
	axes := [4]Vec2{
		{1, 0},
		{0, 1},
		FromAngle(f.Rotation),
		FromAngle(f.Rotation).Perp(),
	}
	for _, axis := range axes {
		minA, maxA := project(corners, axis)
		minB, maxB := project(boxCorners, axis)
		if maxA <= minB || maxB <= minA {
			return false
		}
	}
	return true
}

func project(pts [4]Vec2, axis Vec2) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		d := p.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
