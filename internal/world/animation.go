package world

import "github.com/vovakirdan/illumi/internal/core"

// Pose is a position and rotation.
type Pose struct {
	Pos core.Vec2
	Rot float64
}

// Animation moves an object back and forth between two poses.
// T runs from 0 (From) to 1 (To) in steps of Speed per tick.
type Animation struct {
	From, To Pose
	Speed    float64

	t   float64
	dir float64
	// prev is the parameter before the last Next, restored by Backtrack.
	prev float64
}

// NewAnimation creates a ping-pong animation starting at from.
func NewAnimation(from, to Pose, speed float64) *Animation {
	return &Animation{From: from, To: to, Speed: speed, dir: 1}
}

// T returns the current interpolation parameter in [0, 1].
func (a *Animation) T() float64 {
	return a.t
}

// Forward reports whether the animation is heading toward To.
func (a *Animation) Forward() bool {
	return a.dir > 0
}

// Next advances one step, reversing at either end, and returns the new pose.
func (a *Animation) Next() Pose {
	a.prev = a.t
	a.t += a.dir * a.Speed
	if a.t >= 1 {
		a.t = 1
		a.dir = -1
	} else if a.t <= 0 {
		a.t = 0
		a.dir = 1
	}
	return a.At(a.t)
}

// Backtrack undoes the last step and reverses direction.
func (a *Animation) Backtrack() {
	if a.t != a.prev {
		// Next may already have flipped at an end; reverse relative to the
		// step that was actually taken.
		if a.t > a.prev {
			a.dir = -1
		} else {
			a.dir = 1
		}
	} else {
		a.dir = -a.dir
	}
	a.t = a.prev
}

// At returns the pose at parameter t.
func (a *Animation) At(t float64) Pose {
	return Pose{
		Pos: a.From.Pos.Lerp(a.To.Pos, t),
		Rot: a.From.Rot + (a.To.Rot-a.From.Rot)*t,
	}
}
