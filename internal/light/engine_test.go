package light

import (
	"math"
	"reflect"
	"slices"
	"testing"

	"github.com/vovakirdan/illumi/internal/core"
	"github.com/vovakirdan/illumi/internal/geom"
	"github.com/vovakirdan/illumi/internal/raycast"
)

func nearly(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

type recorder struct {
	charged   []geom.Handle
	triggered []geom.Handle
}

func (r *recorder) Charge(h geom.Handle)  { r.charged = append(r.charged, h) }
func (r *recorder) Trigger(h geom.Handle) { r.triggered = append(r.triggered, h) }

var testOpts = Options{MaxGenerations: 10, Epsilon: 0.001, MaxRayLength: 1000}

func TestParallelSourceAgainstDiagonalMirror(t *testing.T) {
	src := NewParallel(0, core.V(0, 0), 0, 40, 5)

	var snap Snapshot
	snap.AddSegment(geom.NewSegment(1, core.V(50, -50), core.V(150, 50), geom.Opaque|geom.Reflective))

	rep := NewEngine(testOpts).Propagate(&snap, []*Source{src}, nil)

	for i := range src.Rays {
		r := &src.Rays[i]
		if r.Outcome != Reflected {
			t.Fatalf("ray %d: outcome %v, expected reflected", i, r.Outcome)
		}
		wantDist := 100 + r.Origin.Y
		if !nearly(r.Dist, wantDist, 1e-9) {
			t.Errorf("ray %d: Dist = %f, expected %f", i, r.Dist, wantDist)
		}
		c := r.Child()
		if c == nil {
			t.Fatalf("ray %d: no child", i)
		}
		if c.Generation != 1 {
			t.Errorf("ray %d: child generation %d, expected 1", i, c.Generation)
		}
		if !nearly(c.Dir.X, 0, 1e-9) || !nearly(math.Abs(c.Dir.Y), 1, 1e-9) {
			t.Errorf("ray %d: child dir %v, expected (0, ±1)", i, c.Dir)
		}
		if c.Outcome != Absorbed || !math.IsInf(c.Dist, 1) {
			t.Errorf("ray %d: child should escape, got %v dist %f", i, c.Outcome, c.Dist)
		}
		if c.Child() != nil {
			t.Errorf("ray %d: escaped child must not spawn", i)
		}
	}

	if rep.Casts != 10 || rep.Wavefronts != 2 {
		t.Errorf("Casts = %d, Wavefronts = %d, expected 10 and 2", rep.Casts, rep.Wavefronts)
	}
	if rep.Count(Reflected) != 5 || rep.Count(Absorbed) != 5 {
		t.Errorf("outcomes = %v", rep.Outcomes)
	}
}

func TestChildOriginOffset(t *testing.T) {
	src := NewParallel(0, core.V(0, 0), 0, 0, 1)
	var snap Snapshot
	snap.AddSegment(geom.NewSegment(1, core.V(10, -5), core.V(10, 5), geom.Reflective))

	NewEngine(testOpts).Propagate(&snap, []*Source{src}, nil)

	c := src.Rays[0].Child()
	if c == nil {
		t.Fatal("expected a reflected child")
	}
	want := core.V(10-testOpts.Epsilon, 0)
	if !nearly(c.Origin.X, want.X, 1e-12) || !nearly(c.Origin.Y, want.Y, 1e-12) {
		t.Errorf("child origin %v, expected %v", c.Origin, want)
	}
}

func mirrorCorridor() *Snapshot {
	var snap Snapshot
	snap.AddSegment(geom.NewSegment(1, core.V(100, -10), core.V(100, 10), geom.Reflective))
	snap.AddSegment(geom.NewSegment(2, core.V(0, 10), core.V(0, -10), geom.Reflective))
	return &snap
}

func TestGenerationCap(t *testing.T) {
	for _, maxGen := range []int{0, 1, 5, 12} {
		opts := testOpts
		opts.MaxGenerations = maxGen
		src := NewParallel(0, core.V(50, 0), 0, 0, 1)

		rep := NewEngine(opts).Propagate(mirrorCorridor(), []*Source{src}, nil)

		root := &src.Rays[0]
		if d := root.Depth(); d != maxGen+1 {
			t.Errorf("max %d: chain depth %d, expected %d", maxGen, d, maxGen+1)
		}
		var last *Ray
		root.Chain(func(r *Ray) {
			if last != nil && r.Generation != last.Generation+1 {
				t.Errorf("max %d: generation jumped %d -> %d", maxGen, last.Generation, r.Generation)
			}
			last = r
		})
		if last.Outcome != Absorbed || last.HitClass != raycast.ClassSegment {
			t.Errorf("max %d: last link %v on %v, expected forced absorption on a mirror",
				maxGen, last.Outcome, last.HitClass)
		}
		if rep.Casts != maxGen+1 {
			t.Errorf("max %d: Casts = %d", maxGen, rep.Casts)
		}
	}
}

func TestGenerationCapOverridesReceiver(t *testing.T) {
	opts := testOpts
	opts.MaxGenerations = 0
	src := NewParallel(0, core.V(0, 0), 0, 0, 1)
	var snap Snapshot
	snap.AddSegment(geom.NewSegment(7, core.V(10, -5), core.V(10, 5), geom.Receiver))

	fx := &recorder{}
	NewEngine(opts).Propagate(&snap, []*Source{src}, fx)

	if src.Rays[0].Outcome != Absorbed {
		t.Errorf("outcome %v, expected absorbed at the cap", src.Rays[0].Outcome)
	}
	if len(fx.charged) != 0 {
		t.Errorf("receiver charged %d times past the cap", len(fx.charged))
	}
}

func TestReceiverAndTriggerEffects(t *testing.T) {
	src := NewParallel(0, core.V(0, 0), 0, 20, 3) // rays at y = 10, 0, -10
	var snap Snapshot
	snap.AddSegment(geom.NewSegment(4, core.V(50, 5), core.V(50, 15), geom.Receiver))
	snap.AddSegment(geom.NewSegment(5, core.V(30, -15), core.V(30, -5), geom.Trigger))
	snap.AddSegment(geom.NewSegment(6, core.V(80, -2), core.V(80, 2), geom.Opaque))

	fx := &recorder{}
	rep := NewEngine(testOpts).Propagate(&snap, []*Source{src}, fx)

	if !slices.Equal(fx.charged, []geom.Handle{4}) {
		t.Errorf("charged = %v, expected [4]", fx.charged)
	}
	if !slices.Equal(fx.triggered, []geom.Handle{5}) {
		t.Errorf("triggered = %v, expected [5]", fx.triggered)
	}
	want := []Outcome{Received, Absorbed, Triggered}
	for i, o := range want {
		if src.Rays[i].Outcome != o {
			t.Errorf("ray %d: %v, expected %v", i, src.Rays[i].Outcome, o)
		}
		if src.Rays[i].Child() != nil {
			t.Errorf("ray %d: terminal ray spawned a child", i)
		}
	}
	if rep.ChargeHits != 1 || rep.TriggerHits != 1 {
		t.Errorf("ChargeHits = %d, TriggerHits = %d", rep.ChargeHits, rep.TriggerHits)
	}
	if !slices.Equal(rep.Charged, []geom.Handle{4}) || !slices.Equal(rep.Triggered, []geom.Handle{5}) {
		t.Errorf("report owners: charged %v, triggered %v", rep.Charged, rep.Triggered)
	}
}

func TestReportOwnersInWavefrontOrder(t *testing.T) {
	src := NewParallel(0, core.V(0, 0), 0, 20, 2) // rays at y = 10, -10
	var snap Snapshot
	snap.AddSegment(geom.NewSegment(1, core.V(15, 5), core.V(25, 15), geom.Reflective))
	snap.AddSegment(geom.NewSegment(2, core.V(10, 40), core.V(30, 40), geom.Receiver))
	snap.AddSegment(geom.NewSegment(3, core.V(50, -15), core.V(50, -5), geom.Receiver))

	eng := NewEngine(testOpts)
	for pass := 0; pass < 2; pass++ {
		rep := eng.Propagate(&snap, []*Source{src}, nil)
		// Ray 0 reaches receiver 2 only after the mirror, one wavefront later.
		if !slices.Equal(rep.Charged, []geom.Handle{3, 2}) {
			t.Errorf("pass %d: charged %v, expected [3 2]", pass, rep.Charged)
		}
		if len(rep.Triggered) != 0 {
			t.Errorf("pass %d: triggered %v, expected none", pass, rep.Triggered)
		}
	}
}

func TestNilEffects(t *testing.T) {
	src := NewParallel(0, core.V(0, 0), 0, 0, 1)
	var snap Snapshot
	snap.AddSegment(geom.NewSegment(4, core.V(50, -5), core.V(50, 5), geom.Receiver))

	NewEngine(testOpts).Propagate(&snap, []*Source{src}, nil)
	if src.Rays[0].Outcome != Received {
		t.Errorf("outcome %v, expected received", src.Rays[0].Outcome)
	}
}

func TestUnhitRayEnd(t *testing.T) {
	src := NewRadial(0, core.V(5, 5), 0, 0, 1)
	rep := NewEngine(testOpts).Propagate(&Snapshot{}, []*Source{src}, nil)

	r := src.Rays[0]
	if r.Outcome != Absorbed || r.HitClass != raycast.ClassNone || !math.IsInf(r.Dist, 1) {
		t.Errorf("got %v/%v/%f", r.Outcome, r.HitClass, r.Dist)
	}
	if !nearly(r.End.X, 1005, 1e-9) || !nearly(r.End.Y, 5, 1e-9) {
		t.Errorf("End = %v, expected (1005, 5)", r.End)
	}
	if rep.Count(Absorbed) != 1 {
		t.Errorf("absorbed = %d", rep.Count(Absorbed))
	}
}

func lensSnapshot(pos core.Vec2, rot float64) *Snapshot {
	const (
		radius   = 110.0
		coverage = math.Pi / 5
	)
	dir := core.FromAngle(rot)
	off := dir.Scale(math.Cos(coverage/2) * radius)

	var snap Snapshot
	snap.AddArc(geom.NewArc(1, pos.Sub(off), radius, rot, coverage, geom.Refractive, 1.5))
	snap.AddArc(geom.NewArc(1, pos.Add(off), radius, rot+math.Pi, coverage, geom.Refractive, 1.5))
	return &snap
}

func TestLensRefraction(t *testing.T) {
	src := NewParallel(0, core.V(0, 0), 0, 20, 3) // y = 10, 0, -10
	snap := lensSnapshot(core.V(100, 0), 0)

	rep := NewEngine(testOpts).Propagate(snap, []*Source{src}, nil)

	for i := range src.Rays {
		root := &src.Rays[i]
		if d := root.Depth(); d != 3 {
			t.Fatalf("ray %d: depth %d, expected enter, exit, escape", i, d)
		}
		inside := root.Child()
		exit := inside.Child()
		if root.Outcome != Refracted || inside.Outcome != Refracted || exit.Outcome != Absorbed {
			t.Errorf("ray %d: outcomes %v, %v, %v", i, root.Outcome, inside.Outcome, exit.Outcome)
		}
		if root.HitClass != raycast.ClassArc || inside.HitClass != raycast.ClassArc {
			t.Errorf("ray %d: expected arc hits", i)
		}
	}

	axis := src.Rays[1].Child().Child()
	if !nearly(axis.Dir.X, 1, 1e-9) || !nearly(axis.Dir.Y, 0, 1e-9) {
		t.Errorf("axial ray bent: %v", axis.Dir)
	}
	upper := src.Rays[0].Child().Child()
	lower := src.Rays[2].Child().Child()
	if src.Rays[0].Origin.Y <= 0 || upper.Dir.Y >= 0 {
		t.Errorf("upper ray should converge downward: origin %v dir %v", src.Rays[0].Origin, upper.Dir)
	}
	if lower.Dir.Y <= 0 {
		t.Errorf("lower ray should converge upward: dir %v", lower.Dir)
	}
	if rep.Count(Refracted) != 6 {
		t.Errorf("refracted = %d, expected 6", rep.Count(Refracted))
	}
}

func TestRefractionFailureAbsorbs(t *testing.T) {
	// A ray grazing the outside of an arc has no usable transmitted direction.
	var snap Snapshot
	snap.AddArc(geom.Arc{Center: core.V(50, 0), Radius: 10, Start: -math.Pi, End: math.Pi,
		Material: geom.Refractive, Index: 1.5, Owner: 1})

	src := NewParallel(0, core.V(0, 10), 0, 0, 1)
	NewEngine(testOpts).Propagate(&snap, []*Source{src}, nil)

	r := src.Rays[0]
	if r.HitClass == raycast.ClassArc && r.Outcome != Absorbed {
		t.Errorf("tangent hit should absorb, got %v", r.Outcome)
	}
	if r.Child() != nil {
		t.Errorf("tangent hit spawned a child")
	}
}

func TestPropagateDeterministic(t *testing.T) {
	build := func() ([]*Source, *Snapshot) {
		srcs := []*Source{
			NewRadial(0, core.V(20, 0), 0, math.Pi/3, 15),
			NewParallel(1, core.V(20, 30), -0.2, 30, 7),
		}
		snap := lensSnapshot(core.V(200, 10), 0.1)
		snap.AddSegment(geom.NewSegment(2, core.V(300, -100), core.V(320, 100), geom.Reflective))
		snap.AddSegment(geom.NewSegment(3, core.V(0, -200), core.V(0, 200), geom.Opaque))
		return srcs, snap
	}

	s1, snap1 := build()
	s2, snap2 := build()
	e := NewEngine(testOpts)
	r1 := e.Propagate(snap1, s1, nil)
	r2 := e.Propagate(snap2, s2, nil)

	if !reflect.DeepEqual(r1, r2) {
		t.Errorf("reports differ: %+v vs %+v", r1, r2)
	}
	if !slices.Equal(Strokes(nil, s1), Strokes(nil, s2)) {
		t.Error("stroke lists differ between identical passes")
	}
}

func TestChildReusedAcrossPasses(t *testing.T) {
	src := NewParallel(0, core.V(50, 0), 0, 0, 1)
	snap := mirrorCorridor()
	e := NewEngine(testOpts)

	e.Propagate(snap, []*Source{src}, nil)
	first := src.Rays[0].Child()
	e.Propagate(snap, []*Source{src}, nil)
	if src.Rays[0].Child() != first {
		t.Error("child ray was reallocated on the second pass")
	}

	// Removing the mirrors leaves the stored child unused but not exposed.
	e.Propagate(&Snapshot{}, []*Source{src}, nil)
	if src.Rays[0].Child() != nil {
		t.Error("stale child visible after a pass with no hit")
	}
}

func TestSourceLayout(t *testing.T) {
	t.Run("radial", func(t *testing.T) {
		s := NewRadial(0, core.V(1, 2), 0, math.Pi/2, 3)
		want := []float64{math.Pi / 4, math.Pi / 12, -math.Pi / 12}
		for i, a := range want {
			if !nearly(s.Rays[i].Dir.Angle(), a, 1e-12) {
				t.Errorf("ray %d angle %f, expected %f", i, s.Rays[i].Dir.Angle(), a)
			}
			if s.Rays[i].Origin != core.V(1, 2) {
				t.Errorf("ray %d origin %v", i, s.Rays[i].Origin)
			}
		}
	})

	t.Run("parallel", func(t *testing.T) {
		s := NewParallel(0, core.V(0, 0), math.Pi/2, 10, 3)
		// Direction +y; the first ray sits on the +perp side, and perp of +y is -x.
		wantX := []float64{-5, 0, 5}
		for i, x := range wantX {
			if !nearly(s.Rays[i].Origin.X, x, 1e-9) || !nearly(s.Rays[i].Origin.Y, 0, 1e-9) {
				t.Errorf("ray %d origin %v, expected (%f, 0)", i, s.Rays[i].Origin, x)
			}
			if !nearly(s.Rays[i].Dir.Y, 1, 1e-12) {
				t.Errorf("ray %d dir %v", i, s.Rays[i].Dir)
			}
		}
	})

	t.Run("single parallel ray", func(t *testing.T) {
		s := NewParallel(0, core.V(3, 4), 0, 10, 1)
		if s.Rays[0].Origin != core.V(3, 4) {
			t.Errorf("origin %v, expected the source position", s.Rays[0].Origin)
		}
	})

	t.Run("move recomputes rays", func(t *testing.T) {
		s := NewRadial(0, core.V(0, 0), 0, 0, 1)
		s.Move(core.V(10, 0), math.Pi/2)
		if s.Rays[0].Origin != core.V(10, 0) || !nearly(s.Rays[0].Dir.Y, 1, 1e-12) {
			t.Errorf("after move: origin %v dir %v", s.Rays[0].Origin, s.Rays[0].Dir)
		}
	})
}
