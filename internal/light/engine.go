package light

import (
	"github.com/vovakirdan/illumi/internal/config"
	"github.com/vovakirdan/illumi/internal/core"
	"github.com/vovakirdan/illumi/internal/geom"
	"github.com/vovakirdan/illumi/internal/raycast"
)

// Effects receives the side effects of terminal hits. The scene implements
// it; calls happen synchronously from inside Propagate.
type Effects interface {
	// Charge is called once per ray that ends on a receiver surface.
	Charge(owner geom.Handle)
	// Trigger is called once per ray that ends on a trigger surface.
	Trigger(owner geom.Handle)
}

// Report summarizes one propagation pass. Charged and Triggered list the
// owners hit, one entry per ray in wavefront order; their backing arrays
// are reused by the engine's next pass.
type Report struct {
	Casts       int // rays cast across all wavefronts
	Wavefronts  int
	Outcomes    [numOutcomes]int
	ChargeHits  int
	TriggerHits int
	Charged     []geom.Handle
	Triggered   []geom.Handle
}

// Count returns how many rays ended with outcome o.
func (r Report) Count(o Outcome) int {
	if int(o) >= len(r.Outcomes) {
		return 0
	}
	return r.Outcomes[o]
}

// Options are the engine constants owned by configuration.
type Options struct {
	MaxGenerations int
	Epsilon        float64
	MaxRayLength   float64
}

// OptionsFrom extracts engine options from the light section.
func OptionsFrom(cfg config.LightSection) Options {
	return Options{
		MaxGenerations: cfg.MaxGenerations,
		Epsilon:        cfg.RayEpsilon,
		MaxRayLength:   cfg.MaxRayLength,
	}
}

// Engine runs propagation passes. Its buffers are reused between passes;
// an Engine must not be shared between goroutines.
type Engine struct {
	opts Options

	wave []*Ray
	next []*Ray
	rays raycast.Rays
	segs raycast.Hits
	arcs raycast.Hits

	charged   []geom.Handle
	triggered []geom.Handle
}

// NewEngine creates an engine.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Options returns the engine constants.
func (e *Engine) Options() Options {
	return e.opts
}

// Propagate resets every source's root rays, casts wavefronts until none
// remain, and resolves each ray against the nearest primitive it hits.
// fx may be nil.
func (e *Engine) Propagate(snap *Snapshot, sources []*Source, fx Effects) Report {
	rep := Report{
		Charged:   e.charged[:0],
		Triggered: e.triggered[:0],
	}

	e.wave = e.wave[:0]
	for _, src := range sources {
		for i := range src.Rays {
			r := &src.Rays[i]
			r.reset(0)
			e.wave = append(e.wave, r)
		}
	}

	for len(e.wave) > 0 {
		e.rays.Reset()
		for _, r := range e.wave {
			e.rays.Push(r.Origin, r.Dir)
		}
		raycast.CastSegments(&e.rays, &snap.segs, &e.segs)
		raycast.CastArcs(&e.rays, &snap.arcs, &e.arcs)

		rep.Casts += len(e.wave)
		rep.Wavefronts++

		e.next = e.next[:0]
		for i, r := range e.wave {
			e.resolve(r, raycast.Nearest(&e.segs, &e.arcs, i), snap, fx, &rep)
			rep.Outcomes[r.Outcome]++
			if c := r.Child(); c != nil {
				e.next = append(e.next, c)
			}
		}
		e.wave, e.next = e.next, e.wave
	}
	e.charged, e.triggered = rep.Charged, rep.Triggered
	return rep
}

func (e *Engine) resolve(r *Ray, h raycast.Hit, snap *Snapshot, fx Effects, rep *Report) {
	r.HitClass = h.Class
	r.HitIndex = h.Index
	r.Dist = h.Dist

	if h.Class == raycast.ClassNone {
		r.End = r.Origin.Add(r.Dir.Scale(e.opts.MaxRayLength))
		r.Outcome = Absorbed
		return
	}
	r.End = r.Origin.Add(r.Dir.Scale(h.Dist))

	if r.Generation >= e.opts.MaxGenerations {
		r.Outcome = Absorbed
		return
	}

	switch h.Class {
	case raycast.ClassSegment:
		seg := &snap.Segments[h.Index]
		switch seg.Material.Kind() {
		case geom.KindReflect:
			e.branch(r, geom.Reflect(r.Dir, seg.Normal), Reflected)
		case geom.KindReceive:
			r.Outcome = Received
			rep.ChargeHits++
			rep.Charged = append(rep.Charged, seg.Owner)
			if fx != nil {
				fx.Charge(seg.Owner)
			}
		case geom.KindTrigger:
			r.Outcome = Triggered
			rep.TriggerHits++
			rep.Triggered = append(rep.Triggered, seg.Owner)
			if fx != nil {
				fx.Trigger(seg.Owner)
			}
		default:
			r.Outcome = Absorbed
		}

	case raycast.ClassArc:
		arc := &snap.Arcs[h.Index]
		switch arc.Material.Kind() {
		case geom.KindRefract:
			if d, ok := arc.RefractedDirection(r.Dir, r.End); ok {
				e.branch(r, d, Refracted)
				return
			}
			r.Outcome = Absorbed
		case geom.KindReflect:
			n := r.End.Sub(arc.Center).Normalize()
			e.branch(r, geom.Reflect(r.Dir, n), Reflected)
		default:
			r.Outcome = Absorbed
		}
	}
}

// branch spawns the child ray, or absorbs r when the new direction is
// unusable.
func (e *Engine) branch(r *Ray, dir core.Vec2, o Outcome) {
	if !dir.IsFinite() || dir.LenSq() == 0 {
		r.Outcome = Absorbed
		return
	}
	r.Outcome = o
	r.spawn(r.End.Add(dir.Scale(e.opts.Epsilon)), dir)
}
