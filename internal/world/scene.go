package world

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/illumi/internal/config"
	"github.com/vovakirdan/illumi/internal/core"
	"github.com/vovakirdan/illumi/internal/geom"
	"github.com/vovakirdan/illumi/internal/light"
)

// TickResult is what one Scene.Tick produced.
type TickResult struct {
	Tick      int
	Report    light.Report
	Satisfied bool          // at least one receiver at or above threshold
	Alerted   bool          // at least one enemy alerted
	NewAlerts []geom.Handle // enemies alerted during this tick
	Blocked   int           // animation steps reverted by a blocker
}

// Scene owns the object table and runs the per-tick update.
type Scene struct {
	cfg    config.LightConfig
	engine *light.Engine
	logger *log.Logger

	objects []*Object
	sources []*light.Source
	snap    light.Snapshot

	tick      int
	newAlerts []geom.Handle
}

// NewScene creates an empty scene. logger may be nil.
func NewScene(cfg config.LightConfig, logger *log.Logger) *Scene {
	return &Scene{
		cfg:    cfg,
		engine: light.NewEngine(light.OptionsFrom(cfg.Light)),
		logger: logger,
	}
}

// Config returns the configuration the scene was built with.
func (s *Scene) Config() config.LightConfig {
	return s.cfg
}

// Ticks returns the number of completed ticks.
func (s *Scene) Ticks() int {
	return s.tick
}

func (s *Scene) add(o *Object) *Object {
	o.Handle = geom.Handle(len(s.objects))
	for i := range o.Segments {
		o.Segments[i].Owner = o.Handle
	}
	for i := range o.Arcs {
		o.Arcs[i].Owner = o.Handle
	}
	if o.Source != nil {
		o.Source.Owner = o.Handle
		s.sources = append(s.sources, o.Source)
	}
	s.objects = append(s.objects, o)
	return o
}

// AddWall adds an opaque wall of cols × rows tiles.
// Only its two diagonals block light.
func (s *Scene) AddWall(pos core.Vec2, cols, rows, rot float64) *Object {
	tile := s.cfg.World.WallTile
	o := &Object{Kind: KindWall, Pos: pos, Rot: rot, HalfW: cols * tile / 2, HalfH: rows * tile / 2}
	o.Segments = diagonals(geom.NoOwner, o.Footprint(), geom.Opaque)
	return s.add(o)
}

// AddMirror adds a rectangular mirror whose two long sides reflect.
func (s *Scene) AddMirror(pos core.Vec2, rot float64) *Object {
	w := s.cfg.World
	o := &Object{
		Kind:        KindMirror,
		Pos:         pos,
		Rot:         rot,
		HalfW:       w.MirrorWidth / 2,
		HalfH:       w.MirrorHeight / 2,
		Interactive: true,
	}
	o.Segments = borders(geom.NoOwner, o.Footprint(), geom.Opaque|geom.Reflective, geom.Opaque)
	return s.add(o)
}

// AddLens adds a converging lens made of two refractive arcs facing rot
// and rot+π.
func (s *Scene) AddLens(pos core.Vec2, rot float64) *Object {
	l := s.cfg.Lens
	off := core.FromAngle(rot).Scale(math.Cos(l.CoverageAngle/2) * l.RadiusOfCurvature)
	half := l.RadiusOfCurvature * math.Sin(l.CoverageAngle/2)
	thick := l.RadiusOfCurvature * (1 - math.Cos(l.CoverageAngle/2))

	o := &Object{Kind: KindLens, Pos: pos, Rot: rot, HalfW: thick, HalfH: half, Interactive: true}
	o.Arcs = []geom.Arc{
		geom.NewArc(geom.NoOwner, pos.Sub(off), l.RadiusOfCurvature, rot, l.CoverageAngle, geom.Refractive, l.RefractiveIndex),
		geom.NewArc(geom.NoOwner, pos.Add(off), l.RadiusOfCurvature, rot+math.Pi, l.CoverageAngle, geom.Refractive, l.RefractiveIndex),
	}
	return s.add(o)
}

// AddRadialSource adds a point source fanning RayCount rays over spread.
func (s *Scene) AddRadialSource(pos core.Vec2, rot, spread float64) *Object {
	size := s.cfg.World.SourceWidth
	o := &Object{Kind: KindRadialSource, Pos: pos, Rot: rot, HalfW: size / 2, HalfH: size / 2}
	o.Segments = diagonals(geom.NoOwner, o.Footprint(), geom.Opaque)
	o.Source = light.NewRadial(geom.NoOwner, pos, rot, spread, s.cfg.Light.RayCount)
	return s.add(o)
}

// AddParallelSource adds a source emitting RayCount parallel rays across
// its width.
func (s *Scene) AddParallelSource(pos core.Vec2, rot float64) *Object {
	size := s.cfg.World.SourceWidth
	o := &Object{Kind: KindParallelSource, Pos: pos, Rot: rot, HalfW: size / 2, HalfH: size / 2}
	o.Segments = diagonals(geom.NoOwner, o.Footprint(), geom.Opaque)
	o.Source = light.NewParallel(geom.NoOwner, pos, rot, size, s.cfg.Light.RayCount)
	return s.add(o)
}

// AddReceiver adds a charge-accumulating receiver.
func (s *Scene) AddReceiver(pos core.Vec2, rot float64) *Object {
	size := s.cfg.World.ReceiverSize
	o := &Object{Kind: KindReceiver, Pos: pos, Rot: rot, HalfW: size / 2, HalfH: size / 2}
	o.Segments = diagonals(geom.NoOwner, o.Footprint(), geom.Receiver)
	return s.add(o)
}

// AddEnemy adds an enemy whose outline is a trigger surface.
func (s *Scene) AddEnemy(pos core.Vec2, rot float64) *Object {
	size := s.cfg.World.EnemySize
	o := &Object{Kind: KindEnemy, Pos: pos, Rot: rot, HalfW: size / 2, HalfH: size / 2}
	o.Segments = borders(geom.NoOwner, o.Footprint(), geom.Trigger, geom.Trigger)
	return s.add(o)
}

// AddActor adds a blocker such as the player marker. Its outline is opaque.
func (s *Scene) AddActor(name string, pos core.Vec2) *Object {
	size := s.cfg.World.ActorSize
	o := &Object{Kind: KindActor, Name: name, Pos: pos, HalfW: size / 2, HalfH: size / 2}
	o.Segments = borders(geom.NoOwner, o.Footprint(), geom.Opaque, geom.Opaque)
	return s.add(o)
}

// Animate attaches a ping-pong animation to h, travelling by travel and
// turning by turn at speed per tick. speed <= 0 uses the configured speed.
func (s *Scene) Animate(h geom.Handle, travel core.Vec2, turn, speed float64) error {
	o, ok := s.Object(h)
	if !ok {
		return fmt.Errorf("world: animate: no object %d", h)
	}
	if speed <= 0 {
		speed = s.cfg.World.AnimationSpeed
	}
	from := Pose{Pos: o.Pos, Rot: o.Rot}
	to := Pose{Pos: o.Pos.Add(travel), Rot: o.Rot + turn}
	o.Anim = NewAnimation(from, to, speed)
	return nil
}

// Object returns the object for h.
func (s *Scene) Object(h geom.Handle) (*Object, bool) {
	if !h.Valid() || int(h) >= len(s.objects) {
		return nil, false
	}
	return s.objects[h], true
}

// Objects returns the object table in handle order.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// Sources returns the light sources in insertion order.
func (s *Scene) Sources() []*light.Source {
	return s.sources
}

// Receivers returns all receiver objects.
func (s *Scene) Receivers() []*Object {
	return s.ofKind(KindReceiver)
}

// Enemies returns all enemy objects.
func (s *Scene) Enemies() []*Object {
	return s.ofKind(KindEnemy)
}

// Interactive returns the objects the player may move or rotate.
func (s *Scene) Interactive() []*Object {
	var out []*Object
	for _, o := range s.objects {
		if o.Interactive {
			out = append(out, o)
		}
	}
	return out
}

func (s *Scene) ofKind(k Kind) []*Object {
	var out []*Object
	for _, o := range s.objects {
		if o.Kind == k {
			out = append(out, o)
		}
	}
	return out
}

// Blockers returns the actors as blockers for MoveIfSafe.
func (s *Scene) Blockers() []Blocker {
	var out []Blocker
	for _, o := range s.objects {
		if o.Kind == KindActor {
			out = append(out, o)
		}
	}
	return out
}

// Segments returns the segments flattened by the last tick.
func (s *Scene) Segments() []geom.Segment {
	return s.snap.Segments
}

// Arcs returns the arcs flattened by the last tick.
func (s *Scene) Arcs() []geom.Arc {
	return s.snap.Arcs
}

// Strokes appends the drawable ray links of the last tick to dst.
func (s *Scene) Strokes(dst []light.Stroke) []light.Stroke {
	return light.Strokes(dst, s.sources)
}

// Nudge moves an interactive object unless an actor is in the way.
func (s *Scene) Nudge(h geom.Handle, dp core.Vec2, dRot float64) bool {
	o, ok := s.Object(h)
	if !ok || !o.Interactive {
		return false
	}
	return o.MoveIfSafe(dp, dRot, s.Blockers())
}

// AnySatisfied reports whether any receiver reached the threshold.
func (s *Scene) AnySatisfied() bool {
	th := s.cfg.Receiver.ChargeThreshold
	for _, o := range s.objects {
		if o.Satisfied(th) {
			return true
		}
	}
	return false
}

// Alerted reports whether enemy h has been alerted.
func (s *Scene) Alerted(h geom.Handle) bool {
	o, ok := s.Object(h)
	return ok && o.Alerted
}

// AnyAlerted reports whether any enemy has been alerted.
func (s *Scene) AnyAlerted() bool {
	for _, o := range s.objects {
		if o.Alerted {
			return true
		}
	}
	return false
}

// Charge implements light.Effects.
func (s *Scene) Charge(h geom.Handle) {
	o, ok := s.Object(h)
	if !ok || o.Kind != KindReceiver {
		return
	}
	o.Charge += s.cfg.Receiver.ChargeIncrement
}

// Trigger implements light.Effects. Repeated triggers are no-ops.
func (s *Scene) Trigger(h geom.Handle) {
	o, ok := s.Object(h)
	if !ok || o.Kind != KindEnemy || o.Alerted {
		return
	}
	o.Alerted = true
	s.newAlerts = append(s.newAlerts, h)
	if s.logger != nil {
		s.logger.Debug("enemy alerted", "handle", h, "tick", s.tick+1)
	}
}

// Tick runs one update: animate, decay receivers, flatten geometry,
// propagate light, then summarize.
func (s *Scene) Tick() TickResult {
	res := TickResult{}

	blockers := s.Blockers()
	for _, o := range s.objects {
		if o.Anim == nil {
			continue
		}
		next := o.Anim.Next()
		if !o.MoveIfSafe(next.Pos.Sub(o.Pos), next.Rot-o.Rot, blockers) {
			o.Anim.Backtrack()
			res.Blocked++
		}
	}

	decay := s.cfg.Receiver.ChargeDecay
	for _, o := range s.objects {
		if o.Kind == KindReceiver {
			o.Charge *= decay
		}
	}

	s.flatten()

	s.newAlerts = s.newAlerts[:0]
	res.Report = s.engine.Propagate(&s.snap, s.sources, s)
	s.tick++

	res.Tick = s.tick
	res.Satisfied = s.AnySatisfied()
	res.Alerted = s.AnyAlerted()
	if len(s.newAlerts) > 0 {
		res.NewAlerts = append([]geom.Handle(nil), s.newAlerts...)
	}
	return res
}

// flatten rebuilds the snapshot from current geometry. Light-source bodies
// are collision-only and stay out of it.
func (s *Scene) flatten() {
	s.snap.Reset()
	for _, o := range s.objects {
		if o.Kind.IsSource() {
			continue
		}
		for _, seg := range o.Segments {
			s.snap.AddSegment(seg)
		}
		for _, a := range o.Arcs {
			s.snap.AddArc(a)
		}
	}
}
