package level

import (
	"fmt"

	"github.com/vovakirdan/illumi/internal/registry"
	"github.com/vovakirdan/illumi/internal/world"
)

func init() {
	registry.Register("wall", "opaque block of cols × rows tiles (params: cols, rows)", buildWall)
	registry.Register("mirror", "rotatable mirror, reflective on both long sides (params: fixed)", func(s *world.Scene, p registry.Params) (*world.Object, error) {
		return pinned(s.AddMirror(p.Pos, p.Rot), p), nil
	})
	registry.Register("lens", "converging lens made of two refractive arcs (params: fixed)", func(s *world.Scene, p registry.Params) (*world.Object, error) {
		return pinned(s.AddLens(p.Pos, p.Rot), p), nil
	})
	registry.Register("radial_source", "point light fanning rays over a spread (params: spread, degrees)", buildRadial)
	registry.Register("parallel_source", "light emitting parallel rays across its width", func(s *world.Scene, p registry.Params) (*world.Object, error) {
		return s.AddParallelSource(p.Pos, p.Rot), nil
	})
	registry.Register("receiver", "charges while lit; the level is won when one is full", func(s *world.Scene, p registry.Params) (*world.Object, error) {
		return s.AddReceiver(p.Pos, p.Rot), nil
	})
	registry.Register("enemy", "alerts when lit; the level is lost", func(s *world.Scene, p registry.Params) (*world.Object, error) {
		return s.AddEnemy(p.Pos, p.Rot), nil
	})
	registry.Register("actor", "static blocker that stops moving objects", func(s *world.Scene, p registry.Params) (*world.Object, error) {
		return s.AddActor(p.Name, p.Pos), nil
	})
}

func buildWall(s *world.Scene, p registry.Params) (*world.Object, error) {
	cols := p.Float("cols", 1)
	rows := p.Float("rows", 1)
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("wall dimensions must be positive, got %gx%g", cols, rows)
	}
	o := s.AddWall(p.Pos, cols, rows, p.Rot)
	o.Interactive = p.Float("interactive", 0) != 0
	return o, nil
}

// pinned clears Interactive when the level marks the object fixed.
func pinned(o *world.Object, p registry.Params) *world.Object {
	if p.Float("fixed", 0) != 0 {
		o.Interactive = false
	}
	return o
}

func buildRadial(s *world.Scene, p registry.Params) (*world.Object, error) {
	spread := p.Float("spread", s.Config().World.SourceSpread)
	if spread < 0 {
		return nil, fmt.Errorf("radial spread must not be negative, got %g", spread)
	}
	return s.AddRadialSource(p.Pos, p.Rot, spread), nil
}
