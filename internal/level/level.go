package level

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/illumi/internal/config"
	"github.com/vovakirdan/illumi/internal/core"
	"github.com/vovakirdan/illumi/internal/level/formats"
	"github.com/vovakirdan/illumi/internal/registry"
	"github.com/vovakirdan/illumi/internal/world"
)

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	Order    int
	Borders  bool
	Player   *formats.YAMLPoint
	Objects  []formats.Object
	Metadata map[string]string
	FilePath string
}

// PlayerName is the actor name given to the player marker.
const PlayerName = "player"

// Build constructs a scene from the level: border walls, every object
// through the kind registry, the player actor, then animations.
//
// Unknown kinds fail the build. An object whose builder rejects its
// parameters is skipped with a warning when logger is set.
func (l *Level) Build(cfg config.LightConfig, logger *log.Logger) (*world.Scene, error) {
	s := world.NewScene(cfg, logger)

	if l.Borders {
		addBorders(s, cfg.World)
	}

	for i, o := range l.Objects {
		if !registry.Exists(o.Kind) {
			return nil, fmt.Errorf("level %s: object %d: %w %q", l.ID, i, registry.ErrUnknownKind, o.Kind)
		}
		obj, err := registry.Build(o.Kind, s, registry.Params{
			Name:  o.Name,
			Pos:   core.V(o.X, o.Y),
			Rot:   o.Rot,
			Extra: o.Params,
		})
		if err != nil {
			if logger != nil {
				logger.Warn("skipping object", "level", l.ID, "index", i, "kind", o.Kind, "err", err)
			}
			continue
		}
		if o.Animate != nil {
			travel := core.V(o.Animate.DX, o.Animate.DY)
			if err := s.Animate(obj.Handle, travel, o.Animate.Turn, o.Animate.Speed); err != nil {
				return nil, fmt.Errorf("level %s: %w", l.ID, err)
			}
		}
	}

	if l.Player != nil {
		s.AddActor(PlayerName, core.V(l.Player.X, l.Player.Y))
	}

	return s, nil
}

// Player returns the player actor of a built scene, if any.
func Player(s *world.Scene) (*world.Object, bool) {
	for _, o := range s.Objects() {
		if o.Kind == world.KindActor && o.Name == PlayerName {
			return o, true
		}
	}
	return nil, false
}

// addBorders frames the playfield with one-tile walls just outside it.
func addBorders(s *world.Scene, w config.WorldSection) {
	t := w.WallTile
	cols := w.Width/t + 2
	rows := w.Height / t
	s.AddWall(core.V(w.Width/2, -t/2), cols, 1, 0)
	s.AddWall(core.V(w.Width/2, w.Height+t/2), cols, 1, 0)
	s.AddWall(core.V(-t/2, w.Height/2), 1, rows, 0)
	s.AddWall(core.V(w.Width+t/2, w.Height/2), 1, rows, 0)
}
