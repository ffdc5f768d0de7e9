package level_test

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/vovakirdan/illumi/internal/config"
	"github.com/vovakirdan/illumi/internal/core"
	"github.com/vovakirdan/illumi/internal/level"
	"github.com/vovakirdan/illumi/internal/level/formats"
	"github.com/vovakirdan/illumi/internal/light"
	"github.com/vovakirdan/illumi/internal/registry"
	"github.com/vovakirdan/illumi/internal/world"
)

func findNamed(t *testing.T, s *world.Scene, name string) *world.Object {
	t.Helper()
	for _, o := range s.Objects() {
		if o.Name == name {
			return o
		}
	}
	t.Fatalf("no object named %q", name)
	return nil
}

func TestOfficialLevelsLoadInOrder(t *testing.T) {
	ids, err := level.Official().ListIDs()
	if err != nil {
		t.Fatalf("ListIDs() failed: %v", err)
	}
	want := []string{"first-light", "periscope", "tide"}
	if !slices.Equal(ids, want) {
		t.Errorf("ids = %v, expected %v", ids, want)
	}
}

func TestOfficialLevelsBuild(t *testing.T) {
	levels, err := level.Official().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}
	cfg := config.DefaultLightConfig()

	for _, lvl := range levels {
		t.Run(lvl.ID, func(t *testing.T) {
			s, err := lvl.Build(cfg, nil)
			if err != nil {
				t.Fatalf("Build() failed: %v", err)
			}
			// Four border walls, every object, and the player actor.
			want := 4 + len(lvl.Objects) + 1
			if n := len(s.Objects()); n != want {
				t.Errorf("objects = %d, expected %d", n, want)
			}
			if len(s.Sources()) == 0 || len(s.Receivers()) == 0 {
				t.Error("official level needs a source and a receiver")
			}
			if _, ok := level.Player(s); !ok {
				t.Error("player actor missing")
			}
			// Border walls keep every ray inside the frame.
			for i := 0; i < 5; i++ {
				res := s.Tick()
				if res.Report.Count(light.Active) != 0 {
					t.Fatalf("tick %d left active rays", i)
				}
			}
			for _, src := range s.Sources() {
				for i := range src.Rays {
					src.Rays[i].Chain(func(r *light.Ray) {
						if math.IsInf(r.Dist, 1) {
							t.Errorf("ray escaped the playfield from %v", r.Origin)
						}
					})
				}
			}
		})
	}
}

func TestAnglesAreDegrees(t *testing.T) {
	lvl, err := level.Official().LoadByID("first-light")
	if err != nil {
		t.Fatalf("LoadByID() failed: %v", err)
	}
	s, err := lvl.Build(config.DefaultLightConfig(), nil)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	m := findNamed(t, s, "turn")
	if math.Abs(m.Rot-20*math.Pi/180) > 1e-12 {
		t.Errorf("mirror rotation %f, expected 20 degrees", m.Rot)
	}
	if !m.Interactive {
		t.Error("mirror should be interactive")
	}
}

func TestFirstLightSolution(t *testing.T) {
	lvl, err := level.Official().LoadByID("first-light")
	if err != nil {
		t.Fatalf("LoadByID() failed: %v", err)
	}
	cfg := config.DefaultLightConfig()
	s, err := lvl.Build(cfg, nil)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		if s.Tick().Satisfied {
			t.Fatal("level solved before the mirror was turned")
		}
	}

	m := findNamed(t, s, "turn")
	for i := 0; i < 5; i++ {
		if !s.Nudge(m.Handle, core.Vec2{}, cfg.World.RotateStep) {
			t.Fatalf("rotation %d refused", i)
		}
	}

	solved := false
	for i := 0; i < 5 && !solved; i++ {
		solved = s.Tick().Satisfied
	}
	if !solved {
		t.Errorf("level not solved with the mirror at 45 degrees (rot %f)", m.Rot)
	}
}

func TestTideHasAnimatedWall(t *testing.T) {
	lvl, err := level.Official().LoadByID("tide")
	if err != nil {
		t.Fatalf("LoadByID() failed: %v", err)
	}
	s, err := lvl.Build(config.DefaultLightConfig(), nil)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	w := findNamed(t, s, "tide")
	if w.Anim == nil {
		t.Fatal("tide wall has no animation")
	}
	y0 := w.Pos.Y
	s.Tick()
	if w.Pos.Y <= y0 {
		t.Errorf("animated wall did not move up: %f -> %f", y0, w.Pos.Y)
	}
}

func TestDirectoryLoader(t *testing.T) {
	loader := level.NewLoader("testdata")
	levels, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}

	var ids []string
	for _, l := range levels {
		ids = append(ids, l.ID)
	}
	// broken.yaml and notes.txt are skipped.
	if !slices.Equal(ids, []string{"custom", "unknown-kind"}) {
		t.Errorf("ids = %v", ids)
	}

	custom, err := loader.LoadByID("custom")
	if err != nil {
		t.Fatalf("LoadByID() failed: %v", err)
	}
	if custom.Borders {
		t.Error("custom level disables borders")
	}
	s, err := custom.Build(config.DefaultLightConfig(), nil)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if n := len(s.Objects()); n != 2 {
		t.Errorf("objects = %d, expected 2 without borders or player", n)
	}

	unknown, err := loader.LoadByID("unknown-kind")
	if err != nil {
		t.Fatalf("LoadByID() failed: %v", err)
	}
	if _, err := unknown.Build(config.DefaultLightConfig(), nil); !errors.Is(err, registry.ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}

	if _, err := loader.LoadByID("nope"); !errors.Is(err, level.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBuiltinKindsRegistered(t *testing.T) {
	for _, k := range []string{"wall", "mirror", "lens", "radial_source", "parallel_source", "receiver", "enemy", "actor"} {
		if !registry.Exists(k) {
			t.Errorf("kind %q not registered", k)
		}
	}
}

func TestInvalidWallSkipped(t *testing.T) {
	lvl := level.Level{
		ID: "bad-wall",
		Objects: []formats.Object{
			{Kind: "wall", Params: map[string]float64{"cols": 0}},
			{Kind: "receiver"},
		},
	}
	s, err := lvl.Build(config.DefaultLightConfig(), nil)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if n := len(s.Objects()); n != 1 {
		t.Errorf("objects = %d, expected only the receiver", n)
	}
}
