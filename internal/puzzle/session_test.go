package puzzle

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/illumi/internal/config"
	"github.com/vovakirdan/illumi/internal/core"
	"github.com/vovakirdan/illumi/internal/level"
	"github.com/vovakirdan/illumi/internal/level/formats"
)

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func litReceiver(id string) level.Level {
	return level.Level{
		ID:   id,
		Name: "Lit " + id,
		Objects: []formats.Object{
			{Kind: "parallel_source", X: 100, Y: 300},
			{Kind: "receiver", X: 300, Y: 300},
		},
	}
}

func guardedLevel() level.Level {
	return level.Level{
		ID: "guarded",
		Objects: []formats.Object{
			{Kind: "parallel_source", X: 100, Y: 300},
			{Kind: "enemy", X: 300, Y: 300},
		},
	}
}

func officialLevels(t *testing.T) []level.Level {
	t.Helper()
	levels, err := level.Official().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}
	return levels
}

func TestNewWithoutLevels(t *testing.T) {
	if _, err := New(config.DefaultLightConfig(), nil, nil); !errors.Is(err, ErrNoLevels) {
		t.Errorf("expected ErrNoLevels, got %v", err)
	}
}

func TestSolveFirstLevelAndAdvance(t *testing.T) {
	s, err := New(config.DefaultLightConfig(), officialLevels(t), nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if s.State().Level != "first-light" {
		t.Fatalf("started on %q", s.State().Level)
	}

	sel, ok := s.Selected()
	if !ok || sel.Name != "turn" {
		t.Fatalf("expected the mirror to be selected, got %+v", sel)
	}

	// 20° + 5 × 5° = 45°.
	for i := 0; i < 5; i++ {
		s.Step(frame(core.ActionRotateCCW))
	}

	var complete *Event
	for i := 0; i < 10 && complete == nil; i++ {
		res := s.Step(frame())
		for _, ev := range res.Events {
			if ev.Kind == EventLevelComplete {
				ev := ev
				complete = &ev
			}
		}
	}
	if complete == nil {
		t.Fatal("level never completed")
	}
	if complete.LevelID != "first-light" || complete.Ticks == 0 || complete.Rays == 0 {
		t.Errorf("unexpected completion event %+v", *complete)
	}
	st := s.State()
	if !st.Won || st.Finished || !st.Over() {
		t.Errorf("state after win: %+v", st)
	}

	// The scene is frozen until the player confirms.
	ticks := st.Ticks
	s.Step(frame())
	if s.State().Ticks != ticks {
		t.Error("scene kept ticking after the win")
	}

	s.Step(frame(core.ActionConfirm))
	if s.State().Level != "periscope" || s.State().Won || s.LevelIndex() != 1 {
		t.Errorf("did not advance: %+v", s.State())
	}
}

func TestAlertFailsAndConfirmRetries(t *testing.T) {
	s, err := New(config.DefaultLightConfig(), []level.Level{guardedLevel()}, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	res := s.Step(frame())
	if !res.State.Failed {
		t.Fatal("lit enemy should fail the level")
	}
	if len(res.Events) != 1 || res.Events[0].Kind != EventAlerted {
		t.Errorf("events = %+v", res.Events)
	}

	s.Step(frame(core.ActionConfirm))
	st := s.State()
	if st.Failed || st.Ticks != 0 {
		t.Errorf("retry did not reset the level: %+v", st)
	}
	if s.Scene().AnyAlerted() {
		t.Error("retry kept the old scene")
	}
}

func TestLastLevelFinishes(t *testing.T) {
	s, err := New(config.DefaultLightConfig(), []level.Level{litReceiver("only")}, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	var kinds []EventKind
	for i := 0; i < 5 && !s.State().Finished; i++ {
		for _, ev := range s.Step(frame()).Events {
			kinds = append(kinds, ev.Kind)
		}
	}
	if !s.State().Finished {
		t.Fatal("single level session never finished")
	}
	if len(kinds) != 2 || kinds[0] != EventLevelComplete || kinds[1] != EventFinished {
		t.Errorf("events = %v", kinds)
	}
	if s.State().Ticks != 2 {
		t.Errorf("solved in %d ticks, expected 2", s.State().Ticks)
	}
}

func TestPauseStopsTicks(t *testing.T) {
	s, err := New(config.DefaultLightConfig(), []level.Level{guardedLevel()}, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	s.Step(frame(core.ActionPause))
	s.Step(frame())
	if st := s.State(); !st.Paused || st.Ticks != 0 || st.Failed {
		t.Errorf("paused session advanced: %+v", st)
	}
	s.Step(frame(core.ActionPause))
	if st := s.State(); st.Paused || st.Ticks != 1 {
		t.Errorf("unpause should tick once: %+v", st)
	}
}

func TestRestartReloads(t *testing.T) {
	s, err := New(config.DefaultLightConfig(), officialLevels(t), nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	sel, _ := s.Selected()
	rot := sel.Rot
	s.Step(frame(core.ActionRotateCW))
	s.Step(frame(core.ActionRestart))

	sel, _ = s.Selected()
	if sel.Rot != rot || s.State().Ticks != 0 {
		t.Errorf("restart kept state: rot %f ticks %d", sel.Rot, s.State().Ticks)
	}
}

func TestMoveSelectedObject(t *testing.T) {
	cfg := config.DefaultLightConfig()
	s, err := New(cfg, officialLevels(t), nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	sel, _ := s.Selected()
	start := sel.Pos

	s.Step(frame(core.ActionUp, core.ActionRight))
	want := start.Add(core.V(cfg.World.MoveStep, cfg.World.MoveStep))
	if sel.Pos != want {
		t.Errorf("pos = %v, expected %v", sel.Pos, want)
	}
}

func TestStart(t *testing.T) {
	s, err := New(config.DefaultLightConfig(), officialLevels(t), nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := s.Start("tide"); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if s.Level().ID != "tide" || s.LevelIndex() != 2 {
		t.Errorf("Start moved to %q", s.Level().ID)
	}
	if err := s.Start("missing"); !errors.Is(err, level.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRender(t *testing.T) {
	s, err := New(config.DefaultLightConfig(), officialLevels(t), nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	s.Step(frame())

	scr := core.NewScreen(100, 30)
	s.Render(scr)

	hud := scr.Row(0)
	if !strings.Contains(hud, "First Light") || !strings.Contains(hud, "Selected: turn") {
		t.Errorf("HUD = %q", hud)
	}
	out := scr.String()
	for _, glyph := range []string{"*", "@", "#", "▣", "·"} {
		if !strings.Contains(out, glyph) {
			t.Errorf("rendered scene missing %q", glyph)
		}
	}

	s.SetOptions(core.RenderOptions{HUD: true, HideRays: true})
	s.Render(scr)
	if strings.Contains(scr.String(), "·") {
		t.Error("rays drawn with HideRays set")
	}
}

func TestRenderOverlay(t *testing.T) {
	s, err := New(config.DefaultLightConfig(), []level.Level{guardedLevel()}, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	s.Step(frame())

	scr := core.NewScreen(80, 24)
	s.Render(scr)
	if !strings.Contains(scr.String(), "You were spotted") {
		t.Error("failure overlay missing")
	}
}

func TestToggleDebug(t *testing.T) {
	s, err := New(config.DefaultLightConfig(), []level.Level{litReceiver("a")}, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	s.Step(frame(core.ActionToggleDebug))
	if !s.Options().DebugGeometry {
		t.Error("debug overlay not enabled")
	}
}

func TestRenderArcEnds(t *testing.T) {
	lensOnly := level.Level{
		ID:      "glass",
		Objects: []formats.Object{{Kind: "lens", X: 640, Y: 360}},
	}
	s, err := New(config.DefaultLightConfig(), []level.Level{lensOnly}, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	s.Step(frame())

	scr := core.NewScreen(100, 30)
	s.Render(scr)
	if strings.Contains(scr.String(), "◇") {
		t.Error("arc ends drawn without the debug overlay")
	}

	s.Step(frame(core.ActionToggleDebug))
	s.Render(scr)
	if !strings.Contains(scr.String(), "◇") {
		t.Error("debug overlay should mark arc ends")
	}
}
