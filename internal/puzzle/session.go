// Package puzzle runs a play session over a sequence of levels: player
// input, per-tick scene updates, win and loss detection, and progression.
// It is UI-agnostic; the platform feeds it input frames and draws what
// Render writes into a core.Screen.
package puzzle

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/illumi/internal/config"
	"github.com/vovakirdan/illumi/internal/core"
	"github.com/vovakirdan/illumi/internal/level"
	"github.com/vovakirdan/illumi/internal/light"
	"github.com/vovakirdan/illumi/internal/world"
)

// ErrNoLevels is returned when a session is created without levels.
var ErrNoLevels = errors.New("puzzle: no levels")

// EventKind identifies a session event.
type EventKind int

const (
	EventLevelComplete EventKind = iota
	EventAlerted
	EventFinished
)

// Event is something the platform may want to react to, such as saving a
// completion record.
type Event struct {
	Kind    EventKind
	LevelID string
	Ticks   uint64
	Rays    int
}

// StepResult contains the outcome of a single Step call.
type StepResult struct {
	State  core.GameState
	Tick   world.TickResult
	Events []Event
}

// Session is one player's run through a level list.
type Session struct {
	cfg    config.LightConfig
	levels []level.Level
	logger *log.Logger

	index    int
	scene    *world.Scene
	selected int

	ticks    uint64
	rays     int
	won      bool
	failed   bool
	finished bool
	paused   bool

	opts    core.RenderOptions
	strokes []light.Stroke
}

// New creates a session positioned on the first level.
func New(cfg config.LightConfig, levels []level.Level, logger *log.Logger) (*Session, error) {
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	s := &Session{
		cfg:    cfg,
		levels: levels,
		logger: logger,
		opts:   core.DefaultRenderOptions(),
	}
	if err := s.load(0); err != nil {
		return nil, err
	}
	return s, nil
}

// Start jumps to the level with the given ID.
func (s *Session) Start(id string) error {
	for i, l := range s.levels {
		if l.ID == id {
			return s.load(i)
		}
	}
	return fmt.Errorf("puzzle: %w: %s", level.ErrNotFound, id)
}

// load builds the scene for level i and clears per-level state.
func (s *Session) load(i int) error {
	lvl := s.levels[i]
	scene, err := lvl.Build(s.cfg, s.logger)
	if err != nil {
		return fmt.Errorf("puzzle: %w", err)
	}
	s.index = i
	s.scene = scene
	s.selected = 0
	s.ticks = 0
	s.rays = 0
	s.won = false
	s.failed = false
	s.finished = false
	s.paused = false
	if s.logger != nil {
		s.logger.Debug("level loaded", "id", lvl.ID, "objects", len(scene.Objects()))
	}
	return nil
}

// Scene returns the scene of the current level.
func (s *Session) Scene() *world.Scene {
	return s.scene
}

// Level returns the current level definition.
func (s *Session) Level() level.Level {
	return s.levels[s.index]
}

// LevelIndex returns the zero-based position in the level list.
func (s *Session) LevelIndex() int {
	return s.index
}

// LevelCount returns the number of levels in the session.
func (s *Session) LevelCount() int {
	return len(s.levels)
}

// Options returns the current render toggles.
func (s *Session) Options() core.RenderOptions {
	return s.opts
}

// SetOptions replaces the render toggles.
func (s *Session) SetOptions(o core.RenderOptions) {
	s.opts = o
}

// Selected returns the object currently under player control, if any.
func (s *Session) Selected() (*world.Object, bool) {
	objs := s.scene.Interactive()
	if len(objs) == 0 {
		return nil, false
	}
	return objs[s.selected%len(objs)], true
}

// State returns the current game state.
func (s *Session) State() core.GameState {
	return core.GameState{
		Level:    s.levels[s.index].ID,
		Ticks:    s.ticks,
		Won:      s.won,
		Failed:   s.failed,
		Finished: s.finished,
		Paused:   s.paused,
	}
}

// Step applies one input frame and advances the scene by one tick.
func (s *Session) Step(in core.InputFrame) StepResult {
	var res StepResult

	if in.Has(core.ActionToggleDebug) {
		s.opts.DebugGeometry = !s.opts.DebugGeometry
	}

	if in.Has(core.ActionRestart) && !s.finished {
		if err := s.load(s.index); err != nil && s.logger != nil {
			s.logger.Error("restart failed", "err", err)
		}
		res.State = s.State()
		return res
	}

	switch {
	case s.finished:
		res.State = s.State()
		return res
	case s.won:
		if in.Has(core.ActionConfirm) {
			s.advance()
		}
		res.State = s.State()
		return res
	case s.failed:
		if in.Has(core.ActionConfirm) {
			if err := s.load(s.index); err != nil && s.logger != nil {
				s.logger.Error("reload failed", "err", err)
			}
		}
		res.State = s.State()
		return res
	}

	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	if s.paused {
		res.State = s.State()
		return res
	}

	s.handleControls(in)

	res.Tick = s.scene.Tick()
	s.ticks++
	s.rays += res.Tick.Report.Casts
	s.strokes = s.scene.Strokes(s.strokes[:0])

	id := s.levels[s.index].ID
	switch {
	case res.Tick.Alerted:
		s.failed = true
		res.Events = append(res.Events, Event{Kind: EventAlerted, LevelID: id, Ticks: s.ticks, Rays: s.rays})
	case res.Tick.Satisfied:
		s.won = true
		res.Events = append(res.Events, Event{Kind: EventLevelComplete, LevelID: id, Ticks: s.ticks, Rays: s.rays})
		if s.index == len(s.levels)-1 {
			s.finished = true
			res.Events = append(res.Events, Event{Kind: EventFinished, LevelID: id, Ticks: s.ticks, Rays: s.rays})
		}
	}

	res.State = s.State()
	return res
}

// advance moves to the next level after a win.
func (s *Session) advance() {
	if s.index+1 >= len(s.levels) {
		s.finished = true
		return
	}
	if err := s.load(s.index + 1); err != nil {
		if s.logger != nil {
			s.logger.Error("next level failed", "err", err)
		}
		s.finished = true
	}
}

// handleControls moves, rotates or cycles the selected object.
func (s *Session) handleControls(in core.InputFrame) {
	objs := s.scene.Interactive()
	if len(objs) == 0 {
		return
	}
	if in.Has(core.ActionNextObject) {
		s.selected = (s.selected + 1) % len(objs)
	}
	o := objs[s.selected%len(objs)]

	w := s.cfg.World
	var dp core.Vec2
	var dRot float64
	if in.Has(core.ActionUp) {
		dp.Y += w.MoveStep
	}
	if in.Has(core.ActionDown) {
		dp.Y -= w.MoveStep
	}
	if in.Has(core.ActionLeft) {
		dp.X -= w.MoveStep
	}
	if in.Has(core.ActionRight) {
		dp.X += w.MoveStep
	}
	if in.Has(core.ActionRotateCCW) {
		dRot += w.RotateStep
	}
	if in.Has(core.ActionRotateCW) {
		dRot -= w.RotateStep
	}
	if dp == (core.Vec2{}) && dRot == 0 {
		return
	}
	if !s.inBounds(o, dp) {
		return
	}
	s.scene.Nudge(o.Handle, dp, dRot)
}

// inBounds keeps moved objects inside the playfield.
func (s *Session) inBounds(o *world.Object, dp core.Vec2) bool {
	p := o.Pos.Add(dp)
	w := s.cfg.World
	return p.X >= 0 && p.X <= w.Width && p.Y >= 0 && p.Y <= w.Height
}
