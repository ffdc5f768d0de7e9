package puzzle

import (
	"fmt"
	"math"

	"github.com/vovakirdan/illumi/internal/core"
	"github.com/vovakirdan/illumi/internal/light"
	"github.com/vovakirdan/illumi/internal/world"
)

const hudHeight = 2

// viewport maps world coordinates (y up) onto screen cells (y down).
type viewport struct {
	top    int
	cols   int
	rows   int
	worldW float64
	worldH float64
}

func (v viewport) toScreen(p core.Vec2) (int, int) {
	x := int(math.Round(p.X / v.worldW * float64(v.cols-1)))
	y := v.top + int(math.Round((1-p.Y/v.worldH)*float64(v.rows-1)))
	return x, y
}

func (v viewport) toWorld(x, y int) core.Vec2 {
	return core.Vec2{
		X: (float64(x) + 0.5) / float64(v.cols) * v.worldW,
		Y: (1 - (float64(y-v.top)+0.5)/float64(v.rows)) * v.worldH,
	}
}

func (v viewport) inside(x, y int) bool {
	return x >= 0 && x < v.cols && y >= v.top && y < v.top+v.rows
}

// Render draws the current level into dst.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()

	top := 0
	if s.opts.HUD {
		top = hudHeight
	}
	vp := viewport{
		top:    top,
		cols:   dst.Width(),
		rows:   dst.Height() - top,
		worldW: s.cfg.World.Width,
		worldH: s.cfg.World.Height,
	}
	if vp.cols < 2 || vp.rows < 2 {
		return
	}

	if !s.opts.HideRays {
		s.renderRays(dst, vp)
	}
	if s.opts.DebugGeometry {
		s.renderGeometry(dst, vp)
	}
	s.renderObjects(dst, vp)
	if s.opts.DebugGeometry {
		s.renderArcEnds(dst, vp)
	}
	if s.opts.HUD {
		s.renderHUD(dst)
	}

	switch {
	case s.finished:
		renderOverlay(dst, "All levels cleared!", "Press Q to quit")
	case s.won:
		renderOverlay(dst, "Level complete", "Enter: next level | R: replay")
	case s.failed:
		renderOverlay(dst, "You were spotted", "Enter or R: try again")
	case s.paused:
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func rayColor(st light.Stroke) core.Color {
	switch {
	case st.Outcome == light.Received:
		return core.ColorBrightYellow
	case st.Outcome == light.Triggered:
		return core.ColorBrightRed
	case st.Generation == 0:
		return core.ColorYellow
	default:
		return core.ColorOrange
	}
}

func (s *Session) renderRays(dst *core.Screen, vp viewport) {
	for _, st := range s.strokes {
		x0, y0 := vp.toScreen(st.From)
		x1, y1 := vp.toScreen(st.To)
		dst.DrawLine(x0, y0, x1, y1, '·', rayColor(st))
	}
}

func (s *Session) renderGeometry(dst *core.Screen, vp viewport) {
	for _, seg := range s.scene.Segments() {
		x0, y0 := vp.toScreen(seg.P1)
		x1, y1 := vp.toScreen(seg.P2)
		dst.DrawLine(x0, y0, x1, y1, '.', core.ColorGray)
	}
	for _, a := range s.scene.Arcs() {
		plotArc(dst, vp, a.PointAt, a.Start, a.Sweep(), '.', core.ColorGray)
	}
}

// renderArcEnds marks where each arc's span starts and stops. It runs after
// the objects so lens outlines do not hide the marks.
func (s *Session) renderArcEnds(dst *core.Screen, vp viewport) {
	for _, a := range s.scene.Arcs() {
		p0, p1 := a.Endpoints()
		plot(dst, vp, p0, '◇', core.ColorWhite)
		plot(dst, vp, p1, '◇', core.ColorWhite)
	}
}

// plotArc samples an arc densely enough to leave no gaps at screen scale.
func plotArc(dst *core.Screen, vp viewport, at func(float64) core.Vec2, start, sweep float64, r rune, c core.Color) {
	const steps = 24
	for i := 0; i <= steps; i++ {
		x, y := vp.toScreen(at(start + sweep*float64(i)/steps))
		if vp.inside(x, y) {
			dst.SetColored(x, y, r, c)
		}
	}
}

func (s *Session) renderObjects(dst *core.Screen, vp viewport) {
	sel, hasSel := s.Selected()
	th := s.cfg.Receiver.ChargeThreshold

	for _, o := range s.scene.Objects() {
		selected := hasSel && o == sel
		switch o.Kind {
		case world.KindWall:
			fillFootprint(dst, vp, o.Footprint(), '█', core.ColorGray)
		case world.KindMirror:
			c := core.ColorCyan
			if selected {
				c = core.ColorBrightMagenta
			}
			for i := 0; i < len(o.Segments); i += 2 {
				seg := o.Segments[i]
				x0, y0 := vp.toScreen(seg.P1)
				x1, y1 := vp.toScreen(seg.P2)
				dst.DrawLine(x0, y0, x1, y1, '#', c)
			}
		case world.KindLens:
			c := core.ColorBrightBlue
			if selected {
				c = core.ColorBrightMagenta
			}
			for _, a := range o.Arcs {
				plotArc(dst, vp, a.PointAt, a.Start, a.Sweep(), ')', c)
			}
		case world.KindRadialSource, world.KindParallelSource:
			plot(dst, vp, o.Pos, '*', core.ColorBrightYellow)
		case world.KindReceiver:
			fillFootprint(dst, vp, o.Footprint(), '▣', core.IntensityColor(o.Level(th)))
		case world.KindEnemy:
			if o.Alerted {
				plot(dst, vp, o.Pos, '!', core.ColorBrightRed)
			} else {
				plot(dst, vp, o.Pos, 'E', core.ColorRed)
			}
		case world.KindActor:
			plot(dst, vp, o.Pos, '@', core.ColorBrightGreen)
		}
		if selected && o.Kind == world.KindWall {
			plot(dst, vp, o.Pos, '+', core.ColorBrightMagenta)
		}
	}
}

func plot(dst *core.Screen, vp viewport, p core.Vec2, r rune, c core.Color) {
	x, y := vp.toScreen(p)
	if vp.inside(x, y) {
		dst.SetColored(x, y, r, c)
	}
}

// fillFootprint paints every cell whose center lies inside f, or the center
// cell when f is smaller than one cell.
func fillFootprint(dst *core.Screen, vp viewport, f core.Footprint, r rune, c core.Color) {
	b := f.Bounds()
	x0, y1 := vp.toScreen(b.Min)
	x1, y0 := vp.toScreen(b.Max)
	painted := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !vp.inside(x, y) || !f.Contains(vp.toWorld(x, y)) {
				continue
			}
			dst.SetColored(x, y, r, c)
			painted = true
		}
	}
	if !painted {
		plot(dst, vp, f.Center, r, c)
	}
}

func (s *Session) renderHUD(dst *core.Screen) {
	lvl := s.levels[s.index]
	charge := 0.0
	for _, o := range s.scene.Receivers() {
		charge = math.Max(charge, o.Level(s.cfg.Receiver.ChargeThreshold))
	}

	hud := fmt.Sprintf(" illumi | Level %d/%d: %s | Charge %3.0f%% | Ticks %d",
		s.index+1, len(s.levels), lvl.Name, charge*100, s.ticks)
	if o, ok := s.Selected(); ok {
		name := o.Name
		if name == "" {
			name = o.Kind.String()
		}
		hud += " | Selected: " + name
	}
	dst.DrawTextColored(0, 0, hud, core.ColorCyan)

	for x := 0; x < dst.Width(); x++ {
		dst.SetColored(x, 1, '─', core.ColorGray)
	}
}

// renderOverlay draws a centered two-line message box.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	boxW := maxLen + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorGray)
}
