package core

// RuntimeConfig contains configuration passed to a puzzle session at start.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// RenderOptions are the per-session overlay toggles handed to draw calls.
type RenderOptions struct {
	DebugGeometry bool // draw every segment and arc, not just object glyphs
	HideRays      bool // skip light strokes
	HUD           bool // draw the status line
}

// DefaultRenderOptions shows rays and the HUD with no debug overlay.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{HUD: true}
}

// GameState represents the current state of a puzzle session.
type GameState struct {
	Level    string // Current level ID
	Ticks    uint64 // Ticks spent on the current level
	Won      bool   // A receiver reached its threshold
	Failed   bool   // An enemy was alerted
	Finished bool   // The last level has been completed
	Paused   bool
}

// Over reports whether the session needs a restart or a level change.
func (s GameState) Over() bool {
	return s.Won || s.Failed || s.Finished
}
