package core

// Action represents a semantic puzzle action, abstracted from physical key presses.
type Action int

const (
	ActionNone        Action = iota
	ActionUp                 // W, Up arrow - move selected object up
	ActionDown               // S, Down arrow - move selected object down
	ActionLeft               // A, Left arrow - move selected object left
	ActionRight              // D, Right arrow - move selected object right
	ActionRotateCCW          // Z, [ - rotate selected object counter-clockwise
	ActionRotateCW           // X, ] - rotate selected object clockwise
	ActionNextObject         // Tab - select next interactable object
	ActionConfirm            // Enter, Space - continue after a level ends
	ActionBack               // B, Escape - back to the level picker
	ActionRestart            // R key - restart level
	ActionQuit               // Ctrl+C - exit
	ActionPause              // P - pause/unpause
	ActionToggleDebug        // G - toggle geometry overlay
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionRotateCW:
		return "RotateCW"
	case ActionNextObject:
		return "NextObject"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionToggleDebug:
		return "ToggleDebug"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
