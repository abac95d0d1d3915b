package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // W - flap, move forward
	ActionDown              // S - move back
	ActionLeft              // A - strafe left
	ActionRight             // D - strafe right
	ActionJump              // Space - jump, flap
	ActionLookLeft          // Left arrow
	ActionLookRight         // Right arrow
	ActionLookUp            // Up arrow
	ActionLookDown          // Down arrow
	ActionFire              // Mouse left, E
	ActionReload            // R while playing
	ActionInspect           // F
	ActionWeapon1           // 1
	ActionWeapon2           // 2
	ActionWeapon3           // 3
	ActionWeapon4           // 4
	ActionResetRange        // T
	ActionConfirm           // Enter
	ActionBack              // B, Escape - go back to menu
	ActionRestart           // R or Enter after game over
	ActionQuit              // Q, Ctrl+C
	ActionPause             // P, Escape
)

var actionNames = map[Action]string{
	ActionNone:       "None",
	ActionUp:         "Up",
	ActionDown:       "Down",
	ActionLeft:       "Left",
	ActionRight:      "Right",
	ActionJump:       "Jump",
	ActionLookLeft:   "LookLeft",
	ActionLookRight:  "LookRight",
	ActionLookUp:     "LookUp",
	ActionLookDown:   "LookDown",
	ActionFire:       "Fire",
	ActionReload:     "Reload",
	ActionInspect:    "Inspect",
	ActionWeapon1:    "Weapon1",
	ActionWeapon2:    "Weapon2",
	ActionWeapon3:    "Weapon3",
	ActionWeapon4:    "Weapon4",
	ActionResetRange: "ResetRange",
	ActionConfirm:    "Confirm",
	ActionBack:       "Back",
	ActionRestart:    "Restart",
	ActionQuit:       "Quit",
	ActionPause:      "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame represents the input state for a single simulation tick.
//
// Actions holds edge-triggered presses (the key went down this tick).
// Holding holds level state for actions that are still held down; a terminal
// only reports presses, so the platform derives holds from key repeat and
// mouse press/release pairs.
type InputFrame struct {
	Actions map[Action]bool
	Holding map[Action]bool

	// LookX and LookY are the pointer movement in cells since the last tick.
	LookX, LookY float64
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Holding: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// SetHeld marks an action as held down for this frame.
func (f *InputFrame) SetHeld(a Action) {
	if f.Holding == nil {
		f.Holding = make(map[Action]bool)
	}
	f.Holding[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Held returns true if the action was triggered or is still held down.
func (f InputFrame) Held(a Action) bool {
	if f.Has(a) {
		return true
	}
	if f.Holding == nil {
		return false
	}
	return f.Holding[a]
}

// AddLook accumulates pointer movement for this frame.
func (f *InputFrame) AddLook(dx, dy float64) {
	f.LookX += dx
	f.LookY += dy
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	for k := range f.Holding {
		delete(f.Holding, k)
	}
	f.LookX = 0
	f.LookY = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	for k, v := range f.Holding {
		clone.Holding[k] = v
	}
	clone.LookX = f.LookX
	clone.LookY = f.LookY
	return clone
}
