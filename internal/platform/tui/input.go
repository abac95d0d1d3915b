package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/termgames/internal/core"
)

// DefaultHoldWindow is how long a key counts as held after its last press
// or auto-repeat. Terminals report no key release.
const DefaultHoldWindow = 250 * time.Millisecond

// holdTracker turns repeated key presses into held actions.
type holdTracker struct {
	window time.Duration
	last   map[core.Action]time.Time
}

func newHoldTracker(window time.Duration) *holdTracker {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &holdTracker{window: window, last: make(map[core.Action]time.Time)}
}

// Press records a press or repeat of a held action.
func (h *holdTracker) Press(a core.Action, now time.Time) {
	h.last[a] = now
}

// Apply marks every action pressed within the window as held and forgets the rest.
func (h *holdTracker) Apply(frame *core.InputFrame, now time.Time) {
	for a, t := range h.last {
		if now.Sub(t) > h.window {
			delete(h.last, a)
			continue
		}
		frame.SetHeld(a)
	}
}

// Reset releases every held action.
func (h *holdTracker) Reset() {
	clear(h.last)
}

// pointerState turns mouse events into look deltas and a held fire button.
type pointerState struct {
	x, y     int
	anchored bool
	firing   bool
}

// Handle updates the pointer from a mouse event and adds movement to frame.
func (p *pointerState) Handle(msg tea.MouseMsg, frame *core.InputFrame) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			p.firing = true
			frame.Set(core.ActionFire)
		}
	case tea.MouseActionRelease:
		p.firing = false
	}

	if p.anchored {
		frame.AddLook(float64(msg.X-p.x), float64(msg.Y-p.y))
	}
	p.x, p.y = msg.X, msg.Y
	p.anchored = true
}

// Apply keeps fire held while the button is down.
func (p *pointerState) Apply(frame *core.InputFrame) {
	if p.firing {
		frame.SetHeld(core.ActionFire)
	}
}
