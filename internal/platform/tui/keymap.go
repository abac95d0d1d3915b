package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/termgames/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	// lookKeys sends the arrow keys to the camera instead of movement.
	lookKeys bool
}

// NewKeyMapper creates a key mapper where arrows move like WASD.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// NewLookKeyMapper creates a key mapper for first-person games: WASD moves
// and the arrow keys turn the camera.
func NewLookKeyMapper() *KeyMapper {
	return &KeyMapper{lookKeys: true}
}

// KeyAction is the result of mapping a single key press.
type KeyAction struct {
	Action core.Action
	// Held marks actions that stay down while the terminal repeats the key.
	Held bool
}

// MapKey translates a key to an action for a game in the given state.
// r reloads while playing and restarts after game over.
// Returns ActionNone for unbound keys and isQuit for quit requests.
func (km *KeyMapper) MapKey(msg tea.KeyMsg, gameOver bool) (ka KeyAction, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return KeyAction{Action: core.ActionQuit}, true
	}

	switch key {
	case "w":
		return KeyAction{core.ActionUp, true}, false
	case "s":
		return KeyAction{core.ActionDown, true}, false
	case "a":
		return KeyAction{core.ActionLeft, true}, false
	case "d":
		return KeyAction{core.ActionRight, true}, false
	case "up", "down", "left", "right":
		return km.arrow(key), false
	case " ":
		return KeyAction{Action: core.ActionJump}, false
	case "e":
		return KeyAction{core.ActionFire, true}, false
	case "r":
		if gameOver {
			return KeyAction{Action: core.ActionRestart}, false
		}
		return KeyAction{Action: core.ActionReload}, false
	case "enter":
		if gameOver {
			return KeyAction{Action: core.ActionRestart}, false
		}
		return KeyAction{Action: core.ActionConfirm}, false
	case "f":
		return KeyAction{Action: core.ActionInspect}, false
	case "1":
		return KeyAction{Action: core.ActionWeapon1}, false
	case "2":
		return KeyAction{Action: core.ActionWeapon2}, false
	case "3":
		return KeyAction{Action: core.ActionWeapon3}, false
	case "4":
		return KeyAction{Action: core.ActionWeapon4}, false
	case "t":
		return KeyAction{Action: core.ActionResetRange}, false
	case "p", "esc":
		return KeyAction{Action: core.ActionPause}, false
	case "b":
		return KeyAction{Action: core.ActionBack}, false
	}

	return KeyAction{Action: core.ActionNone}, false
}

func (km *KeyMapper) arrow(key string) KeyAction {
	if km.lookKeys {
		switch key {
		case "up":
			return KeyAction{core.ActionLookUp, true}
		case "down":
			return KeyAction{core.ActionLookDown, true}
		case "left":
			return KeyAction{core.ActionLookLeft, true}
		default:
			return KeyAction{core.ActionLookRight, true}
		}
	}
	switch key {
	case "up":
		return KeyAction{core.ActionUp, true}
	case "down":
		return KeyAction{core.ActionDown, true}
	case "left":
		return KeyAction{core.ActionLeft, true}
	default:
		return KeyAction{core.ActionRight, true}
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
