package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/termgames/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		look     bool
		gameOver bool
		want     core.Action
		held     bool
	}{
		{"w moves", runeKey("w"), false, false, core.ActionUp, true},
		{"a strafes", runeKey("a"), true, false, core.ActionLeft, true},
		{"arrow moves", tea.KeyMsg{Type: tea.KeyUp}, false, false, core.ActionUp, true},
		{"arrow looks", tea.KeyMsg{Type: tea.KeyUp}, true, false, core.ActionLookUp, true},
		{"arrow turns", tea.KeyMsg{Type: tea.KeyRight}, true, false, core.ActionLookRight, true},
		{"space jumps", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, false, false, core.ActionJump, false},
		{"e fires", runeKey("e"), true, false, core.ActionFire, true},
		{"r reloads", runeKey("r"), true, false, core.ActionReload, false},
		{"r restarts", runeKey("r"), true, true, core.ActionRestart, false},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, false, false, core.ActionConfirm, false},
		{"enter restarts", tea.KeyMsg{Type: tea.KeyEnter}, false, true, core.ActionRestart, false},
		{"f inspects", runeKey("f"), true, false, core.ActionInspect, false},
		{"3 picks knife", runeKey("3"), true, false, core.ActionWeapon3, false},
		{"t resets range", runeKey("t"), true, false, core.ActionResetRange, false},
		{"esc pauses", tea.KeyMsg{Type: tea.KeyEsc}, false, false, core.ActionPause, false},
		{"b goes back", runeKey("b"), false, false, core.ActionBack, false},
		{"unbound", runeKey("z"), false, false, core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km := NewKeyMapper()
			if tt.look {
				km = NewLookKeyMapper()
			}
			ka, quit := km.MapKey(tt.msg, tt.gameOver)
			if quit {
				t.Fatal("unexpected quit")
			}
			if ka.Action != tt.want || ka.Held != tt.held {
				t.Errorf("MapKey(%q) = %v held=%v, want %v held=%v", tt.msg.String(), ka.Action, ka.Held, tt.want, tt.held)
			}
		})
	}
}

func TestMapKeyQuit(t *testing.T) {
	km := NewKeyMapper()
	for _, msg := range []tea.KeyMsg{runeKey("q"), {Type: tea.KeyCtrlC}} {
		if _, quit := km.MapKey(msg, false); !quit {
			t.Errorf("%q should quit", msg.String())
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}
