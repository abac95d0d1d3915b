package core

import "testing"

func TestInputFrameHeld(t *testing.T) {
	f := NewInputFrame()

	if f.Has(ActionFire) || f.Held(ActionFire) {
		t.Fatal("Empty frame should report nothing")
	}

	f.SetHeld(ActionFire)
	if f.Has(ActionFire) {
		t.Error("Held-only action should not count as a press")
	}
	if !f.Held(ActionFire) {
		t.Error("Held action should be reported by Held")
	}

	f.Set(ActionJump)
	if !f.Held(ActionJump) {
		t.Error("Pressed action should also count as held")
	}
}

func TestInputFrameClear(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionReload)
	f.SetHeld(ActionUp)
	f.AddLook(3, -2)
	f.AddLook(1, 0)

	if f.LookX != 4 || f.LookY != -2 {
		t.Errorf("Look delta = (%v, %v), expected (4, -2)", f.LookX, f.LookY)
	}

	clone := f.Clone()
	f.Clear()

	if f.Has(ActionReload) || f.Held(ActionUp) || f.LookX != 0 || f.LookY != 0 {
		t.Error("Clear should reset presses, holds and look delta")
	}
	if !clone.Has(ActionReload) || !clone.Held(ActionUp) || clone.LookX != 4 {
		t.Error("Clone should be independent of the original")
	}
}

func TestZeroValueFrame(t *testing.T) {
	var f InputFrame
	if f.Held(ActionFire) {
		t.Error("Zero frame should not report held actions")
	}
	f.SetHeld(ActionFire)
	f.Set(ActionJump)
	if !f.Held(ActionFire) || !f.Has(ActionJump) {
		t.Error("Zero frame should lazily allocate maps")
	}
}

func TestActionString(t *testing.T) {
	if ActionFire.String() != "Fire" {
		t.Errorf("ActionFire.String() = %q", ActionFire.String())
	}
	if Action(999).String() != "Unknown" {
		t.Error("Unknown action should stringify as Unknown")
	}
}
