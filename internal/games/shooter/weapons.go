package shooter

import (
	"github.com/vovakirdan/termgames/internal/config"
	"github.com/vovakirdan/termgames/internal/core"
)

// WeaponType identifies a loadout slot.
type WeaponType int

const (
	WeaponRifle WeaponType = iota
	WeaponPistol
	WeaponKnife
	WeaponGrenade
	numWeapons
)

var weaponNames = [numWeapons]string{"AK", "Glock", "Knife", "HE Grenade"}
var weaponTags = [numWeapons]string{"AK", "GL", "KN", "HE"}
var weaponColors = [numWeapons]core.Color{core.ColorBrown, core.ColorGray, core.ColorRed, core.ColorGreen}

// String returns the display name.
func (w WeaponType) String() string {
	if w < 0 || w >= numWeapons {
		return "Unknown"
	}
	return weaponNames[w]
}

// Tag returns the two letter killfeed tag.
func (w WeaponType) Tag() string {
	if w < 0 || w >= numWeapons {
		return "??"
	}
	return weaponTags[w]
}

// Color returns the killfeed tag color.
func (w WeaponType) Color() core.Color {
	if w < 0 || w >= numWeapons {
		return core.ColorGray
	}
	return weaponColors[w]
}

// UsesAmmo reports whether the weapon has a magazine.
func (w WeaponType) UsesAmmo() bool {
	return w == WeaponRifle || w == WeaponPistol
}

// Loadout is the stat table for every weapon slot.
type Loadout struct {
	byType [numWeapons]config.WeaponSpec
}

// NewLoadout builds the table from config.
func NewLoadout(cfg config.RangeWeapons) Loadout {
	return Loadout{byType: [numWeapons]config.WeaponSpec{
		WeaponRifle:   cfg.Rifle,
		WeaponPistol:  cfg.Pistol,
		WeaponKnife:   cfg.Knife,
		WeaponGrenade: cfg.Grenade,
	}}
}

// Spec returns the stats for w, falling back to the rifle for unknown types.
func (l Loadout) Spec(w WeaponType) config.WeaponSpec {
	if w < 0 || w >= numWeapons {
		return l.byType[WeaponRifle]
	}
	return l.byType[w]
}

// weaponForAction maps the number row to a slot. The highest slot pressed wins.
func weaponForAction(in core.InputFrame) (WeaponType, bool) {
	switch {
	case in.Has(core.ActionWeapon4):
		return WeaponGrenade, true
	case in.Has(core.ActionWeapon3):
		return WeaponKnife, true
	case in.Has(core.ActionWeapon2):
		return WeaponPistol, true
	case in.Has(core.ActionWeapon1):
		return WeaponRifle, true
	}
	return 0, false
}
