package shooter

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/vovakirdan/termgames/internal/core"
)

// cellAspect is the width of a terminal cell relative to its height.
const cellAspect = 0.5

const (
	nearPlane = 0.1
	farPlane  = 1000
)

// shadeRamp goes from near to far.
var shadeRamp = []rune{'█', '▓', '▒', '░'}

// frameBuffers holds per-frame scratch space reused across renders.
type frameBuffers struct {
	w, h  int
	depth []float32
}

func (fb *frameBuffers) resize(w, h int) {
	if fb.w == w && fb.h == h {
		return
	}
	fb.w, fb.h = w, h
	fb.depth = make([]float32, w*h)
}

// camera is the view used for one frame.
type camera struct {
	eye              mgl32.Vec3
	forward, right   mgl32.Vec3
	up               mgl32.Vec3
	tanHalf, aspect  float32
	viewProj         mgl32.Mat4
	width, height    int
	pixelsPerUnitAt1 float32
}

func (g *Game) camera(w, h int) camera {
	p := &g.player
	fovy := mgl32.DegToRad(float32(g.cfg.Player.FOV))
	aspect := float32(w) * cellAspect / float32(h)
	forward := p.Forward()

	view := mgl32.LookAtV(p.Pos, p.Pos.Add(forward), worldUp)
	proj := mgl32.Perspective(fovy, aspect, nearPlane, farPlane)
	tanHalf := float32(math.Tan(float64(fovy) / 2))

	return camera{
		eye:              p.Pos,
		forward:          forward,
		right:            p.Right(),
		up:               p.Up(),
		tanHalf:          tanHalf,
		aspect:           aspect,
		viewProj:         proj.Mul4(view),
		width:            w,
		height:           h,
		pixelsPerUnitAt1: float32(h) / (2 * tanHalf),
	}
}

// rayFor returns the primary ray through the center of cell (x, y).
func (c camera) rayFor(x, y int) Ray {
	ndcX := 2*(float32(x)+0.5)/float32(c.width) - 1
	ndcY := 1 - 2*(float32(y)+0.5)/float32(c.height)
	dir := c.forward.
		Add(c.right.Mul(ndcX * c.tanHalf * c.aspect)).
		Add(c.up.Mul(ndcY * c.tanHalf))
	return Ray{Origin: c.eye, Dir: dir.Normalize()}
}

// project maps a world point to a cell. ok is false behind the camera or off screen.
func (c camera) project(p mgl32.Vec3) (x, y int, ok bool) {
	clip := c.viewProj.Mul4x1(p.Vec4(1))
	if clip.W() <= nearPlane {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	if ndc.X() < -1 || ndc.X() > 1 || ndc.Y() < -1 || ndc.Y() > 1 {
		return 0, 0, false
	}
	x = int((ndc.X() + 1) / 2 * float32(c.width))
	y = int((1 - ndc.Y()) / 2 * float32(c.height))
	return min(x, c.width-1), min(y, c.height-1), true
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	if w == 0 || h == 0 {
		return
	}
	g.frame.resize(w, h)
	cam := g.camera(w, h)

	g.drawScene(dst, cam)
	g.drawParticles(dst, cam)
	g.drawCrosshair(dst)
	g.drawViewmodel(dst)
	g.drawHUD(dst)
	g.drawKillfeed(dst)

	if g.paused {
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	}
	if g.roundOver {
		dst.DrawMessageBox("RANGE CLEAR",
			fmt.Sprintf("Score: %d  Accuracy: %.0f%%  |  R or ENTER to restart", g.score, g.stats.Accuracy()*100))
	}
}

// surface is the nearest thing a primary ray sees.
type surface struct {
	hit    Hit
	color  core.Color
	floor  bool
	bright bool
}

// drawScene raycasts every cell against walls and targets.
func (g *Game) drawScene(dst *core.Screen, cam camera) {
	for y := 0; y < cam.height; y++ {
		for x := 0; x < cam.width; x++ {
			ray := cam.rayFor(x, y)
			s, ok := g.castView(ray)
			idx := y*cam.width + x
			if !ok {
				g.frame.depth[idx] = farPlane
				continue
			}
			g.frame.depth[idx] = s.hit.Distance
			r, c := shadeSurface(s)
			dst.SetCell(x, y, r, c)
		}
	}
}

func (g *Game) castView(ray Ray) (surface, bool) {
	best := surface{hit: Hit{Distance: farPlane}}
	found := false
	consider := func(box AABB, s surface) {
		if h, ok := ray.IntersectBox(box); ok && h.Distance < best.hit.Distance {
			s.hit = h
			best = s
			found = true
		}
	}

	walls := g.world.Walls()
	for i, w := range walls {
		consider(w.Box, surface{color: w.Color, floor: i == 0})
	}

	targets := g.world.Targets()
	for i := range targets {
		t := &targets[i]
		if !t.Active {
			continue
		}
		if t.Health <= 0 {
			consider(t.CorpseBox(), surface{color: core.ColorDarkGray})
			continue
		}
		skin, shirt := core.ColorBeige, core.ColorBlue
		if t.HitTimer > 0 {
			skin, shirt = core.ColorRed, core.ColorRed
		}
		consider(t.HeadBox(), surface{color: skin, bright: true})
		consider(t.BodyBox(), surface{color: shirt, bright: true})
	}
	return best, found
}

// shadeSurface picks a glyph by distance and face orientation.
func shadeSurface(s surface) (rune, core.Color) {
	if s.floor && s.hit.Normal.Y() > 0.5 {
		px, pz := s.hit.Point.X(), s.hit.Point.Z()
		if nearGridLine(px) || nearGridLine(pz) {
			return '·', core.ColorGray
		}
		return ' ', core.ColorDefault
	}

	level := 0
	switch d := s.hit.Distance; {
	case d > 24:
		level = 3
	case d > 14:
		level = 2
	case d > 7:
		level = 1
	}
	// Side faces read one step darker so box edges stay visible.
	if math.Abs(float64(s.hit.Normal.X())) > 0.5 && !s.bright {
		level++
	}
	if level >= len(shadeRamp) {
		level = len(shadeRamp) - 1
	}
	return shadeRamp[level], s.color
}

func nearGridLine(v float32) bool {
	frac := v - float32(math.Floor(float64(v)))
	return frac < 0.06 || frac > 0.94
}

// drawParticles projects live particles and the grenade, respecting scene depth.
func (g *Game) drawParticles(dst *core.Screen, cam camera) {
	plot := func(pos mgl32.Vec3, size float32, r rune, c core.Color) {
		x, y, ok := cam.project(pos)
		if !ok {
			return
		}
		dist := pos.Sub(cam.eye).Len()
		radius := int(size * cam.pixelsPerUnitAt1 / max(dist, nearPlane) / 2)
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius * 2; dx <= radius*2; dx++ {
				px, py := x+dx, y+dy
				if px < 0 || py < 0 || px >= cam.width || py >= cam.height {
					continue
				}
				if dist >= g.frame.depth[py*cam.width+px] {
					continue
				}
				dst.SetCell(px, py, r, c)
			}
		}
	}

	g.particles.Each(func(p *Particle) {
		switch p.Kind {
		case ParticleBlood:
			plot(p.Pos, p.Size, '•', p.Color)
		case ParticleSpark:
			plot(p.Pos, p.Size, '*', p.Color)
		case ParticleExplosion:
			fade := p.Fade()
			r := '░'
			switch {
			case fade > 0.6:
				r = '█'
			case fade > 0.3:
				r = '▓'
			}
			plot(p.Pos, p.Size, r, p.Color)
		case ParticleSmoke:
			plot(p.Pos, p.Size, '░', p.Color)
		}
	})

	if g.grenade.Active && !g.grenade.Exploding {
		plot(g.grenade.Pos, 0.3, 'o', core.ColorGreen)
	}
}

func (g *Game) drawCrosshair(dst *core.Screen) {
	p := &g.player
	cx, cy := dst.Width()/2, dst.Height()/2

	gap := 1
	if p.VelY != 0 {
		gap = 2
	}
	if p.Recoil > 0 {
		gap++
	}

	c := core.ColorBrightGreen
	dst.DrawHLineColor(cx-gap*2-2, cy, 2, '─', c)
	dst.DrawHLineColor(cx+gap*2+1, cy, 2, '─', c)
	dst.SetCell(cx, cy-gap, '│', c)
	dst.SetCell(cx, cy+gap, '│', c)
}

// viewmodel sprites, drawn from the bottom right; spaces are transparent.
var weaponSprites = [numWeapons][]string{
	WeaponRifle: {
		"      ▐▌",
		"      ▐▌",
		"     ▐██▌",
		"    ▐████▌",
		"    ▐█▓▓█▌",
		"   ▐██▓▓██▌",
		"   ▐██████▌",
	},
	WeaponPistol: {
		"    ▄▄",
		"   ▐██▌",
		"   ▐██▌",
		"  ▐████▌",
		"   ▐██▌",
	},
	WeaponKnife: {
		"    ▲",
		"   ▐█▌",
		"   ▐█▌",
		"   ▐█▌",
		"   ███",
		"   ▐█▌",
	},
	WeaponGrenade: {
		"   ▄█▄",
		"  █████",
		"  █████",
		"   ▀█▀",
	},
}

var weaponSpriteColors = [numWeapons]core.Color{core.ColorBrown, core.ColorGray, core.ColorWhite, core.ColorGreen}

// drawViewmodel draws the held weapon with sway, bob, equip drop, recoil,
// reload dip and inspect wobble.
func (g *Game) drawViewmodel(dst *core.Screen) {
	p := &g.player
	w, h := dst.Width(), dst.Height()
	sprite := weaponSprites[p.Weapon]

	bobX := math.Cos(float64(p.WalkTimer)*0.5) * 1
	bobY := math.Sin(float64(p.WalkTimer)) * 0.5
	equip := 1 - float64(p.EquipTimer)
	equipY := equip * equip * float64(len(sprite)+2)
	recoilY := float64(max(p.Recoil, 0)) * 5

	var reloadY, inspectX, inspectY float64
	if p.Reloading {
		reloadY = math.Sin(float64(p.ReloadTimer)*math.Pi) * float64(h) / 6
	}
	if p.Inspecting {
		inspectX = math.Sin(float64(p.InspectTimer)*2) * 3
		inspectY = math.Sin(float64(p.InspectTimer)*4) * 1
	}
	var stabY float64
	if p.Weapon == WeaponKnife && p.Recoil < 0 {
		stabY = float64(p.Recoil) * 8
	}

	baseX := w*2/3 + int(math.Round(float64(p.Sway.X())+bobX+inspectX))
	baseY := h - len(sprite) + int(math.Round(float64(p.Sway.Y())+bobY+equipY+recoilY+reloadY+inspectY+stabY))

	color := weaponSpriteColors[p.Weapon]
	for row, line := range sprite {
		col := 0
		for _, r := range line {
			if r != ' ' {
				dst.SetCell(baseX+col, baseY+row, r, color)
			}
			col++
		}
	}

	if p.MuzzleFlash > 0 && p.Weapon.UsesAmmo() {
		fx, fy := baseX+6, baseY-1
		if p.Weapon == WeaponPistol {
			fx, fy = baseX+4, baseY-1
		}
		dst.SetCell(fx, fy, '✶', core.ColorBrightYellow)
		dst.SetCell(fx-1, fy, '*', core.ColorYellow)
		dst.SetCell(fx+1, fy, '*', core.ColorYellow)
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	p := &g.player
	w, h := dst.Width(), dst.Height()

	dst.DrawTextColor(0, 0, "1:AK 2:GLOCK 3:KNIFE 4:NADE | F:INSPECT R:RELOAD T:RESET", core.ColorWhite)

	dst.DrawTextColor(1, h-1, fmt.Sprintf("HP: %03d", p.Health), core.ColorRed)

	ammo := "---"
	switch p.Weapon {
	case WeaponRifle, WeaponPistol:
		ammo = fmt.Sprintf("%d / %d", p.Ammo[p.Weapon], p.Reserve[p.Weapon])
	case WeaponGrenade:
		ammo = fmt.Sprintf("%d", p.Grenades)
	}
	dst.DrawTextColor(w-len(ammo)-1, h-1, ammo, core.ColorYellow)

	if p.Reloading {
		msg := "RELOADING..."
		dst.DrawTextColor(w-len(msg)-1, h-2, msg, core.ColorRed)
	} else if p.Weapon.UsesAmmo() && p.Ammo[p.Weapon] == 0 {
		msg := "PRESS 'R'"
		dst.DrawTextColor(w-len(msg)-1, h-2, msg, core.ColorRed)
	}

	status := fmt.Sprintf("SCORE %d  TARGETS %d/%d", g.score, g.world.aliveTargets(), len(g.world.Targets()))
	dst.DrawTextColor((w-len(status))/2, h-1, status, core.ColorBrightWhite)
}

// drawKillfeed lists recent kills in the top right corner, fading out.
func (g *Game) drawKillfeed(dst *core.Screen) {
	w := dst.Width()
	for i, e := range g.killfeed.Entries() {
		text := core.ColorWhite
		if e.Timer <= 1 {
			text = core.ColorGray
		}

		hs := ""
		if e.Headshot {
			hs = " ◉"
		}
		line := fmt.Sprintf("%s [%s]%s %s", e.Killer, e.Weapon.Tag(), hs, e.Victim)
		x := w - len([]rune(line)) - 1
		y := 1 + i

		dst.DrawTextColor(x, y, line, text)
		tagX := x + len([]rune(e.Killer)) + 1
		dst.DrawTextColor(tagX, y, "["+e.Weapon.Tag()+"]", e.Weapon.Color())
		if e.Headshot {
			dst.SetCell(tagX+5, y, '◉', core.ColorRed)
		}
	}
}
