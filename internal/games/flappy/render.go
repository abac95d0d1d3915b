package flappy

import (
	"fmt"

	"github.com/vovakirdan/termgames/internal/core"
)

// Visual characters for rendering
const (
	PipeChar   = '█'
	PipeCap    = '▓'
	GroundChar = '═'
	GroundFill = '░'
	CloudChar  = '░'
	BirdBody   = '●'
)

// viewport maps world pixels to screen cells.
type viewport struct {
	sx, sy float64
}

func (v viewport) col(x float64) int { return int(x * v.sx) }
func (v viewport) row(y float64) int { return int(y * v.sy) }

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	if w == 0 || h == 0 {
		return
	}
	vp := viewport{
		sx: float64(w) / g.cfg.World.Width,
		sy: float64(h) / g.cfg.World.Height,
	}

	g.drawClouds(dst, vp)

	// Ground line and fill
	groundRow := vp.row(g.groundY())
	dst.DrawHLineColor(0, groundRow, w, GroundChar, core.ColorGreen)
	for y := groundRow + 1; y < h; y++ {
		dst.DrawHLineColor(0, y, w, GroundFill, core.ColorBrightGreen)
	}

	for _, p := range g.pipes.Pipes() {
		g.drawPipe(dst, vp, p, groundRow)
	}

	g.drawBird(dst, vp)

	// HUD
	score := fmt.Sprintf("%d", g.score)
	dst.DrawTextColor((w-len(score))/2, 1, score, core.ColorBrightWhite)
	best := fmt.Sprintf("BEST %d", g.Best())
	dst.DrawTextColor(w-len(best)-1, 0, best, core.ColorYellow)

	if g.paused {
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	}

	if g.gameOver {
		g.drawFlash(dst)
		dst.DrawMessageBox("GAME OVER", fmt.Sprintf("Score: %d  Best: %d  |  ENTER or R to restart", g.score, g.Best()))
	}
}

// drawClouds fills cells whose centers fall inside either puff of a cloud.
func (g *Game) drawClouds(dst *core.Screen, vp viewport) {
	for _, c := range g.clouds {
		puffs := [2][3]float64{
			{c.X, c.Y, c.Size},
			{c.X + 20, c.Y + 10, c.Size * 0.8},
		}
		for _, puff := range puffs {
			x0, x1 := vp.col(puff[0]-puff[2]), vp.col(puff[0]+puff[2])
			y0, y1 := vp.row(puff[1]-puff[2]), vp.row(puff[1]+puff[2])
			for y := y0; y <= y1; y++ {
				for x := x0; x <= x1; x++ {
					wx := (float64(x) + 0.5) / vp.sx
					wy := (float64(y) + 0.5) / vp.sy
					dx, dy := wx-puff[0], wy-puff[1]
					if dx*dx+dy*dy <= puff[2]*puff[2] {
						dst.SetCell(x, y, CloudChar, core.ColorWhite)
					}
				}
			}
		}
	}
}

// drawPipe renders a single pipe with caps facing the gap.
func (g *Game) drawPipe(dst *core.Screen, vp viewport, p Pipe, groundRow int) {
	width := g.cfg.Pipes.Width
	x0 := vp.col(p.X)
	x1 := core.Max(vp.col(p.X+width), x0+1)
	if x1 < 0 || x0 >= dst.Width() {
		return
	}
	capX0 := vp.col(p.X - 4)
	capX1 := core.Max(vp.col(p.X+width+4), x1)
	capRows := core.Max(vp.row(g.cfg.Pipes.CapHeight), 1)

	gapTop := vp.row(p.GapY)
	gapBottom := vp.row(p.GapY + p.Gap)

	for y := 0; y < gapTop; y++ {
		if y >= gapTop-capRows {
			dst.DrawHLineColor(capX0, y, capX1-capX0, PipeCap, core.ColorGreen)
		} else {
			dst.DrawHLineColor(x0, y, x1-x0, PipeChar, core.ColorBrightGreen)
		}
	}
	for y := gapBottom; y < groundRow; y++ {
		if y < gapBottom+capRows {
			dst.DrawHLineColor(capX0, y, capX1-capX0, PipeCap, core.ColorGreen)
		} else {
			dst.DrawHLineColor(x0, y, x1-x0, PipeChar, core.ColorBrightGreen)
		}
	}
}

// drawBird draws the body and a beak that follows the tilt.
func (g *Game) drawBird(dst *core.Screen, vp viewport) {
	x, y := vp.col(g.bird.X), vp.row(g.bird.Y)
	dst.SetCell(x, y, BirdBody, core.ColorBrightYellow)
	dst.SetCell(x+1, y, beakGlyph(g.bird.Rotation), core.ColorOrange)
}

func beakGlyph(rotation float64) rune {
	switch {
	case rotation < -10:
		return '◥'
	case rotation > 30:
		return '◢'
	default:
		return '▶'
	}
}

// drawFlash covers the screen with a white shade that thins as the flash fades.
func (g *Game) drawFlash(dst *core.Screen) {
	var shade rune
	switch {
	case g.flash > 0.66:
		shade = '▓'
	case g.flash > 0.33:
		shade = '▒'
	case g.flash > 0:
		shade = '░'
	default:
		return
	}
	dst.FillCell(core.Cell{Rune: shade, Color: core.ColorBrightWhite})
}
