// Package screenshot writes a rendered game frame to disk as plain text,
// a full size PNG and a small thumbnail.
package screenshot

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/vovakirdan/termgames/internal/core"
)

// Pixel size of one terminal cell in the PNG.
const (
	CellWidth  = 8
	CellHeight = 16
)

// ThumbWidth is the thumbnail width in pixels; height keeps the aspect ratio.
const ThumbWidth = 320

// Paths lists the files written by Save.
type Paths struct {
	Text  string
	Image string
	Thumb string
}

var background = color.NRGBA{R: 12, G: 12, B: 16, A: 255}

// palette approximates the xterm colors the terminal renderer uses.
var palette = map[core.Color]color.NRGBA{
	core.ColorDefault:       {R: 229, G: 229, B: 229, A: 255},
	core.ColorRed:           {R: 205, G: 0, B: 0, A: 255},
	core.ColorGreen:         {R: 0, G: 205, B: 0, A: 255},
	core.ColorYellow:        {R: 205, G: 205, B: 0, A: 255},
	core.ColorBlue:          {R: 0, G: 0, B: 238, A: 255},
	core.ColorMagenta:       {R: 205, G: 0, B: 205, A: 255},
	core.ColorCyan:          {R: 0, G: 205, B: 205, A: 255},
	core.ColorWhite:         {R: 229, G: 229, B: 229, A: 255},
	core.ColorBrightRed:     {R: 255, G: 0, B: 0, A: 255},
	core.ColorBrightGreen:   {R: 0, G: 255, B: 0, A: 255},
	core.ColorBrightYellow:  {R: 255, G: 255, B: 0, A: 255},
	core.ColorBrightBlue:    {R: 92, G: 92, B: 255, A: 255},
	core.ColorBrightMagenta: {R: 255, G: 0, B: 255, A: 255},
	core.ColorBrightCyan:    {R: 0, G: 255, B: 255, A: 255},
	core.ColorBrightWhite:   {R: 255, G: 255, B: 255, A: 255},
	core.ColorOrange:        {R: 255, G: 135, B: 0, A: 255},
	core.ColorGray:          {R: 138, G: 138, B: 138, A: 255},
	core.ColorDarkGray:      {R: 88, G: 88, B: 88, A: 255},
	core.ColorBrown:         {R: 135, G: 95, B: 0, A: 255},
	core.ColorBeige:         {R: 255, G: 215, B: 175, A: 255},
	core.ColorSky:           {R: 135, G: 215, B: 255, A: 255},
}

// RGB returns the image color for a cell color.
func RGB(c core.Color) color.NRGBA {
	if rgb, ok := palette[c]; ok {
		return rgb
	}
	return palette[core.ColorDefault]
}

// Save writes <gameID>_<timestamp>.txt, .png and _thumb.png into dir.
func Save(dir, gameID string, screen *core.Screen, now time.Time) (Paths, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("screenshot: create %s: %w", dir, err)
	}

	base := filepath.Join(dir, fmt.Sprintf("%s_%s", gameID, now.Format("20060102-150405")))
	paths := Paths{
		Text:  base + ".txt",
		Image: base + ".png",
		Thumb: base + "_thumb.png",
	}

	if err := os.WriteFile(paths.Text, []byte(screen.String()+"\n"), 0o644); err != nil {
		return Paths{}, fmt.Errorf("screenshot: write text: %w", err)
	}

	dc := Draw(screen)
	if err := dc.SavePNG(paths.Image); err != nil {
		return Paths{}, fmt.Errorf("screenshot: write png: %w", err)
	}

	thumb := imaging.Resize(dc.Image(), ThumbWidth, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, paths.Thumb); err != nil {
		return Paths{}, fmt.Errorf("screenshot: write thumbnail: %w", err)
	}

	return paths, nil
}

// Draw paints the screen onto a new image context, one cell per CellWidth x CellHeight block.
func Draw(screen *core.Screen) *gg.Context {
	w := max(screen.Width()*CellWidth, 1)
	h := max(screen.Height()*CellHeight, 1)
	dc := gg.NewContext(w, h)
	dc.SetColor(background)
	dc.Clear()

	for y := 0; y < screen.Height(); y++ {
		for x := 0; x < screen.Width(); x++ {
			cell := screen.GetCell(x, y)
			if cell.Rune == ' ' || cell.Rune == 0 {
				continue
			}
			drawCell(dc, float64(x*CellWidth), float64(y*CellHeight), cell)
		}
	}
	return dc
}

func drawCell(dc *gg.Context, px, py float64, cell core.Cell) {
	const cw, ch = float64(CellWidth), float64(CellHeight)
	c := RGB(cell.Color)

	if alpha, ok := shadeAlpha[cell.Rune]; ok {
		c.A = alpha
		dc.SetColor(c)
		dc.DrawRectangle(px, py, cw, ch)
		dc.Fill()
		return
	}

	dc.SetColor(c)
	switch cell.Rune {
	case '▀':
		dc.DrawRectangle(px, py, cw, ch/2)
	case '▄':
		dc.DrawRectangle(px, py+ch/2, cw, ch/2)
	case '▌':
		dc.DrawRectangle(px, py, cw/2, ch)
	case '▐':
		dc.DrawRectangle(px+cw/2, py, cw/2, ch)
	default:
		if cell.Rune < 0x80 {
			dc.DrawStringAnchored(string(cell.Rune), px+cw/2, py+ch/2, 0.5, 0.5)
			return
		}
		// The built-in face is ASCII only; other glyphs become a centered mark.
		dc.DrawRectangle(px+2, py+ch/2-2, cw-4, 4)
	}
	dc.Fill()
}

var shadeAlpha = map[rune]uint8{
	'█': 255,
	'▓': 192,
	'▒': 128,
	'░': 64,
}
