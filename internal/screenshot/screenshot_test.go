package screenshot

import (
	"image/color"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	"github.com/vovakirdan/termgames/internal/core"
)

func testScreen() *core.Screen {
	s := core.NewScreen(4, 2)
	s.SetCell(0, 0, '█', core.ColorRed)
	s.SetCell(1, 0, '▄', core.ColorBlue)
	s.DrawText(0, 1, "OK")
	return s
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	paths, err := Save(dir, "range", testScreen(), now)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(paths.Text, "range_20260314-150926.txt"))
	require.True(t, strings.HasSuffix(paths.Image, "range_20260314-150926.png"))
	require.True(t, strings.HasSuffix(paths.Thumb, "range_20260314-150926_thumb.png"))

	text, err := os.ReadFile(paths.Text)
	require.NoError(t, err)
	require.Equal(t, "█▄  \nOK  \n", string(text))

	img, err := imaging.Open(paths.Image)
	require.NoError(t, err)
	require.Equal(t, 4*CellWidth, img.Bounds().Dx())
	require.Equal(t, 2*CellHeight, img.Bounds().Dy())

	thumb, err := imaging.Open(paths.Thumb)
	require.NoError(t, err)
	require.Equal(t, ThumbWidth, thumb.Bounds().Dx())
	require.Equal(t, ThumbWidth*(2*CellHeight)/(4*CellWidth), thumb.Bounds().Dy())
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := t.TempDir() + "/nested/shots"
	_, err := Save(dir, "flappy", testScreen(), time.Now())
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
}

func TestDraw(t *testing.T) {
	img := Draw(testScreen()).Image()
	rgba := func(x, y int) color.RGBA {
		return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	}

	red := RGB(core.ColorRed)
	require.Equal(t, color.RGBA{R: red.R, G: red.G, B: red.B, A: 255}, rgba(CellWidth/2, CellHeight/2))

	// Lower half block: top stays background, bottom is filled.
	blue := RGB(core.ColorBlue)
	require.Equal(t, color.RGBA{R: background.R, G: background.G, B: background.B, A: 255}, rgba(CellWidth+4, 2))
	require.Equal(t, color.RGBA{R: blue.R, G: blue.G, B: blue.B, A: 255}, rgba(CellWidth+4, CellHeight-2))

	// Blank cells keep the background.
	require.Equal(t, color.RGBA{R: background.R, G: background.G, B: background.B, A: 255}, rgba(3*CellWidth+4, CellHeight+8))
}

func TestRGBFallsBackToDefault(t *testing.T) {
	require.Equal(t, RGB(core.ColorDefault), RGB(core.Color(200)))
}
