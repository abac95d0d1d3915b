package flappy

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/termgames/internal/core"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func newTestGame(seed int64) *Game {
	g := New()
	g.Reset(testConfig(seed))
	return g
}

func TestGameDeterminism(t *testing.T) {
	// Test that given the same seed and inputs, the game produces identical results
	// Jump every 15 ticks to try to stay airborne
	inputSequence := make([]core.InputFrame, 300)
	for i := range inputSequence {
		inputSequence[i] = core.NewInputFrame()
		if i%15 == 0 {
			inputSequence[i].Set(core.ActionJump)
		}
	}

	g1 := newTestGame(12345)
	g2 := newTestGame(12345)
	for _, in := range inputSequence {
		g1.Step(in)
		g2.Step(in)
	}

	if g1.bird != g2.bird {
		t.Errorf("Determinism failed: birds differ. Run1=%+v, Run2=%+v", g1.bird, g2.bird)
	}
	if g1.score != g2.score || g1.tickCount != g2.tickCount {
		t.Errorf("Determinism failed: score/ticks differ. Run1=%d/%d, Run2=%d/%d",
			g1.score, g1.tickCount, g2.score, g2.tickCount)
	}
	for i, p := range g1.pipes.Pipes() {
		if p != g2.pipes.Pipes()[i] {
			t.Fatalf("Determinism failed: pipe %d differs: %+v vs %+v", i, p, g2.pipes.Pipes()[i])
		}
	}
}

func TestGameReset(t *testing.T) {
	g := newTestGame(42)

	// Play a few ticks
	for i := 0; i < 50; i++ {
		in := core.NewInputFrame()
		if i%10 == 0 {
			in.Set(core.ActionJump)
		}
		g.Step(in)
	}

	// Reset should clear state
	g.Reset(testConfig(42))

	if g.score != 0 {
		t.Errorf("Reset should clear score, got %d", g.score)
	}
	if g.gameOver {
		t.Error("Reset should clear gameOver flag")
	}
	if g.paused {
		t.Error("Reset should clear paused flag")
	}
	if g.tickCount != 0 {
		t.Errorf("Reset should clear tickCount, got %d", g.tickCount)
	}
	if g.bird.Y != g.cfg.World.Height/2 || g.bird.Velocity != 0 || g.bird.Rotation != 0 {
		t.Errorf("Reset should center the bird, got %+v", g.bird)
	}
}

func TestInitialLayout(t *testing.T) {
	g := newTestGame(7)
	cfg := g.cfg

	pipes := g.pipes.Pipes()
	if len(pipes) != cfg.Pipes.Count {
		t.Fatalf("expected %d pipes, got %d", cfg.Pipes.Count, len(pipes))
	}
	for i, p := range pipes {
		wantX := cfg.World.Width + cfg.Pipes.FirstOffset + float64(i)*cfg.Pipes.Spacing
		if p.X != wantX {
			t.Errorf("pipe %d: X = %f, want %f", i, p.X, wantX)
		}
		if p.GapY < cfg.Pipes.Margin || p.GapY > cfg.World.Height-cfg.Pipes.Margin-cfg.Pipes.GapSize {
			t.Errorf("pipe %d: gap top %f out of range", i, p.GapY)
		}
		if p.GapY != math.Trunc(p.GapY) {
			t.Errorf("pipe %d: gap top %f should be whole", i, p.GapY)
		}
	}

	if len(g.clouds) != cfg.Clouds.Count {
		t.Errorf("expected %d clouds, got %d", cfg.Clouds.Count, len(g.clouds))
	}
}

func TestGameJumpPhysics(t *testing.T) {
	g := newTestGame(1)
	initialY := g.bird.Y

	jumpInput := core.NewInputFrame()
	jumpInput.Set(core.ActionJump)
	g.Step(jumpInput)

	// Player should have moved up (negative Y direction)
	if g.bird.Y >= initialY {
		t.Errorf("Jump should move bird up, was %f, now %f", initialY, g.bird.Y)
	}

	wantVel := -g.cfg.Physics.JumpStrength + g.cfg.Physics.Gravity/60
	if math.Abs(g.bird.Velocity-wantVel) > 1e-9 {
		t.Errorf("Velocity after jump = %f, want %f", g.bird.Velocity, wantVel)
	}
	if g.bird.Rotation != g.cfg.Physics.JumpTilt {
		t.Errorf("Jump should tilt the bird to %f, got %f", g.cfg.Physics.JumpTilt, g.bird.Rotation)
	}
}

func TestGameGravityAndTilt(t *testing.T) {
	g := newTestGame(1)
	g.bird.Velocity = 200

	noInput := core.NewInputFrame()
	g.Step(noInput)

	if g.bird.Y <= g.cfg.World.Height/2 {
		t.Errorf("Gravity should pull bird down, Y is still %f", g.bird.Y)
	}
	if g.bird.Rotation <= 0 {
		t.Errorf("Falling faster than the threshold should tilt nose down, got %f", g.bird.Rotation)
	}

	for i := 0; i < 120; i++ {
		g.bird.Velocity = 200
		g.bird.Y = 200
		g.Step(noInput)
	}
	if g.bird.Rotation != g.cfg.Physics.MaxTilt {
		t.Errorf("Tilt should cap at %f, got %f", g.cfg.Physics.MaxTilt, g.bird.Rotation)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(1)

	pauseInput := core.NewInputFrame()
	pauseInput.Set(core.ActionPause)
	g.Step(pauseInput)

	if !g.paused {
		t.Error("Game should be paused")
	}

	yBefore := g.bird.Y
	pipeBefore := g.pipes.Pipes()[0].X

	jump := core.NewInputFrame()
	jump.Set(core.ActionJump)
	g.Step(jump)

	if g.bird.Y != yBefore || g.pipes.Pipes()[0].X != pipeBefore {
		t.Error("Nothing should move while paused")
	}

	// Unpause
	g.Step(pauseInput)
	if g.paused {
		t.Error("Game should be unpaused")
	}
}

func TestGroundEndsGame(t *testing.T) {
	g := newTestGame(1)

	g.bird.Y = g.groundY() - g.bird.Radius
	g.bird.Velocity = 10

	result := g.Step(core.NewInputFrame())
	if !result.State.GameOver {
		t.Error("Game should be over when the bird touches the ground line")
	}
	if g.flash != g.cfg.Effects.FlashDuration {
		t.Errorf("Crash should start the flash, got %f", g.flash)
	}
}

func TestCeilingClamps(t *testing.T) {
	g := newTestGame(1)
	g.bird.Y = 5
	g.bird.Velocity = -300

	result := g.Step(core.NewInputFrame())
	if result.State.GameOver {
		t.Fatal("The ceiling should not end the game")
	}
	if g.bird.Y != g.bird.Radius || g.bird.Velocity != 0 {
		t.Errorf("Ceiling should clamp: Y=%f vel=%f", g.bird.Y, g.bird.Velocity)
	}
}

func TestPipeCollision(t *testing.T) {
	g := newTestGame(1)

	// Pipe right at the bird with the gap far above it
	g.pipes.pipes[0] = Pipe{X: g.bird.X - 10, GapY: 0, Gap: 5}

	result := g.Step(core.NewInputFrame())
	if !result.State.GameOver {
		t.Error("Game should be over when bird hits pipe")
	}
}

func TestBirdPassesThroughGap(t *testing.T) {
	g := newTestGame(1)

	// Gap centered on the bird and wide enough for it
	g.pipes.pipes[0] = Pipe{X: g.bird.X - 10, GapY: g.bird.Y - 60, Gap: 140}
	g.bird.Velocity = -g.cfg.Physics.Gravity / 60

	result := g.Step(core.NewInputFrame())
	if result.State.GameOver {
		t.Error("Bird inside the gap should not collide")
	}
}

func TestRecycledPipeKeepsSpacing(t *testing.T) {
	g := newTestGame(3)
	pipes := g.pipes.Pipes()
	width := g.cfg.Pipes.Width

	pipes[0].X = -width - 1
	pipes[0].Passed = true

	g.pipes.Update(1.0/60, g.bird.X, 0, 0)

	furthestOther := pipes[1].X
	for _, p := range pipes[2:] {
		furthestOther = math.Max(furthestOther, p.X)
	}
	if math.Abs(pipes[0].X-(furthestOther+g.cfg.Pipes.Spacing)) > 1e-9 {
		t.Errorf("recycled pipe at %f, want %f", pipes[0].X, furthestOther+g.cfg.Pipes.Spacing)
	}
	if pipes[0].Passed {
		t.Error("recycled pipe should be scoreable again")
	}
}

func TestCloudDrift(t *testing.T) {
	const worldW, wrapAt = 800.0, 100.0
	tests := []struct {
		name  string
		cloud Cloud
		dt    float64
		wantX float64
	}{
		{"drifts left", Cloud{X: 400, Speed: 30}, 0.5, 385},
		{"stops at wrap edge", Cloud{X: -90, Speed: 20}, 0.5, -100},
		{"wraps past edge", Cloud{X: -99.9, Speed: 30}, 1.0 / 60, worldW + wrapAt},
		{"still clouds stay", Cloud{X: 10, Speed: 0}, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clouds := []Cloud{tt.cloud}
			updateClouds(clouds, tt.dt, worldW, wrapAt)
			if math.Abs(clouds[0].X-tt.wantX) > 1e-9 {
				t.Errorf("cloud X = %f, want %f", clouds[0].X, tt.wantX)
			}
		})
	}
}

func TestGameMovesClouds(t *testing.T) {
	g := newTestGame(9)
	before := make([]Cloud, len(g.clouds))
	copy(before, g.clouds)

	g.Step(core.NewInputFrame())

	for i, c := range g.clouds {
		want := before[i].X - before[i].Speed*g.runtime.DT()
		if math.Abs(c.X-want) > 1e-9 {
			t.Errorf("cloud %d at %f, want %f", i, c.X, want)
		}
	}
}

func TestDifficultyPresetScaling(t *testing.T) {
	tests := []struct {
		preset string
		level  float64
	}{
		{"", 0},
		{"easy", 0},
		{"normal", 0.3},
		{"hard", 0.7},
		{"fixed", 0},
	}

	for _, tt := range tests {
		t.Run("preset "+tt.preset, func(t *testing.T) {
			SetDifficultyPreset(tt.preset)
			t.Cleanup(func() { SetDifficultyPreset("") })

			g := newTestGame(5)
			scaling := g.cfg.Difficulty.Scaling
			dt := g.runtime.DT()

			wantGap := g.cfg.Pipes.GapSize - tt.level*scaling.GapReduction
			if got := g.pipes.Pipes()[0].Gap; math.Abs(got-wantGap) > 1e-9 {
				t.Errorf("gap = %f, want %f", got, wantGap)
			}

			x := g.pipes.Pipes()[0].X
			g.Step(core.NewInputFrame())
			moved := x - g.pipes.Pipes()[0].X
			wantMove := g.cfg.Physics.PipeSpeed * (1 + tt.level*scaling.SpeedMultiplier) * dt
			if math.Abs(moved-wantMove) > 1e-9 {
				t.Errorf("pipes moved %f per tick, want %f", moved, wantMove)
			}
		})
	}
}

func TestHardPresetRecycleSpacing(t *testing.T) {
	SetDifficultyPreset("hard")
	t.Cleanup(func() { SetDifficultyPreset("") })

	g := newTestGame(3)
	pipes := g.pipes.Pipes()
	pipes[0].X = -g.cfg.Pipes.Width - 1

	const score = 10
	g.pipes.Update(g.runtime.DT(), g.bird.X, score, 0)

	furthestOther := pipes[1].X
	for _, p := range pipes[2:] {
		furthestOther = math.Max(furthestOther, p.X)
	}
	spacing := g.difficulty.Spacing(g.cfg.Pipes.Spacing, score, 0)
	if spacing >= g.cfg.Pipes.Spacing {
		t.Fatalf("hard spacing %f should be tighter than base %f", spacing, g.cfg.Pipes.Spacing)
	}
	if math.Abs(pipes[0].X-(furthestOther+spacing)) > 1e-9 {
		t.Errorf("recycled pipe at %f, want %f", pipes[0].X, furthestOther+spacing)
	}
	if want := g.difficulty.GapSize(g.cfg.Pipes.GapSize, score, 0); pipes[0].Gap != want {
		t.Errorf("recycled gap = %f, want %f", pipes[0].Gap, want)
	}
}

func TestScoringOncePerPipe(t *testing.T) {
	g := newTestGame(3)
	pipes := g.pipes.Pipes()
	pipes[0].X = g.bird.X - g.cfg.Pipes.Width - 1

	if got := g.pipes.Update(1.0/60, g.bird.X, 0, 0); got != 1 {
		t.Fatalf("expected one pipe passed, got %d", got)
	}
	if got := g.pipes.Update(1.0/60, g.bird.X, 1, 1); got != 0 {
		t.Errorf("a pipe should only score once, got %d", got)
	}
}

func TestGameOverFall(t *testing.T) {
	g := newTestGame(1)
	g.crash()

	y0, rot0 := g.bird.Y, g.bird.Rotation
	jump := core.NewInputFrame()
	jump.Set(core.ActionJump)
	g.Step(jump)

	if g.bird.Y <= y0 || g.bird.Rotation <= rot0 {
		t.Error("Bird should keep falling and spinning after game over")
	}
	if g.bird.Velocity < 0 {
		t.Error("Jump input should be ignored after game over")
	}

	for i := 0; i < 600; i++ {
		g.Step(core.NewInputFrame())
	}
	limit := g.cfg.World.Height + 50
	if g.bird.Y < limit {
		t.Errorf("Bird should fall below %f, got %f", limit, g.bird.Y)
	}
	yStop := g.bird.Y
	g.Step(core.NewInputFrame())
	if g.bird.Y != yStop {
		t.Error("Bird should stop once it is off screen")
	}
	if g.flash != 0 {
		t.Errorf("Flash should fade out, got %f", g.flash)
	}
}

func TestBestScoreSurvivesReset(t *testing.T) {
	g := newTestGame(1)
	g.score = 7
	g.crash()
	g.Reset(testConfig(2))

	if g.score != 0 || g.Best() != 7 {
		t.Errorf("score=%d best=%d, want 0 and 7", g.score, g.Best())
	}
}

func TestReloadAppliesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flappy.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  gravity: 500\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	g := newTestGame(1)
	if g.cfg.Physics.Gravity != 500 {
		t.Fatalf("Reset should load the custom config, got gravity %f", g.cfg.Physics.Gravity)
	}

	if err := os.WriteFile(path, []byte("physics:\n  gravity: 800\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	pipeX := g.pipes.Pipes()[0].X
	if err := g.Reload(); err != nil {
		t.Fatalf("Reload() failed: %v", err)
	}
	if g.cfg.Physics.Gravity != 800 {
		t.Errorf("Reload should apply gravity 800, got %f", g.cfg.Physics.Gravity)
	}
	if g.pipes.Pipes()[0].X != pipeX {
		t.Error("Reload should not move pipes")
	}

	if err := os.WriteFile(path, []byte("physics: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := g.Reload(); err == nil {
		t.Error("Reload should report a broken config")
	}
	if g.cfg.Physics.Gravity != 800 {
		t.Error("A failed reload should keep the previous config")
	}
}

func TestGameRender(t *testing.T) {
	cfg := testConfig(1)
	g := newTestGame(1)

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(screen)

	// Ground line sits at the scaled ground height
	sx := float64(cfg.ScreenW) / g.cfg.World.Width
	sy := float64(cfg.ScreenH) / g.cfg.World.Height
	groundRow := int(g.groundY() * sy)
	if screen.Get(0, groundRow) != GroundChar {
		t.Errorf("Ground should be drawn at row %d, got %q", groundRow, screen.Get(0, groundRow))
	}

	birdX := int(g.bird.X * sx)
	birdY := int(g.bird.Y * sy)
	if screen.Get(birdX, birdY) != BirdBody {
		t.Errorf("Bird should be drawn at (%d,%d), got %q", birdX, birdY, screen.Get(birdX, birdY))
	}

	// Move a pipe on screen and check it is drawn above the gap
	g.pipes.pipes[0] = Pipe{X: 400, GapY: 200, Gap: 140}
	g.Render(screen)
	if screen.Get(41, 0) != PipeChar {
		t.Errorf("Pipe body should be drawn at the top, got %q", screen.Get(41, 0))
	}
	if screen.Get(41, 12) != ' ' {
		t.Errorf("Gap should be empty, got %q", screen.Get(41, 12))
	}
}

func TestRenderGameOverBox(t *testing.T) {
	g := newTestGame(1)
	g.crash()
	g.flash = 0

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	found := false
	for y := 0; y < 24; y++ {
		if strings.Contains(screen.Row(y), "GAME OVER") {
			found = true
		}
	}
	if !found {
		t.Error("Game over box should be drawn")
	}
}
