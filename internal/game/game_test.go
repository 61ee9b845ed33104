package game

import (
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chosenoffset.com/gridcaster/internal/config"
	"chosenoffset.com/gridcaster/internal/movement"
	"chosenoffset.com/gridcaster/internal/placeholders"
	"chosenoffset.com/gridcaster/internal/render"
)

// fakeInput holds keys down until released and reports presses once.
type fakeInput struct {
	held map[render.Key]bool
	just map[render.Key]bool
}

func newFakeInput() *fakeInput {
	return &fakeInput{held: map[render.Key]bool{}, just: map[render.Key]bool{}}
}

func (f *fakeInput) IsKeyPressed(key render.Key) bool     { return f.held[key] }
func (f *fakeInput) IsKeyJustPressed(key render.Key) bool { return f.just[key] }

func (f *fakeInput) tap(key render.Key) {
	f.just = map[render.Key]bool{key: true}
}

type countingBumper struct{ bumps int }

func (b *countingBumper) Bump() { b.bumps++ }

// fakeImage records what the game presents.
type fakeImage struct {
	width, height int
	pix           []byte
	text          []string
}

func (f *fakeImage) Size() (int, int)            { return f.width, f.height }
func (f *fakeImage) WritePixels(pix []byte)      { f.pix = append([]byte(nil), pix...) }
func (f *fakeImage) DrawText(s string, _, _ int) { f.text = append(f.text, s) }

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestGame(t *testing.T) (*Game, *fakeInput, *testClock) {
	t.Helper()
	input := newFakeInput()
	g, err := LoadGame(config.DefaultConfig(), Assets{}, input)
	if err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}
	clock := &testClock{now: time.Unix(1000, 0)}
	g.Now = clock.Now
	return g, input, clock
}

func update(t *testing.T, g *Game) {
	t.Helper()
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
}

func TestUpdateMovesForward(t *testing.T) {
	g, input, clock := newTestGame(t)

	update(t, g) // first tick has no elapsed time
	if g.Camera.X != 1.5 || g.Camera.Y != 1.5 {
		t.Fatalf("Expected spawn (1.5, 1.5), got (%v, %v)", g.Camera.X, g.Camera.Y)
	}

	input.held[render.KeyUp] = true
	clock.advance(100 * time.Millisecond)
	update(t, g)

	if math.Abs(g.Camera.X-1.8) > 1e-9 || g.Camera.Y != 1.5 {
		t.Errorf("Expected (1.8, 1.5), got (%v, %v)", g.Camera.X, g.Camera.Y)
	}
	if g.LastOutcome != movement.Moved {
		t.Errorf("Expected Moved, got %v", g.LastOutcome)
	}
	if g.FrameCount != 2 {
		t.Errorf("Expected 2 rendered frames, got %d", g.FrameCount)
	}
}

func TestUpdateClampsLongFrames(t *testing.T) {
	g, input, clock := newTestGame(t)
	update(t, g)

	input.held[render.KeyW] = true
	clock.advance(5 * time.Second)
	update(t, g)

	want := 1.5 + g.Speed*g.MaxFrame.Seconds()
	if math.Abs(g.Camera.X-want) > 1e-9 {
		t.Errorf("Expected clamped move to x=%v, got %v", want, g.Camera.X)
	}
}

func TestUpdateTurns(t *testing.T) {
	g, input, clock := newTestGame(t)
	update(t, g)

	input.held[render.KeyLeft] = true
	clock.advance(100 * time.Millisecond)
	update(t, g)
	if math.Abs(g.Camera.Heading-math.Pi/10) > 1e-9 {
		t.Errorf("Expected counter-clockwise turn to pi/10, got %v", g.Camera.Heading)
	}

	input.held[render.KeyLeft] = false
	input.held[render.KeyD] = true
	clock.advance(200 * time.Millisecond)
	update(t, g)
	if math.Abs(g.Camera.Heading-(2*math.Pi-math.Pi/10)) > 1e-9 {
		t.Errorf("Expected clockwise turn past zero, got %v", g.Camera.Heading)
	}
}

func TestBumpOnlyOnTransitionIntoBlocked(t *testing.T) {
	g, input, clock := newTestGame(t)
	bumper := &countingBumper{}
	g.Bumper = bumper
	g.Camera.X, g.Camera.Y = 1.3, 1.3
	g.Camera.Heading = 5 * math.Pi / 4 // into the south-west corner
	update(t, g)

	input.held[render.KeyUp] = true
	for i := 0; i < 3; i++ {
		clock.advance(50 * time.Millisecond)
		update(t, g)
	}
	if g.LastOutcome != movement.Blocked {
		t.Fatalf("Expected Blocked, got %v", g.LastOutcome)
	}
	if bumper.bumps != 1 {
		t.Errorf("Expected 1 bump while pushing into the corner, got %d", bumper.bumps)
	}
	if g.Camera.X != 1.3 || g.Camera.Y != 1.3 {
		t.Errorf("Expected unchanged position, got (%v, %v)", g.Camera.X, g.Camera.Y)
	}

	input.held[render.KeyUp] = false
	clock.advance(50 * time.Millisecond)
	update(t, g)
	input.held[render.KeyUp] = true
	clock.advance(50 * time.Millisecond)
	update(t, g)
	if bumper.bumps != 2 {
		t.Errorf("Expected a second bump after releasing, got %d", bumper.bumps)
	}
}

func TestEscapeTerminates(t *testing.T) {
	g, input, _ := newTestGame(t)
	input.tap(render.KeyEscape)

	if err := g.Update(); !errors.Is(err, render.ErrTerminated) {
		t.Errorf("Expected ErrTerminated, got %v", err)
	}
}

func TestDrawPresentsFrameAndDebugLine(t *testing.T) {
	g, input, _ := newTestGame(t)
	input.tap(render.KeyF3)
	update(t, g)

	if !g.Debug {
		t.Fatal("Expected F3 to enable the debug line")
	}

	screen := &fakeImage{width: g.ScreenWidth, height: g.ScreenHeight}
	g.Draw(screen)

	if len(screen.pix) != 4*g.ScreenWidth*g.ScreenHeight {
		t.Errorf("Expected a full frame, got %d bytes", len(screen.pix))
	}
	if len(screen.text) == 0 || !strings.HasPrefix(screen.text[0], "x=1.50 y=1.50") {
		t.Errorf("Expected the debug line first, got %v", screen.text)
	}

	w, h := g.Layout(1920, 1080)
	if w != 400 || h != 300 {
		t.Errorf("Expected layout 400x300, got %dx%d", w, h)
	}
}

func TestReadControlsCancelOpposingKeys(t *testing.T) {
	input := newFakeInput()
	input.held[render.KeyUp] = true
	input.held[render.KeyS] = true
	input.held[render.KeyA] = true

	c := ReadControls(input)
	if c.Forward != 0 || c.Turn != 1 {
		t.Errorf("Expected {0 1}, got %+v", c)
	}
}

func TestSnapshot(t *testing.T) {
	g, _, _ := newTestGame(t)
	path := filepath.Join(t.TempDir(), "frame.png")

	if err := g.Snapshot(path); err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open snapshot: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Failed to decode snapshot: %v", err)
	}
	if img.Bounds().Dx() != 400 || img.Bounds().Dy() != 300 {
		t.Errorf("Expected 400x300 snapshot, got %v", img.Bounds())
	}
}

func TestLoadGameUsesMapAtlas(t *testing.T) {
	dir := t.TempDir()
	if _, err := placeholders.Save(filepath.Join(dir, "art")); err != nil {
		t.Fatalf("Failed to save atlas: %v", err)
	}
	mapJSON := `{
		"name": "room",
		"width": 4,
		"height": 4,
		"atlas": "art/placeholders.json",
		"player_spawn": {"x": 1.5, "y": 1.5},
		"heading_degrees": 90,
		"tiles": [[3, 3, 3, 3], [3, 0, 0, 3], [3, 0, 0, 3], [3, 3, 3, 3]]
	}`
	mapPath := filepath.Join(dir, "room.json")
	if err := os.WriteFile(mapPath, []byte(mapJSON), 0644); err != nil {
		t.Fatalf("Failed to write map: %v", err)
	}

	g, err := LoadGame(config.DefaultConfig(), Assets{MapPath: mapPath}, newFakeInput())
	if err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}
	if math.Abs(g.Camera.Heading-math.Pi/2) > 1e-12 {
		t.Errorf("Expected heading pi/2, got %v", g.Camera.Heading)
	}
	if err := g.RenderFrame(); err != nil {
		t.Errorf("RenderFrame failed: %v", err)
	}
}

func TestLoadGameRejectsTileSizeMismatch(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Render.TileSize = 32

	if _, err := LoadGame(cfg, Assets{}, newFakeInput()); err == nil {
		t.Error("Expected an error for mismatched tile size")
	}
}

func TestLoadGameMissingMap(t *testing.T) {
	_, err := LoadGame(config.DefaultConfig(), Assets{MapPath: filepath.Join(t.TempDir(), "nope.json")}, newFakeInput())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}

func TestMessagesExpire(t *testing.T) {
	g, _, clock := newTestGame(t)
	update(t, g)
	g.ShowMessage("Bump")

	step := g.MaxFrame
	steps := int(messageDuration/step.Seconds()) - 1
	for i := 0; i < steps; i++ {
		clock.advance(step)
		update(t, g)
	}
	if len(g.Messages) != 1 || g.Messages[0].Text != "Bump" {
		t.Fatalf("Expected the message to still be shown, got %v", g.Messages)
	}

	screen := &fakeImage{width: g.ScreenWidth, height: g.ScreenHeight}
	g.Draw(screen)
	if len(screen.text) != 1 || screen.text[0] != "Bump" {
		t.Errorf("Expected the message to be drawn, got %v", screen.text)
	}

	for i := 0; i < 2; i++ {
		clock.advance(step)
		update(t, g)
	}
	if len(g.Messages) != 0 {
		t.Errorf("Expected the message to expire, got %v", g.Messages)
	}
}
