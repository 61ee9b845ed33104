package game

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/gridcaster/internal/movement"
	"chosenoffset.com/gridcaster/internal/raycast"
	"chosenoffset.com/gridcaster/internal/render"
	"chosenoffset.com/gridcaster/internal/world/maploader"
	"chosenoffset.com/gridcaster/pkg/logger"
)

// Game holds all game state and logic.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	GameMap      *maploader.Map
	Camera       movement.Camera
	Integrator   *movement.Integrator
	Renderer     *raycast.Renderer
	Frame        *raycast.Frame
	InputMgr     render.InputManager
	Bumper       Bumper // optional

	// Motion tuning
	Speed     float64       // grid units per second at full forward command
	TurnSpeed float64       // radians per second at full turn command
	MaxFrame  time.Duration // upper bound on one step's dt

	// Clock is injectable so tests control dt.
	Now      func() time.Time
	lastTick time.Time

	LastOutcome movement.Outcome

	// UI state
	Messages []Message
	Debug    bool

	FrameCount int
}

// Update reads controls, steps the camera and renders the next frame.
func (g *Game) Update() error {
	dt := g.tick()

	if g.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		return render.ErrTerminated
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyF3) {
		g.Debug = !g.Debug
	}

	controls := ReadControls(g.InputMgr)
	g.Camera.Speed = float64(controls.Forward) * g.Speed
	g.Camera.Turn = float64(controls.Turn) * g.TurnSpeed

	outcome := g.Integrator.Step(&g.Camera, dt)
	if outcome == movement.Blocked && g.LastOutcome != movement.Blocked {
		g.bump()
	}
	g.LastOutcome = outcome

	g.updateMessages(dt.Seconds())

	if err := g.RenderFrame(); err != nil {
		return fmt.Errorf("frame %d: %w", g.FrameCount, err)
	}
	return nil
}

// tick returns the clamped time since the previous Update. The first
// call returns zero.
func (g *Game) tick() time.Duration {
	now := g.Now()
	if g.lastTick.IsZero() {
		g.lastTick = now
		return 0
	}
	dt := now.Sub(g.lastTick)
	g.lastTick = now

	if dt < 0 {
		return 0
	}
	if g.MaxFrame > 0 && dt > g.MaxFrame {
		return g.MaxFrame
	}
	return dt
}

// RenderFrame draws the current view into Frame.
func (g *Game) RenderFrame() error {
	view := raycast.View{X: g.Camera.X, Y: g.Camera.Y, Heading: g.Camera.Heading}
	if err := g.Renderer.Render(g.Frame, view); err != nil {
		return err
	}
	g.FrameCount++
	return nil
}

func (g *Game) bump() {
	logger.Log.WithFields(logrus.Fields{
		"x": g.Camera.X,
		"y": g.Camera.Y,
	}).Debug("Camera blocked")

	g.ShowMessage("Bump")
	if g.Bumper != nil {
		g.Bumper.Bump()
	}
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}

// ReadControls maps held keys to movement commands. Opposing keys cancel.
func ReadControls(input render.InputManager) Controls {
	var c Controls
	if input.IsKeyPressed(render.KeyUp) || input.IsKeyPressed(render.KeyW) {
		c.Forward++
	}
	if input.IsKeyPressed(render.KeyDown) || input.IsKeyPressed(render.KeyS) {
		c.Forward--
	}
	if input.IsKeyPressed(render.KeyLeft) || input.IsKeyPressed(render.KeyA) {
		c.Turn++
	}
	if input.IsKeyPressed(render.KeyRight) || input.IsKeyPressed(render.KeyD) {
		c.Turn--
	}
	return c
}

func (g *Game) updateMessages(dt float64) {
	var active []Message
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// messageDuration is how long ShowMessage keeps a message on screen.
const messageDuration = 1.5

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: messageDuration,
	})
}
