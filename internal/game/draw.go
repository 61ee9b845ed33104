package game

import (
	"fmt"
	"image/png"
	"math"
	"os"

	"chosenoffset.com/gridcaster/internal/render"
)

const (
	textMargin = 4
	lineHeight = 14
)

// Draw presents the frame rendered by the last Update.
func (g *Game) Draw(screen render.Image) {
	screen.WritePixels(g.Frame.Pix())
	g.drawUI(screen)
}

func (g *Game) drawUI(screen render.Image) {
	y := textMargin
	if g.Debug {
		screen.DrawText(g.DebugLine(), textMargin, y)
		y += lineHeight
	}
	for _, msg := range g.Messages {
		screen.DrawText(msg.Text, textMargin, y)
		y += lineHeight
	}
}

// DebugLine describes the camera state.
func (g *Game) DebugLine() string {
	return fmt.Sprintf("x=%.2f y=%.2f heading=%.0f %s frame=%d",
		g.Camera.X, g.Camera.Y, g.Camera.Heading*180/math.Pi, g.LastOutcome, g.FrameCount)
}

// Snapshot renders the current view and writes it to path as a PNG.
func (g *Game) Snapshot(path string) error {
	if err := g.RenderFrame(); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := png.Encode(file, g.Frame.Image()); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return file.Close()
}
