// Package render abstracts the host that presents frames and reports input.
// The game only talks to these interfaces, so the window and terminal
// backends are interchangeable.
package render

import "errors"

// ErrTerminated is returned from Game.Update to end the loop normally.
// Engines treat it as a clean exit and return nil from RunGame.
var ErrTerminated = errors.New("game terminated")

// Image represents the surface a frame is presented on.
type Image interface {
	// Size returns the surface size in pixels.
	Size() (width, height int)

	// WritePixels replaces the whole surface with row-major RGBA bytes.
	// len(pix) must be 4*width*height.
	WritePixels(pix []byte)

	// DrawText draws a line of text with its top-left corner at (x, y).
	DrawText(text string, x, y int)
}

// InputManager handles input from the user.
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the game reads
const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
	KeyF3 // Debug overlay toggle
)

// Game represents the game interface that the engine will call.
type Game interface {
	// Update advances the game by one tick and renders the next frame.
	Update() error

	// Draw presents the most recently rendered frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the host that manages the loop and the output surface.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}
