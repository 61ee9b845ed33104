// Package terminal presents frames on a text terminal through tcell.
//
// Every cell shows two vertically stacked pixels as an upper half block
// whose foreground is the upper pixel and whose background is the lower
// one. The frame is resampled to twice the terminal height.
package terminal

import (
	"errors"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"

	"chosenoffset.com/gridcaster/internal/render"
)

// HalfBlock is the glyph used for every pixel pair.
const HalfBlock = '▀'

// Image presents a fixed-size frame on the whole screen.
type Image struct {
	screen tcell.Screen
	width  int
	height int
	scaled *image.RGBA
}

// NewImage wraps screen as a width x height render surface.
func NewImage(screen tcell.Screen, width, height int) *Image {
	return &Image{screen: screen, width: width, height: height}
}

// Size returns the frame size, not the terminal size.
func (i *Image) Size() (width, height int) {
	return i.width, i.height
}

// WritePixels scales the frame onto the terminal cells.
func (i *Image) WritePixels(pix []byte) {
	cols, rows := i.screen.Size()
	if cols <= 0 || rows <= 0 || len(pix) < 4*i.width*i.height {
		return
	}

	src := &image.RGBA{Pix: pix, Stride: 4 * i.width, Rect: image.Rect(0, 0, i.width, i.height)}
	target := image.Rect(0, 0, cols, rows*2)
	if i.scaled == nil || i.scaled.Rect != target {
		i.scaled = image.NewRGBA(target)
	}
	draw.ApproxBiLinear.Scale(i.scaled, target, src, src.Rect, draw.Src, nil)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := i.scaled.RGBAAt(x, 2*y)
			bottom := i.scaled.RGBAAt(x, 2*y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			i.screen.SetContent(x, y, HalfBlock, nil, style)
		}
	}
}

// DrawText writes text at the cell covering frame pixel (x, y).
func (i *Image) DrawText(text string, x, y int) {
	cols, rows := i.screen.Size()
	if i.width <= 0 || i.height <= 0 {
		return
	}
	cx := x * cols / i.width
	cy := y * rows / i.height
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for _, r := range text {
		if cx >= cols {
			break
		}
		i.screen.SetContent(cx, cy, r, nil, style)
		cx++
	}
}

// Engine runs the game loop against a tcell screen.
type Engine struct {
	screen tcell.Screen
	input  *InputManager
	tick   time.Duration
}

// DefaultTick paces the loop at roughly 60 frames per second.
const DefaultTick = 16 * time.Millisecond

// NewEngine opens the controlling terminal.
func NewEngine() (*Engine, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return NewEngineWithScreen(screen), nil
}

// NewEngineWithScreen runs on an already initialized screen.
func NewEngineWithScreen(screen tcell.Screen) *Engine {
	screen.HideCursor()
	return &Engine{
		screen: screen,
		input:  NewInputManager(time.Now),
		tick:   DefaultTick,
	}
}

// Input returns the key state fed by terminal events.
func (e *Engine) Input() render.InputManager {
	return e.input
}

// SetWindowSize is a no-op; the terminal decides its own size.
func (e *Engine) SetWindowSize(width, height int) {}

// SetWindowTitle sets the terminal title where supported.
func (e *Engine) SetWindowTitle(title string) {
	e.screen.SetTitle(title)
}

// SetWindowResizable is a no-op; terminals always resize.
func (e *Engine) SetWindowResizable(resizable bool) {}

// RunGame runs the loop until the game terminates, fails, or Ctrl-C is
// pressed. The screen is finalized on return.
func (e *Engine) RunGame(game render.Game) error {
	defer e.screen.Fini()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := e.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlC {
					return nil
				}
				if key, ok := translateKey(ev); ok {
					e.input.press(key)
				}
			case *tcell.EventResize:
				e.screen.Sync()
			}

		case <-ticker.C:
			if err := game.Update(); err != nil {
				if errors.Is(err, render.ErrTerminated) {
					return nil
				}
				return err
			}

			cols, rows := e.screen.Size()
			width, height := game.Layout(cols, rows*2)
			game.Draw(NewImage(e.screen, width, height))
			e.screen.Show()
			e.input.endTick()
		}
	}
}

func translateKey(ev *tcell.EventKey) (render.Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return render.KeyUp, true
	case tcell.KeyDown:
		return render.KeyDown, true
	case tcell.KeyLeft:
		return render.KeyLeft, true
	case tcell.KeyRight:
		return render.KeyRight, true
	case tcell.KeyEscape:
		return render.KeyEscape, true
	case tcell.KeyF3:
		return render.KeyF3, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return render.KeyW, true
		case 'a', 'A':
			return render.KeyA, true
		case 's', 'S':
			return render.KeyS, true
		case 'd', 'D':
			return render.KeyD, true
		}
	}
	return 0, false
}
