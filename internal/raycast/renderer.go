// Package raycast renders a first-person view of a grid world one screen
// column at a time.
package raycast

import (
	"fmt"
	"image"

	"golang.org/x/sync/errgroup"

	"chosenoffset.com/gridcaster/internal/world/grid"
)

// Frame is the per-frame render target. Each column is written by exactly
// one RenderColumn call, so disjoint column bands may render concurrently.
type Frame struct {
	img *image.RGBA
}

// NewFrame allocates an opaque black width x height frame.
func NewFrame(width, height int) *Frame {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return &Frame{img: img}
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return f.img.Rect.Dx() }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return f.img.Rect.Dy() }

// Image exposes the pixels for presentation.
func (f *Frame) Image() *image.RGBA { return f.img }

// Pix returns the raw RGBA bytes, row-major.
func (f *Frame) Pix() []byte { return f.img.Pix }

func (f *Frame) set(x, y int, r, g, b, brightness uint8) {
	i := f.img.PixOffset(x, y)
	p := f.img.Pix[i : i+4 : i+4]
	p[0] = tint(r, brightness)
	p[1] = tint(g, brightness)
	p[2] = tint(b, brightness)
	p[3] = 0xff
}

// Renderer draws whole frames from a camera view.
type Renderer struct {
	solver   *Solver
	rays     *RayTable
	shading  Shading
	textures Textures
	workers  int
}

// Options configures a Renderer.
type Options struct {
	FOV     float64 // horizontal field of view in radians
	Width   int     // buffer width, one ray per column
	Shading Shading
	Workers int // column bands rendered concurrently; <= 1 renders sequentially
}

// NewRenderer precomputes the ray table for opts and binds the world and
// textures. Every wall id present in g must have a texture.
func NewRenderer(g *grid.Grid, textures Textures, opts Options) (*Renderer, error) {
	if err := opts.Shading.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shading: %w", err)
	}
	rays, err := NewRayTable(opts.FOV, opts.Width)
	if err != nil {
		return nil, err
	}
	if err := textures.CheckWalls(g.WallIDs()); err != nil {
		return nil, fmt.Errorf("grid uses a wall without a texture: %w", err)
	}

	return &Renderer{
		solver:   NewSolver(g, textures.TileSize()),
		rays:     rays,
		shading:  opts.Shading,
		textures: textures,
		workers:  opts.Workers,
	}, nil
}

// Rays returns the precomputed ray table.
func (r *Renderer) Rays() *RayTable { return r.rays }

// Render draws every column of f from view v.
func (r *Renderer) Render(f *Frame, v View) error {
	if f.Width() != r.rays.Len() {
		return fmt.Errorf("frame is %d columns wide, ray table has %d", f.Width(), r.rays.Len())
	}

	if r.workers <= 1 {
		return r.renderBand(f, v, 0, f.Width())
	}

	var eg errgroup.Group
	eg.SetLimit(r.workers)
	band := (f.Width() + r.workers - 1) / r.workers
	for start := 0; start < f.Width(); start += band {
		end := min(start+band, f.Width())
		eg.Go(func() error {
			return r.renderBand(f, v, start, end)
		})
	}
	return eg.Wait()
}

func (r *Renderer) renderBand(f *Frame, v View, start, end int) error {
	for col := start; col < end; col++ {
		if _, err := r.RenderColumn(f, col, v); err != nil {
			return err
		}
	}
	return nil
}
