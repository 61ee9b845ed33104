package raycast

import (
	"fmt"
	"math"

	"chosenoffset.com/gridcaster/internal/world/atlas"
)

// Textures is the texture source the column renderer samples.
type Textures interface {
	TileSize() int
	Wall(id int) (*atlas.Texture, error)
	CheckWalls(ids []int) error
	Floor() *atlas.Texture
	Ceiling() *atlas.Texture
}

// View is the camera snapshot every column of one frame renders from.
type View struct {
	X, Y    float64
	Heading float64
}

// ColumnResult reports what RenderColumn drew.
type ColumnResult struct {
	Hit        Hit
	Corrected  float64 // fisheye-corrected distance
	Projected  float64 // unclipped slice height in pixels
	Top        int     // first row of the slice, may be negative
	Height     int     // slice height in whole pixels
	Brightness uint8   // wall tint
}

// RenderColumn casts the ray of column col and writes that column of f:
// ceiling rows, the textured wall slice, then floor rows.
func (r *Renderer) RenderColumn(f *Frame, col int, v View) (ColumnResult, error) {
	ray := r.rays.At(col)
	dx, dy := Direction(v.Heading, ray.Offset)

	hit, err := r.solver.Cast(v.X, v.Y, dx, dy)
	if err != nil {
		return ColumnResult{}, fmt.Errorf("column %d: %w", col, err)
	}
	wall, err := r.textures.Wall(hit.WallID)
	if err != nil {
		return ColumnResult{}, fmt.Errorf("column %d: %w", col, err)
	}

	height := f.Height()
	corrected := hit.Distance * ray.Distortion
	projected := float64(height) / math.Max(corrected, r.shading.Near)
	sliceHeight := int(projected)
	top := (height - sliceHeight) / 2

	res := ColumnResult{
		Hit:        hit,
		Corrected:  corrected,
		Projected:  projected,
		Top:        top,
		Height:     sliceHeight,
		Brightness: r.shading.Brightness(corrected),
	}

	tile := r.textures.TileSize()
	start, end := max(top, 0), min(top+sliceHeight, height)
	for row := start; row < end; row++ {
		texV := (row - top) * tile / sliceHeight
		cr, cg, cb := wall.RGB(hit.TexU, texV)
		f.set(col, row, cr, cg, cb, res.Brightness)
	}

	floor, ceiling := r.textures.Floor(), r.textures.Ceiling()
	for row := 0; row < start; row++ {
		r.surface(f, col, row, row, ray, v, dx, dy, ceiling)
	}
	for row := end; row < height; row++ {
		r.surface(f, col, row, height-1-row, ray, v, dx, dy, floor)
	}

	return res, nil
}

// surface shades one floor or ceiling pixel. j is the row distance from the
// nearest buffer edge; the inverse projection turns it into a ray distance.
func (r *Renderer) surface(f *Frame, col, row, j int, ray Ray, v View, dx, dy float64, tex *atlas.Texture) {
	height := float64(f.Height())
	revCorrected := height / (height - 2*float64(j))
	revDist := revCorrected / ray.Distortion

	wx := v.X + dx*revDist
	wy := v.Y + dy*revDist
	tile := float64(tex.Size())
	tx := int((wx - math.Floor(wx)) * tile)
	ty := int((wy - math.Floor(wy)) * tile)

	cr, cg, cb := tex.RGB(tx, ty)
	f.set(col, row, cr, cg, cb, r.shading.Brightness(revCorrected))
}
