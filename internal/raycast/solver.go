package raycast

import (
	"errors"
	"fmt"
	"math"

	"chosenoffset.com/gridcaster/internal/world/grid"
)

// ErrRayEscapedWorld means a ray crossed more grid lines than the grid can
// hold or left the grid, which only happens when the map is not enclosed.
var ErrRayEscapedWorld = errors.New("ray escaped the world grid")

// Hit describes the nearest wall boundary along a ray.
type Hit struct {
	X, Y     float64 // world coordinates of the crossing
	WallID   int     // zero-based texture id
	TexU     int     // texture column in [0, tile size)
	Distance float64 // Euclidean distance from the camera
	Vertical bool    // true when a vertical grid line (constant x) was crossed
}

// axis tracks the next crossing with the grid lines of one axis.
type axis struct {
	active  bool    // false when the ray never crosses lines of this axis
	step    int     // +1 or -1
	line    float64 // coordinate of the next grid line on this axis
	cross   float64 // other coordinate where the ray meets that line
	pending bool    // cross must be recomputed for the current line
}

func newAxis(p, d float64) axis {
	step := sign(d)
	if step == 0 {
		return axis{}
	}
	return axis{
		active:  true,
		step:    step,
		line:    math.Round(p + 0.5*float64(step)),
		pending: true,
	}
}

func (a *axis) advance() {
	a.line += float64(a.step)
	a.pending = true
}

// Solver finds wall hits by walking grid-line crossings.
type Solver struct {
	grid     *grid.Grid
	tileSize int
	maxSteps int
}

// NewSolver builds a solver over g producing texture coordinates for square
// tiles of tileSize pixels.
func NewSolver(g *grid.Grid, tileSize int) *Solver {
	return &Solver{grid: g, tileSize: tileSize, maxSteps: g.MaxSteps()}
}

// Cast walks the ray starting at (px, py) with unit direction (dx, dy) and
// returns the first non-empty cell boundary it crosses.
func (s *Solver) Cast(px, py, dx, dy float64) (Hit, error) {
	v := newAxis(px, dx) // vertical lines, x = const
	h := newAxis(py, dy) // horizontal lines, y = const
	if !v.active && !h.active {
		return Hit{}, fmt.Errorf("zero ray direction")
	}

	for steps := 0; steps < s.maxSteps; steps++ {
		if v.active && v.pending {
			v.cross = py + (v.line-px)*(dy/dx)
			v.pending = false
		}
		if h.active && h.pending {
			h.cross = px + (h.line-py)*(dx/dy)
			h.pending = false
		}

		vertical := v.active
		if v.active && h.active {
			sx := float64(v.step)
			vertical = sx*(v.line-px) < sx*(h.cross-px)
		}

		var hit Hit
		var cellX, cellY int
		if vertical {
			hit = Hit{X: v.line, Y: v.cross, Vertical: true}
			hit.TexU = texU(v.cross, s.tileSize, v.step > 0)
			cellX = int(v.line)
			if v.step < 0 {
				cellX--
			}
			cellY = int(math.Floor(v.cross))
			v.advance()
		} else {
			hit = Hit{X: h.cross, Y: h.line}
			hit.TexU = texU(h.cross, s.tileSize, h.step < 0)
			cellX = int(math.Floor(h.cross))
			cellY = int(h.line)
			if h.step < 0 {
				cellY--
			}
			h.advance()
		}

		code, ok := s.grid.Cell(cellX, cellY)
		if !ok {
			return Hit{}, fmt.Errorf("%w: left grid at cell (%d, %d)", ErrRayEscapedWorld, cellX, cellY)
		}
		if code != grid.Empty {
			hit.WallID = code - 1
			hit.Distance = math.Hypot(hit.X-px, hit.Y-py)
			return hit, nil
		}
	}

	return Hit{}, fmt.Errorf("%w: no wall within %d crossings from (%.2f, %.2f)",
		ErrRayEscapedWorld, s.maxSteps, px, py)
}

// texU converts a boundary coordinate into a texture column. mirror flips
// it so a face reads left to right regardless of the approach side.
func texU(coord float64, tileSize int, mirror bool) int {
	u := int((coord - math.Floor(coord)) * float64(tileSize))
	if u >= tileSize {
		u = tileSize - 1
	}
	if mirror {
		u = tileSize - 1 - u
	}
	return u
}

func sign(v float64) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
