// Package grid holds the static cell map the ray caster walks through.
//
// Cells are addressed two ways. Array coordinates (col, row) follow the map
// file, where row 0 is the far edge. World coordinates (x, y) grow to the
// east and to the north, so world cell y maps to row Rows()-1-y.
package grid

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotEnclosed is returned by Validate when the outer ring has an empty cell.
var ErrNotEnclosed = errors.New("grid border is not fully solid")

// Empty is the cell code of walkable space.
const Empty = 0

// Grid is an immutable rows x cols array of cell codes.
// 0 is empty, N > 0 is a wall using texture id N (1-based).
type Grid struct {
	cols  int
	rows  int
	cells []int // row-major, array coordinates
}

// New copies rows into a Grid. All rows must have the same non-zero length
// and hold non-negative codes.
func New(rows [][]int) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("grid has no rows")
	}
	cols := len(rows[0])
	if cols == 0 {
		return nil, fmt.Errorf("grid has no columns")
	}

	cells := make([]int, 0, cols*len(rows))
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", r, len(row), cols)
		}
		for c, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("negative cell code %d at (%d, %d)", v, c, r)
			}
		}
		cells = append(cells, row...)
	}

	return &Grid{cols: cols, rows: len(rows), cells: cells}, nil
}

// Cols returns the grid width in cells.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the grid height in cells.
func (g *Grid) Rows() int { return g.rows }

// At returns the code at array coordinates. ok is false outside the grid.
func (g *Grid) At(col, row int) (code int, ok bool) {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return 0, false
	}
	return g.cells[row*g.cols+col], true
}

// Cell returns the code of the world cell (x, y). ok is false outside the grid.
func (g *Grid) Cell(x, y int) (code int, ok bool) {
	return g.At(x, g.rows-1-y)
}

// Solid reports whether the continuous world point (x, y) lies in a wall.
// Points outside the grid count as solid.
func (g *Grid) Solid(x, y float64) bool {
	code, ok := g.Cell(int(math.Floor(x)), int(math.Floor(y)))
	return !ok || code != Empty
}

// Enclosed reports whether every cell on the outer ring is a wall.
func (g *Grid) Enclosed() bool {
	for c := 0; c < g.cols; c++ {
		if g.cells[c] == Empty || g.cells[(g.rows-1)*g.cols+c] == Empty {
			return false
		}
	}
	for r := 0; r < g.rows; r++ {
		if g.cells[r*g.cols] == Empty || g.cells[r*g.cols+g.cols-1] == Empty {
			return false
		}
	}
	return true
}

// Validate checks the invariants the renderer relies on.
func (g *Grid) Validate() error {
	if !g.Enclosed() {
		return ErrNotEnclosed
	}
	return nil
}

// WallIDs returns the distinct zero-based wall ids present in the grid, ascending.
func (g *Grid) WallIDs() []int {
	seen := make(map[int]bool)
	maxCode := 0
	for _, v := range g.cells {
		if v != Empty {
			seen[v] = true
			if v > maxCode {
				maxCode = v
			}
		}
	}

	ids := make([]int, 0, len(seen))
	for code := 1; code <= maxCode; code++ {
		if seen[code] {
			ids = append(ids, code-1)
		}
	}
	return ids
}

// MaxSteps bounds the number of grid lines a ray can cross inside the grid.
func (g *Grid) MaxSteps() int {
	return g.cols + g.rows + 2
}
