// Package world provides the occupancy grid and the map generation passes.
package world

import (
	"fmt"
	"math/rand"
	"strings"
)

const (
	// Default grid dimensions
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Cell is the state of a single grid cell.
type Cell uint8

const (
	// CellEmpty represents an unoccupied cell.
	CellEmpty Cell = 0
	// CellOccupied represents an occupied (carved/solid) cell.
	CellOccupied Cell = 1
)

// Rune returns the cell's display character.
func (c Cell) Rune() rune {
	if c == CellOccupied {
		return '#'
	}
	return '.'
}

// Grid is a rectangular matrix of binary cell states.
// Cells are stored in [y][x] order.
type Grid struct {
	Width  int
	Height int
	cells  [][]Cell
}

// NewGrid creates an empty grid of the given dimensions.
// Dimensions must be at least 1x1.
func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid grid dimensions %dx%d: both must be at least 1", width, height)
	}

	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
	}

	return &Grid{
		Width:  width,
		Height: height,
		cells:  cells,
	}, nil
}

// InBounds returns true if the position lies within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Get returns the cell at the given position, or CellEmpty if out of bounds.
func (g *Grid) Get(x, y int) Cell {
	if !g.InBounds(x, y) {
		return CellEmpty
	}
	return g.cells[y][x]
}

// Set writes the cell at the given position. Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, c Cell) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y][x] = c
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([][]Cell, g.Height)
	for y := range cells {
		cells[y] = make([]Cell, g.Width)
		copy(cells[y], g.cells[y])
	}
	return &Grid{
		Width:  g.Width,
		Height: g.Height,
		cells:  cells,
	}
}

// Fill sets every cell to the given state.
func (g *Grid) Fill(c Cell) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			g.cells[y][x] = c
		}
	}
}

// Randomize fills the grid with noise: each cell becomes occupied with the
// given probability. Used to seed the automaton with an initial pattern.
func (g *Grid) Randomize(rng *rand.Rand, density float64) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if rng.Float64() < density {
				g.cells[y][x] = CellOccupied
			} else {
				g.cells[y][x] = CellEmpty
			}
		}
	}
}

// CountOccupied returns the number of occupied cells.
func (g *Grid) CountOccupied() int {
	count := 0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.cells[y][x] == CellOccupied {
				count++
			}
		}
	}
	return count
}

// Equal returns true if both grids have identical dimensions and cell states.
func (g *Grid) Equal(other *Grid) bool {
	if g.Width != other.Width || g.Height != other.Height {
		return false
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.cells[y][x] != other.cells[y][x] {
				return false
			}
		}
	}
	return true
}

// String renders the grid as a character matrix, one row per line.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.Width + 1) * g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			sb.WriteRune(g.cells[y][x].Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
