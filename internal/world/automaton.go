package world

// Automaton applies cellular-automata smoothing to a grid. Each step
// recomputes every cell from the density of occupied neighbors within a
// square window of half-width Radius centered on the cell.
type Automaton struct {
	// Radius is the neighbor window half-width (1 gives a 3x3 window,
	// 2 gives 5x5). A radius of 0 makes each cell depend only on itself.
	Radius int

	// Threshold is the occupancy ratio above which a cell becomes occupied.
	Threshold float64
}

// Step applies one smoothing iteration and returns the next-state grid.
// The input grid is not modified: every cell is evaluated against the
// pre-step state, so the update is simultaneous rather than order-dependent.
func (a Automaton) Step(g *Grid) *Grid {
	next := g.Clone()

	// Full window area is the denominator even when the window is clipped
	// at the edges, which biases edge cells toward lower density.
	window := float64((2*a.Radius + 1) * (2*a.Radius + 1))

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			occupied := 0
			for dy := -a.Radius; dy <= a.Radius; dy++ {
				for dx := -a.Radius; dx <= a.Radius; dx++ {
					nx, ny := x+dx, y+dy
					if g.InBounds(nx, ny) && g.Get(nx, ny) == CellOccupied {
						occupied++
					}
				}
			}

			if float64(occupied)/window > a.Threshold {
				next.Set(x, y, CellOccupied)
			} else {
				next.Set(x, y, CellEmpty)
			}
		}
	}

	return next
}
