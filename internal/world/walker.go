package world

import "math/rand"

// Direction is one of the four axis-aligned headings a walker can take.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Delta returns the unit offset for the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 1, 0
	}
}

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "right"
	}
}

// RandomDirection picks a heading uniformly from the four directions.
func RandomDirection(rng *rand.Rand) Direction {
	return Direction(rng.Intn(4))
}

// WalkParams configures a single Walk call.
type WalkParams struct {
	// Walks is the number of independent walks performed per call.
	Walks int
	// Steps is the number of steps taken per walk.
	Steps int

	// RoomWidth and RoomHeight are the dimensions of carved rooms.
	RoomWidth  int
	RoomHeight int

	// RoomChance is the base probability of carving a room at a step, and
	// RoomChanceStep the amount added after each failed draw.
	RoomChance     float64
	RoomChanceStep float64

	// TurnChance is the base probability of changing heading at a step, and
	// TurnChanceStep the amount added after each failed draw.
	TurnChance     float64
	TurnChanceStep float64
}

// Walker is the drunk agent that carves corridors and rooms into a grid.
// Its position, heading, and adaptive probabilities persist across Walk
// calls: consecutive calls continue the same path rather than restarting.
type Walker struct {
	X, Y    int
	Heading Direction

	// Adaptive probability accumulators. Each grows by its configured step
	// on every failed draw and snaps back to the base probability on
	// success. Growth is unclamped: once an accumulator passes 1, the next
	// draw always succeeds.
	roomChance float64
	turnChance float64

	rng *rand.Rand
}

// NewWalker creates a walker at the given position with accumulators seeded
// from the base probabilities.
func NewWalker(x, y int, p WalkParams, rng *rand.Rand) *Walker {
	return &Walker{
		X:          x,
		Y:          y,
		Heading:    RandomDirection(rng),
		roomChance: p.RoomChance,
		turnChance: p.TurnChance,
		rng:        rng,
	}
}

// RoomChance returns the current room accumulator.
func (w *Walker) RoomChance() float64 { return w.roomChance }

// TurnChance returns the current turn accumulator.
func (w *Walker) TurnChance() float64 { return w.turnChance }

// Walk performs p.Walks random walks of p.Steps steps each and returns the
// next-state grid. The input grid is not modified. Each walk starts with a
// fresh random heading; the walker's position carries over from wherever the
// previous walk (or previous call) left it.
func (w *Walker) Walk(g *Grid, p WalkParams) *Grid {
	next := g.Clone()

	for walk := 0; walk < p.Walks; walk++ {
		w.Heading = RandomDirection(w.rng)

		for step := 0; step < p.Steps; step++ {
			next.Set(w.X, w.Y, CellOccupied)

			if w.rng.Float64() < w.roomChance {
				w.carveRoom(next, p.RoomWidth, p.RoomHeight)
				w.roomChance = p.RoomChance
			} else {
				w.roomChance += p.RoomChanceStep
			}

			if w.rng.Float64() < w.turnChance {
				w.Heading = RandomDirection(w.rng)
				w.turnChance = p.TurnChance
			} else {
				w.turnChance += p.TurnChanceStep
			}

			dx, dy := w.Heading.Delta()
			nx, ny := w.X+dx, w.Y+dy
			if next.InBounds(nx, ny) {
				w.X, w.Y = nx, ny
			} else {
				// Boundary collision counts as a turn: re-roll the
				// heading and reset the accumulator so the walker
				// doesn't grind against the edge.
				w.Heading = RandomDirection(w.rng)
				w.turnChance = p.TurnChance
			}
		}
	}

	return next
}

// carveRoom marks a width x height rectangle centered on the walker as
// occupied, clipped to grid bounds.
func (w *Walker) carveRoom(g *Grid, width, height int) {
	halfW := width / 2
	halfH := height / 2

	startX := max(0, w.X-halfW)
	endX := min(g.Width-1, w.X+halfW)
	startY := max(0, w.Y-halfH)
	endY := min(g.Height-1, w.Y+halfH)

	for y := startY; y <= endY; y++ {
		for x := startX; x <= endX; x++ {
			g.Set(x, y, CellOccupied)
		}
	}
}
