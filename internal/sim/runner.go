// Package sim drives the map generation pipeline.
package sim

import (
	"context"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/gridforge/internal/config"
	"github.com/samdwyer/gridforge/internal/telemetry"
	"github.com/samdwyer/gridforge/internal/world"
)

// FrameFunc receives the grid after each pipeline iteration. Returning an
// error stops the run.
type FrameFunc func(iteration int, g *world.Grid, w *world.Walker) error

// Runner owns the grid, the walker, and the random source, and alternates
// the automaton and walker passes over the configured number of iterations.
type Runner struct {
	cfg       *config.Config
	logger    *log.Logger
	rng       *rand.Rand
	automaton world.Automaton
	grid      *world.Grid
	walker    *world.Walker
	runID     string
	seed      int64
	iteration int
}

// New creates a runner from the given config. The random source is seeded
// once here and threaded through grid seeding and every walker pass, so a
// fixed seed reproduces the whole run.
func New(cfg *config.Config, logger *log.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Run.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	grid, err := world.NewGrid(cfg.Grid.Width, cfg.Grid.Height)
	if err != nil {
		return nil, err
	}
	grid.Randomize(rng, cfg.Grid.Fill)

	// The walker starts at the grid center and carries its position across
	// iterations from there.
	walker := world.NewWalker(grid.Width/2, grid.Height/2, walkParams(cfg.Walker, 0, 0), rng)

	return &Runner{
		cfg:    cfg,
		logger: logger,
		rng:    rng,
		automaton: world.Automaton{
			Radius:    cfg.Automaton.Radius,
			Threshold: cfg.Automaton.Threshold,
		},
		grid:   grid,
		walker: walker,
		runID:  uuid.NewString(),
		seed:   seed,
	}, nil
}

// Grid returns the current grid.
func (r *Runner) Grid() *world.Grid { return r.grid }

// Walker returns the walker state.
func (r *Runner) Walker() *world.Walker { return r.walker }

// Seed returns the seed in effect for this run.
func (r *Runner) Seed() int64 { return r.seed }

// RunID returns the unique identifier for this run.
func (r *Runner) RunID() string { return r.runID }

// Step runs one pipeline iteration: the automaton pass followed by the
// walker pass, and returns the resulting grid.
func (r *Runner) Step(ctx context.Context) *world.Grid {
	tracer := telemetry.Tracer("sim")
	_, span := tracer.Start(ctx, "sim.iteration")
	defer span.End()

	r.iteration++

	r.grid = r.automaton.Step(r.grid)
	afterAutomaton := r.grid.CountOccupied()

	p := walkParams(r.cfg.Walker, r.roomSize(r.cfg.Walker.RoomWidth, r.cfg.Walker.RoomWidthMax),
		r.roomSize(r.cfg.Walker.RoomHeight, r.cfg.Walker.RoomHeightMax))
	r.grid = r.walker.Walk(r.grid, p)

	occupied := r.grid.CountOccupied()
	span.SetAttributes(
		attribute.String("run.id", r.runID),
		attribute.Int("iteration", r.iteration),
		attribute.Int("grid.occupied_after_automaton", afterAutomaton),
		attribute.Int("grid.occupied", occupied),
		attribute.Int("walker.x", r.walker.X),
		attribute.Int("walker.y", r.walker.Y),
	)
	r.logger.Debug("iteration complete",
		"iteration", r.iteration,
		"occupied", occupied,
		"walker_x", r.walker.X,
		"walker_y", r.walker.Y,
		"room_width", p.RoomWidth,
		"room_height", p.RoomHeight,
	)

	return r.grid
}

// Run executes all configured iterations, invoking frame after each one.
func (r *Runner) Run(ctx context.Context, frame FrameFunc) error {
	tracer := telemetry.Tracer("sim")
	ctx, span := tracer.Start(ctx, "sim.run")
	defer span.End()

	start := time.Now()
	span.SetAttributes(
		attribute.String("run.id", r.runID),
		attribute.Int64("run.seed", r.seed),
		attribute.Int("grid.width", r.grid.Width),
		attribute.Int("grid.height", r.grid.Height),
		attribute.Int("run.iterations", r.cfg.Run.Iterations),
	)
	r.logger.Info("starting run",
		"run_id", r.runID,
		"seed", r.seed,
		"grid", r.grid.Width*r.grid.Height,
		"iterations", r.cfg.Run.Iterations,
	)

	for i := 1; i <= r.cfg.Run.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		g := r.Step(ctx)
		if frame != nil {
			if err := frame(i, g, r.walker); err != nil {
				return err
			}
		}
	}

	span.SetAttributes(
		attribute.Int("grid.final_occupied", r.grid.CountOccupied()),
		attribute.Int64("run.duration_ms", time.Since(start).Milliseconds()),
	)
	r.logger.Info("run complete",
		"run_id", r.runID,
		"occupied", r.grid.CountOccupied(),
		"duration", time.Since(start),
	)
	return nil
}

// roomSize picks a room dimension for this iteration: the base size, or a
// uniform draw from [base, max] when a larger max is configured.
func (r *Runner) roomSize(base, max int) int {
	if max <= base {
		return base
	}
	return base + r.rng.Intn(max-base+1)
}

// walkParams builds the per-iteration walker parameters. Zero room sizes
// fall back to the configured bases (used at construction time, before any
// iteration has picked a size).
func walkParams(w config.WalkerConfig, roomWidth, roomHeight int) world.WalkParams {
	if roomWidth == 0 {
		roomWidth = w.RoomWidth
	}
	if roomHeight == 0 {
		roomHeight = w.RoomHeight
	}
	return world.WalkParams{
		Walks:          w.Walks,
		Steps:          w.Steps,
		RoomWidth:      roomWidth,
		RoomHeight:     roomHeight,
		RoomChance:     w.RoomChance,
		RoomChanceStep: w.RoomChanceStep,
		TurnChance:     w.TurnChance,
		TurnChanceStep: w.TurnChanceStep,
	}
}
