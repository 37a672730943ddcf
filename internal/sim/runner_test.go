package sim

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/samdwyer/gridforge/internal/config"
	"github.com/samdwyer/gridforge/internal/world"
)

func testConfig(seed int64) *config.Config {
	cfg := config.Default()
	cfg.Grid.Width = 20
	cfg.Grid.Height = 10
	cfg.Run.Seed = seed
	cfg.Run.Iterations = 5
	return cfg
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestRunnerReproducibility(t *testing.T) {
	ctx := context.Background()
	seed := int64(12345)

	run := func() *world.Grid {
		r, err := New(testConfig(seed), testLogger())
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		if err := r.Run(ctx, nil); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		return r.Grid()
	}

	g1 := run()
	g2 := run()
	if !g1.Equal(g2) {
		t.Error("same seed should reproduce the full run")
	}
}

func TestRunnerDifferentSeeds(t *testing.T) {
	ctx := context.Background()

	r1, err := New(testConfig(12345), testLogger())
	if err != nil {
		t.Fatal(err)
	}
	r2, err := New(testConfig(54321), testLogger())
	if err != nil {
		t.Fatal(err)
	}

	if err := r1.Run(ctx, nil); err != nil {
		t.Fatal(err)
	}
	if err := r2.Run(ctx, nil); err != nil {
		t.Fatal(err)
	}

	// Very unlikely to be identical by chance on a 20x10 grid
	if r1.Grid().Equal(r2.Grid()) {
		t.Error("runs with different seeds should not be identical")
	}
}

func TestRunnerFramePerIteration(t *testing.T) {
	r, err := New(testConfig(7), testLogger())
	if err != nil {
		t.Fatal(err)
	}

	var iterations []int
	frame := func(iteration int, g *world.Grid, w *world.Walker) error {
		iterations = append(iterations, iteration)
		if g.Width != 20 || g.Height != 10 {
			t.Errorf("frame grid %dx%d, want 20x10", g.Width, g.Height)
		}
		if !g.InBounds(w.X, w.Y) {
			t.Errorf("walker at (%d,%d) is out of bounds", w.X, w.Y)
		}
		return nil
	}

	if err := r.Run(context.Background(), frame); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(iterations) != 5 {
		t.Fatalf("got %d frames, want 5", len(iterations))
	}
	for i, it := range iterations {
		if it != i+1 {
			t.Errorf("frame %d reported iteration %d", i, it)
		}
	}
}

func TestRunnerFrameErrorStopsRun(t *testing.T) {
	r, err := New(testConfig(7), testLogger())
	if err != nil {
		t.Fatal(err)
	}

	stop := errors.New("stop")
	calls := 0
	frame := func(int, *world.Grid, *world.Walker) error {
		calls++
		if calls == 2 {
			return stop
		}
		return nil
	}

	if err := r.Run(context.Background(), frame); !errors.Is(err, stop) {
		t.Errorf("Run returned %v, want the frame error", err)
	}
	if calls != 2 {
		t.Errorf("frame called %d times, want 2", calls)
	}
}

func TestRunnerZeroSeedPicksOne(t *testing.T) {
	r, err := New(testConfig(0), testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if r.Seed() == 0 {
		t.Error("seed 0 should be replaced with a generated seed")
	}
	if r.RunID() == "" {
		t.Error("run ID should be set")
	}
}

func TestRunnerWalkerStartsAtCenter(t *testing.T) {
	r, err := New(testConfig(1), testLogger())
	if err != nil {
		t.Fatal(err)
	}
	w := r.Walker()
	if w.X != 10 || w.Y != 5 {
		t.Errorf("walker starts at (%d,%d), want grid center (10,5)", w.X, w.Y)
	}
}

func TestRunnerRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(1)
	cfg.Automaton.Radius = -1
	if _, err := New(cfg, testLogger()); err == nil {
		t.Error("New should reject an invalid config")
	}
}

func TestRunnerRoomSizeJitterWithinRange(t *testing.T) {
	cfg := testConfig(9)
	cfg.Walker.RoomWidth = 3
	cfg.Walker.RoomWidthMax = 7

	r, err := New(cfg, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		got := r.roomSize(cfg.Walker.RoomWidth, cfg.Walker.RoomWidthMax)
		if got < 3 || got > 7 {
			t.Fatalf("roomSize = %d, want within [3,7]", got)
		}
	}

	// Without a max the base is used as-is.
	if got := r.roomSize(5, 0); got != 5 {
		t.Errorf("roomSize(5, 0) = %d, want 5", got)
	}
}
