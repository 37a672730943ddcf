package world

import (
	"math/rand"
	"testing"
)

func TestNewGridValidation(t *testing.T) {
	cases := []struct {
		name          string
		width, height int
		wantErr       bool
	}{
		{"valid", 20, 10, false},
		{"minimal", 1, 1, false},
		{"zero width", 0, 10, true},
		{"zero height", 20, 0, true},
		{"negative", -5, 10, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := NewGrid(tc.width, tc.height)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("NewGrid(%d, %d) succeeded, expected error", tc.width, tc.height)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewGrid(%d, %d) failed: %v", tc.width, tc.height, err)
			}
			if g.Width != tc.width || g.Height != tc.height {
				t.Errorf("dimensions %dx%d, want %dx%d", g.Width, g.Height, tc.width, tc.height)
			}
		})
	}
}

func TestGridSetOutOfBoundsIgnored(t *testing.T) {
	g, err := NewGrid(5, 5)
	if err != nil {
		t.Fatal(err)
	}

	// None of these should panic or change anything
	g.Set(-1, 0, CellOccupied)
	g.Set(0, -1, CellOccupied)
	g.Set(5, 0, CellOccupied)
	g.Set(0, 5, CellOccupied)

	if got := g.CountOccupied(); got != 0 {
		t.Errorf("CountOccupied() = %d after out-of-bounds writes, want 0", got)
	}
	if g.Get(5, 5) != CellEmpty {
		t.Error("Get out of bounds should return CellEmpty")
	}
}

func TestGridCloneIndependence(t *testing.T) {
	g, err := NewGrid(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	g.Set(2, 1, CellOccupied)

	clone := g.Clone()
	if !g.Equal(clone) {
		t.Fatal("clone should equal original")
	}

	clone.Set(0, 0, CellOccupied)
	if g.Get(0, 0) != CellEmpty {
		t.Error("mutating clone changed the original")
	}
}

func TestGridRandomizeReproducibility(t *testing.T) {
	seed := int64(12345)

	g1, _ := NewGrid(40, 20)
	g2, _ := NewGrid(40, 20)
	g1.Randomize(rand.New(rand.NewSource(seed)), 0.5)
	g2.Randomize(rand.New(rand.NewSource(seed)), 0.5)

	if !g1.Equal(g2) {
		t.Error("same seed should produce identical grids")
	}

	g3, _ := NewGrid(40, 20)
	g3.Randomize(rand.New(rand.NewSource(seed+1)), 0.5)
	if g1.Equal(g3) {
		t.Error("different seeds should not produce identical grids")
	}
}

func TestGridRandomizeDensityExtremes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	g, _ := NewGrid(10, 10)
	g.Randomize(rng, 0)
	if got := g.CountOccupied(); got != 0 {
		t.Errorf("density 0 left %d occupied cells", got)
	}

	g.Randomize(rng, 1)
	if got := g.CountOccupied(); got != 100 {
		t.Errorf("density 1 occupied %d cells, want 100", got)
	}
}

func TestGridString(t *testing.T) {
	g, _ := NewGrid(3, 2)
	g.Set(1, 0, CellOccupied)
	g.Set(2, 1, CellOccupied)

	want := ".#.\n..#\n"
	if got := g.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
